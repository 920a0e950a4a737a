package store

import (
	"context"
	"encoding/json"

	"facturador/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisStore keeps each empresa collection as a JSON blob under the same
// clave the FileStore uses. Optional backend for deployments that already
// run Redis next to the console.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Cargar(ctx context.Context, empresaID int64) []model.Comprobante {
	val, err := s.rdb.Get(ctx, Clave(empresaID)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Error().Err(err).Str("clave", Clave(empresaID)).Msg("error al cargar comprobantes")
		}
		return []model.Comprobante{}
	}

	var comprobantes []model.Comprobante
	if err := json.Unmarshal([]byte(val), &comprobantes); err != nil {
		log.Error().Err(err).Str("clave", Clave(empresaID)).Msg("comprobantes corruptos, se descartan")
		return []model.Comprobante{}
	}
	if comprobantes == nil {
		comprobantes = []model.Comprobante{}
	}
	return comprobantes
}

func (s *RedisStore) Guardar(ctx context.Context, empresaID int64, comprobantes []model.Comprobante) {
	data, err := json.Marshal(comprobantes)
	if err != nil {
		log.Error().Err(err).Str("clave", Clave(empresaID)).Msg("error al serializar comprobantes")
		return
	}
	if err := s.rdb.Set(ctx, Clave(empresaID), data, 0).Err(); err != nil {
		log.Error().Err(err).Str("clave", Clave(empresaID)).Msg("error al guardar comprobantes")
	}
}

var _ ComprobanteStore = (*RedisStore)(nil)
