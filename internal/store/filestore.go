package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"facturador/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// FileStore persists each empresa collection as a JSON array in
// <dir>/<clave>.json. This is the default backend.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) Cargar(_ context.Context, empresaID int64) []model.Comprobante {
	path := filepath.Join(s.dir, Clave(empresaID)+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Error().Err(err).Str("clave", Clave(empresaID)).Msg("error al cargar comprobantes")
		}
		return []model.Comprobante{}
	}

	var comprobantes []model.Comprobante
	if err := json.Unmarshal(data, &comprobantes); err != nil {
		log.Error().Err(err).Str("clave", Clave(empresaID)).Msg("comprobantes corruptos, se descartan")
		return []model.Comprobante{}
	}
	if comprobantes == nil {
		comprobantes = []model.Comprobante{}
	}
	return comprobantes
}

func (s *FileStore) Guardar(_ context.Context, empresaID int64, comprobantes []model.Comprobante) {
	if err := s.escribir(empresaID, comprobantes); err != nil {
		log.Error().Err(err).Str("clave", Clave(empresaID)).Msg("error al guardar comprobantes")
	}
}

// escribir writes through a temp file and renames it, so a failed write
// never truncates the previous entry.
func (s *FileStore) escribir(empresaID int64, comprobantes []model.Comprobante) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(comprobantes)
	if err != nil {
		return err
	}
	tmp := filepath.Join(s.dir, "."+Clave(empresaID)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, filepath.Join(s.dir, Clave(empresaID)+".json"))
}

var _ ComprobanteStore = (*FileStore)(nil)
