// Package store holds the local persistence boundary for comprobantes.
//
// Implementations follow a log-and-continue policy: a read failure degrades
// to an empty collection and a write failure is logged and swallowed. The
// in-memory collection owned by the service is authoritative; durability is
// best-effort only, and callers never see a store error.
package store

import (
	"context"
	"fmt"

	"facturador/internal/model"
)

// ComprobanteStore reads and writes the full comprobante collection of one
// empresa under a key derived from its identifier. One entry per empresa;
// no cross-key effects.
type ComprobanteStore interface {
	Cargar(ctx context.Context, empresaID int64) []model.Comprobante
	Guardar(ctx context.Context, empresaID int64, comprobantes []model.Comprobante)
}

// Clave derives the persistence key for one empresa.
func Clave(empresaID int64) string {
	return fmt.Sprintf("comprobantes_empresa_%d", empresaID)
}
