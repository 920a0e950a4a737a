package model

import "github.com/shopspring/decimal"

// Producto is a catalog entry owned by the remote backend. The comprobante
// core only reads it when building line items.
type Producto struct {
	ID            int64           `json:"id"`
	Nombre        string          `json:"nombre"`
	Descripcion   string          `json:"descripcion"`
	ValorUnitario decimal.Decimal `json:"valorUnitario"`
	UnidadMedida  string          `json:"unidadMedida"`
	EmpresaID     int64           `json:"empresaId"`
}
