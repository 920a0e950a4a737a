package model

import (
	"github.com/shopspring/decimal"
)

// TipoComprobante distingue los dos documentos de venta que emite la consola.
type TipoComprobante string

const (
	TipoBoleta  TipoComprobante = "BOLETA"
	TipoFactura TipoComprobante = "FACTURA"
)

// Prefijo returns the fixed serial-number prefix for the type:
// B001 for boletas, F001 for facturas.
func (t TipoComprobante) Prefijo() string {
	if t == TipoFactura {
		return "F001"
	}
	return "B001"
}

// ItemComprobante is one product line inside a comprobante.
// Nombre and ValorUnitario are snapshots taken when the product was added,
// so later catalog edits never rewrite an issued document.
type ItemComprobante struct {
	ProductoID    int64           `json:"productoId"`
	Nombre        string          `json:"nombre"`
	ValorUnitario decimal.Decimal `json:"valorUnitario"`
	Cantidad      int             `json:"cantidad"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

// Comprobante is an issued or in-progress sales document.
// ID 0 marks an unsaved draft; a real ID and NumeroComprobante are assigned
// on first successful save and are immutable afterwards.
// ClienteDocumento holds a DNI for boletas and a RUC for facturas; the core
// does not format-validate it.
type Comprobante struct {
	ID                int64             `json:"id"`
	Tipo              TipoComprobante   `json:"tipo"`
	NumeroComprobante string            `json:"numeroComprobante"`
	Fecha             string            `json:"fecha"` // YYYY-MM-DD
	ClienteNombre     string            `json:"clienteNombre"`
	ClienteDocumento  string            `json:"clienteDocumento"`
	Items             []ItemComprobante `json:"items"`
	Total             decimal.Decimal   `json:"total"`
	EmpresaID         int64             `json:"empresaId"`
}
