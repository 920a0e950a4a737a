package service

import (
	"strconv"
	"strings"

	"facturador/internal/model"

	"github.com/shopspring/decimal"
)

// Line-item aggregation for the comprobante form. Every function is a pure
// transformation: the input slice is never mutated.

// AgregarProducto adds one unit of producto to the list. When an item for
// the same producto already exists its cantidad is bumped by one; otherwise
// a new item is appended with a snapshot of nombre and valorUnitario.
func AgregarProducto(items []model.ItemComprobante, producto model.Producto) []model.ItemComprobante {
	for i, item := range items {
		if item.ProductoID == producto.ID {
			nuevo := append([]model.ItemComprobante{}, items...)
			cantidad := item.Cantidad + 1
			nuevo[i].Cantidad = cantidad
			nuevo[i].Subtotal = item.ValorUnitario.Mul(decimal.NewFromInt(int64(cantidad)))
			return nuevo
		}
	}
	return append(append([]model.ItemComprobante{}, items...), model.ItemComprobante{
		ProductoID:    producto.ID,
		Nombre:        producto.Nombre,
		ValorUnitario: producto.ValorUnitario,
		Cantidad:      1,
		Subtotal:      producto.ValorUnitario,
	})
}

// ActualizarCantidad sets the cantidad of the matching item, recomputing its
// subtotal. The raw form value is parsed here: zero or negative removes the
// item entirely, unparsable input leaves the list unchanged.
func ActualizarCantidad(items []model.ItemComprobante, productoID int64, cantidad string) []model.ItemComprobante {
	n, err := strconv.Atoi(strings.TrimSpace(cantidad))
	if err != nil {
		return items
	}
	if n <= 0 {
		return EliminarItem(items, productoID)
	}

	nuevo := append([]model.ItemComprobante{}, items...)
	for i, item := range nuevo {
		if item.ProductoID == productoID {
			nuevo[i].Cantidad = n
			nuevo[i].Subtotal = item.ValorUnitario.Mul(decimal.NewFromInt(int64(n)))
		}
	}
	return nuevo
}

// EliminarItem filters out the item for productoID. Removing an id that is
// not present is a no-op.
func EliminarItem(items []model.ItemComprobante, productoID int64) []model.ItemComprobante {
	nuevo := make([]model.ItemComprobante, 0, len(items))
	for _, item := range items {
		if item.ProductoID != productoID {
			nuevo = append(nuevo, item)
		}
	}
	return nuevo
}

// CalcularTotal sums the subtotals; zero for an empty list.
func CalcularTotal(items []model.ItemComprobante) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal)
	}
	return total
}
