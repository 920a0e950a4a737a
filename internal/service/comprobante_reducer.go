package service

import "facturador/internal/model"

// Tagged transitions over the comprobante collection. The closed set of
// actions (load, add, update, remove) mirrors what the console dispatches;
// reducir is pure and always hands back a fresh slice.

type accion interface{ accionComprobante() }

type cargarComprobantes struct{ comprobantes []model.Comprobante }
type agregarComprobante struct{ comprobante model.Comprobante }
type actualizarComprobante struct{ comprobante model.Comprobante }
type eliminarComprobante struct{ id int64 }

func (cargarComprobantes) accionComprobante()    {}
func (agregarComprobante) accionComprobante()    {}
func (actualizarComprobante) accionComprobante() {}
func (eliminarComprobante) accionComprobante()   {}

func reducir(estado []model.Comprobante, a accion) []model.Comprobante {
	switch a := a.(type) {
	case cargarComprobantes:
		return append([]model.Comprobante{}, a.comprobantes...)

	case agregarComprobante:
		nuevo := make([]model.Comprobante, 0, len(estado)+1)
		nuevo = append(nuevo, estado...)
		return append(nuevo, a.comprobante)

	case actualizarComprobante:
		nuevo := make([]model.Comprobante, 0, len(estado))
		for _, c := range estado {
			if c.ID == a.comprobante.ID {
				nuevo = append(nuevo, a.comprobante)
				continue
			}
			nuevo = append(nuevo, c)
		}
		return nuevo

	case eliminarComprobante:
		nuevo := make([]model.Comprobante, 0, len(estado))
		for _, c := range estado {
			if c.ID != a.id {
				nuevo = append(nuevo, c)
			}
		}
		return nuevo
	}
	return estado
}
