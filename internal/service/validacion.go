package service

import "facturador/internal/model"

// ErroresValidacion is the field-keyed ErrorSet Guardar returns when it
// rejects a draft. Only failing fields are present.
type ErroresValidacion map[string]string

func (ErroresValidacion) Error() string { return "Error de validacion" }

// ValidarComprobante runs the three required-field checks. The checks are
// independent: none of them short-circuits the others.
func ValidarComprobante(c model.Comprobante) ErroresValidacion {
	errores := ErroresValidacion{}
	if c.ClienteNombre == "" {
		errores["clienteNombre"] = "El nombre del cliente es obligatorio"
	}
	if c.ClienteDocumento == "" {
		errores["clienteDocumento"] = "El documento del cliente es obligatorio"
	}
	if len(c.Items) == 0 {
		errores["items"] = "Debe agregar al menos un producto"
	}
	return errores
}
