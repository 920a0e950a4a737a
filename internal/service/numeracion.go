package service

import (
	"fmt"

	"facturador/internal/model"
)

// SiguienteNumero derives the next serial number for a tipo by counting the
// comprobantes of that tipo currently in the collection: count + 1, padded
// to five digits behind the fixed prefix. Counters run independently per
// tipo and are assigned once, at creation.
//
// Counting (instead of keeping a monotonic sequence) means that deleting a
// comprobante and creating a new one can reissue a previously used number.
// Product owners were flagged; the behavior is kept as-is and pinned by a
// test rather than silently changed.
func SiguienteNumero(comprobantes []model.Comprobante, tipo model.TipoComprobante) string {
	existentes := 0
	for _, c := range comprobantes {
		if c.Tipo == tipo {
			existentes++
		}
	}
	return fmt.Sprintf("%s-%05d", tipo.Prefijo(), existentes+1)
}
