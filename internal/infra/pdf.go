package infra

// pdf.go — printable comprobante rendering with go-pdf/fpdf.
// A7-ish ticket layout: empresa header, tipo + numero, fecha, cliente block,
// item table (producto, unit price, quantity, subtotal) and a bold total.
// Output goes to storagePath/comprobante_<numero>.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"facturador/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerarComprobantePDF writes the PDF for an issued comprobante and
// returns the absolute path of the generated file. razonSocial heads the
// ticket; pass an empty string when the empresa is unknown.
func GenerarComprobantePDF(c *model.Comprobante, razonSocial, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("comprobante_%s.pdf", c.NumeroComprobante)
	filePath := filepath.Join(storagePath, fileName)

	// 74mm × 105mm ≈ A7, close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	// ── Header ───────────────────────────────────────────────────────────────
	if razonSocial == "" {
		razonSocial = "Comprobante de Venta"
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, razonSocial, "", 1, "C", false, 0, "")

	tipoLabel := "Boleta de Venta"
	if c.Tipo == model.TipoFactura {
		tipoLabel = "Factura"
	}
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, tipoLabel, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Document info ────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, c.NumeroComprobante, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, "Fecha: "+c.Fecha, "", 1, "L", false, 0, "")

	docLabel := "DNI"
	if c.Tipo == model.TipoFactura {
		docLabel = "RUC"
	}
	pdf.CellFormat(contentW, 4, "Cliente: "+c.ClienteNombre, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, docLabel+": "+c.ClienteDocumento, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Items ────────────────────────────────────────────────────────────────
	col1 := contentW * 0.44 // producto
	col2 := contentW * 0.20 // unit price
	col3 := contentW * 0.12 // qty
	col4 := contentW * 0.24 // subtotal

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "P. Unit.", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col3, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col4, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, item := range c.Items {
		// truncate on runes so multibyte names never get split mid-sequence
		nombre := item.Nombre
		if r := []rune(nombre); len(r) > 18 {
			nombre = string(r[:17]) + "…"
		}
		pdf.CellFormat(col1, 5, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, "S/ "+item.ValorUnitario.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col3, 5, fmt.Sprintf("x%d", item.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col4, 5, "S/ "+item.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2+col3, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 6, "S/ "+c.Total.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "¡Gracias por su compra!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
