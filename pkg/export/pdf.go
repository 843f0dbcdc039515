package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth  = 277.0 // A4 landscape minus margins
	pdfHeaderRow  = 8.0
	pdfBodyRow    = 7.0
	pdfFontFamily = "Arial"
)

// PDFRenderer lays a table out on landscape A4 pages, repeating the header
// row on each page and numbering pages in the footer.
type PDFRenderer struct{}

// Render writes the PDF document.
func (r *PDFRenderer) Render(w io.Writer, table Table) error {
	if len(table.Columns) == 0 {
		return ErrNoColumns
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	widths := columnWidths(table.Columns)

	header := func() {
		pdf.SetFont(pdfFontFamily, "B", 10)
		pdf.SetFillColor(230, 230, 230)
		for i, col := range table.Columns {
			pdf.CellFormat(widths[i], pdfHeaderRow, tr(col.Header), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont(pdfFontFamily, "", 9)
	}
	pdf.SetHeaderFunc(func() {
		if table.Title != "" {
			pdf.SetFont(pdfFontFamily, "B", 14)
			pdf.CellFormat(0, 10, tr(table.Title), "", 1, "C", false, 0, "")
			pdf.Ln(2)
		}
		header()
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(pdfFontFamily, "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AliasNbPages("")
	pdf.AddPage()

	for _, row := range table.Rows {
		for i := range table.Columns {
			pdf.CellFormat(widths[i], pdfBodyRow, tr(table.cell(row, i)), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func columnWidths(columns []Column) []float64 {
	var total float64
	for _, col := range columns {
		total += weight(col)
	}
	widths := make([]float64, len(columns))
	for i, col := range columns {
		widths[i] = pdfPageWidth * weight(col) / total
	}
	return widths
}

func weight(col Column) float64 {
	if col.Weight <= 0 {
		return 1
	}
	return col.Weight
}
