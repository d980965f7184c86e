package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// layoutPDF lays the report model out page by page: title and key findings,
// one page per summary section, the file overview, then the column detail
// pages. Charts are embedded full width.
func layoutPDF(rep *Report) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(rep.Title, true)
	pdf.SetMargins(10, 10, 10)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Title page with key findings
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr(rep.Title), "", 1, "C", false, 0, "")
	pdf.Ln(10)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "AI-Driven Insights", "", 1, "L", false, 0, "")
	pdf.Ln(5)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Key Findings:", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, finding := range rep.KeyFindings {
		pdf.SetX(15)
		pdf.MultiCell(180, 8, tr("- "+finding), "", "L", false)
	}

	// Summary sections
	for i := range rep.Sections {
		sec := &rep.Sections[i]
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(sec.Title), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, line := range sec.Lines {
			pdf.MultiCell(190, 8, tr(line), "", "L", false)
		}
		if len(sec.Chart) > 0 {
			embedPNG(pdf, fmt.Sprintf("section_%d", i), sec.Chart)
		}
	}

	// File overview
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "File Overview", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, line := range rep.Overview {
		pdf.CellFormat(0, 8, tr(line), "", 1, "L", false, 0, "")
	}

	// Column detail
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "Column Analysis", "", 1, "L", false, 0, "")

	for i := range rep.Columns {
		col := &rep.Columns[i]
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 10, tr("Column: "+col.Name), "", 1, "L", false, 0, "")

		if col.PrimaryKey {
			pdf.SetFont("Arial", "B", 10)
			pdf.SetTextColor(0, 128, 0)
			pdf.CellFormat(0, 8, "Potential Primary Key", "", 1, "L", false, 0, "")
			pdf.SetTextColor(0, 0, 0)
		}

		pdf.SetFont("Arial", "", 10)
		for _, line := range col.Lines {
			pdf.CellFormat(0, 8, tr(line), "", 1, "L", false, 0, "")
		}

		if len(col.TrendLines) > 0 {
			pdf.Ln(5)
			pdf.SetFont("Arial", "B", 10)
			pdf.CellFormat(0, 8, "Trend Analysis:", "", 1, "L", false, 0, "")
			pdf.SetFont("Arial", "", 10)
			for _, line := range col.TrendLines {
				pdf.CellFormat(0, 8, tr(line), "", 1, "L", false, 0, "")
			}
		}

		if len(col.TopValues) > 0 {
			pdf.Ln(5)
			pdf.SetFont("Arial", "B", 10)
			pdf.CellFormat(0, 8, "Top Values:", "", 1, "L", false, 0, "")
			pdf.SetFont("Arial", "", 10)
			for _, line := range col.TopValues {
				pdf.CellFormat(0, 8, tr(line), "", 1, "L", false, 0, "")
			}
		}

		if len(col.Chart) > 0 {
			embedPNG(pdf, "col_"+col.Name, col.Chart)
		}
	}

	if pdf.Err() {
		return nil, pdf.Error()
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// embedPNG registers in-memory PNG bytes and places them full width at the
// current position. Images are always the last element on their page, so the
// cursor is not advanced past them.
func embedPNG(pdf *fpdf.Fpdf, name string, data []byte) {
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	pdf.Ln(3)
	pdf.ImageOptions(name, 10, pdf.GetY(), 190, 0, false, opts, 0, "")
}
