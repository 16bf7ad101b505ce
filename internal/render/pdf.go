package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"khaata/pkg/models"
)

// Grid geometry in millimeters, A4 portrait.
const (
	colDescription = 110
	colQuantity    = 30
	colAmount      = 50
	rowHeight      = 8
	lineHeight     = 5
	breakMargin    = 15
)

// Render builds the layout, ensures dir exists and writes the PDF artifact.
// It returns the path of the written file. A failure here never touches the
// persisted invoice record; rendering is always retryable.
func Render(client models.Client, inv models.Invoice, profile models.Profile, dir string) (string, error) {
	layout, err := BuildLayout(client, inv, profile)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &RenderError{Op: "Render", Err: fmt.Errorf("%w: %v", ErrWriteFailed, err)}
	}

	path := filepath.Join(dir, layout.Filename)
	if err := WritePDF(layout, path); err != nil {
		return "", err
	}
	return path, nil
}

// WritePDF paints the layout onto an A4 page stream. Row overflow is
// handled by the surface's auto page break; the table header is drawn once
// per table, not repeated after a break. The creation date is pinned to the
// invoice date so identical inputs yield identical bytes.
func WritePDF(l *Layout, path string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(l.Date)
	pdf.SetAutoPageBreak(true, breakMargin)

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Courier", "B", 20)
		pdf.CellFormat(0, 10, "INVOICE", "", 1, "R", false, 0, "")
		pdf.Ln(5)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Courier", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	// Sender block
	pdf.SetFont("Courier", "B", 12)
	pdf.CellFormat(0, lineHeight, l.SenderName, "", 1, "L", false, 0, "")
	pdf.SetFont("Courier", "", 10)
	for _, line := range l.SenderLines {
		pdf.CellFormat(0, lineHeight, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(10)

	// Bill-to (left) and invoice metadata (right) share a start y.
	yStart := pdf.GetY()
	pdf.SetFont("Courier", "B", 11)
	pdf.CellFormat(100, lineHeight, "BILL TO:", "", 1, "L", false, 0, "")
	pdf.SetFont("Courier", "", 10)
	for _, line := range l.BillTo {
		pdf.CellFormat(100, lineHeight, line, "", 1, "L", false, 0, "")
	}
	pdf.SetXY(120, yStart)
	for _, line := range l.Meta {
		pdf.CellFormat(0, lineHeight, line, "", 1, "R", false, 0, "")
		pdf.SetX(120)
	}
	pdf.Ln(20)

	drawTableHeader(pdf)

	for _, sec := range l.Sections {
		pdf.SetFont("Courier", "B", 10)
		pdf.CellFormat(0, 10, sec.Title, "", 1, "L", false, 0, "")
		pdf.SetFont("Courier", "", 10)
		for _, row := range sec.Rows {
			pdf.CellFormat(colDescription, rowHeight, row.Description, "1", 0, "L", false, 0, "")
			pdf.CellFormat(colQuantity, rowHeight, row.Quantity, "1", 0, "C", false, 0, "")
			pdf.CellFormat(colAmount, rowHeight, row.Amount, "1", 1, "R", false, 0, "")
		}
	}

	// Total row: label cell spans description+quantity columns.
	pdf.Ln(5)
	pdf.SetFont("Courier", "B", 12)
	pdf.SetFillColor(220, 220, 220)
	pdf.CellFormat(colDescription+colQuantity, 12, l.TotalLabel, "1", 0, "R", true, 0, "")
	pdf.CellFormat(colAmount, 12, l.TotalValue, "1", 1, "R", true, 0, "")

	// Bank block
	pdf.Ln(20)
	pdf.SetFont("Courier", "B", 10)
	pdf.CellFormat(0, lineHeight, "Payment Information:", "", 1, "L", false, 0, "")
	pdf.SetFont("Courier", "", 10)
	for _, line := range l.BankLines {
		pdf.CellFormat(0, lineHeight, line, "", 1, "L", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return &RenderError{Op: "WritePDF", Err: fmt.Errorf("%w: %v", ErrWriteFailed, err)}
	}
	return nil
}

// drawTableHeader paints the inverted header row: dark fill, light text.
func drawTableHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Courier", "B", 10)
	pdf.SetFillColor(0, 0, 0)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(colDescription, rowHeight, "Description", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colQuantity, rowHeight, "Qty/Hrs", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colAmount, rowHeight, "Amount", "1", 1, "C", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(255, 255, 255)
}
