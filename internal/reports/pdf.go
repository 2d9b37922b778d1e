package reports

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"
)

var pdfColumns = []struct {
	title string
	width float64
	align string
}{
	{"Order Code", 42, "L"},
	{"Date", 30, "L"},
	{"Customer", 40, "L"},
	{"Items", 12, "R"},
	{"Payment", 22, "L"},
	{"Shipping", 22, "L"},
	{"Gross (Rp)", 22, "R"},
}

func writePDF(w io.Writer, r *SalesReport) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(8, 10, 8)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, r.Title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 5, "Period: "+r.Period())
	pdf.Ln(5)
	if s := r.Summary; s != nil {
		pdf.Cell(0, 5, fmt.Sprintf("Revenue: Rp %s   Orders: %d   Average: Rp %.2f",
			strconv.FormatInt(s.TotalRevenue, 10), s.TotalOrders, s.AvgOrderValue))
		pdf.Ln(8)
	}

	pdf.SetFont("Helvetica", "B", 8)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 6, col.title, "1", 0, col.align, false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range r.Rows {
		values := []string{
			row.OrderCode,
			row.Date,
			row.Customer,
			strconv.Itoa(row.Items),
			row.PaymentStatus,
			row.ShippingStatus,
			strconv.FormatInt(row.GrossAmount, 10),
		}
		for i, col := range pdfColumns {
			pdf.CellFormat(col.width, 6, values[i], "1", 0, col.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if s := r.Summary; s != nil && len(s.TopProducts) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Cell(0, 6, "Top products")
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 8)
		for _, p := range s.TopProducts {
			pdf.Cell(0, 5, fmt.Sprintf("%s: %d pcs, Rp %d", p.Name, p.Quantity, p.Revenue))
			pdf.Ln(5)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf report: %w", err)
	}
	return nil
}
