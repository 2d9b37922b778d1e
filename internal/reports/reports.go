// Package reports renders the sales report in the formats offered for
// download: CSV, XLSX and PDF.
package reports

import (
	"fmt"
	"io"
	"strings"
	"time"

	"kayoemoeda/internal/models"
	"kayoemoeda/internal/services"
)

// Format is a report file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat accepts csv, xlsx or pdf; empty means csv.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatXLSX, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("unsupported report format %q", s)
}

// ContentType is the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	}
	return "text/csv; charset=utf-8"
}

// SalesRow is one order line of the sales report.
type SalesRow struct {
	OrderCode      string `csv:"order_code"`
	Date           string `csv:"date"`
	Customer       string `csv:"customer"`
	Items          int    `csv:"items"`
	PaymentStatus  string `csv:"payment_status"`
	ShippingStatus string `csv:"shipping_status"`
	GrossAmount    int64  `csv:"gross_amount"`
}

// SalesReport is everything a rendered report shows.
type SalesReport struct {
	Title       string
	GeneratedAt time.Time
	Start       *time.Time
	End         *time.Time
	Rows        []SalesRow
	Summary     *services.RevenueInsights
}

// BuildSalesReport turns sale orders and their aggregate into a report.
func BuildSalesReport(orders []models.Order, summary *services.RevenueInsights, start, end *time.Time) *SalesReport {
	rows := make([]SalesRow, 0, len(orders))
	for _, o := range orders {
		customer := o.RecipientName
		if o.User != nil && o.User.Name != "" {
			customer = o.User.Name
		}
		units := 0
		for _, it := range o.Items {
			units += it.Quantity
		}
		rows = append(rows, SalesRow{
			OrderCode:      o.OrderCode,
			Date:           o.CreatedAt.In(time.Local).Format("2006-01-02 15:04"),
			Customer:       customer,
			Items:          units,
			PaymentStatus:  string(o.PaymentStatus),
			ShippingStatus: string(o.ShippingStatus),
			GrossAmount:    o.GrossAmount,
		})
	}
	return &SalesReport{
		Title:       "Kayoe Moeda Sales Report",
		GeneratedAt: time.Now(),
		Start:       start,
		End:         end,
		Rows:        rows,
		Summary:     summary,
	}
}

// Period describes the covered date range for headers.
func (r *SalesReport) Period() string {
	const layout = "2006-01-02"
	switch {
	case r.Start != nil && r.End != nil:
		return r.Start.Format(layout) + " - " + r.End.Add(-time.Nanosecond).Format(layout)
	case r.Start != nil:
		return "since " + r.Start.Format(layout)
	case r.End != nil:
		return "until " + r.End.Add(-time.Nanosecond).Format(layout)
	}
	return "all time"
}

// Filename is the suggested download name for f.
func (r *SalesReport) Filename(f Format) string {
	return fmt.Sprintf("sales-report-%s.%s", r.GeneratedAt.Format("20060102-150405"), f)
}

// Write renders r in format f.
func Write(w io.Writer, f Format, r *SalesReport) error {
	switch f {
	case FormatCSV:
		return writeCSV(w, r)
	case FormatXLSX:
		return writeXLSX(w, r)
	case FormatPDF:
		return writePDF(w, r)
	}
	return fmt.Errorf("unsupported report format %q", f)
}
