package reports

import (
	"fmt"
	"io"

	"github.com/360EntSecGroup-Skylar/excelize"
)

const (
	ordersSheet  = "Sheet1"
	summarySheet = "Summary"
)

var salesHeader = []string{"Order Code", "Date", "Customer", "Items", "Payment", "Shipping", "Gross Amount"}

func cell(col, row int) string {
	return fmt.Sprintf("%c%d", 'A'+col, row)
}

func writeXLSX(w io.Writer, r *SalesReport) error {
	xlsx := excelize.NewFile()

	for col, title := range salesHeader {
		xlsx.SetCellValue(ordersSheet, cell(col, 1), title)
	}
	for i, row := range r.Rows {
		n := i + 2
		xlsx.SetCellValue(ordersSheet, cell(0, n), row.OrderCode)
		xlsx.SetCellValue(ordersSheet, cell(1, n), row.Date)
		xlsx.SetCellValue(ordersSheet, cell(2, n), row.Customer)
		xlsx.SetCellValue(ordersSheet, cell(3, n), row.Items)
		xlsx.SetCellValue(ordersSheet, cell(4, n), row.PaymentStatus)
		xlsx.SetCellValue(ordersSheet, cell(5, n), row.ShippingStatus)
		xlsx.SetCellValue(ordersSheet, cell(6, n), row.GrossAmount)
	}

	xlsx.NewSheet(summarySheet)
	xlsx.SetCellValue(summarySheet, "A1", r.Title)
	xlsx.SetCellValue(summarySheet, "A2", "Period")
	xlsx.SetCellValue(summarySheet, "B2", r.Period())
	if s := r.Summary; s != nil {
		xlsx.SetCellValue(summarySheet, "A3", "Total Revenue")
		xlsx.SetCellValue(summarySheet, "B3", s.TotalRevenue)
		xlsx.SetCellValue(summarySheet, "A4", "Total Orders")
		xlsx.SetCellValue(summarySheet, "B4", s.TotalOrders)
		xlsx.SetCellValue(summarySheet, "A5", "Average Order Value")
		xlsx.SetCellValue(summarySheet, "B5", s.AvgOrderValue)

		xlsx.SetCellValue(summarySheet, "A7", "Month")
		xlsx.SetCellValue(summarySheet, "B7", "Revenue")
		xlsx.SetCellValue(summarySheet, "C7", "Orders")
		for i, m := range s.Monthly {
			n := i + 8
			xlsx.SetCellValue(summarySheet, cell(0, n), m.Month)
			xlsx.SetCellValue(summarySheet, cell(1, n), m.TotalAmount)
			xlsx.SetCellValue(summarySheet, cell(2, n), m.TotalOrders)
		}

		start := len(s.Monthly) + 9
		xlsx.SetCellValue(summarySheet, cell(0, start), "Product")
		xlsx.SetCellValue(summarySheet, cell(1, start), "Quantity")
		xlsx.SetCellValue(summarySheet, cell(2, start), "Revenue")
		for i, p := range s.TopProducts {
			n := start + 1 + i
			xlsx.SetCellValue(summarySheet, cell(0, n), p.Name)
			xlsx.SetCellValue(summarySheet, cell(1, n), p.Quantity)
			xlsx.SetCellValue(summarySheet, cell(2, n), p.Revenue)
		}
	}

	if err := xlsx.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx report: %w", err)
	}
	return nil
}
