package reports

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

func writeCSV(w io.Writer, r *SalesReport) error {
	if err := gocsv.Marshal(r.Rows, w); err != nil {
		return fmt.Errorf("failed to write csv report: %w", err)
	}
	return nil
}
