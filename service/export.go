package service

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

type lineCSVRow struct {
	Phone      string `csv:"phone"`
	Type       string `csv:"type"`
	Cost       string `csv:"cost"`
	FinalTotal string `csv:"final_total"`
}

// WriteCSV writes one row per billed line, grouped by line type.
func WriteCSV(w io.Writer, a *Analysis) error {
	rows := make([]*lineCSVRow, 0, len(a.Lines))
	for _, g := range a.Groups {
		for _, l := range g.Lines {
			rows = append(rows, &lineCSVRow{
				Phone:      l.Phone,
				Type:       string(l.Type),
				Cost:       l.Cost.StringFixed(2),
				FinalTotal: l.FinalTotal.StringFixed(3),
			})
		}
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}
