package simulation

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"solar-proposal/internal/finance"
)

// WriteScheduleCSV writes the yearly projection to path, creating parent directories.
func WriteScheduleCSV(path string, rows []finance.ProjectionYear) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeScheduleCSV(f, rows)
}

// EncodeScheduleCSV writes the yearly projection as CSV to w.
func EncodeScheduleCSV(w io.Writer, rows []finance.ProjectionYear) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"year",
		"generation_factor",
		"revenue",
		"cost",
		"profit",
		"cumulative_profit",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			strconv.Itoa(r.Year),
			fmtFloat(r.GenerationFactor),
			fmtMoney(r.Revenue),
			fmtMoney(r.Cost),
			fmtMoney(r.Profit),
			fmtMoney(r.CumulativeProfit),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

// fmtMoney rounds KRW amounts to whole won.
func fmtMoney(x float64) string {
	return strconv.FormatFloat(finance.Round(x, 0), 'f', 0, 64)
}
