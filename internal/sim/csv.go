package sim

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

// WriteSummaryCSV writes one row per run: historical offset percent, final
// total fund value, status, and the retirement snapshot (NaN when income
// never stopped).
func WriteSummaryCSV(path string, runs []RunResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteSummary(f, runs)
}

func WriteSummary(out io.Writer, runs []RunResult) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	if err := w.Write([]string{"start", "final", "status", "retirement_value"}); err != nil {
		return err
	}
	for _, r := range runs {
		row := []string{
			strconv.FormatFloat(r.OffsetPercent, 'f', 5, 64),
			strconv.FormatFloat(r.FinalValue, 'f', 2, 64),
			r.Status(),
			strconv.FormatFloat(r.RetirementValue, 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteLedgerCSV writes the verbose per-step rows. Fund columns follow the
// portfolio's priority order.
func WriteLedgerCSV(path string, fundNames []string, rows []LedgerRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"run", "year", "total_income", "total_expense"}
	for _, name := range fundNames {
		header = append(header,
			name+"_contributed",
			name+"_withdrawn",
			name+"_value",
		)
	}
	header = append(header, "bankrupt")
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			strconv.Itoa(r.Run),
			strconv.FormatFloat(r.Year, 'f', 5, 64),
			fmtFloat(r.TotalIncome),
			fmtFloat(r.TotalExpense),
		}
		for _, ff := range r.Funds {
			row = append(row, fmtFloat(ff.Contributed), fmtFloat(ff.Withdrawn), fmtFloat(ff.Value))
		}
		row = append(row, strconv.FormatBool(r.Bankrupt))
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
