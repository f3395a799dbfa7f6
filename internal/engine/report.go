package engine

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"lp-grapher/internal/lp"
)

// Report renders a solved program as a CSV document with the same content
// as the original spreadsheet export: a result summary followed by the
// feasible-region vertices.
func Report(prob *lp.Problem, sol *lp.Solution) ([]byte, error) {
	records := [][]string{
		{"Status", string(sol.Status)},
	}
	if sol.Optimal != nil {
		records = append(records,
			[]string{"Optimal Z", formatFloat(sol.Optimal.Z)},
			[]string{"Optimal x", formatFloat(sol.Optimal.Point.X)},
			[]string{"Optimal y", formatFloat(sol.Optimal.Point.Y)},
		)
	}

	records = append(records, nil, []string{"Constraints"})
	for _, c := range prob.Constraints {
		records = append(records, []string{c.String()})
	}

	records = append(records, nil, []string{"Feasible Region Vertices"}, []string{"x", "y"})
	for _, p := range sol.FeasibleRegion {
		records = append(records, []string{formatFloat(p.X), formatFloat(p.Y)})
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, rec := range records {
		if rec == nil {
			rec = []string{""}
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReportFilename returns the timestamped attachment name for a report.
func ReportFilename(now time.Time) string {
	return fmt.Sprintf("Reporte_PL_%s.csv", now.Format("20060102_150405"))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
