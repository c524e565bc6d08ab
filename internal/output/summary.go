/*
PURPOSE:
  Prints a human-readable summary of a projection run to the console.

REQUIREMENTS:
  User-specified:
  - Frequency x approach TGS table, correlation status, improvement
    factor, recommendation with caveats, warnings.

  Implementation-discovered:
  - Insufficient-data cells are shown as "n/a" rather than 0.00 so a
    sparse sweep is visually distinct from a slow one.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go
  - Consumes: internal/model.Report

ERROR HANDLING:
  - Best effort; write errors to the console are ignored.

USAGE:
  output.PrintSummary(os.Stdout, report)

RELATED FILES:
  - internal/engine/compare.go
*/

package output

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/apattnay/perfcast/internal/model"
)

// PrintSummary writes the run summary table and recommendation.
func PrintSummary(w io.Writer, report *model.Report) {
	fmt.Fprintf(w, "\nHardware projection: %s -> %s (overall improvement %.2fx)\n\n",
		report.CurrentHardware, report.FutureHardware, report.Improvement)

	printTGSTable(w, report)

	if c := report.Correlation; c != nil {
		status := "INVALID"
		if c.IsValid {
			status = "valid"
		}
		fmt.Fprintf(w, "Correlation @ %dMHz: measured %.2f tok/s, simulated %.2f tok/s, ratio %.4f (%s, tolerance %.0f%%)\n",
			c.BaselineFrequencyMHz, c.MeasuredTGS, c.SimulatedTGS, c.Ratio, status, c.Tolerance*100)
	} else {
		fmt.Fprintln(w, "Correlation: unavailable")
	}

	for _, s := range report.Stats {
		fmt.Fprintf(w, "  %-22s mean %.2f tok/s  (min %.2f, max %.2f, std %.2f, n=%d)\n",
			s.Approach, s.MeanTGS, s.MinTGS, s.MaxTGS, s.StdTGS, s.Count)
	}

	fmt.Fprintf(w, "\nRecommended approach: %s\n  %s\n", report.Recommendation.Approach, report.Recommendation.Reason)
	for _, c := range report.Recommendation.Caveats {
		fmt.Fprintf(w, "  caveat: %s\n", c)
	}

	if len(report.Scaling) > 0 {
		fmt.Fprintln(w, "\nMulti-tile scaling:")
		for _, e := range report.Scaling {
			fmt.Fprintf(w, "  %-12s (%3d tiles) %s @ %dMHz: ttft %.3fs, %.2f tok/s\n",
				e.Label, e.Tiles, e.Approach, e.FrequencyMHz, e.TTFTSeconds, e.TGS)
		}
	}

	if len(report.Warnings) > 0 {
		fmt.Fprintf(w, "\n%d warning(s):\n", len(report.Warnings))
		for _, warn := range report.Warnings {
			fmt.Fprintf(w, "  - %s\n", warn)
		}
	}
	fmt.Fprintln(w)
}

// printTGSTable lays out projected TGS as frequency rows by approach
// columns, with the current-hardware reference first.
func printTGSTable(w io.Writer, report *model.Report) {
	baselineTGS := make(map[int]model.ProjectionRecord)
	for _, rec := range report.Baseline {
		baselineTGS[rec.FrequencyMHz] = rec
	}

	var approaches []model.Approach
	byKey := make(map[model.Approach]map[int]model.ProjectionRecord)
	freqSet := make(map[int]bool)
	for _, rec := range report.Records {
		if byKey[rec.Approach] == nil {
			byKey[rec.Approach] = make(map[int]model.ProjectionRecord)
			approaches = append(approaches, rec.Approach)
		}
		byKey[rec.Approach][rec.FrequencyMHz] = rec
		freqSet[rec.FrequencyMHz] = true
	}

	var freqs []int
	for f := range freqSet {
		freqs = append(freqs, f)
	}
	sort.Ints(freqs)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "freq (MHz)\tcurrent (tok/s)")
	for _, a := range approaches {
		fmt.Fprintf(tw, "\t%s", a)
	}
	fmt.Fprintln(tw)

	for _, f := range freqs {
		fmt.Fprintf(tw, "%d\t%s", f, cellTGS(baselineTGS[f]))
		for _, a := range approaches {
			fmt.Fprintf(tw, "\t%s", cellTGS(byKey[a][f]))
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

func cellTGS(rec model.ProjectionRecord) string {
	if rec.Insufficient || rec.Approach == "" {
		return "n/a"
	}
	s := fmt.Sprintf("%.2f", rec.TGS)
	if rec.Approximated {
		s += "*"
	}
	return s
}
