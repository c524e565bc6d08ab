/*
PURPOSE:
  Aggregates projection records into per-approach summary statistics and
  emits a ranked recommendation.

REQUIREMENTS:
  User-specified:
  - Per-approach mean/min/max TGS, ranked ascending (conservative) to
    descending (optimistic).
  - Always recommend hybrid_correlation unless its correlation is
    invalid, then the configured default approach with a caveat.

  Implementation-discovered:
  - Records flagged insufficient are excluded from the statistics but
    stay in the exported record list.
  - Large divergence between approaches is flagged as a caveat, not
    rejected.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go
  - Pure function, no side effects.

ERROR HANDLING:
  - None; an approach with no usable records simply produces no stats.

USAGE:
  stats := engine.Summarize(records)
  rec := engine.Recommend(stats, corr, cfg.Calculation.DefaultApproach)

RELATED FILES:
  - internal/engine/runner.go
*/

package engine

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/apattnay/perfcast/internal/model"
)

// divergenceCaveatFactor is the conservative-to-optimistic mean spread
// beyond which the recommendation carries an outlier caveat.
const divergenceCaveatFactor = 3.0

// Summarize computes per-approach TGS statistics over the usable
// records, sorted by mean ascending (most conservative first).
func Summarize(records []model.ProjectionRecord) []model.ApproachStats {
	byApproach := make(map[model.Approach][]float64)
	var order []model.Approach
	for _, rec := range records {
		if rec.Insufficient {
			continue
		}
		if _, seen := byApproach[rec.Approach]; !seen {
			order = append(order, rec.Approach)
		}
		byApproach[rec.Approach] = append(byApproach[rec.Approach], rec.TGS)
	}

	stats := make([]model.ApproachStats, 0, len(order))
	for _, a := range order {
		values := byApproach[a]
		s := model.ApproachStats{
			Approach: a,
			MeanTGS:  stat.Mean(values, nil),
			MinTGS:   floats.Min(values),
			MaxTGS:   floats.Max(values),
			Count:    len(values),
		}
		if len(values) > 1 {
			s.StdTGS = stat.StdDev(values, nil)
		}
		stats = append(stats, s)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].MeanTGS < stats[j].MeanTGS
	})
	return stats
}

// Recommend produces the recommendation record from the ranked
// statistics and the correlation outcome.
func Recommend(stats []model.ApproachStats, corr *model.CorrelationResult, defaultApproach model.Approach) model.Recommendation {
	if len(stats) == 0 {
		return model.Recommendation{
			Approach: defaultApproach,
			Reason:   "no projections could be computed; falling back to the configured default approach",
			Caveats:  []string{"no usable simulation data across all frequencies"},
		}
	}

	conservative := stats[0]
	optimistic := stats[len(stats)-1]

	var caveats []string
	caveats = append(caveats,
		fmt.Sprintf("most conservative estimate: %s (avg %.2f tok/s)", conservative.Approach, conservative.MeanTGS),
		fmt.Sprintf("most optimistic estimate: %s (avg %.2f tok/s)", optimistic.Approach, optimistic.MeanTGS),
	)
	if len(stats) > 1 {
		caveats = append(caveats,
			fmt.Sprintf("range between approaches: %.2f tok/s", optimistic.MeanTGS-conservative.MeanTGS))
		if conservative.MeanTGS > 0 && optimistic.MeanTGS/conservative.MeanTGS > divergenceCaveatFactor {
			caveats = append(caveats,
				fmt.Sprintf("approach means diverge by more than %.0fx; treat the optimistic projections with care", divergenceCaveatFactor))
		}
	}

	hasHybrid := false
	for _, s := range stats {
		if s.Approach == model.HybridCorrelation {
			hasHybrid = true
		}
	}

	switch {
	case hasHybrid && corr != nil && corr.IsValid:
		return model.Recommendation{
			Approach: model.HybridCorrelation,
			Reason:   "hybrid correlation combines the measured baseline with the simulated discrepancy and is the most realistic estimate",
			Caveats:  caveats,
		}
	case hasHybrid:
		reason := "correlation between measured and simulated TGS is outside tolerance"
		if corr == nil {
			reason = "correlation could not be established at the baseline frequency"
		} else {
			caveats = append(caveats,
				fmt.Sprintf("correlation ratio %.4f exceeds tolerance %.0f%%", corr.Ratio, corr.Tolerance*100))
		}
		return model.Recommendation{
			Approach: defaultApproach,
			Reason:   fmt.Sprintf("%s; recommending the configured default approach instead of hybrid correlation", reason),
			Caveats:  caveats,
		}
	default:
		return model.Recommendation{
			Approach: defaultApproach,
			Reason:   "hybrid correlation was not enabled; recommending the configured default approach",
			Caveats:  caveats,
		}
	}
}
