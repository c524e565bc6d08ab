/*
PURPOSE:
  Reduces raw per-transition simulation rows for one frequency into
  per-category duration totals (the FrequencyPoint).

REQUIREMENTS:
  User-specified:
  - Track only resources under the configured prefix (default "gt/").
  - Classify rows by ordered substring rules, first match wins.
  - Unmatched tracked rows land in the "other" category.

  Implementation-discovered:
  - An empty row set must not fail the run: it yields an all-zero point
    and the caller surfaces a warning. Downstream treats an all-zero
    point as "insufficient data" rather than dividing by zero.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go
  - Consumes: internal/model.RawRow, internal/config.ClassifierRule

ERROR HANDLING:
  - Negative durations are dropped (and counted as a warning upstream).

USAGE:
  point := engine.Aggregate(1600, rows, cfg.Data.ResourcePrefix, cfg.Data.Rules)

RELATED FILES:
  - internal/engine/improvement.go (consumes the category weights)
*/

package engine

import (
	"strings"

	"github.com/apattnay/perfcast/internal/config"
	"github.com/apattnay/perfcast/internal/model"
)

// Aggregate builds the FrequencyPoint for one frequency from its raw
// simulation rows. Rows outside the tracked prefix and rows with
// negative durations are ignored.
func Aggregate(freqMHz int, rows []model.RawRow, prefix string, rules []config.ClassifierRule) model.FrequencyPoint {
	point := model.FrequencyPoint{
		FrequencyMHz:      freqMHz,
		CategoryDurations: make(map[model.ResourceCategory]float64),
	}

	for _, row := range rows {
		if prefix != "" && !strings.HasPrefix(row.Resource, prefix) {
			continue
		}
		if row.Duration < 0 {
			continue
		}

		point.RowCount++
		point.TotalDuration += row.Duration

		rule, ok := matchRule(row.Resource, rules)
		if !ok {
			point.CategoryDurations[model.CategoryOther] += row.Duration
			continue
		}
		if len(rule.Split) > 0 {
			for cat, frac := range rule.Split {
				point.CategoryDurations[cat] += row.Duration * frac
			}
			continue
		}
		point.CategoryDurations[rule.Category] += row.Duration
	}

	return point
}

// matchRule returns the first rule whose substrings all occur in the
// resource identifier.
func matchRule(resource string, rules []config.ClassifierRule) (config.ClassifierRule, bool) {
	for _, rule := range rules {
		matched := true
		for _, sub := range rule.Contains {
			if !strings.Contains(resource, sub) {
				matched = false
				break
			}
		}
		if matched {
			return rule, true
		}
	}
	return config.ClassifierRule{}, false
}
