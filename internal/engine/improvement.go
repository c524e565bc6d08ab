/*
PURPOSE:
  Turns the configured current->future improvement factors into a single
  scalar improvement multiplier, optionally weighted by the observed
  resource mix.

REQUIREMENTS:
  User-specified:
  - time_ratio factors contribute 1/value; multiplier factors contribute
    value directly. The kind is declared in configuration, never inferred.
  - Communication combines bandwidth and latency by geometric mean.
  - Overall improvement is a weighted geometric combination; a workload's
    speedup tracks the slowest contributing resource class, not a linear
    average.

  Implementation-discovered:
  - Fabrication applies with exponent 1 (to every category) unless the
    frequency point recorded fabrication-category durations, in which
    case its normalized weight is used.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go, internal/engine/approaches.go

ERROR HANDLING:
  - None; Validate() guarantees positive factor values. No upper bound
    is enforced; the comparison step flags outliers instead.

USAGE:
  imp := engine.OverallImprovement(factors, point.CategoryWeights(), fallback)

RELATED FILES:
  - internal/config/config.go (factor declarations)
*/

package engine

import (
	"math"

	"github.com/apattnay/perfcast/internal/model"
)

// CommunicationSpeedup combines the bandwidth and latency multipliers
// via geometric mean.
func CommunicationSpeedup(f model.ImprovementFactors) float64 {
	return math.Sqrt(f.CommunicationBandwidth.Speedup() * f.CommunicationLatency.Speedup())
}

// OverallImprovement computes the weighted geometric combination of the
// per-category speedups. Weights come from the resource-category
// duration fractions when available, otherwise from the configured
// fallback weights. Weights are normalized to sum to 1 over the
// weighted categories; fabrication keeps exponent 1 when it carries no
// weight of its own. The result is a positive scalar, expected > 1 for
// forward-looking hardware generations.
func OverallImprovement(
	factors model.ImprovementFactors,
	weights map[model.ResourceCategory]float64,
	fallback map[model.ResourceCategory]float64,
) float64 {
	if len(weights) == 0 {
		weights = fallback
	}

	speedups := map[model.ResourceCategory]float64{
		model.CategoryCompute:       factors.Compute.Speedup(),
		model.CategoryMemory:        factors.MemoryBandwidth.Speedup(),
		model.CategoryCommunication: CommunicationSpeedup(factors),
		model.CategoryFabrication:   factors.Fabrication.Speedup(),
	}

	// Normalize over the categories that both have a speedup and a
	// weight. The "other" bucket carries no improvement of its own.
	// Iteration follows the fixed category order so identical inputs
	// always produce bit-identical results.
	var total float64
	for _, cat := range model.Categories() {
		if _, ok := speedups[cat]; ok && weights[cat] > 0 {
			total += weights[cat]
		}
	}
	if total <= 0 {
		return speedups[model.CategoryFabrication]
	}

	overall := 1.0
	fabricationWeighted := false
	for _, cat := range model.Categories() {
		s, ok := speedups[cat]
		w := weights[cat]
		if !ok || w <= 0 {
			continue
		}
		if cat == model.CategoryFabrication {
			fabricationWeighted = true
		}
		overall *= math.Pow(s, w/total)
	}
	if !fabricationWeighted {
		overall *= speedups[model.CategoryFabrication]
	}
	return overall
}
