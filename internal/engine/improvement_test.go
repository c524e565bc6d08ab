package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apattnay/perfcast/internal/config"
	"github.com/apattnay/perfcast/internal/model"
)

func referenceFactors() model.ImprovementFactors {
	return config.DefaultConfig().Hardware.Future.Improvements
}

func TestCommunicationSpeedup(t *testing.T) {
	// sqrt(12.5 * 150)
	got := CommunicationSpeedup(referenceFactors())
	assert.InDelta(t, 43.30127, got, 1e-4)
}

func TestFactorSpeedup(t *testing.T) {
	t.Run("TimeRatioInverts", func(t *testing.T) {
		f := model.ImprovementFactor{Value: 0.375, Kind: model.TimeRatio}
		assert.InDelta(t, 2.6667, f.Speedup(), 1e-3)
	})

	t.Run("MultiplierPassesThrough", func(t *testing.T) {
		f := model.ImprovementFactor{Value: 6.5, Kind: model.Multiplier}
		assert.Equal(t, 6.5, f.Speedup())
	})
}

func TestOverallImprovement(t *testing.T) {
	fallback := map[model.ResourceCategory]float64{
		model.CategoryCompute:       0.4,
		model.CategoryMemory:        0.3,
		model.CategoryCommunication: 0.3,
	}

	t.Run("ReferenceFactorsWithFallbackWeights", func(t *testing.T) {
		got := OverallImprovement(referenceFactors(), nil, fallback)
		assert.InDelta(t, 10.72, got, 0.01)
	})

	t.Run("ObservedWeightsOverrideFallback", func(t *testing.T) {
		computeOnly := map[model.ResourceCategory]float64{model.CategoryCompute: 1.0}
		got := OverallImprovement(referenceFactors(), computeOnly, fallback)
		// compute speedup (1/0.375) times the fabrication gain (1/0.75)
		assert.InDelta(t, (1/0.375)*(1/0.75), got, 1e-9)
	})

	t.Run("WeightsAreScaleInvariant", func(t *testing.T) {
		small := map[model.ResourceCategory]float64{
			model.CategoryCompute: 0.4,
			model.CategoryMemory:  0.6,
		}
		large := map[model.ResourceCategory]float64{
			model.CategoryCompute: 4,
			model.CategoryMemory:  6,
		}
		a := OverallImprovement(referenceFactors(), small, fallback)
		b := OverallImprovement(referenceFactors(), large, fallback)
		assert.InDelta(t, a, b, 1e-12)
	})

	t.Run("BiggerMemoryShareMovesTowardMemorySpeedup", func(t *testing.T) {
		factors := referenceFactors()
		memHeavy := OverallImprovement(factors, map[model.ResourceCategory]float64{
			model.CategoryCompute: 0.1, model.CategoryMemory: 0.9,
		}, fallback)
		computeHeavy := OverallImprovement(factors, map[model.ResourceCategory]float64{
			model.CategoryCompute: 0.9, model.CategoryMemory: 0.1,
		}, fallback)
		// memory speedup (6.5) > compute speedup (2.67)
		assert.Greater(t, memHeavy, computeHeavy)
	})

	t.Run("RaisingAnyMultiplierNeverLowersOverall", func(t *testing.T) {
		base := OverallImprovement(referenceFactors(), nil, fallback)

		bumped := referenceFactors()
		bumped.MemoryBandwidth.Value *= 2
		assert.GreaterOrEqual(t, OverallImprovement(bumped, nil, fallback), base)

		bumped = referenceFactors()
		bumped.Compute.Value /= 2 // time_ratio: lower value is faster
		assert.GreaterOrEqual(t, OverallImprovement(bumped, nil, fallback), base)
	})

	t.Run("EqualMultipliersAreWeightPermutationInvariant", func(t *testing.T) {
		five := model.ImprovementFactor{Value: 5, Kind: model.Multiplier}
		factors := model.ImprovementFactors{
			Compute: five, MemoryBandwidth: five, Fabrication: model.ImprovementFactor{Value: 1, Kind: model.Multiplier},
			CommunicationBandwidth: five, CommunicationLatency: five,
		}
		a := OverallImprovement(factors, map[model.ResourceCategory]float64{
			model.CategoryCompute: 0.7, model.CategoryMemory: 0.3,
		}, fallback)
		b := OverallImprovement(factors, map[model.ResourceCategory]float64{
			model.CategoryCompute: 0.3, model.CategoryMemory: 0.7,
		}, fallback)
		assert.InDelta(t, a, b, 1e-12)
		assert.InDelta(t, 5.0, a, 1e-12)
	})

	t.Run("ExplicitFabricationWeightSuppressesGlobalExponent", func(t *testing.T) {
		factors := referenceFactors()
		weights := map[model.ResourceCategory]float64{model.CategoryFabrication: 1.0}
		got := OverallImprovement(factors, weights, fallback)
		assert.InDelta(t, 1/0.75, got, 1e-9)
	})

	t.Run("OtherCategoryCarriesNoImprovement", func(t *testing.T) {
		weights := map[model.ResourceCategory]float64{
			model.CategoryCompute: 0.5,
			model.CategoryOther:   0.5,
		}
		got := OverallImprovement(referenceFactors(), weights, fallback)
		// "other" has no speedup, so compute is the only weighted category.
		assert.InDelta(t, (1/0.375)*(1/0.75), got, 1e-9)
	})

	t.Run("NoUsableWeightsFallsBackToFabrication", func(t *testing.T) {
		weights := map[model.ResourceCategory]float64{model.CategoryOther: 1.0}
		got := OverallImprovement(referenceFactors(), weights, fallback)
		assert.InDelta(t, 1/0.75, got, 1e-9)
	})

	t.Run("IdentityFactorsGiveIdentity", func(t *testing.T) {
		unit := model.ImprovementFactor{Value: 1, Kind: model.Multiplier}
		factors := model.ImprovementFactors{
			Compute: unit, MemoryBandwidth: unit, Fabrication: unit,
			CommunicationBandwidth: unit, CommunicationLatency: unit,
		}
		got := OverallImprovement(factors, nil, fallback)
		assert.True(t, math.Abs(got-1) < 1e-12)
	})
}
