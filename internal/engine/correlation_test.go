package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apattnay/perfcast/internal/model"
)

const calibratedFactor = 2.311296913926394e-06

func measuredBaseline() model.BaselineMeasurement {
	return model.BaselineMeasurement{
		TTFTMillis:           8336,
		TPOTMillis:           53.46,
		BaselineFrequencyMHz: 1600,
		InputTokens:          112,
		OutputTokens:         2,
	}
}

func TestEstablishCorrelation(t *testing.T) {
	t.Run("ReferenceScenario", func(t *testing.T) {
		baseline := model.FrequencyPoint{
			FrequencyMHz:  1600,
			TotalDuration: 1_361_000,
			RowCount:      10,
		}

		corr, err := EstablishCorrelation(baseline, measuredBaseline(), calibratedFactor, 0.10)
		require.NoError(t, err)

		assert.Equal(t, 1600, corr.BaselineFrequencyMHz)
		assert.InDelta(t, 8.44292, corr.MeasuredTimeSeconds, 1e-5)
		assert.InDelta(t, 13.50, corr.MeasuredTGS, 0.01)
		assert.InDelta(t, 36.24, corr.SimulatedTGS, 0.01)
		assert.InDelta(t, 0.3726, corr.Ratio, 0.001)
		assert.False(t, corr.IsValid)
		assert.Equal(t, 0.10, corr.Tolerance)
	})

	t.Run("RatioNearOneIsValid", func(t *testing.T) {
		m := measuredBaseline()
		// Pick a duration whose simulated time matches the measured time,
		// up to the differing token conventions on either side.
		measuredTime := (m.TTFTMillis + m.TPOTMillis*float64(m.OutputTokens)) / 1000
		duration := measuredTime / calibratedFactor
		baseline := model.FrequencyPoint{FrequencyMHz: 1600, TotalDuration: duration, RowCount: 1}

		corr, err := EstablishCorrelation(baseline, m, calibratedFactor, 0.10)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, corr.Ratio, 1e-9)
		assert.True(t, corr.IsValid)
	})

	t.Run("ZeroDurationIsUnavailable", func(t *testing.T) {
		baseline := model.FrequencyPoint{FrequencyMHz: 1600}
		_, err := EstablishCorrelation(baseline, measuredBaseline(), calibratedFactor, 0.10)
		assert.ErrorIs(t, err, ErrCorrelationUnavailable)
	})

	t.Run("ZeroFactorIsUnavailable", func(t *testing.T) {
		baseline := model.FrequencyPoint{FrequencyMHz: 1600, TotalDuration: 100, RowCount: 1}
		_, err := EstablishCorrelation(baseline, measuredBaseline(), 0, 0.10)
		assert.ErrorIs(t, err, ErrCorrelationUnavailable)
	})
}
