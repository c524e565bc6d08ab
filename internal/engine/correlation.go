/*
PURPOSE:
  Establishes the measured-vs-simulated TGS correlation at the baseline
  frequency and classifies it valid/invalid against a tolerance.

REQUIREMENTS:
  User-specified:
  - measured_tgs from the measured TTFT/TPOT and token counts.
  - simulated_tgs from baseline simulation duration x correlation factor.
  - ratio = measured/simulated; valid when |1-ratio| <= tolerance.

  Implementation-discovered:
  - Measured total time here uses ttft + tpot*output_tokens, the
    convention the correlation was originally calibrated under. The
    projection records use ttft + tpot*(output_tokens-1); the two are
    deliberately different.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go
  - Consumed by: hybrid-correlation approach (ratio), comparison step
    (validity).

ERROR HANDLING:
  - Zero baseline duration or zero correlation factor returns
    ErrCorrelationUnavailable; the hybrid approach then degrades to the
    hardware-calibrated output with a warning flag.

USAGE:
  corr, err := engine.EstablishCorrelation(baselinePoint, baseline, factor, tol)

RELATED FILES:
  - internal/engine/approaches.go
*/

package engine

import (
	"math"

	"github.com/apattnay/perfcast/internal/model"
)

// EstablishCorrelation computes the CorrelationResult for the baseline
// frequency point. Advisory for the calibrated and pure-simulation
// approaches; load-bearing only for hybrid-correlation.
func EstablishCorrelation(
	baseline model.FrequencyPoint,
	measured model.BaselineMeasurement,
	correlationFactor float64,
	tolerance float64,
) (*model.CorrelationResult, error) {
	if correlationFactor <= 0 || baseline.TotalDuration <= 0 {
		return nil, ErrCorrelationUnavailable
	}

	measuredTime := (measured.TTFTMillis + measured.TPOTMillis*float64(measured.OutputTokens)) / 1000
	if measuredTime <= 0 {
		return nil, ErrCorrelationUnavailable
	}

	totalTokens := float64(measured.TotalTokens())
	measuredTGS := totalTokens / measuredTime

	simulatedTime := baseline.TotalDuration * correlationFactor
	simulatedTGS := totalTokens / simulatedTime

	ratio := measuredTGS / simulatedTGS

	return &model.CorrelationResult{
		BaselineFrequencyMHz: baseline.FrequencyMHz,
		MeasuredTGS:          measuredTGS,
		SimulatedTGS:         simulatedTGS,
		Ratio:                ratio,
		IsValid:              math.Abs(1-ratio) <= tolerance,
		Tolerance:            tolerance,
		MeasuredTimeSeconds:  measuredTime,
		SimulatedTimeSeconds: simulatedTime,
	}, nil
}
