/*
PURPOSE:
  The three projection calculation approaches. Each maps a frequency
  point plus the shared run inputs to one ProjectionRecord, behind a
  single Projector contract so every approach is independently testable.

REQUIREMENTS:
  User-specified:
  - Hardware-Calibrated: measured baseline scaled by the simulation
    duration ratio, then divided by the overall improvement.
  - Pure-Simulation: timing derived from simulation duration x
    correlation factor only, same improvement division.
  - Hybrid-Correlation: calibrated output corrected by the measured/
    simulated TGS ratio observed at baseline. Most conservative;
    default recommendation target.

  Implementation-discovered:
  - Token convention: total = ttft + tpot*(output_tokens-1), TTFT covers
    the first output token. TGS = total_tokens/total. output_rate = 1/tpot.
  - Zero baseline duration falls back to inverse-frequency scaling and
    flags the record as approximated.
  - Pure-Simulation keeps the measured TTFT:TPOT proportions when
    splitting the simulated total time, so its TGS equals
    total_tokens / (sim_time / improvement) exactly.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go (one goroutine per approach)
  - Consumes: CorrelationResult (hybrid only), OverallImprovement output.

ERROR HANDLING:
  - Division by zero is reported per record and never aborts the batch.
  - An all-zero frequency point yields a flagged record plus an
    InsufficientDataError the runner surfaces as a warning.

USAGE:
  p, _ := engine.NewProjector(model.HardwareCalibrated)
  rec, warn := p.Project(point, inputs)

RELATED FILES:
  - internal/engine/correlation.go
  - internal/engine/compare.go
*/

package engine

import (
	"fmt"

	"github.com/apattnay/perfcast/internal/model"
)

// ProjectionInputs is the immutable shared state every approach reads.
// Approaches hold no state of their own and may run concurrently over
// the same inputs.
type ProjectionInputs struct {
	Baseline          model.FrequencyPoint
	Measured          model.BaselineMeasurement
	Improvement       float64
	CorrelationFactor float64
	Correlation       *model.CorrelationResult
}

// Projector is the contract all three approaches honor.
type Projector interface {
	Approach() model.Approach
	// Project returns the record for one frequency point. A non-nil
	// error alongside a record is a per-record degradation the caller
	// should surface as a warning, not a failure of the run.
	Project(point model.FrequencyPoint, in ProjectionInputs) (model.ProjectionRecord, error)
}

// NewProjector returns the projector for a single approach.
func NewProjector(a model.Approach) (Projector, error) {
	switch a {
	case model.HardwareCalibrated:
		return calibratedProjector{}, nil
	case model.PureSimulation:
		return simulationProjector{}, nil
	case model.HybridCorrelation:
		return hybridProjector{}, nil
	}
	return nil, fmt.Errorf("no projector for approach %q", a)
}

// buildRecord derives the dependent fields from TTFT/TPOT using the
// shared token-counting convention.
func buildRecord(a model.Approach, freqMHz int, ttft, tpot float64, m model.BaselineMeasurement) (model.ProjectionRecord, error) {
	rec := model.ProjectionRecord{
		Approach:     a,
		FrequencyMHz: freqMHz,
		TTFTSeconds:  ttft,
		TPOTSeconds:  tpot,
		TotalSeconds: ttft + tpot*float64(m.OutputTokens-1),
	}
	if rec.TotalSeconds <= 0 {
		return rec, &DivisionByZeroError{Approach: string(a), FrequencyMHz: freqMHz, Term: "total_time_s"}
	}
	rec.TGS = float64(m.TotalTokens()) / rec.TotalSeconds
	if tpot <= 0 {
		return rec, &DivisionByZeroError{Approach: string(a), FrequencyMHz: freqMHz, Term: "tpot_s"}
	}
	rec.OutputRate = 1 / tpot
	return rec, nil
}

type calibratedProjector struct{}

func (calibratedProjector) Approach() model.Approach { return model.HardwareCalibrated }

func (p calibratedProjector) Project(point model.FrequencyPoint, in ProjectionInputs) (model.ProjectionRecord, error) {
	m := in.Measured

	var scale float64
	approximated := false
	if in.Baseline.TotalDuration > 0 && point.TotalDuration > 0 {
		scale = point.TotalDuration / in.Baseline.TotalDuration
	} else {
		// No usable duration ratio: inverse-frequency scaling.
		scale = float64(m.BaselineFrequencyMHz) / float64(point.FrequencyMHz)
		approximated = true
	}

	ttft := m.TTFTMillis / 1000 * scale / in.Improvement
	tpot := m.TPOTMillis / 1000 * scale / in.Improvement

	rec, err := buildRecord(p.Approach(), point.FrequencyMHz, ttft, tpot, m)
	rec.Approximated = approximated
	if point.Empty() {
		rec.Insufficient = true
		if err == nil {
			err = &InsufficientDataError{FrequencyMHz: point.FrequencyMHz}
		}
	}
	return rec, err
}

type simulationProjector struct{}

func (simulationProjector) Approach() model.Approach { return model.PureSimulation }

func (p simulationProjector) Project(point model.FrequencyPoint, in ProjectionInputs) (model.ProjectionRecord, error) {
	m := in.Measured

	simTime := point.TotalDuration * in.CorrelationFactor
	if simTime <= 0 {
		rec := model.ProjectionRecord{
			Approach:     p.Approach(),
			FrequencyMHz: point.FrequencyMHz,
			Insufficient: true,
		}
		return rec, &InsufficientDataError{FrequencyMHz: point.FrequencyMHz}
	}

	// Scale the measured baseline shape so the improved total equals
	// sim_time / improvement; no measured magnitude leaks in.
	measuredTotal := (m.TTFTMillis + m.TPOTMillis*float64(m.OutputTokens-1)) / 1000
	scale := simTime / in.Improvement / measuredTotal

	ttft := m.TTFTMillis / 1000 * scale
	tpot := m.TPOTMillis / 1000 * scale

	return buildRecord(p.Approach(), point.FrequencyMHz, ttft, tpot, m)
}

type hybridProjector struct{}

func (hybridProjector) Approach() model.Approach { return model.HybridCorrelation }

func (p hybridProjector) Project(point model.FrequencyPoint, in ProjectionInputs) (model.ProjectionRecord, error) {
	rec, err := calibratedProjector{}.Project(point, in)
	rec.Approach = p.Approach()
	if err != nil {
		return rec, err
	}

	if in.Correlation == nil {
		// Degrade to the calibrated output, flagged.
		rec.Approximated = true
		return rec, ErrCorrelationUnavailable
	}

	ratio := in.Correlation.Ratio
	if ratio <= 0 {
		return rec, &DivisionByZeroError{Approach: string(p.Approach()), FrequencyMHz: point.FrequencyMHz, Term: "correlation ratio"}
	}

	// Correct the calibrated estimate by the measured/simulated
	// discrepancy observed at baseline: time divided by ratio, TGS
	// multiplied by it.
	rec.TTFTSeconds /= ratio
	rec.TPOTSeconds /= ratio
	rec.TotalSeconds /= ratio
	rec.TGS *= ratio
	rec.OutputRate *= ratio

	return rec, nil
}
