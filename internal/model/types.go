/*
PURPOSE:
  Defines the core data structures used throughout Perfcast.
  These models represent simulation inputs, hardware profiles, and
  projection results.

REQUIREMENTS:
  User-specified:
  - Represent per-frequency simulation durations by resource category.
  - Represent measured baseline hardware and configured improvement factors.
  - One projection record per (approach, frequency) pair.

  Implementation-discovered:
  - Records need JSON tags for the report export.
  - Records are never mutated after creation; recalculation produces
    new records.

ARCHITECTURE INTEGRATION:
  - Used by: internal/engine, internal/ingest, internal/output
  - Shared across boundaries.

ERROR HANDLING:
  - None (pure data structs).

USAGE:
  rec := model.ProjectionRecord{...}

RELATED FILES:
  - internal/engine/approaches.go
  - internal/output/csv.go
*/

package model

import "fmt"

// ResourceCategory buckets a simulation resource for improvement weighting.
type ResourceCategory string

const (
	CategoryCompute       ResourceCategory = "compute"
	CategoryMemory        ResourceCategory = "memory"
	CategoryCommunication ResourceCategory = "communication"
	CategoryFabrication   ResourceCategory = "fabrication"
	CategoryOther         ResourceCategory = "other"
)

// Categories lists every valid category in a fixed order.
func Categories() []ResourceCategory {
	return []ResourceCategory{
		CategoryCompute,
		CategoryMemory,
		CategoryCommunication,
		CategoryFabrication,
		CategoryOther,
	}
}

// Valid reports whether c is one of the known categories.
func (c ResourceCategory) Valid() bool {
	switch c {
	case CategoryCompute, CategoryMemory, CategoryCommunication, CategoryFabrication, CategoryOther:
		return true
	}
	return false
}

// Approach identifies a projection calculation approach.
type Approach string

const (
	HardwareCalibrated Approach = "hardware_calibrated"
	PureSimulation     Approach = "pure_simulation"
	HybridCorrelation  Approach = "hybrid_correlation"
	// ApproachAll is a meta-selector used in configuration only.
	// It never tags a ProjectionRecord.
	ApproachAll Approach = "all"
)

// ParseApproach converts a configured approach name.
func ParseApproach(s string) (Approach, error) {
	switch Approach(s) {
	case HardwareCalibrated, PureSimulation, HybridCorrelation, ApproachAll:
		return Approach(s), nil
	}
	return "", fmt.Errorf("unknown calculation approach %q", s)
}

// RawRow is one raw simulation record as read from a results CSV.
type RawRow struct {
	Resource   string
	Duration   float64
	Transition string
}

// FrequencyPoint aggregates simulation durations for one frequency.
// Invariant: the category durations sum to TotalDuration (within float
// tolerance) and every duration is >= 0.
type FrequencyPoint struct {
	FrequencyMHz      int                          `json:"frequency_mhz"`
	TotalDuration     float64                      `json:"total_duration_units"`
	CategoryDurations map[ResourceCategory]float64 `json:"category_durations"`
	RowCount          int                          `json:"row_count"`
}

// Empty reports whether the point carries no usable simulation data.
func (p FrequencyPoint) Empty() bool {
	return p.RowCount == 0 || p.TotalDuration == 0
}

// CategoryWeights returns the duration fractions per category, normalized
// to sum to 1. Returns nil for an empty point.
func (p FrequencyPoint) CategoryWeights() map[ResourceCategory]float64 {
	if p.TotalDuration <= 0 {
		return nil
	}
	weights := make(map[ResourceCategory]float64, len(p.CategoryDurations))
	for cat, dur := range p.CategoryDurations {
		if dur > 0 {
			weights[cat] = dur / p.TotalDuration
		}
	}
	return weights
}

// BaselineMeasurement holds the measured performance of the current
// hardware at its baseline frequency.
type BaselineMeasurement struct {
	TTFTMillis           float64 `yaml:"ttft_ms" json:"ttft_ms"`
	TPOTMillis           float64 `yaml:"tpot_ms" json:"tpot_ms"`
	BaselineFrequencyMHz int     `yaml:"baseline_frequency_mhz" json:"baseline_frequency_mhz"`
	InputTokens          int     `yaml:"input_tokens" json:"input_tokens"`
	OutputTokens         int     `yaml:"output_tokens" json:"output_tokens"`
}

// TotalTokens is the full token count of the modeled request.
func (b BaselineMeasurement) TotalTokens() int {
	return b.InputTokens + b.OutputTokens
}

// FactorKind declares how an improvement factor value is interpreted.
type FactorKind string

const (
	// TimeRatio means the future component takes value x as long
	// (value < 1 is an improvement); speedup is 1/value.
	TimeRatio FactorKind = "time_ratio"
	// Multiplier is a direct speedup multiplier.
	Multiplier FactorKind = "multiplier"
)

// ImprovementFactor is one configured current->future hardware delta.
type ImprovementFactor struct {
	Value       float64    `yaml:"value" json:"value"`
	Kind        FactorKind `yaml:"kind" json:"kind"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
}

// Speedup converts the factor into a speedup multiplier.
func (f ImprovementFactor) Speedup() float64 {
	if f.Kind == TimeRatio {
		if f.Value == 0 {
			return 1
		}
		return 1 / f.Value
	}
	return f.Value
}

// ImprovementFactors is the fixed set of improvement-factor kinds the
// calculator understands. The factor names are enumerated rather than
// string-keyed so that unknown entries are a configuration error, not a
// silent no-op at calculation time.
type ImprovementFactors struct {
	Compute                ImprovementFactor `yaml:"compute" json:"compute"`
	MemoryBandwidth        ImprovementFactor `yaml:"memory_bandwidth" json:"memory_bandwidth"`
	Fabrication            ImprovementFactor `yaml:"fabrication" json:"fabrication"`
	CommunicationBandwidth ImprovementFactor `yaml:"communication_bandwidth" json:"communication_bandwidth"`
	CommunicationLatency   ImprovementFactor `yaml:"communication_latency" json:"communication_latency"`
}

// HardwareProfile describes one hardware generation. The current profile
// carries the measured baseline; the future profile carries the
// improvement factors. Immutable once loaded for a run.
type HardwareProfile struct {
	Name         string              `yaml:"name" json:"name"`
	Description  string              `yaml:"description,omitempty" json:"description,omitempty"`
	Baseline     BaselineMeasurement `yaml:"baseline,omitempty" json:"baseline,omitempty"`
	Improvements ImprovementFactors  `yaml:"improvements,omitempty" json:"improvements,omitempty"`
}

// CorrelationResult captures the measured-vs-simulated TGS comparison at
// the baseline frequency. Computed once per run, read-only thereafter.
type CorrelationResult struct {
	BaselineFrequencyMHz int     `json:"baseline_frequency_mhz"`
	MeasuredTGS          float64 `json:"measured_tgs"`
	SimulatedTGS         float64 `json:"simulated_tgs"`
	Ratio                float64 `json:"ratio"`
	IsValid              bool    `json:"is_valid"`
	Tolerance            float64 `json:"tolerance"`
	MeasuredTimeSeconds  float64 `json:"measured_time_s"`
	SimulatedTimeSeconds float64 `json:"simulated_time_s"`
}

// ProjectionRecord is one projected performance estimate for a single
// (approach, frequency) pair. Never mutated after creation.
type ProjectionRecord struct {
	Approach     Approach `json:"approach"`
	FrequencyMHz int      `json:"frequency_mhz"`
	TTFTSeconds  float64  `json:"ttft_s"`
	TPOTSeconds  float64  `json:"tpot_s"`
	TotalSeconds float64  `json:"total_time_s"`
	TGS          float64  `json:"tgs_tokens_per_s"`
	OutputRate   float64  `json:"output_rate_tokens_per_s"`

	// Approximated marks a degraded-confidence fallback (zero baseline
	// duration, or hybrid falling back to the calibrated output).
	Approximated bool `json:"approximated,omitempty"`
	// Insufficient marks a record produced from an all-zero frequency
	// point. It stays in the output but is excluded from summary stats.
	Insufficient bool `json:"insufficient_data,omitempty"`
}

// ApproachStats summarizes projected TGS for one approach.
type ApproachStats struct {
	Approach Approach `json:"approach"`
	MeanTGS  float64  `json:"mean_tgs"`
	MinTGS   float64  `json:"min_tgs"`
	MaxTGS   float64  `json:"max_tgs"`
	StdTGS   float64  `json:"std_tgs"`
	Count    int      `json:"count"`
}

// Recommendation is the reconciliation output of a run.
type Recommendation struct {
	Approach Approach `json:"recommended_approach"`
	Reason   string   `json:"reason"`
	Caveats  []string `json:"caveats,omitempty"`
}

// TileScalingEntry is one row of the multi-tile scaling table.
type TileScalingEntry struct {
	Label        string   `json:"label"`
	Tiles        int      `json:"tiles"`
	Approach     Approach `json:"approach"`
	FrequencyMHz int      `json:"frequency_mhz"`
	TTFTSeconds  float64  `json:"ttft_s"`
	TGS          float64  `json:"tgs_tokens_per_s"`
}

// Report is the full output of one projection run.
type Report struct {
	CurrentHardware string             `json:"current_hardware"`
	FutureHardware  string             `json:"future_hardware"`
	Improvement     float64            `json:"overall_improvement"`
	Baseline        []ProjectionRecord `json:"baseline_records"`
	Records         []ProjectionRecord `json:"records"`
	Correlation     *CorrelationResult `json:"correlation,omitempty"`
	Stats           []ApproachStats    `json:"summary_statistics"`
	Recommendation  Recommendation     `json:"recommendation"`
	Scaling         []TileScalingEntry `json:"tile_scaling,omitempty"`
	Warnings        []string           `json:"warnings,omitempty"`
}
