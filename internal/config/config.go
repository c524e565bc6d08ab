/*
PURPOSE:
  Defines the configuration structure and loading logic for Perfcast.
  Adheres to "Config IS Code" philosophy.

REQUIREMENTS:
  User-specified:
  - Configure hardware profiles, improvement factors, correlation factor,
    enabled approaches, tolerance, token counts, classification rules.
  - Support saving a configuration back to disk.

  Implementation-discovered:
  - Needs YAML parsing; file values override defaults field-by-field.
  - Validation must run eagerly, before any calculation starts.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine, internal/ingest
  - Dependencies: gopkg.in/yaml.v3

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - Missing file falls back to defaults (not an error).
  - Validate() collects invalid-configuration errors; the engine refuses
    to run on any of them.

USAGE:
  cfg, err := config.Load("perfcast.yaml")

RELATED FILES:
  - internal/model/types.go
  - internal/engine/runner.go
*/

package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/apattnay/perfcast/internal/model"
)

// ClassifierRule maps resource identifiers to a category. Rules are
// ordered and the first match wins; a row matches when its resource name
// contains every substring in Contains. A rule carries either a single
// Category or a Split distribution over categories (for shared execution
// units whose time is divided between categories by a fixed fraction).
type ClassifierRule struct {
	Contains []string                           `yaml:"contains"`
	Category model.ResourceCategory             `yaml:"category,omitempty"`
	Split    map[model.ResourceCategory]float64 `yaml:"split,omitempty"`
}

// HardwareConfig pairs the measured current profile with the projected
// future profile.
type HardwareConfig struct {
	Current model.HardwareProfile `yaml:"current"`
	Future  model.HardwareProfile `yaml:"future"`
}

// CalculationConfig holds the projection-engine settings.
type CalculationConfig struct {
	EnabledApproaches []string `yaml:"enabled_approaches"`
	DefaultApproach   string   `yaml:"default_approach"`
	// CorrelationFactor is seconds of real time per simulation duration
	// unit, calibrated at the baseline frequency.
	CorrelationFactor float64                            `yaml:"correlation_factor"`
	ValidityTolerance float64                            `yaml:"validity_tolerance"`
	FallbackWeights   map[model.ResourceCategory]float64 `yaml:"fallback_weights"`
}

// DataConfig describes where simulation results live and how rows are
// classified.
type DataConfig struct {
	Dir            string           `yaml:"dir"`
	FrequenciesMHz []int            `yaml:"frequencies_mhz"`
	ResourcePrefix string           `yaml:"resource_prefix"`
	Rules          []ClassifierRule `yaml:"classification_rules"`
}

// ScalingConfig drives the optional multi-tile scaling table.
type ScalingConfig struct {
	Enabled       bool           `yaml:"enabled"`
	BaselineTiles int            `yaml:"baseline_tiles"`
	Tiles         map[string]int `yaml:"tiles"`
}

// OutputConfig names the export destinations.
type OutputConfig struct {
	Dir      string `yaml:"dir"`
	CSVFile  string `yaml:"csv_file"`
	JSONFile string `yaml:"json_file"`
}

// Config represents the full configuration for Perfcast. Treat a loaded
// Config as read-only for the duration of a projection run; edits should
// produce a new snapshot via Load or a copy.
type Config struct {
	Hardware    HardwareConfig    `yaml:"hardware"`
	Calculation CalculationConfig `yaml:"calculation"`
	Data        DataConfig        `yaml:"data"`
	Scaling     ScalingConfig     `yaml:"scaling"`
	Output      OutputConfig      `yaml:"output"`
}

// DefaultConfig returns the default configuration: the documented
// measured baseline and the reference current->future improvement set.
func DefaultConfig() *Config {
	return &Config{
		Hardware: HardwareConfig{
			Current: model.HardwareProfile{
				Name:        "PVC",
				Description: "Current generation (measured baseline)",
				Baseline: model.BaselineMeasurement{
					TTFTMillis:           8336,
					TPOTMillis:           53.46,
					BaselineFrequencyMHz: 1600,
					InputTokens:          112,
					OutputTokens:         2,
				},
			},
			Future: model.HardwareProfile{
				Name:        "JGS",
				Description: "Next generation (projected)",
				Improvements: model.ImprovementFactors{
					Compute: model.ImprovementFactor{
						Value: 0.375, Kind: model.TimeRatio,
						Description: "compute tasks take 0.375x as long",
					},
					MemoryBandwidth: model.ImprovementFactor{
						Value: 6.5, Kind: model.Multiplier,
						Description: "6-7x higher memory bandwidth",
					},
					Fabrication: model.ImprovementFactor{
						Value: 0.75, Kind: model.TimeRatio,
						Description: "25% process gain, applies to all tasks",
					},
					CommunicationBandwidth: model.ImprovementFactor{
						Value: 12.5, Kind: model.Multiplier,
						Description: "12x link bandwidth",
					},
					CommunicationLatency: model.ImprovementFactor{
						Value: 150, Kind: model.Multiplier,
						Description: "150x lower link latency",
					},
				},
			},
		},
		Calculation: CalculationConfig{
			EnabledApproaches: []string{string(model.ApproachAll)},
			DefaultApproach:   string(model.HardwareCalibrated),
			CorrelationFactor: 2.311296913926394e-06,
			ValidityTolerance: 0.10,
			FallbackWeights: map[model.ResourceCategory]float64{
				model.CategoryCompute:       0.4,
				model.CategoryMemory:        0.3,
				model.CategoryCommunication: 0.3,
			},
		},
		Data: DataConfig{
			Dir:            "temp_data",
			FrequenciesMHz: []int{600, 1000, 1600, 2000},
			ResourcePrefix: "gt/",
			Rules: []ClassifierRule{
				{
					Contains: []string{"GT_TILE_", "/ex_u0"},
					Category: model.CategoryCompute,
				},
				{
					Contains: []string{"GT_TILE_", "/ex_u1"},
					Split: map[model.ResourceCategory]float64{
						model.CategoryMemory:        0.30,
						model.CategoryCommunication: 0.70,
					},
				},
			},
		},
		Scaling: ScalingConfig{
			Enabled:       true,
			BaselineTiles: 8,
			Tiles:         map[string]int{"8T": 8, "16T": 16, "144T": 144},
		},
		Output: OutputConfig{
			Dir:      "output",
			CSVFile:  "hardware_projections.csv",
			JSONFile: "projection_report.json",
		},
	}
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches for default files in order.
// If no file found, returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
	} else {
		defaults := []string{"perfcast.yaml", "perfcast.conf", "hardware_projection.yaml"}
		found := false
		for _, name := range defaults {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				found = true
				break
			}
		}
		if !found {
			return cfg, nil
		}
	}

	// Unmarshalling into the pre-populated struct keeps defaults for
	// fields the file omits.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to %s: %w", path, err)
	}
	return nil
}

// Validate checks for invalid configuration values. Any error here is
// fatal for a run and is reported before computation starts.
func (c *Config) Validate() error {
	b := c.Hardware.Current.Baseline
	if b.TTFTMillis <= 0 {
		return fmt.Errorf("baseline ttft_ms must be > 0, got %.2f", b.TTFTMillis)
	}
	if b.TPOTMillis <= 0 {
		return fmt.Errorf("baseline tpot_ms must be > 0, got %.2f", b.TPOTMillis)
	}
	if b.BaselineFrequencyMHz <= 0 {
		return fmt.Errorf("baseline_frequency_mhz must be > 0, got %d", b.BaselineFrequencyMHz)
	}
	if b.InputTokens < 0 {
		return fmt.Errorf("input_tokens must be >= 0, got %d", b.InputTokens)
	}
	if b.OutputTokens < 1 {
		return fmt.Errorf("output_tokens must be >= 1, got %d", b.OutputTokens)
	}

	factors := map[string]model.ImprovementFactor{
		"compute":                 c.Hardware.Future.Improvements.Compute,
		"memory_bandwidth":        c.Hardware.Future.Improvements.MemoryBandwidth,
		"fabrication":             c.Hardware.Future.Improvements.Fabrication,
		"communication_bandwidth": c.Hardware.Future.Improvements.CommunicationBandwidth,
		"communication_latency":   c.Hardware.Future.Improvements.CommunicationLatency,
	}
	for name, f := range factors {
		if f.Value <= 0 {
			return fmt.Errorf("improvement factor %s: value must be > 0, got %v", name, f.Value)
		}
		if f.Kind != model.TimeRatio && f.Kind != model.Multiplier {
			return fmt.Errorf("improvement factor %s: kind must be %q or %q, got %q",
				name, model.TimeRatio, model.Multiplier, f.Kind)
		}
	}

	for _, name := range c.Calculation.EnabledApproaches {
		if _, err := model.ParseApproach(name); err != nil {
			return err
		}
	}
	def, err := model.ParseApproach(c.Calculation.DefaultApproach)
	if err != nil {
		return fmt.Errorf("default_approach: %w", err)
	}
	if def == model.ApproachAll {
		return fmt.Errorf("default_approach must name a single approach, got %q", def)
	}

	if c.Calculation.CorrelationFactor < 0 {
		return fmt.Errorf("correlation_factor must be >= 0, got %v", c.Calculation.CorrelationFactor)
	}
	if c.Calculation.ValidityTolerance <= 0 {
		return fmt.Errorf("validity_tolerance must be > 0, got %v", c.Calculation.ValidityTolerance)
	}

	var weightSum float64
	for cat, w := range c.Calculation.FallbackWeights {
		if !cat.Valid() {
			return fmt.Errorf("fallback_weights: unknown category %q", cat)
		}
		if w < 0 {
			return fmt.Errorf("fallback_weights[%s] must be >= 0, got %v", cat, w)
		}
		weightSum += w
	}
	if weightSum <= 0 {
		return fmt.Errorf("fallback_weights must sum to a positive value")
	}

	if len(c.Data.FrequenciesMHz) == 0 {
		return fmt.Errorf("data.frequencies_mhz must not be empty")
	}
	for _, f := range c.Data.FrequenciesMHz {
		if f <= 0 {
			return fmt.Errorf("data.frequencies_mhz entries must be > 0, got %d", f)
		}
	}

	for i, rule := range c.Data.Rules {
		if len(rule.Contains) == 0 {
			return fmt.Errorf("classification rule %d: contains must not be empty", i)
		}
		if len(rule.Split) == 0 {
			if !rule.Category.Valid() {
				return fmt.Errorf("classification rule %d: unknown category %q", i, rule.Category)
			}
			continue
		}
		if rule.Category != "" {
			return fmt.Errorf("classification rule %d: category and split are mutually exclusive", i)
		}
		var sum float64
		for cat, frac := range rule.Split {
			if !cat.Valid() {
				return fmt.Errorf("classification rule %d: unknown split category %q", i, cat)
			}
			if frac <= 0 {
				return fmt.Errorf("classification rule %d: split[%s] must be > 0, got %v", i, cat, frac)
			}
			sum += frac
		}
		if math.Abs(sum-1.0) > 1e-9 {
			return fmt.Errorf("classification rule %d: split fractions must sum to 1, got %v", i, sum)
		}
	}

	if c.Scaling.Enabled {
		if c.Scaling.BaselineTiles <= 0 {
			return fmt.Errorf("scaling.baseline_tiles must be > 0, got %d", c.Scaling.BaselineTiles)
		}
		for label, tiles := range c.Scaling.Tiles {
			if tiles <= 0 {
				return fmt.Errorf("scaling.tiles[%s] must be > 0, got %d", label, tiles)
			}
		}
	}

	return nil
}

// EnabledApproaches resolves the configured approach names, expanding
// the "all" meta-selector. Unknown names are impossible after Validate.
func (c *Config) EnabledApproaches() []model.Approach {
	all := []model.Approach{model.HardwareCalibrated, model.PureSimulation, model.HybridCorrelation}

	var out []model.Approach
	for _, name := range c.Calculation.EnabledApproaches {
		a, err := model.ParseApproach(name)
		if err != nil {
			continue
		}
		if a == model.ApproachAll {
			return all
		}
		out = append(out, a)
	}
	if len(out) == 0 {
		return []model.Approach{model.Approach(c.Calculation.DefaultApproach)}
	}
	return out
}
