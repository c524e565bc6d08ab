/*
PURPOSE:
  High-level runner that orchestrates a projection run.
  Config -> aggregate per frequency -> correlate at baseline ->
  improvement factor -> three approaches -> comparison -> export.

REQUIREMENTS:
  User-specified:
  - Run all enabled approaches over all configured frequencies.
  - Log results to CSV/JSON and print a summary table.

  Implementation-discovered:
  - Approaches are mutually independent; each runs in its own goroutine
    over the same immutable inputs and writes to its own output slot.
  - The run always completes with whatever subset of records could be
    computed, with warnings attached, never a silent partial result.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/ingest, internal/output

ERROR HANDLING:
  - Configuration errors abort before any computation.
  - Data-sparsity and per-record arithmetic errors degrade to warnings.

USAGE:
  engine.Run(cfg)

RELATED FILES:
  - internal/engine/approaches.go
  - internal/output/summary.go
*/

package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/apattnay/perfcast/internal/config"
	"github.com/apattnay/perfcast/internal/ingest"
	"github.com/apattnay/perfcast/internal/model"
	"github.com/apattnay/perfcast/internal/output"
)

// Project executes the projection pipeline over already-loaded raw rows
// and returns the full report. It never fails on sparse data; every
// degradation is recorded as a warning on the report. The configuration
// must already be validated.
func Project(cfg *config.Config, rowsByFreq map[int][]model.RawRow) *model.Report {
	calc := cfg.Calculation
	measured := cfg.Hardware.Current.Baseline

	var warnings []string

	// 1. Aggregate each configured frequency.
	freqs := append([]int(nil), cfg.Data.FrequenciesMHz...)
	sort.Ints(freqs)

	points := make([]model.FrequencyPoint, 0, len(freqs))
	for _, f := range freqs {
		point := Aggregate(f, rowsByFreq[f], cfg.Data.ResourcePrefix, cfg.Data.Rules)
		if point.Empty() {
			warnings = append(warnings, (&InsufficientDataError{FrequencyMHz: f}).Error())
		}
		points = append(points, point)
	}

	var baseline model.FrequencyPoint
	baselineFound := false
	for _, p := range points {
		if p.FrequencyMHz == measured.BaselineFrequencyMHz {
			baseline = p
			baselineFound = true
		}
	}
	if !baselineFound {
		warnings = append(warnings,
			fmt.Sprintf("baseline frequency %dMHz is not among the configured frequencies", measured.BaselineFrequencyMHz))
	}

	// 2. Correlation at the baseline frequency only.
	correlation, err := EstablishCorrelation(baseline, measured, calc.CorrelationFactor, calc.ValidityTolerance)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("%v; hybrid correlation degrades to the calibrated output", err))
	}

	// 3. Overall improvement, weighted by the baseline resource mix.
	improvement := OverallImprovement(cfg.Hardware.Future.Improvements, baseline.CategoryWeights(), calc.FallbackWeights)

	inputs := ProjectionInputs{
		Baseline:          baseline,
		Measured:          measured,
		Improvement:       improvement,
		CorrelationFactor: calc.CorrelationFactor,
		Correlation:       correlation,
	}

	// Current-hardware reference records (no improvement applied).
	referenceInputs := inputs
	referenceInputs.Improvement = 1
	var baselineRecords []model.ProjectionRecord
	for _, p := range points {
		rec, _ := (calibratedProjector{}).Project(p, referenceInputs)
		baselineRecords = append(baselineRecords, rec)
	}

	// 4. The enabled approaches, one goroutine each, each writing only
	// its own slot. Inputs are immutable, so no locking is needed.
	approaches := cfg.EnabledApproaches()
	recordSlots := make([][]model.ProjectionRecord, len(approaches))
	warningSlots := make([][]string, len(approaches))

	var wg sync.WaitGroup
	for i, a := range approaches {
		projector, err := NewProjector(a)
		if err != nil {
			warnings = append(warnings, err.Error())
			continue
		}
		wg.Add(1)
		go func(slot int, p Projector) {
			defer wg.Done()
			for _, point := range points {
				rec, warn := p.Project(point, inputs)
				recordSlots[slot] = append(recordSlots[slot], rec)
				if warn != nil {
					warningSlots[slot] = append(warningSlots[slot], warn.Error())
				}
			}
		}(i, projector)
	}
	wg.Wait()

	var records []model.ProjectionRecord
	for i := range approaches {
		records = append(records, recordSlots[i]...)
		warnings = append(warnings, warningSlots[i]...)
	}

	// 5. Comparison and recommendation.
	stats := Summarize(records)
	recommendation := Recommend(stats, correlation, model.Approach(calc.DefaultApproach))

	return &model.Report{
		CurrentHardware: cfg.Hardware.Current.Name,
		FutureHardware:  cfg.Hardware.Future.Name,
		Improvement:     improvement,
		Baseline:        baselineRecords,
		Records:         records,
		Correlation:     correlation,
		Stats:           stats,
		Recommendation:  recommendation,
		Scaling:         ScaleTiles(records, cfg.Scaling),
		Warnings:        dedupe(warnings),
	}
}

// Run executes the full projection suite: ingest, project, export.
func Run(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	output.Logger.Info("Loading simulation data", "dir", cfg.Data.Dir, "frequencies", cfg.Data.FrequenciesMHz)
	rowsByFreq, loadWarnings := ingest.LoadAll(cfg.Data.Dir, cfg.Data.FrequenciesMHz)
	for _, w := range loadWarnings {
		output.Logger.Warn("Ingestion", "warning", w)
	}

	report := Project(cfg, rowsByFreq)
	report.Warnings = dedupe(append(loadWarnings, report.Warnings...))

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", cfg.Output.Dir, err)
	}

	csvPath := filepath.Join(cfg.Output.Dir, cfg.Output.CSVFile)
	csvWriter, err := output.NewCSVWriter(csvPath)
	if err != nil {
		return fmt.Errorf("failed to init CSV writer at %s: %w", csvPath, err)
	}
	defer csvWriter.Close()
	for _, rec := range report.Records {
		if err := csvWriter.Write(rec); err != nil {
			output.Logger.Error("Failed to write record to CSV", "error", err)
		}
	}

	jsonPath := filepath.Join(cfg.Output.Dir, cfg.Output.JSONFile)
	if err := output.WriteReport(jsonPath, report); err != nil {
		output.Logger.Error("Failed to write JSON report", "path", jsonPath, "error", err)
	}

	output.PrintSummary(os.Stdout, report)

	output.Logger.Info("Projection complete",
		"records", len(report.Records),
		"warnings", len(report.Warnings),
		"recommended", report.Recommendation.Approach,
	)
	return nil
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
