/*
PURPOSE:
  Reads per-frequency simulation_results.csv files into raw rows for
  the aggregator.

REQUIREMENTS:
  User-specified:
  - Expect <dir>/<freq>mhz/simulation_results.csv per frequency.
  - Columns RESOURCE, DURATION, TRANSITION, located by header name.

  Implementation-discovered:
  - Header matching is case-insensitive; files in the wild mix cases.
  - Non-numeric duration cells are skipped, not fatal.
  - A missing frequency directory degrades to a warning; the engine
    treats that frequency as insufficient data.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go
  - Produces: internal/model.RawRow

ERROR HANDLING:
  - Per-file errors become warnings on the run; only an unreadable
    header is an error for that file.

USAGE:
  rows, warnings := ingest.LoadAll("temp_data", []int{600, 1000, 1600, 2000})

RELATED FILES:
  - internal/engine/aggregate.go
*/

package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/apattnay/perfcast/internal/model"
)

// ResultsFileName is the expected per-frequency CSV file name.
const ResultsFileName = "simulation_results.csv"

// LoadAll reads the results file for every requested frequency.
// Missing or unreadable files produce warnings, not errors; the
// returned map simply lacks those frequencies.
func LoadAll(dir string, frequenciesMHz []int) (map[int][]model.RawRow, []string) {
	rowsByFreq := make(map[int][]model.RawRow, len(frequenciesMHz))
	var warnings []string

	for _, freq := range frequenciesMHz {
		path := filepath.Join(dir, fmt.Sprintf("%dmhz", freq), ResultsFileName)
		rows, err := ReadResults(path)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%dMHz: %v", freq, err))
			continue
		}
		rowsByFreq[freq] = rows
	}

	return rowsByFreq, warnings
}

// ReadResults parses one simulation results CSV.
func ReadResults(path string) ([]model.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows; trailing columns vary by sweep

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	resourceIdx, durationIdx, transitionIdx := -1, -1, -1
	for i, col := range header {
		switch strings.ToUpper(strings.TrimSpace(col)) {
		case "RESOURCE":
			resourceIdx = i
		case "DURATION":
			durationIdx = i
		case "TRANSITION":
			transitionIdx = i
		}
	}
	if resourceIdx < 0 || durationIdx < 0 {
		return nil, fmt.Errorf("%s: missing RESOURCE/DURATION columns in header %v", path, header)
	}

	var rows []model.RawRow
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if len(record) <= resourceIdx || len(record) <= durationIdx {
			continue
		}

		duration, err := strconv.ParseFloat(strings.TrimSpace(record[durationIdx]), 64)
		if err != nil {
			continue // non-numeric duration cell
		}

		row := model.RawRow{
			Resource: strings.TrimSpace(record[resourceIdx]),
			Duration: duration,
		}
		if transitionIdx >= 0 && len(record) > transitionIdx {
			row.Transition = strings.TrimSpace(record[transitionIdx])
		}
		rows = append(rows, row)
	}

	return rows, nil
}
