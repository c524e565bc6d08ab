/*
PURPOSE:
  Writes projection records to a CSV file.
  Ensures data integrity by flushing writes immediately.

REQUIREMENTS:
  User-specified:
  - One row per (approach, frequency) record.

  Implementation-discovered:
  - Overwrite on each run; results are regenerated deterministically.
  - Flush() after every write for crash resilience.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go
  - Consumes: internal/model.ProjectionRecord

ERROR HANDLING:
  - Returns error on file creation or write failure.

USAGE:
  w, err := output.NewCSVWriter("hardware_projections.csv")
  w.Write(rec)
  w.Close()

RELATED FILES:
  - internal/model/types.go
*/

package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"sync"

	"github.com/apattnay/perfcast/internal/model"
)

// CSVWriter handles writing projection records to a CSV file.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
	mu     sync.Mutex
}

// NewCSVWriter creates a new CSVWriter.
// It overwrites the file if it exists.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)

	header := []string{
		"approach", "frequency_mhz",
		"ttft_s", "tpot_s", "total_time_s",
		"tgs_tokens_per_s", "output_rate_tokens_per_s",
		"approximated", "insufficient_data",
	}
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()

	return &CSVWriter{
		file:   f,
		writer: w,
	}, nil
}

// Write writes a single record to the CSV file.
// It is thread-safe.
func (cw *CSVWriter) Write(r model.ProjectionRecord) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	record := []string{
		string(r.Approach),
		fmt.Sprintf("%d", r.FrequencyMHz),
		fmt.Sprintf("%.6f", r.TTFTSeconds),
		fmt.Sprintf("%.6f", r.TPOTSeconds),
		fmt.Sprintf("%.6f", r.TotalSeconds),
		fmt.Sprintf("%.4f", r.TGS),
		fmt.Sprintf("%.4f", r.OutputRate),
		fmt.Sprintf("%t", r.Approximated),
		fmt.Sprintf("%t", r.Insufficient),
	}

	if err := cw.writer.Write(record); err != nil {
		return err
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close closes the underlying file.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	return cw.file.Close()
}
