/*
PURPOSE:
  Writes the full run report to a JSON file.

REQUIREMENTS:
  User-specified:
  - One machine-parseable document per run: records, correlation,
    statistics, recommendation, warnings.

  Implementation-discovered:
  - Indented output; the report is small and read by humans too.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/runner.go
  - Consumes: internal/model.Report

ERROR HANDLING:
  - Returns error on file creation or encode failure.

USAGE:
  err := output.WriteReport("projection_report.json", report)

RELATED FILES:
  - internal/model/types.go
*/

package output

import (
	"encoding/json"
	"os"

	"github.com/apattnay/perfcast/internal/model"
)

// WriteReport writes the report as indented JSON, overwriting any
// previous file.
func WriteReport(path string, report *model.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
