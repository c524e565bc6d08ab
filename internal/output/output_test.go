package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apattnay/perfcast/internal/model"
)

func sampleReport() *model.Report {
	return &model.Report{
		CurrentHardware: "PVC",
		FutureHardware:  "JGS",
		Improvement:     10.72,
		Baseline: []model.ProjectionRecord{
			{Approach: model.HardwareCalibrated, FrequencyMHz: 1600, TTFTSeconds: 8.336, TPOTSeconds: 0.05346, TotalSeconds: 8.38946, TGS: 13.59, OutputRate: 18.71},
		},
		Records: []model.ProjectionRecord{
			{Approach: model.HardwareCalibrated, FrequencyMHz: 1600, TTFTSeconds: 0.7776, TPOTSeconds: 0.004987, TotalSeconds: 0.782587, TGS: 145.67, OutputRate: 200.52},
			{Approach: model.HybridCorrelation, FrequencyMHz: 2000, Insufficient: true},
		},
		Correlation: &model.CorrelationResult{
			BaselineFrequencyMHz: 1600, MeasuredTGS: 13.50, SimulatedTGS: 36.24,
			Ratio: 0.3726, IsValid: false, Tolerance: 0.10,
		},
		Stats: []model.ApproachStats{
			{Approach: model.HardwareCalibrated, MeanTGS: 145.67, MinTGS: 145.67, MaxTGS: 145.67, Count: 1},
		},
		Recommendation: model.Recommendation{
			Approach: model.HardwareCalibrated,
			Reason:   "correlation between measured and simulated TGS is outside tolerance",
			Caveats:  []string{"most conservative estimate: hardware_calibrated (avg 145.67 tok/s)"},
		},
		Warnings: []string{"insufficient simulation data for 2000MHz"},
	}
}

func TestCSVWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projections.csv")
	w, err := NewCSVWriter(path)
	require.NoError(t, err)

	report := sampleReport()
	for _, rec := range report.Records {
		require.NoError(t, w.Write(rec))
	}
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + 2 records

	assert.Equal(t, "approach", rows[0][0])
	assert.Equal(t, "hardware_calibrated", rows[1][0])
	assert.Equal(t, "1600", rows[1][1])
	assert.Equal(t, "true", rows[2][8])
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteReport(path, sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got model.Report
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "PVC", got.CurrentHardware)
	assert.Len(t, got.Records, 2)
	require.NotNil(t, got.Correlation)
	assert.False(t, got.Correlation.IsValid)
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, sampleReport())
	out := buf.String()

	assert.Contains(t, out, "PVC -> JGS")
	assert.Contains(t, out, "hardware_calibrated")
	assert.Contains(t, out, "Recommended approach")
	assert.Contains(t, out, "ratio 0.3726")
	assert.Contains(t, out, "n/a") // the insufficient 2000MHz cell
	assert.Contains(t, out, "1 warning(s)")
}
