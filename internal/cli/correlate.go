/*
PURPOSE:
  Defines the 'correlate' subcommand.
  Checks the simulation-vs-measurement anchor without running a full
  projection.

REQUIREMENTS:
  User-specified:
  - Report measured TGS, simulated TGS, their ratio, and validity.

  Implementation-discovered:
  - Useful validation step before trusting hybrid projections.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.EstablishCorrelation()
  - Uses: internal/ingest

ERROR HANDLING:
  - Returns error if the baseline sweep is missing or the correlation
    factor is unset.

IMPLEMENTATION RULES:
  - Simple output to stdout.

USAGE:
  perfcast correlate --data-dir ./sweeps

RELATED FILES:
  - internal/engine/correlation.go
*/

package cli

import (
	"fmt"
	"path/filepath"

	"github.com/apattnay/perfcast/internal/config"
	"github.com/apattnay/perfcast/internal/engine"
	"github.com/apattnay/perfcast/internal/ingest"
	"github.com/spf13/cobra"
)

var correlateCmd = &cobra.Command{
	Use:   "correlate",
	Short: "Check simulation-to-measurement correlation at the baseline frequency",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if dataDirOverride != "" {
			cfg.Data.Dir = dataDirOverride
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		measured := cfg.Hardware.Current.Baseline
		path := filepath.Join(cfg.Data.Dir,
			fmt.Sprintf("%dmhz", measured.BaselineFrequencyMHz), ingest.ResultsFileName)
		rows, err := ingest.ReadResults(path)
		if err != nil {
			return fmt.Errorf("baseline sweep unavailable: %w", err)
		}

		point := engine.Aggregate(measured.BaselineFrequencyMHz, rows, cfg.Data.ResourcePrefix, cfg.Data.Rules)
		result, err := engine.EstablishCorrelation(point, measured,
			cfg.Calculation.CorrelationFactor, cfg.Calculation.ValidityTolerance)
		if err != nil {
			return err
		}

		fmt.Printf("Baseline frequency:  %d MHz\n", result.BaselineFrequencyMHz)
		fmt.Printf("Measured:  %.2f tok/s  (%.3f s)\n", result.MeasuredTGS, result.MeasuredTimeSeconds)
		fmt.Printf("Simulated: %.2f tok/s  (%.3f s)\n", result.SimulatedTGS, result.SimulatedTimeSeconds)
		fmt.Printf("Ratio (measured/simulated): %.4f\n", result.Ratio)
		if result.IsValid {
			fmt.Printf("Correlation is valid within the %.0f%% tolerance.\n", result.Tolerance*100)
		} else {
			fmt.Printf("Correlation is OUTSIDE the %.0f%% tolerance; hybrid projections will fall back to calibrated results.\n",
				result.Tolerance*100)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(correlateCmd)

	correlateCmd.Flags().StringVarP(&dataDirOverride, "data-dir", "d", "", "Directory holding <freq>mhz/simulation_results.csv sweeps")
}
