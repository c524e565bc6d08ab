/*
PURPOSE:
  Defines the 'project' subcommand.
  Executes the full projection suite.

REQUIREMENTS:
  User-specified:
  - Run every enabled approach over the configured frequency sweep.
  - Specific flags for overrides.

  Implementation-discovered:
  - Need to load config first.
  - Apply flag overrides to config.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Run()
  - Uses: internal/config

ERROR HANDLING:
  - Returns error if config load fails or engine run fails.

IMPLEMENTATION RULES:
  - Setup flags in init().
  - Logic: Load Config -> Override -> Engine.Run.

USAGE:
  perfcast project --data-dir ./sweeps -o ./results

RELATED FILES:
  - internal/cli/root.go
*/

package cli

import (
	"github.com/apattnay/perfcast/internal/config"
	"github.com/apattnay/perfcast/internal/engine"
	"github.com/spf13/cobra"
)

var (
	dataDirOverride    string
	outputOverride     string
	approachesOverride []string
	freqsOverride      []int
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Run the hardware projection suite",
	Long: `Runs the full projection pipeline over the configured frequency sweep.
The process follows a strict protocol:
1. Ingestion: Reads per-frequency simulation_results.csv files.
2. Aggregation: Classifies resource durations into improvement categories.
3. Correlation: Anchors simulated time to the measured baseline.
4. Projection: Runs every enabled approach over every frequency.

Results are saved to CSV and JSON, and a comparison summary with the
recommended approach is printed to the console.`,
	Example: `  # Run with defaults (uses perfcast.yaml)
  perfcast project

  # Override the simulation data and output directories
  perfcast project --data-dir ./sweeps -o ./results

  # Run a single approach
  perfcast project --approach hardware_calibrated

  # Restrict the frequency sweep
  perfcast project --frequencies 1600,2000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load Config
		cfg, err := config.Load(cfgFile)
		// If err != nil here, it means user specified a file that didn't load, OR
		// parsing failed. config.Load handles "no file found" by returning defaults.
		if err != nil {
			return err
		}

		// 2. Overrides
		if dataDirOverride != "" {
			cfg.Data.Dir = dataDirOverride
		}
		if outputOverride != "" {
			cfg.Output.Dir = outputOverride
		}
		if len(approachesOverride) > 0 {
			cfg.Calculation.EnabledApproaches = approachesOverride
		}
		if len(freqsOverride) > 0 {
			cfg.Data.FrequenciesMHz = freqsOverride
		}

		// 3. Execution
		return engine.Run(cfg)
	},
}

func init() {
	rootCmd.AddCommand(projectCmd)

	projectCmd.Flags().StringVarP(&dataDirOverride, "data-dir", "d", "", "Directory holding <freq>mhz/simulation_results.csv sweeps")
	projectCmd.Flags().StringVarP(&outputOverride, "output-dir", "o", "", "Output directory for results (CSV/JSON)")
	projectCmd.Flags().StringSliceVar(&approachesOverride, "approach", nil, "Comma-separated approaches to run (hardware_calibrated, pure_simulation, hybrid_correlation, all)")
	projectCmd.Flags().IntSliceVar(&freqsOverride, "frequencies", nil, "Comma-separated frequency sweep in MHz")
}
