package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/qnetsim/qnetsim/sim"
	"github.com/qnetsim/qnetsim/sim/report"
)

var (
	modelPath       string  // Path to the YAML model file
	seed            int64   // Overrides the model's seeds with a single seed
	drawBudget      int     // Overrides rndnumbersPerSeed
	firstArrival    float64 // Overrides firstArrival
	logLevel        string  // Log verbosity level
	traceEvents     bool    // Record and summarize admission/routing decisions
	hideEmptyStates bool    // Omit states with zero accumulated time from the report
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "qnetsim",
	Short: "Discrete-event simulator for finite-capacity queueing networks",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		logrus.SetLevel(level)
		return nil
	},
}

// runCmd executes one run per seed and prints a report for each
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the queueing network simulation",
	Run: func(cmd *cobra.Command, args []string) {
		model, seeds := mustLoadModel(cmd)
		startTime := time.Now()
		if err := runSeeds(cmd.OutOrStdout(), model, seeds); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Infof("Simulation complete in %s.", time.Since(startTime))
	},
}

// validateCmd loads and validates a model without running it
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a model file",
	Run: func(cmd *cobra.Command, args []string) {
		model, seeds := mustLoadModel(cmd)
		for _, s := range seeds {
			if _, err := sim.NewNetworkSimulator(model.NetworkConfig(s)); err != nil {
				logrus.Fatalf("Invalid model %s: %v", modelPath, err)
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d stations, %d routes, %d seed(s) OK\n",
			modelPath, len(model.Stations), len(model.Routes), len(seeds))
	},
}

// mustLoadModel loads the model and applies CLI overrides.
func mustLoadModel(cmd *cobra.Command) (*Model, []int64) {
	model, err := LoadModel(modelPath)
	if err != nil {
		logrus.Fatalf("Failed to load model %s: %v", modelPath, err)
	}
	seeds, err := applyOverrides(cmd, model)
	if err != nil {
		logrus.Fatalf("Failed to load model %s: %v", modelPath, err)
	}
	return model, seeds
}

// applyOverrides applies flags the user set explicitly and returns the seeds to run.
func applyOverrides(cmd *cobra.Command, model *Model) ([]int64, error) {
	flags := cmd.Flags()
	if flags.Changed("draws") {
		model.DrawBudget = drawBudget
	}
	if flags.Changed("first-arrival") {
		model.FirstArrival = firstArrival
	}
	if flags.Changed("seed") {
		return []int64{seed}, nil
	}
	if len(model.Seeds) == 0 {
		return nil, &sim.ConfigError{Field: "seeds", Reason: "at least one seed required (or pass --seed)"}
	}
	return model.Seeds, nil
}

// runSeeds runs the model once per seed over one simulator, resetting
// between runs, and writes a report for each.
func runSeeds(w io.Writer, model *Model, seeds []int64) error {
	cfg := model.NetworkConfig(seeds[0])
	cfg.Trace = traceEvents
	s, err := sim.NewNetworkSimulator(cfg)
	if err != nil {
		return err
	}
	opts := report.DefaultOptions()
	opts.ShowTrace = traceEvents
	opts.EmptyState = !hideEmptyStates

	for i, sd := range seeds {
		if i > 0 {
			s.Reset(sim.NewRandomStream(sd, model.DrawBudget))
		}
		res := s.Run()
		if err := report.Write(w, res, opts); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&modelPath, "model", "model.yml", "Path to the YAML model file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 12345, "Run a single seed instead of the model's seeds")
	rootCmd.PersistentFlags().IntVar(&drawBudget, "draws", 100000, "Random draws per seed (overrides rndnumbersPerSeed)")
	rootCmd.PersistentFlags().Float64Var(&firstArrival, "first-arrival", 2.0, "Time of the first external arrival (overrides firstArrival)")

	runCmd.Flags().BoolVar(&traceEvents, "trace", false, "Record admission and routing decisions and print a summary")
	runCmd.Flags().BoolVar(&hideEmptyStates, "hide-empty-states", false, "Omit states with zero accumulated time")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
}
