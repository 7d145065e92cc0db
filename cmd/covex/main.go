// covex is a COVID-19 symptom triage expert system: a fixed rule base
// evaluated by a forward-chaining inference kernel, fronted by an
// interactive terminal form and a few one-shot commands.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"covex/internal/config"
	"covex/internal/history"
	"covex/internal/triage"
)

var (
	// Global flags
	verbose    bool
	configPath string
	noHistory  bool

	cfg    config.Config
	logger *zap.Logger
)

// rootCmd runs the interactive assessment form when invoked without a
// subcommand.
var rootCmd = &cobra.Command{
	Use:   "covex",
	Short: "COVID-19 symptom triage expert system",
	Long: `covex assesses COVID-19 risk from six yes/no symptom observations.

A fixed knowledge base of triage rules is evaluated by a forward-chaining
inference engine: the observation is asserted as a fact, rules fire in
declared priority order until fixpoint, and the resulting diagnosis is
reported with a risk level and a recommendation.

Run without arguments to start the interactive assessment form.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		zapCfg := zap.NewProductionConfig()
		if verbose || cfg.Logging.Verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runForm()
	},
}

func main() {
	home, _ := os.UserHomeDir()
	defaultConfig := filepath.Join(home, ".covex", "config.yaml")

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfig, "path to config file")
	rootCmd.PersistentFlags().BoolVar(&noHistory, "no-history", false, "do not record assessments in the history database")

	rootCmd.AddCommand(formCmd)
	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(historyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newSystem builds the expert system from the loaded configuration.
func newSystem() (*triage.System, error) {
	opts := []triage.Option{triage.WithLogger(logger)}
	if cfg.Engine.MaxIterations > 0 {
		opts = append(opts, triage.WithMaxIterations(cfg.Engine.MaxIterations))
	}
	return triage.New(opts...)
}

// recordHistory appends a completed assessment to the history store.
// Persistence failures are logged, not surfaced: the diagnosis already
// happened and the caller has it.
func recordHistory(d triage.Diagnosis) {
	if noHistory || cfg.History.Disabled {
		return
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		logger.Warn("history unavailable", zap.Error(err))
		return
	}
	defer store.Close()

	err = store.Append(history.Entry{
		ID:             uuid.NewString(),
		PatientName:    d.PatientName,
		Result:         d.Result,
		Recommendation: d.Recommendation,
		RiskLevel:      d.RiskLevel,
		CreatedAt:      time.Now().UTC(),
	})
	if err != nil {
		logger.Warn("failed to record assessment", zap.Error(err))
	}
}
