package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"covex/cmd/covex/ui"
	"covex/internal/triage"
)

var batchWorkers int

// batchResult pairs one input record with its outcome; per-record
// failures (bad input values) do not abort the rest of the batch.
type batchResult struct {
	diagnosis triage.Diagnosis
	err       error
}

// batchCmd assesses a YAML file of patient records. Records are
// diagnosed concurrently; working memory must never be shared across
// concurrent runs, so every worker gets its own expert system.
var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Assess a YAML file of patient records",
	Long: `Reads patient records from a YAML file and assesses each one.

The file is a list of records:

  - name: Jordan Doe
    fever: yes
    cough: yes
    breathing_difficulty: no
    fatigue: no
    loss_of_taste_smell: no
    contact_with_positive: no

Records are diagnosed concurrently with one engine per worker.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 4, "maximum concurrent assessments")
}

func runBatch(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("batch: read %s: %w", args[0], err)
	}

	var patients []triage.Patient
	if err := yaml.Unmarshal(data, &patients); err != nil {
		return fmt.Errorf("batch: parse %s: %w", args[0], err)
	}
	if len(patients) == 0 {
		return fmt.Errorf("batch: %s contains no patient records", args[0])
	}

	results := make([]batchResult, len(patients))

	var g errgroup.Group
	g.SetLimit(batchWorkers)
	for i, p := range patients {
		g.Go(func() error {
			system, err := newSystem()
			if err != nil {
				return err
			}
			d, err := system.Diagnose(p)
			results[i] = batchResult{diagnosis: d, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failures := 0
	for i, r := range results {
		if r.err != nil {
			failures++
			fmt.Printf("%-24s %s\n", patients[i].Name, ui.ErrorStyle.Render(r.err.Error()))
			continue
		}
		risk := ui.RiskStyle(r.diagnosis.RiskLevel)
		fmt.Printf("%-24s %-10s %s\n",
			r.diagnosis.PatientName,
			risk.Render(strings.ToUpper(string(r.diagnosis.RiskLevel))),
			r.diagnosis.Result)
		recordHistory(r.diagnosis)
	}

	logger.Debug("batch complete",
		zap.Int("assessed", len(results)-failures),
		zap.Int("failed", failures))
	if failures > 0 {
		return fmt.Errorf("batch: %d of %d records failed", failures, len(results))
	}
	return nil
}
