package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"covex/cmd/covex/ui"
	"covex/internal/triage"
)

var diagnoseFlags struct {
	name                string
	fever               string
	cough               string
	breathing           string
	fatigue             string
	tasteSmell          string
	contactWithPositive string
}

// diagnoseCmd runs a single non-interactive assessment from flags.
var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Run a single assessment from flags",
	Long: `Runs one assessment without the interactive form.

Every symptom flag takes "yes" or "no" and defaults to "no".

Example:
  covex diagnose --name "Jordan Doe" --fever yes --cough yes --breathing-difficulty yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		patient := triage.Patient{
			Name:                diagnoseFlags.name,
			Fever:               triage.Answer(diagnoseFlags.fever),
			Cough:               triage.Answer(diagnoseFlags.cough),
			BreathingDifficulty: triage.Answer(diagnoseFlags.breathing),
			Fatigue:             triage.Answer(diagnoseFlags.fatigue),
			LossOfTasteSmell:    triage.Answer(diagnoseFlags.tasteSmell),
			ContactWithPositive: triage.Answer(diagnoseFlags.contactWithPositive),
		}

		system, err := newSystem()
		if err != nil {
			return err
		}
		diagnosis, err := system.Diagnose(patient)
		if err != nil {
			return err
		}

		fmt.Println(ui.RenderDiagnosis(diagnosis))
		recordHistory(diagnosis)
		return nil
	},
}

func init() {
	f := diagnoseCmd.Flags()
	f.StringVar(&diagnoseFlags.name, "name", "", "patient name (required)")
	f.StringVar(&diagnoseFlags.fever, "fever", "no", "fever (>=37.8C/100F)")
	f.StringVar(&diagnoseFlags.cough, "cough", "no", "persistent cough")
	f.StringVar(&diagnoseFlags.breathing, "breathing-difficulty", "no", "difficulty breathing or shortness of breath")
	f.StringVar(&diagnoseFlags.fatigue, "fatigue", "no", "unusual tiredness or fatigue")
	f.StringVar(&diagnoseFlags.tasteSmell, "loss-of-taste-smell", "no", "lost sense of taste or smell")
	f.StringVar(&diagnoseFlags.contactWithPositive, "contact-with-positive", "no", "close contact with a confirmed case")
	_ = diagnoseCmd.MarkFlagRequired("name")
}
