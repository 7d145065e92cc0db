package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"covex/cmd/covex/ui"
)

// formCmd is an explicit alias for the default (no-argument) behavior.
var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Start the interactive assessment form",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runForm()
	},
}

// runForm drives the interactive assessment: collect observations via
// the bubbletea form, diagnose, render the card, record history.
func runForm() error {
	final, err := tea.NewProgram(ui.NewForm()).Run()
	if err != nil {
		return fmt.Errorf("form: %w", err)
	}

	form, ok := final.(ui.FormModel)
	if !ok {
		return fmt.Errorf("form: unexpected model type %T", final)
	}
	patient, ok := form.Patient()
	if !ok {
		// Aborted; nothing to diagnose.
		return nil
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
}
