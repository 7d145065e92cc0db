package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"covex/cmd/covex/ui"
)

// rulesCmd prints the knowledge base in priority order.
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the triage rules in priority order",
	Long: `Prints the fixed knowledge base. Rules are listed in declared order,
which is their priority: when several rules are satisfied for the same
patient, the earliest-declared one fires and suppresses the rest.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		system, err := newSystem()
		if err != nil {
			return err
		}
		for _, r := range system.Rules() {
			risk := ui.RiskStyle(r.RiskLevel)
			fmt.Printf("%2d. %-30s %-10s %s\n",
				r.Priority,
				r.Name,
				risk.Render(strings.ToUpper(string(r.RiskLevel))),
				r.Doc)
		}
		return nil
	},
}
