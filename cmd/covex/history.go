package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"covex/cmd/covex/ui"
	"covex/internal/history"
)

var historyLimit int

// historyCmd lists recent assessments from the history database.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent assessments",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.Recent(historyLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No assessments recorded yet.")
			return nil
		}

		for _, e := range entries {
			risk := ui.RiskStyle(e.RiskLevel)
			fmt.Printf("%s  %-24s %-10s %s\n",
				e.CreatedAt.Local().Format("2006-01-02 15:04"),
				e.PatientName,
				risk.Render(strings.ToUpper(string(e.RiskLevel))),
				e.Result)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum entries to list")
}
