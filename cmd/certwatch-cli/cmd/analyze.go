package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"certwatch/internal/application/commands"
)

var sendStatusEmails bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Classify all crew certifications and write the analysis report",
	Long: `Classify every crew member's documents as valid, expired, or
expiry-not-mentioned and save the breakdown as a JSON report.

With --email each member also receives a drafted status email covering
their full situation (expired and missing-expiry documents, or a positive
note when everything is up to date). Status emails are not tracked in the
notification ledger.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		analyze := commands.NewAnalyzeCommand(store, cfg.ReportFile)
		analyze.DateFormat = cfg.DateFormat
		analyze.SendStatus = sendStatusEmails
		if sendStatusEmails {
			analyze.Mailer = newMailer()
			analyze.Drafter = newDrafter()
		}

		report, err := analyze.Execute(cmd.Context())
		if err != nil {
			return err
		}

		keys := make([]string, 0, len(report))
		for k := range report {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			b := report[k]
			fmt.Printf("%s\n", k)
			fmt.Printf("  valid: %d  expired: %d  expiry not mentioned: %d\n",
				len(b.Valid), len(b.Expired), len(b.ExpiryNotMentioned))
		}
		fmt.Printf("\nReport saved to %s\n", cfg.ReportFile)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&sendStatusEmails, "email", false, "send each crew member a status email")
	rootCmd.AddCommand(analyzeCmd)
}
