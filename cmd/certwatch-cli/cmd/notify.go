package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"certwatch/internal/application/commands"
)

var noDedupe bool

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Notify crew members about newly expired certifications",
	Long: `Run one notification pass over the whole roster.

For every crew member, expired documents that have not yet been notified
are collected, an email body is drafted, and on a successful send each
document is recorded in the notification ledger. Re-running against
unchanged data sends nothing.

With --no-dedupe the ledger is ignored entirely: every expired, numbered
document is re-notified on every run and nothing is recorded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		notify := commands.NewNotifyCommand(store, ledger, newMailer(), newDrafter())
		notify.DateFormat = cfg.DateFormat
		notify.ReportFile = cfg.ReportFile
		notify.Dedupe = !noDedupe

		report, err := notify.Execute(cmd.Context())
		if err != nil {
			return err
		}

		for _, o := range report.Outcomes {
			switch o.Status {
			case commands.StatusNotified:
				fmt.Printf("%-12s %s: notified (%d document(s))\n", o.CrewID, o.Name, o.Notified)
			case commands.StatusFailed:
				fmt.Printf("%-12s %s: FAILED: %v\n", o.CrewID, o.Name, o.Err)
			default:
				fmt.Printf("%-12s %s: %s\n", o.CrewID, o.Name, o.Status)
			}
		}

		if failed := report.Failures(); len(failed) > 0 {
			return fmt.Errorf("%d crew member(s) failed; they will be retried on the next run", len(failed))
		}
		return nil
	},
}

func init() {
	notifyCmd.Flags().BoolVar(&noDedupe, "no-dedupe", false, "resend for every expired document, ignoring the notification ledger")
	rootCmd.AddCommand(notifyCmd)
}
