package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"certwatch/internal/application"
	"certwatch/internal/application/commands"
)

var copyDraft bool

var draftCmd = &cobra.Command{
	Use:   "draft <crew-id>",
	Short: "Preview the drafted expiry email for one crew member",
	Long: `Generate the expiry notification email for a single crew member
without sending it, so the drafter's output can be reviewed.

Examples:
  certwatch-cli draft crew_0042
  certwatch-cli draft crew_0042 --copy`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		draft := commands.NewDraftCommand(store, newDrafter(), args[0])
		draft.DateFormat = cfg.DateFormat

		result, err := draft.Execute(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("To:      %s\n", result.Member.Email)
		fmt.Printf("Subject: %s\n", result.Subject)
		fmt.Printf("Expired documents:\n%s\n\n", application.SummaryLines(result.Expired))
		fmt.Println(result.Body)

		if copyDraft {
			if err := clipboard.WriteAll(result.Body); err != nil {
				return fmt.Errorf("failed to copy draft to clipboard: %w", err)
			}
			fmt.Println("\n(draft copied to clipboard)")
		}
		return nil
	},
}

func init() {
	draftCmd.Flags().BoolVarP(&copyDraft, "copy", "c", false, "copy the drafted body to the clipboard")
	rootCmd.AddCommand(draftCmd)
}
