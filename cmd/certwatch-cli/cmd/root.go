package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"certwatch/internal/adapters/firebase"
	"certwatch/internal/adapters/gemini"
	"certwatch/internal/adapters/sendgrid"
	"certwatch/internal/adapters/sqlite"
	"certwatch/internal/config"
	"certwatch/internal/ports"
)

var (
	cfg          config.Config
	store        *firebase.Store
	ledger       ports.NotificationLedger
	sqliteLedger *sqlite.Ledger
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "certwatch-cli",
	Short: "CLI for crew certification expiry tracking and notification",
	Long: `certwatch-cli inspects the crew roster in the Realtime Database,
classifies certification documents by expiry date, and emails crew members
about newly expired documents.

Already-notified expirations are recorded in a notification ledger so
repeated runs never re-send the same notification.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		cfg = config.Load()

		var err error
		store, err = firebase.NewStore(cmd.Context(), firebase.Config{
			CredentialsFile: cfg.CredentialsFile,
			DatabaseURL:     cfg.DatabaseURL,
			CrewDataPath:    cfg.CrewDataPath,
		})
		if err != nil {
			return err
		}

		switch cfg.LedgerBackend {
		case "sqlite":
			sqliteLedger, err = sqlite.Open(cfg.LedgerPath)
			if err != nil {
				return err
			}
			ledger = sqliteLedger
		case "firebase":
			ledger = store
		default:
			return fmt.Errorf("unknown ledger backend %q (expected firebase or sqlite)", cfg.LedgerBackend)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if sqliteLedger != nil {
			return sqliteLedger.Close()
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// newMailer builds the SendGrid mailer from config
func newMailer() ports.Mailer {
	return sendgrid.NewMailer(cfg.SendGridAPIKey, cfg.SenderEmail)
}

// newDrafter builds the Gemini drafter from config
func newDrafter() ports.Drafter {
	return gemini.NewDrafter(cfg.GeminiAPIKey, gemini.WithModel(cfg.GeminiModel))
}
