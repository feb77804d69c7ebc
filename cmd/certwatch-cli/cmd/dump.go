package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dumpFile string

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump the raw crew subtree as JSON",
	Long: `Fetch the crew data subtree from the Realtime Database and print it
as indented JSON, exactly as stored. Useful for inspecting the roster
schema and debugging decode issues.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := store.FetchRaw(cmd.Context())
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(raw, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode crew data: %w", err)
		}

		if dumpFile != "" {
			if err := os.WriteFile(dumpFile, data, 0644); err != nil {
				return fmt.Errorf("failed to write dump: %w", err)
			}
			fmt.Printf("Crew data saved to %s\n", dumpFile)
			return nil
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpFile, "output", "o", "", "write the dump to a file instead of stdout")
	rootCmd.AddCommand(dumpCmd)
}
