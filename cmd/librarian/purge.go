package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var purgeForce bool

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Drop all stored library data from the backend",
	Long: `purge removes the persisted snapshots without reseeding: snapshot files
for the file backend, the library_state table for sqlite and postgres.
The next start seeds the defaults again.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !purgeForce {
			return errors.New("purge deletes all stored documents; rerun with --force")
		}

		if err := app.backend.Purge(cmd.Context()); err != nil {
			return fmt.Errorf("purge: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s backend purged (environment: %s)\n", app.backend.Name, app.cfg.Environment)
		return nil
	},
}

func init() {
	purgeCmd.Flags().BoolVar(&purgeForce, "force", false, "Confirm that all stored data should be dropped")
	rootCmd.AddCommand(purgeCmd)
}
