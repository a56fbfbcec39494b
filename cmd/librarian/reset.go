package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the library and restore the defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// SAFETY: never wipe production without an explicit flag
		if app.cfg.Environment == "prod" && !resetForce {
			return errors.New("refusing to reset the prod library without --force")
		}

		if err := app.tree.Reset(cmd.Context()); err != nil {
			return fmt.Errorf("reset library: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "library reset to defaults on %s backend\n", app.backend.Name)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "Allow resetting in the prod environment")
	rootCmd.AddCommand(resetCmd)
}
