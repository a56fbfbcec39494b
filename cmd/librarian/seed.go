package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the default library if the store is empty",
	Long: `seed loads the saved library. When nothing is saved yet, or the saved
snapshot is unreadable, the defaults are written in its place.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.tree.Init(cmd.Context()); err != nil {
			return err
		}
		if err := app.tree.LastPersistError(); err != nil {
			return fmt.Errorf("library loaded but could not be saved: %w", err)
		}

		tree := app.tree.Tree(true)
		fmt.Fprintf(cmd.OutOrStdout(), "library ready on %s backend: %d folders, %d documents\n",
			app.backend.Name, tree.Folders, tree.Documents)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
