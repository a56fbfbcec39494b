package main

import (
	"fmt"

	"github.com/FlamingoLogic/chat-markdown-app/internal/domain"
	models "github.com/FlamingoLogic/chat-markdown-app/internal/domain/models/library"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status <document-id> <draft|published|archived>",
	Short: "Publish, unpublish or archive a document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := models.ParseStatus(args[1])
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		if err := app.tree.Init(cmd.Context()); err != nil {
			return err
		}

		doc, err := app.tree.SetDocumentStatus(cmd.Context(), args[0], status)
		if err != nil {
			return err
		}
		if err := app.tree.LastPersistError(); err != nil {
			return fmt.Errorf("status changed but the library could not be saved: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", doc.Title, doc.Status)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
