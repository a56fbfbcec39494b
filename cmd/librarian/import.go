package main

import (
	"fmt"

	libSvc "github.com/FlamingoLogic/chat-markdown-app/internal/domain/services/library"
	"github.com/FlamingoLogic/chat-markdown-app/internal/service/library"
	"github.com/FlamingoLogic/chat-markdown-app/internal/service/library/converter"

	"github.com/spf13/cobra"
)

var (
	importGlob    string
	importFolder  string
	importPublish bool
)

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Import files from a directory, mirroring sub-directories as folders",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.tree.Init(cmd.Context()); err != nil {
			return err
		}

		uploads := library.NewUploadService(app.tree, converter.NewConverterRegistry(), app.logger)
		result, err := uploads.ImportDirectory(cmd.Context(), &libSvc.ImportRequest{
			Dir:      args[0],
			Pattern:  importGlob,
			FolderID: importFolder,
			Publish:  importPublish,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, d := range result.Documents {
			fmt.Fprintf(out, "imported %s (%s)\n", d.Title, d.DocumentID)
		}
		for _, e := range result.Errors {
			fmt.Fprintf(out, "failed   %s: %s\n", e.File, e.Error)
		}
		fmt.Fprintf(out, "%d imported, %d failed, %d folders created\n",
			len(result.Documents), len(result.Errors), result.FoldersCreated)

		if err := app.tree.LastPersistError(); err != nil {
			return fmt.Errorf("import finished but the library could not be saved: %w", err)
		}
		if len(result.Errors) > 0 {
			return fmt.Errorf("%d files failed to import", len(result.Errors))
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importGlob, "glob", library.DefaultImportPattern, "Files to import, relative to <dir>")
	importCmd.Flags().StringVar(&importFolder, "folder", "", "Destination folder id (default: root)")
	importCmd.Flags().BoolVar(&importPublish, "publish", false, "Publish imported documents instead of leaving drafts")
	rootCmd.AddCommand(importCmd)
}
