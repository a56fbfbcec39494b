package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	models "github.com/FlamingoLogic/chat-markdown-app/internal/domain/models/library"

	"github.com/spf13/cobra"
)

var (
	treeJSON      bool
	treePublished bool
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the folder and document tree",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.tree.Init(cmd.Context()); err != nil {
			return err
		}
		tree := app.tree.Tree(!treePublished)

		out := cmd.OutOrStdout()
		if treeJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(tree)
		}

		printFolder(out, &tree.Root, 0)
		fmt.Fprintf(out, "\n%d folders, %d documents\n", tree.Folders, tree.Documents)
		return nil
	},
}

func printFolder(w io.Writer, node *models.FolderTreeNode, depth int) {
	indent := strings.Repeat("  ", depth)
	marker := ""
	if node.IsSystem {
		marker = " [system]"
	}
	fmt.Fprintf(w, "%s%s/%s\n", indent, node.Name, marker)

	for _, child := range node.Folders {
		printFolder(w, child, depth+1)
	}
	for _, doc := range node.Documents {
		fmt.Fprintf(w, "%s  - %s (%s, %d words)\n", indent, doc.Title, doc.Status, doc.WordCount)
	}
}

func init() {
	treeCmd.Flags().BoolVar(&treeJSON, "json", false, "Output as JSON")
	treeCmd.Flags().BoolVar(&treePublished, "published", false, "Only show published documents")
	rootCmd.AddCommand(treeCmd)
}
