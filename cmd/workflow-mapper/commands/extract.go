package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"workflow-mapper/internal/extract"
)

func newExtractCmd() *cobra.Command {
	var (
		format string
		tree   bool
	)

	cmd := &cobra.Command{
		Use:   "extract <sample.json|->",
		Short: "List the fields found in a sample JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			descs, err := extract.FromJSON(data)
			if err != nil {
				return err
			}

			log.Debug().Int("fields", len(descs)).Msg("sample extracted")

			if tree {
				printTree(cmd.OutOrStdout(), extract.Tree(descs), 0)
				return nil
			}

			return writeValue(cmd.OutOrStdout(), format, descs)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatYAML, "Output format: yaml or json")
	cmd.Flags().BoolVar(&tree, "tree", false, "Print an indented field tree")

	return cmd
}

func printTree(w io.Writer, nodes []*extract.Node, depth int) {
	for _, n := range nodes {
		kind := string(n.Type)
		if n.IsArray {
			kind = "[]" + kind
		}

		marker := ""
		if n.Structural() {
			marker = " (structural)"
		}

		fmt.Fprintf(w, "%s%s: %s%s\n", strings.Repeat("  ", depth), n.Name(), kind, marker)
		printTree(w, n.Nodes, depth+1)
	}
}
