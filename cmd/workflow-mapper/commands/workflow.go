package commands

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"workflow-mapper/internal/workflow"
)

func newWorkflowCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workflow <workflow.json|->",
		Short: "Validate a workflow and every mapping node in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			w, err := workflow.Parse(data)
			if err != nil {
				return err
			}

			p, err := a.provider()
			if err != nil {
				return err
			}

			results, err := w.ValidateMappings(cmd.Context(), p)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ids := make([]string, 0, len(results))

			for id := range results {
				ids = append(ids, id)
			}

			slices.Sort(ids)

			var all []string

			for _, id := range ids {
				msgs := results[id].Messages()
				if len(msgs) == 0 {
					fmt.Fprintf(out, "%s: ok\n", id)
					continue
				}

				for _, m := range msgs {
					fmt.Fprintf(out, "%s: %s\n", id, m)
					all = append(all, id+": "+m)
				}
			}

			return violationsError(all)
		},
	}

	return cmd
}
