package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"workflow-mapper/internal/session"
)

func newValidateCmd(a *app) *cobra.Command {
	var (
		schemaTypes []string
		warnings    bool
	)

	cmd := &cobra.Command{
		Use:   "validate <mapping.yaml|mapping.json|->",
		Short: "Check a mapping configuration against its target schemas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration(cmd, args[0])
			if err != nil {
				return err
			}

			s, err := a.newSession(cmd.Context(), schemaTypes)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Dispatch(session.Migrated{Config: cfg}); err != nil {
				return err
			}

			st := s.State()
			out := cmd.OutOrStdout()

			if st.ParseError != nil {
				fmt.Fprintf(out, "sample: %s\n", st.ParseMessage())
			}

			for _, v := range st.Violations() {
				fmt.Fprintln(out, v)
			}

			if warnings {
				for _, w := range st.Diagnostics.Warnings {
					fmt.Fprintf(out, "warning: %s\n", w.Message)
				}
			}

			if _, err := s.Save(); err != nil {
				return err
			}

			fmt.Fprintf(out, "ok: %d mappings\n", len(st.Config.Mappings))

			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&schemaTypes, "schema", "s", nil, "Target schema type (repeatable)")
	cmd.Flags().BoolVarP(&warnings, "warnings", "w", false, "Also print non-blocking warnings")

	return cmd
}
