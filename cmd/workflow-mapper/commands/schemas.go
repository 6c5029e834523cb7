package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSchemasCmd(a *app) *cobra.Command {
	var (
		workflowType string
		fieldsOf     string
		common       []string
	)

	cmd := &cobra.Command{
		Use:   "schemas",
		Short: "List catalog schemas, their fields, or the fields several schemas share",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.provider()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			switch {
			case fieldsOf != "":
				fields, err := p.Fields(ctx, fieldsOf)
				if err != nil {
					return err
				}

				for _, f := range fields {
					fmt.Fprintln(out, describeField(f.Name, f.Type, f.Required, f.IsArray, f.ParentField))
				}
			case len(common) > 0:
				fields, err := p.CommonFields(ctx, common)
				if err != nil {
					return err
				}

				for _, f := range fields {
					fmt.Fprintln(out, f.Name)
				}
			default:
				summaries, err := p.Available(ctx, workflowType)
				if err != nil {
					return err
				}

				for _, s := range summaries {
					fmt.Fprintf(out, "%-24s %s\n", s.SchemaType, s.DisplayName)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&workflowType, "workflow", "w", "", "Only schemas available to this workflow type")
	cmd.Flags().StringVar(&fieldsOf, "fields", "", "List the fields of one schema type")
	cmd.Flags().StringSliceVar(&common, "common", nil, "List the fields shared by these schema types")
	cmd.MarkFlagsMutuallyExclusive("fields", "common")

	return cmd
}

func describeField(name, typ string, required, array bool, parent string) string {
	var b strings.Builder

	if parent != "" {
		b.WriteString(parent + ".")
	}

	b.WriteString(name + " " + typ)

	if array {
		b.WriteString("[]")
	}

	if required {
		b.WriteString(" required")
	}

	return b.String()
}
