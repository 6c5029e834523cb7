package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"workflow-mapper/internal/extract"
	"workflow-mapper/internal/match"
)

func newMatchCmd(a *app) *cobra.Command {
	var (
		schemaType string
		suggest    int
		fieldType  string
	)

	cmd := &cobra.Command{
		Use:   "match <field-name>",
		Short: "Show which schema field a source field name maps to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.provider()
			if err != nil {
				return err
			}

			fields, err := p.Fields(cmd.Context(), schemaType)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			f, rule, ok := a.cfg.Matcher().MatchRule(args[0], fields)
			if ok {
				fmt.Fprintf(out, "%s -> %s (%s, %s)\n", args[0], f.Name, rule, f.Type)
			} else {
				fmt.Fprintf(out, "%s -> %s\n", args[0], "custom_fields")
			}

			if suggest <= 0 {
				return nil
			}

			source := extract.Descriptor{
				Path:     args[0],
				Segments: []string{args[0]},
				Type:     extract.Type(fieldType),
			}

			for _, c := range match.Rank(source, fields).Top(suggest) {
				fmt.Fprintf(out, "  %-30s %.2f (name %.2f, type %s)\n",
					c.Field.Name, c.CombinedScore, c.NameScore, c.TypeCompat.Compatibility)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&schemaType, "schema", "s", "", "Schema type to match against")
	cmd.Flags().IntVar(&suggest, "suggest", 0, "Also list the N best-scoring fields")
	cmd.Flags().StringVar(&fieldType, "type", string(extract.TypeString), "Source value type used for suggestions")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}
