package commands

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"workflow-mapper/internal/mapping"
)

func newSynthesizeCmd(a *app) *cobra.Command {
	var (
		schemaTypes []string
		direction   string
		output      string
		format      string
	)

	cmd := &cobra.Command{
		Use:   "synthesize <sample.json|->",
		Short: "Generate a mapping configuration from a sample document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			s, err := a.newSession(cmd.Context(), schemaTypes)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.SetDirection(mapping.Direction(direction)); err != nil {
				return err
			}

			s.EditSample(string(data))
			s.Flush()

			st := s.State()
			if st.ParseError != nil {
				return st.ParseError
			}

			for _, v := range st.Violations() {
				log.Warn().Msg(v)
			}

			log.Info().
				Int("mappings", len(st.Config.Mappings)).
				Str("phase", st.Phase.String()).
				Msg("mapping synthesized")

			if output != "" {
				return mapping.WriteFile(st.Config, output)
			}

			return writeValue(cmd.OutOrStdout(), format, st.Config)
		},
	}

	cmd.Flags().StringSliceVarP(&schemaTypes, "schema", "s", nil, "Target schema type (repeatable)")
	cmd.Flags().StringVarP(&direction, "direction", "d", string(mapping.DirectionInbound), "inbound or outbound")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the configuration to a .yaml or .json file")
	cmd.Flags().StringVarP(&format, "format", "f", formatYAML, "Stdout format: yaml or json")

	return cmd
}
