package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"workflow-mapper/internal/preview"
)

func newPreviewCmd() *cobra.Command {
	var samplePath string

	cmd := &cobra.Command{
		Use:   "preview <mapping.yaml|mapping.json|->",
		Short: "Show the record a mapping configuration produces for its sample",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration(cmd, args[0])
			if err != nil {
				return err
			}

			if samplePath != "" {
				data, err := readInput(cmd, samplePath)
				if err != nil {
					return err
				}

				cfg.SampleJSON = string(data)
			}

			res, err := preview.Apply(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, string(pretty.Pretty(res.Record)))

			for _, m := range res.Missing {
				fmt.Fprintf(cmd.ErrOrStderr(), "missing in sample: %s\n", m)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&samplePath, "sample", "", "Use this sample instead of the one stored in the configuration")

	return cmd
}
