package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"workflow-mapper/internal/config"
	"workflow-mapper/internal/mapping"
	"workflow-mapper/internal/schema"
	"workflow-mapper/internal/session"
)

// app carries the settings shared by all subcommands.
type app struct {
	v   *viper.Viper
	cfg config.Config
}

// NewRootCmd builds the workflow-mapper command tree.
func NewRootCmd(version string) *cobra.Command {
	a := &app{v: viper.New()}
	config.Setup(a.v)

	var configFile string

	rootCmd := &cobra.Command{
		Use:           "workflow-mapper",
		Short:         "Extract, auto-map and validate field mappings for workflow nodes",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v, configFile)
			if err != nil {
				return err
			}

			a.cfg = cfg
			InitLogging(cfg.Verbose)
			log.Debug().Str("catalog", cfg.Catalog).Dur("debounce", cfg.Debounce).Msg("config loaded")

			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "Enable verbose (debug) logging")
	flags.StringVar(&configFile, "config", "", "Config file (default ./workflow-mapper.yaml)")
	flags.StringP("catalog", "c", "", "Schema catalog YAML file")

	for _, key := range []string{config.KeyVerbose, config.KeyCatalog} {
		if err := a.v.BindPFlag(key, flags.Lookup(key)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(
		newExtractCmd(),
		newMatchCmd(a),
		newSynthesizeCmd(a),
		newValidateCmd(a),
		newPreviewCmd(),
		newSchemasCmd(a),
		newWorkflowCmd(a),
	)

	return rootCmd
}

// provider opens the configured schema catalog.
func (a *app) provider() (*schema.CachedProvider, error) {
	if a.cfg.Catalog == "" {
		return nil, fmt.Errorf("no schema catalog configured; use --catalog or set %s_CATALOG", config.EnvPrefix)
	}

	c, err := schema.LoadCatalog(a.cfg.Catalog)
	if err != nil {
		return nil, err
	}

	return schema.NewCachedProvider(c, log.Logger), nil
}

// newSession opens a session over the catalog with the given schemas selected.
// A schema that cannot be loaded is logged and contributes no fields.
func (a *app) newSession(ctx context.Context, schemaTypes []string) (*session.Session, error) {
	p, err := a.provider()
	if err != nil {
		return nil, err
	}

	opts := append(a.cfg.SessionOptions(), session.WithLogger(log.Logger))
	s := session.New(p, opts...)

	if len(schemaTypes) > 0 {
		if err := s.SelectSchemas(ctx, schemaTypes...); err != nil {
			log.Warn().Err(err).Msg("continuing without unavailable schema")
		}
	}

	return s, nil
}

// readInput reads a file, or stdin for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return data, nil
}

// loadConfiguration reads a mapping file in YAML, JSON or legacy JSON form.
func loadConfiguration(cmd *cobra.Command, path string) (mapping.Configuration, error) {
	if path == "-" {
		data, err := readInput(cmd, path)
		if err != nil {
			return mapping.Configuration{}, err
		}

		return mapping.Migrate(data)
	}

	return mapping.LoadFile(path)
}
