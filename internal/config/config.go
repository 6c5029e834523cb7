// Package config loads CLI settings from flags, the environment and an
// optional workflow-mapper.yaml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"workflow-mapper/internal/match"
	"workflow-mapper/internal/session"
)

const (
	// FileName is the config file name searched for, without extension.
	FileName = "workflow-mapper"
	// EnvPrefix prefixes environment overrides, e.g. WORKFLOW_MAPPER_CATALOG.
	EnvPrefix = "WORKFLOW_MAPPER"
)

// Keys.
const (
	KeyCatalog  = "catalog"
	KeyDebounce = "debounce"
	KeyAliases  = "aliases"
	KeyVerbose  = "verbose"
)

// Config holds the resolved settings.
type Config struct {
	// Catalog is the path of the YAML schema catalog.
	Catalog string `mapstructure:"catalog"`
	// Debounce is the quiet period before an edited sample is parsed.
	Debounce time.Duration `mapstructure:"debounce"`
	// Aliases add to or override the matcher's alias table. An empty value
	// removes a built-in alias.
	Aliases map[string]string `mapstructure:"aliases"`
	Verbose bool              `mapstructure:"verbose"`
}

// Setup registers defaults, the environment prefix and the search paths on v.
func Setup(v *viper.Viper) {
	v.SetDefault(KeyCatalog, "")
	v.SetDefault(KeyDebounce, session.DefaultDebounce)
	v.SetDefault(KeyAliases, map[string]string{})
	v.SetDefault(KeyVerbose, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", FileName))
	}
}

// Load reads the config file (path, or the search paths when empty) and
// returns the merged settings. A missing file is only an error when path was
// given explicitly.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if c.Debounce < 0 {
		return Config{}, fmt.Errorf("debounce must not be negative, got %s", c.Debounce)
	}

	if c.Debounce == 0 {
		c.Debounce = session.DefaultDebounce
	}

	return c, nil
}

// Matcher returns a matcher with the configured aliases applied.
func (c Config) Matcher() *match.Matcher {
	return match.NewMatcher(c.Aliases)
}

// SessionOptions returns the session options implied by the settings.
func (c Config) SessionOptions() []session.Option {
	return []session.Option{
		session.WithDebounce(c.Debounce),
		session.WithMatcher(c.Matcher()),
	}
}
