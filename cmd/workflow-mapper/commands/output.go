package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"workflow-mapper/internal/diagnostic"
)

// Output formats.
const (
	formatYAML = "yaml"
	formatJSON = "json"
)

func writeValue(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(v)
	case formatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(v); err != nil {
			return err
		}

		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (want yaml or json)", format)
	}
}

// violationsError turns validation messages into a command failure.
func violationsError(violations []string) error {
	if len(violations) == 0 {
		return nil
	}

	return diagnostic.SaveBlocked(violations)
}
