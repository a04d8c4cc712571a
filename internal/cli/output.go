package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/agentx-labs/metaregistry/internal/config"
	"go.yaml.in/yaml/v3"
)

// outputFormat returns the requested format, falling back to the configured
// default.
func outputFormat(flag string) (string, error) {
	format := flag
	if format == "" {
		format = config.Output()
	}
	switch format {
	case "", "json":
		return "json", nil
	case "yaml", "yml":
		return "yaml", nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want json or yaml)", format)
	}
}

// render writes v to w as indented JSON or YAML.
func render(w io.Writer, v any, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
}
