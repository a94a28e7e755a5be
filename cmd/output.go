package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bnema/pokedex-cli/internal/adapters/render/pokedex"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func parseFormat(raw string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(raw))
	switch format {
	case "", formatText:
		return formatText, nil
	case formatJSON, formatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want text, json or yaml)", raw)
	}
}

func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case formatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unsupported structured format %q", format)
	}
}

func writeRendered(w io.Writer, content pokedex.Content) error {
	rendered, err := pokedex.Render(content)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, rendered)
	return err
}

func normalizeRef(ref string) string {
	return strings.ToLower(strings.TrimSpace(ref))
}
