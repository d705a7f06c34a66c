package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// field is one label/value row of text output.
type field struct {
	label string
	value any
}

// render writes v in the configured output format. text renders the
// human-readable form.
func (a *App) render(v any, text func(w io.Writer) error) error {
	switch format := strings.ToLower(a.v.GetString("output")); format {
	case "", "text":
		return text(a.out)
	case "json":
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		return writeYAML(a.out, v)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// writeYAML renders v through its JSON form so YAML keys match the API.
func writeYAML(w io.Writer, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = w.Write(out)
	return err
}

func writeFields(w io.Writer, fields ...field) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, f := range fields {
		if _, err := fmt.Fprintf(tw, "%s:\t%v\n", f.label, f.value); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func writeList(w io.Writer, label string, items []string) error {
	if len(items) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "%s:\n", label); err != nil {
		return err
	}
	for _, item := range items {
		if _, err := fmt.Fprintf(w, "  - %s\n", item); err != nil {
			return err
		}
	}
	return nil
}
