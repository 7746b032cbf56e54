package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// OutputFormat specifies the output format.
type OutputFormat string

const (
	// FormatText outputs one item per line.
	FormatText OutputFormat = "text"

	// FormatYAML outputs in YAML format.
	FormatYAML OutputFormat = "yaml"

	// FormatJSON outputs in JSON format.
	FormatJSON OutputFormat = "json"

	// FormatWide outputs a table with template status and location.
	FormatWide OutputFormat = "wide"
)

// String returns the string representation of the output format.
func (f OutputFormat) String() string {
	return string(f)
}

// Valid checks if the output format is valid.
func (f OutputFormat) Valid() bool {
	switch f {
	case FormatText, FormatYAML, FormatJSON, FormatWide:
		return true
	default:
		return false
	}
}

// ParseOutputFormat parses a string into an OutputFormat.
// The bool result is false when s is not a known format.
func ParseOutputFormat(s string) (OutputFormat, bool) {
	switch strings.ToLower(s) {
	case "", "text", "txt":
		return FormatText, true
	case "yaml", "yml":
		return FormatYAML, true
	case "json":
		return FormatJSON, true
	case "wide":
		return FormatWide, true
	default:
		return OutputFormat(s), false
	}
}

// ValidFormats returns a slice of valid output format strings.
func ValidFormats() []string {
	return []string{"text", "yaml", "json", "wide"}
}

// TemplateList is the structured form of a template listing.
type TemplateList struct {
	Language  string   `json:"language" yaml:"language"`
	Templates []string `json:"templates" yaml:"templates"`
}

// WriteTemplateList writes list in the given format.
func WriteTemplateList(w io.Writer, format OutputFormat, list TemplateList) error {
	if list.Templates == nil {
		list.Templates = []string{}
	}

	switch format {
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(list); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return encoder.Close()
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(list); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	default:
		for _, name := range list.Templates {
			if _, err := fmt.Fprintln(w, name); err != nil {
				return err
			}
		}
		return nil
	}
}
