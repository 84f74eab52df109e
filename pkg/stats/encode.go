package stats

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/graphstat/pkg/errors"
)

// Encoding formats for Stats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Encode writes s to w as indented JSON or YAML.
func Encode(w io.Writer, s *Stats, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return errs.New(errs.ErrCodeInvalidFormat, "unsupported stats format %q", format)
	}
}

// Marshal returns the JSON encoding of s used for caching.
func Marshal(s *Stats) ([]byte, error) {
	return json.Marshal(s)
}

// Unmarshal decodes a Stats previously produced by Marshal.
func Unmarshal(data []byte) (*Stats, error) {
	var s Stats
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	return &s, nil
}
