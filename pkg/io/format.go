package io

import (
	"errors"
	"path/filepath"
	"strings"

	errs "github.com/matzehuels/graphstat/pkg/errors"
)

// Format is an edge-list encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTab  Format = "tab"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned by DetectFormat for unrecognized extensions.
var ErrUnknownFormat = errors.New("unknown edge list format")

// Formats lists every supported format name.
var Formats = []string{string(FormatCSV), string(FormatTab), string(FormatJSON)}

var extensions = map[string]Format{
	".csv":   FormatCSV,
	".txt":   FormatTab,
	".tsv":   FormatTab,
	".tab":   FormatTab,
	".edges": FormatTab,
	".json":  FormatJSON,
}

// DetectFormat picks a format from the extension of path.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return "", errs.Wrap(errs.ErrCodeInvalidFormat, ErrUnknownFormat, "cannot infer format of %q", path)
}

// ParseFormat validates a format name. The empty string falls back to
// DetectFormat(path).
func ParseFormat(name, path string) (Format, error) {
	if name == "" {
		return DetectFormat(path)
	}
	if name == "txt" || name == "tsv" {
		return FormatTab, nil
	}
	if err := errs.ValidateChoice(errs.ErrCodeInvalidFormat, "format", name, Formats...); err != nil {
		return "", err
	}
	return Format(name), nil
}
