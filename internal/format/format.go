// Package format writes word counts in the output formats of the wordcount CLI tool.
package format

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chriscorrea/wordcount/internal/counter"
)

// ErrUnsupportedFormat is returned by Parse and Write for unknown formats.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Format represents an output format.
type Format string

const (
	Plain      Format = "plain"
	CSV        Format = "csv"
	JSON       Format = "json" // legacy layout, not valid JSON
	JSONStrict Format = "json-strict"
	YAML       Format = "yaml"
)

var formats = []Format{Plain, CSV, JSON, JSONStrict, YAML}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// Parse parses a format name. Matching is case-insensitive.
func Parse(s string) (Format, error) {
	for _, f := range formats {
		if strings.EqualFold(string(f), s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Write renders items to w in format f.
// Output already written when an error occurs is not rolled back.
func Write(w io.Writer, f Format, items counter.WordCountVec) error {
	switch f {
	case Plain:
		return writePlain(w, items)
	case CSV:
		return writeCSV(w, items)
	case JSON:
		return writeLegacyJSON(w, items)
	case JSONStrict:
		return writeJSON(w, items)
	case YAML:
		return writeYAML(w, items)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
	}
}

// writePlain writes one "<word> <count>" line per pair
func writePlain(w io.Writer, items counter.WordCountVec) error {
	for _, item := range items {
		if _, err := fmt.Fprintf(w, "%s %d\n", item.Word, item.Count); err != nil {
			return err
		}
	}
	return nil
}

// writeCSV writes a header line and one line per pair with the word quoted.
// Words never contain quotes or commas, so no escaping is needed.
func writeCSV(w io.Writer, items counter.WordCountVec) error {
	if _, err := io.WriteString(w, "word, count\n"); err != nil {
		return err
	}
	for _, item := range items {
		if _, err := fmt.Fprintf(w, "\"%s\", %d\n", item.Word, item.Count); err != nil {
			return err
		}
	}
	return nil
}

// writeLegacyJSON writes the historical JSON-like layout: every pair is a
// `"word": count,` line inside an array, with a trailing comma after the last one.
func writeLegacyJSON(w io.Writer, items counter.WordCountVec) error {
	if _, err := io.WriteString(w, "{\n\t\"wordCount\": [\n"); err != nil {
		return err
	}
	for _, item := range items {
		if _, err := fmt.Fprintf(w, "\t\t\"%s\": %d,\n", item.Word, item.Count); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\t]\n}")
	return err
}

// document is the structure rendered by the strict JSON and YAML formats
type document struct {
	WordCount counter.WordCountVec `json:"wordCount" yaml:"wordCount"`
}

func newDocument(items counter.WordCountVec) document {
	if items == nil {
		items = counter.WordCountVec{}
	}
	return document{WordCount: items}
}

func writeJSON(w io.Writer, items counter.WordCountVec) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newDocument(items))
}

func writeYAML(w io.Writer, items counter.WordCountVec) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newDocument(items)); err != nil {
		return err
	}
	return enc.Close()
}
