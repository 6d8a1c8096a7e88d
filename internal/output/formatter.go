package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(report *Report) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*Report) ([]byte, error)
}

func (ff FormatterFunc) Format(r *Report) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                     { return ff.ID }

// WriteFormatted runs a formatter and writes output to a timestamped file with extension.
func WriteFormatted(f Formatter, report *Report, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("pension_report_%s.%s", report.GeneratedAt.Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	CSVFormatter{},
	JSONFormatter{},
	YAMLFormatter{},
}

// GetFormatterByName fetches a registered formatter, resolving aliases.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"text":        "console",
	"table":       "console",
	"json-pretty": "json",
	"yml":         "yaml",
	"csv-summary": "csv",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
