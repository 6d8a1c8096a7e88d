package output

import "github.com/goccy/go-json"

// JSONFormatter serializes the report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *Report) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
