package output

import "gopkg.in/yaml.v3"

// YAMLFormatter serializes the report as YAML, in the same key style as input files.
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(report *Report) ([]byte, error) {
	return yaml.Marshal(report)
}
