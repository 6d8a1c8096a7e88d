package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rgehrsitz/emerytura/internal/domain"
	"github.com/rgehrsitz/emerytura/internal/validation"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of simulation input files
type InputParser struct {
	// CurrentYear bounds the accepted working-period years.
	CurrentYear func() int
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{CurrentYear: func() int { return time.Now().Year() }}
}

// LoadFromFile loads a simulation from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes data, fills in default assumptions and validates the result.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	config.Assumptions = domain.DefaultAssumptions().Apply(config.Overrides)

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := validation.ValidateParams(config.Simulation, ip.CurrentYear()); err != nil {
		return err
	}
	if err := validation.ValidatePostalCode(config.PostalCode); err != nil {
		return err
	}
	if err := config.Assumptions.Validate(); err != nil {
		return fmt.Errorf("assumptions validation failed: %w", err)
	}
	return nil
}
