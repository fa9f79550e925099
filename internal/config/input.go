package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of financial profile files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a profile from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.FinancialProfile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	profile, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", filename, err)
	}
	return profile, nil
}

// Parse decodes YAML (or JSON, which YAML accepts) into a validated profile
func (ip *InputParser) Parse(data []byte) (*domain.FinancialProfile, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return ParseProfile(raw)
}

// SaveToFile writes a profile as YAML
func (ip *InputParser) SaveToFile(profile *domain.FinancialProfile, filename string) error {
	data, err := yaml.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}
