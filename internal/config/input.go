package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fbke/taximpact/internal/domain"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format identifies a profile file encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForFile picks the encoding from a file extension. Anything other
// than .json is read as YAML.
func FormatForFile(filename string) Format {
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// InputParser handles parsing of taxpayer profile files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads and validates a profile from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Profile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data, FormatForFile(filename))
}

// Parse decodes a profile and validates it. YAML input rejects unknown keys
// so a misspelt field is reported instead of silently contributing zero.
func (ip *InputParser) Parse(data []byte, format Format) (*domain.Profile, error) {
	var profile domain.Profile

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &profile); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&profile); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("failed to parse YAML: profile is empty")
			}
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if err := ip.ValidateProfile(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ValidateProfile validates a profile built in code or loaded from a file
func (ip *InputParser) ValidateProfile(profile *domain.Profile) error {
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("profile validation failed: %w", err)
	}
	return nil
}

// SaveToFile writes a profile in the encoding matching the file extension
func (ip *InputParser) SaveToFile(profile *domain.Profile, filename string) error {
	var (
		data []byte
		err  error
	)
	if FormatForFile(filename) == FormatJSON {
		data, err = json.MarshalIndent(profile, "", "  ")
	} else {
		data, err = yaml.Marshal(profile)
	}
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}
