// Package store loads and saves the category→label classification rules
// kept in a YAML file alongside the data.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"fjacquet/budget-board/internal/logging"
	"fjacquet/budget-board/internal/models"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// LabelRuleStore manages loading and saving of label classification rules.
// The file format is a top-level "rules" mapping of category to label:
//
//	rules:
//	  Dining Out: Wants
//	  Gym: Needs
//
// A bare category→label mapping without the top-level key is accepted too.
type LabelRuleStore struct {
	RulesFile string
}

// NewLabelRuleStore creates a store for the given rules file name or path.
func NewLabelRuleStore(rulesFile string) *LabelRuleStore {
	return &LabelRuleStore{RulesFile: rulesFile}
}

// rulesConfig is the preferred on-disk shape.
type rulesConfig struct {
	Rules map[string]string `yaml:"rules"`
}

// FindConfigFile looks for a configuration file in standard locations
func (s *LabelRuleStore) FindConfigFile(filename string) (string, error) {
	// Check if it's an absolute path
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	// Common locations to check for config files
	locations := []string{
		filename,                          // Current directory
		filepath.Join("config", filename), // ./config/ directory
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	// If still not found, check in the user's home directory
	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "budget-board", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadRules loads the classification rules. Map keys are lowercased so
// lookups stay case-insensitive. A missing file is not an error: the
// classifier falls back to its built-in table.
func (s *LabelRuleStore) LoadRules() (map[string]models.Label, error) {
	filename := s.RulesFile
	if filename == "" {
		filename = "labels.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("Label rules file not found, using built-in table",
				logging.Field{Key: logging.FieldFile, Value: filename})
			return map[string]models.Label{}, nil
		}
		return nil, fmt.Errorf("error resolving label rules file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading label rules file: %w", err)
	}

	raw, err := unmarshalRules(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing label rules file %s: %w", filePath, err)
	}

	rules := make(map[string]models.Label, len(raw))
	for category, value := range raw {
		label, ok := models.ParseLabelCode(value)
		if !ok {
			log.Warn("Skipping rule with unknown label",
				logging.Field{Key: logging.FieldCategory, Value: category},
				logging.Field{Key: logging.FieldLabel, Value: value})
			continue
		}
		rules[strings.ToLower(strings.TrimSpace(category))] = label
	}

	log.Debug("Loaded label rules",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(rules)})
	return rules, nil
}

// unmarshalRules accepts both the "rules:" document and a bare mapping.
func unmarshalRules(data []byte) (map[string]string, error) {
	var config rulesConfig
	if err := yaml.Unmarshal(data, &config); err == nil && len(config.Rules) > 0 {
		return config.Rules, nil
	}

	var bare map[string]string
	if err := yaml.Unmarshal(data, &bare); err != nil {
		return nil, err
	}
	return bare, nil
}

// SaveRules writes the rules file. Relative names land in the current
// directory unless the file already exists in one of the standard locations.
func (s *LabelRuleStore) SaveRules(rules map[string]models.Label) error {
	filename := s.RulesFile
	if filename == "" {
		filename = "labels.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("error resolving label rules file: %w", err)
		}
		filePath = filename
	}

	dir := filepath.Dir(filePath)
	if dir != "." {
		if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
			return fmt.Errorf("error creating directory: %w", err)
		}
	}

	out := rulesConfig{Rules: make(map[string]string, len(rules))}
	for category, label := range rules {
		out.Rules[category] = string(label)
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("error marshaling label rules: %w", err)
	}

	if err := os.WriteFile(filePath, data, models.PermissionConfigFile); err != nil {
		return fmt.Errorf("error writing label rules: %w", err)
	}

	log.Debug("Saved label rules",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(rules)})
	return nil
}
