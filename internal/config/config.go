// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"insight-ops/internal/paths"
	"insight-ops/internal/reconcile"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Format   string `yaml:"format"`
		Verbose  bool   `yaml:"verbose"`
		Debug    bool   `yaml:"debug"`
		NoColor  bool   `yaml:"no_color"`
		SkipRows int    `yaml:"skip_rows"`
	} `yaml:"defaults"`

	// Reconciliation settings
	Reconcile struct {
		Aliases reconcile.FieldAliases `yaml:"aliases"`
	} `yaml:"reconcile"`

	// Answer-finder settings
	Answers struct {
		Semantic      bool                `yaml:"semantic"`
		ModelPath     string              `yaml:"model_path"`
		TokenizerPath string              `yaml:"tokenizer_path"`
		OrtLibrary    string              `yaml:"ort_library"`
		MaxSeqLen     int                 `yaml:"max_seq_len"`
		Synonyms      map[string][]string `yaml:"synonyms"`
	} `yaml:"answers"`

	// Violation-classifier settings
	Violations struct {
		ReferenceFile string `yaml:"reference_file"`
	} `yaml:"violations"`

	// Profiles for different processing scenarios
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile represents a processing profile with specific settings
type Profile struct {
	Format      string `yaml:"format"`
	Verbose     bool   `yaml:"verbose"`
	Debug       bool   `yaml:"debug"`
	NoColor     bool   `yaml:"no_color"`
	SkipRows    int    `yaml:"skip_rows"`
	Description string `yaml:"description"`
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	// Default configuration
	config := &Config{
		Profiles: make(map[string]Profile),
	}

	// Set default values
	config.Defaults.Format = "text"
	config.Defaults.Verbose = false
	config.Defaults.Debug = false
	config.Defaults.NoColor = false
	config.Defaults.SkipRows = 0

	config.Reconcile.Aliases = reconcile.DefaultAliases()

	config.Answers.Semantic = true
	config.Answers.MaxSeqLen = 256

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	// Read config file
	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Store default values before unmarshaling
	defaultSemantic := config.Answers.Semantic
	defaultMaxSeqLen := config.Answers.MaxSeqLen

	// Parse YAML
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Restore defaults if not explicitly set in config file
	// This handles the case where YAML unmarshaling sets fields to their
	// zero value when they're not present in the config file
	if !containsField(data, "answers", "semantic") {
		config.Answers.Semantic = defaultSemantic
	}
	if config.Answers.MaxSeqLen <= 0 {
		config.Answers.MaxSeqLen = defaultMaxSeqLen
	}
	mergeAliases(&config.Reconcile.Aliases)

	// Validate the configuration
	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// mergeAliases fills alias lists the config file left empty with the
// built-in candidates, so a partial aliases section does not disable
// column discovery for the untouched fields.
func mergeAliases(aliases *reconcile.FieldAliases) {
	defaults := reconcile.DefaultAliases()
	if len(aliases.DriverName) == 0 {
		aliases.DriverName = defaults.DriverName
	}
	if len(aliases.HireDate) == 0 {
		aliases.HireDate = defaults.HireDate
	}
	if len(aliases.DateOfBirth) == 0 {
		aliases.DateOfBirth = defaults.DateOfBirth
	}
	if len(aliases.LicenseState) == 0 {
		aliases.LicenseState = defaults.LicenseState
	}
	if len(aliases.TargetName) == 0 {
		aliases.TargetName = defaults.TargetName
	}
	if len(aliases.TargetHire) == 0 {
		aliases.TargetHire = defaults.TargetHire
	}
	if len(aliases.TargetDOB) == 0 {
		aliases.TargetDOB = defaults.TargetDOB
	}
	if len(aliases.TargetLicense) == 0 {
		aliases.TargetLicense = defaults.TargetLicense
	}
	if len(aliases.TargetNotes) == 0 {
		aliases.TargetNotes = defaults.TargetNotes
	}
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	// Check current directory first - prioritize config.yaml
	if fileExists("config.yaml") {
		return "config.yaml"
	}
	if fileExists("insight.yaml") {
		return "insight.yaml"
	}
	if fileExists("insight.yml") {
		return "insight.yml"
	}

	// Check for .insight-ops.yaml in current directory (project-specific config)
	if fileExists(".insight-ops.yaml") {
		return ".insight-ops.yaml"
	}
	if fileExists(".insight-ops.yml") {
		return ".insight-ops.yml"
	}

	// Check standard location
	standardConfig := paths.GetConfigFile()
	if fileExists(standardConfig) {
		return standardConfig
	}

	// Check legacy location in the home directory
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	homeConfig := filepath.Join(home, ".insight.yaml")
	if fileExists(homeConfig) {
		return homeConfig
	}
	homeConfig = filepath.Join(home, ".insight.yml")
	if fileExists(homeConfig) {
		return homeConfig
	}

	return ""
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return !info.IsDir()
}

// ListProfiles returns a list of available profile names
func (c *Config) ListProfiles() []string {
	profiles := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		profiles = append(profiles, name)
	}
	return profiles
}

// GetProfile returns a profile by name, or nil if not found
func (c *Config) GetProfile(name string) *Profile {
	if profile, exists := c.Profiles[name]; exists {
		return &profile
	}
	return nil
}

// containsField checks if a nested field exists in the YAML data
func containsField(data []byte, path ...string) bool {
	var yamlData map[string]interface{}
	err := yaml.Unmarshal(data, &yamlData)
	if err != nil {
		return false
	}

	current := yamlData
	for i, key := range path {
		if i == len(path)-1 {
			// Last key - check if it exists
			_, exists := current[key]
			return exists
		}
		// Intermediate key - navigate deeper
		if next, ok := current[key].(map[string]interface{}); ok {
			current = next
		} else {
			return false
		}
	}
	return false
}

// ValidateConfig validates path fields and format values
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	for name, p := range map[string]string{
		"answers model path":        config.Answers.ModelPath,
		"answers tokenizer path":    config.Answers.TokenizerPath,
		"answers ort library path":  config.Answers.OrtLibrary,
		"violations reference file": config.Violations.ReferenceFile,
	} {
		if err := paths.ValidatePath(p); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}

	switch config.Defaults.Format {
	case "", "text", "csv", "json":
	default:
		return fmt.Errorf("unknown output format %q", config.Defaults.Format)
	}

	return nil
}

// LoadConfigOrDefault loads configuration from configFile (or searches standard locations
// when configFile is empty). If loading fails, it returns a default configuration.
func LoadConfigOrDefault(configFile string) *Config {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		// Fall back to defaults — callers should not crash on a missing/bad config file.
		cfg, _ = LoadConfig("")
	}
	return cfg
}
