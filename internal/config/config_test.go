// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigOrDefault_NoFile(t *testing.T) {
	// With no config file, should return defaults without error
	cfg := LoadConfigOrDefault("")
	if cfg == nil {
		t.Fatal("expected non-nil config")
	}
	if cfg.Defaults.Format == "" {
		t.Error("expected default format to be set")
	}
}

func TestLoadConfigOrDefault_NonexistentFile(t *testing.T) {
	// A path that doesn't exist should fall back to defaults
	cfg := LoadConfigOrDefault("/nonexistent/path/config.yaml")
	if cfg == nil {
		t.Fatal("expected non-nil config (fallback to defaults)")
	}
}

func TestLoadConfigOrDefault_ValidFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := `
defaults:
  format: json
  skip_rows: 2
answers:
  semantic: false
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := LoadConfigOrDefault(configPath)
	if cfg == nil {
		t.Fatal("expected non-nil config")
	}
	if cfg.Defaults.Format != "json" {
		t.Errorf("expected format=json, got %q", cfg.Defaults.Format)
	}
	if cfg.Defaults.SkipRows != 2 {
		t.Errorf("expected skip_rows=2, got %d", cfg.Defaults.SkipRows)
	}
	if cfg.Answers.Semantic {
		t.Error("expected semantic=false when set explicitly")
	}
}

func TestLoadConfigOrDefault_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "bad.yaml")

	if err := os.WriteFile(configPath, []byte(":::invalid yaml:::"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Should fall back to defaults, not panic
	cfg := LoadConfigOrDefault(configPath)
	if cfg == nil {
		t.Fatal("expected non-nil config (fallback to defaults on parse error)")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.Format != "text" {
		t.Errorf("expected default format=text, got %q", cfg.Defaults.Format)
	}
	if !cfg.Answers.Semantic {
		t.Error("expected semantic=true by default")
	}
	if cfg.Answers.MaxSeqLen != 256 {
		t.Errorf("expected default max_seq_len=256, got %d", cfg.Answers.MaxSeqLen)
	}
	if len(cfg.Reconcile.Aliases.DriverName) == 0 {
		t.Error("expected default driver-name aliases")
	}
}

func TestLoadConfig_SemanticDefaultSurvivesPartialFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	// answers section present but semantic not mentioned: the true
	// default must survive unmarshaling
	content := `
answers:
  model_path: /models/minilm.onnx
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Answers.Semantic {
		t.Error("expected semantic=true to survive a partial answers section")
	}
	if cfg.Answers.ModelPath != "/models/minilm.onnx" {
		t.Errorf("expected model path from file, got %q", cfg.Answers.ModelPath)
	}
}

func TestLoadConfig_PartialAliasesMerged(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := `
reconcile:
  aliases:
    driver_name: ["Employee Name"]
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Reconcile.Aliases.DriverName) != 1 || cfg.Reconcile.Aliases.DriverName[0] != "Employee Name" {
		t.Errorf("expected overridden driver-name aliases, got %v", cfg.Reconcile.Aliases.DriverName)
	}
	if len(cfg.Reconcile.Aliases.TargetName) == 0 {
		t.Error("expected untouched alias lists to keep built-in candidates")
	}
}

func TestLoadConfig_UnknownFormatRejected(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := `
defaults:
  format: xml
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadConfig(configPath); err == nil {
		t.Error("expected error for unknown output format")
	}
}

func TestLoadConfig_ProfilesInitialized(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Profiles == nil {
		t.Error("expected profiles map to be initialized")
	}
}
