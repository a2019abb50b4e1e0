package fundwatch

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), DefaultConfigFile))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, t.TempDir(), DefaultConfigFile, `
threshold: 0
scorer: token_sort
sheet: Portfolio
columns:
  weight: ["Pct of NAV"]
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	want := DefaultConfig()
	want.Threshold = 0
	want.Scorer = "token_sort"
	want.Sheet = "Portfolio"
	want.Columns.Weight = []string{"Pct of NAV"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := writeFile(t, t.TempDir(), DefaultConfigFile, "threshold: [1, 2]\n")
	if _, err := LoadConfig(path); err == nil {
		t.Errorf("LoadConfig() error = nil, want an error")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"default", func(c *Config) {}, false},
		{"threshold 100", func(c *Config) { c.Threshold = 100 }, false},
		{"negative epsilon", func(c *Config) { c.Epsilon = -1 }, true},
		{"unknown scorer", func(c *Config) { c.Scorer = "soundex" }, true},
		{"invalid ignore_names", func(c *Config) { c.IgnoreNames = "(" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	cfg := DefaultConfig()
	cfg.Threshold = 150
	var invalid *InvalidThresholdError
	if err := cfg.Validate(); !errors.As(err, &invalid) {
		t.Errorf("Validate() error = %v, want an InvalidThresholdError", err)
	}
}
