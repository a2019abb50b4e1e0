package fundwatch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the name of the configuration file looked up in the data folder.
const DefaultConfigFile = "fundwatch.yaml"

// Config holds the settings of an analysis.
type Config struct {
	DataDir          string  `yaml:"data_dir"`           // folder holding the disclosure files
	Threshold        int     `yaml:"threshold"`          // minimum fuzzy score to link two names, 0..100
	Epsilon          float64 `yaml:"epsilon"`            // weight tolerance, in percent of NAV
	Scorer           string  `yaml:"scorer"`             // "ratio" or "token_sort"
	Sheet            string  `yaml:"sheet"`              // xlsx sheet holding the portfolio, first matching sheet if empty
	JSONRows         string  `yaml:"json_rows"`          // jsonpath to the holdings of a json disclosure
	Currency         string  `yaml:"currency"`           // currency of market values
	MarketValueScale float64 `yaml:"market_value_scale"` // multiplier of the market value column
	Significant      float64 `yaml:"significant"`        // minimum weight move reported by default, in percent of NAV
	Columns          Columns `yaml:"columns"`            // header labels
	IgnoreNames      string  `yaml:"ignore_names"`       // regexp of names to drop, like total lines
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() Config {
	return Config{
		DataDir:          "data",
		Threshold:        DefaultThreshold,
		Epsilon:          DefaultEpsilon,
		Scorer:           "ratio",
		JSONRows:         "$.holdings[*]",
		Currency:         "INR",
		MarketValueScale: 100000, // "Rs. in Lakhs"
		Columns:          DefaultColumns(),
		IgnoreNames:      DefaultIgnoreNames.String(),
	}
}

// LoadConfig reads the yaml configuration file at path over DefaultConfig.
// A missing file is not an error: the default configuration is returned.
// Columns listed in the file replace the default labels of that column only.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config %q: %w", path, err)
	}

	// fields absent from the file keep their default value.
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration. It returns an *InvalidThresholdError when the threshold is out of
// range.
func (c Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 100 {
		return &InvalidThresholdError{Threshold: c.Threshold}
	}
	if c.Epsilon < 0 {
		return fmt.Errorf("invalid epsilon %v: must not be negative", c.Epsilon)
	}
	if _, err := ScorerByName(c.Scorer); err != nil {
		return err
	}
	if _, err := regexp.Compile(c.IgnoreNames); err != nil {
		return fmt.Errorf("invalid ignore_names: %w", err)
	}
	return nil
}

// ParseOptions returns the parser options derived from c, for the given source.
func (c Config) ParseOptions(source string) ParseOptions {
	opts := ParseOptions{
		Source:           source,
		Columns:          c.Columns,
		Currency:         c.Currency,
		MarketValueScale: c.MarketValueScale,
	}
	if c.IgnoreNames != "" {
		// Validate reports invalid expressions; an invalid one here falls back to the default.
		if re, err := regexp.Compile(c.IgnoreNames); err == nil {
			opts.IgnoreNames = re
		}
	}
	return opts
}
