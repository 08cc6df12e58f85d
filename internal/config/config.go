// Package config loads the YAML analysis options used by the CLI driver.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tf-demo-insights/internal/analyser"
)

// Analysis is the root options document.
type Analysis struct {
	// AirshotRule selects the airshot classification rule:
	// "condition" (status-bit at the moment of impact, default) or
	// "airtime" (measured continuous air time).
	AirshotRule string `yaml:"airshot_rule"`
	// AirshotAirtimeSeconds is the continuous-airtime threshold for the
	// airtime rule.
	AirshotAirtimeSeconds float64 `yaml:"airshot_airtime_seconds"`
	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// Default returns the options used when no config file is given.
func Default() Analysis {
	return Analysis{
		AirshotRule:           string(analyser.AirshotByCondition),
		AirshotAirtimeSeconds: analyser.DefaultAirtimeSeconds,
		LogLevel:              "info",
	}
}

// Load reads a YAML options file on top of the defaults.
func Load(path string) (Analysis, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (a Analysis) validate() error {
	switch analyser.AirshotRule(a.AirshotRule) {
	case analyser.AirshotByCondition, analyser.AirshotByAirtime:
	default:
		return fmt.Errorf("unknown airshot_rule %q", a.AirshotRule)
	}
	if a.AirshotAirtimeSeconds <= 0 {
		return fmt.Errorf("airshot_airtime_seconds must be positive, got %v", a.AirshotAirtimeSeconds)
	}
	return nil
}

// AnalyserOptions converts the document into analyser options.
func (a Analysis) AnalyserOptions() analyser.Options {
	return analyser.Options{
		AirshotRule:    analyser.AirshotRule(a.AirshotRule),
		AirtimeSeconds: a.AirshotAirtimeSeconds,
	}
}
