// Package config loads the tunable heuristics of the outline engine. The
// overlap thresholds and balance ratios are unexplained constants in the
// source heuristics, so they are configuration here rather than hardcoded
// invariants.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/planlint/planlint/internal/coverage"
	"github.com/planlint/planlint/internal/structural"
)

// Configuration holds every tunable threshold of the engine.
type Configuration struct {
	ImplicitCoverageThreshold float64 `koanf:"implicit_coverage_threshold" validate:"gt=0,lte=1"`
	EpicOverlapThreshold      float64 `koanf:"epic_overlap_threshold" validate:"gt=0,lte=1"`
	TitleOverlapThreshold     float64 `koanf:"title_overlap_threshold" validate:"gt=0,lte=1"`
	LowCoveragePercent        float64 `koanf:"low_coverage_percent" validate:"gte=0,lte=100"`
	BalanceLowRatio           float64 `koanf:"balance_low_ratio" validate:"gt=0,lt=1"`
	BalanceHighRatio          float64 `koanf:"balance_high_ratio" validate:"gt=1"`
	BalanceLowFloor           int     `koanf:"balance_low_floor" validate:"min=0"`
	BalanceHighFloor          int     `koanf:"balance_high_floor" validate:"min=0"`
	Archetype                 string  `koanf:"archetype" validate:"omitempty,oneof=web_app mobile_app api saas cli_tool"`
}

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"implicit_coverage_threshold": 0.40,
		"epic_overlap_threshold":      0.30,
		"title_overlap_threshold":     0.20,
		"low_coverage_percent":        50.0,
		"balance_low_ratio":           0.3,
		"balance_high_ratio":          2.0,
		"balance_low_floor":           3,
		"balance_high_floor":          10,
		"archetype":                   "",
	}
}

// Load loads configuration from global, local, and environment sources.
// Priority: environment variables > local config > global config > defaults.
func Load(localConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		globalPath := filepath.Join(homeDir, ".planlint", "config.json")
		if _, err := os.Stat(globalPath); err == nil {
			if err := k.Load(file.Provider(globalPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load global config: %w", err)
			}
		}
	}

	if localConfigPath != "" {
		if _, err := os.Stat(localConfigPath); err == nil {
			if err := k.Load(file.Provider(localConfigPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load local config: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider("PLANLINT_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "PLANLINT_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration struct against its validation rules.
func (c *Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			first := errs[0]
			return fmt.Errorf("invalid config: field %s failed rule %q", first.Field(), first.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Structural converts the flat configuration into the structural
// validator's thresholds.
func (c *Configuration) Structural() structural.Config {
	return structural.Config{
		BalanceLowRatio:  c.BalanceLowRatio,
		BalanceHighRatio: c.BalanceHighRatio,
		BalanceLowFloor:  c.BalanceLowFloor,
		BalanceHighFloor: c.BalanceHighFloor,
	}
}

// Coverage converts the flat configuration into the coverage checker's
// thresholds. The coverage checker has no CLI entry point of its own:
// acceptance criteria and generated tasks arrive from the downstream
// generation caller, which passes this conversion into
// coverage.CheckStory, CheckEpic and CheckTaskScope.
func (c *Configuration) Coverage() coverage.Config {
	return coverage.Config{
		ImplicitThreshold:     c.ImplicitCoverageThreshold,
		EpicOverlapThreshold:  c.EpicOverlapThreshold,
		TitleOverlapThreshold: c.TitleOverlapThreshold,
		LowCoveragePercent:    c.LowCoveragePercent,
	}
}
