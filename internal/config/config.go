package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name inside the data directory.
const FileName = "farthing.yaml"

// Config represents the top-level farthing.yaml configuration.
type Config struct {
	Currency   string          `yaml:"currency"`
	LogLevel   string          `yaml:"log_level"`
	Duplicates ToleranceConfig `yaml:"duplicates"`
	Transfers  ToleranceConfig `yaml:"transfers"`
	AI         AIConfig        `yaml:"ai"`
}

// ToleranceConfig bounds fuzzy matching between two transactions.
type ToleranceConfig struct {
	Amount float64 `yaml:"amount"`
	Days   int     `yaml:"days"`
}

// AIConfig controls the optional AI categorization reviewer. The API key is
// taken from the ANTHROPIC_API_KEY environment variable, never stored here.
type AIConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

// Load reads a farthing.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger.
func Default(currency string) *Config {
	return &Config{
		Currency: currency,
		LogLevel: "info",
		Duplicates: ToleranceConfig{
			Amount: 0.01,
			Days:   1,
		},
		Transfers: ToleranceConfig{
			Amount: 0.01,
			Days:   7,
		},
		AI: AIConfig{
			Enabled:   false,
			Model:     "claude-sonnet-4-5",
			MaxTokens: 8192,
		},
	}
}
