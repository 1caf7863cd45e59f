package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FetchConfig holds the HTTP fetch settings from the config file.
type FetchConfig struct {
	RateLimit string `yaml:"rate_limit"` // e.g. "5s"
	Retries   int    `yaml:"retries"`
	UserAgent string `yaml:"user_agent"`
}

// FileConfig represents the structure of ~/.gdeltpull/config.yaml.
type FileConfig struct {
	Output struct {
		Dir string `yaml:"dir"`
	} `yaml:"output"`
	Fetch FetchConfig `yaml:"fetch"`
}

// LoadConfigFile loads configuration from ~/.gdeltpull/config.yaml. Returns
// nil if the file doesn't exist (not an error). Returns error if the file
// exists but cannot be parsed.
func LoadConfigFile() (*FileConfig, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}

	configPath := filepath.Join(homeDir, ".gdeltpull", "config.yaml")

	// Check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, nil // File doesn't exist -- not an error
	}

	// Read file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}
