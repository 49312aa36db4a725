// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"carbontrace/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Model contains model artifact settings
	Model ModelConfig `json:"model"`

	// Training contains training batch settings
	Training TrainingConfig `json:"training"`

	// Factors contains emission factor table settings
	Factors FactorsConfig `json:"factors"`

	// Server contains HTTP server settings
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// ModelConfig contains model artifact settings
type ModelConfig struct {
	// ArtifactPath is where the trained artifact is stored
	ArtifactPath string `json:"artifact_path"`

	// DatasetPath is where the generated training dataset is dumped
	DatasetPath string `json:"dataset_path"`
}

// TrainingConfig contains training batch settings
type TrainingConfig struct {
	// Samples is the number of synthetic records to generate
	Samples int `json:"samples"`

	// Seed drives all randomness in generation and training
	Seed uint64 `json:"seed"`
}

// FactorsConfig contains emission factor table settings
type FactorsConfig struct {
	// TablePath is an optional HCL file overriding the built-in tables
	TablePath string `json:"table_path,omitempty"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`

	// HistoryPath is the sqlite file for the prediction log
	// (empty disables history)
	HistoryPath string `json:"history_path,omitempty"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".carbontrace")

	return &Config{
		Version: "1.0",
		Model: ModelConfig{
			ArtifactPath: filepath.Join(dataDir, "carbon_model.gob"),
			DatasetPath:  filepath.Join(dataDir, "training_data.csv"),
		},
		Training: TrainingConfig{
			Samples: 8000,
			Seed:    42,
		},
		Server: ServerConfig{
			Addr:        ":8080",
			HistoryPath: filepath.Join(dataDir, "history.db"),
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
