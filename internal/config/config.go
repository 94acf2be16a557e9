package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config is the application configuration loaded from a YAML file
type Config struct {
	App        AppConfig        `yaml:"app"`
	Model      ModelConfig      `yaml:"model"`
	GridSearch GridSearchConfig `yaml:"grid_search"`
}

// AppConfig configures the server and storage locations
type AppConfig struct {
	Port     int    `yaml:"port"`
	McpPort  int    `yaml:"mcp_port"`
	ModelDir string `yaml:"model_dir"`
	// ModelName is the snapshot loaded on startup when present.
	ModelName string `yaml:"model_name"`
}

// ModelConfig holds training and restoration defaults
type ModelConfig struct {
	MaxOrder        int     `yaml:"max_order"`
	CaseFold        bool    `yaml:"case_fold"`
	UnknownFunction string  `yaml:"unknown_function"`
	L               int     `yaml:"l"`
	Lambda          float64 `yaml:"lambda"`
}

// GridSearchConfig holds grid search defaults
type GridSearchConfig struct {
	Beta         float64   `yaml:"beta"`
	LValues      []int     `yaml:"l_values"`
	LambdaValues []float64 `yaml:"lambda_values"`
}

// LoadConfig reads and parses the YAML configuration at path, filling in
// defaults for anything left unset
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.App.Port == 0 {
		c.App.Port = 8080
	}
	if c.App.McpPort == 0 {
		c.App.McpPort = 8081
	}
	if c.App.ModelDir == "" {
		c.App.ModelDir = "./restorer_models"
	}
	if c.Model.MaxOrder == 0 {
		c.Model.MaxOrder = 2
	}
	if c.Model.UnknownFunction == "" {
		c.Model.UnknownFunction = "exponential"
	}
	if c.Model.L == 0 {
		c.Model.L = 20
	}
	if c.Model.Lambda == 0 {
		c.Model.Lambda = 10.0
	}
	if c.GridSearch.Beta == 0 {
		c.GridSearch.Beta = 1.0
	}
}

// GetMcpAddress returns the listen address of the MCP transport
func (c *Config) GetMcpAddress() string {
	return fmt.Sprintf(":%d", c.App.McpPort)
}
