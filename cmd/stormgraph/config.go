package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the server configuration, loaded from YAML with environment
// overrides.
type Config struct {
	Port          int           `yaml:"port"`
	BridgeListen  string        `yaml:"bridgeListen"`
	BridgeTimeout time.Duration `yaml:"bridgeTimeout"`
	LogLevel      string        `yaml:"logLevel"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Port:          8080,
		BridgeListen:  "",
		BridgeTimeout: 5 * time.Second,
		LogLevel:      "info",
	}
}

// LoadConfig reads the YAML file if present, then applies env overrides.
// A missing file is fine; defaults apply.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("failed to read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if port := os.Getenv("STORMGRAPH_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return cfg, fmt.Errorf("invalid STORMGRAPH_PORT: %w", err)
		}
		cfg.Port = p
	}
	if addr := os.Getenv("STORMGRAPH_BRIDGE_LISTEN"); addr != "" {
		cfg.BridgeListen = addr
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	return cfg, nil
}
