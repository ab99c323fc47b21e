// ABOUTME: Configuration loading and parsing for terraledger
// ABOUTME: Supports YAML files with environment variable expansion

package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config represents the complete terraledger configuration
type Config struct {
	Hedera   HederaConfig   `yaml:"hedera"`
	Registry RegistryConfig `yaml:"registry"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// HederaConfig holds ledger network and operator credentials
type HederaConfig struct {
	Network    string `yaml:"network"`
	OperatorID string `yaml:"operator_id"`
	// OperatorKey is the operator's private key string. Missing
	// credentials leave the ledger client unconfigured; HCS operations
	// then fail fast without network I/O.
	OperatorKey string `yaml:"operator_key"`
	TopicTTL    int    `yaml:"topic_ttl_seconds"`
}

// RegistryConfig holds the shared agent registry topic
type RegistryConfig struct {
	// TopicID of the well-known registry topic. Empty means agent
	// registration is skipped.
	TopicID string `yaml:"topic_id"`
}

// ServerConfig holds server address configuration
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	// JWTSecret enables bearer-token auth on the API when set.
	JWTSecret string `yaml:"jwt_secret"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Environment variables in the format ${VAR_NAME} are expanded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw YAML content
	expandedData := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills in the fields the file may omit
func (c *Config) applyDefaults() {
	if c.Hedera.Network == "" {
		c.Hedera.Network = "testnet"
	}
	if c.Hedera.TopicTTL == 0 {
		c.Hedera.TopicTTL = 60
	}
	if c.Server.HTTPAddr == "" {
		c.Server.HTTPAddr = ":8000"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Hedera.Network != "testnet" && c.Hedera.Network != "mainnet" {
		return fmt.Errorf("hedera.network must be testnet or mainnet, got %q", c.Hedera.Network)
	}

	if c.Hedera.TopicTTL < 0 {
		return fmt.Errorf("hedera.topic_ttl_seconds must not be negative")
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	return nil
}
