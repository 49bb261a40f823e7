package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// InitConfig initializes the configuration using Viper.
// An empty configPath searches the default config directory and the working directory.
func InitConfig(configPath string) error {
	// Load .env file if it exists (fail silently if not found)
	loadEnvFiles()

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(GetDefaultConfigDir())
		viper.AddConfigPath(".")
	}

	setDefaults()

	// Enable environment variable overrides
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file (it's okay if the default one doesn't exist)
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config; %w", err)
		}
	}

	return nil
}

// GetConfig returns the current configuration
func GetConfig() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config; %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config; %w", err)
	}

	return &cfg, nil
}

// Validate checks the values that would otherwise produce a malformed recall invocation
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Recall.Command) == "" {
		return fmt.Errorf("recall.command cannot be empty")
	}

	if c.Recall.TokenBudget <= 0 {
		return fmt.Errorf("recall.token_budget must be positive, got: %d", c.Recall.TokenBudget)
	}

	if c.Recall.TimeoutSeconds < 0 {
		return fmt.Errorf("recall.timeout_seconds cannot be negative, got: %d", c.Recall.TimeoutSeconds)
	}

	if len(c.Prompt.Keys) == 0 {
		return fmt.Errorf("prompt.keys must list at least one key")
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("framework", DefaultConfig.Framework)
	viper.SetDefault("recall.command", DefaultConfig.Recall.Command)
	viper.SetDefault("recall.subcommand", DefaultConfig.Recall.Subcommand)
	viper.SetDefault("recall.db_path", DefaultConfig.Recall.DBPath)
	viper.SetDefault("recall.token_budget", DefaultConfig.Recall.TokenBudget)
	viper.SetDefault("recall.timeout_seconds", DefaultConfig.Recall.TimeoutSeconds)
	viper.SetDefault("recall.extra_args", DefaultConfig.Recall.ExtraArgs)
	viper.SetDefault("prompt.keys", DefaultConfig.Prompt.Keys)
	viper.SetDefault("logging.level", DefaultConfig.Logging.Level)
	viper.SetDefault("logging.format", DefaultConfig.Logging.Format)
	viper.SetDefault("logging.log_file", DefaultConfig.Logging.LogFile)
	viper.SetDefault("logging.stderr", DefaultConfig.Logging.Stderr)
}

// loadEnvFiles loads environment variables from .env files
// It tries multiple locations and fails silently if files don't exist
func loadEnvFiles() {
	locations := []string{
		".env", // Current directory
		filepath.Join(GetDefaultConfigDir(), ".env"), // Config directory (~/.agent-hooks/memory-recall/.env)
	}

	// .env.local for local overrides
	localLocations := []string{
		".env.local",
		filepath.Join(GetDefaultConfigDir(), ".env.local"),
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			_ = godotenv.Load(location) // Fail silently
		}
	}

	// godotenv.Load never overrides, so .env.local must use Overload
	for _, location := range localLocations {
		if _, err := os.Stat(location); err == nil {
			_ = godotenv.Overload(location)
		}
	}
}
