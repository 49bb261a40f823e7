package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvPrefix is the prefix for environment variable overrides
const EnvPrefix = "HOOK_MEMORY_RECALL"

// DefaultConfig provides default configuration values
var DefaultConfig = Config{
	Framework: "claude",
	Recall: RecallConfig{
		Command:        "mem",
		Subcommand:     "recall",
		DBPath:         ".memory-kit/memory.db",
		TokenBudget:    900,
		TimeoutSeconds: 0,
		ExtraArgs:      []string{},
	},
	Prompt: PromptConfig{
		Keys: []string{"prompt", "userPrompt", "input"},
	},
	Logging: LoggingConfig{
		Level:   "info",
		Format:  "json",
		LogFile: "", // Empty = logging disabled unless stderr is set
		Stderr:  false,
	},
}

// GetDefaultConfigDir returns the default configuration directory
func GetDefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".agent-hooks/memory-recall"
	}
	return filepath.Join(home, ".agent-hooks/memory-recall")
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() string {
	return filepath.Join(GetDefaultConfigDir(), "config.yaml")
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory; %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}
