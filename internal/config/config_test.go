package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leefowlercu/agent-hook-memory-recall/internal/testutil"
)

// isolate points HOME and the working directory at empty temp dirs so no
// real config or .env file leaks into the test
func isolate(t *testing.T) string {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	testutil.Chdir(t, dir)

	return dir
}

func TestInitConfig_Defaults(t *testing.T) {
	isolate(t)

	require.NoError(t, InitConfig(""))

	cfg, err := GetConfig()
	require.NoError(t, err)

	assert.Equal(t, "claude", cfg.Framework)
	assert.Equal(t, "mem", cfg.Recall.Command)
	assert.Equal(t, "recall", cfg.Recall.Subcommand)
	assert.Equal(t, ".memory-kit/memory.db", cfg.Recall.DBPath)
	assert.Equal(t, 900, cfg.Recall.TokenBudget)
	assert.Equal(t, 0, cfg.Recall.TimeoutSeconds)
	assert.Equal(t, []string{"prompt", "userPrompt", "input"}, cfg.Prompt.Keys)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Logging.LogFile)
	assert.False(t, cfg.Logging.Stderr)
}

func TestInitConfig_ExplicitFile(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "custom.yaml")
	content := strings.Join([]string{
		"recall:",
		"  command: /opt/memory-kit/bin/mem",
		"  db_path: /srv/memory.db",
		"  token_budget: 400",
		"  timeout_seconds: 5",
		"  extra_args: [\"--quiet\"]",
		"logging:",
		"  level: debug",
		"  log_file: /tmp/recall.log",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	require.NoError(t, InitConfig(path))

	cfg, err := GetConfig()
	require.NoError(t, err)

	assert.Equal(t, "/opt/memory-kit/bin/mem", cfg.Recall.Command)
	assert.Equal(t, "recall", cfg.Recall.Subcommand, "unset keys keep their defaults")
	assert.Equal(t, "/srv/memory.db", cfg.Recall.DBPath)
	assert.Equal(t, 400, cfg.Recall.TokenBudget)
	assert.Equal(t, 5, cfg.Recall.TimeoutSeconds)
	assert.Equal(t, []string{"--quiet"}, cfg.Recall.ExtraArgs)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/tmp/recall.log", cfg.Logging.LogFile)
}

func TestInitConfig_DefaultSearchPath(t *testing.T) {
	dir := isolate(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("recall:\n  token_budget: 1200\n"), 0600))

	require.NoError(t, InitConfig(""))

	cfg, err := GetConfig()
	require.NoError(t, err)
	assert.Equal(t, 1200, cfg.Recall.TokenBudget)
}

func TestInitConfig_MalformedFile(t *testing.T) {
	dir := isolate(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("recall: [unclosed\n"), 0600))

	err := InitConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestInitConfig_EnvOverrides(t *testing.T) {
	isolate(t)

	t.Setenv("HOOK_MEMORY_RECALL_RECALL_TOKEN_BUDGET", "250")
	t.Setenv("HOOK_MEMORY_RECALL_RECALL_DB_PATH", "/data/memory.db")

	require.NoError(t, InitConfig(""))

	cfg, err := GetConfig()
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.Recall.TokenBudget)
	assert.Equal(t, "/data/memory.db", cfg.Recall.DBPath)
}

func TestInitConfig_DotEnvFiles(t *testing.T) {
	dir := isolate(t)

	// Registered with t.Setenv first so the values loaded from .env are cleaned up
	t.Setenv("HOOK_MEMORY_RECALL_RECALL_COMMAND", "")
	t.Setenv("HOOK_MEMORY_RECALL_RECALL_SUBCOMMAND", "")
	os.Unsetenv("HOOK_MEMORY_RECALL_RECALL_COMMAND")
	os.Unsetenv("HOOK_MEMORY_RECALL_RECALL_SUBCOMMAND")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("HOOK_MEMORY_RECALL_RECALL_COMMAND=/from/dotenv/mem\nHOOK_MEMORY_RECALL_RECALL_SUBCOMMAND=search\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"),
		[]byte("HOOK_MEMORY_RECALL_RECALL_COMMAND=/from/local/mem\n"), 0600))

	require.NoError(t, InitConfig(""))

	cfg, err := GetConfig()
	require.NoError(t, err)
	assert.Equal(t, "/from/local/mem", cfg.Recall.Command, ".env.local overrides .env")
	assert.Equal(t, "search", cfg.Recall.Subcommand)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:   "empty command",
			mutate: func(c *Config) { c.Recall.Command = "  " },
			errMsg: "recall.command cannot be empty",
		},
		{
			name:   "zero token budget",
			mutate: func(c *Config) { c.Recall.TokenBudget = 0 },
			errMsg: "recall.token_budget must be positive",
		},
		{
			name:   "negative timeout",
			mutate: func(c *Config) { c.Recall.TimeoutSeconds = -1 },
			errMsg: "recall.timeout_seconds cannot be negative",
		},
		{
			name:   "no prompt keys",
			mutate: func(c *Config) { c.Prompt.Keys = nil },
			errMsg: "prompt.keys must list at least one key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig
			cfg.Prompt.Keys = append([]string(nil), DefaultConfig.Prompt.Keys...)
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"tilde prefix", "~/logs/hook.log", filepath.Join(home, "logs/hook.log")},
		{"bare tilde", "~", home},
		{"absolute", "/var/log/hook.log", "/var/log/hook.log"},
		{"relative", "hook.log", "hook.log"},
		{"tilde user form untouched", "~other/hook.log", "~other/hook.log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
