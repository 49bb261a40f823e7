package config

// Config represents the application configuration
type Config struct {
	Framework string        `mapstructure:"framework" yaml:"framework"`
	Recall    RecallConfig  `mapstructure:"recall" yaml:"recall"`
	Prompt    PromptConfig  `mapstructure:"prompt" yaml:"prompt"`
	Logging   LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// RecallConfig contains configuration for the external recall command
type RecallConfig struct {
	Command        string   `mapstructure:"command" yaml:"command"`
	Subcommand     string   `mapstructure:"subcommand" yaml:"subcommand"`
	DBPath         string   `mapstructure:"db_path" yaml:"db_path"`
	TokenBudget    int      `mapstructure:"token_budget" yaml:"token_budget"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds" yaml:"timeout_seconds"` // 0 = wait indefinitely
	ExtraArgs      []string `mapstructure:"extra_args" yaml:"extra_args"`
}

// PromptConfig controls how the prompt is located in the hook payload
type PromptConfig struct {
	Keys []string `mapstructure:"keys" yaml:"keys"` // Checked in order, first non-empty wins
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level   string `mapstructure:"level" yaml:"level"`
	Format  string `mapstructure:"format" yaml:"format"`
	LogFile string `mapstructure:"log_file" yaml:"log_file"`
	Stderr  bool   `mapstructure:"stderr" yaml:"stderr"`
}
