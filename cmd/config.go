package cmd

import (
	"fmt"

	"github.com/leefowlercu/agent-hook-memory-recall/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display the effective configuration",
	Long: "Display the configuration the hook would run with, after merging defaults, " +
		"the config file, .env files and HOOK_MEMORY_RECALL_* environment variables.",
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config; %w", err)
	}

	out := cmd.OutOrStdout()
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "# config file: %s\n", used)
	} else {
		fmt.Fprintf(out, "# config file: none (searched %s)\n", config.GetDefaultConfigPath())
	}

	_, err = out.Write(data)
	return err
}
