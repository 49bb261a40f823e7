package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/leefowlercu/agent-hook-memory-recall/internal/config"
	"github.com/leefowlercu/agent-hook-memory-recall/internal/processor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initErr holds a configuration failure for the hook path, which must still
// answer the host instead of failing
var initErr error

var rootCmd = &cobra.Command{
	Use:   "hook-memory-recall",
	Short: "Inject recalled memory into agent prompts",
	Long: "\nhook-memory-recall is a CLI tool that integrates with AI agent hook frameworks " +
		"to enrich submitted prompts with context recalled from a local memory store.\n\n" +
		"It reads hook data from stdin as JSON, runs the configured recall command with the prompt, " +
		"and outputs the recalled context to stdout as JSON. It always lets the prompt through " +
		"and exits 0, even when recall fails. Logging goes to a log file or stderr, never stdout.",
	PersistentPreRunE: runInit,
	RunE:              runHook,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to configuration file (default: ~/.agent-hooks/memory-recall/config.yaml)")
	rootCmd.Flags().String("framework", config.DefaultConfig.Framework, "Hook framework to use (e.g., 'claude')")
	rootCmd.Flags().String("log-level", config.DefaultConfig.Logging.Level, "Logging level (debug, info, warn, error)")
	rootCmd.Flags().String("log-format", config.DefaultConfig.Logging.Format, "Logging format (json, text)")
	rootCmd.Flags().String("log-file", config.DefaultConfig.Logging.LogFile, "Path to log file (default: logging disabled)")
	rootCmd.Flags().String("recall-command", config.DefaultConfig.Recall.Command, "Recall executable to run")
	rootCmd.Flags().String("db", config.DefaultConfig.Recall.DBPath, "Memory database path, relative paths resolve against the project directory")
	rootCmd.Flags().Int("token-budget", config.DefaultConfig.Recall.TokenBudget, "Token budget passed to the recall command")
	rootCmd.Flags().Int("timeout", config.DefaultConfig.Recall.TimeoutSeconds, "Recall timeout in seconds (0 waits indefinitely)")

	bindFlags()

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)

	// Enable --version flag on root command
	rootCmd.Version = version
	rootCmd.SetVersionTemplate("hook-memory-recall version {{.Version}}\n")
}

// bindFlags binds the root command's flags to their viper keys
func bindFlags() {
	viper.BindPFlag("framework", rootCmd.Flags().Lookup("framework"))
	viper.BindPFlag("logging.level", rootCmd.Flags().Lookup("log-level"))
	viper.BindPFlag("logging.format", rootCmd.Flags().Lookup("log-format"))
	viper.BindPFlag("logging.log_file", rootCmd.Flags().Lookup("log-file"))
	viper.BindPFlag("recall.command", rootCmd.Flags().Lookup("recall-command"))
	viper.BindPFlag("recall.db_path", rootCmd.Flags().Lookup("db"))
	viper.BindPFlag("recall.token_budget", rootCmd.Flags().Lookup("token-budget"))
	viper.BindPFlag("recall.timeout_seconds", rootCmd.Flags().Lookup("timeout"))
}

func runInit(cmd *cobra.Command, args []string) error {
	// Get custom config path if provided
	configPath, _ := cmd.Flags().GetString("config")

	err := config.InitConfig(configPath)
	if err != nil {
		err = fmt.Errorf("failed to initialize configuration; %w", err)

		// The hook itself never fails; let runHook answer with the fallback
		if !cmd.HasParent() {
			initErr = err
			return nil
		}
		return err
	}

	return nil
}

func runHook(cmd *cobra.Command, args []string) error {
	if initErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "hook-memory-recall: %v\n", initErr)
		if err := processor.WriteFallback(cmd.OutOrStdout()); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "hook-memory-recall: %v\n", err)
		}
		return nil
	}

	framework := viper.GetString("framework")

	err := processor.Process(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), framework)
	if err != nil {
		// Nobody is left to tell but stderr; the exit code stays 0
		fmt.Fprintf(cmd.ErrOrStderr(), "hook-memory-recall: %v\n", err)
	}

	return nil
}

func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	// Interrupting the hook kills a running recall command
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)

	if err != nil {
		cmd, _, _ := rootCmd.Find(os.Args[1:])
		if cmd == nil {
			cmd = rootCmd
		}

		// Stdout is reserved for hook responses
		errOut := rootCmd.ErrOrStderr()
		fmt.Fprintf(errOut, "Error: %v\n", err)
		if !cmd.SilenceUsage {
			fmt.Fprintf(errOut, "\n")
			cmd.SetOut(errOut)
			cmd.Usage()
		}

		return err
	}

	return nil
}
