package recall

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/leefowlercu/agent-hook-memory-recall/internal/config"
	"github.com/leefowlercu/agent-hook-memory-recall/pkg/types"
)

const (
	recallerName = "command"

	// How long to wait for output pipes after the recall command is killed
	waitDelay = 2 * time.Second
)

// CommandRecaller implements the Recaller interface by running an external
// recall CLI such as agent-memory-kit's "mem"
type CommandRecaller struct {
	cfg    *config.Config
	logger *slog.Logger
}

// Force compile-time check for interface implementation
var _ Recaller = (*CommandRecaller)(nil)

// NewCommandRecaller creates a new command recaller instance
func NewCommandRecaller(cfg *config.Config, logger *slog.Logger) *CommandRecaller {
	return &CommandRecaller{
		cfg:    cfg,
		logger: logger,
	}
}

// Recall runs the recall command once and waits for it to exit. With no
// timeout configured it waits for as long as the command runs.
func (r *CommandRecaller) Recall(ctx context.Context, content types.PromptContent) (types.RecallResults, error) {
	startTime := time.Now()

	results := types.RecallResults{
		ExitCode: -1,
	}

	dbPath, err := r.resolveDBPath(content.Metadata["cwd"])
	if err != nil {
		results.Error = fmt.Errorf("failed to resolve database path; %w", err)
		return results, results.Error
	}

	cmdArgs := r.buildCommandArgs(content.Prompt, dbPath)

	r.logger.Info("executing recall command",
		"command", r.cfg.Recall.Command,
		"db", dbPath,
		"token_budget", r.cfg.Recall.TokenBudget,
		"prompt_length", len(content.Prompt))

	runCtx := ctx
	if r.cfg.Recall.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, time.Duration(r.cfg.Recall.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, r.cfg.Recall.Command, cmdArgs...)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()

	results.RecallDuration = time.Since(startTime)
	results.Stderr = stderr.String()
	if cmd.ProcessState != nil {
		results.ExitCode = cmd.ProcessState.ExitCode()
	}

	r.logger.Debug("recall command completed",
		"duration", results.RecallDuration,
		"exit_code", results.ExitCode)

	if err != nil {
		results.Error = r.classifyError(runCtx, err)

		r.logger.Warn("recall command failed",
			"error", results.Error,
			"exit_code", results.ExitCode,
			"stderr", results.Stderr)

		return results, results.Error
	}

	results.Context = strings.TrimSpace(stdout.String())

	r.logger.Info("recall completed",
		"context_length", len(results.Context),
		"duration", results.RecallDuration)

	return results, nil
}

// classifyError turns an exec error into one that says what went wrong
func (r *CommandRecaller) classifyError(runCtx context.Context, err error) error {
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("recall command timed out after %d seconds", r.cfg.Recall.TimeoutSeconds)
	}

	if errors.Is(runCtx.Err(), context.Canceled) {
		return fmt.Errorf("recall command cancelled; %w", runCtx.Err())
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("recall command exited with status %d; %w", exitErr.ExitCode(), err)
	}

	return fmt.Errorf("failed to run recall command; %w", err)
}

// buildCommandArgs constructs the arguments for the recall command:
// <subcommand> <prompt> [--db <path>] --token-budget <n> [extra args]
func (r *CommandRecaller) buildCommandArgs(prompt, dbPath string) []string {
	// The subcommand may be several words (e.g., "memory recall")
	args := strings.Fields(r.cfg.Recall.Subcommand)

	args = append(args, prompt)

	if dbPath != "" {
		args = append(args, "--db", dbPath)
	}

	args = append(args, "--token-budget", strconv.Itoa(r.cfg.Recall.TokenBudget))

	args = append(args, r.cfg.Recall.ExtraArgs...)

	return args
}

// resolveDBPath expands ~ and anchors a relative database path at the
// project directory reported by the host. An empty path leaves the choice to
// the recall tool.
func (r *CommandRecaller) resolveDBPath(cwd string) (string, error) {
	dbPath := r.cfg.Recall.DBPath
	if dbPath == "" {
		return "", nil
	}

	dbPath, err := config.ExpandPath(dbPath)
	if err != nil {
		return "", err
	}

	if !filepath.IsAbs(dbPath) && filepath.IsAbs(cwd) {
		dbPath = filepath.Join(cwd, dbPath)
	}

	return dbPath, nil
}

// GetName returns the recaller name
func (r *CommandRecaller) GetName() string {
	return recallerName
}
