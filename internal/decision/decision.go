package decision

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/leefowlercu/agent-hook-memory-recall/pkg/types"
)

// Engine turns recall results into the hook's decision
type Engine struct{}

// NewEngine creates a new decision engine
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate evaluates recall results and produces a decision. The prompt is
// always allowed through; context is attached only for a successful,
// non-empty recall.
func (e *Engine) Evaluate(ctx context.Context, results types.RecallResults) (types.Decision, error) {
	decision := Allow()

	// Fail open: a broken recall must never block the prompt
	if results.Error != nil {
		decision.Metadata["recall_error"] = results.Error.Error()
		decision.Metadata["exit_code"] = results.ExitCode
		return decision, nil
	}

	recalled := strings.TrimSpace(results.Context)
	if recalled == "" {
		decision.Metadata["empty_recall"] = true
		return decision, nil
	}

	decision.AdditionalContext = recalled
	decision.Metadata["context_length"] = len(recalled)
	decision.Metadata["recall_duration"] = FormatDuration(results.RecallDuration)

	return decision, nil
}

// Allow returns a decision that continues without additional context
func Allow() types.Decision {
	return types.Decision{
		Continue: true,
		Metadata: make(map[string]any),
	}
}

// FormatDuration formats a duration in a human-readable way
func FormatDuration(d time.Duration) string {
	ms := d.Milliseconds()

	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}

	seconds := float64(ms) / 1000.0
	return fmt.Sprintf("%.1fs", seconds)
}
