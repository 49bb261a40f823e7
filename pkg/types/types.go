package types

import "time"

// HookInput represents parsed input from a hook framework
type HookInput struct {
	Framework string         // Framework name (e.g., "claude")
	HookType  string         // Hook type (e.g., "UserPromptSubmit")
	RawData   map[string]any // Raw JSON data from stdin
}

// PromptContent represents the prompt to recall memory for
type PromptContent struct {
	Prompt   string            // Trimmed prompt text, may be empty
	Source   string            // Payload key the prompt was taken from
	Metadata map[string]string // Additional context (session_id, cwd, ...)
}

// RecallResults contains the outcome of a single recall invocation
type RecallResults struct {
	Context        string        // Trimmed stdout of the recall command
	ExitCode       int           // Exit code of the recall command, -1 if it never ran
	Stderr         string        // Captured stderr, kept for diagnostics only
	RecallDuration time.Duration // How long the recall command took
	Error          error         // Error if the recall failed
}

// Decision represents the hook's response to the host
type Decision struct {
	Continue          bool           // Always true for this hook
	AdditionalContext string         // Context to inject, empty for none
	Metadata          map[string]any // Diagnostic metadata, never sent to the host
}
