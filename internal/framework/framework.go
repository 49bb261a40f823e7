package framework

import (
	"context"
	"io"

	"github.com/leefowlercu/agent-hook-memory-recall/pkg/types"
)

// HookFramework defines the interface for hook framework implementations
type HookFramework interface {
	// ParseInput reads and parses hook data from stdin
	ParseInput(reader io.Reader) (types.HookInput, error)

	// GetHandler returns the handler for the parsed hook input
	GetHandler(input types.HookInput) (HookHandler, error)

	// FormatOutput formats a decision as JSON for the framework
	FormatOutput(decision types.Decision, input types.HookInput) ([]byte, error)

	// Fallback returns the response used whenever processing fails.
	// It must never block the host.
	Fallback() []byte

	// GetName returns the framework name
	GetName() string
}

// HookHandler defines the interface for specific hook type handlers
type HookHandler interface {
	// ExtractPrompt extracts the prompt to recall memory for
	ExtractPrompt(ctx context.Context, input types.HookInput) (types.PromptContent, error)

	// GetType returns the hook type name
	GetType() string

	// CanHandle returns true if this handler can process the given hook input
	CanHandle(input types.HookInput) bool
}
