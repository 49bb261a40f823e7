package claude

import (
	"context"
	"slices"

	"github.com/leefowlercu/agent-hook-memory-recall/internal/framework"
	"github.com/leefowlercu/agent-hook-memory-recall/pkg/types"
)

const userPromptSubmitType = "UserPromptSubmit"

// UserPromptSubmitHandler handles the UserPromptSubmit hook
type UserPromptSubmitHandler struct {
	promptKeys []string
}

// Force compile-time check for interface implementation
var _ framework.HookHandler = (*UserPromptSubmitHandler)(nil)

// NewUserPromptSubmitHandler creates a new UserPromptSubmit handler
func NewUserPromptSubmitHandler(promptKeys []string) *UserPromptSubmitHandler {
	return &UserPromptSubmitHandler{
		promptKeys: slices.Clone(promptKeys),
	}
}

// ExtractPrompt extracts the prompt text to recall memory for
func (h *UserPromptSubmitHandler) ExtractPrompt(ctx context.Context, input types.HookInput) (types.PromptContent, error) {
	prompt, source := PickPrompt(input.RawData, h.promptKeys)

	return types.PromptContent{
		Prompt: prompt,
		Source: source,
		Metadata: map[string]string{
			"session_id":      stringField(input.RawData, "session_id"),
			"transcript_path": stringField(input.RawData, "transcript_path"),
			"cwd":             stringField(input.RawData, "cwd"),
		},
	}, nil
}

// GetType returns the hook type name
func (h *UserPromptSubmitHandler) GetType() string {
	return userPromptSubmitType
}

// CanHandle returns true if this handler can process the given hook input.
// The event name is informational only, so any Claude payload is accepted.
func (h *UserPromptSubmitHandler) CanHandle(input types.HookInput) bool {
	return input.Framework == frameworkName
}

// stringField returns a string payload field, or "" when it is absent or not a string
func stringField(rawData map[string]any, key string) string {
	value, _ := rawData[key].(string)
	return value
}
