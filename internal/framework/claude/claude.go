package claude

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/leefowlercu/agent-hook-memory-recall/internal/framework"
	"github.com/leefowlercu/agent-hook-memory-recall/pkg/types"
)

const frameworkName = "claude"

const fallbackOutput = `{"continue":true}`

// Framework implements the HookFramework interface for Claude Code
type Framework struct {
	handlers []framework.HookHandler
}

// Force compile-time check for interface implementation
var _ framework.HookFramework = (*Framework)(nil)

// NewFramework creates a new Claude framework instance. promptKeys lists the
// payload keys checked for the prompt, in priority order.
func NewFramework(promptKeys []string) *Framework {
	f := &Framework{
		handlers: []framework.HookHandler{},
	}

	// Register default handlers
	f.RegisterHandler(NewUserPromptSubmitHandler(promptKeys))

	return f
}

// RegisterHandler registers a hook handler with the framework
func (f *Framework) RegisterHandler(handler framework.HookHandler) {
	f.handlers = append(f.handlers, handler)
}

// GetHandler returns the appropriate handler for the given input
func (f *Framework) GetHandler(input types.HookInput) (framework.HookHandler, error) {
	for _, handler := range f.handlers {
		if handler.CanHandle(input) {
			return handler, nil
		}
	}
	return nil, fmt.Errorf("no handler found for hook type %q", input.HookType)
}

// ParseInput reads and parses Claude hook data from stdin. The whole reader
// must hold exactly one JSON object.
func (f *Framework) ParseInput(reader io.Reader) (types.HookInput, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return types.HookInput{}, fmt.Errorf("failed to read input; %w", err)
	}

	if !utf8.Valid(data) {
		return types.HookInput{}, errors.New("failed to decode JSON input; invalid UTF-8")
	}

	// Numbers stay json.Number so a prompt keeps its literal spelling
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var rawData map[string]any
	if err := dec.Decode(&rawData); err != nil {
		return types.HookInput{}, fmt.Errorf("failed to decode JSON input; %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return types.HookInput{}, errors.New("failed to decode JSON input; unexpected data after top-level value")
	}

	// Hosts that only send the prompt omit the event name
	hookEventName, ok := rawData["hook_event_name"].(string)
	if !ok || hookEventName == "" {
		hookEventName = userPromptSubmitType
	}

	return types.HookInput{
		Framework: frameworkName,
		HookType:  hookEventName,
		RawData:   rawData,
	}, nil
}

// FormatOutput formats a decision as JSON for Claude Code
func (f *Framework) FormatOutput(decision types.Decision, input types.HookInput) ([]byte, error) {
	output := HookOutput{
		Continue: decision.Continue,
	}

	if decision.AdditionalContext != "" {
		output.HookSpecificOutput = &HookSpecificOutput{
			HookEventName:     userPromptSubmitType,
			AdditionalContext: decision.AdditionalContext,
		}
	}

	data, err := json.Marshal(output)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output; %w", err)
	}

	return data, nil
}

// Fallback returns the response that lets the prompt through untouched
func (f *Framework) Fallback() []byte {
	return []byte(fallbackOutput)
}

// GetName returns the framework name
func (f *Framework) GetName() string {
	return frameworkName
}
