package processor

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/leefowlercu/agent-hook-memory-recall/internal/config"
	"github.com/leefowlercu/agent-hook-memory-recall/internal/decision"
	"github.com/leefowlercu/agent-hook-memory-recall/internal/framework"
	"github.com/leefowlercu/agent-hook-memory-recall/internal/framework/claude"
	"github.com/leefowlercu/agent-hook-memory-recall/internal/logging"
	"github.com/leefowlercu/agent-hook-memory-recall/internal/recall"
)

// fallbackOutput is written when processing fails before a framework is known
const fallbackOutput = `{"continue":true}`

// Processor orchestrates the entire hook processing flow
type Processor struct {
	cfg            *config.Config
	logger         *slog.Logger
	recaller       recall.Recaller
	decisionEngine *decision.Engine
}

// NewProcessor creates a new processor instance
func NewProcessor(cfg *config.Config, logger *slog.Logger) *Processor {
	framework.RegisterFramework("claude", claude.NewFramework(cfg.Prompt.Keys))

	return &Processor{
		cfg:            cfg,
		logger:         logger,
		recaller:       recall.NewCommandRecaller(cfg, logger),
		decisionEngine: decision.NewEngine(),
	}
}

// Process is the main entry point that reads from stdin and writes to stdout.
// It only returns an error when the response itself could not be written.
func Process(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, frameworkName string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Fprintf(stderr, "hook-memory-recall: failed to load configuration; %v\n", err)
		return WriteFallback(stdout)
	}

	logger, closeLog := logging.New(cfg.Logging, stderr)
	defer closeLog()

	logger = logger.With("invocation_id", uuid.NewString())

	if frameworkName == "" {
		frameworkName = cfg.Framework
	}

	proc := NewProcessor(cfg, logger)

	return proc.ProcessHook(ctx, stdin, stdout, frameworkName)
}

// ProcessHook processes a single hook invocation. Whatever happens, exactly
// one response line is written to stdout.
func (p *Processor) ProcessHook(ctx context.Context, stdin io.Reader, stdout io.Writer, frameworkName string) error {
	p.logger.Info("processing hook request", "framework", frameworkName)

	output := p.respond(ctx, stdin, frameworkName)

	if _, err := stdout.Write(append(output, '\n')); err != nil {
		p.logger.Error("failed to write output", "error", err)
		return fmt.Errorf("failed to write output; %w", err)
	}

	p.logger.Info("hook processing completed")

	return nil
}

// respond runs the pipeline and returns the framework response, falling back
// to the framework's pass-through response on any failure
func (p *Processor) respond(ctx context.Context, stdin io.Reader, frameworkName string) (output []byte) {
	fw, err := framework.GetFramework(frameworkName)
	if err != nil {
		p.logger.Error("failed to get framework",
			"framework", frameworkName,
			"available", framework.ListFrameworks(),
			"error", err)
		return []byte(fallbackOutput)
	}

	// Recover from panics so the host still gets an answer
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("hook processing panicked", "panic", r)
			output = fw.Fallback()
		}
	}()

	hookInput, err := fw.ParseInput(stdin)
	if err != nil {
		p.logger.Warn("failed to parse input", "error", err)
		return fw.Fallback()
	}

	p.logger.Info("parsed hook input",
		"framework", hookInput.Framework,
		"hook_type", hookInput.HookType)

	handler, err := fw.GetHandler(hookInput)
	if err != nil {
		p.logger.Warn("failed to get handler", "error", err)
		return fw.Fallback()
	}

	p.logger.Debug("using handler", "type", handler.GetType())

	content, err := handler.ExtractPrompt(ctx, hookInput)
	if err != nil {
		p.logger.Warn("failed to extract prompt", "error", err)
		return fw.Fallback()
	}

	if content.Prompt == "" {
		p.logger.Info("no prompt in hook input, skipping recall")
		return fw.Fallback()
	}

	p.logger.Debug("extracted prompt",
		"source", content.Source,
		"length", len(content.Prompt),
		"session_id", content.Metadata["session_id"])

	// The decision engine handles recall errors, so keep going
	results, err := p.recaller.Recall(ctx, content)
	if err != nil {
		p.logger.Warn("recall failed", "recaller", p.recaller.GetName(), "error", err)
	}

	finalDecision, err := p.decisionEngine.Evaluate(ctx, results)
	if err != nil {
		p.logger.Error("failed to make decision", "error", err)
		return fw.Fallback()
	}

	p.logger.Info("decision made",
		"has_context", finalDecision.AdditionalContext != "",
		"metadata", finalDecision.Metadata)

	output, err = fw.FormatOutput(finalDecision, hookInput)
	if err != nil {
		p.logger.Error("failed to format output", "error", err)
		return fw.Fallback()
	}

	return output
}

// WriteFallback writes the pass-through response used when the hook cannot
// run at all
func WriteFallback(stdout io.Writer) error {
	if _, err := io.WriteString(stdout, fallbackOutput+"\n"); err != nil {
		return fmt.Errorf("failed to write output; %w", err)
	}
	return nil
}
