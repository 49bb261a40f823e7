package recall

import (
	"context"

	"github.com/leefowlercu/agent-hook-memory-recall/pkg/types"
)

// Recaller defines the interface for memory recall backends
type Recaller interface {
	// Recall fetches stored context relevant to the prompt
	Recall(ctx context.Context, content types.PromptContent) (types.RecallResults, error)

	// GetName returns the recaller name
	GetName() string
}
