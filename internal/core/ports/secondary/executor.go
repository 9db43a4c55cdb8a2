package secondary

import (
	"context"

	"gitlab.com/codeclash-2026.net/internal/domain"
)

// ExecutionClient wraps the remote execution backend. A batch is dispatched
// in a single call and collected by token until every run is terminal.
type ExecutionClient interface {
	// DispatchBatch submits the requests as one batch and returns the
	// backend-assigned tokens in request order. Transport failures and
	// malformed responses are hard errors; the batch is never resubmitted.
	DispatchBatch(ctx context.Context, requests []domain.ExecutionRequest) ([]string, error)

	// CollectResults polls until every token has a terminal result or the
	// wait budget runs out, and returns results in dispatch order. Budget
	// exhaustion is a hard error, not a graded outcome.
	CollectResults(ctx context.Context, tokens []string) ([]domain.ExecutionResult, error)
}
