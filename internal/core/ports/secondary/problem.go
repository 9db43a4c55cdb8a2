package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codeclash-2026.net/internal/domain"
)

// ProblemStore is the read-only view of problem content this service needs.
type ProblemStore interface {
	// GetProblem retrieves a problem by ID, nil when not found.
	GetProblem(ctx context.Context, problemID uuid.UUID) (*domain.Problem, error)
}
