package secondary

import (
	"context"

	"github.com/google/uuid"
)

// UserStore is the slice of the user collaborator this service touches.
type UserStore interface {
	// AddSolvedProblem records that the user solved the problem. The update
	// is a set union keyed by problem id: adding an already-solved problem
	// must neither duplicate nor error.
	AddSolvedProblem(ctx context.Context, userID string, problemID uuid.UUID) error
}
