package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codeclash-2026.net/internal/domain"
)

// SubmissionLedger is the durable record of grading attempts. Entries are
// created Pending and updated exactly once with terminal fields.
type SubmissionLedger interface {
	// CreatePending persists a new ledger entry in the Pending state.
	CreatePending(ctx context.Context, submission *domain.Submission) error

	// UpdateVerdict writes the final verdict fields of an entry in place.
	UpdateVerdict(ctx context.Context, submission *domain.Submission) error

	// GetByID retrieves a ledger entry, nil when not found.
	GetByID(ctx context.Context, submissionID uuid.UUID) (*domain.Submission, error)
}
