package judge

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codeclash-2026.net/internal/domain"
)

// SubmissionOutcome is the client-facing result of a graded submission.
// Hidden test content never leaves the service; only aggregates do.
type SubmissionOutcome struct {
	SubmissionID    uuid.UUID      `json:"submissionId"`
	Accepted        bool           `json:"accepted"`
	Status          domain.Verdict `json:"status"`
	TotalTestCases  int            `json:"totalTestCases"`
	PassedTestCases int            `json:"passedTestCases"`
	Runtime         float64        `json:"runtime"`
	Memory          int            `json:"memory"`
}

// TrialOutcome is the client-facing result of an ungraded run against the
// visible test cases. TestCases is the authoritative per-case detail;
// ErrorMessage is a derived convenience carrying the last failing case's
// message.
type TrialOutcome struct {
	Success      bool                     `json:"success"`
	TestCases    []domain.TestCaseOutcome `json:"testCases"`
	Runtime      float64                  `json:"runtime"`
	Memory       int                      `json:"memory"`
	ErrorMessage *string                  `json:"errorMessage"`
}

// IJudgeService coordinates a grading or trial request end to end: assemble
// the program, dispatch the batch, collect results, judge them, and persist
// the verdict.
type IJudgeService interface {
	// Submit grades the user's code against the problem's hidden test cases
	// and persists the attempt in the submission ledger.
	Submit(ctx context.Context, userID string, problemID uuid.UUID, code, language string) (*SubmissionOutcome, error)

	// Run executes the user's code against the problem's visible test cases
	// without creating a ledger entry or touching the solved set.
	Run(ctx context.Context, userID string, problemID uuid.UUID, code, language string) (*TrialOutcome, error)

	// GetSubmission retrieves a ledger entry by id.
	GetSubmission(ctx context.Context, submissionID uuid.UUID) (*domain.Submission, error)
}
