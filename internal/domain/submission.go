package domain

import (
	"time"

	"github.com/google/uuid"
)

// Verdict is the terminal classification of a graded submission. The string
// values are stored in the ledger and shown to clients as-is. A backend
// status outside the known categories becomes a verdict carrying the
// backend's own description, so nothing is ever silently dropped.
type Verdict string

const (
	VerdictPending           Verdict = "Pending"
	VerdictAccepted          Verdict = "Accepted"
	VerdictWrongAnswer       Verdict = "Wrong Answer"
	VerdictCompilationError  Verdict = "Compilation Error"
	VerdictTimeLimitExceeded Verdict = "Time Limit Exceeded"
	VerdictRuntimeError      Verdict = "Runtime Error"

	// VerdictJudgingFailed marks a ledger entry whose batch could not be
	// dispatched or collected. It is an operational anomaly, not a graded
	// outcome, and stays inspectable instead of being converted to a verdict.
	VerdictJudgingFailed Verdict = "Judging Failed"
)

// IsTerminal reports whether the verdict ends a grading attempt.
func (v Verdict) IsTerminal() bool {
	return v != VerdictPending
}

// Submission is the durable record of one grading attempt. It is created
// Pending before any external call and updated exactly once with the final
// verdict fields. Entries are never deleted here.
type Submission struct {
	ID              uuid.UUID `db:"id"`
	UserID          string    `db:"user_id"`
	ProblemID       uuid.UUID `db:"problem_id"`
	Code            string    `db:"code"`
	Language        string    `db:"language"`
	Status          Verdict   `db:"status"`
	TotalTestCases  int       `db:"total_test_cases"`
	TestCasesPassed int       `db:"test_cases_passed"`
	Runtime         float64   `db:"runtime"`
	Memory          int       `db:"memory"`
	ErrorMessage    *string   `db:"error_message"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// NewSubmission creates a pending ledger entry for a grading attempt.
func NewSubmission(userID string, problemID uuid.UUID, code, language string, totalTestCases int) *Submission {
	now := time.Now()
	return &Submission{
		ID:             uuid.New(),
		UserID:         userID,
		ProblemID:      problemID,
		Code:           code,
		Language:       language,
		Status:         VerdictPending,
		TotalTestCases: totalTestCases,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

type SubmissionTable struct {
	ID              string
	UserID          string
	ProblemID       string
	Code            string
	Language        string
	Status          string
	TotalTestCases  string
	TestCasesPassed string
	Runtime         string
	Memory          string
	ErrorMessage    string
	CreatedAt       string
	UpdatedAt       string
}

func GetSubmissionTable() SubmissionTable {
	return SubmissionTable{
		ID:              "id",
		UserID:          "user_id",
		ProblemID:       "problem_id",
		Code:            "code",
		Language:        "language",
		Status:          "status",
		TotalTestCases:  "total_test_cases",
		TestCasesPassed: "test_cases_passed",
		Runtime:         "runtime",
		Memory:          "memory",
		ErrorMessage:    "error_message",
		CreatedAt:       "created_at",
		UpdatedAt:       "updated_at",
	}
}

func (SubmissionTable) TableName() string {
	return "submissions"
}
