package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewSubmissionStartsPending(t *testing.T) {
	t.Parallel()
	problemID := uuid.New()
	s := NewSubmission("user-1", problemID, "code", "python", 7)

	if s.ID == uuid.Nil {
		t.Fatal("submission must get an id at creation")
	}
	if s.Status != VerdictPending {
		t.Fatalf("expected Pending, got %q", s.Status)
	}
	if s.TotalTestCases != 7 || s.TestCasesPassed != 0 {
		t.Fatalf("unexpected counters: %d/%d", s.TestCasesPassed, s.TotalTestCases)
	}
	if s.ProblemID != problemID || s.UserID != "user-1" {
		t.Fatal("identity fields not carried over")
	}
	if s.CreatedAt.IsZero() || !s.UpdatedAt.Equal(s.CreatedAt) {
		t.Fatal("timestamps must be set and equal at creation")
	}
}

func TestVerdictIsTerminal(t *testing.T) {
	t.Parallel()
	if VerdictPending.IsTerminal() {
		t.Fatal("Pending is not terminal")
	}
	for _, v := range []Verdict{
		VerdictAccepted,
		VerdictWrongAnswer,
		VerdictCompilationError,
		VerdictTimeLimitExceeded,
		VerdictRuntimeError,
		VerdictJudgingFailed,
		Verdict("Internal Error"),
	} {
		if !v.IsTerminal() {
			t.Fatalf("%q must be terminal", v)
		}
	}
}
