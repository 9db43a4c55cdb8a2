package submissions

import (
	"gitlab.com/codeclash-2026.net/internal/core/services/judge"
	"gitlab.com/codeclash-2026.net/internal/domain"
)

// JudgeRequest is the body of both the submit and run endpoints.
type JudgeRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

// SubmitResponse is the public shape of a graded submission. Hidden test
// content never appears here.
type SubmitResponse struct {
	Success         bool           `json:"success"`
	Message         string         `json:"message"`
	SubmissionID    string         `json:"submissionId"`
	Accepted        bool           `json:"accepted"`
	Status          domain.Verdict `json:"status"`
	TotalTestCases  int            `json:"totalTestCases"`
	PassedTestCases int            `json:"passedTestCases"`
	Runtime         float64        `json:"runtime"`
	Memory          int            `json:"memory"`
}

// RunResponse mirrors the trial outcome, per-case detail included.
type RunResponse struct {
	Success      bool                     `json:"success"`
	TestCases    []domain.TestCaseOutcome `json:"testCases"`
	Runtime      float64                  `json:"runtime"`
	Memory       int                      `json:"memory"`
	ErrorMessage *string                  `json:"errorMessage"`
}

// SubmissionResponse is the public view of a ledger entry.
type SubmissionResponse struct {
	SubmissionID    string         `json:"submissionId"`
	ProblemID       string         `json:"problemId"`
	Language        string         `json:"language"`
	Status          domain.Verdict `json:"status"`
	TotalTestCases  int            `json:"totalTestCases"`
	TestCasesPassed int            `json:"testCasesPassed"`
	Runtime         float64        `json:"runtime"`
	Memory          int            `json:"memory"`
	ErrorMessage    *string        `json:"errorMessage"`
	CreatedAt       string         `json:"createdAt"`
}

func newSubmitResponse(outcome *judge.SubmissionOutcome) SubmitResponse {
	message := "Submission processed"
	if outcome.Accepted {
		message = "Submission accepted"
	}
	return SubmitResponse{
		Success:         true,
		Message:         message,
		SubmissionID:    outcome.SubmissionID.String(),
		Accepted:        outcome.Accepted,
		Status:          outcome.Status,
		TotalTestCases:  outcome.TotalTestCases,
		PassedTestCases: outcome.PassedTestCases,
		Runtime:         outcome.Runtime,
		Memory:          outcome.Memory,
	}
}
