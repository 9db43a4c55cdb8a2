package judge

import (
	"fmt"
	"strings"

	"gitlab.com/codeclash-2026.net/internal/domain"
)

// EvaluationPolicy selects how a batch is walked.
type EvaluationPolicy int

const (
	// PolicyGraded stops at the first non-passing test case; hidden cases
	// beyond the stopping point are not reflected in any aggregate.
	PolicyGraded EvaluationPolicy = iota

	// PolicyTrial evaluates every case and keeps per-case detail for
	// display.
	PolicyTrial
)

// BatchEvaluation is the aggregated outcome of judging one batch.
type BatchEvaluation struct {
	Verdict         domain.Verdict
	TestCasesPassed int
	// Runtime is the sum of execution times over passed cases, seconds.
	Runtime float64
	// Memory is the running maximum over passed cases, KB.
	Memory       int
	ErrorMessage *string
	// Cases carries the per-case detail. Under PolicyTrial this is the
	// authoritative error channel; ErrorMessage is a derived convenience
	// holding the last failing case's message.
	Cases []domain.TestCaseOutcome
}

const snippetLen = 50

// EvaluateBatch judges the ordered execution results of a batch against the
// matching ordered test cases. Results must be in dispatch order; the
// execution client guarantees that by re-keying polled results by token.
// The caller never invokes the engine on an empty batch.
func EvaluateBatch(results []domain.ExecutionResult, cases []domain.TestCase, policy EvaluationPolicy) BatchEvaluation {
	eval := BatchEvaluation{
		Verdict: domain.VerdictAccepted,
		Cases:   make([]domain.TestCaseOutcome, 0, len(results)),
	}

	for i := range results {
		result := &results[i]
		outcome := domain.TestCaseOutcome{
			Index:    i,
			StatusID: result.StatusID,
			Status:   result.StatusDescription,
			Stdout:   result.Stdout,
			Time:     result.Time,
			Memory:   result.Memory,
		}

		if result.StatusID == domain.StatusIDAccepted {
			expected := strings.TrimSpace(cases[i].ExpectedOutput)
			actual := strings.TrimSpace(deref(result.Stdout))
			if expected == actual {
				outcome.Passed = true
				eval.TestCasesPassed++
				eval.Runtime += result.Time
				if result.Memory > eval.Memory {
					eval.Memory = result.Memory
				}
				eval.Cases = append(eval.Cases, outcome)
				continue
			}

			msg := fmt.Sprintf("Expected: %s, Got: %s", truncate(expected), truncate(actual))
			outcome.ErrorMessage = &msg
			eval.Cases = append(eval.Cases, outcome)
			eval.Verdict = domain.VerdictWrongAnswer
			eval.ErrorMessage = &msg
			if policy == PolicyGraded {
				break
			}
			continue
		}

		verdict, msg := classifyFailure(result)
		outcome.ErrorMessage = &msg
		eval.Cases = append(eval.Cases, outcome)
		eval.Verdict = verdict
		eval.ErrorMessage = &msg
		if policy == PolicyGraded {
			break
		}
	}

	return eval
}

// classifyFailure maps a non-clean backend status onto the verdict taxonomy
// and picks the diagnostic text. The status-id table is fixed by the backend
// contract and reproduced exactly: 4 wrong answer, 5 time limit, 6 compile
// failure (compile output preferred over stderr), 7..12 runtime failures.
// Anything else becomes the catch-all verdict carrying the backend's own
// status description.
func classifyFailure(result *domain.ExecutionResult) (domain.Verdict, string) {
	switch {
	case result.StatusID == domain.StatusIDWrongAnswer:
		return domain.VerdictWrongAnswer,
			firstNonEmpty(deref(result.Stderr), deref(result.CompileOutput), string(domain.VerdictWrongAnswer))
	case result.StatusID == domain.StatusIDTimeLimit:
		return domain.VerdictTimeLimitExceeded, string(domain.VerdictTimeLimitExceeded)
	case result.StatusID == domain.StatusIDCompilationError:
		return domain.VerdictCompilationError,
			firstNonEmpty(deref(result.CompileOutput), deref(result.Stderr), string(domain.VerdictCompilationError))
	case result.StatusID >= domain.StatusIDRuntimeErrorLow && result.StatusID <= domain.StatusIDRuntimeErrorHigh:
		return domain.VerdictRuntimeError,
			firstNonEmpty(deref(result.Stderr), deref(result.Message), string(domain.VerdictRuntimeError))
	default:
		verdict := domain.Verdict(result.StatusDescription)
		if verdict == "" {
			verdict = "Error"
		}
		return verdict,
			firstNonEmpty(deref(result.Stderr), deref(result.CompileOutput), deref(result.Message), "Unknown Error")
	}
}

func truncate(s string) string {
	if len(s) > snippetLen {
		return s[:snippetLen]
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}
