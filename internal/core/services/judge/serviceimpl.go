package judge

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"gitlab.com/codeclash-2026.net/internal/core/ports/primary"
	"gitlab.com/codeclash-2026.net/internal/core/ports/secondary"
	"gitlab.com/codeclash-2026.net/internal/domain"
	"gitlab.com/codeclash-2026.net/internal/static/errs"
)

var _ IJudgeService = (*JudgeService)(nil)

// EventProblemAccepted is published to a user's observers when a graded
// submission is accepted.
const EventProblemAccepted = "problemAccepted"

// JudgeService implements the IJudgeService interface
type JudgeService struct {
	problems secondary.ProblemStore
	ledger   secondary.SubmissionLedger
	users    secondary.UserStore
	executor secondary.ExecutionClient
	notifier secondary.Notifier
	logger   primary.Logger

	// gate bounds in-flight batches per process so a burst of submissions
	// cannot fan out unbounded against the execution backend.
	gate *semaphore.Weighted

	// gradeBudget bounds one batch end to end: dispatch, polling, persist.
	gradeBudget time.Duration
}

// NewJudgeService creates a new judge service
func NewJudgeService(
	problems secondary.ProblemStore,
	ledger secondary.SubmissionLedger,
	users secondary.UserStore,
	executor secondary.ExecutionClient,
	notifier secondary.Notifier,
	logger primary.Logger,
	maxInflightBatches int,
	gradeBudget time.Duration,
) *JudgeService {
	if maxInflightBatches <= 0 {
		maxInflightBatches = 1
	}
	return &JudgeService{
		problems:    problems,
		ledger:      ledger,
		users:       users,
		executor:    executor,
		notifier:    notifier,
		logger:      logger,
		gate:        semaphore.NewWeighted(int64(maxInflightBatches)),
		gradeBudget: gradeBudget,
	}
}

// Submit grades a submission against the problem's hidden test cases.
func (s *JudgeService) Submit(ctx context.Context, userID string, problemID uuid.UUID, code, language string) (*SubmissionOutcome, error) {
	language = NormalizeLanguage(language)
	problem, languageID, err := s.validateRequest(ctx, userID, problemID, code, language)
	if err != nil {
		return nil, err
	}
	if len(problem.HiddenTestCases) == 0 {
		return nil, errs.ErrNoHiddenTestCases
	}

	// The ledger entry exists before any external call so a mid-flight
	// crash leaves an auditable pending record, never a silent loss.
	submission := domain.NewSubmission(userID, problemID, code, language, len(problem.HiddenTestCases))
	if err := s.ledger.CreatePending(ctx, submission); err != nil {
		s.logger.Error("Failed to create pending submission", "userId", userID, "problemId", problemID, "error", err)
		return nil, fmt.Errorf("failed to create pending submission: %w", err)
	}
	s.logger.Info("Submission created", "submissionId", submission.ID, "userId", userID, "problemId", problemID)

	// Grading is detached from the request lifetime: an abandoned caller
	// must not strand the ledger entry in Pending.
	gradeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.gradeBudget)
	defer cancel()

	finalSource := AssembleSource(code, problem, language)
	results, err := s.executeBatch(gradeCtx, finalSource, languageID, problem.HiddenTestCases)
	if err != nil {
		s.markJudgingFailed(gradeCtx, submission, err)
		return nil, fmt.Errorf("%w: %v", errs.ErrDispatchFailed, err)
	}

	eval := EvaluateBatch(results, problem.HiddenTestCases, PolicyGraded)
	submission.Status = eval.Verdict
	submission.TestCasesPassed = eval.TestCasesPassed
	submission.Runtime = eval.Runtime
	submission.Memory = eval.Memory
	submission.ErrorMessage = eval.ErrorMessage
	submission.UpdatedAt = time.Now()

	if err := s.ledger.UpdateVerdict(gradeCtx, submission); err != nil {
		s.logger.Error("Failed to persist verdict", "submissionId", submission.ID, "error", err)
		return nil, fmt.Errorf("failed to persist verdict: %w", err)
	}
	s.logger.Info("Submission judged",
		"submissionId", submission.ID,
		"status", submission.Status,
		"passed", submission.TestCasesPassed,
		"total", submission.TotalTestCases)

	if eval.Verdict == domain.VerdictAccepted {
		s.recordAccepted(gradeCtx, userID, problemID)
	}

	return &SubmissionOutcome{
		SubmissionID:    submission.ID,
		Accepted:        eval.Verdict == domain.VerdictAccepted,
		Status:          submission.Status,
		TotalTestCases:  submission.TotalTestCases,
		PassedTestCases: submission.TestCasesPassed,
		Runtime:         submission.Runtime,
		Memory:          submission.Memory,
	}, nil
}

// Run executes a trial against the problem's visible test cases. No ledger
// entry is created and the solved set is untouched.
func (s *JudgeService) Run(ctx context.Context, userID string, problemID uuid.UUID, code, language string) (*TrialOutcome, error) {
	language = NormalizeLanguage(language)
	problem, languageID, err := s.validateRequest(ctx, userID, problemID, code, language)
	if err != nil {
		return nil, err
	}
	if len(problem.VisibleTestCases) == 0 {
		return nil, errs.ErrNoVisibleTestCases
	}

	runCtx, cancel := context.WithTimeout(ctx, s.gradeBudget)
	defer cancel()

	finalSource := AssembleSource(code, problem, language)
	results, err := s.executeBatch(runCtx, finalSource, languageID, problem.VisibleTestCases)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDispatchFailed, err)
	}

	eval := EvaluateBatch(results, problem.VisibleTestCases, PolicyTrial)
	return &TrialOutcome{
		Success:      eval.Verdict == domain.VerdictAccepted,
		TestCases:    eval.Cases,
		Runtime:      eval.Runtime,
		Memory:       eval.Memory,
		ErrorMessage: eval.ErrorMessage,
	}, nil
}

// GetSubmission retrieves a ledger entry by id.
func (s *JudgeService) GetSubmission(ctx context.Context, submissionID uuid.UUID) (*domain.Submission, error) {
	submission, err := s.ledger.GetByID(ctx, submissionID)
	if err != nil {
		s.logger.Error("Failed to get submission", "submissionId", submissionID, "error", err)
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if submission == nil {
		return nil, errs.ErrSubmissionNotFound
	}
	return submission, nil
}

// validateRequest checks the shared preconditions of both workflows and
// resolves the problem and backend language id. Rejections happen before any
// external call and before any ledger write.
func (s *JudgeService) validateRequest(ctx context.Context, userID string, problemID uuid.UUID, code, language string) (*domain.Problem, int, error) {
	if userID == "" || problemID == uuid.Nil || code == "" || language == "" {
		return nil, 0, errs.ErrMissingFields
	}

	languageID, ok := LanguageID(language)
	if !ok {
		return nil, 0, errs.ErrUnknownLanguage
	}

	problem, err := s.problems.GetProblem(ctx, problemID)
	if err != nil {
		s.logger.Error("Failed to get problem", "problemId", problemID, "error", err)
		return nil, 0, fmt.Errorf("failed to get problem: %w", err)
	}
	if problem == nil {
		return nil, 0, errs.ErrProblemNotFound
	}

	return problem, languageID, nil
}

// executeBatch dispatches one batch under the admission gate and collects
// every result. The batch is never resubmitted: a retry against a stateful
// remote judge risks duplicate execution and billing.
func (s *JudgeService) executeBatch(ctx context.Context, sourceCode string, languageID int, cases []domain.TestCase) ([]domain.ExecutionResult, error) {
	if err := s.gate.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("admission gate: %w", err)
	}
	defer s.gate.Release(1)

	requests := make([]domain.ExecutionRequest, len(cases))
	for i, testCase := range cases {
		requests[i] = domain.ExecutionRequest{
			SourceCode: sourceCode,
			LanguageID: languageID,
			Stdin:      testCase.Input,
		}
	}

	tokens, err := s.executor.DispatchBatch(ctx, requests)
	if err != nil {
		return nil, fmt.Errorf("failed to dispatch batch: %w", err)
	}

	results, err := s.executor.CollectResults(ctx, tokens)
	if err != nil {
		return nil, fmt.Errorf("failed to collect results: %w", err)
	}
	if len(results) != len(cases) {
		return nil, fmt.Errorf("backend returned %d results for %d test cases", len(results), len(cases))
	}
	return results, nil
}

// markJudgingFailed moves a pending entry to the Judging Failed anomaly
// state. A dispatch failure is never recorded as a graded verdict.
func (s *JudgeService) markJudgingFailed(ctx context.Context, submission *domain.Submission, cause error) {
	msg := cause.Error()
	submission.Status = domain.VerdictJudgingFailed
	submission.ErrorMessage = &msg
	submission.UpdatedAt = time.Now()
	if err := s.ledger.UpdateVerdict(ctx, submission); err != nil {
		s.logger.Error("Failed to mark submission as judging failed", "submissionId", submission.ID, "error", err)
	}
}

// recordAccepted applies the accepted side effects: the idempotent solved-set
// union and a best-effort notification. Neither failure fails the grading
// operation that is already persisted.
func (s *JudgeService) recordAccepted(ctx context.Context, userID string, problemID uuid.UUID) {
	if err := s.users.AddSolvedProblem(ctx, userID, problemID); err != nil {
		s.logger.Error("Failed to update solved problems", "userId", userID, "problemId", problemID, "error", err)
		return
	}
	event := secondary.UserEvent{
		Type:      EventProblemAccepted,
		UserID:    userID,
		ProblemID: problemID.String(),
	}
	if err := s.notifier.Notify(ctx, userID, event); err != nil {
		s.logger.Warn("Failed to notify user observers", "userId", userID, "error", err)
	}
}
