package submissions

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/codeclash-2026.net/internal/core/ports/primary"
	"gitlab.com/codeclash-2026.net/internal/core/services/judge"
	"gitlab.com/codeclash-2026.net/internal/handlers"
	"gitlab.com/codeclash-2026.net/internal/handlers/response"
	"gitlab.com/codeclash-2026.net/internal/static/errs"
)

// SubmissionHandler handles the judging API requests.
type SubmissionHandler struct {
	judgeService judge.IJudgeService
	logger       primary.Logger
}

// NewSubmissionHandler creates a new submission handler.
func NewSubmissionHandler(judgeService judge.IJudgeService, logger primary.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		judgeService: judgeService,
		logger:       logger,
	}
}

// RegisterRoutes registers the API routes for SubmissionHandler.
func (h *SubmissionHandler) RegisterRoutes(router *mux.Router, middleware *handlers.MiddlewareProvider) {
	router.Handle("/api/problems/{problemId}/submit",
		middleware.JWTMiddleware(http.HandlerFunc(h.Submit))).Methods("POST")
	router.Handle("/api/problems/{problemId}/run",
		middleware.JWTMiddleware(http.HandlerFunc(h.Run))).Methods("POST")
	router.Handle("/api/submissions/{submissionId}",
		middleware.JWTMiddleware(http.HandlerFunc(h.GetSubmission))).Methods("GET")
}

// Submit handles graded submission requests.
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, problemID, req, ok := h.decodeJudgeRequest(w, r)
	if !ok {
		return
	}

	outcome, err := h.judgeService.Submit(r.Context(), userID, problemID, req.Code, req.Language)
	if err != nil {
		h.writeJudgeError(w, err, "Failed to judge submission")
		return
	}

	response.WriteJSON(w, http.StatusCreated, newSubmitResponse(outcome))
}

// Run handles ungraded trial-run requests.
func (h *SubmissionHandler) Run(w http.ResponseWriter, r *http.Request) {
	userID, problemID, req, ok := h.decodeJudgeRequest(w, r)
	if !ok {
		return
	}

	outcome, err := h.judgeService.Run(r.Context(), userID, problemID, req.Code, req.Language)
	if err != nil {
		h.writeJudgeError(w, err, "Failed to run code")
		return
	}

	response.WriteJSON(w, http.StatusCreated, RunResponse{
		Success:      outcome.Success,
		TestCases:    outcome.TestCases,
		Runtime:      outcome.Runtime,
		Memory:       outcome.Memory,
		ErrorMessage: outcome.ErrorMessage,
	})
}

// GetSubmission handles ledger entry retrieval requests.
func (h *SubmissionHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	submissionID, err := uuid.Parse(vars["submissionId"])
	if err != nil {
		response.WriteError(w, response.ErrorMessage{Message: "Invalid submission ID", StatusCode: http.StatusBadRequest})
		return
	}

	submission, err := h.judgeService.GetSubmission(r.Context(), submissionID)
	if err != nil {
		h.writeJudgeError(w, err, "Failed to get submission")
		return
	}

	response.WriteSuccess(w, SubmissionResponse{
		SubmissionID:    submission.ID.String(),
		ProblemID:       submission.ProblemID.String(),
		Language:        submission.Language,
		Status:          submission.Status,
		TotalTestCases:  submission.TotalTestCases,
		TestCasesPassed: submission.TestCasesPassed,
		Runtime:         submission.Runtime,
		Memory:          submission.Memory,
		ErrorMessage:    submission.ErrorMessage,
		CreatedAt:       submission.CreatedAt.Format(time.RFC3339),
	})
}

func (h *SubmissionHandler) decodeJudgeRequest(w http.ResponseWriter, r *http.Request) (string, uuid.UUID, *JudgeRequest, bool) {
	userID := handlers.UserIDFromContext(r.Context())
	if userID == "" {
		response.WriteError(w, response.ErrorMessage{Message: "Unauthorized", StatusCode: http.StatusUnauthorized})
		return "", uuid.Nil, nil, false
	}

	vars := mux.Vars(r)
	problemID, err := uuid.Parse(vars["problemId"])
	if err != nil {
		response.WriteError(w, response.ErrorMessage{Message: "Invalid problem ID", StatusCode: http.StatusBadRequest})
		return "", uuid.Nil, nil, false
	}

	var req JudgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Invalid request", StatusCode: http.StatusBadRequest})
		return "", uuid.Nil, nil, false
	}

	return userID, problemID, &req, true
}

// writeJudgeError maps service errors onto the API surface. Validation and
// configuration problems are client errors; a dispatch failure is a server
// failure distinct from any graded verdict, which always arrives as a
// structured result instead.
func (h *SubmissionHandler) writeJudgeError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, errs.ErrMissingFields):
		response.WriteError(w, response.ErrorMessage{Message: err.Error(), StatusCode: http.StatusBadRequest})
	case errors.Is(err, errs.ErrUnknownLanguage),
		errors.Is(err, errs.ErrNoHiddenTestCases),
		errors.Is(err, errs.ErrNoVisibleTestCases):
		response.WriteError(w, response.ErrorMessage{Message: err.Error(), StatusCode: http.StatusBadRequest})
	case errors.Is(err, errs.ErrProblemNotFound), errors.Is(err, errs.ErrSubmissionNotFound):
		response.WriteError(w, response.ErrorMessage{Message: err.Error(), StatusCode: http.StatusNotFound})
	case errors.Is(err, errs.ErrDispatchFailed):
		h.logger.Error(logMsg, "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Execution backend unavailable", StatusCode: http.StatusBadGateway})
	default:
		h.logger.Error(logMsg, "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Internal server error", StatusCode: http.StatusInternalServerError})
	}
}
