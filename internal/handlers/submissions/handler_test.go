package submissions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/codeclash-2026.net/internal/core/services/judge"
	"gitlab.com/codeclash-2026.net/internal/domain"
	"gitlab.com/codeclash-2026.net/internal/handlers"
	"gitlab.com/codeclash-2026.net/internal/static/errs"
)

const testSecret = "test-secret"

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

type fakeJudgeService struct {
	submitOutcome *judge.SubmissionOutcome
	submitErr     error
	runOutcome    *judge.TrialOutcome
	runErr        error
	submission    *domain.Submission
	getErr        error

	gotUserID    string
	gotProblemID uuid.UUID
	gotCode      string
	gotLanguage  string
}

func (f *fakeJudgeService) Submit(ctx context.Context, userID string, problemID uuid.UUID, code, language string) (*judge.SubmissionOutcome, error) {
	f.gotUserID, f.gotProblemID, f.gotCode, f.gotLanguage = userID, problemID, code, language
	return f.submitOutcome, f.submitErr
}

func (f *fakeJudgeService) Run(ctx context.Context, userID string, problemID uuid.UUID, code, language string) (*judge.TrialOutcome, error) {
	f.gotUserID, f.gotProblemID, f.gotCode, f.gotLanguage = userID, problemID, code, language
	return f.runOutcome, f.runErr
}

func (f *fakeJudgeService) GetSubmission(ctx context.Context, submissionID uuid.UUID) (*domain.Submission, error) {
	return f.submission, f.getErr
}

func newTestRouter(service judge.IJudgeService) *mux.Router {
	router := mux.NewRouter()
	handler := NewSubmissionHandler(service, nopLogger{})
	handler.RegisterRoutes(router, handlers.New(testSecret))
	return router
}

func signToken(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doRequest(t *testing.T, router *mux.Router, method, path, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+signToken(t, userID))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSubmitEndpoint(t *testing.T) {
	t.Parallel()
	problemID := uuid.New()
	service := &fakeJudgeService{
		submitOutcome: &judge.SubmissionOutcome{
			SubmissionID:    uuid.New(),
			Accepted:        true,
			Status:          domain.VerdictAccepted,
			TotalTestCases:  3,
			PassedTestCases: 3,
			Runtime:         0.12,
			Memory:          4096,
		},
	}
	router := newTestRouter(service)

	rec := doRequest(t, router, http.MethodPost, "/api/problems/"+problemID.String()+"/submit",
		"user-1", JudgeRequest{Code: "code", Language: "python"})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp SubmitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Accepted)
	assert.Equal(t, "Submission accepted", resp.Message)
	assert.Equal(t, domain.VerdictAccepted, resp.Status)
	assert.Equal(t, 3, resp.PassedTestCases)

	assert.Equal(t, "user-1", service.gotUserID)
	assert.Equal(t, problemID, service.gotProblemID)
	assert.Equal(t, "python", service.gotLanguage)
}

func TestSubmitEndpointErrorMapping(t *testing.T) {
	t.Parallel()
	problemID := uuid.New()
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"missing fields", errs.ErrMissingFields, http.StatusBadRequest},
		{"unknown language", errs.ErrUnknownLanguage, http.StatusBadRequest},
		{"no hidden test cases", errs.ErrNoHiddenTestCases, http.StatusBadRequest},
		{"problem not found", errs.ErrProblemNotFound, http.StatusNotFound},
		{"dispatch failed", fmt.Errorf("%w: backend down", errs.ErrDispatchFailed), http.StatusBadGateway},
		{"unclassified", fmt.Errorf("database exploded"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			router := newTestRouter(&fakeJudgeService{submitErr: tt.serviceErr})
			rec := doRequest(t, router, http.MethodPost, "/api/problems/"+problemID.String()+"/submit",
				"user-1", JudgeRequest{Code: "code", Language: "python"})
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestSubmitEndpointRejectsMissingToken(t *testing.T) {
	t.Parallel()
	router := newTestRouter(&fakeJudgeService{})
	rec := doRequest(t, router, http.MethodPost, "/api/problems/"+uuid.NewString()+"/submit",
		"", JudgeRequest{Code: "code", Language: "python"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSubmitEndpointRejectsBadProblemID(t *testing.T) {
	t.Parallel()
	router := newTestRouter(&fakeJudgeService{})
	rec := doRequest(t, router, http.MethodPost, "/api/problems/not-a-uuid/submit",
		"user-1", JudgeRequest{Code: "code", Language: "python"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRunEndpoint(t *testing.T) {
	t.Parallel()
	problemID := uuid.New()
	msg := "Expected: 2, Got: 3"
	service := &fakeJudgeService{
		runOutcome: &judge.TrialOutcome{
			Success: false,
			TestCases: []domain.TestCaseOutcome{
				{Index: 0, Passed: true, StatusID: 3, Status: "Accepted"},
				{Index: 1, Passed: false, StatusID: 3, Status: "Accepted", ErrorMessage: &msg},
			},
			ErrorMessage: &msg,
		},
	}
	router := newTestRouter(service)

	rec := doRequest(t, router, http.MethodPost, "/api/problems/"+problemID.String()+"/run",
		"user-1", JudgeRequest{Code: "code", Language: "go"})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp RunResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.Len(t, resp.TestCases, 2)
	assert.True(t, resp.TestCases[0].Passed)
	require.NotNil(t, resp.ErrorMessage)
	assert.Equal(t, msg, *resp.ErrorMessage)
}

func TestGetSubmissionEndpoint(t *testing.T) {
	t.Parallel()
	submission := &domain.Submission{
		ID:              uuid.New(),
		UserID:          "user-1",
		ProblemID:       uuid.New(),
		Language:        "python",
		Status:          domain.VerdictWrongAnswer,
		TotalTestCases:  5,
		TestCasesPassed: 2,
		CreatedAt:       time.Now(),
	}
	router := newTestRouter(&fakeJudgeService{submission: submission})

	rec := doRequest(t, router, http.MethodGet, "/api/submissions/"+submission.ID.String(), "user-1", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp SubmissionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, submission.ID.String(), resp.SubmissionID)
	assert.Equal(t, domain.VerdictWrongAnswer, resp.Status)
	assert.Equal(t, 2, resp.TestCasesPassed)
}

func TestGetSubmissionEndpointNotFound(t *testing.T) {
	t.Parallel()
	router := newTestRouter(&fakeJudgeService{getErr: errs.ErrSubmissionNotFound})
	rec := doRequest(t, router, http.MethodGet, "/api/submissions/"+uuid.NewString(), "user-1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
