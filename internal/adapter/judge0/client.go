// Package judge0 is the HTTP adapter for the remote execution backend. It
// implements batch dispatch and token polling against a Judge0-compatible
// REST API.
package judge0

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gitlab.com/codeclash-2026.net/internal/config"
	"gitlab.com/codeclash-2026.net/internal/core/ports/primary"
	"gitlab.com/codeclash-2026.net/internal/core/ports/secondary"
	"gitlab.com/codeclash-2026.net/internal/domain"
)

var _ secondary.ExecutionClient = (*Client)(nil)

const resultFields = "token,status_id,status,stdout,stderr,compile_output,message,time,memory"

// Client talks to a Judge0-compatible execution backend.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	keys         *KeyRing
	pollInterval time.Duration
	maxWait      time.Duration
	logger       primary.Logger
}

// NewClient creates a new execution backend client.
func NewClient(cfg *config.ExecBackendConfig, logger primary.Logger) *Client {
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		keys:         NewKeyRing(cfg.APIKeys),
		pollInterval: cfg.PollInterval,
		maxWait:      cfg.MaxWait,
		logger:       logger,
	}
}

type batchSubmitBody struct {
	Submissions []domain.ExecutionRequest `json:"submissions"`
}

type tokenEnvelope struct {
	Token string `json:"token"`
}

type wireStatus struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

type wireSubmission struct {
	Token         string      `json:"token"`
	Status        *wireStatus `json:"status"`
	StatusID      int         `json:"status_id"`
	Stdout        *string     `json:"stdout"`
	Stderr        *string     `json:"stderr"`
	CompileOutput *string     `json:"compile_output"`
	Message       *string     `json:"message"`
	Time          *string     `json:"time"`
	Memory        *int        `json:"memory"`
}

type batchResultBody struct {
	Submissions []wireSubmission `json:"submissions"`
}

// DispatchBatch submits every request as one batched call and returns the
// backend tokens in request order. Any transport failure or malformed
// response is a hard error; the orchestrator never resubmits a batch.
func (c *Client) DispatchBatch(ctx context.Context, requests []domain.ExecutionRequest) ([]string, error) {
	if len(requests) == 0 {
		return nil, fmt.Errorf("empty batch")
	}

	body, err := json.Marshal(batchSubmitBody{Submissions: requests})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batch: %w", err)
	}

	endpoint := c.baseURL + "/submissions/batch?base64_encoded=false"
	raw, err := c.doRequest(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, err
	}

	var envelopes []tokenEnvelope
	if err := json.Unmarshal(raw, &envelopes); err != nil {
		return nil, fmt.Errorf("malformed dispatch response: %w", err)
	}
	if len(envelopes) != len(requests) {
		return nil, fmt.Errorf("backend returned %d tokens for %d requests", len(envelopes), len(requests))
	}

	tokens := make([]string, len(envelopes))
	for i, env := range envelopes {
		if env.Token == "" {
			return nil, fmt.Errorf("backend returned an empty token at position %d", i)
		}
		tokens[i] = env.Token
	}
	c.logger.Debug("Batch dispatched", "size", len(tokens))
	return tokens, nil
}

// CollectResults polls the backend until every token has reached a terminal
// state, then returns the results re-ordered to dispatch order via the token
// mapping. Results are never matched positionally: the backend is free to
// return them in any order. Exhausting the wait budget is a hard failure
// carrying how many runs stayed unresolved.
func (c *Client) CollectResults(ctx context.Context, tokens []string) ([]domain.ExecutionResult, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("no tokens to collect")
	}

	ctx, cancel := context.WithTimeout(ctx, c.maxWait)
	defer cancel()

	resolved := make(map[string]domain.ExecutionResult, len(tokens))
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		remaining := make([]string, 0, len(tokens))
		for _, token := range tokens {
			if _, ok := resolved[token]; !ok {
				remaining = append(remaining, token)
			}
		}

		results, err := c.fetchBatch(ctx, remaining)
		if err != nil {
			return nil, err
		}
		for _, result := range results {
			if result.IsTerminal() {
				resolved[result.Token] = result
			}
		}

		if len(resolved) == len(tokens) {
			ordered := make([]domain.ExecutionResult, len(tokens))
			for i, token := range tokens {
				ordered[i] = resolved[token]
			}
			return ordered, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("poll budget exhausted: %d of %d runs unresolved: %w",
				len(tokens)-len(resolved), len(tokens), ctx.Err())
		case <-ticker.C:
		}
	}
}

func (c *Client) fetchBatch(ctx context.Context, tokens []string) ([]domain.ExecutionResult, error) {
	endpoint := fmt.Sprintf("%s/submissions/batch?base64_encoded=false&tokens=%s&fields=%s",
		c.baseURL, url.QueryEscape(strings.Join(tokens, ",")), url.QueryEscape(resultFields))

	raw, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var body batchResultBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("malformed result response: %w", err)
	}
	if body.Submissions == nil {
		return nil, fmt.Errorf("result response carries no submissions array")
	}

	results := make([]domain.ExecutionResult, 0, len(body.Submissions))
	for _, sub := range body.Submissions {
		results = append(results, fromWire(sub))
	}
	return results, nil
}

// doRequest performs one call with the current API key. A quota rejection
// rotates the ring and retries the call once with the next key.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body []byte) ([]byte, error) {
	raw, status, err := c.doOnce(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	if (status == http.StatusTooManyRequests || status == http.StatusForbidden) && c.keys.Size() > 1 {
		c.logger.Warn("Backend rejected API key, rotating", "status", status)
		raw, status, err = c.doOnce(ctx, method, endpoint, body)
		if err != nil {
			return nil, err
		}
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("backend responded %d: %s", status, truncateBody(raw))
	}
	return raw, nil
}

func (c *Client) doOnce(ctx context.Context, method, endpoint string, body []byte) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if key := c.keys.Next(); key != "" {
		req.Header.Set("X-Auth-Token", key)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response: %w", err)
	}
	return raw, resp.StatusCode, nil
}

func fromWire(sub wireSubmission) domain.ExecutionResult {
	result := domain.ExecutionResult{
		Token:         sub.Token,
		StatusID:      sub.StatusID,
		Stdout:        sub.Stdout,
		Stderr:        sub.Stderr,
		CompileOutput: sub.CompileOutput,
		Message:       sub.Message,
	}
	if sub.Status != nil {
		result.StatusID = sub.Status.ID
		result.StatusDescription = sub.Status.Description
	}
	if sub.Time != nil {
		if t, err := strconv.ParseFloat(*sub.Time, 64); err == nil {
			result.Time = t
		}
	}
	if sub.Memory != nil {
		result.Memory = *sub.Memory
	}
	return result
}

func truncateBody(raw []byte) string {
	const max = 200
	if len(raw) > max {
		return string(raw[:max]) + "..."
	}
	return string(raw)
}
