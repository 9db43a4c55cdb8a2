package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ExecBackendConfig configures the remote execution backend client.
type ExecBackendConfig struct {
	BaseURL string
	// APIKeys is the rotation pool for the backend's quota-limited keys,
	// comma-separated in EXEC_BACKEND_API_KEYS.
	APIKeys      []string
	PollInterval time.Duration
	// MaxWait bounds how long a single batch is polled before unresolved
	// runs are treated as a backend failure.
	MaxWait time.Duration
	// MaxInflightBatches bounds concurrent batches from this process.
	MaxInflightBatches int
}

func NewExecBackendConfig() *ExecBackendConfig {
	baseURL := os.Getenv("EXEC_BACKEND_URL")
	if baseURL == "" {
		baseURL = "http://localhost:2358"
	}

	var keys []string
	for _, k := range strings.Split(os.Getenv("EXEC_BACKEND_API_KEYS"), ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}

	pollMs, err := strconv.Atoi(os.Getenv("EXEC_BACKEND_POLL_INTERVAL_MS"))
	if err != nil || pollMs <= 0 {
		pollMs = 1000
	}
	maxWaitSec, err := strconv.Atoi(os.Getenv("EXEC_BACKEND_MAX_WAIT_SEC"))
	if err != nil || maxWaitSec <= 0 {
		maxWaitSec = 60
	}
	inflight, err := strconv.Atoi(os.Getenv("EXEC_BACKEND_MAX_INFLIGHT_BATCHES"))
	if err != nil || inflight <= 0 {
		inflight = 32
	}

	return &ExecBackendConfig{
		BaseURL:            baseURL,
		APIKeys:            keys,
		PollInterval:       time.Duration(pollMs) * time.Millisecond,
		MaxWait:            time.Duration(maxWaitSec) * time.Second,
		MaxInflightBatches: inflight,
	}
}
