package domain

// Backend status identifiers, a fixed enumeration shared with the remote
// execution service. Ids 1 and 2 are non-terminal; everything from
// StatusIDAccepted up is terminal.
const (
	StatusIDInQueue          = 1
	StatusIDProcessing       = 2
	StatusIDAccepted         = 3
	StatusIDWrongAnswer      = 4
	StatusIDTimeLimit        = 5
	StatusIDCompilationError = 6
	StatusIDRuntimeErrorLow  = 7
	StatusIDRuntimeErrorHigh = 12
)

// ExecutionRequest is one run of the assembled program against a single test
// case input. The expected output is deliberately absent: comparison happens
// locally, never on the backend.
type ExecutionRequest struct {
	SourceCode string `json:"source_code"`
	LanguageID int    `json:"language_id"`
	Stdin      string `json:"stdin"`
}

// ExecutionResult is the terminal outcome of one dispatched run, keyed by the
// opaque token the backend assigned at dispatch time.
type ExecutionResult struct {
	Token             string
	StatusID          int
	StatusDescription string
	Stdout            *string
	Stderr            *string
	CompileOutput     *string
	Message           *string
	Time              float64
	Memory            int
}

// IsTerminal reports whether the result has left the backend's queue.
func (r *ExecutionResult) IsTerminal() bool {
	return r.StatusID >= StatusIDAccepted
}

// TestCaseOutcome is the locally judged outcome of one test case: the raw
// execution result joined with the pass/fail decision and diagnostic text.
// Trial runs return the full slice of these as the primary error channel.
type TestCaseOutcome struct {
	Index        int     `json:"index"`
	Passed       bool    `json:"passed"`
	StatusID     int     `json:"statusId"`
	Status       string  `json:"status"`
	Stdout       *string `json:"stdout"`
	ErrorMessage *string `json:"errorMessage"`
	Time         float64 `json:"time"`
	Memory       int     `json:"memory"`
}
