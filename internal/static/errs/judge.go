package errs

import "errors"

var (
	ErrMissingFields      = errors.New("fields are missing")
	ErrProblemNotFound    = errors.New("problem not found")
	ErrUnknownLanguage    = errors.New("language is not supported")
	ErrNoHiddenTestCases  = errors.New("problem has no hidden test cases and cannot be submitted")
	ErrNoVisibleTestCases = errors.New("problem has no visible test cases to run against")
	ErrSubmissionNotFound = errors.New("submission not found")

	// ErrDispatchFailed covers transport-level failures against the
	// execution backend: unreachable, malformed response, or an exhausted
	// poll budget. It is an operational failure, never a graded verdict.
	ErrDispatchFailed = errors.New("execution backend dispatch failed")
)
