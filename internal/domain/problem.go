package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TestCase is a single input/expected-output pair of a problem.
type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expectedOutput"`
}

// CodeStub holds per-language code attached to a problem: either the start
// scaffold shown to the user or the complete reference solution.
type CodeStub struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

// Problem is the judged content: ordered visible cases for trial runs,
// ordered hidden cases for graded submissions, and per-language scaffolding.
// This service only ever reads problems.
type Problem struct {
	ID                 uuid.UUID  `db:"id"`
	Title              string     `db:"title"`
	VisibleTestCases   []TestCase `db:"visible_test_cases"`
	HiddenTestCases    []TestCase `db:"hidden_test_cases"`
	StartCode          []CodeStub `db:"start_code"`
	ReferenceSolutions []CodeStub `db:"reference_solutions"`
	CreatedAt          time.Time  `db:"created_at"`
}

// StartCodeFor returns the start scaffold for a language, nil when the
// problem has none. Language matching is case-insensitive.
func (p *Problem) StartCodeFor(language string) *CodeStub {
	return findStub(p.StartCode, language)
}

// ReferenceSolutionFor returns the reference solution for a language, nil
// when the problem has none.
func (p *Problem) ReferenceSolutionFor(language string) *CodeStub {
	return findStub(p.ReferenceSolutions, language)
}

func findStub(stubs []CodeStub, language string) *CodeStub {
	for i := range stubs {
		if strings.EqualFold(stubs[i].Language, language) {
			return &stubs[i]
		}
	}
	return nil
}

type ProblemTable struct {
	ID                 string
	Title              string
	VisibleTestCases   string
	HiddenTestCases    string
	StartCode          string
	ReferenceSolutions string
	CreatedAt          string
}

func GetProblemTable() ProblemTable {
	return ProblemTable{
		ID:                 "id",
		Title:              "title",
		VisibleTestCases:   "visible_test_cases",
		HiddenTestCases:    "hidden_test_cases",
		StartCode:          "start_code",
		ReferenceSolutions: "reference_solutions",
		CreatedAt:          "created_at",
	}
}

func (ProblemTable) TableName() string {
	return "problems"
}
