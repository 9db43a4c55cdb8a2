package judge

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"gitlab.com/codeclash-2026.net/internal/domain"
)

func testProblem() *domain.Problem {
	return &domain.Problem{
		ID:    uuid.New(),
		Title: "Two Sum",
		StartCode: []domain.CodeStub{
			{Language: "python", Code: "def solve(nums, target):\n    pass\n"},
		},
		ReferenceSolutions: []domain.CodeStub{
			{
				Language: "python",
				Code: "import sys\n\n" +
					"def solve(nums, target):\n    pass\n\n" +
					"def main():\n    print(solve([], 0))\n\nmain()\n",
			},
		},
	}
}

func TestAssembleSourceSplicesFragmentIntoHarness(t *testing.T) {
	t.Parallel()
	problem := testProblem()
	fragment := "def solve(nums, target):\n    return 42\n"

	got := AssembleSource(fragment, problem, "python")

	if !strings.Contains(got, "return 42") {
		t.Fatal("fragment missing from assembled program")
	}
	if strings.Contains(got, "pass") {
		t.Fatal("scaffold still present after assembly")
	}
	if !strings.Contains(got, "def main():") {
		t.Fatal("harness around the scaffold was lost")
	}
}

func TestAssembleSourceReplacesFirstOccurrenceOnly(t *testing.T) {
	t.Parallel()
	problem := &domain.Problem{
		StartCode:          []domain.CodeStub{{Language: "go", Code: "STUB"}},
		ReferenceSolutions: []domain.CodeStub{{Language: "go", Code: "STUB middle STUB"}},
	}

	got := AssembleSource("USER", problem, "go")

	if got != "USER middle STUB" {
		t.Fatalf("expected first-occurrence replacement, got %q", got)
	}
}

func TestAssembleSourceLanguageLookupIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	problem := testProblem()

	got := AssembleSource("def solve(nums, target):\n    return 1\n", problem, "Python")

	if !strings.Contains(got, "return 1") {
		t.Fatal("expected assembly to find the python stubs")
	}
}

func TestAssembleSourceFallsBackToFragment(t *testing.T) {
	t.Parallel()
	fragment := "print('standalone')"

	t.Run("no stubs for the language", func(t *testing.T) {
		t.Parallel()
		if got := AssembleSource(fragment, testProblem(), "rust"); got != fragment {
			t.Fatalf("expected the raw fragment, got %q", got)
		}
	})

	t.Run("scaffold absent from reference", func(t *testing.T) {
		t.Parallel()
		problem := &domain.Problem{
			StartCode:          []domain.CodeStub{{Language: "python", Code: "def solve():"}},
			ReferenceSolutions: []domain.CodeStub{{Language: "python", Code: "totally unrelated text"}},
		}
		if got := AssembleSource(fragment, problem, "python"); got != fragment {
			t.Fatalf("expected the raw fragment, got %q", got)
		}
	})
}
