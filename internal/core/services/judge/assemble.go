package judge

import (
	"strings"

	"gitlab.com/codeclash-2026.net/internal/domain"
)

// AssembleSource merges the user's code fragment into the problem's
// reference solution for the requested language. The first literal
// occurrence of the start scaffold inside the reference solution is replaced
// by the fragment. When the problem carries no scaffold/reference pair for
// the language, or the scaffold text does not occur in the reference, the
// fragment itself is the whole program and the user is expected to have
// supplied a complete one. No syntax validation happens here; a malformed
// program surfaces later as a backend compile or runtime failure.
func AssembleSource(fragment string, problem *domain.Problem, language string) string {
	start := problem.StartCodeFor(language)
	reference := problem.ReferenceSolutionFor(language)
	if start == nil || reference == nil {
		return fragment
	}
	if !strings.Contains(reference.Code, start.Code) {
		return fragment
	}
	return strings.Replace(reference.Code, start.Code, fragment, 1)
}
