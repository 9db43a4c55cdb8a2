package judge

import "strings"

// languageIDs is the fixed mapping from language name to the execution
// backend's language identifier. It must match the backend's enumeration
// exactly; an unknown language is rejected before any external call.
var languageIDs = map[string]int{
	"c":          50,
	"c++":        54,
	"go":         60,
	"java":       62,
	"javascript": 63,
	"python":     71,
	"rust":       73,
}

// NormalizeLanguage folds user-facing aliases onto canonical names.
func NormalizeLanguage(language string) string {
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "cpp" {
		return "c++"
	}
	return language
}

// LanguageID resolves a normalized language name to the backend identifier.
func LanguageID(language string) (int, bool) {
	id, ok := languageIDs[NormalizeLanguage(language)]
	return id, ok
}
