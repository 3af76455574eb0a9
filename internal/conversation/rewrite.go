package conversation

import (
	"fmt"
	"strings"
)

var followUpKeywords = []string{
	"shorter", "longer", "faster", "slower",
	"healthier", "less healthy", "more calories", "fewer calories",
	"with chicken", "with beef", "with fish", "with vegetables",
	"without", "instead", "different", "another",
	"simpler", "easier", "harder",
	"vegan", "vegetarian", "gluten-free",
}

// maxFollowUpWords is the word count at or below which any input is treated
// as a refinement of the previous query.
const maxFollowUpWords = 3

// IsFollowUp reports whether input reads as a refinement of an earlier
// query rather than a new question.
func IsFollowUp(input string) bool {
	lower := strings.ToLower(input)
	for _, kw := range followUpKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return len(strings.Fields(input)) <= maxFollowUpWords
}

// Rewrite merges a follow-up into the previous query. Rules are checked in
// order and the first match wins.
func Rewrite(previous, followUp string) string {
	lower := strings.ToLower(followUp)
	switch {
	case strings.Contains(lower, "instead") || strings.Contains(lower, "with"):
		return fmt.Sprintf("%s, but %s", previous, followUp)
	case containsAny(lower, "shorter", "faster", "quicker"):
		return previous + " that takes less time"
	case containsAny(lower, "longer", "slower"):
		return previous + " that takes more time"
	case containsAny(lower, "healthier", "healthy"):
		return previous + " that is healthier"
	case strings.Contains(lower, "calorie"):
		if containsAny(lower, "fewer", "less", "low") {
			return previous + " with fewer calories"
		}
		return previous + " with more calories"
	default:
		return fmt.Sprintf("%s, %s", previous, followUp)
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
