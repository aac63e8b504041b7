package api

import (
	"fmt"
	"strings"
)

// Result-count bounds for SearchQuery.MaxResults.
const (
	MinResults = 1
	MaxResults = 10
)

// ValidateSearchQuery checks a SearchQuery for validity and normalizes the
// difficulty field to lowercase. It returns an *APIError describing the
// first validation failure, or nil if the query is valid. No network call
// is made before validation succeeds.
func ValidateSearchQuery(q *SearchQuery) *APIError {
	if strings.TrimSpace(q.LearningGoal) == "" {
		return NewValidationError("learningGoal", "learningGoal is required")
	}

	if q.Difficulty != "" {
		d := strings.ToLower(q.Difficulty)
		switch d {
		case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyAny:
			q.Difficulty = d
		default:
			return NewValidationError("difficulty",
				fmt.Sprintf("difficulty must be one of 'beginner', 'intermediate', 'advanced', 'any', got %q", q.Difficulty))
		}
	}

	if q.MaxResults != 0 && (q.MaxResults < MinResults || q.MaxResults > MaxResults) {
		return NewValidationError("maxResults",
			fmt.Sprintf("maxResults must be between %d and %d", MinResults, MaxResults))
	}

	return nil
}

// NormalizeDifficulty maps a free-form difficulty string onto the
// canonical lowercase levels. Unrecognized values fall back to beginner,
// matching the normalization applied to upstream course records.
func NormalizeDifficulty(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case DifficultyAdvanced:
		return DifficultyAdvanced
	case DifficultyIntermediate:
		return DifficultyIntermediate
	default:
		return DifficultyBeginner
	}
}
