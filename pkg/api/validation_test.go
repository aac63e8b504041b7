package api

import (
	"strings"
	"testing"
)

func TestValidateSearchQueryValid(t *testing.T) {
	cases := []SearchQuery{
		{LearningGoal: "machine learning"},
		{LearningGoal: "python", Difficulty: "beginner"},
		{LearningGoal: "python", Difficulty: "ANY"},
		{LearningGoal: "go", CourseQuery: "golang concurrency", Language: "English", MaxResults: 10},
		{LearningGoal: "go", MaxResults: 1},
	}

	for _, q := range cases {
		q := q
		if err := ValidateSearchQuery(&q); err != nil {
			t.Errorf("expected %+v to be valid, got %v", q, err)
		}
	}
}

func TestValidateSearchQueryMissingGoal(t *testing.T) {
	for _, goal := range []string{"", "   "} {
		q := SearchQuery{LearningGoal: goal}
		err := ValidateSearchQuery(&q)
		if err == nil {
			t.Fatalf("expected validation error for goal %q", goal)
		}
		if err.Type != ErrorTypeInvalidRequest {
			t.Errorf("expected invalid_request, got %s", err.Type)
		}
		if err.Param != "learningGoal" {
			t.Errorf("expected param learningGoal, got %q", err.Param)
		}
	}
}

func TestValidateSearchQueryBadDifficulty(t *testing.T) {
	q := SearchQuery{LearningGoal: "x", Difficulty: "expert"}
	err := ValidateSearchQuery(&q)
	if err == nil {
		t.Fatal("expected validation error for difficulty 'expert'")
	}
	if err.Param != "difficulty" {
		t.Errorf("expected param difficulty, got %q", err.Param)
	}
	if !strings.Contains(err.Message, "expert") {
		t.Errorf("expected message to name the rejected value, got %q", err.Message)
	}
}

func TestValidateSearchQueryNormalizesDifficulty(t *testing.T) {
	q := SearchQuery{LearningGoal: "x", Difficulty: "Advanced"}
	if err := ValidateSearchQuery(&q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Difficulty != DifficultyAdvanced {
		t.Errorf("expected normalized difficulty %q, got %q", DifficultyAdvanced, q.Difficulty)
	}
}

func TestValidateSearchQueryMaxResultsBounds(t *testing.T) {
	for _, n := range []int{-1, 11, 100} {
		q := SearchQuery{LearningGoal: "x", MaxResults: n}
		err := ValidateSearchQuery(&q)
		if err == nil {
			t.Errorf("expected validation error for maxResults=%d", n)
			continue
		}
		if err.Param != "maxResults" {
			t.Errorf("expected param maxResults, got %q", err.Param)
		}
	}
}

func TestNormalizeDifficulty(t *testing.T) {
	cases := map[string]string{
		"Advanced":     DifficultyAdvanced,
		"INTERMEDIATE": DifficultyIntermediate,
		"Beginner":     DifficultyBeginner,
		"":             DifficultyBeginner,
		"unheard-of":   DifficultyBeginner,
	}
	for in, want := range cases {
		if got := NormalizeDifficulty(in); got != want {
			t.Errorf("NormalizeDifficulty(%q) = %q, want %q", in, got, want)
		}
	}
}
