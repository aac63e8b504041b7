package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openlecture/vorlesung/pkg/api"
)

// newCatalogServer returns an httptest server implementing both the token
// endpoint and a courses.v1 search endpoint serving the given payload.
func newCatalogServer(t *testing.T, payload any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth2/client_credentials/token":
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "tok-abc",
				"expires_in":   1800,
			})
		case "/api/courses.v1":
			if r.Header.Get("Authorization") != "Bearer tok-abc" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(payload)
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestSearchLinkedShape(t *testing.T) {
	payload := map[string]any{
		"elements": []map[string]any{
			{
				"id":            "c1",
				"name":          "Advanced Golang Patterns",
				"slug":          "advanced-golang",
				"description":   "Concurrency and more.",
				"photoUrl":      "https://img.example/c1.jpg",
				"workload":      "6 weeks",
				"partnerIds":    []string{"p1"},
				"instructorIds": []string{"i1", "i2"},
				"certificates":  []string{"VerifiedCert"},
			},
		},
		"linked": map[string]any{
			"partners.v1": []map[string]any{
				{"id": "p1", "name": "Gopher University"},
			},
			"instructors.v1": []map[string]any{
				{"id": "i1", "firstName": "Rob", "lastName": "Pike"},
				{"id": "i2", "firstName": "Ken", "lastName": "Thompson"},
			},
		},
	}
	srv := newCatalogServer(t, payload)
	defer srv.Close()

	client := NewClient(srv.URL, "k", "s", srv.Client())
	courses, ok := client.Search(context.Background(), "golang", 5, "")
	if !ok {
		t.Fatal("search should succeed")
	}
	if len(courses) != 1 {
		t.Fatalf("len = %d, want 1", len(courses))
	}

	c := courses[0]
	if c.University != "Gopher University" {
		t.Errorf("university = %q", c.University)
	}
	if len(c.Instructors) != 2 || c.Instructors[0] != "Rob Pike" || c.Instructors[1] != "Ken Thompson" {
		t.Errorf("instructors = %v", c.Instructors)
	}
	if c.DifficultyLevel != api.DifficultyAdvanced {
		t.Errorf("difficulty = %q, want advanced from name keyword", c.DifficultyLevel)
	}
	if !c.CertificateAvailable {
		t.Error("certificate should be available")
	}
	if c.CourseURL != "https://www.coursera.org/learn/advanced-golang" {
		t.Errorf("courseUrl = %q", c.CourseURL)
	}
	if c.PreviewVideoURL != "https://www.youtube.com/watch?v=advanced-golang" {
		t.Errorf("previewVideoUrl = %q", c.PreviewVideoURL)
	}
	if c.Duration != "6 weeks" {
		t.Errorf("duration = %q", c.Duration)
	}
	if c.Rating != defaultRating || c.EnrollmentCount != defaultEnrollment {
		t.Errorf("rating/enrollment = %v/%d, want deterministic baselines", c.Rating, c.EnrollmentCount)
	}
}

func TestSearchFlatShape(t *testing.T) {
	payload := map[string]any{
		"courses": []map[string]any{
			{"id": "c2", "name": "Professional Data Wrangling"},
		},
	}
	srv := newCatalogServer(t, payload)
	defer srv.Close()

	client := NewClient(srv.URL, "k", "s", srv.Client())
	courses, ok := client.Search(context.Background(), "data", 5, "")
	if !ok || len(courses) != 1 {
		t.Fatalf("search = %d courses, ok=%v", len(courses), ok)
	}

	c := courses[0]
	if c.Description != defaultDescription {
		t.Errorf("description = %q, want default", c.Description)
	}
	if c.University != defaultProvider {
		t.Errorf("university = %q, want default", c.University)
	}
	if len(c.Instructors) != 1 || c.Instructors[0] != defaultProvider {
		t.Errorf("instructors = %v, want generic default", c.Instructors)
	}
	if c.DifficultyLevel != api.DifficultyIntermediate {
		t.Errorf("difficulty = %q, want intermediate from 'professional'", c.DifficultyLevel)
	}
	if c.Duration != defaultDuration {
		t.Errorf("duration = %q, want default", c.Duration)
	}
	if c.Language != defaultLanguage {
		t.Errorf("language = %q, want default", c.Language)
	}
}

func TestSearchZeroElementsIsUnavailable(t *testing.T) {
	srv := newCatalogServer(t, map[string]any{"elements": []any{}})
	defer srv.Close()

	client := NewClient(srv.URL, "k", "s", srv.Client())
	if _, ok := client.Search(context.Background(), "nothing", 5, ""); ok {
		t.Error("zero elements should report unavailable, not an empty set")
	}
}

func TestSearchErrorsAreSoft(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth2/client_credentials/token" {
			json.NewEncoder(w).Encode(map[string]any{"access_token": "tok-abc", "expires_in": 1800})
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "k", "s", srv.Client())
	if _, ok := client.Search(context.Background(), "x", 5, ""); ok {
		t.Error("upstream 502 should report unavailable")
	}
}

func TestSearchWithoutCredentials(t *testing.T) {
	client := NewClient("http://unused.invalid", "", "", http.DefaultClient)
	if _, ok := client.Search(context.Background(), "x", 5, ""); ok {
		t.Error("client without credentials should never be available")
	}
}

func TestDeriveDifficultyKeywords(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Expert Systems in Prolog", api.DifficultyAdvanced},
		{"Advanced Calculus", api.DifficultyAdvanced},
		{"Intermediate Spanish", api.DifficultyIntermediate},
		{"Professional Certificate in IT", api.DifficultyIntermediate},
		{"Introduction to Philosophy", api.DifficultyBeginner},
		{"", api.DifficultyBeginner},
	}
	for _, tt := range tests {
		got := deriveDifficulty(rawCourse{Name: tt.name})
		if got != tt.want {
			t.Errorf("deriveDifficulty(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestDeriveDifficultyExplicitField(t *testing.T) {
	got := deriveDifficulty(rawCourse{Name: "Advanced Something", DifficultyLevel: "Intermediate"})
	if got != api.DifficultyIntermediate {
		t.Errorf("explicit field should win over name keywords, got %q", got)
	}
}
