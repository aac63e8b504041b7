// Command mock-catalog runs a deterministic course-catalog API for
// development and integration testing. It speaks the same wire shape as
// the real catalog: an OAuth client-credentials token endpoint and a
// course search endpoint returning elements with partner and instructor
// side-tables.
//
// Configuration:
//
//	MOCK_CATALOG_PORT - Listen port (default: 9090)
//
// Any client id and secret are accepted, as long as both are present.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"
)

func main() {
	port := os.Getenv("MOCK_CATALOG_PORT")
	if port == "" {
		port = "9090"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth2/client_credentials/token", handleToken)
	mux.HandleFunc("GET /api/courses.v1", handleSearch)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	srv := &http.Server{Addr: ":" + port, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("mock catalog starting", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("mock catalog failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("mock catalog shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
}

func handleToken(w http.ResponseWriter, r *http.Request) {
	id, secret, ok := r.BasicAuth()
	if !ok || id == "" || secret == "" {
		http.Error(w, `{"error":"invalid_client"}`, http.StatusUnauthorized)
		return
	}
	if err := r.ParseForm(); err != nil || r.PostForm.Get("grant_type") != "client_credentials" {
		http.Error(w, `{"error":"unsupported_grant_type"}`, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"access_token": "mock-token-" + id,
		"token_type":   "Bearer",
		"expires_in":   1800,
	})
}

// handleSearch filters the fixed course set by substring match over name
// and description, honoring the limit parameter.
func handleSearch(w http.ResponseWriter, r *http.Request) {
	if auth := r.Header.Get("Authorization"); !strings.HasPrefix(auth, "Bearer ") {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}

	query := strings.ToLower(r.URL.Query().Get("query"))
	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	var elements []wireCourse
	for _, c := range wireCourses {
		if query == "" ||
			strings.Contains(strings.ToLower(c.Name), query) ||
			strings.Contains(strings.ToLower(c.Description), query) {
			elements = append(elements, c)
		}
		if len(elements) == limit {
			break
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"elements": elements,
		"linked": map[string]any{
			"partners.v1":    wirePartners,
			"instructors.v1": wireInstructors,
		},
		"paging": map[string]any{"total": len(elements)},
	})
}

// --- Wire types ---

type wireCourse struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Slug             string     `json:"slug"`
	Description      string     `json:"description"`
	PhotoURL         string     `json:"photoUrl,omitempty"`
	Workload         string     `json:"workload,omitempty"`
	DifficultyLevel  string     `json:"difficultyLevel,omitempty"`
	PartnerIDs       []string   `json:"partnerIds,omitempty"`
	InstructorIDs    []string   `json:"instructorIds,omitempty"`
	PrimaryLanguages []string   `json:"primaryLanguages,omitempty"`
	PromoVideo       *wireVideo `json:"promoVideo,omitempty"`
}

type wireVideo struct {
	URL string `json:"url"`
}

type wirePartner struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type wireInstructor struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// --- Fixed data set ---

var wirePartners = []wirePartner{
	{ID: "p-stanford", Name: "Stanford University"},
	{ID: "p-tum", Name: "Technical University of Munich"},
}

var wireInstructors = []wireInstructor{
	{ID: "i-ng", FirstName: "Andrew", LastName: "Ng"},
	{ID: "i-klein", FirstName: "Laura", LastName: "Klein"},
}

var wireCourses = []wireCourse{
	{
		ID:               "mock-ml",
		Name:             "Machine Learning Foundations",
		Slug:             "machine-learning-foundations",
		Description:      "Supervised and unsupervised learning from first principles.",
		Workload:         "6-8 hours/week",
		DifficultyLevel:  "Beginner",
		PartnerIDs:       []string{"p-stanford"},
		InstructorIDs:    []string{"i-ng"},
		PrimaryLanguages: []string{"en"},
		PromoVideo:       &wireVideo{URL: "https://www.youtube.com/watch?v=mock-ml-intro"},
	},
	{
		ID:               "mock-dl",
		Name:             "Advanced Deep Learning",
		Slug:             "advanced-deep-learning",
		Description:      "Neural architectures, optimization, and regularization in depth.",
		DifficultyLevel:  "Advanced",
		PartnerIDs:       []string{"p-stanford"},
		InstructorIDs:    []string{"i-ng"},
		PrimaryLanguages: []string{"en"},
	},
	{
		ID:               "mock-eng",
		Name:             "Software Engineering in Practice",
		Slug:             "software-engineering-in-practice",
		Description:      "Design, testing, and delivery of production software systems.",
		Workload:         "4-6 hours/week",
		DifficultyLevel:  "Intermediate",
		PartnerIDs:       []string{"p-tum"},
		InstructorIDs:    []string{"i-klein"},
		PrimaryLanguages: []string{"en"},
	},
	{
		// Deliberately sparse: exercises the normalization defaults.
		ID:          "mock-sparse",
		Name:        "",
		Slug:        "",
		Description: "",
	},
}
