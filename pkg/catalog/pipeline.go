package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/openlecture/vorlesung/pkg/api"
	"github.com/openlecture/vorlesung/pkg/observability"
)

// Searcher is the live-catalog dependency of the pipeline. The bool
// result reports availability, not emptiness: false means fall back to
// mock data.
type Searcher interface {
	Search(ctx context.Context, term string, limit int, language string) ([]api.Course, bool)
}

// Pipeline orchestrates one course search: validation, the live catalog
// attempt, the mock fallback, difficulty filtering, and truncation.
type Pipeline struct {
	client Searcher
	mock   MockProvider
}

// NewPipeline builds a pipeline over the given live searcher. A nil
// client disables the live path entirely (permanent mock mode).
func NewPipeline(client Searcher) *Pipeline {
	return &Pipeline{client: client}
}

// Search runs the full query pipeline and returns the result envelope.
//
// Validation failures return an *api.APIError before any network call.
// Upstream failures never surface as errors: the mock fallback
// guarantees a well-formed envelope. The only empty result is a
// difficulty filter that matched nothing, which is deliberately not
// backfilled, unlike the mock text-match step.
func (p *Pipeline) Search(ctx context.Context, q *api.SearchQuery) (*api.QueryEnvelope, error) {
	if err := api.ValidateSearchQuery(q); err != nil {
		return nil, err
	}

	limit := q.Limit()

	if p.client != nil {
		if courses, ok := p.client.Search(ctx, q.Term(), limit, q.Language); ok {
			observability.CatalogRequestsTotal.WithLabelValues("live", "ok").Inc()
			courses = filterDifficulty(courses, q.Difficulty)
			courses = truncate(courses, limit)
			return api.NewQueryEnvelope(q, courses, false), nil
		}
		observability.CatalogRequestsTotal.WithLabelValues("live", "unavailable").Inc()
	}

	courses := p.mock.FilterByGoal(q.LearningGoal)
	if len(courses) == 0 {
		// The mock path never returns zero courses for lack of a text
		// match; an empty post-difficulty set below is still possible.
		courses = p.mock.Courses()
	}
	courses = filterDifficulty(courses, q.Difficulty)
	courses = truncate(courses, limit)
	observability.CatalogRequestsTotal.WithLabelValues("mock", "ok").Inc()
	return api.NewQueryEnvelope(q, courses, true), nil
}

// Summary produces the user-visible text line accompanying an envelope.
func Summary(env *api.QueryEnvelope) string {
	plural := "s"
	if env.TotalResults == 1 {
		plural = ""
	}
	text := fmt.Sprintf("Found %d Coursera course%s related to %q.", env.TotalResults, plural, env.LearningGoal)
	if env.UsingMockData {
		text += " (Using mock data - set VORLESUNG_CATALOG_API_KEY for real results)"
	}
	return text
}

// filterDifficulty keeps courses whose difficultyLevel equals want,
// case-insensitively. Absent and "any" disable the filter. A
// non-matching value yields an empty set rather than an error.
func filterDifficulty(courses []api.Course, want string) []api.Course {
	if want == "" || want == api.DifficultyAny {
		return courses
	}
	out := courses[:0:0]
	for _, c := range courses {
		if strings.EqualFold(c.DifficultyLevel, want) {
			out = append(out, c)
		}
	}
	return out
}

func truncate(courses []api.Course, limit int) []api.Course {
	if len(courses) > limit {
		return courses[:limit]
	}
	return courses
}
