package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/openlecture/vorlesung/pkg/api"
	"github.com/openlecture/vorlesung/pkg/debug"
)

// searchFields and searchIncludes ask the catalog API for the course
// fields the widget renders plus the partner/instructor side-tables
// needed to resolve id references.
const (
	searchFields = "name,slug,description,photoUrl,workload,certificates,promoVideo," +
		"primaryLanguages,partnerIds,instructorIds,domainTypes," +
		"partners.v1(name),instructors.v1(firstName,lastName),certificates.v1(name)"
	searchIncludes = "partners.v1,instructors.v1,certificates.v1"
)

// Client issues search requests against the course-catalog API and
// normalizes the response into canonical course records.
type Client struct {
	apiBase string
	http    *http.Client
	tokens  *tokenSource
}

// NewClient builds a catalog client for the given API base URL and
// credentials. Empty credentials are allowed; the client then always
// reports unavailable and the pipeline stays on mock data.
func NewClient(apiBase, key, secret string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		apiBase: apiBase,
		http:    httpClient,
		tokens:  newTokenSource(apiBase, key, secret, httpClient),
	}
}

// searchResponse covers both observed payload shapes: a flat courses/
// elements array, and a paginated elements array with linked side-tables
// keyed "partners.v1" / "instructors.v1".
type searchResponse struct {
	Courses  []rawCourse                  `json:"courses"`
	Elements []rawCourse                  `json:"elements"`
	Linked   map[string][]json.RawMessage `json:"linked"`
}

// rawCourse is one course as the catalog API returns it. Most fields are
// optional; normalization fills the gaps.
type rawCourse struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Slug             string   `json:"slug"`
	Description      string   `json:"description"`
	PhotoURL         string   `json:"photoUrl"`
	Workload         string   `json:"workload"`
	DifficultyLevel  string   `json:"difficultyLevel"`
	PartnerIDs       []string `json:"partnerIds"`
	InstructorIDs    []string `json:"instructorIds"`
	PrimaryLanguages []string `json:"primaryLanguages"`
	DomainTypes      []struct {
		DomainID    string `json:"domainId"`
		SubdomainID string `json:"subdomainId"`
	} `json:"domainTypes"`
	Certificates []string `json:"certificates"`
	PromoVideo   *struct {
		URL string `json:"url"`
	} `json:"promoVideo"`
}

type linkedPartner struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type linkedInstructor struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Search queries the catalog for courses matching term. The bool result
// distinguishes "data available" from "unavailable": a failed request, a
// missing token, and a zero-element response all return ok=false so the
// caller can fall back to mock data. An empty-but-present result never
// occurs (zero elements is unavailable).
func (c *Client) Search(ctx context.Context, term string, limit int, language string) ([]api.Course, bool) {
	token, ok := c.tokens.Token(ctx)
	if !ok {
		return nil, false
	}

	q := url.Values{
		"q":        {"search"},
		"query":    {term},
		"limit":    {strconv.Itoa(limit)},
		"fields":   {searchFields},
		"includes": {searchIncludes},
	}
	if language != "" {
		q.Set("languages", language)
	}
	endpoint := c.apiBase + "/api/courses.v1?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		debug.Log("catalog", "search request failed", "error", err)
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		debug.Log("catalog", "search returned non-success status", "status", resp.StatusCode)
		return nil, false
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		debug.Log("catalog", "decoding search response failed", "error", err)
		return nil, false
	}

	raw := payload.Elements
	if len(raw) == 0 {
		raw = payload.Courses
	}
	if len(raw) == 0 {
		return nil, false
	}

	partners, instructors := decodeLinked(payload.Linked)
	courses := make([]api.Course, 0, len(raw))
	for _, rc := range raw {
		courses = append(courses, normalizeCourse(rc, partners, instructors))
	}
	debug.Log("catalog", "search succeeded", "term", term, "results", len(courses))
	return courses, true
}

// decodeLinked resolves the partners.v1 and instructors.v1 side-tables
// into id-keyed lookup maps. Entries that fail to decode are skipped.
func decodeLinked(linked map[string][]json.RawMessage) (map[string]linkedPartner, map[string]linkedInstructor) {
	partners := make(map[string]linkedPartner)
	instructors := make(map[string]linkedInstructor)

	for _, raw := range linked["partners.v1"] {
		var p linkedPartner
		if err := json.Unmarshal(raw, &p); err == nil && p.ID != "" {
			partners[p.ID] = p
		}
	}
	for _, raw := range linked["instructors.v1"] {
		var in linkedInstructor
		if err := json.Unmarshal(raw, &in); err == nil && in.ID != "" {
			instructors[in.ID] = in
		}
	}
	return partners, instructors
}
