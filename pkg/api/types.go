package api

// Difficulty levels recognized in queries and course records. Values are
// normalized to lowercase on output; matching is case-insensitive on input.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
	DifficultyAny          = "any"
)

// Course is the canonical course record returned to the widget regardless
// of data source. Every field the widget renders is always populated:
// missing source data is filled with deterministic defaults during
// normalization, never left absent.
type Course struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Slug                 string   `json:"slug,omitempty"`
	Description          string   `json:"description"`
	Instructors          []string `json:"instructors"`
	University           string   `json:"university"`
	DifficultyLevel      string   `json:"difficultyLevel"`
	Rating               float64  `json:"rating"`
	EnrollmentCount      int      `json:"enrollmentCount"`
	ThumbnailURL         string   `json:"thumbnailUrl,omitempty"`
	PreviewVideoURL      string   `json:"previewVideoUrl,omitempty"`
	Duration             string   `json:"duration"`
	Language             string   `json:"language"`
	Skills               []string `json:"skills"`
	CertificateAvailable bool     `json:"certificateAvailable"`
	CourseURL            string   `json:"courseUrl"`
}

// SearchQuery holds the arguments of the play_lecture_video tool.
// LearningGoal is the only required field.
type SearchQuery struct {
	LearningGoal string `json:"learningGoal"`
	CourseQuery  string `json:"courseQuery,omitempty"`
	Difficulty   string `json:"difficulty,omitempty"`
	Language     string `json:"language,omitempty"`
	MaxResults   int    `json:"maxResults,omitempty"`
}

// DefaultMaxResults is the effective result limit when a query does not
// specify maxResults.
const DefaultMaxResults = 5

// Limit returns the effective result limit for the query.
func (q *SearchQuery) Limit() int {
	if q.MaxResults > 0 {
		return q.MaxResults
	}
	return DefaultMaxResults
}

// Term returns the effective search term: courseQuery when present,
// otherwise learningGoal.
func (q *SearchQuery) Term() string {
	if q.CourseQuery != "" {
		return q.CourseQuery
	}
	return q.LearningGoal
}

// QueryEnvelope wraps one search result for the widget. It echoes the
// input query, carries the final course sequence, and flags whether the
// data came from the mock catalog. TotalResults always equals
// len(Courses). Lifetime is a single request/response cycle.
type QueryEnvelope struct {
	LearningGoal  string   `json:"learningGoal"`
	CourseQuery   string   `json:"courseQuery,omitempty"`
	Difficulty    string   `json:"difficulty,omitempty"`
	Language      string   `json:"language,omitempty"`
	Courses       []Course `json:"courses"`
	TotalResults  int      `json:"totalResults"`
	UsingMockData bool     `json:"usingMockData"`
}

// NewQueryEnvelope builds an envelope for the given query and final
// course sequence, keeping TotalResults consistent with len(courses).
func NewQueryEnvelope(q *SearchQuery, courses []Course, usingMockData bool) *QueryEnvelope {
	if courses == nil {
		courses = []Course{}
	}
	return &QueryEnvelope{
		LearningGoal:  q.LearningGoal,
		CourseQuery:   q.CourseQuery,
		Difficulty:    q.Difficulty,
		Language:      q.Language,
		Courses:       courses,
		TotalResults:  len(courses),
		UsingMockData: usingMockData,
	}
}
