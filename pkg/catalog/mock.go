package catalog

import (
	"strings"

	"github.com/openlecture/vorlesung/pkg/api"
)

// mockCourses is the fixed fallback course set served whenever the live
// catalog is unavailable. The records are fully normalized; consumers
// never need to post-process them.
var mockCourses = []api.Course{
	{
		ID:                   "ml-stanford",
		Name:                 "Machine Learning Specialization",
		Description:          "Master the fundamentals of machine learning with Stanford University. Learn supervised learning, neural networks, and how to apply ML to real-world problems.",
		Instructors:          []string{"Andrew Ng"},
		University:           "Stanford University & DeepLearning.AI",
		DifficultyLevel:      api.DifficultyBeginner,
		Rating:               4.9,
		EnrollmentCount:      2500000,
		ThumbnailURL:         "https://d3njjcbhbojbot.cloudfront.net/api/utilities/v1/imageproxy/https://coursera-course-photos.s3.amazonaws.com/d4/2b0a60d4f511e8b27b9f3f8f4d3f70/Machine-Learning-Andrew-Ng-Course-1-Image-3.jpg?auto=format&w=800&h=600",
		PreviewVideoURL:      "https://www.youtube.com/watch?v=Mu0QJHPd-Wo",
		Duration:             "3 months (10 hrs/week)",
		Language:             "English",
		Skills:               []string{"Neural Networks", "Deep Learning", "Supervised Learning", "Unsupervised Learning"},
		CertificateAvailable: true,
		CourseURL:            "https://www.coursera.org/specializations/machine-learning-introduction",
	},
	{
		ID:                   "python-umich",
		Name:                 "Python for Everybody Specialization",
		Description:          "Learn to program and analyze data with Python. Develop programs to gather, clean, analyze, and visualize data.",
		Instructors:          []string{"Charles Severance"},
		University:           "University of Michigan",
		DifficultyLevel:      api.DifficultyBeginner,
		Rating:               4.8,
		EnrollmentCount:      1800000,
		ThumbnailURL:         "https://d3njjcbhbojbot.cloudfront.net/api/utilities/v1/imageproxy/https://coursera-course-photos.s3.amazonaws.com/3f/6f02e0b08011e8b56ee7c01b4e2d0f/python.png?auto=format&w=800&h=600",
		PreviewVideoURL:      "https://www.youtube.com/watch?v=8DvywoWv6fI",
		Duration:             "8 months (3 hrs/week)",
		Language:             "English",
		Skills:               []string{"Python Programming", "Data Analysis", "Web Scraping", "Database Management"},
		CertificateAvailable: true,
		CourseURL:            "https://www.coursera.org/specializations/python",
	},
	{
		ID:                   "ds-jhu",
		Name:                 "Data Science Specialization",
		Description:          "Launch your career in data science. Master data science fundamentals and the entire data science pipeline.",
		Instructors:          []string{"Jeff Leek", "Roger Peng", "Brian Caffo"},
		University:           "Johns Hopkins University",
		DifficultyLevel:      api.DifficultyIntermediate,
		Rating:               4.6,
		EnrollmentCount:      950000,
		ThumbnailURL:         "https://d3njjcbhbojbot.cloudfront.net/api/utilities/v1/imageproxy/https://coursera-course-photos.s3.amazonaws.com/1f/3f90e0d7a511e7a8f6a3c6a4b3a8f4/Data-Science.png?auto=format&w=800&h=600",
		PreviewVideoURL:      "https://www.youtube.com/watch?v=RBSUwFGa6Fk",
		Duration:             "11 months (7 hrs/week)",
		Language:             "English",
		Skills:               []string{"R Programming", "Statistical Analysis", "Machine Learning", "Data Visualization"},
		CertificateAvailable: true,
		CourseURL:            "https://www.coursera.org/specializations/jhu-data-science",
	},
	{
		ID:                   "web-dev-umich",
		Name:                 "Web Design for Everybody",
		Description:          "Learn to Design and Create Websites. Build a responsive and accessible web portfolio using HTML5, CSS3, and JavaScript.",
		Instructors:          []string{"Colleen van Lent"},
		University:           "University of Michigan",
		DifficultyLevel:      api.DifficultyBeginner,
		Rating:               4.7,
		EnrollmentCount:      620000,
		ThumbnailURL:         "https://d3njjcbhbojbot.cloudfront.net/api/utilities/v1/imageproxy/https://coursera-course-photos.s3.amazonaws.com/f9/e6a5f0c72611e8b1c7a3f4f8b3a8f4/Web-Design.jpg?auto=format&w=800&h=600",
		PreviewVideoURL:      "https://www.youtube.com/watch?v=Z3cOfqz7V4g",
		Duration:             "6 months (4 hrs/week)",
		Language:             "English",
		Skills:               []string{"HTML5", "CSS3", "JavaScript", "Responsive Design"},
		CertificateAvailable: true,
		CourseURL:            "https://www.coursera.org/specializations/web-design",
	},
	{
		ID:                   "deep-learning-andrew",
		Name:                 "Deep Learning Specialization",
		Description:          "Become a Machine Learning expert. Master the fundamentals of deep learning and break into AI.",
		Instructors:          []string{"Andrew Ng"},
		University:           "DeepLearning.AI",
		DifficultyLevel:      api.DifficultyIntermediate,
		Rating:               4.9,
		EnrollmentCount:      1200000,
		ThumbnailURL:         "https://d3njjcbhbojbot.cloudfront.net/api/utilities/v1/imageproxy/https://coursera-course-photos.s3.amazonaws.com/c7/8e4f50c72611e8b1c7a3f4f8b3a8f4/DLS-Course.jpg?auto=format&w=800&h=600",
		PreviewVideoURL:      "https://www.youtube.com/watch?v=CS4cs9xVecg",
		Duration:             "5 months (11 hrs/week)",
		Language:             "English",
		Skills:               []string{"Neural Networks", "TensorFlow", "Convolutional Networks", "Sequence Models"},
		CertificateAvailable: true,
		CourseURL:            "https://www.coursera.org/specializations/deep-learning",
	},
}

// MockProvider serves the fixed fallback course set.
type MockProvider struct{}

// Courses returns a copy of the full mock set.
func (MockProvider) Courses() []api.Course {
	out := make([]api.Course, len(mockCourses))
	copy(out, mockCourses)
	return out
}

// FilterByGoal returns the mock courses whose name, description, or any
// skill contains goal as a case-insensitive substring. The result may be
// empty; the pipeline decides whether to fall back to the full set.
func (MockProvider) FilterByGoal(goal string) []api.Course {
	needle := strings.ToLower(goal)
	var out []api.Course
	for _, c := range mockCourses {
		if matchesGoal(c, needle) {
			out = append(out, c)
		}
	}
	return out
}

func matchesGoal(c api.Course, needle string) bool {
	if strings.Contains(strings.ToLower(c.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(c.Description), needle) {
		return true
	}
	for _, s := range c.Skills {
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}
