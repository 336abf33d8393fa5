package model

import (
	"strings"
)

// Difficulty is a course difficulty level.
type Difficulty string

// Difficulty levels in ascending order.
const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Rank orders difficulties: beginner < intermediate < advanced.
// Unknown values sort after every known level.
func (d Difficulty) Rank() int {
	switch Difficulty(strings.ToLower(string(d))) {
	case DifficultyBeginner:
		return 0
	case DifficultyIntermediate:
		return 1
	case DifficultyAdvanced:
		return 2
	default:
		return 3
	}
}

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	return d.Rank() < 3
}

// Category groups courses by topic.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Color       string `json:"color,omitempty"`
	CourseCount int    `json:"courseCount,omitempty"`
}

// Course is a single catalog entry.
type Course struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	CategoryID      string     `json:"categoryId"`
	Difficulty      Difficulty `json:"difficulty"`
	DurationMinutes int        `json:"duration"`
	Rating          float64    `json:"rating"`
	Students        int        `json:"students,omitempty"`
	Tags            []string   `json:"tags"`
	Instructor      string     `json:"instructor,omitempty"`
	ThumbnailURL    string     `json:"thumbnail,omitempty"`
	VideoURL        string     `json:"videoUrl,omitempty"`
	Featured        bool       `json:"featured,omitempty"`
}

// Clone returns a deep copy of the course.
func (c Course) Clone() Course {
	if c.Tags != nil {
		c.Tags = append([]string(nil), c.Tags...)
	}
	return c
}

// CloneCourses returns a deep copy of courses. A nil input stays nil.
func CloneCourses(courses []Course) []Course {
	if courses == nil {
		return nil
	}
	out := make([]Course, len(courses))
	for i, c := range courses {
		out[i] = c.Clone()
	}
	return out
}

// CloneCategories returns a copy of categories. A nil input stays nil.
func CloneCategories(categories []Category) []Category {
	if categories == nil {
		return nil
	}
	return append([]Category(nil), categories...)
}

// Matches reports whether text occurs case-insensitively in the title,
// description or any tag. Empty text matches everything.
func (c Course) Matches(text string) bool {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(c.Title), needle) ||
		strings.Contains(strings.ToLower(c.Description), needle) {
		return true
	}
	for _, tag := range c.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// Lesson is one unit of course content.
type Lesson struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	DurationMinutes int    `json:"duration,omitempty"`
	VideoURL        string `json:"videoUrl,omitempty"`
	Summary         string `json:"summary,omitempty"`
}

// CourseContent is the detailed syllabus of a course.
type CourseContent struct {
	CourseID string   `json:"courseId"`
	Overview string   `json:"overview,omitempty"`
	Lessons  []Lesson `json:"lessons"`
}

// Clone returns a deep copy of the content.
func (c CourseContent) Clone() CourseContent {
	if c.Lessons != nil {
		c.Lessons = append([]Lesson(nil), c.Lessons...)
	}
	return c
}

// Chapter is a section of the story page.
type Chapter struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
	Image string `json:"image,omitempty"`
}

// Story is the narrative content shown on the story page.
type Story struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle,omitempty"`
	Chapters []Chapter `json:"chapters"`
}

// Clone returns a deep copy of the story.
func (s Story) Clone() Story {
	if s.Chapters != nil {
		s.Chapters = append([]Chapter(nil), s.Chapters...)
	}
	return s
}

// HomepageConfig drives the landing page layout.
type HomepageConfig struct {
	HeroTitle           string   `json:"heroTitle"`
	HeroSubtitle        string   `json:"heroSubtitle,omitempty"`
	FeaturedCourseIDs   []string `json:"featuredCourses"`
	FeaturedCategoryIDs []string `json:"featuredCategories,omitempty"`
	Announcement        string   `json:"announcement,omitempty"`
}

// Clone returns a deep copy of the homepage configuration.
func (h HomepageConfig) Clone() HomepageConfig {
	if h.FeaturedCourseIDs != nil {
		h.FeaturedCourseIDs = append([]string(nil), h.FeaturedCourseIDs...)
	}
	if h.FeaturedCategoryIDs != nil {
		h.FeaturedCategoryIDs = append([]string(nil), h.FeaturedCategoryIDs...)
	}
	return h
}
