package service

import (
	"sort"
	"strings"

	"github.com/guttosm/catalog-service/internal/domain/model"
)

// Sort keys accepted by CourseFilter.Sort.
const (
	SortTitle      = "title"
	SortDifficulty = "difficulty"
	SortDuration   = "duration"
	SortRating     = "rating"
)

// CourseFilter narrows and orders a course list. Zero values disable each
// criterion.
type CourseFilter struct {
	CategoryID string
	Text       string
	Difficulty model.Difficulty
	Sort       string
	Limit      int
}

// ApplyFilter returns the courses matching f in a new slice. The input is
// never modified.
func ApplyFilter(courses []model.Course, f CourseFilter) []model.Course {
	out := make([]model.Course, 0, len(courses))
	for _, c := range courses {
		if f.CategoryID != "" && c.CategoryID != f.CategoryID {
			continue
		}
		if f.Difficulty != "" && c.Difficulty != f.Difficulty {
			continue
		}
		if !c.Matches(f.Text) {
			continue
		}
		out = append(out, c)
	}

	SortCourses(out, f.Sort)

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

// SortCourses orders courses in place by key. Title is byte-wise
// lexicographic, difficulty ascends beginner to advanced, duration
// ascends and rating descends. Unknown keys leave the order unchanged.
// Ties keep their original relative order.
func SortCourses(courses []model.Course, key string) {
	var less func(a, b model.Course) bool
	switch strings.ToLower(key) {
	case SortTitle:
		less = func(a, b model.Course) bool {
			return a.Title < b.Title
		}
	case SortDifficulty:
		less = func(a, b model.Course) bool {
			return a.Difficulty.Rank() < b.Difficulty.Rank()
		}
	case SortDuration:
		less = func(a, b model.Course) bool {
			return a.DurationMinutes < b.DurationMinutes
		}
	case SortRating:
		less = func(a, b model.Course) bool {
			return a.Rating > b.Rating
		}
	default:
		return
	}

	sort.SliceStable(courses, func(i, j int) bool {
		return less(courses[i], courses[j])
	})
}
