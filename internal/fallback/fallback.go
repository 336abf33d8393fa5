// Package fallback provides the built-in dataset served when the remote
// content source is unreachable. The dataset is embedded at build time,
// parsed once and never modified; accessors return copies.
package fallback

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/guttosm/catalog-service/internal/domain/model"
)

//go:embed data.json
var embedded []byte

// Dataset is an immutable set of catalog content.
type Dataset struct {
	categories []model.Category
	courses    []model.Course
	homepage   model.HomepageConfig
	story      model.Story
}

type document struct {
	Categories []model.Category     `json:"categories"`
	Courses    []model.Course       `json:"courses"`
	Homepage   model.HomepageConfig `json:"homepage"`
	Story      model.Story          `json:"story"`
}

var (
	defaultOnce    sync.Once
	defaultDataset *Dataset
	defaultErr     error
)

// Default returns the embedded dataset, parsing it on first use.
func Default() (*Dataset, error) {
	defaultOnce.Do(func() {
		defaultDataset, defaultErr = Parse(embedded)
	})
	return defaultDataset, defaultErr
}

// Parse builds a Dataset from a JSON document. Collections must be non-empty.
func Parse(data []byte) (*Dataset, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse fallback dataset: %w", err)
	}
	if len(doc.Categories) == 0 {
		return nil, fmt.Errorf("fallback dataset has no categories")
	}
	if len(doc.Courses) == 0 {
		return nil, fmt.Errorf("fallback dataset has no courses")
	}
	return &Dataset{
		categories: doc.Categories,
		courses:    doc.Courses,
		homepage:   doc.Homepage,
		story:      doc.Story,
	}, nil
}

// Categories returns a copy of the fallback categories.
func (d *Dataset) Categories() []model.Category {
	return model.CloneCategories(d.categories)
}

// Courses returns a deep copy of the fallback courses.
func (d *Dataset) Courses() []model.Course {
	return model.CloneCourses(d.courses)
}

// Homepage returns a copy of the fallback homepage configuration.
func (d *Dataset) Homepage() model.HomepageConfig {
	return d.homepage.Clone()
}

// Story returns a copy of the fallback story.
func (d *Dataset) Story() model.Story {
	return d.story.Clone()
}
