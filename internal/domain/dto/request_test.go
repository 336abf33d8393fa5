package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCourseQuery_Validate(t *testing.T) {
	tests := []struct {
		name          string
		query         CourseQuery
		expectedError error
		expected      CourseQuery
	}{
		{
			name:     "empty query",
			query:    CourseQuery{},
			expected: CourseQuery{},
		},
		{
			name:     "normalizes difficulty and sort",
			query:    CourseQuery{Difficulty: " Beginner ", Sort: "RATING"},
			expected: CourseQuery{Difficulty: "beginner", Sort: "rating"},
		},
		{
			name:          "negative limit",
			query:         CourseQuery{Limit: -1},
			expectedError: ErrInvalidLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, tt.query)
		})
	}
}

func TestPublishEventRequest_Validate(t *testing.T) {
	tests := []struct {
		name          string
		request       PublishEventRequest
		expectedError error
	}{
		{
			name:    "course selected",
			request: PublishEventRequest{Event: "COURSE_SELECTED", CourseID: "algo-101"},
		},
		{
			name:    "category selected lower case",
			request: PublishEventRequest{Event: "category_selected", CategoryID: "web"},
		},
		{
			name:          "course selected without id",
			request:       PublishEventRequest{Event: "COURSE_SELECTED"},
			expectedError: ErrMissingCourseID,
		},
		{
			name:          "category selected without id",
			request:       PublishEventRequest{Event: "CATEGORY_SELECTED", CourseID: "x"},
			expectedError: ErrMissingCategoryID,
		},
		{
			name:          "data-layer events are not accepted",
			request:       PublishEventRequest{Event: "DATA_LOADED"},
			expectedError: ErrUnsupportedEvent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestActivityQuery_Validate(t *testing.T) {
	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	until := since.Add(24 * time.Hour)

	tests := []struct {
		name          string
		query         ActivityQuery
		expectedError error
		expected      ActivityQuery
	}{
		{
			name:     "empty query",
			query:    ActivityQuery{},
			expected: ActivityQuery{},
		},
		{
			name:     "normalizes event and level",
			query:    ActivityQuery{Event: " course_selected ", Level: "WARN"},
			expected: ActivityQuery{Event: "COURSE_SELECTED", Level: "warn"},
		},
		{
			name:     "ordered time range",
			query:    ActivityQuery{Since: since, Until: until},
			expected: ActivityQuery{Since: since, Until: until},
		},
		{
			name:          "inverted time range",
			query:         ActivityQuery{Since: until, Until: since},
			expectedError: ErrInvalidTimeRange,
		},
		{
			name:          "negative limit",
			query:         ActivityQuery{Limit: -1},
			expectedError: ErrInvalidLimit,
		},
		{
			name:          "negative skip",
			query:         ActivityQuery{Skip: -5},
			expectedError: ErrInvalidSkip,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, tt.query)
		})
	}
}

func TestActivityTopQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		query   ActivityTopQuery
		want    string
		wantErr error
	}{
		{name: "defaults to course selections", query: ActivityTopQuery{}, want: "COURSE_SELECTED"},
		{name: "normalizes case", query: ActivityTopQuery{Event: " category_selected"}, want: "CATEGORY_SELECTED"},
		{name: "rejects data events", query: ActivityTopQuery{Event: "DATA_LOADED"}, wantErr: ErrUnsupportedEvent},
		{name: "rejects negative limit", query: ActivityTopQuery{Limit: -2}, wantErr: ErrInvalidLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, tt.query.Event)
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "limit", Message: "must not be negative"}
	assert.Equal(t, "limit: must not be negative", err.Error())
}
