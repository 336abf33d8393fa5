// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/catalog-service/internal/domain/model"
	"github.com/guttosm/catalog-service/internal/service"
	"github.com/guttosm/catalog-service/internal/service/cache"
)

type MockContentService struct {
	mock.Mock
}

// NewMockContentService creates a mock that asserts its expectations when the test ends.
func NewMockContentService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockContentService {
	m := &MockContentService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockContentService) GetCategories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockContentService) GetCategoryByID(ctx context.Context, id string) (model.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Category), args.Error(1)
}

func (m *MockContentService) GetCourses(ctx context.Context) ([]model.Course, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Course), args.Error(1)
}

func (m *MockContentService) GetCourseByID(ctx context.Context, id string) (model.Course, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Course), args.Error(1)
}

func (m *MockContentService) GetCoursesByCategory(ctx context.Context, categoryID string) ([]model.Course, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Course), args.Error(1)
}

func (m *MockContentService) SearchCourses(ctx context.Context, text string) ([]model.Course, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Course), args.Error(1)
}

func (m *MockContentService) FilterCourses(ctx context.Context, f service.CourseFilter) ([]model.Course, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Course), args.Error(1)
}

func (m *MockContentService) GetFeaturedCourses(ctx context.Context) ([]model.Course, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Course), args.Error(1)
}

func (m *MockContentService) GetHomepage(ctx context.Context) (model.HomepageConfig, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.HomepageConfig), args.Error(1)
}

func (m *MockContentService) GetStory(ctx context.Context) (model.Story, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.Story), args.Error(1)
}

func (m *MockContentService) GetCourseContent(ctx context.Context, courseID string) (model.CourseContent, error) {
	args := m.Called(ctx, courseID)
	return args.Get(0).(model.CourseContent), args.Error(1)
}

func (m *MockContentService) ClearCache(ctx context.Context) int {
	args := m.Called(ctx)
	return args.Int(0)
}

func (m *MockContentService) InvalidateKey(ctx context.Context, key string) bool {
	args := m.Called(ctx, key)
	return args.Bool(0)
}

func (m *MockContentService) CacheStats() cache.Stats {
	args := m.Called()
	return args.Get(0).(cache.Stats)
}

func (m *MockContentService) Warmup(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
