package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/guttosm/catalog-service/internal/domain/model"
	"github.com/guttosm/catalog-service/internal/events"
	"github.com/guttosm/catalog-service/internal/fallback"
	"github.com/guttosm/catalog-service/internal/fetch"
	"github.com/guttosm/catalog-service/internal/i18n"
	"github.com/guttosm/catalog-service/internal/logger"
	"github.com/guttosm/catalog-service/internal/metrics"
	"github.com/guttosm/catalog-service/internal/service/cache"
)

// Resource names used for cache keys, DATA_LOADED payloads and metrics.
const (
	ResourceCategories    = "categories"
	ResourceCourses       = "courses"
	ResourceHomepage      = "homepage"
	ResourceStory         = "story"
	ResourceCourseContent = "course-content"
)

// ContentService defines the data access operations offered to UI consumers.
type ContentService interface {
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryByID(ctx context.Context, id string) (model.Category, error)
	GetCourses(ctx context.Context) ([]model.Course, error)
	GetCourseByID(ctx context.Context, id string) (model.Course, error)
	GetCoursesByCategory(ctx context.Context, categoryID string) ([]model.Course, error)
	SearchCourses(ctx context.Context, text string) ([]model.Course, error)
	FilterCourses(ctx context.Context, f CourseFilter) ([]model.Course, error)
	GetFeaturedCourses(ctx context.Context) ([]model.Course, error)
	GetHomepage(ctx context.Context) (model.HomepageConfig, error)
	GetStory(ctx context.Context) (model.Story, error)
	GetCourseContent(ctx context.Context, courseID string) (model.CourseContent, error)

	// ClearCache drops every cached entry and returns how many were removed.
	ClearCache(ctx context.Context) int
	// InvalidateKey drops one cached entry.
	InvalidateKey(ctx context.Context, key string) bool
	CacheStats() cache.Stats
	// Warmup loads the collection resources so the first requests hit the cache.
	Warmup(ctx context.Context) error
}

// Paths locates each resource relative to the source base URL.
// CourseContent must contain the "{id}" placeholder.
type Paths struct {
	Categories    string
	Courses       string
	Homepage      string
	Story         string
	CourseContent string
}

// DefaultPaths returns the conventional resource paths.
func DefaultPaths() Paths {
	return Paths{
		Categories:    "categories",
		Courses:       "courses",
		Homepage:      "homepage",
		Story:         "story",
		CourseContent: "courses/{id}/content",
	}
}

// CatalogService implements ContentService on top of a cache, a fetch
// gateway, the notification bus and the fallback dataset.
//
// Every accessor follows the same sequence: a cache hit returns immediately
// without events; a miss publishes LOADING_START and fetches; success stores
// the value and publishes DATA_LOADED then LOADING_END; failure publishes
// LOADING_END and ERROR_OCCURRED and, for collection resources, answers with
// fallback data announced through DATA_LOADED. Callers always receive copies;
// cache entries are never handed out.
type CatalogService struct {
	gateway  fetch.Gateway
	store    cache.Store[any]
	bus      events.Publisher
	fallback *fallback.Dataset

	baseURL       string
	paths         Paths
	timeout       time.Duration
	retries       int
	retryInterval time.Duration

	translator *i18n.Translator
	group      singleflight.Group
	log        zerolog.Logger
}

// Option configures a CatalogService.
type Option func(*CatalogService)

// WithBaseURL sets the content source base URL.
func WithBaseURL(base string) Option {
	return func(s *CatalogService) {
		s.baseURL = strings.TrimRight(base, "/")
	}
}

// WithPaths overrides resource paths. Empty fields keep their defaults.
func WithPaths(p Paths) Option {
	return func(s *CatalogService) {
		if p.Categories != "" {
			s.paths.Categories = p.Categories
		}
		if p.Courses != "" {
			s.paths.Courses = p.Courses
		}
		if p.Homepage != "" {
			s.paths.Homepage = p.Homepage
		}
		if p.Story != "" {
			s.paths.Story = p.Story
		}
		if p.CourseContent != "" {
			s.paths.CourseContent = p.CourseContent
		}
	}
}

// WithTimeout sets the per-fetch timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *CatalogService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithRetries retries failed fetches that indicate an unhealthy source, with
// exponential backoff starting at interval. Zero disables retries.
func WithRetries(n int, interval time.Duration) Option {
	return func(s *CatalogService) {
		if n >= 0 {
			s.retries = n
		}
		if interval > 0 {
			s.retryInterval = interval
		}
	}
}

// WithTranslator sets the translator for user-facing error messages.
func WithTranslator(t *i18n.Translator) Option {
	return func(s *CatalogService) {
		s.translator = t
	}
}

// WithServiceLogger sets the service logger.
func WithServiceLogger(l zerolog.Logger) Option {
	return func(s *CatalogService) {
		s.log = l
	}
}

// NewCatalogService creates a CatalogService. All four collaborators are
// required; they are shared with the rest of the application.
func NewCatalogService(gateway fetch.Gateway, store cache.Store[any], bus events.Publisher, fb *fallback.Dataset, opts ...Option) *CatalogService {
	s := &CatalogService{
		gateway:       gateway,
		store:         store,
		bus:           bus,
		fallback:      fb,
		paths:         DefaultPaths(),
		timeout:       10 * time.Second,
		retryInterval: 200 * time.Millisecond,
		translator:    i18n.GetTranslator(),
		log:           logger.Component("content"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// resource describes one cacheable remote document.
type resource[T any] struct {
	name string
	key  string
	url  string
	// nil when the resource has no fallback
	fallback func() T
	// copies values on their way out of the cache
	clone func(T) T
}

func (s *CatalogService) resourceURL(path string) string {
	return s.baseURL + "/" + strings.TrimLeft(path, "/")
}

// GetCategories returns all categories, falling back to built-in data.
func (s *CatalogService) GetCategories(ctx context.Context) ([]model.Category, error) {
	return load(ctx, s, resource[[]model.Category]{
		name:     ResourceCategories,
		key:      cache.Key(ResourceCategories),
		url:      s.resourceURL(s.paths.Categories),
		fallback: s.fallback.Categories,
		clone:    model.CloneCategories,
	})
}

// GetCourses returns all courses, falling back to built-in data.
func (s *CatalogService) GetCourses(ctx context.Context) ([]model.Course, error) {
	return load(ctx, s, resource[[]model.Course]{
		name:     ResourceCourses,
		key:      cache.Key(ResourceCourses),
		url:      s.resourceURL(s.paths.Courses),
		fallback: s.fallback.Courses,
		clone:    model.CloneCourses,
	})
}

// GetHomepage returns the homepage configuration, falling back to built-in data.
func (s *CatalogService) GetHomepage(ctx context.Context) (model.HomepageConfig, error) {
	return load(ctx, s, resource[model.HomepageConfig]{
		name:     ResourceHomepage,
		key:      cache.Key(ResourceHomepage),
		url:      s.resourceURL(s.paths.Homepage),
		fallback: s.fallback.Homepage,
		clone:    model.HomepageConfig.Clone,
	})
}

// GetStory returns the story content, falling back to built-in data.
func (s *CatalogService) GetStory(ctx context.Context) (model.Story, error) {
	return load(ctx, s, resource[model.Story]{
		name:     ResourceStory,
		key:      cache.Key(ResourceStory),
		url:      s.resourceURL(s.paths.Story),
		fallback: s.fallback.Story,
		clone:    model.Story.Clone,
	})
}

// GetCourseContent returns the syllabus of one course. It has no fallback:
// a 404 from the source becomes a NotFoundError and other failures are
// returned as *fetch.Failure.
func (s *CatalogService) GetCourseContent(ctx context.Context, courseID string) (model.CourseContent, error) {
	path := strings.ReplaceAll(s.paths.CourseContent, "{id}", url.PathEscape(courseID))
	content, err := load(ctx, s, resource[model.CourseContent]{
		name:  ResourceCourseContent,
		key:   cache.Key(ResourceCourseContent, courseID),
		url:   s.resourceURL(path),
		clone: model.CourseContent.Clone,
	})
	if fetch.IsStatus(err, 404) {
		return model.CourseContent{}, &NotFoundError{Resource: "course content", ID: courseID}
	}
	return content, err
}

// GetCategoryByID finds one category in the category list.
func (s *CatalogService) GetCategoryByID(ctx context.Context, id string) (model.Category, error) {
	categories, err := s.GetCategories(ctx)
	if err != nil {
		return model.Category{}, err
	}
	for _, c := range categories {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Category{}, &NotFoundError{Resource: "category", ID: id}
}

// GetCourseByID finds one course in the course list.
func (s *CatalogService) GetCourseByID(ctx context.Context, id string) (model.Course, error) {
	courses, err := s.GetCourses(ctx)
	if err != nil {
		return model.Course{}, err
	}
	for _, c := range courses {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Course{}, &NotFoundError{Resource: "course", ID: id}
}

// GetCoursesByCategory returns the courses of one category.
func (s *CatalogService) GetCoursesByCategory(ctx context.Context, categoryID string) ([]model.Course, error) {
	return s.FilterCourses(ctx, CourseFilter{CategoryID: categoryID})
}

// SearchCourses returns courses whose title, description or tags contain text.
func (s *CatalogService) SearchCourses(ctx context.Context, text string) ([]model.Course, error) {
	return s.FilterCourses(ctx, CourseFilter{Text: text})
}

// FilterCourses applies f to the course list.
func (s *CatalogService) FilterCourses(ctx context.Context, f CourseFilter) ([]model.Course, error) {
	courses, err := s.GetCourses(ctx)
	if err != nil {
		return nil, err
	}
	return ApplyFilter(courses, f), nil
}

// GetFeaturedCourses resolves the homepage's featured ids against the course
// list, in homepage order. Without featured ids it returns courses flagged
// as featured.
func (s *CatalogService) GetFeaturedCourses(ctx context.Context) ([]model.Course, error) {
	home, err := s.GetHomepage(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := s.GetCourses(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.Course, 0, len(home.FeaturedCourseIDs))
	if len(home.FeaturedCourseIDs) == 0 {
		for _, c := range courses {
			if c.Featured {
				out = append(out, c)
			}
		}
		return out, nil
	}

	byID := make(map[string]model.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}
	for _, id := range home.FeaturedCourseIDs {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

// ClearCache drops every cached entry.
func (s *CatalogService) ClearCache(ctx context.Context) int {
	n := s.store.Stats().Size
	s.store.Clear()
	s.log.Info().Int("entries", n).Msg("Content cache cleared")
	s.bus.Publish(ctx, events.CacheCleared, events.CacheClearedPayload{Entries: n})
	return n
}

// InvalidateKey drops the entry stored under key.
func (s *CatalogService) InvalidateKey(ctx context.Context, key string) bool {
	if !s.store.Delete(key) {
		return false
	}
	s.log.Info().Str("key", key).Msg("Content cache entry invalidated")
	s.bus.Publish(ctx, events.CacheCleared, events.CacheClearedPayload{Key: key, Entries: 1})
	return true
}

// CacheStats returns a snapshot of the content cache.
func (s *CatalogService) CacheStats() cache.Stats {
	return s.store.Stats()
}

// Warmup loads every collection resource concurrently.
func (s *CatalogService) Warmup(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.GetCategories(gctx)
		return err
	})
	g.Go(func() error {
		_, err := s.GetCourses(gctx)
		return err
	})
	g.Go(func() error {
		_, err := s.GetHomepage(gctx)
		return err
	})
	g.Go(func() error {
		_, err := s.GetStory(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	s.log.Info().Int("entries", s.store.Stats().Size).Msg("Content cache warmed up")
	return nil
}

// load runs the cache-then-fetch sequence for r. Concurrent misses for the
// same key share a single fetch. A caller that gives up waiting gets fallback
// data for collection resources and ctx.Err() otherwise.
func load[T any](ctx context.Context, s *CatalogService, r resource[T]) (T, error) {
	var zero T

	if v, ok := s.store.Get(r.key); ok {
		if typed, ok := v.(T); ok {
			return r.copy(typed), nil
		}
	}

	// the shared fetch outlives any single caller's cancellation
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(r.key, func() (interface{}, error) {
		return refresh(shared, s, r)
	})

	select {
	case res := <-ch:
		if res.Shared {
			metrics.RecordCoalesced(r.name)
		}
		if res.Err != nil {
			return zero, res.Err
		}
		return r.copy(res.Val.(T)), nil
	case <-ctx.Done():
		if r.fallback == nil {
			return zero, ctx.Err()
		}
		return abandon(ctx, s, r), nil
	}
}

func (r resource[T]) copy(v T) T {
	if r.clone == nil {
		return v
	}
	return r.clone(v)
}

// abandon answers a caller whose deadline ran out before the source did. The
// fetch keeps running and still fills the cache for later callers.
func abandon[T any](ctx context.Context, s *CatalogService, r resource[T]) T {
	kind := fetch.KindTimeout
	if errors.Is(ctx.Err(), context.Canceled) {
		kind = ""
	}
	pub := context.WithoutCancel(ctx)
	s.bus.Publish(pub, events.ErrorOccurred, events.ErrorOccurredPayload{
		Resource: r.name,
		Kind:     outcome(kind),
		Message:  s.loadErrorMessage(pub, kind, true),
	})
	s.log.Warn().
		Err(ctx.Err()).
		Str("resource", r.name).
		Str("key", r.key).
		Msg("Content source too slow for caller, serving fallback")

	data := r.fallback()
	metrics.RecordFallback(r.name)
	s.bus.Publish(pub, events.DataLoaded, events.DataLoadedPayload{Type: r.name, Data: data, Fallback: true})
	return data
}

func refresh[T any](ctx context.Context, s *CatalogService, r resource[T]) (T, error) {
	var zero T

	s.bus.Publish(ctx, events.LoadingStart, events.LoadingStartPayload{Resource: r.name})

	start := time.Now()
	value, err := fetchDecoded[T](ctx, s, r.url)
	if err == nil {
		metrics.RecordFetch(r.name, "success", time.Since(start))
		s.store.Set(r.key, value)
		s.bus.Publish(ctx, events.DataLoaded, events.DataLoadedPayload{Type: r.name, Data: r.copy(value)})
		s.bus.Publish(ctx, events.LoadingEnd, events.LoadingEndPayload{Resource: r.name, Success: true})
		return value, nil
	}

	kind := fetch.KindOf(err)
	metrics.RecordFetch(r.name, outcome(kind), time.Since(start))
	s.bus.Publish(ctx, events.LoadingEnd, events.LoadingEndPayload{Resource: r.name, Success: false})
	s.bus.Publish(ctx, events.ErrorOccurred, events.ErrorOccurredPayload{
		Resource: r.name,
		Kind:     outcome(kind),
		Message:  s.loadErrorMessage(ctx, kind, r.fallback != nil),
	})
	s.log.Warn().
		Err(err).
		Str("resource", r.name).
		Str("key", r.key).
		Str("kind", outcome(kind)).
		Bool("fallback", r.fallback != nil).
		Msg("Failed to load content")

	if r.fallback == nil {
		return zero, err
	}

	data := r.fallback()
	metrics.RecordFallback(r.name)
	s.bus.Publish(ctx, events.DataLoaded, events.DataLoadedPayload{Type: r.name, Data: data, Fallback: true})
	return data, nil
}

func fetchDecoded[T any](ctx context.Context, s *CatalogService, u string) (T, error) {
	if s.retries == 0 {
		body, err := s.gateway.Fetch(ctx, u, s.timeout)
		if err != nil {
			var zero T
			return zero, err
		}
		return fetch.Decode[T](u, body)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.retryInterval
	bo.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(s.retries)), ctx)

	attempt := 0
	return backoff.RetryWithData(func() (T, error) {
		attempt++
		var zero T
		body, err := s.gateway.Fetch(ctx, u, s.timeout)
		if err != nil {
			if !fetch.IsSourceFailure(err) {
				return zero, backoff.Permanent(err)
			}
			s.log.Debug().Err(err).Str("url", u).Int("attempt", attempt).Msg("Retrying content fetch")
			return zero, err
		}
		v, err := fetch.Decode[T](u, body)
		if err != nil {
			return zero, backoff.Permanent(err)
		}
		return v, nil
	}, policy)
}

func (s *CatalogService) loadErrorMessage(ctx context.Context, kind fetch.Kind, hasFallback bool) string {
	key := i18n.LoadKeyUnavailable
	if hasFallback {
		key = i18n.LoadKeyFailed
	}
	switch kind {
	case fetch.KindTimeout:
		key = i18n.LoadKeyTimeout
	case fetch.KindNetwork:
		key = i18n.LoadKeyNetwork
	}
	return s.translator.Translate(key, i18n.LocaleFrom(ctx))
}

func outcome(kind fetch.Kind) string {
	if kind == "" {
		return "error"
	}
	return string(kind)
}

// IsTransportError reports whether err came from the content source rather
// than a missing entity.
func IsTransportError(err error) bool {
	var f *fetch.Failure
	return errors.As(err, &f)
}
