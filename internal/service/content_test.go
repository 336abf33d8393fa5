//go:build !integration

package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/catalog-service/internal/domain/model"
	"github.com/guttosm/catalog-service/internal/events"
	"github.com/guttosm/catalog-service/internal/fallback"
	"github.com/guttosm/catalog-service/internal/fetch"
	"github.com/guttosm/catalog-service/internal/i18n"
	"github.com/guttosm/catalog-service/internal/service/cache"
)

const testBaseURL = "http://source.test/content"

type fetchFunc func(ctx context.Context, url string) ([]byte, error)

// stubGateway answers fetches per URL and counts calls.
type stubGateway struct {
	mu       sync.Mutex
	handlers map[string]fetchFunc
	calls    map[string]int
}

func newStubGateway() *stubGateway {
	return &stubGateway{
		handlers: make(map[string]fetchFunc),
		calls:    make(map[string]int),
	}
}

func (g *stubGateway) on(path string, fn fetchFunc) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.handlers[testBaseURL+"/"+path] = fn
}

func (g *stubGateway) respond(path, body string) {
	g.on(path, func(context.Context, string) ([]byte, error) {
		return []byte(body), nil
	})
}

func (g *stubGateway) fail(path string, kind fetch.Kind, status int) {
	g.on(path, func(_ context.Context, url string) ([]byte, error) {
		return nil, &fetch.Failure{Kind: kind, URL: url, Status: status}
	})
}

func (g *stubGateway) callCount(path string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[testBaseURL+"/"+path]
}

func (g *stubGateway) Fetch(ctx context.Context, url string, _ time.Duration) ([]byte, error) {
	g.mu.Lock()
	g.calls[url]++
	fn, ok := g.handlers[url]
	g.mu.Unlock()
	if !ok {
		return nil, &fetch.Failure{Kind: fetch.KindHTTPStatus, URL: url, Status: 404}
	}
	return fn(ctx, url)
}

// recorder captures every event published on a bus.
type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func record(bus *events.Bus) *recorder {
	r := &recorder{}
	for _, name := range events.All {
		bus.Subscribe(name, func(_ context.Context, evt events.Event) error {
			r.mu.Lock()
			r.events = append(r.events, evt)
			r.mu.Unlock()
			return nil
		})
	}
	return r
}

func (r *recorder) names() []events.Name {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.Name, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Name)
	}
	return out
}

func (r *recorder) find(name events.Name) (events.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e.Name == name {
			return e, true
		}
	}
	return events.Event{}, false
}

func (r *recorder) reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

type fixture struct {
	svc     *CatalogService
	gateway *stubGateway
	store   cache.Store[any]
	events  *recorder
	data    *fallback.Dataset
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	store, err := cache.New[any](cache.Config{MaxSize: 10, TTL: time.Minute})
	require.NoError(t, err)
	data, err := fallback.Default()
	require.NoError(t, err)

	bus := events.NewBus()
	gw := newStubGateway()
	opts = append([]Option{WithBaseURL(testBaseURL + "/")}, opts...)

	return &fixture{
		svc:     NewCatalogService(gw, store, bus, data, opts...),
		gateway: gw,
		store:   store,
		events:  record(bus),
		data:    data,
	}
}

const categoriesJSON = `[{"id":"algorithms","name":"Algorithms"},{"id":"web","name":"Web"}]`

const coursesJSON = `[
	{"id":"c1","title":"Quicksort Algorithm","categoryId":"algorithms","difficulty":"intermediate","duration":45,"rating":4.8,"tags":["sorting"]},
	{"id":"c2","title":"CSS Grid","categoryId":"web","difficulty":"beginner","duration":20,"rating":4.1,"featured":true},
	{"id":"c3","title":"Graphs","categoryId":"algorithms","difficulty":"advanced","duration":90,"rating":4.9}
]`

func TestCatalogService_GetCategories_Success(t *testing.T) {
	f := newFixture(t)
	f.gateway.respond("categories", categoriesJSON)

	categories, err := f.svc.GetCategories(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "algorithms", categories[0].ID)
	assert.Equal(t, []events.Name{events.LoadingStart, events.DataLoaded, events.LoadingEnd}, f.events.names())

	loaded, ok := f.events.find(events.DataLoaded)
	require.True(t, ok)
	payload := loaded.Payload.(events.DataLoadedPayload)
	assert.Equal(t, ResourceCategories, payload.Type)
	assert.False(t, payload.Fallback)

	end, _ := f.events.find(events.LoadingEnd)
	assert.True(t, end.Payload.(events.LoadingEndPayload).Success)

	_, cached := f.store.Get(cache.Key(ResourceCategories))
	assert.True(t, cached)
}

func TestCatalogService_CacheHitPublishesNothing(t *testing.T) {
	f := newFixture(t)
	f.gateway.respond("categories", categoriesJSON)
	ctx := context.Background()

	_, err := f.svc.GetCategories(ctx)
	require.NoError(t, err)
	f.events.reset()

	categories, err := f.svc.GetCategories(ctx)

	require.NoError(t, err)
	assert.Len(t, categories, 2)
	assert.Empty(t, f.events.names())
	assert.Equal(t, 1, f.gateway.callCount("categories"))
}

func TestCatalogService_FailureServesFallback(t *testing.T) {
	f := newFixture(t)
	f.gateway.fail("categories", fetch.KindNetwork, 0)

	categories, err := f.svc.GetCategories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, f.data.Categories(), categories)
	assert.Equal(t, []events.Name{
		events.LoadingStart,
		events.LoadingEnd,
		events.ErrorOccurred,
		events.DataLoaded,
	}, f.events.names())

	end, _ := f.events.find(events.LoadingEnd)
	assert.False(t, end.Payload.(events.LoadingEndPayload).Success)

	errEvt, _ := f.events.find(events.ErrorOccurred)
	errPayload := errEvt.Payload.(events.ErrorOccurredPayload)
	assert.Equal(t, "network", errPayload.Kind)
	assert.Equal(t, ResourceCategories, errPayload.Resource)

	loaded, _ := f.events.find(events.DataLoaded)
	assert.True(t, loaded.Payload.(events.DataLoadedPayload).Fallback)

	_, cached := f.store.Get(cache.Key(ResourceCategories))
	assert.False(t, cached, "fallback data is not cached")
}

func TestCatalogService_ErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		kind     fetch.Kind
		status   int
		locale   string
		expected string
	}{
		{name: "timeout", kind: fetch.KindTimeout, expected: "Request timed out. Please try again."},
		{name: "network", kind: fetch.KindNetwork, expected: "Network error. Please check your connection."},
		{name: "http status", kind: fetch.KindHTTPStatus, status: 500, expected: "Failed to load content. Showing saved data."},
		{name: "parse", kind: fetch.KindParse, expected: "Failed to load content. Showing saved data."},
		{name: "localized timeout", kind: fetch.KindTimeout, locale: "pt", expected: "Tempo de requisição esgotado. Tente novamente."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.gateway.fail("courses", tt.kind, tt.status)
			ctx := context.Background()
			if tt.locale != "" {
				ctx = i18n.WithLocale(ctx, tt.locale)
			}

			_, err := f.svc.GetCourses(ctx)
			require.NoError(t, err)

			evt, ok := f.events.find(events.ErrorOccurred)
			require.True(t, ok)
			assert.Equal(t, tt.expected, evt.Payload.(events.ErrorOccurredPayload).Message)
		})
	}
}

func TestCatalogService_MalformedBodyIsParseFailure(t *testing.T) {
	f := newFixture(t)
	f.gateway.respond("courses", `{"not":"a list"}`)

	courses, err := f.svc.GetCourses(context.Background())

	require.NoError(t, err)
	assert.Equal(t, f.data.Courses(), courses)
	evt, _ := f.events.find(events.ErrorOccurred)
	assert.Equal(t, string(fetch.KindParse), evt.Payload.(events.ErrorOccurredPayload).Kind)
}

func TestCatalogService_GetCourseContent(t *testing.T) {
	t.Run("success is cached per course", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.respond("courses/c1/content", `{"courseId":"c1","lessons":[{"id":"l1","title":"Partitioning"}]}`)
		ctx := context.Background()

		content, err := f.svc.GetCourseContent(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, "c1", content.CourseID)
		require.Len(t, content.Lessons, 1)

		_, err = f.svc.GetCourseContent(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, 1, f.gateway.callCount("courses/c1/content"))
		assert.Contains(t, f.svc.CacheStats().Keys, cache.Key(ResourceCourseContent, "c1"))
	})

	t.Run("404 becomes not found", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.GetCourseContent(context.Background(), "missing")

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound))
		_, loaded := f.events.find(events.DataLoaded)
		assert.False(t, loaded)
	})

	t.Run("source failure is returned without fallback", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.fail("courses/c1/content", fetch.KindTimeout, 0)

		_, err := f.svc.GetCourseContent(context.Background(), "c1")

		require.Error(t, err)
		assert.True(t, errors.Is(err, fetch.ErrTimeout))
		assert.True(t, IsTransportError(err))
		assert.Equal(t, []events.Name{events.LoadingStart, events.LoadingEnd, events.ErrorOccurred}, f.events.names())
	})

	t.Run("course id is escaped in the path", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.respond("courses/a%2Fb/content", `{"courseId":"a/b","lessons":[]}`)

		content, err := f.svc.GetCourseContent(context.Background(), "a/b")

		require.NoError(t, err)
		assert.Equal(t, "a/b", content.CourseID)
	})
}

func TestCatalogService_Lookups(t *testing.T) {
	f := newFixture(t)
	f.gateway.respond("categories", categoriesJSON)
	f.gateway.respond("courses", coursesJSON)
	ctx := context.Background()

	t.Run("category by id", func(t *testing.T) {
		c, err := f.svc.GetCategoryByID(ctx, "web")
		require.NoError(t, err)
		assert.Equal(t, "Web", c.Name)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := f.svc.GetCategoryByID(ctx, "cooking")
		assert.ErrorIs(t, err, ErrNotFound)
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "category", nf.Resource)
	})

	t.Run("course by id", func(t *testing.T) {
		c, err := f.svc.GetCourseByID(ctx, "c3")
		require.NoError(t, err)
		assert.Equal(t, "Graphs", c.Title)
	})

	t.Run("unknown course", func(t *testing.T) {
		_, err := f.svc.GetCourseByID(ctx, "c9")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("courses by category", func(t *testing.T) {
		courses, err := f.svc.GetCoursesByCategory(ctx, "algorithms")
		require.NoError(t, err)
		assert.Equal(t, []string{"c1", "c3"}, ids(courses))
	})

	t.Run("filter", func(t *testing.T) {
		courses, err := f.svc.FilterCourses(ctx, CourseFilter{CategoryID: "algorithms", Sort: SortRating})
		require.NoError(t, err)
		assert.Equal(t, []string{"c3", "c1"}, ids(courses))
	})

	t.Run("lookups share one fetch", func(t *testing.T) {
		assert.Equal(t, 1, f.gateway.callCount("courses"))
		assert.Equal(t, 1, f.gateway.callCount("categories"))
	})
}

func TestCatalogService_SearchFallbackData(t *testing.T) {
	f := newFixture(t)
	f.gateway.fail("courses", fetch.KindNetwork, 0)
	ctx := context.Background()

	found, err := f.svc.SearchCourses(ctx, "sort")
	require.NoError(t, err)
	titles := make([]string, 0, len(found))
	for _, c := range found {
		titles = append(titles, c.Title)
	}
	assert.Contains(t, titles, "Quicksort Algorithm")

	none, err := f.svc.SearchCourses(ctx, "blockchain")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCatalogService_GetFeaturedCourses(t *testing.T) {
	t.Run("resolves homepage ids in order", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.respond("courses", coursesJSON)
		f.gateway.respond("homepage", `{"heroTitle":"Hi","featuredCourses":["c3","missing","c1"]}`)

		courses, err := f.svc.GetFeaturedCourses(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"c3", "c1"}, ids(courses))
	})

	t.Run("uses featured flag without homepage ids", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.respond("courses", coursesJSON)
		f.gateway.respond("homepage", `{"heroTitle":"Hi"}`)

		courses, err := f.svc.GetFeaturedCourses(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"c2"}, ids(courses))
	})

	t.Run("fallback data", func(t *testing.T) {
		f := newFixture(t)

		courses, err := f.svc.GetFeaturedCourses(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"algo-101", "web-101", "data-201"}, ids(courses))
	})
}

func TestCatalogService_HomepageAndStory(t *testing.T) {
	f := newFixture(t)
	f.gateway.respond("story", `{"id":"s","title":"Our story","chapters":[{"id":"one","title":"One","body":"..."}]}`)
	ctx := context.Background()

	story, err := f.svc.GetStory(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Our story", story.Title)

	home, err := f.svc.GetHomepage(ctx)
	require.NoError(t, err)
	assert.Equal(t, f.data.Homepage(), home)
}

func TestCatalogService_CoalescesConcurrentMisses(t *testing.T) {
	f := newFixture(t)
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	f.gateway.on("courses", func(context.Context, string) ([]byte, error) {
		once.Do(func() { close(started) })
		<-release
		return []byte(coursesJSON), nil
	})

	const callers = 8
	var wg sync.WaitGroup
	results := make([][]model.Course, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = f.svc.GetCourses(context.Background())
		}(i)
	}

	<-started
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Len(t, results[i], 3)
	}
	assert.Equal(t, 1, f.gateway.callCount("courses"))

	starts := 0
	for _, n := range f.events.names() {
		if n == events.LoadingStart {
			starts++
		}
	}
	assert.Equal(t, 1, starts)
}

func TestCatalogService_CallerDeadline(t *testing.T) {
	t.Run("collections answer with fallback data", func(t *testing.T) {
		f := newFixture(t)
		release := make(chan struct{})
		defer close(release)
		f.gateway.on("categories", func(context.Context, string) ([]byte, error) {
			<-release
			return []byte(categoriesJSON), nil
		})

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		categories, err := f.svc.GetCategories(ctx)

		require.NoError(t, err)
		assert.Equal(t, f.data.Categories(), categories)

		errEvt, ok := f.events.find(events.ErrorOccurred)
		require.True(t, ok)
		assert.Equal(t, "timeout", errEvt.Payload.(events.ErrorOccurredPayload).Kind)
		loaded, ok := f.events.find(events.DataLoaded)
		require.True(t, ok)
		assert.True(t, loaded.Payload.(events.DataLoadedPayload).Fallback)
	})

	t.Run("course content keeps the error", func(t *testing.T) {
		f := newFixture(t)
		release := make(chan struct{})
		defer close(release)
		f.gateway.on("courses/c1/content", func(context.Context, string) ([]byte, error) {
			<-release
			return []byte(`{"courseId":"c1","lessons":[]}`), nil
		})

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := f.svc.GetCourseContent(ctx, "c1")

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("late fetch still fills the cache", func(t *testing.T) {
		f := newFixture(t)
		release := make(chan struct{})
		f.gateway.on("courses", func(context.Context, string) ([]byte, error) {
			<-release
			return []byte(coursesJSON), nil
		})

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := f.svc.GetCourses(ctx)
		require.NoError(t, err)

		close(release)
		assert.Eventually(t, func() bool {
			_, ok := f.store.Get(cache.Key(ResourceCourses))
			return ok
		}, time.Second, 5*time.Millisecond)

		courses, err := f.svc.GetCourses(context.Background())
		require.NoError(t, err)
		assert.Len(t, courses, 3)
	})
}

func TestCatalogService_CallersCannotMutateCache(t *testing.T) {
	f := newFixture(t)
	f.gateway.respond("courses", coursesJSON)
	f.gateway.respond("courses/c1/content", `{"courseId":"c1","lessons":[{"id":"l1","title":"Pivot"}]}`)
	ctx := context.Background()

	first, err := f.svc.GetCourses(ctx)
	require.NoError(t, err)
	first[0].Title = "changed"
	first[0].Tags[0] = "changed"

	second, err := f.svc.GetCourses(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Quicksort Algorithm", second[0].Title)
	assert.Equal(t, []string{"sorting"}, second[0].Tags)

	content, err := f.svc.GetCourseContent(ctx, "c1")
	require.NoError(t, err)
	content.Lessons[0].Title = "changed"

	again, err := f.svc.GetCourseContent(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Pivot", again.Lessons[0].Title)
	assert.Equal(t, 1, f.gateway.callCount("courses"))
}

func TestCatalogService_CourseContentFailureMessage(t *testing.T) {
	f := newFixture(t)
	f.gateway.fail("courses/c1/content", fetch.KindHTTPStatus, 500)

	_, err := f.svc.GetCourseContent(context.Background(), "c1")
	require.Error(t, err)

	evt, ok := f.events.find(events.ErrorOccurred)
	require.True(t, ok)
	assert.Equal(t, "Failed to load content. Please try again later.", evt.Payload.(events.ErrorOccurredPayload).Message)
}

func TestCatalogService_Retries(t *testing.T) {
	t.Run("retries source failures", func(t *testing.T) {
		f := newFixture(t, WithRetries(2, time.Millisecond))
		var attempts atomic.Int32
		f.gateway.on("categories", func(_ context.Context, url string) ([]byte, error) {
			if attempts.Add(1) < 3 {
				return nil, &fetch.Failure{Kind: fetch.KindHTTPStatus, URL: url, Status: 503}
			}
			return []byte(categoriesJSON), nil
		})

		categories, err := f.svc.GetCategories(context.Background())

		require.NoError(t, err)
		assert.Len(t, categories, 2)
		assert.Equal(t, int32(3), attempts.Load())
		_, failed := f.events.find(events.ErrorOccurred)
		assert.False(t, failed)
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		f := newFixture(t, WithRetries(3, time.Millisecond))
		f.gateway.fail("courses/c1/content", fetch.KindHTTPStatus, 404)

		_, err := f.svc.GetCourseContent(context.Background(), "c1")

		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, 1, f.gateway.callCount("courses/c1/content"))
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		f := newFixture(t, WithRetries(1, time.Millisecond))
		f.gateway.fail("story", fetch.KindTimeout, 0)

		story, err := f.svc.GetStory(context.Background())

		require.NoError(t, err)
		assert.Equal(t, f.data.Story().Title, story.Title)
		assert.Equal(t, 2, f.gateway.callCount("story"))
	})
}

func TestCatalogService_CacheOperations(t *testing.T) {
	f := newFixture(t)
	f.gateway.respond("categories", categoriesJSON)
	f.gateway.respond("courses", coursesJSON)
	ctx := context.Background()

	_, err := f.svc.GetCategories(ctx)
	require.NoError(t, err)
	_, err = f.svc.GetCourses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, f.svc.CacheStats().Size)

	f.events.reset()
	assert.True(t, f.svc.InvalidateKey(ctx, cache.Key(ResourceCourses)))
	assert.False(t, f.svc.InvalidateKey(ctx, "unknown"))

	evt, ok := f.events.find(events.CacheCleared)
	require.True(t, ok)
	assert.Equal(t, ResourceCourses, evt.Payload.(events.CacheClearedPayload).Key)
	assert.Len(t, f.events.names(), 1)

	f.events.reset()
	assert.Equal(t, 1, f.svc.ClearCache(ctx))
	assert.Equal(t, 0, f.svc.CacheStats().Size)
	evt, ok = f.events.find(events.CacheCleared)
	require.True(t, ok)
	assert.Equal(t, 1, evt.Payload.(events.CacheClearedPayload).Entries)

	_, err = f.svc.GetCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, f.gateway.callCount("categories"))
}

func TestCatalogService_Warmup(t *testing.T) {
	f := newFixture(t)
	f.gateway.respond("categories", categoriesJSON)
	f.gateway.respond("courses", coursesJSON)
	f.gateway.respond("homepage", `{"heroTitle":"Hi"}`)
	f.gateway.respond("story", `{"id":"s","title":"Story","chapters":[]}`)

	err := f.svc.Warmup(context.Background())

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		ResourceCategories,
		ResourceCourses,
		ResourceHomepage,
		ResourceStory,
	}, f.svc.CacheStats().Keys)
}

func TestNewCatalogService_Options(t *testing.T) {
	f := newFixture(t,
		WithPaths(Paths{Courses: "v2/courses"}),
		WithTimeout(3*time.Second),
		WithRetries(2, 50*time.Millisecond),
	)

	assert.Equal(t, testBaseURL, f.svc.baseURL)
	assert.Equal(t, "v2/courses", f.svc.paths.Courses)
	assert.Equal(t, "categories", f.svc.paths.Categories)
	assert.Equal(t, 3*time.Second, f.svc.timeout)
	assert.Equal(t, 2, f.svc.retries)
	assert.Equal(t, 50*time.Millisecond, f.svc.retryInterval)
}
