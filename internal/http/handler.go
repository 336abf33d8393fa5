package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/catalog-service/internal/domain/dto"
	"github.com/guttosm/catalog-service/internal/domain/model"
	"github.com/guttosm/catalog-service/internal/i18n"
	"github.com/guttosm/catalog-service/internal/render"
	"github.com/guttosm/catalog-service/internal/service"
)

// Handler provides HTTP handlers for the catalog read routes.
type Handler struct {
	content service.ContentService
}

// NewHandler creates a new Handler instance.
func NewHandler(content service.ContentService) *Handler {
	return &Handler{content: content}
}

// GetCategories handles GET /api/categories.
//
// @Summary      List categories
// @Description  Returns every course category. When the content source is unavailable the bundled fallback catalog is served.
// @Tags         Catalog
// @Produce      json
// @Param        Accept-Language header string false "Response language (en, pt, nl)"
// @Success      200 {object} dto.SuccessResponse "Category list"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/categories [get]
func (h *Handler) GetCategories(c *gin.Context) {
	builder := NewResponseBuilder(c)

	categories, err := h.content.GetCategories(c.Request.Context())
	if err != nil {
		builder.ServiceError(err, i18n.ErrKeyNotFound)
		return
	}
	builder.SuccessWithMeta(http.StatusOK, categories, map[string]interface{}{"count": len(categories)})
}

// GetCategory handles GET /api/categories/:id.
//
// @Summary      Get category
// @Description  Returns one category by id.
// @Tags         Catalog
// @Produce      json
// @Param        id path string true "Category id"
// @Success      200 {object} dto.SuccessResponse "Category"
// @Failure      404 {object} dto.ErrorResponse "Category not found"
// @Router       /api/categories/{id} [get]
func (h *Handler) GetCategory(c *gin.Context) {
	builder := NewResponseBuilder(c)

	category, err := h.content.GetCategoryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		builder.ServiceError(err, i18n.ErrKeyCategoryNotFound)
		return
	}
	builder.SuccessOK(category)
}

// ListCourses handles GET /api/courses.
//
// @Summary      List courses
// @Description  Returns courses, optionally filtered by category, free text and difficulty, and sorted.
// @Tags         Catalog
// @Produce      json
// @Param        category   query string false "Category id"
// @Param        q          query string false "Case-insensitive text matched against title, description and tags"
// @Param        difficulty query string false "Difficulty" Enums(beginner, intermediate, advanced)
// @Param        sort       query string false "Sort key" Enums(title, difficulty, duration, rating)
// @Param        limit      query int    false "Maximum number of results"
// @Success      200 {object} dto.SuccessResponse "Course list"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid query"
// @Router       /api/courses [get]
func (h *Handler) ListCourses(c *gin.Context) {
	builder := NewResponseBuilder(c)

	query, err := BuildQueryAndValidate[dto.CourseQuery](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}

	courses, err := h.content.FilterCourses(c.Request.Context(), service.CourseFilter{
		CategoryID: query.Category,
		Text:       query.Q,
		Difficulty: model.Difficulty(query.Difficulty),
		Sort:       query.Sort,
		Limit:      query.Limit,
	})
	if err != nil {
		builder.ServiceError(err, i18n.ErrKeyNotFound)
		return
	}
	builder.SuccessWithMeta(http.StatusOK, courses, map[string]interface{}{"count": len(courses)})
}

// GetFeaturedCourses handles GET /api/courses/featured.
//
// @Summary      Featured courses
// @Description  Returns the courses highlighted on the homepage, in homepage order.
// @Tags         Catalog
// @Produce      json
// @Success      200 {object} dto.SuccessResponse "Featured course list"
// @Router       /api/courses/featured [get]
func (h *Handler) GetFeaturedCourses(c *gin.Context) {
	builder := NewResponseBuilder(c)

	courses, err := h.content.GetFeaturedCourses(c.Request.Context())
	if err != nil {
		builder.ServiceError(err, i18n.ErrKeyNotFound)
		return
	}
	builder.SuccessWithMeta(http.StatusOK, courses, map[string]interface{}{"count": len(courses)})
}

// GetCourse handles GET /api/courses/:id.
//
// @Summary      Get course
// @Description  Returns one course by id.
// @Tags         Catalog
// @Produce      json
// @Param        id path string true "Course id"
// @Success      200 {object} dto.SuccessResponse "Course"
// @Failure      404 {object} dto.ErrorResponse "Course not found"
// @Router       /api/courses/{id} [get]
func (h *Handler) GetCourse(c *gin.Context) {
	builder := NewResponseBuilder(c)

	course, err := h.content.GetCourseByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		builder.ServiceError(err, i18n.ErrKeyCourseNotFound)
		return
	}
	builder.SuccessOK(course)
}

// GetCourseContent handles GET /api/courses/:id/content.
//
// @Summary      Course content
// @Description  Returns the lesson list of one course. There is no fallback for course content.
// @Tags         Catalog
// @Produce      json
// @Param        id path string true "Course id"
// @Success      200 {object} dto.SuccessResponse "Course content"
// @Failure      404 {object} dto.ErrorResponse "Course not found"
// @Failure      502 {object} dto.ErrorResponse "Content source unavailable"
// @Failure      504 {object} dto.ErrorResponse "Content source timed out"
// @Router       /api/courses/{id}/content [get]
func (h *Handler) GetCourseContent(c *gin.Context) {
	builder := NewResponseBuilder(c)

	content, err := h.content.GetCourseContent(c.Request.Context(), c.Param("id"))
	if err != nil {
		builder.ServiceError(err, i18n.ErrKeyCourseNotFound)
		return
	}
	builder.SuccessOK(content)
}

// GetCourseCard handles GET /api/courses/:id/card.
//
// @Summary      Course card
// @Description  Returns the render tree of a course card in the requested variant.
// @Tags         Catalog
// @Produce      json
// @Param        id      path  string true  "Course id"
// @Param        variant query string false "Card variant" Enums(default, featured, compact, detailed, list)
// @Success      200 {object} dto.SuccessResponse "Card render tree"
// @Failure      400 {object} dto.ErrorResponse "Unknown variant"
// @Failure      404 {object} dto.ErrorResponse "Course not found"
// @Router       /api/courses/{id}/card [get]
func (h *Handler) GetCourseCard(c *gin.Context) {
	builder := NewResponseBuilder(c)

	variant, err := render.ParseVariant(c.Query("variant"))
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyUnknownVariant, err)
		return
	}

	course, err := h.content.GetCourseByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		builder.ServiceError(err, i18n.ErrKeyCourseNotFound)
		return
	}
	builder.SuccessWithMeta(http.StatusOK, render.Card(course, variant), map[string]interface{}{"variant": variant})
}

// GetHomepage handles GET /api/homepage.
//
// @Summary      Homepage configuration
// @Tags         Content
// @Produce      json
// @Success      200 {object} dto.SuccessResponse "Homepage configuration"
// @Router       /api/homepage [get]
func (h *Handler) GetHomepage(c *gin.Context) {
	builder := NewResponseBuilder(c)

	homepage, err := h.content.GetHomepage(c.Request.Context())
	if err != nil {
		builder.ServiceError(err, i18n.ErrKeyNotFound)
		return
	}
	builder.SuccessOK(homepage)
}

// GetStory handles GET /api/story.
//
// @Summary      Story content
// @Tags         Content
// @Produce      json
// @Success      200 {object} dto.SuccessResponse "Story"
// @Router       /api/story [get]
func (h *Handler) GetStory(c *gin.Context) {
	builder := NewResponseBuilder(c)

	story, err := h.content.GetStory(c.Request.Context())
	if err != nil {
		builder.ServiceError(err, i18n.ErrKeyNotFound)
		return
	}
	builder.SuccessOK(story)
}
