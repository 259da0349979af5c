package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/poetscorner/backend/internal/models"
	"github.com/poetscorner/backend/internal/repositories"
	"github.com/poetscorner/backend/internal/services"
)

// PostHandler handles HTTP requests for the post lifecycle
type PostHandler struct {
	drafts         *services.DraftService
	autosaver      *services.Autosaver
	postRepository repositories.PostRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(drafts *services.DraftService, autosaver *services.Autosaver, postRepo repositories.PostRepository) *PostHandler {
	return &PostHandler{
		drafts:         drafts,
		autosaver:      autosaver,
		postRepository: postRepo,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts/drafts", h.SaveDraft)
	g.POST("/posts/autosave", h.Autosave)
	g.POST("/posts/publish", h.Publish)
	g.POST("/posts/preview", h.Preview)
	g.GET("/posts", h.GetPublishedPosts)
	g.GET("/posts/:id", h.GetPost)
	g.GET("/drafts", h.GetDrafts)
}

// SaveDraft handles an explicit draft save; failures are surfaced to the
// caller, unlike the autosave path.
func (h *PostHandler) SaveDraft(c echo.Context) error {
	var input models.PostInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	post, err := h.drafts.SaveDraft(c.Request().Context(), currentUserID(c), input)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// Autosave notes an input event for the debounced save. It always
// answers 202: the save itself happens after the quiet period, and a
// failed attempt is retried on the next debounce window.
func (h *PostHandler) Autosave(c echo.Context) error {
	var input models.PostInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	h.autosaver.Note(currentUserID(c), input)
	return c.NoContent(http.StatusAccepted)
}

// Publish makes a post visible to all readers.
func (h *PostHandler) Publish(c echo.Context) error {
	var input models.PostInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	post, err := h.drafts.Publish(c.Request().Context(), currentUserID(c), input)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// Preview renders the publish view model without persisting anything.
func (h *PostHandler) Preview(c echo.Context) error {
	var input models.PostInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	post, err := h.drafts.Preview(currentUserID(c), input)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// GetPublishedPosts returns the public feed with pagination
func (h *PostHandler) GetPublishedPosts(c echo.Context) error {
	skip, _ := strconv.ParseInt(c.QueryParam("skip"), 10, 64)
	if skip < 0 {
		skip = 0
	}
	limit, err := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}

	posts, err := h.postRepository.GetPublishedPosts(c.Request().Context(), skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "store temporarily unavailable")
	}
	return c.JSON(http.StatusOK, posts)
}

// GetPost returns a single post. Unpublished posts are visible only to
// their author.
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusBadGateway, "store temporarily unavailable")
	}
	if !post.IsPublished && post.AuthorID != currentUserID(c) {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	return c.JSON(http.StatusOK, post)
}

// GetDrafts returns the authenticated user's drafts
func (h *PostHandler) GetDrafts(c echo.Context) error {
	drafts, err := h.postRepository.GetDraftsByAuthor(c.Request().Context(), currentUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "store temporarily unavailable")
	}
	return c.JSON(http.StatusOK, drafts)
}
