package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/poetscorner/backend/internal/models"
	"github.com/poetscorner/backend/internal/services"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	reactions *services.ReactionService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(reactions *services.ReactionService) *LikeHandler {
	return &LikeHandler{reactions: reactions}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/toggle-like", h.ToggleLike)
	g.GET("/posts/:post_id/likes/status", h.GetLikeStatus)
}

// ToggleLike flips the authenticated user's like on a post and returns
// the reconciled like state.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	var req models.ToggleLikeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	state, err := h.reactions.ToggleLike(c.Request().Context(), c.Param("post_id"), currentUserID(c), req.CurrentlyLiked)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, state)
}

// GetLikeStatus returns whether the user has liked the post and the
// authoritative like count, letting clients reconcile an optimistic
// counter adjustment.
func (h *LikeHandler) GetLikeStatus(c echo.Context) error {
	state, err := h.reactions.LikeStatus(c.Request().Context(), c.Param("post_id"), currentUserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, state)
}
