package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/poetscorner/backend/internal/services"
)

// LeaderboardHandler handles HTTP requests for the three rankings
type LeaderboardHandler struct {
	leaderboard *services.LeaderboardService
}

// NewLeaderboardHandler creates a new LeaderboardHandler
func NewLeaderboardHandler(leaderboard *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: leaderboard}
}

// RegisterLeaderboardRoutes registers leaderboard-related routes
func (h *LeaderboardHandler) RegisterLeaderboardRoutes(g *echo.Group) {
	g.GET("/leaderboard", h.GetLeaderboard)
}

// GetLeaderboard returns one ranking, selected by the kind query param:
// points (all-time), posts or comments (trailing window, default 30 days).
func (h *LeaderboardHandler) GetLeaderboard(c echo.Context) error {
	windowDays, _ := strconv.Atoi(c.QueryParam("window_days"))

	switch c.QueryParam("kind") {
	case "points", "":
		entries, err := h.leaderboard.ByPoints(c.Request().Context())
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, entries)
	case "posts":
		entries, err := h.leaderboard.TopPosts(c.Request().Context(), windowDays)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, entries)
	case "comments":
		entries, err := h.leaderboard.TopCommenters(c.Request().Context(), windowDays)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, entries)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "kind must be one of points, posts, comments")
	}
}
