package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/poetscorner/backend/internal/services"
)

// AchievementHandler handles HTTP requests for achievement progress
type AchievementHandler struct {
	progress *services.ProgressService
}

// NewAchievementHandler creates a new AchievementHandler
func NewAchievementHandler(progress *services.ProgressService) *AchievementHandler {
	return &AchievementHandler{progress: progress}
}

// RegisterAchievementRoutes registers achievement-related routes
func (h *AchievementHandler) RegisterAchievementRoutes(g *echo.Group) {
	g.GET("/achievements/progress", h.GetProgress)
}

// GetProgress returns the authenticated user's achievement progress
func (h *AchievementHandler) GetProgress(c echo.Context) error {
	report, err := h.progress.GetAchievementProgress(c.Request().Context(), currentUserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, report)
}
