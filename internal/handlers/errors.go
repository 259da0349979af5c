package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/poetscorner/backend/internal/services"
)

// httpError maps the domain error taxonomy onto HTTP status codes.
func httpError(err error) *echo.HTTPError {
	var (
		validationErr  *services.ValidationError
		notFoundErr    *services.NotFoundError
		persistenceErr *services.PersistenceError
	)
	switch {
	case errors.As(err, &validationErr):
		return echo.NewHTTPError(http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &notFoundErr):
		return echo.NewHTTPError(http.StatusNotFound, notFoundErr.Error())
	case errors.As(err, &persistenceErr):
		return echo.NewHTTPError(http.StatusBadGateway, "store temporarily unavailable")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// currentUserID pulls the authenticated Firebase UID set by the auth
// middleware.
func currentUserID(c echo.Context) string {
	uid, _ := c.Get("firebaseUID").(string)
	return uid
}
