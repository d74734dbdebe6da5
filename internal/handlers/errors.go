package handlers

import (
	"errors"
	"net/http"

	"github.com/inko-social/backend/internal/services"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// httpError maps service-layer error variants onto HTTP status codes.
// Anything unclassified surfaces as a generic internal failure so partial
// state details never leak to the caller.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, services.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, services.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrConflict), errors.Is(err, gorm.ErrDuplicatedKey):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal error")
	}
}
