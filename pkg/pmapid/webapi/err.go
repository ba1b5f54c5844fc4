package webapi

import (
	"net/http"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/project-mosaic/mosaic/pkg/pmdb/pmmodel"
	"github.com/project-mosaic/mosaic/pkg/pmerr"
)

// toHTTPError maps the pmerr taxonomy onto HTTP status codes. Anything
// outside the taxonomy is an unexpected persistence failure and surfaces
// as a 500 without leaking internals.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, pmerr.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, pmerr.ErrForbidden), errors.Is(err, pmerr.ErrInsufficientRole):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, pmerr.ErrValidation):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, pmerr.ErrConflict), errors.Is(err, pmerr.ErrInvalidOperation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		log.WithError(err).Error("unexpected error")
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func validationError(msg string) error {
	return toHTTPError(errors.Wrap(pmerr.ErrValidation, msg))
}

// userFromContext returns the authenticated user placed in the context by
// the API key middleware.
func userFromContext(c echo.Context) *pmmodel.User {
	user, _ := c.Get("user").(*pmmodel.User)
	return user
}
