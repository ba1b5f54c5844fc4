package apimiddleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/project-mosaic/mosaic/pkg/pmdb/pmmodel"
	"github.com/project-mosaic/mosaic/pkg/pmerr"
)

type AuthorizeProjectFN func(actorID, projectID int) error

type ProjectAccessConfig struct {
	Skipper          middleware.Skipper
	ParamName        string
	AuthorizeProject AuthorizeProjectFN
}

// ProjectAccessAuth checks that the authenticated user has access to the
// project named by the route parameter. APIKeyAuth must run before this
// middleware.
func ProjectAccessAuth(config ProjectAccessConfig) echo.MiddlewareFunc {
	paramName := config.ParamName
	if paramName == "" {
		paramName = "id"
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper != nil && config.Skipper(c) {
				return next(c)
			}

			projectID, err := strconv.Atoi(c.Param(paramName))
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid project id")
			}

			user, ok := c.Get("user").(*pmmodel.User)
			if !ok || user == nil {
				return echo.ErrUnauthorized
			}

			if err := config.AuthorizeProject(user.ID, projectID); err != nil {
				switch {
				case errors.Is(err, pmerr.ErrNotFound):
					return echo.NewHTTPError(http.StatusNotFound, err.Error())
				case errors.Is(err, pmerr.ErrForbidden), errors.Is(err, pmerr.ErrInsufficientRole):
					return echo.NewHTTPError(http.StatusForbidden, err.Error())
				default:
					return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
				}
			}

			return next(c)
		}
	}
}
