package apimiddleware

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/project-mosaic/mosaic/pkg/pmdb/pmmodel"
)

type GetUserByAPIKeyFN func(string) (*pmmodel.User, error)

type APIKeyConfig struct {
	Skipper         middleware.Skipper
	Keyname         string
	GetUserByAPIKey GetUserByAPIKeyFN
}

// APIKeyAuth resolves the request's API token to a user and stores it in the
// context under "user". The token is taken from the Authorization header
// (with or without a Bearer prefix), a header named Keyname, or a query
// parameter named Keyname.
func APIKeyAuth(config APIKeyConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper != nil && config.Skipper(c) {
				return next(c)
			}

			value, err := getAPIKeyFromRequest(config.Keyname, c)
			if err != nil {
				return echo.ErrUnauthorized
			}

			user, err := config.GetUserByAPIKey(value)
			switch {
			case err != nil:
				return echo.ErrUnauthorized
			case user == nil:
				return echo.ErrUnauthorized
			default:
				c.Set("user", user)
				return next(c)
			}
		}
	}
}

func getAPIKeyFromRequest(key string, c echo.Context) (string, error) {
	if value := c.Request().Header.Get(echo.HeaderAuthorization); value != "" {
		return strings.TrimPrefix(value, "Bearer "), nil
	}

	if value := c.Request().Header.Get(key); value != "" {
		return value, nil
	}

	if value := c.QueryParam(key); value != "" {
		return value, nil
	}

	return "", fmt.Errorf("no apikey '%s' as header or query param", key)
}
