package webapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/project-mosaic/mosaic/pkg/pmdb/stor"
)

type UserController struct {
	userStor stor.UserStor
}

func NewUserController(userStor stor.UserStor) *UserController {
	return &UserController{userStor: userStor}
}

// GetUserByEmail backs the member pickers in clients.
func (c *UserController) GetUserByEmail(ctx echo.Context) error {
	email := ctx.QueryParam("email")
	if email == "" {
		return validationError("email is required")
	}

	user, err := c.userStor.GetUserByEmail(email)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, user)
}
