package webapi

import (
	"net/http"

	"github.com/hashicorp/go-uuid"
	"github.com/labstack/echo/v4"
	"github.com/project-mosaic/mosaic/pkg/pmdb/pmmodel"
	"github.com/project-mosaic/mosaic/pkg/pmdb/stor"
	"golang.org/x/crypto/bcrypt"
)

type AuthController struct {
	userStor stor.UserStor
}

func NewAuthController(userStor stor.UserStor) *AuthController {
	return &AuthController{userStor: userStor}
}

func (c *AuthController) Register(ctx echo.Context) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return validationError("name, email and password are required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return toHTTPError(err)
	}

	user := &pmmodel.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		IsActive: true,
	}

	if user, err = c.userStor.CreateUser(user); err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusCreated, user)
}

func (c *AuthController) Login(ctx echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	user, err := c.userStor.GetUserByEmail(req.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "incorrect email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "incorrect email or password")
	}

	token, err := uuid.GenerateUUID()
	if err != nil {
		return toHTTPError(err)
	}

	if _, err := c.userStor.UpdateAPIToken(user, token); err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (c *AuthController) Me(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, userFromContext(ctx))
}
