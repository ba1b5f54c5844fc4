package webapi

import (
	"net/http"
	"testing"

	"github.com/project-mosaic/mosaic/pkg/pmdb/pmmodel"
	"github.com/project-mosaic/mosaic/pkg/pmdb/stor"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	users := stor.NewInMemoryUserStor(nil)
	controller := NewAuthController(users)

	rec := doRequest(t, controller.Register, nil, http.MethodPost, "/api/auth/register",
		map[string]string{"name": "Jane Dev", "email": "jane@example.com", "password": "hunter2"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var user pmmodel.User
	decodeBody(t, rec, &user)
	require.NotZero(t, user.ID)
	require.Equal(t, "jane@example.com", user.Email)
	require.True(t, user.IsActive)

	// The password hash never leaves the server.
	require.NotContains(t, rec.Body.String(), "hunter2")
	require.NotContains(t, rec.Body.String(), "password")

	// Same email again is a conflict.
	rec = doRequest(t, controller.Register, nil, http.MethodPost, "/api/auth/register",
		map[string]string{"name": "Jane Again", "email": "jane@example.com", "password": "other"}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	users := stor.NewInMemoryUserStor(nil)
	controller := NewAuthController(users)

	for _, body := range []map[string]string{
		{"email": "jane@example.com", "password": "hunter2"},
		{"name": "Jane Dev", "password": "hunter2"},
		{"name": "Jane Dev", "email": "jane@example.com"},
	} {
		rec := doRequest(t, controller.Register, nil, http.MethodPost, "/api/auth/register", body, nil)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	}
}

func TestLogin(t *testing.T) {
	users := stor.NewInMemoryUserStor(nil)
	controller := NewAuthController(users)

	rec := doRequest(t, controller.Register, nil, http.MethodPost, "/api/auth/register",
		map[string]string{"name": "Jane Dev", "email": "jane@example.com", "password": "hunter2"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, controller.Login, nil, http.MethodPost, "/api/auth/login",
		map[string]string{"email": "jane@example.com", "password": "wrong"}, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, controller.Login, nil, http.MethodPost, "/api/auth/login",
		map[string]string{"email": "nobody@example.com", "password": "hunter2"}, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, controller.Login, nil, http.MethodPost, "/api/auth/login",
		map[string]string{"email": "jane@example.com", "password": "hunter2"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	decodeBody(t, rec, &resp)
	require.NotEmpty(t, resp.AccessToken)
	require.Equal(t, "bearer", resp.TokenType)

	// The issued token resolves back to the user.
	found, err := users.GetUserByAPIToken(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "jane@example.com", found.Email)
}

func TestMe(t *testing.T) {
	users := stor.NewInMemoryUserStor([]pmmodel.User{
		{ID: 1, Name: "Jane Dev", Email: "jane@example.com"},
	})
	controller := NewAuthController(users)

	user, err := users.GetUserByID(1)
	require.NoError(t, err)

	rec := doRequest(t, controller.Me, user, http.MethodGet, "/api/auth/me", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me pmmodel.User
	decodeBody(t, rec, &me)
	require.Equal(t, user.ID, me.ID)
}
