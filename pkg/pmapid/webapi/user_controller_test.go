package webapi

import (
	"net/http"
	"testing"

	"github.com/project-mosaic/mosaic/pkg/pmdb/pmmodel"
	"github.com/project-mosaic/mosaic/pkg/pmdb/stor"
	"github.com/stretchr/testify/require"
)

func TestGetUserByEmail(t *testing.T) {
	users := stor.NewInMemoryUserStor([]pmmodel.User{
		{ID: 1, Name: "Jane Dev", Email: "jane@example.com"},
	})
	controller := NewUserController(users)
	actor, _ := users.GetUserByID(1)

	rec := doRequest(t, controller.GetUserByEmail, actor, http.MethodGet,
		"/api/users/by-email?email=jane@example.com", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var found pmmodel.User
	decodeBody(t, rec, &found)
	require.Equal(t, 1, found.ID)

	rec = doRequest(t, controller.GetUserByEmail, actor, http.MethodGet,
		"/api/users/by-email?email=nobody@example.com", nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, controller.GetUserByEmail, actor, http.MethodGet,
		"/api/users/by-email", nil, nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
