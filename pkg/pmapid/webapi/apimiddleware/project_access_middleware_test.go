package apimiddleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/project-mosaic/mosaic/pkg/pmdb/pmmodel"
	"github.com/project-mosaic/mosaic/pkg/pmerr"
	"github.com/stretchr/testify/require"
)

func runProjectAccess(t *testing.T, projectID string, user *pmmodel.User, authorize AuthorizeProjectFN) error {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/projects/1/tasks", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(projectID)
	if user != nil {
		c.Set("user", user)
	}

	handler := ProjectAccessAuth(ProjectAccessConfig{
		AuthorizeProject: authorize,
	})(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	return handler(c)
}

func TestProjectAccessAllowed(t *testing.T) {
	user := &pmmodel.User{ID: 1}

	err := runProjectAccess(t, "1", user, func(actorID, projectID int) error {
		require.Equal(t, 1, actorID)
		require.Equal(t, 1, projectID)
		return nil
	})
	require.NoError(t, err)
}

func TestProjectAccessErrorMapping(t *testing.T) {
	user := &pmmodel.User{ID: 1}

	err := runProjectAccess(t, "1", user, func(int, int) error {
		return errors.Wrap(pmerr.ErrForbidden, "nope")
	})
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusForbidden, httpErr.Code)

	err = runProjectAccess(t, "1", user, func(int, int) error {
		return errors.Wrap(pmerr.ErrNotFound, "no such project")
	})
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusNotFound, httpErr.Code)

	err = runProjectAccess(t, "1", user, func(int, int) error {
		return errors.New("db fell over")
	})
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusInternalServerError, httpErr.Code)
}

func TestProjectAccessBadParamAndMissingUser(t *testing.T) {
	user := &pmmodel.User{ID: 1}

	err := runProjectAccess(t, "not-a-number", user, func(int, int) error { return nil })
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusBadRequest, httpErr.Code)

	err = runProjectAccess(t, "1", nil, func(int, int) error { return nil })
	require.Equal(t, echo.ErrUnauthorized, err)
}
