package webapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/project-mosaic/mosaic/pkg/pmdb/pmmodel"
	"github.com/stretchr/testify/require"
)

// doRequest runs a single handler against an in-memory request, with the
// given user preinstalled in the context the way the API key middleware
// would do it.
func doRequest(t *testing.T, handler echo.HandlerFunc, user *pmmodel.User,
	method, target string, body interface{}, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()

	e := echo.New()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set("user", user)
	}

	if len(params) != 0 {
		names := make([]string, 0, len(params))
		values := make([]string, 0, len(params))
		for name, value := range params {
			names = append(names, name)
			values = append(values, value)
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), into))
}
