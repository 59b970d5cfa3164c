package presenter

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petalert/petalert/client"
	"github.com/petalert/petalert/internal/domain"
)

func render(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, Error(c, err))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestError(t *testing.T) {
	code, body := render(t, domain.ValidationError{Field: "date", Reason: "required"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "date", body["field"])

	code, _ = render(t, errors.Wrap(domain.NotFoundError{Resource: "memorials m1"}, "delete"))
	assert.Equal(t, http.StatusNotFound, code)

	code, body = render(t, errors.Wrap(&client.StatusError{Method: "GET", Path: "/memorials", Code: 503}, "list"))
	assert.Equal(t, http.StatusBadGateway, code)
	assert.EqualValues(t, 503, body["upstream"])

	code, _ = render(t, &client.StatusError{Method: "GET", Path: "/memorials", Code: 401})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body = render(t, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "boom", body["error"])
}
