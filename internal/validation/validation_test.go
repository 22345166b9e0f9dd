package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/flashcards/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type idRequest struct {
	ID int64 `param:"id" validate:"required,min=1"`
}

func (r *idRequest) Validate() error { return Struct(r) }

type rawRequest struct {
	ID   int64 `param:"id" validate:"required,min=1"`
	Body Payload
}

func (r *rawRequest) Validate() error { return Struct(r) }
func (r *rawRequest) SetBody(body Payload) { r.Body = body }

func newContext(method, target, body string, id string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func TestBindAndValidate(t *testing.T) {
	t.Run("Should bind the path id", func(t *testing.T) {
		req := &idRequest{}

		require.NoError(t, BindAndValidate(newContext(http.MethodGet, "/api/words/5", "", "5"), req))
		assert.Equal(t, int64(5), req.ID)
	})

	t.Run("Should reject a non-numeric id", func(t *testing.T) {
		err := BindAndValidate(newContext(http.MethodGet, "/api/words/abc", "", "abc"), &idRequest{})

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	})

	t.Run("Should reject a non-positive id", func(t *testing.T) {
		err := BindAndValidate(newContext(http.MethodGet, "/api/words/-2", "", "-2"), &idRequest{})

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, []errs.FieldError{{Field: "id", Error: "must be at least 1"}}, httpErr.Errors)
	})

	t.Run("Should keep the raw body for raw requests", func(t *testing.T) {
		req := &rawRequest{}
		c := newContext(http.MethodPatch, "/api/words/3", `{"english_word":"cat","extra":1}`, "3")

		require.NoError(t, BindAndValidate(c, req))
		assert.Equal(t, int64(3), req.ID)
		assert.Equal(t, Payload{"english_word": "cat", "extra": float64(1)}, req.Body)
	})

	t.Run("Should reject malformed JSON", func(t *testing.T) {
		c := newContext(http.MethodPut, "/api/words/3", `{"english_word":`, "3")

		err := BindAndValidate(c, &rawRequest{})

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	})
}
