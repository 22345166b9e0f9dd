package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/flashcards/internal/config"
	"github.com/deppfellow/flashcards/internal/database"
	"github.com/deppfellow/flashcards/internal/errs"
	"github.com/deppfellow/flashcards/internal/middleware"
	"github.com/deppfellow/flashcards/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *server.Server {
	log := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{Primary: config.Primary{Env: "test"}},
		Logger: &log,
	}
}

func TestNewRequest(t *testing.T) {
	t.Run("Should return a fresh zero value on each call", func(t *testing.T) {
		prototype := &IDRequest{ID: 42}

		first := newRequest(prototype)
		second := newRequest(prototype)

		assert.NotSame(t, prototype, first)
		assert.NotSame(t, first, second)
		assert.Zero(t, first.ID)
	})
}

func TestHandle(t *testing.T) {
	t.Run("Should bind each request into its own value", func(t *testing.T) {
		h := NewHandler(newTestServer())
		var seen []*IDRequest
		endpoint := Handle(h, func(c echo.Context, req *IDRequest) (int64, error) {
			seen = append(seen, req)
			return req.ID, nil
		}, http.StatusOK, &IDRequest{})

		e := echo.New()
		for _, id := range []string{"1", "2"} {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/words/"+id, nil), rec)
			c.SetParamNames("id")
			c.SetParamValues(id)

			require.NoError(t, endpoint(c))
			assert.Equal(t, id+"\n", rec.Body.String())
		}

		require.Len(t, seen, 2)
		assert.NotSame(t, seen[0], seen[1])
		assert.Equal(t, int64(1), seen[0].ID)
	})

	t.Run("Should return the validation error without calling the handler", func(t *testing.T) {
		h := NewHandler(newTestServer())
		called := false
		endpoint := HandleNoContent(h, func(c echo.Context, req *IDRequest) error {
			called = true
			return nil
		}, http.StatusNoContent, &IDRequest{})

		e := echo.New()
		c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/api/words/0", nil), httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues("0")

		assert.Error(t, endpoint(c))
		assert.False(t, called)
	})

	t.Run("Should log client failures at warn and server failures at error", func(t *testing.T) {
		cases := []struct {
			err   error
			level string
		}{
			{errs.NewNotFoundError("Word with ID: 3 not found", true, nil), `"level":"warn"`},
			{errs.NewValidationFailedError([]errs.FieldError{{Field: "id", Error: "is not allowed"}}), `"level":"warn"`},
			{errors.New("connection reset"), `"level":"error"`},
			{database.ErrPoolExhausted, `"level":"error"`},
		}

		for _, tc := range cases {
			var buf bytes.Buffer
			logger := zerolog.New(&buf)

			h := NewHandler(newTestServer())
			endpoint := HandleNoContent(h, func(c echo.Context, req *NoRequest) error {
				return tc.err
			}, http.StatusNoContent, &NoRequest{})

			e := echo.New()
			c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/api/words", nil), httptest.NewRecorder())
			c.Set(middleware.LoggerKey, &logger)

			require.ErrorIs(t, endpoint(c), tc.err)
			assert.Contains(t, buf.String(), tc.level, tc.err.Error())
			assert.Contains(t, buf.String(), "handler execution failed")
		}
	})
}

func TestFailureLevel(t *testing.T) {
	t.Run("Should classify echo errors by status", func(t *testing.T) {
		assert.Equal(t, zerolog.WarnLevel, failureLevel(echo.NewHTTPError(http.StatusBadRequest, "bad id")))
		assert.Equal(t, zerolog.ErrorLevel, failureLevel(echo.NewHTTPError(http.StatusInternalServerError)))
	})
}

func TestOpenAPIHandler(t *testing.T) {
	t.Run("Should embed a valid OpenAPI document", func(t *testing.T) {
		h := NewOpenAPIHandler(newTestServer())

		raw, err := fs.ReadFile(h.Assets(), "openapi.json")
		require.NoError(t, err)

		var doc map[string]any
		require.NoError(t, json.Unmarshal(raw, &doc))
		assert.Equal(t, "3.0.3", doc["openapi"])
		assert.Contains(t, doc["paths"], "/api/words/{id}")
	})
}
