// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"net/http"

	"github.com/deppfellow/flashcards/internal/handler"
	"github.com/deppfellow/flashcards/internal/middleware"
	"github.com/deppfellow/flashcards/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance with the global middleware chain and
// every route.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Pre(middlewares.Global.RemoveTrailingSlash())

	// Order matters: the request id and New Relic transaction must exist
	// before the context logger is built.
	router.Use(
		middlewares.Global.Recover(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.RateLimit.Limit(),
	)

	registerSystemRoutes(router, s, h)

	api := router.Group("/api")
	registerWordRoutes(api, h)
	registerScoreRoutes(api, h)

	return router
}

func registerWordRoutes(api *echo.Group, h *handler.Handlers) {
	words := api.Group("/words")
	base := h.Words.Handler

	words.POST("", handler.Handle(base, h.Words.CreateWord, http.StatusCreated, &handler.PayloadRequest{}))
	words.GET("", handler.Handle(base, h.Words.ListWords, http.StatusOK, &handler.ListWordsRequest{}))
	words.DELETE("", handler.HandleNoContent(base, h.Words.DeleteAllWords, http.StatusNoContent, &handler.NoRequest{}))

	// Registered before /:id so "search" is not taken for an id.
	words.GET("/search", handler.Handle(base, h.Words.SearchWords, http.StatusOK, &handler.SearchWordsRequest{}))

	words.GET("/:id", handler.Handle(base, h.Words.GetWord, http.StatusOK, &handler.IDRequest{}))
	words.PUT("/:id", handler.HandleNoContent(base, h.Words.ReplaceWord, http.StatusNoContent, &handler.IDPayloadRequest{}))
	words.PATCH("/:id", handler.HandleNoContent(base, h.Words.PatchWord, http.StatusNoContent, &handler.IDPayloadRequest{}))
	words.DELETE("/:id", handler.HandleNoContent(base, h.Words.DeleteWord, http.StatusNoContent, &handler.IDRequest{}))
}

func registerScoreRoutes(api *echo.Group, h *handler.Handlers) {
	scores := api.Group("/scores")
	base := h.Scores.Handler

	scores.POST("", handler.Handle(base, h.Scores.CreateScore, http.StatusCreated, &handler.PayloadRequest{}))
	scores.GET("", handler.Handle(base, h.Scores.ListScores, http.StatusOK, &handler.ListScoresRequest{}))
	scores.DELETE("", handler.HandleNoContent(base, h.Scores.DeleteAllScores, http.StatusNoContent, &handler.NoRequest{}))

	scores.GET("/:id", handler.Handle(base, h.Scores.GetScore, http.StatusOK, &handler.IDRequest{}))
	scores.DELETE("/:id", handler.HandleNoContent(base, h.Scores.DeleteScore, http.StatusNoContent, &handler.IDRequest{}))
}
