package handler

import (
	"github.com/deppfellow/flashcards/internal/model"
	"github.com/deppfellow/flashcards/internal/server"
	"github.com/deppfellow/flashcards/internal/service"
	"github.com/labstack/echo/v4"
)

type WordHandler struct {
	Handler
	words *service.WordService
}

func NewWordHandler(s *server.Server, words *service.WordService) *WordHandler {
	return &WordHandler{
		Handler: NewHandler(s),
		words:   words,
	}
}

func (h *WordHandler) CreateWord(c echo.Context, req *PayloadRequest) (*model.Word, error) {
	return h.words.Create(c.Request().Context(), req.Body)
}

func (h *WordHandler) ListWords(c echo.Context, req *ListWordsRequest) ([]model.Word, error) {
	return h.words.List(c.Request().Context(), req.sort())
}

func (h *WordHandler) SearchWords(c echo.Context, req *SearchWordsRequest) ([]model.Word, error) {
	return h.words.Search(c.Request().Context(), req.SearchTerm, req.sort())
}

func (h *WordHandler) GetWord(c echo.Context, req *IDRequest) (*model.Word, error) {
	return h.words.Get(c.Request().Context(), req.ID)
}

// ReplaceWord overwrites every field. An id in the body is ignored.
func (h *WordHandler) ReplaceWord(c echo.Context, req *IDPayloadRequest) error {
	return h.words.Replace(c.Request().Context(), req.ID, req.Body)
}

func (h *WordHandler) PatchWord(c echo.Context, req *IDPayloadRequest) error {
	return h.words.Patch(c.Request().Context(), req.ID, req.Body)
}

func (h *WordHandler) DeleteWord(c echo.Context, req *IDRequest) error {
	return h.words.Delete(c.Request().Context(), req.ID)
}

func (h *WordHandler) DeleteAllWords(c echo.Context, _ *NoRequest) error {
	return h.words.DeleteAll(c.Request().Context())
}
