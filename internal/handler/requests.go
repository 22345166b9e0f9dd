package handler

import (
	"github.com/deppfellow/flashcards/internal/repository"
	"github.com/deppfellow/flashcards/internal/validation"
)

// IDRequest binds the :id path segment. Non-numeric and non-positive ids
// are rejected before any handler runs.
type IDRequest struct {
	ID int64 `param:"id" validate:"required,min=1"`
}

func (r *IDRequest) Validate() error { return validation.Struct(r) }

// ListWordsRequest carries the optional sort query. Unknown values fall
// back to english_word ascending.
type ListWordsRequest struct {
	Sortable  string `query:"sortable"`
	SortOrder string `query:"sortOrder"`
}

func (r *ListWordsRequest) Validate() error { return validation.Struct(r) }

func (r *ListWordsRequest) sort() repository.WordSort {
	return repository.ParseWordSort(r.Sortable, r.SortOrder)
}

type SearchWordsRequest struct {
	SearchTerm string `query:"searchTerm"`
	Sortable   string `query:"sortable"`
	SortOrder  string `query:"sortOrder"`
}

func (r *SearchWordsRequest) Validate() error { return validation.Struct(r) }

func (r *SearchWordsRequest) sort() repository.WordSort {
	return repository.ParseWordSort(r.Sortable, r.SortOrder)
}

// ListScoresRequest filters scores by searchTerm and orders them by id,
// newest first unless sortOrder is "asc".
type ListScoresRequest struct {
	SearchTerm string `query:"searchTerm"`
	SortOrder  string `query:"sortOrder"`
}

func (r *ListScoresRequest) Validate() error { return validation.Struct(r) }

func (r *ListScoresRequest) order() repository.SortOrder {
	return repository.ParseSortOrder(r.SortOrder, repository.Descending)
}

// PayloadRequest keeps the JSON body untyped. The repository checks it
// against the operation schema.
type PayloadRequest struct {
	Body validation.Payload `json:"-"`
}

func (r *PayloadRequest) Validate() error { return nil }

func (r *PayloadRequest) SetBody(body validation.Payload) { r.Body = body }

// IDPayloadRequest is PayloadRequest for routes addressed by :id.
type IDPayloadRequest struct {
	ID   int64              `param:"id" validate:"required,min=1"`
	Body validation.Payload `json:"-"`
}

func (r *IDPayloadRequest) Validate() error { return validation.Struct(r) }

func (r *IDPayloadRequest) SetBody(body validation.Payload) { r.Body = body }

// NoRequest is used by routes that take no input.
type NoRequest struct{}

func (r *NoRequest) Validate() error { return nil }
