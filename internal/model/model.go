// Package model holds the persisted entities and the typed inputs
// decoded from validated client payloads.
package model

// Word is one flashcard: an English/Finnish pair with free-text tags.
type Word struct {
	ID           int64  `json:"id" db:"id"`
	EnglishWord  string `json:"english_word" db:"english_word"`
	FinnishWord  string `json:"finnish_word" db:"finnish_word"`
	CategoryTags string `json:"category_tags" db:"category_tags"`
}

// Score is an immutable snapshot of one quiz round.
//
// Score is formatted "<correct>/<total>". CorrectWords and
// IncorrectWords are comma-joined question strings and may be empty.
type Score struct {
	ID             int64   `json:"id" db:"id"`
	Score          string  `json:"score" db:"score"`
	CorrectWords   string  `json:"correct_words" db:"correct_words"`
	IncorrectWords string  `json:"incorrect_words" db:"incorrect_words"`
	Date           *string `json:"date" db:"date"`
}

// CreateWordInput is a validated word-create payload.
type CreateWordInput struct {
	EnglishWord  string `json:"english_word" validate:"min=1"`
	FinnishWord  string `json:"finnish_word" validate:"min=1"`
	CategoryTags string `json:"category_tags"`
}

// ReplaceWordInput is a validated full-replace payload. ID is accepted
// but ignored: the path id selects the row.
type ReplaceWordInput struct {
	ID           *int64 `json:"id"`
	EnglishWord  string `json:"english_word" validate:"min=1"`
	FinnishWord  string `json:"finnish_word" validate:"min=1"`
	CategoryTags string `json:"category_tags"`
}

// PatchWordInput is a validated partial-update payload. Nil fields are
// left untouched and ID is ignored like in ReplaceWordInput.
type PatchWordInput struct {
	ID           *int64  `json:"id"`
	EnglishWord  *string `json:"english_word" validate:"omitnil,min=1"`
	FinnishWord  *string `json:"finnish_word" validate:"omitnil,min=1"`
	CategoryTags *string `json:"category_tags"`
}

// CreateScoreInput is a validated score-create payload.
type CreateScoreInput struct {
	Score          string  `json:"score" validate:"min=1"`
	CorrectWords   string  `json:"correct_words"`
	IncorrectWords string  `json:"incorrect_words"`
	Date           *string `json:"date"`
}
