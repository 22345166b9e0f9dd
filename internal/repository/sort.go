package repository

import (
	"strings"
)

// SortOrder is an allow-listed sort direction.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

// ParseSortOrder accepts "asc" and "desc" in any case. Anything else,
// including the empty string, yields fallback.
func ParseSortOrder(raw string, fallback SortOrder) SortOrder {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "asc":
		return Ascending
	case "desc":
		return Descending
	default:
		return fallback
	}
}

func (o SortOrder) String() string {
	if o == Descending {
		return "desc"
	}
	return "asc"
}

func (o SortOrder) sql() string {
	if o == Descending {
		return "DESC"
	}
	return "ASC"
}

// WordSortField is an allow-listed words column to sort by.
type WordSortField int

const (
	SortByEnglishWord WordSortField = iota
	SortByID
	SortByFinnishWord
	SortByCategoryTags
)

// ParseWordSortField accepts the short aliases (eng, fin, tags) and the
// column names, case-insensitively. Anything else sorts by english_word.
func ParseWordSortField(raw string) WordSortField {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "id":
		return SortByID
	case "eng", "english_word":
		return SortByEnglishWord
	case "fin", "finnish_word":
		return SortByFinnishWord
	case "tags", "category_tags":
		return SortByCategoryTags
	default:
		return SortByEnglishWord
	}
}

func (f WordSortField) column() string {
	switch f {
	case SortByID:
		return "id"
	case SortByFinnishWord:
		return "finnish_word"
	case SortByCategoryTags:
		return "category_tags"
	default:
		return "english_word"
	}
}

// WordSort is a parsed sort specification for word listings.
type WordSort struct {
	Field WordSortField
	Order SortOrder
}

// ParseWordSort parses the raw sortable and sortOrder query values.
// Word listings default to english_word ascending.
func ParseWordSort(field, order string) WordSort {
	return WordSort{
		Field: ParseWordSortField(field),
		Order: ParseSortOrder(order, Ascending),
	}
}

// orderBy returns ORDER BY terms; id breaks ties so paging through equal
// words stays stable.
func (s WordSort) orderBy() []string {
	terms := []string{s.Field.column() + " " + s.Order.sql()}
	if s.Field != SortByID {
		terms = append(terms, "id ASC")
	}
	return terms
}

// likeEscaper makes LIKE wildcards in client input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a %term% pattern for a substring match.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
