package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseWordSort(t *testing.T) {
	cases := []struct {
		field, order string
		want         []string
	}{
		{"", "", []string{"english_word ASC", "id ASC"}},
		{"id", "desc", []string{"id DESC"}},
		{"eng", "Desc", []string{"english_word DESC", "id ASC"}},
		{"FIN", "asc", []string{"finnish_word ASC", "id ASC"}},
		{"tags", "", []string{"category_tags ASC", "id ASC"}},
		{"category_tags", "DESC", []string{"category_tags DESC", "id ASC"}},
		{"english_word; DROP TABLE words", "desc;", []string{"english_word ASC", "id ASC"}},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseWordSort(tc.field, tc.order).orderBy(), "%q %q", tc.field, tc.order)
	}
}

func TestParseSortOrder(t *testing.T) {
	assert.Equal(t, Descending, ParseSortOrder("", Descending))
	assert.Equal(t, Ascending, ParseSortOrder(" asc ", Descending))
	assert.Equal(t, Ascending, ParseSortOrder("random", Ascending))
	assert.Equal(t, "desc", Descending.String())
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%iss%", containsPattern("iss"))
	assert.Equal(t, `%100\%%`, containsPattern("100%"))
	assert.Equal(t, `%a\_b\\c%`, containsPattern(`a_b\c`))
	assert.Equal(t, "%%", containsPattern(""))
}
