package gdelt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableAppend_DeduplicatesByURL(t *testing.T) {
	table := NewTable()

	assert.True(t, table.Append(Article{ID: uuid.New(), URL: "https://a.example/1", Title: "first"}))
	assert.True(t, table.Append(Article{ID: uuid.New(), URL: "https://a.example/2", Title: "second"}))

	// Later record with a repeated URL is dropped; first occurrence wins.
	assert.False(t, table.Append(Article{ID: uuid.New(), URL: "https://a.example/1", Title: "repeat"}))

	require.Equal(t, 2, table.Len())
	articles := table.Articles()
	assert.Equal(t, "first", articles[0].Title)
	assert.Equal(t, "second", articles[1].Title)
}

func TestTableAppend_RejectsEmptyURL(t *testing.T) {
	table := NewTable()
	assert.False(t, table.Append(Article{Title: "no url"}))
	assert.Equal(t, 0, table.Len())
}

func TestTableAppend_PreservesFirstAppearanceOrder(t *testing.T) {
	table := NewTable()
	urls := []string{"u3", "u1", "u2", "u1", "u3", "u4"}
	for _, u := range urls {
		table.Append(Article{URL: u})
	}
	assert.Equal(t, []string{"u3", "u1", "u2", "u4"}, table.URLs())
}

func TestTableEarliestSeen(t *testing.T) {
	table := NewTable()
	_, ok := table.EarliestSeen()
	assert.False(t, ok)

	early := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	late := time.Date(2024, 1, 2, 6, 0, 0, 0, time.UTC)
	table.Append(Article{URL: "u1", SeenDate: late})
	table.Append(Article{URL: "u2", SeenDate: early})
	table.Append(Article{URL: "u3"}) // no date

	got, ok := table.EarliestSeen()
	require.True(t, ok)
	assert.Equal(t, early, got)
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Big storm hits coast", "Big storm hits coast"},
		{"Big storm hits coast | The Daily", "Big storm hits coast"},
		{"Big storm hits coast (From our desk)", "Big storm hits coast"},
		{"  Big storm hits coast  ", "Big storm hits coast"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeTitle(tt.in))
	}
}

func TestDedupeByHeadline(t *testing.T) {
	articles := []Article{
		{URL: "u1", Title: "Big storm hits coast"},
		{URL: "u2", Title: "Big storm hits coast | The Daily"},
		{URL: "u3", Title: "Big storm hits coast (From our desk)"},
		{URL: "u4", Title: "Something else entirely"},
		{URL: "u5", Title: ""},
	}

	got := DedupeByHeadline(articles)
	require.Len(t, got, 3)
	assert.Equal(t, "u1", got[0].URL)
	assert.Equal(t, "u4", got[1].URL)
	assert.Equal(t, "u5", got[2].URL)
}
