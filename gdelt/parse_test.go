package gdelt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArticlesJSON(t *testing.T) {
	body := []byte(`{"articles":[
		{"url":"https://a.example/1","url_mobile":"https://m.a.example/1","title":"One","seendate":"20240102T150405Z","domain":"a.example","language":"Spanish","sourcecountry":"Mexico"},
		{"url":"","title":"no url, dropped"},
		{"url":"https://a.example/2","title":"Two","seendate":"not-a-date"}
	]}`)

	articles, err := ParseArticlesJSON(body)
	require.NoError(t, err)
	require.Len(t, articles, 2)

	first := articles[0]
	assert.Equal(t, "https://a.example/1", first.URL)
	assert.Equal(t, "https://m.a.example/1", first.MobileURL)
	assert.Equal(t, "One", first.Title)
	assert.Equal(t, "a.example", first.Domain)
	assert.Equal(t, "Spanish", first.Language)
	assert.Equal(t, "Mexico", first.SourceCountry)
	assert.Equal(t, time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC), first.SeenDate)
	assert.NotEqual(t, first.ID, articles[1].ID)

	// Unparseable dates leave the zero value rather than failing the page.
	assert.True(t, articles[1].SeenDate.IsZero())
}

func TestParseArticlesJSON_EmptyBody(t *testing.T) {
	articles, err := ParseArticlesJSON([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, articles)
}

func TestParseArticlesJSON_Malformed(t *testing.T) {
	_, err := ParseArticlesJSON([]byte("<html>not json</html>"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse article list")
}

func TestParseArticlesCSV(t *testing.T) {
	body := []byte("URL,MobileURL,Date,Title,Tone\n" +
		"https://a.example/1,https://m.a.example/1,2024-01-02 15:04:05,One,-3.5\n" +
		",,2024-01-02 15:04:05,no url\n" +
		"https://a.example/2,,bad-date,Two,notafloat\n")

	articles, err := ParseArticlesCSV(body)
	require.NoError(t, err)
	require.Len(t, articles, 2)

	first := articles[0]
	assert.Equal(t, "https://a.example/1", first.URL)
	assert.Equal(t, "https://m.a.example/1", first.MobileURL)
	assert.Equal(t, "One", first.Title)
	assert.Equal(t, -3.5, first.Tone)
	assert.Equal(t, time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC), first.SeenDate)

	second := articles[1]
	assert.True(t, second.SeenDate.IsZero())
	assert.Zero(t, second.Tone)
}

func TestParseArticlesCSV_NoURLColumn(t *testing.T) {
	_, err := ParseArticlesCSV([]byte("Date,Title\n2024-01-02 15:04:05,One\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no URL column")
}

func TestParseArticlesCSV_EmptyBody(t *testing.T) {
	articles, err := ParseArticlesCSV(nil)
	require.NoError(t, err)
	assert.Empty(t, articles)
}
