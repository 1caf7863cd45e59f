package summarize

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pevans/gdeltpull/gdelt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadURLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := `# sources pulled on 2024-01-02
https://a.example/1

https://b.example/2
  https://c.example/3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	urls, err := ReadURLFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://a.example/1",
		"https://b.example/2",
		"https://c.example/3",
	}, urls)
}

func TestReadURLFile_Missing(t *testing.T) {
	_, err := ReadURLFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open URL file")
}

func TestURLsFromFeed(t *testing.T) {
	rss := `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Test Feed</title>
<item><title>One</title><link>https://a.example/1</link></item>
<item><title>Two</title><link>https://a.example/2</link></item>
<item><title>Repeat</title><link>https://a.example/1</link></item>
<item><title>No link</title></item>
</channel></rss>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rss)
	}))
	defer server.Close()

	urls, err := URLsFromFeed(server.URL)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example/1", "https://a.example/2"}, urls)
}

func TestSummarize(t *testing.T) {
	text := "The volcano erupted on Tuesday. " +
		"Weather was mild. " +
		"The volcano eruption forced thousands of residents to evacuate. " +
		"Local volcano authorities said the eruption could continue for days."

	summary := Summarize(text, 2)

	// The two volcano/eruption sentences dominate the frequency scores.
	assert.Contains(t, summary, "volcano")
	assert.NotContains(t, summary, "Weather was mild")

	// Selected sentences keep their original order.
	first := strings.Index(summary, "forced thousands")
	second := strings.Index(summary, "could continue")
	if first >= 0 && second >= 0 {
		assert.Less(t, first, second)
	}
}

func TestSummarize_ShortTextReturnedWhole(t *testing.T) {
	text := "One sentence only."
	assert.Equal(t, "One sentence only.", Summarize(text, 3))
}

func TestSummarize_EmptyText(t *testing.T) {
	assert.Equal(t, "", Summarize("", 3))
}

func TestExtract(t *testing.T) {
	page := `<!DOCTYPE html><html><head><title>Volcano erupts</title></head>
<body><article>
<h1>Volcano erupts</h1>
<p>The volcano erupted on Tuesday morning, sending ash plumes over the city and
forcing the closure of the airport while emergency services assessed damage to
roads, power lines, and water treatment facilities across the region.</p>
<p>Thousands of residents were evacuated from nearby villages as lava advanced
down the mountainside, and authorities warned the eruption could continue for
several more days depending on seismic activity recorded at monitoring
stations along the northern flank of the mountain.</p>
<p>Scientists from the national geological survey said the eruption had been
preceded by weeks of small earthquakes, and that similar activity in previous
decades produced flows that reached the valley floor within seventy-two hours
of the first explosive phase.</p>
<p>Relief agencies opened shelters in three neighbouring towns and began
distributing masks and bottled water, while farmers moved livestock away from
pastures already coated in a thin layer of volcanic ash.</p>
</article></body></html>`

	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, page)
	}))
	defer server.Close()

	e := NewExtractor()
	e.HTTPClient = server.Client()

	doc, err := e.Extract(context.Background(), server.URL+"/news/volcano")
	require.NoError(t, err)
	assert.Contains(t, gotUA, "gdeltpull")
	assert.Contains(t, doc.Title, "Volcano erupts")
	assert.Contains(t, doc.Text, "erupted on Tuesday")
	assert.NotEmpty(t, doc.Domain)
}

func TestExtract_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	e := NewExtractor()
	e.HTTPClient = server.Client()

	_, err := e.Extract(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP error: 404")
}

func TestExtract_RejectsNonHTTPSchemes(t *testing.T) {
	e := NewExtractor()
	_, err := e.Extract(context.Background(), "ftp://a.example/file")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http or https")
}

func TestCountByDomain(t *testing.T) {
	articles := []gdelt.Article{
		{URL: "https://a.example/1", Domain: "a.example"},
		{URL: "https://a.example/2", Domain: "a.example"},
		{URL: "https://b.example/1"}, // domain from URL host
		{URL: ""},                    // unknown
	}

	counts := CountByDomain(articles)
	require.Len(t, counts, 3)
	assert.Equal(t, Count{Key: "a.example", N: 2}, counts[0])
	assert.Contains(t, counts, Count{Key: "b.example", N: 1})
	assert.Contains(t, counts, Count{Key: "(unknown)", N: 1})
}

func TestCountByLanguage(t *testing.T) {
	articles := []gdelt.Article{
		{URL: "u1", Language: "Spanish"},
		{URL: "u2", Language: "Spanish"},
		{URL: "u3", Language: "English"},
		{URL: "u4"},
	}

	counts := CountByLanguage(articles)
	require.Len(t, counts, 3)
	assert.Equal(t, "Spanish", counts[0].Key)
	assert.Equal(t, 2, counts[0].N)
}

func TestFormatCounts(t *testing.T) {
	out := FormatCounts("domain", []Count{{Key: "a.example", N: 2}})
	assert.Contains(t, out, "DOMAIN")
	assert.Contains(t, out, "a.example")
	assert.Contains(t, out, "2")
}
