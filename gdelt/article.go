package gdelt

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Article represents one row of metadata describing a single matched news
// article. Records are immutable once parsed, except for the translation
// fields which the translate step fills in.
type Article struct {
	ID                uuid.UUID `json:"id"`
	URL               string    `json:"url"`
	MobileURL         string    `json:"mobile_url,omitempty"`
	Title             string    `json:"title"`
	TranslatedTitle   string    `json:"translated_title,omitempty"`
	TranslationFailed bool      `json:"translation_failed,omitempty"`
	Domain            string    `json:"domain,omitempty"`
	Language          string    `json:"language,omitempty"`
	SourceCountry     string    `json:"source_country,omitempty"`
	SeenDate          time.Time `json:"seen_date"`
	Tone              float64   `json:"tone,omitempty"`
}

// Table is an ordered sequence of articles deduplicated by URL. Appends of a
// URL that has already been seen are dropped, so the first occurrence wins
// and first-appearance order is preserved.
type Table struct {
	articles []Article
	byURL    map[string]struct{}
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{byURL: make(map[string]struct{})}
}

// Append adds an article to the table. It returns false without modifying
// the table when the URL is empty or has already been seen.
func (t *Table) Append(a Article) bool {
	if a.URL == "" {
		return false
	}
	if _, ok := t.byURL[a.URL]; ok {
		return false
	}
	t.byURL[a.URL] = struct{}{}
	t.articles = append(t.articles, a)
	return true
}

// AppendAll appends a batch of articles and returns how many were new.
func (t *Table) AppendAll(articles []Article) int {
	added := 0
	for _, a := range articles {
		if t.Append(a) {
			added++
		}
	}
	return added
}

// Len returns the number of unique articles in the table.
func (t *Table) Len() int {
	return len(t.articles)
}

// Articles returns the backing slice in first-appearance order. Callers that
// mutate records (e.g. the translation step) modify the table's contents.
func (t *Table) Articles() []Article {
	return t.articles
}

// URLs returns the set of article URLs in first-appearance order.
func (t *Table) URLs() []string {
	urls := make([]string, 0, len(t.articles))
	for _, a := range t.articles {
		urls = append(urls, a.URL)
	}
	return urls
}

// EarliestSeen returns the earliest SeenDate in the table, or false when the
// table is empty or no record carries a date.
func (t *Table) EarliestSeen() (time.Time, bool) {
	var earliest time.Time
	found := false
	for _, a := range t.articles {
		if a.SeenDate.IsZero() {
			continue
		}
		if !found || a.SeenDate.Before(earliest) {
			earliest = a.SeenDate
			found = true
		}
	}
	return earliest, found
}

// NormalizeTitle reduces a headline to its leading segment so that
// "headline", "headline | source", and "headline (from source)" compare as
// equal. Splits on the first "|" or "(" and trims whitespace.
func NormalizeTitle(title string) string {
	if i := strings.IndexAny(title, "|("); i >= 0 {
		title = title[:i]
	}
	return strings.TrimSpace(title)
}

// DedupeByHeadline returns the articles whose normalised title has not
// appeared earlier in the sequence. Records with empty titles are kept.
func DedupeByHeadline(articles []Article) []Article {
	seen := make(map[string]struct{})
	var out []Article
	for _, a := range articles {
		key := NormalizeTitle(a.Title)
		if key != "" {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
		}
		out = append(out, a)
	}
	return out
}
