package gdelt

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// articleListResponse is the JSON body of an ArtList request.
type articleListResponse struct {
	Articles []articleJSON `json:"articles"`
}

type articleJSON struct {
	URL           string `json:"url"`
	URLMobile     string `json:"url_mobile"`
	Title         string `json:"title"`
	SeenDate      string `json:"seendate"`
	Domain        string `json:"domain"`
	Language      string `json:"language"`
	SourceCountry string `json:"sourcecountry"`
}

// ParseArticlesJSON parses a JSON article-list body into records. An empty
// body or a body with no articles yields an empty slice, not an error.
func ParseArticlesJSON(body []byte) ([]Article, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	var resp articleListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse article list: %w", err)
	}

	articles := make([]Article, 0, len(resp.Articles))
	for _, raw := range resp.Articles {
		if raw.URL == "" {
			continue
		}
		a := Article{
			ID:            uuid.New(),
			URL:           raw.URL,
			MobileURL:     raw.URLMobile,
			Title:         raw.Title,
			Domain:        raw.Domain,
			Language:      raw.Language,
			SourceCountry: raw.SourceCountry,
		}
		if t, err := time.Parse(seenDateLayout, raw.SeenDate); err == nil {
			a.SeenDate = t
		}
		articles = append(articles, a)
	}
	return articles, nil
}

// ParseArticlesCSV parses a CSV article-list body. The header row maps
// column names to fields; malformed rows are skipped rather than failing
// the page, matching the API's occasionally ragged CSV output.
func ParseArticlesCSV(body []byte) ([]Article, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	r := csv.NewReader(bytes.NewReader(body))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	if _, ok := cols["URL"]; !ok {
		return nil, fmt.Errorf("CSV body has no URL column")
	}

	var articles []Article
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Skip malformed lines.
			continue
		}

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		url := field("URL")
		if url == "" {
			continue
		}

		a := Article{
			ID:            uuid.New(),
			URL:           url,
			MobileURL:     field("MobileURL"),
			Title:         field("Title"),
			Domain:        field("Domain"),
			Language:      field("Language"),
			SourceCountry: field("SourceCountry"),
		}
		if date := field("Date"); date != "" {
			if t, err := time.Parse(dateColumnLayout, date); err == nil {
				a.SeenDate = t
			}
		}
		if tone := field("Tone"); tone != "" {
			if f, err := strconv.ParseFloat(tone, 64); err == nil {
				a.Tone = f
			}
		}
		articles = append(articles, a)
	}
	return articles, nil
}
