// Package output persists article tables as CSV or JSON and bundles a run's
// output directory into a zip archive for export.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pevans/gdeltpull/gdelt"
)

// csvHeader is the fixed column order for article CSV files. The mobile URL
// is dropped from CSV output; it adds nothing for analysis.
var csvHeader = []string{
	"id", "url", "title", "translated_title", "translation_failed",
	"domain", "language", "source_country", "seen_date", "tone",
}

// WriteCSV writes the articles to a CSV file at the given path, overwriting
// any existing file.
func WriteCSV(path string, articles []gdelt.Article) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, a := range articles {
		seenDate := ""
		if !a.SeenDate.IsZero() {
			seenDate = a.SeenDate.Format(time.RFC3339)
		}
		row := []string{
			a.ID.String(),
			a.URL,
			a.Title,
			a.TranslatedTitle,
			strconv.FormatBool(a.TranslationFailed),
			a.Domain,
			a.Language,
			a.SourceCountry,
			seenDate,
			strconv.FormatFloat(a.Tone, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV output: %w", err)
	}
	return nil
}

// WriteJSON writes the articles as an indented JSON array, overwriting any
// existing file.
func WriteJSON(path string, articles []gdelt.Article) error {
	data, err := json.MarshalIndent(articles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal articles: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// ReadCSV loads articles from a CSV file previously written by WriteCSV.
func ReadCSV(path string) ([]gdelt.Article, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[name] = i
	}
	if _, ok := cols["url"]; !ok {
		return nil, fmt.Errorf("CSV file has no url column")
	}

	var articles []gdelt.Article
	for _, row := range rows[1:] {
		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}

		a := gdelt.Article{
			URL:             field("url"),
			Title:           field("title"),
			TranslatedTitle: field("translated_title"),
			Domain:          field("domain"),
			Language:        field("language"),
			SourceCountry:   field("source_country"),
		}
		if a.URL == "" {
			continue
		}
		if id, err := uuid.Parse(field("id")); err == nil {
			a.ID = id
		}
		if t, err := time.Parse(time.RFC3339, field("seen_date")); err == nil {
			a.SeenDate = t
		}
		if tone, err := strconv.ParseFloat(field("tone"), 64); err == nil {
			a.Tone = tone
		}
		a.TranslationFailed = field("translation_failed") == "true"

		articles = append(articles, a)
	}
	return articles, nil
}

// ReadJSON loads articles from a JSON file previously written by WriteJSON.
func ReadJSON(path string) ([]gdelt.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var articles []gdelt.Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, fmt.Errorf("failed to parse articles: %w", err)
	}
	return articles, nil
}
