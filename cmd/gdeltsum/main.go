package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pevans/gdeltpull/gdelt"
	"github.com/pevans/gdeltpull/output"
	"github.com/pevans/gdeltpull/summarize"
)

func main() {
	urlFile := flag.String("urls", "urls.txt", "Newline-delimited file of article URLs")
	tablePath := flag.String("table", "", "Read URLs from a saved article table (.csv or .json) instead")
	feedURL := flag.String("feed", "", "Read URLs from the items of an RSS/Atom feed instead")
	sentences := flag.Int("sentences", 3, "Number of sentences per summary")
	statsOut := flag.String("stats-out", "", "Also write the grouped counts to this CSV file")
	flag.Parse()

	articles, err := loadArticles(*urlFile, *tablePath, *feedURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(articles) == 0 {
		fmt.Println("No URLs to summarise.")
		return
	}

	extractor := summarize.NewExtractor()
	ctx := context.Background()

	succeeded := 0
	for _, a := range articles {
		fmt.Println(a.URL)

		doc, err := extractor.Extract(ctx, a.URL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to summarise article: %v\n", err)
			fmt.Println()
			continue
		}

		fmt.Println(doc.Title)
		fmt.Println(summarize.Summarize(doc.Text, *sentences))
		fmt.Println()
		succeeded++
	}

	byDomain := summarize.CountByDomain(articles)
	byLanguage := summarize.CountByLanguage(articles)

	fmt.Printf("Summarised %d of %d articles.\n", succeeded, len(articles))
	fmt.Println()
	fmt.Print(summarize.FormatCounts("domain", byDomain))
	if *tablePath != "" {
		// Language is only known when the input came from a saved table.
		fmt.Println()
		fmt.Print(summarize.FormatCounts("language", byLanguage))
	}

	if *statsOut != "" {
		counts := byDomain
		if *tablePath != "" {
			counts = append(counts, byLanguage...)
		}
		if err := writeCountsCSV(*statsOut, counts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✓ Wrote stats to %s\n", *statsOut)
	}

	if succeeded == 0 {
		os.Exit(1)
	}
}

// loadArticles resolves the input source: a saved table, a feed, or a plain
// URL file. Table input keeps the stored metadata; the other sources carry
// only URLs.
func loadArticles(urlFile, tablePath, feedURL string) ([]gdelt.Article, error) {
	switch {
	case tablePath != "" && feedURL != "":
		return nil, fmt.Errorf("use either -table or -feed, not both")
	case tablePath != "":
		switch strings.ToLower(filepath.Ext(tablePath)) {
		case ".json":
			return output.ReadJSON(tablePath)
		case ".csv":
			return output.ReadCSV(tablePath)
		default:
			return nil, fmt.Errorf("unsupported table format %q: expected .csv or .json", filepath.Ext(tablePath))
		}
	case feedURL != "":
		urls, err := summarize.URLsFromFeed(feedURL)
		if err != nil {
			return nil, err
		}
		return urlArticles(urls), nil
	default:
		urls, err := summarize.ReadURLFile(urlFile)
		if err != nil {
			return nil, err
		}
		return urlArticles(urls), nil
	}
}

func urlArticles(urls []string) []gdelt.Article {
	articles := make([]gdelt.Article, 0, len(urls))
	for _, u := range urls {
		articles = append(articles, gdelt.Article{URL: u})
	}
	return articles
}

// writeCountsCSV exports grouped counts as a two-column CSV.
func writeCountsCSV(path string, counts []summarize.Count) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create stats file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"key", "count"}); err != nil {
		return fmt.Errorf("failed to write stats header: %w", err)
	}
	for _, c := range counts {
		if err := w.Write([]string{c.Key, strconv.Itoa(c.N)}); err != nil {
			return fmt.Errorf("failed to write stats row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush stats file: %w", err)
	}
	return nil
}
