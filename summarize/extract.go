// Package summarize fetches article pages from a list of URLs, extracts
// their readable text, and produces short extractive summaries and simple
// descriptive statistics.
package summarize

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// Doc holds the extracted content of one article page.
type Doc struct {
	URL    string
	Domain string
	Title  string
	Text   string
}

// Extractor fetches article pages and extracts their readable content.
type Extractor struct {
	HTTPClient *http.Client
	UserAgent  string
}

// NewExtractor creates an extractor with a request timeout.
func NewExtractor() *Extractor {
	return &Extractor{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		UserAgent:  "gdeltpull/1.0 (article summariser)",
	}
}

// Extract fetches the page at the given URL and extracts its title and
// readable text. Readability does the main extraction; when it finds no
// title the <title> element is used as a fallback.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*Doc, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid article URL: %w", err)
	}
	if pageURL.Scheme != "http" && pageURL.Scheme != "https" {
		return nil, fmt.Errorf("article URL must use http or https scheme")
	}

	body, err := e.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to extract content: %w", err)
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		if doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body)); err == nil {
			title = strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
		}
	}
	if title == "" {
		title = "(No title)"
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return nil, fmt.Errorf("no readable content extracted from %s", rawURL)
	}

	return &Doc{
		URL:    rawURL,
		Domain: pageURL.Host,
		Title:  title,
		Text:   text,
	}, nil
}

// fetch performs the page GET with the extractor's User-Agent.
func (e *Extractor) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", e.UserAgent)

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
