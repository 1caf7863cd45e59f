package summarize

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mmcdole/gofeed"
)

// ReadURLFile reads a newline-delimited list of URLs. Blank lines and lines
// starting with '#' are skipped.
func ReadURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open URL file: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read URL file: %w", err)
	}

	return urls, nil
}

// URLsFromFeed fetches an RSS or Atom feed and returns its item links in
// feed order, deduplicated. The gofeed library detects and handles both
// formats.
func URLsFromFeed(feedURL string) ([]string, error) {
	fp := gofeed.NewParser()
	feed, err := fp.ParseURL(feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	seen := make(map[string]struct{})
	var urls []string
	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}
		if _, ok := seen[item.Link]; ok {
			continue
		}
		seen[item.Link] = struct{}{}
		urls = append(urls, item.Link)
	}

	return urls, nil
}
