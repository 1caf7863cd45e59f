package gdelt

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultRateLimit is the pause between requests imposed by the v2 API's
// rate limit. Disable at your own risk.
const DefaultRateLimit = 5 * time.Second

// stuckStep is how far the fetch loop pushes the window back when a page
// makes no progress. sparseStep is the jump for windows with no data at all;
// each request only searches about the last 3 months, so an empty page means
// nothing in that span, not necessarily nothing before it.
const (
	stuckStep  = 6 * time.Hour
	sparseStep = 90 * 24 * time.Hour
)

// PageError describes a page that was skipped after exhausting retries. A
// run with page errors still produces a partial table.
type PageError struct {
	EndDateTime string
	Err         error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page ending %s: %v", HumanTimestamp(e.EndDateTime), e.Err)
}

// Client issues sequential requests against the DOC API. All calls complete
// before the next is issued; the only pacing is the rate-limit sleep.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	UserAgent  string

	// Retries is the number of additional attempts after a transient
	// failure (timeout or 5xx). RetryDelay is the fixed pause between
	// attempts; there is no backoff.
	Retries    int
	RetryDelay time.Duration

	// RateLimit is the sleep after each request. Zero disables it.
	RateLimit time.Duration

	// Progress, when set, receives one line per page for the operator.
	Progress func(format string, args ...any)

	// OnPage, when set, is invoked after each page is merged into the
	// table, so a partial result can be checkpointed to disk.
	OnPage func(*Table)
}

// NewClient creates a client with the default endpoint, timeouts, and the
// 5-second rate-limit sleep.
func NewClient() *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		BaseURL:    DefaultBaseURL,
		UserAgent:  "gdeltpull/1.0 (GDELT DOC 2.0 article puller)",
		Retries:    2,
		RetryDelay: 2 * time.Second,
		RateLimit:  DefaultRateLimit,
	}
}

// FetchArticles pages through the article list for the given parameters,
// working backwards from the end time to the start time: each page's
// earliest article date becomes the next window's end. A window that makes
// no progress is pushed back 6 hours; a window with no data jumps back 90
// days. Pages that fail after retries are recorded as PageErrors and
// skipped, so a partial table is still returned.
//
// The returned error is non-nil only for invalid parameters (reported
// before any request is made) or a cancelled context.
func (c *Client) FetchArticles(ctx context.Context, p Params) (*Table, []PageError, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}

	table := NewTable()
	var pageErrors []PageError

	end := p.End
	seen := make(map[string]struct{})

	// Fixed-width timestamps compare chronologically as strings.
	for end > p.Start {
		if ctx.Err() != nil {
			return table, pageErrors, ctx.Err()
		}

		if _, ok := seen[end]; ok {
			next, err := PushBack(end, stuckStep)
			if err != nil {
				return table, pageErrors, err
			}
			end = next
			continue
		}
		seen[end] = struct{}{}

		c.progress("Pulling until: %s", HumanTimestamp(end))

		body, err := c.get(ctx, p.ArticleListURL(c.BaseURL, end))
		if err != nil {
			if ctx.Err() != nil {
				return table, pageErrors, ctx.Err()
			}
			pageErrors = append(pageErrors, PageError{EndDateTime: end, Err: err})
			c.sleep(ctx, c.RateLimit)
			continue
		}

		articles, err := ParseArticlesJSON(body)
		if err != nil {
			pageErrors = append(pageErrors, PageError{EndDateTime: end, Err: err})
			c.sleep(ctx, c.RateLimit)
			continue
		}

		if len(articles) == 0 {
			next, err := PushBack(end, sparseStep)
			if err != nil {
				return table, pageErrors, err
			}
			end = next
			c.sleep(ctx, c.RateLimit)
			continue
		}

		table.AppendAll(articles)
		if c.OnPage != nil {
			c.OnPage(table)
		}

		if next := earliestTimestamp(articles); next != "" && next < end {
			end = next
		}

		c.sleep(ctx, c.RateLimit)
	}

	return table, pageErrors, nil
}

// FetchTimeline performs a single CSV request for a timeline or aggregate
// mode, with the same retry policy as article pages.
func (c *Client) FetchTimeline(ctx context.Context, p Params, mode string) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	c.progress("Pulling data for: %s", mode)

	body, err := c.get(ctx, p.TimelineURL(c.BaseURL, mode))
	if err != nil {
		return nil, err
	}
	c.sleep(ctx, c.RateLimit)
	return body, nil
}

// earliestTimestamp returns the earliest SeenDate in the batch as an API
// timestamp, or "" when no record carries a date.
func earliestTimestamp(articles []Article) string {
	var earliest time.Time
	found := false
	for _, a := range articles {
		if a.SeenDate.IsZero() {
			continue
		}
		if !found || a.SeenDate.Before(earliest) {
			earliest = a.SeenDate
			found = true
		}
	}
	if !found {
		return ""
	}
	return FormatTimestamp(earliest)
}

// get performs one GET with retries on transient failures. 4xx responses
// are not retried; 5xx responses and transport errors are retried up to
// Retries additional times with a fixed delay.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.Retries; attempt++ {
		if attempt > 0 {
			c.sleep(ctx, c.RetryDelay)
			if ctx.Err() != nil {
				return nil, lastErr
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", c.UserAgent)

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("failed to fetch URL: %w", err)
			if ctx.Err() != nil {
				return nil, lastErr
			}
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
		}
		if readErr != nil {
			lastErr = fmt.Errorf("failed to read response body: %w", readErr)
			continue
		}

		return body, nil
	}

	return nil, lastErr
}

func (c *Client) sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

func (c *Client) progress(format string, args ...any) {
	if c.Progress != nil {
		c.Progress(format, args...)
	}
}
