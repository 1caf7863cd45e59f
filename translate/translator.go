// Package translate provides optional title translation for article tables,
// backed by an external translation service and a persistent cache. Many
// headlines repeat across sources and translations are slow, so cache hits
// skip the network entirely.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Translator translates text into a target language. The service behind it
// is treated as an opaque external capability.
type Translator interface {
	Translate(ctx context.Context, text, target string) (string, error)
}

// DefaultEndpoint is the public Google Translate endpoint.
const DefaultEndpoint = "https://translate.googleapis.com/translate_a/single"

// GoogleTranslator calls the public Google Translate endpoint with source
// language detection.
type GoogleTranslator struct {
	HTTPClient *http.Client
	Endpoint   string
}

// NewGoogleTranslator creates a translator with the default endpoint and a
// request timeout.
func NewGoogleTranslator() *GoogleTranslator {
	return &GoogleTranslator{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Endpoint:   DefaultEndpoint,
	}
}

// ValidateTarget checks that the target language code is a well-formed
// language tag before any network call is made.
func ValidateTarget(code string) error {
	if code == "" {
		return fmt.Errorf("translation target language is empty")
	}
	if _, err := language.Parse(code); err != nil {
		return fmt.Errorf("invalid translation target %q: %w", code, err)
	}
	return nil
}

// Translate sends one text to the translation endpoint and returns the
// translated text.
func (g *GoogleTranslator) Translate(ctx context.Context, text, target string) (string, error) {
	v := url.Values{}
	v.Set("client", "gtx")
	v.Set("sl", "auto")
	v.Set("tl", target)
	v.Set("dt", "t")
	v.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.Endpoint+"?"+v.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call translation service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translation service error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read translation response: %w", err)
	}

	translated, err := parseTranslation(body)
	if err != nil {
		return "", err
	}
	return translated, nil
}

// parseTranslation extracts the translated text from the endpoint's nested
// array response: the first element is a list of sentence pairs whose first
// entry is the translated segment.
func parseTranslation(body []byte) (string, error) {
	var outer []json.RawMessage
	if err := json.Unmarshal(body, &outer); err != nil {
		return "", fmt.Errorf("failed to parse translation response: %w", err)
	}
	if len(outer) == 0 {
		return "", fmt.Errorf("empty translation response")
	}

	var sentences [][]json.RawMessage
	if err := json.Unmarshal(outer[0], &sentences); err != nil {
		return "", fmt.Errorf("failed to parse translation sentences: %w", err)
	}

	var b strings.Builder
	for _, sentence := range sentences {
		if len(sentence) == 0 {
			continue
		}
		var segment string
		if err := json.Unmarshal(sentence[0], &segment); err == nil {
			b.WriteString(segment)
		}
	}

	if b.Len() == 0 {
		return "", fmt.Errorf("translation response contained no text")
	}
	return b.String(), nil
}
