package gdelt

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultBaseURL is the GDELT DOC 2.0 API endpoint.
const DefaultBaseURL = "https://api.gdeltproject.org/api/v2/doc/doc"

// MaxRecordsPerCall is the API's per-request article cap. Every article-list
// URL the builder produces carries this limit.
const MaxRecordsPerCall = 250

// Params holds the query parameters for one run. A Params value is built
// interactively or loaded from a saved run configuration, validated once, and
// then passed through the pipeline unchanged.
type Params struct {
	Keywords      []string `json:"keywords"`
	KeywordFormat string   `json:"keyword_format,omitempty"` // "AND" or "OR", used with multiple keywords
	Language      string   `json:"language,omitempty"`
	Country       string   `json:"country,omitempty"`
	Domain        string   `json:"domain,omitempty"`
	Theme         string   `json:"theme,omitempty"`
	Custom        string   `json:"custom,omitempty"` // raw extra query operators, passed through verbatim
	Start         string   `json:"start"`            // YYYYMMDDHHMMSS
	End           string   `json:"end"`              // YYYYMMDDHHMMSS
	Translation   string   `json:"translation,omitempty"`
}

// Validate checks the parameters before any network call is made. It fails
// fast on missing keywords, malformed timestamps, and an end time earlier
// than the start time.
func (p *Params) Validate() error {
	var keywords []string
	for _, k := range p.Keywords {
		if strings.TrimSpace(k) != "" {
			keywords = append(keywords, k)
		}
	}
	if len(keywords) == 0 {
		return fmt.Errorf("at least one keyword is required")
	}

	switch p.KeywordFormat {
	case "", "AND", "OR":
	default:
		return fmt.Errorf("invalid keyword format %q: must be AND or OR", p.KeywordFormat)
	}

	start, err := ParseTimestamp(p.Start)
	if err != nil {
		return fmt.Errorf("invalid start time: %w", err)
	}
	end, err := ParseTimestamp(p.End)
	if err != nil {
		return fmt.Errorf("invalid end time: %w", err)
	}
	if end.Before(start) {
		return fmt.Errorf("end time %s is before start time %s",
			HumanTimestamp(p.End), HumanTimestamp(p.Start))
	}

	return nil
}

// Query builds the GDELT query expression: the keyword clause plus any
// filter operators. Phrases are quoted so multi-word keywords match as
// phrases rather than as separate words.
func (p *Params) Query() string {
	var parts []string

	if clause := p.keywordClause(); clause != "" {
		parts = append(parts, clause)
	}
	if p.Language != "" {
		parts = append(parts, "SourceLang:"+p.Language)
	}
	if p.Country != "" {
		parts = append(parts, "SourceCountry:"+p.Country)
	}
	if p.Domain != "" {
		parts = append(parts, "DomainIs:"+p.Domain)
	}
	if p.Theme != "" {
		parts = append(parts, "Theme:"+strings.ToUpper(p.Theme))
	}
	if p.Custom != "" {
		parts = append(parts, p.Custom)
	}

	return strings.Join(parts, " ")
}

// keywordClause formats the keyword list. A single keyword is a quoted
// phrase. Multiple keywords are joined per KeywordFormat: OR produces
// ("a" OR "b"), AND produces "a" "b". An unknown format with multiple
// keywords falls back to the first keyword alone.
func (p *Params) keywordClause() string {
	var keywords []string
	for _, k := range p.Keywords {
		if strings.TrimSpace(k) != "" {
			keywords = append(keywords, strings.TrimSpace(k))
		}
	}
	if len(keywords) == 0 {
		return ""
	}
	if len(keywords) == 1 {
		return `"` + keywords[0] + `"`
	}

	switch p.KeywordFormat {
	case "OR":
		return `("` + strings.Join(keywords, `" OR "`) + `")`
	case "AND":
		return `"` + strings.Join(keywords, `" "`) + `"`
	default:
		return `"` + keywords[0] + `"`
	}
}

// ArticleListURL builds a full article-list request URL for the window
// ending at the given timestamp. Every URL carries the per-call record cap.
// An empty end omits EndDateTime, which the API treats as "now".
func (p *Params) ArticleListURL(baseURL, end string) string {
	v := url.Values{}
	v.Set("query", p.Query())
	v.Set("mode", "ArtList")
	v.Set("maxrecords", fmt.Sprintf("%d", MaxRecordsPerCall))
	v.Set("sort", "DateDesc")
	v.Set("format", "json")
	v.Set("STARTDATETIME", p.Start)
	if end != "" {
		v.Set("ENDDATETIME", end)
	}
	return baseURL + "?" + v.Encode()
}

// TimelineURL builds a request URL for a timeline or aggregate mode. These
// modes return CSV. Tone modes do not accept a sort parameter.
func (p *Params) TimelineURL(baseURL, mode string) string {
	v := url.Values{}
	v.Set("query", p.Query())
	v.Set("mode", mode)
	v.Set("format", "csv")
	if !strings.Contains(mode, "Tone") {
		v.Set("sort", "DateDesc")
	}
	v.Set("STARTDATETIME", p.Start)
	if p.End != "" {
		v.Set("ENDDATETIME", p.End)
	}
	return baseURL + "?" + v.Encode()
}

// TimelineModes returns the aggregate modes to pull for these parameters.
// The per-language and per-country breakdowns are only useful when the query
// is not already restricted to one language or country.
func (p *Params) TimelineModes() []string {
	modes := []string{"TimelineVolRaw", "TimelineVolInfo", "TimelineTone", "ToneChart"}
	if p.Language == "" {
		modes = append(modes, "TimelineLang")
	}
	if p.Country == "" {
		modes = append(modes, "TimelineSourceCountry")
	}
	return modes
}
