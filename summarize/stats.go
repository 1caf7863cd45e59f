package summarize

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/pevans/gdeltpull/gdelt"
)

// Count is one row of a grouped count.
type Count struct {
	Key string
	N   int
}

// CountByDomain groups articles by source domain. Records without a domain
// fall back to the URL host; records with neither are grouped under
// "(unknown)".
func CountByDomain(articles []gdelt.Article) []Count {
	counts := make(map[string]int)
	for _, a := range articles {
		domain := a.Domain
		if domain == "" {
			if u, err := url.Parse(a.URL); err == nil && u.Host != "" {
				domain = u.Host
			}
		}
		if domain == "" {
			domain = "(unknown)"
		}
		counts[domain]++
	}
	return sortCounts(counts)
}

// CountByLanguage groups articles by language. Records without a language
// are grouped under "(unknown)".
func CountByLanguage(articles []gdelt.Article) []Count {
	counts := make(map[string]int)
	for _, a := range articles {
		lang := a.Language
		if lang == "" {
			lang = "(unknown)"
		}
		counts[lang]++
	}
	return sortCounts(counts)
}

// sortCounts orders groups by descending count, then key for stable output.
func sortCounts(counts map[string]int) []Count {
	out := make([]Count, 0, len(counts))
	for k, n := range counts {
		out = append(out, Count{Key: k, N: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].N != out[j].N {
			return out[i].N > out[j].N
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// FormatCounts renders grouped counts as a fixed-width table for display.
func FormatCounts(heading string, counts []Count) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-40s %s\n", strings.ToUpper(heading), "COUNT")
	fmt.Fprintln(&b, strings.Repeat("-", 46))
	for _, c := range counts {
		key := c.Key
		if len(key) > 40 {
			key = key[:37] + "..."
		}
		fmt.Fprintf(&b, "%-40s %d\n", key, c.N)
	}
	return b.String()
}
