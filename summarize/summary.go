package summarize

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// sentencePattern matches one sentence: text up to and including its
// terminal punctuation.
var sentencePattern = regexp.MustCompile(`[^.!?\n]+[.!?]*`)

// stopwords are excluded from frequency scoring so summaries favour
// sentences dense in content words.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "for": {}, "from": {}, "has": {}, "have": {},
	"he": {}, "her": {}, "his": {}, "in": {}, "is": {}, "it": {}, "its": {},
	"of": {}, "on": {}, "or": {}, "said": {}, "she": {}, "that": {},
	"the": {}, "their": {}, "they": {}, "this": {}, "to": {}, "was": {},
	"were": {}, "which": {}, "will": {}, "with": {},
}

// Summarize produces an extractive summary of at most maxSentences
// sentences: sentences are scored by the normalised frequency of their
// content words and the highest-scoring ones are returned in original
// order.
func Summarize(text string, maxSentences int) string {
	if maxSentences < 1 {
		maxSentences = 1
	}

	sentences := splitSentences(text)
	if len(sentences) <= maxSentences {
		return strings.Join(sentences, " ")
	}

	// Document-wide word frequencies, normalised by the most frequent word.
	freq := make(map[string]float64)
	for _, s := range sentences {
		for _, w := range tokenize(s) {
			freq[w]++
		}
	}
	maxFreq := 0.0
	for _, f := range freq {
		if f > maxFreq {
			maxFreq = f
		}
	}
	if maxFreq == 0 {
		return strings.Join(sentences[:maxSentences], " ")
	}
	for w := range freq {
		freq[w] /= maxFreq
	}

	type scored struct {
		index int
		score float64
	}
	scores := make([]scored, len(sentences))
	for i, s := range sentences {
		words := tokenize(s)
		total := 0.0
		for _, w := range words {
			total += freq[w]
		}
		// Average rather than sum, so long sentences don't win on length
		// alone.
		if len(words) > 0 {
			total /= float64(len(words))
		}
		scores[i] = scored{index: i, score: total}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	picked := scores[:maxSentences]
	sort.Slice(picked, func(i, j int) bool {
		return picked[i].index < picked[j].index
	})

	parts := make([]string, 0, len(picked))
	for _, p := range picked {
		parts = append(parts, sentences[p.index])
	}
	return strings.Join(parts, " ")
}

// splitSentences breaks text into trimmed sentences, dropping empty
// fragments.
func splitSentences(text string) []string {
	var sentences []string
	for _, s := range sentencePattern.FindAllString(text, -1) {
		s = strings.TrimSpace(s)
		if s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// tokenize lowercases a sentence and returns its content words.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	var words []string
	for _, f := range fields {
		if _, ok := stopwords[f]; ok {
			continue
		}
		words = append(words, f)
	}
	return words
}
