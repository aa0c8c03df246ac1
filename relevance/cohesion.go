package relevance

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
	"github.com/kljensen/snowball"

	"textchunk/pkg/langdetect"
)

// defaultThreshold is the keyword-overlap fraction above which two
// spans are considered confidently same-topic.
const defaultThreshold = 0.5

// tailWords bounds how much of the prior span is scanned; topic
// continuity shows up in the most recent sentences, not the whole
// accumulated chunk.
const tailWords = 120

var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "has": true, "he": true,
	"in": true, "is": true, "it": true, "its": true, "of": true, "on": true,
	"that": true, "the": true, "to": true, "was": true, "were": true, "will": true,
	"with": true, "would": true, "could": true, "should": true, "may": true,
	"might": true, "can": true, "must": true, "shall": true, "do": true,
	"does": true, "did": true, "have": true, "had": true, "this": true,
	"these": true, "they": true, "them": true, "their": true, "his": true,
	"her": true, "she": true, "we": true, "you": true, "your": true,
	"our": true, "us": true, "me": true, "my": true, "i": true, "not": true,
	"but": true, "or": true, "so": true, "if": true, "then": true, "than": true,
	"there": true, "here": true, "when": true, "where": true, "who": true,
	"which": true, "what": true, "how": true, "all": true, "also": true,
}

// CohesionFilter is the cheap lexical heuristic consulted before an
// oracle call: when enough of the candidate sentence's content words
// already occur in the prior span, the spans are confidently
// same-topic and the oracle can be skipped. It only ever answers
// same-topic; a weak signal defers to the oracle, so the filter can
// never cause an extra split.
type CohesionFilter struct {
	threshold   float64
	minKeywords int
}

func NewCohesionFilter(threshold float64) *CohesionFilter {
	if threshold <= 0 || threshold > 1 {
		threshold = defaultThreshold
	}
	return &CohesionFilter{
		threshold:   threshold,
		minKeywords: 2,
	}
}

// SameTopic reports whether candidate is confidently a continuation
// of prior. Japanese text always defers to the oracle: without word
// segmentation, stem overlap is meaningless there.
func (f *CohesionFilter) SameTopic(prior, candidate string, lang langdetect.Lang) bool {
	if lang != langdetect.English {
		return false
	}

	keywords := extractKeywords(candidate)
	if len(keywords) < f.minKeywords {
		return false
	}

	haystack := stemmedTail(prior, tailWords)
	if haystack == "" {
		return false
	}

	matcher := ahocorasick.NewStringMatcher(keywords)
	matches := matcher.Match([]byte(haystack))
	if len(matches) == 0 {
		return false
	}

	found := make(map[int]struct{}, len(matches))
	for _, idx := range matches {
		found[idx] = struct{}{}
	}

	score := float64(len(found)) / float64(len(keywords))
	return score >= f.threshold
}

// extractKeywords lowercases, strips stop words and stems the content
// words of a span, deduplicated in order.
func extractKeywords(text string) []string {
	words := contentWords(text)

	var keywords []string
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		stem := stemWord(w)
		if len(stem) < 3 || seen[stem] {
			continue
		}
		seen[stem] = true
		keywords = append(keywords, stem)
	}
	return keywords
}

// stemmedTail stems the last n content words of a span into a
// space-joined haystack for matching.
func stemmedTail(text string, n int) string {
	words := contentWords(text)
	if len(words) > n {
		words = words[len(words)-n:]
	}

	stems := make([]string, 0, len(words))
	for _, w := range words {
		stems = append(stems, stemWord(w))
	}
	return strings.Join(stems, " ")
}

func contentWords(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' {
			return r
		}
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return ' '
	}, text)

	var words []string
	for _, w := range strings.Fields(cleaned) {
		if !stopWords[w] {
			words = append(words, w)
		}
	}
	return words
}

func stemWord(word string) string {
	stem, err := snowball.Stem(word, "english", true)
	if err != nil {
		return word
	}
	return stem
}
