package abbrev

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Sentinel temporarily replaces a period that belongs to an
// abbreviation so the sentence segmenter does not treat it as a
// terminator. Private-use rune, never expected in document text.
const Sentinel = '\uF8FF'

var fallbackPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Z]\.$`),
	regexp.MustCompile(`^[A-Z][a-z]+\.$`),
	regexp.MustCompile(`^[a-z]+\.$`),
}

// Guard protects abbreviation periods from sentence-boundary
// detection. The vocabulary is loaded once and immutable afterwards.
type Guard struct {
	abbreviations map[string]struct{}
	replacer      *strings.Replacer
}

// NewGuard builds a Guard from a category -> abbreviations mapping,
// flattened into a single lookup set. A nil or empty vocabulary is
// valid; the pattern-based fallback rules still apply.
func NewGuard(vocab map[string][]string) *Guard {
	set := make(map[string]struct{})
	for _, entries := range vocab {
		for _, abbr := range entries {
			if abbr != "" {
				set[abbr] = struct{}{}
			}
		}
	}

	// Longest-first ordering so that e.g. "U.S.A." is protected as a
	// whole before "U.S." can match inside it.
	ordered := make([]string, 0, len(set))
	for abbr := range set {
		if strings.Contains(abbr, ".") {
			ordered = append(ordered, abbr)
		}
	}
	sort.Slice(ordered, func(i, j int) bool {
		if len(ordered[i]) != len(ordered[j]) {
			return len(ordered[i]) > len(ordered[j])
		}
		return ordered[i] < ordered[j]
	})

	var replacer *strings.Replacer
	if len(ordered) > 0 {
		pairs := make([]string, 0, len(ordered)*2)
		for _, abbr := range ordered {
			pairs = append(pairs, abbr, strings.ReplaceAll(abbr, ".", string(Sentinel)))
		}
		replacer = strings.NewReplacer(pairs...)
	}

	return &Guard{
		abbreviations: set,
		replacer:      replacer,
	}
}

// LoadGuard reads a YAML vocabulary file and builds a Guard. A load
// failure degrades to an empty vocabulary with a warning; the engine
// must keep working on pattern rules alone.
func LoadGuard(path string, logger *zap.Logger) *Guard {
	vocab, err := loadVocabulary(path)
	if err != nil {
		logger.Warn("abbreviation vocabulary unavailable, using pattern rules only",
			zap.String("path", path),
			zap.Error(err))
		return NewGuard(nil)
	}
	return NewGuard(vocab)
}

func loadVocabulary(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file: %w", err)
	}

	var vocab map[string][]string
	if err := yaml.Unmarshal(data, &vocab); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary file: %w", err)
	}
	return vocab, nil
}

// Size returns the number of loaded abbreviations.
func (g *Guard) Size() int {
	return len(g.abbreviations)
}

// IsAbbreviation reports whether token is a known abbreviation, either
// by vocabulary membership or by one of the fallback patterns: single
// capital + period, capitalized word + period, lowercase word + period.
func (g *Guard) IsAbbreviation(token string) bool {
	if _, ok := g.abbreviations[token]; ok {
		return true
	}
	for _, pat := range fallbackPatterns {
		if pat.MatchString(token) {
			return true
		}
	}
	return false
}

// Protect replaces abbreviation periods with the sentinel rune.
// Vocabulary entries are replaced longest-first; tokens matching the
// fallback patterns are protected only when the period cannot be a
// sentence terminator (next content on the line is lowercase or a
// digit, or the period is an initial). Protected text no longer
// matches any trigger pattern, so Protect is idempotent.
func (g *Guard) Protect(text string) string {
	if g.replacer != nil {
		text = g.replacer.Replace(text)
	}
	return protectPatterns(text)
}

// Restore replaces every sentinel back with a period.
// Restore(Protect(x)) == x for any x free of the sentinel rune.
func (g *Guard) Restore(text string) string {
	return strings.ReplaceAll(text, string(Sentinel), ".")
}

func protectPatterns(text string) string {
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))

	i := 0
	for i < len(runes) {
		if !isASCIILetter(runes[i]) {
			b.WriteRune(runes[i])
			i++
			continue
		}

		start := i
		for i < len(runes) && isASCIILetter(runes[i]) {
			i++
		}
		word := runes[start:i]

		if i < len(runes) && runes[i] == '.' && shouldProtect(word, runes, i) {
			b.WriteString(string(word))
			b.WriteRune(Sentinel)
			i++
			continue
		}
		b.WriteString(string(word))
	}
	return b.String()
}

// shouldProtect decides whether the period at dot belongs to the word
// as an abbreviation rather than terminating a sentence.
func shouldProtect(word []rune, runes []rune, dot int) bool {
	single := len(word) == 1 && isUpper(word[0])
	if !single && !matchesWordPattern(word) {
		return false
	}

	// Initials like "J. Smith" keep their period regardless of what
	// follows.
	if single {
		return true
	}

	j := dot + 1
	if j < len(runes) && (isASCIILetter(runes[j]) || isDigit(runes[j])) {
		// Interior period ("e.g.", "example.com"); never a terminator.
		return true
	}
	for j < len(runes) && (runes[j] == ' ' || runes[j] == '\t') {
		j++
	}
	if j >= len(runes) || runes[j] == '\n' {
		// End of line: this period terminates the sentence.
		return false
	}
	// A genuine sentence never starts with a lowercase letter or a
	// bare digit, so the period must belong to the word before it.
	return isLower(runes[j]) || isDigit(runes[j])
}

func matchesWordPattern(word []rune) bool {
	if len(word) == 0 {
		return false
	}
	if isUpper(word[0]) {
		// Capitalized word: remainder must be all lowercase.
		for _, r := range word[1:] {
			if !isLower(r) {
				return false
			}
		}
		return len(word) > 1
	}
	for _, r := range word {
		if !isLower(r) {
			return false
		}
	}
	return true
}

func isASCIILetter(r rune) bool { return isUpper(r) || isLower(r) }
func isUpper(r rune) bool       { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool       { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool       { return r >= '0' && r <= '9' }
