package segment

import (
	"strings"
	"unicode/utf8"

	"textchunk/pkg/abbrev"
)

// Sentence is one segmented unit plus the exact whitespace that
// followed it in the source. Concatenating Text+Trailing over a
// segmentation reproduces the input byte for byte.
type Sentence struct {
	Text     string
	Trailing string
}

// Options tunes fragment handling. The thresholds are operating
// points, not load-bearing constants.
type Options struct {
	// MergeThreshold is the rune length under which an unterminated
	// fragment is folded into the neighboring sentence.
	MergeThreshold int
	// RemnantLimit is the maximum rune length of a period-terminated
	// fragment still treated as an abbreviation remnant and carried
	// forward instead of emitted on its own.
	RemnantLimit int
}

// DefaultOptions mirrors the thresholds the engine has been operated
// with.
func DefaultOptions() Options {
	return Options{
		MergeThreshold: 20,
		RemnantLimit:   3,
	}
}

// Segmenter splits raw text into an ordered sequence of sentences,
// protecting abbreviation periods while it scans for terminators.
type Segmenter struct {
	guard *abbrev.Guard
	opts  Options
}

func NewSegmenter(guard *abbrev.Guard, opts Options) *Segmenter {
	if opts.MergeThreshold <= 0 {
		opts.MergeThreshold = DefaultOptions().MergeThreshold
	}
	if opts.RemnantLimit <= 0 {
		opts.RemnantLimit = DefaultOptions().RemnantLimit
	}
	return &Segmenter{guard: guard, opts: opts}
}

// Segment splits text into sentences. Line breaks are preserved as
// trailing whitespace; whitespace-only lines become empty sentences
// carrying their whitespace so blank-line structure survives.
func (s *Segmenter) Segment(text string) []Sentence {
	if text == "" {
		return nil
	}

	protected := s.guard.Protect(text)
	lines := strings.Split(protected, "\n")

	var out []Sentence
	for i, line := range lines {
		last := i == len(lines)-1
		sep := "\n"
		if last {
			sep = ""
		}

		if last && line == "" {
			// Input ended with a newline already accounted for.
			continue
		}

		if strings.TrimSpace(line) == "" {
			out = append(out, Sentence{Text: "", Trailing: s.guard.Restore(line) + sep})
			continue
		}

		sentences, wsSuffix := s.splitLine(line)
		for j, raw := range sentences {
			sent := Sentence{Text: s.guard.Restore(raw)}
			if j == len(sentences)-1 {
				sent.Trailing = s.guard.Restore(wsSuffix) + sep
			}
			out = append(out, sent)
		}
	}

	return out
}

// splitLine cuts one line at sentence terminators and resolves
// fragment merging. The returned sentences concatenated with the
// whitespace suffix reproduce the line exactly.
func (s *Segmenter) splitLine(line string) (sentences []string, wsSuffix string) {
	frags := splitTerminators(line)

	var carry string
	for _, frag := range frags {
		frag = carry + frag
		carry = ""

		trimmed := strings.TrimSpace(frag)
		if trimmed == "" {
			// Whitespace tail after the final terminator; attach to
			// the previous sentence's trailing whitespace.
			wsSuffix = frag
			continue
		}

		tlen := utf8.RuneCountInString(trimmed)
		switch {
		case s.isRemnant(trimmed, tlen):
			// Abbreviation remnants wait for the next fragment so
			// they never surface as standalone sentences.
			carry = frag
		case tlen < s.opts.MergeThreshold && !endsWithTerminator(trimmed) && len(sentences) > 0:
			// Spurious short tail without a terminator.
			sentences[len(sentences)-1] += frag
		default:
			sentences = append(sentences, frag)
		}
	}

	if carry != "" {
		if len(sentences) > 0 {
			sentences[len(sentences)-1] += carry
		} else {
			sentences = append(sentences, carry)
		}
	}

	return sentences, wsSuffix
}

func (s *Segmenter) isRemnant(trimmed string, runeLen int) bool {
	restored := s.guard.Restore(trimmed)
	return utf8.RuneCountInString(restored) <= s.opts.RemnantLimit &&
		strings.HasSuffix(restored, ".")
}

// splitTerminators cuts after every terminator rune not followed by a
// digit or Latin letter. Whitespace after a terminator stays at the
// head of the next fragment so nothing is lost.
func splitTerminators(line string) []string {
	runes := []rune(line)
	var frags []string
	start := 0

	for i, r := range runes {
		if !isTerminator(r) {
			continue
		}
		if i+1 < len(runes) && isDigitOrLatin(runes[i+1]) {
			// Decimal point ("2.89") or interior period; not a
			// sentence boundary.
			continue
		}
		frags = append(frags, string(runes[start:i+1]))
		start = i + 1
	}
	if start < len(runes) {
		frags = append(frags, string(runes[start:]))
	}
	return frags
}

func isTerminator(r rune) bool {
	switch r {
	case '.', '!', '?', '。', '！', '？':
		return true
	}
	return false
}

func endsWithTerminator(s string) bool {
	r, size := utf8.DecodeLastRuneInString(s)
	if size == 0 {
		return false
	}
	return isTerminator(r)
}

func isDigitOrLatin(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// Reconstruct joins a sentence sequence back into the original text.
func Reconstruct(sentences []Sentence) string {
	var b strings.Builder
	for _, s := range sentences {
		b.WriteString(s.Text)
		b.WriteString(s.Trailing)
	}
	return b.String()
}
