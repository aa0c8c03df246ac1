package segment

import (
	"strings"
	"testing"

	"textchunk/pkg/abbrev"
)

func newTestSegmenter() *Segmenter {
	guard := abbrev.NewGuard(map[string][]string{
		"titles": {"Dr.", "Mr.", "Mrs."},
		"time":   {"a.m.", "p.m."},
		"latin":  {"etc.", "i.e.", "e.g."},
	})
	return NewSegmenter(guard, DefaultOptions())
}

func TestSegmentAbbreviationNotSplit(t *testing.T) {
	s := newTestSegmenter()

	sentences := s.Segment("Dr. Smith went home. He was tired.")
	if len(sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %#v", len(sentences), sentences)
	}
	if sentences[0].Text != "Dr. Smith went home." {
		t.Errorf("first sentence = %q", sentences[0].Text)
	}
	if sentences[1].Text != " He was tired." {
		t.Errorf("second sentence = %q", sentences[1].Text)
	}
}

func TestSegmentRoundTrip(t *testing.T) {
	s := newTestSegmenter()

	docs := []struct {
		name string
		text string
	}{
		{"Simple", "One sentence here. Another sentence follows it immediately."},
		{"Abbreviations", "Dr. Smith met Mr. Jones at 3 p.m. on Monday. They talked for hours."},
		{"Decimals", "The price rose to 2.89 dollars. Analysts expected 3.50 at least."},
		{"Paragraphs", "First paragraph sentence one. Second sentence of it.\n\nSecond paragraph starts here. It also has two sentences.\n"},
		{"BlankAndWhitespaceLines", "Heading\n\n   \nBody text goes here after the gap. More body text follows.\n"},
		{"Japanese", "吾輩は猫である。名前はまだ無い。どこで生れたかとんと見当がつかぬ。\n何でも薄暗いじめじめした所でニャーニャー泣いていた事だけは記憶している。"},
		{"TrailingNewlines", "Last line has no terminator\n\n\n"},
		{"NoTrailingNewline", "Ends abruptly"},
		{"Ellipsis", "Wait... that cannot be right. Surely not."},
		{"Empty", ""},
	}

	for _, d := range docs {
		t.Run(d.name, func(t *testing.T) {
			got := Reconstruct(s.Segment(d.text))
			if got != d.text {
				t.Errorf("round-trip mismatch:\n in: %q\nout: %q", d.text, got)
			}
		})
	}
}

func TestSegmentBlankLines(t *testing.T) {
	s := newTestSegmenter()

	sentences := s.Segment("First paragraph text is long enough to stand alone.\n\nSecond paragraph text is also long enough.")
	if len(sentences) != 3 {
		t.Fatalf("expected 3 sentences (text, blank, text), got %d: %#v", len(sentences), sentences)
	}
	if sentences[1].Text != "" || sentences[1].Trailing != "\n" {
		t.Errorf("blank line sentence = %#v, want empty text carrying newline", sentences[1])
	}
}

func TestSegmentWhitespaceOnlyLine(t *testing.T) {
	s := newTestSegmenter()

	sentences := s.Segment("Some text on the first line of this doc.\n   \nMore text on the third line of this doc.")
	if len(sentences) != 3 {
		t.Fatalf("expected 3 sentences, got %d: %#v", len(sentences), sentences)
	}
	if sentences[1].Text != "" || sentences[1].Trailing != "   \n" {
		t.Errorf("whitespace line sentence = %#v", sentences[1])
	}
}

func TestSegmentShortFragmentMerge(t *testing.T) {
	s := newTestSegmenter()

	// " Yes" has no terminator and is under the merge threshold, so it
	// folds into the preceding sentence.
	sentences := s.Segment("That was the whole story about the trip. Yes")
	if len(sentences) != 1 {
		t.Fatalf("expected 1 sentence, got %d: %#v", len(sentences), sentences)
	}
	if sentences[0].Text != "That was the whole story about the trip. Yes" {
		t.Errorf("merged sentence = %q", sentences[0].Text)
	}
}

func TestSegmentAbbreviationRemnantNeverStandalone(t *testing.T) {
	s := newTestSegmenter()

	// "N." sits at a split point; it must attach to a neighbor, never
	// surface as its own sentence.
	for _, text := range []string{
		"The coordinates were N. 40 and W. 74 for the location of the site.",
		"See p. 45 for details about the experiment and its results.",
	} {
		sentences := s.Segment(text)
		for _, sent := range sentences {
			trimmed := strings.TrimSpace(sent.Text)
			if len(trimmed) <= 3 && strings.HasSuffix(trimmed, ".") {
				t.Errorf("abbreviation remnant emitted standalone: %q in %q", sent.Text, text)
			}
		}
		if got := Reconstruct(sentences); got != text {
			t.Errorf("round-trip mismatch for %q: %q", text, got)
		}
	}
}

func TestSegmentJapaneseTerminators(t *testing.T) {
	s := newTestSegmenter()

	sentences := s.Segment("今日は晴れでとても気持ちの良い天気でした。明日は雨が降るそうなので傘を持っていきます。")
	if len(sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %#v", len(sentences), sentences)
	}
	if !strings.HasSuffix(sentences[0].Text, "。") {
		t.Errorf("first sentence should end with 。: %q", sentences[0].Text)
	}
}

func TestSegmentHeadingLineStandsAlone(t *testing.T) {
	s := newTestSegmenter()

	sentences := s.Segment("Updates\nThe new release shipped yesterday with several fixes.")
	if len(sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %#v", len(sentences), sentences)
	}
	if sentences[0].Text != "Updates" || sentences[0].Trailing != "\n" {
		t.Errorf("heading sentence = %#v", sentences[0])
	}
}
