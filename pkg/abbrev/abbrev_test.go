package abbrev

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func testVocab() map[string][]string {
	return map[string][]string{
		"titles":   {"Dr.", "Mr.", "Mrs."},
		"time":     {"a.m.", "p.m."},
		"business": {"Corp.", "Inc."},
		"places":   {"U.S.", "U.S.A."},
	}
}

func TestIsAbbreviation(t *testing.T) {
	g := NewGuard(testVocab())

	testCases := []struct {
		name     string
		token    string
		expected bool
	}{
		{"VocabularyMember", "Dr.", true},
		{"VocabularyMemberMultiDot", "p.m.", true},
		{"SingleCapital", "P.", true},
		{"CapitalizedWord", "Approx.", true},
		{"LowercaseWord", "etc.", true},
		{"NoPeriod", "Dr", false},
		{"AllCaps", "NASA.", false},
		{"Digits", "42.", false},
		{"Empty", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.IsAbbreviation(tc.token); got != tc.expected {
				t.Errorf("IsAbbreviation(%q) = %v, want %v", tc.token, got, tc.expected)
			}
		})
	}
}

func TestProtectRestoreRoundTrip(t *testing.T) {
	g := NewGuard(testVocab())

	inputs := []string{
		"Dr. Smith went home. He was tired.",
		"The U.S.A. and the U.S. differ by two letters.",
		"Meet at 3 p.m. on Jan. 15th.",
		"The CEO of ABC Corp. Inc. was present.",
		"値段は2.89ドルです。次の文はここから始まります。",
		"",
		"No abbreviations here at all",
		"Multiple\n\nlines\nwith breaks.\n",
	}

	for _, in := range inputs {
		if got := g.Restore(g.Protect(in)); got != in {
			t.Errorf("Restore(Protect(%q)) = %q, want identical input", in, got)
		}
	}
}

func TestProtectIdempotent(t *testing.T) {
	g := NewGuard(testVocab())

	inputs := []string{
		"Dr. Smith met Mr. Jones at 9 a.m. and left at 5 p.m. sharp.",
		"See fig. 3 and approx. two pages later.",
		"P. S. The U.S.A. trip is on.",
	}

	for _, in := range inputs {
		once := g.Protect(in)
		twice := g.Protect(once)
		if once != twice {
			t.Errorf("Protect not idempotent for %q:\nonce:  %q\ntwice: %q", in, once, twice)
		}
	}
}

func TestProtectKeepsSentenceTerminators(t *testing.T) {
	g := NewGuard(testVocab())

	// "home." ends a sentence (uppercase follows) and must stay
	// splittable; "Dr." is vocabulary and must not.
	protected := g.Protect("Dr. Smith went home. He was tired.")
	if !strings.Contains(protected, "home.") {
		t.Errorf("sentence-final period was protected: %q", protected)
	}
	if strings.Contains(protected, "Dr.") {
		t.Errorf("vocabulary abbreviation left unprotected: %q", protected)
	}
}

func TestProtectPatternFallback(t *testing.T) {
	g := NewGuard(nil)

	testCases := []struct {
		name string
		in   string
		// substring that must no longer contain a bare period
		protected string
		// substring whose period must survive
		terminator string
	}{
		{"LowercaseBeforeLowercase", "they used etc. and more", "etc" + string(Sentinel), ""},
		{"CapitalizedBeforeDigit", "on Jan. 15th it rained", "Jan" + string(Sentinel), ""},
		{"Initial", "written by J. Smith", "J" + string(Sentinel), ""},
		{"SentenceEnd", "it was late. Next day came", "", "late."},
		{"EndOfText", "the story ends here.", "", "here."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := g.Protect(tc.in)
			if tc.protected != "" && !strings.Contains(got, tc.protected) {
				t.Errorf("Protect(%q) = %q, expected protected form %q", tc.in, got, tc.protected)
			}
			if tc.terminator != "" && !strings.Contains(got, tc.terminator) {
				t.Errorf("Protect(%q) = %q, expected terminator %q to survive", tc.in, got, tc.terminator)
			}
		})
	}
}

func TestLoadGuardMissingFileDegrades(t *testing.T) {
	g := LoadGuard(filepath.Join(t.TempDir(), "missing.yaml"), zap.NewNop())
	if g == nil {
		t.Fatal("expected a usable guard despite missing vocabulary")
	}
	if g.Size() != 0 {
		t.Errorf("expected empty vocabulary, got %d entries", g.Size())
	}
	// Pattern rules still work.
	if !g.IsAbbreviation("etc.") {
		t.Error("pattern rules should survive a failed vocabulary load")
	}
}

func TestLoadGuardFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "abbrev.yaml")
	content := "titles:\n  - \"Dr.\"\n  - \"Mr.\"\ntime:\n  - \"p.m.\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write vocabulary: %v", err)
	}

	g := LoadGuard(path, zap.NewNop())
	if g.Size() != 3 {
		t.Errorf("expected 3 abbreviations, got %d", g.Size())
	}
	if !g.IsAbbreviation("p.m.") {
		t.Error("expected p.m. to be loaded from file")
	}
}
