package relevance

import (
	"testing"

	"textchunk/pkg/langdetect"
)

func TestCohesionFilterSameTopic(t *testing.T) {
	f := NewCohesionFilter(0.5)

	prior := `The solar panels on the roof generate electricity during daylight hours.
Panel efficiency depends on the angle toward the sun and on cloud cover.
Modern panels convert roughly twenty percent of sunlight into usable power.`

	testCases := []struct {
		name      string
		candidate string
		expected  bool
	}{
		{"StrongOverlap", "The panels generate the most electricity when sunlight hits them directly.", true},
		{"NoOverlap", "My grandmother baked delicious apple pies every autumn weekend.", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := f.SameTopic(prior, tc.candidate, langdetect.English)
			if got != tc.expected {
				t.Errorf("SameTopic(%q) = %v, want %v", tc.candidate, got, tc.expected)
			}
		})
	}
}

func TestCohesionFilterDefersForJapanese(t *testing.T) {
	f := NewCohesionFilter(0.5)
	if f.SameTopic("猫が好きです。", "猫はかわいい動物です。", langdetect.Japanese) {
		t.Error("Japanese spans must defer to the oracle")
	}
}

func TestCohesionFilterDefersOnThinEvidence(t *testing.T) {
	f := NewCohesionFilter(0.5)

	// Too few content words to judge.
	if f.SameTopic("Some prior text about engineering.", "Yes.", langdetect.English) {
		t.Error("expected deferral for a near-empty candidate")
	}
	// Empty prior span.
	if f.SameTopic("", "The panels generate electricity.", langdetect.English) {
		t.Error("expected deferral for an empty prior span")
	}
}

func TestExtractKeywordsStemsAndDedupes(t *testing.T) {
	keywords := extractKeywords("Running runners run quickly through the running track.")

	counts := make(map[string]int)
	for _, k := range keywords {
		counts[k]++
	}
	for k, c := range counts {
		if c > 1 {
			t.Errorf("keyword %q appears %d times, want deduplication", k, c)
		}
	}
	if len(keywords) == 0 {
		t.Fatal("expected keywords from content words")
	}
}
