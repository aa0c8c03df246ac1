package langdetect

// Lang identifies which natural-language prompt set downstream
// components should use for a span of text.
type Lang string

const (
	Japanese Lang = "ja"
	English  Lang = "en"
)

// japaneseRatioThreshold is the fraction of Japanese letters above
// which a span is classified as Japanese.
const japaneseRatioThreshold = 0.30

func isHiragana(r rune) bool { return r >= 0x3040 && r <= 0x309F }
func isKatakana(r rune) bool { return r >= 0x30A0 && r <= 0x30FF }
func isCJK(r rune) bool      { return r >= 0x4E00 && r <= 0x9FAF }

func isLatinLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// Detect classifies text as Japanese or English from character-class
// ratios. Text with no letter characters at all defaults to English.
func Detect(text string) Lang {
	var japanese, total int
	for _, r := range text {
		switch {
		case isHiragana(r), isKatakana(r), isCJK(r):
			japanese++
			total++
		case isLatinLetter(r):
			total++
		}
	}

	if total == 0 {
		return English
	}

	if float64(japanese)/float64(total) >= japaneseRatioThreshold {
		return Japanese
	}
	return English
}
