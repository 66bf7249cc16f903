package vocab

import "strings"

// IsKanji reports whether the rune is a CJK unified ideograph.
func IsKanji(r rune) bool {
	return r >= 0x4e00 && r <= 0x9fff
}

// IsKana reports whether the rune is hiragana or katakana.
func IsKana(r rune) bool {
	return (r >= 0x3040 && r <= 0x309f) || // Hiragana
		(r >= 0x30a0 && r <= 0x30ff) // Katakana
}

// ContainsKanji reports whether the expression has at least one kanji.
func ContainsKanji(expression string) bool {
	for _, r := range expression {
		if IsKanji(r) {
			return true
		}
	}
	return false
}

// AddFurigana annotates only the kanji characters of an expression with
// bracketed readings, leaving kana untouched.
//
// Example:
//
//	expression: 食べる
//	reading:    たべる
//	result:     食[た]べる
//
// Expressions without any kanji return the reading unchanged. Kana
// segments of the reading are consumed in order: each kanji takes the
// next segment, and kana in the expression advance past their matching
// segment.
func AddFurigana(expression, reading string) string {
	if !ContainsKanji(expression) {
		return reading
	}

	segments := kanaSegments(reading)

	var b strings.Builder
	idx := 0
	for _, r := range expression {
		if IsKanji(r) {
			if idx < len(segments) {
				b.WriteRune(r)
				b.WriteString("[")
				b.WriteString(segments[idx])
				b.WriteString("]")
				idx++
			} else {
				b.WriteRune(r)
			}
			continue
		}

		b.WriteRune(r)
		if idx < len(segments) && string(r) == segments[idx] {
			idx++
		}
	}

	return b.String()
}

// kanaSegments splits a reading into segments: every kana rune stands
// alone, while consecutive non-kana runes are kept together.
func kanaSegments(reading string) []string {
	var segments []string
	var current []rune

	for _, r := range reading {
		if IsKana(r) {
			if len(current) > 0 {
				segments = append(segments, string(current))
				current = nil
			}
			segments = append(segments, string(r))
			continue
		}
		current = append(current, r)
	}
	if len(current) > 0 {
		segments = append(segments, string(current))
	}

	return segments
}
