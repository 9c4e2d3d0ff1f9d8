// Package textutil implements the pure line-normalization primitives the
// classifier, importer, and reviewer share: diacritic/invisible-mark
// stripping, bullet removal, colon-variant standardization, and name
// normalization. Every function here is a deterministic, side-effect-free
// transform over a single string.
package textutil

import (
	"strings"
	"unicode"
)

// colonVariants maps every colon look-alike the import pipeline has to
// tolerate (full/half-width, Arabic, IPA, modifier-letter) to the plain
// ASCII colon.
var colonVariants = []rune{
	':', '：', '﹕', '︰', '∶', '꞉', 'ː', '˸',
}

// bulletRunes are the leading glyphs strip_leading_bullets removes: common
// Unicode bullets, dashes used as bullets, and stars.
var bulletRunes = map[rune]bool{
	'•': true, '◦': true, '▪': true, '●': true, '○': true,
	'-': true, '–': true, '—': true, '*': true, '·': true,
}

// isArabicDiacritic reports whether r is a combining diacritic that
// normalize_line strips: the Arabic combining range, maddah, and the
// superscript alef.
func isArabicDiacritic(r rune) bool {
	switch {
	case r >= 0x0610 && r <= 0x061A:
		return true
	case r >= 0x064B && r <= 0x065F:
		return true
	case r == 0x0670:
		return true
	case r >= 0x06D6 && r <= 0x06ED:
		return true
	case r >= 0x08E3 && r <= 0x08FF:
		return true
	}
	return false
}

// isInvisibleMark reports whether r is a directional mark, zero-width
// character, BOM, private-use character, or soft hyphen that
// clean_invisible_chars removes.
func isInvisibleMark(r rune) bool {
	switch r {
	case 0x200B, 0x200C, 0x200D, // zero-width space/non-joiner/joiner
		0x200E, 0x200F, // LRM, RLM
		0x061C,         // Arabic letter mark (ALM)
		0xFEFF,         // BOM
		0x00AD,         // soft hyphen
		0x2028, 0x2029: // line/paragraph separator
		return true
	}
	if r >= 0xE000 && r <= 0xF8FF {
		return true // private-use area
	}
	return false
}

// CleanInvisibleChars removes directional marks, zero-width characters, the
// BOM, private-use-area characters, and the soft hyphen, while canonicalizing
// line endings (CRLF/CR -> LF). Newlines are preserved.
func CleanInvisibleChars(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isInvisibleMark(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// StripLeadingBullets removes a leading run of bullet/dash/star glyphs
// (and any whitespace immediately following them) from s.
func StripLeadingBullets(s string) string {
	runes := []rune(s)
	i := 0
	for i < len(runes) && (bulletRunes[runes[i]] || unicode.IsSpace(runes[i])) {
		i++
	}
	return string(runes[i:])
}

// standardizeColons replaces every colon variant with the plain ASCII colon.
func standardizeColons(s string) string {
	runes := []rune(s)
	variants := make(map[rune]bool, len(colonVariants))
	for _, v := range colonVariants {
		variants[v] = true
	}
	for i, r := range runes {
		if variants[r] {
			runes[i] = ':'
		}
	}
	return string(runes)
}

// NormalizeLine applies the full normalization pipeline to a single line:
// strip diacritics and invisible marks, strip leading bullets, standardize
// colon variants, collapse internal whitespace, and trim.
func NormalizeLine(s string) string {
	s = CleanInvisibleChars(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isArabicDiacritic(r) {
			continue
		}
		b.WriteRune(r)
	}
	s = b.String()

	s = StripLeadingBullets(s)
	s = standardizeColons(s)
	s = collapseWhitespace(s)
	return strings.TrimSpace(s)
}

// collapseWhitespace replaces every run of whitespace (excluding the
// newlines normalize_line is never called with in its single-line case)
// with a single ASCII space.
func collapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !prevSpace {
				b.WriteRune(' ')
			}
			prevSpace = true
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeCharacterName runs NormalizeLine and then strips any trailing
// colon and whitespace, yielding a bare name suitable for lexicon lookups
// and session memory storage.
func NormalizeCharacterName(s string) string {
	s = NormalizeLine(s)
	s = strings.TrimRight(s, " :")
	return strings.TrimSpace(s)
}

// Tokens splits s on whitespace into non-empty tokens.
func Tokens(s string) []string {
	return strings.Fields(s)
}

// RuneLen returns the number of runes (not bytes) in s, matching the
// "character count" semantics the classifier's length thresholds use for
// Arabic text.
func RuneLen(s string) int {
	return len([]rune(s))
}
