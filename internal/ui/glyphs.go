package ui

import (
	"strings"
	"unicode/utf8"
)

// Debug font cell size in pixels.
const (
	GlyphWidth  = 6
	GlyphHeight = 16
)

// glyphFallbacks spells out symbols the bitmap debug font cannot draw.
var glyphFallbacks = map[rune]string{
	'\U0001F339': "@}->-", // rose
	'\u2764':     "<3",    // heavy black heart
	'\U0001F498': "<3",
	'\U0001F495': "<3",
	'\u2728':     "*", // sparkles
	'\u2019':     "'",
	'\u201C':     "\"",
	'\u201D':     "\"",
	'\uFE0F':     "", // emoji presentation selector
	'\u200D':     "", // zero width joiner
}

// Printable maps s onto the ASCII range the debug font covers.
func Printable(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 0x20 && r < 0x7f:
			b.WriteRune(r)
		case r == '\t':
			b.WriteByte(' ')
		default:
			if alt, ok := glyphFallbacks[r]; ok {
				b.WriteString(alt)
			} else {
				b.WriteByte('?')
			}
		}
	}
	return b.String()
}

// TextWidth returns the pixel width of an already printable string.
func TextWidth(s string) int {
	return utf8.RuneCountInString(s) * GlyphWidth
}

// BoxWidth returns the pixel width of a text image that holds chars glyphs,
// or all of s if it is longer.
func BoxWidth(s string, chars int) int {
	return max(chars*GlyphWidth, TextWidth(s), GlyphWidth) + 1
}

// Tail keeps the last max runes of s so long input stays inside its box.
func Tail(s string, max int) string {
	if max <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	return string(rs[len(rs)-max:])
}
