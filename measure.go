package docdeck

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Measurer reports text extents in points. Renderers use it to wrap text
// and size blocks; it must be deterministic.
type Measurer interface {
	// Width returns the advance width of text set in face at size.
	Width(face FontFace, size float64, text string) float64
	// Ascent returns the distance from the top of a line to its baseline.
	Ascent(face FontFace, size float64) float64
}

// FixedMeasurer gives every rune the same advance, Advance em wide. It is
// meant for tests and for layouts that must not depend on font files.
type FixedMeasurer struct {
	Advance float64 // fraction of the font size; 0 means 0.5
}

func (m FixedMeasurer) Width(_ FontFace, size float64, text string) float64 {
	adv := m.Advance
	if adv <= 0 {
		adv = 0.5
	}
	return float64(utf8.RuneCountInString(text)) * adv * size
}

func (FixedMeasurer) Ascent(_ FontFace, size float64) float64 {
	return 0.8 * size
}

// FontMeasurer measures text with real glyph metrics from a FontCache.
type FontMeasurer struct {
	cache *FontCache
}

// NewFontMeasurer creates a measurer over cache. A nil cache gets a new
// FontCache holding only the built-in fonts.
func NewFontMeasurer(cache *FontCache) *FontMeasurer {
	if cache == nil {
		cache = NewFontCache()
	}
	return &FontMeasurer{cache: cache}
}

// Cache returns the font cache the measurer reads from.
func (m *FontMeasurer) Cache() *FontCache { return m.cache }

func (m *FontMeasurer) Width(face FontFace, size float64, text string) float64 {
	f := m.cache.GetMeasureFace(face, size)
	return fixedToFloat(font.MeasureString(f, text))
}

func (m *FontMeasurer) Ascent(face FontFace, size float64) float64 {
	f := m.cache.GetMeasureFace(face, size)
	return fixedToFloat(f.Metrics().Ascent)
}

// wrapText breaks text into lines no wider than maxWidth. Explicit "\n"
// breaks are kept; runs of spaces collapse. A word wider than maxWidth is
// split between runes. An empty text yields one empty line.
func wrapText(m Measurer, face FontFace, size, maxWidth float64, text string) []string {
	lines, _ := wrapSegments(m, face, size, maxWidth, text)
	return lines
}

// wrapSegments is wrapText that also reports, per line, whether the line
// ends a hard segment (before a "\n" or at the end of the text).
func wrapSegments(m Measurer, face FontFace, size, maxWidth float64, text string) ([]string, []bool) {
	var lines []string
	var ends []bool
	add := func(line string, end bool) {
		lines = append(lines, line)
		ends = append(ends, end)
	}
	for _, hard := range strings.Split(text, "\n") {
		words := strings.Fields(hard)
		if len(words) == 0 {
			add("", true)
			continue
		}
		cur := ""
		for _, w := range words {
			candidate := w
			if cur != "" {
				candidate = cur + " " + w
			}
			if m.Width(face, size, candidate) <= maxWidth {
				cur = candidate
				continue
			}
			if cur != "" {
				add(cur, false)
			}
			cur = w
			for m.Width(face, size, cur) > maxWidth {
				head, tail := splitRunes(m, face, size, maxWidth, cur)
				add(head, false)
				cur = tail
			}
		}
		add(cur, true)
	}
	return lines, ends
}

// wrapPreformatted keeps every line as written, including leading spaces,
// and only splits lines wider than maxWidth.
func wrapPreformatted(m Measurer, face FontFace, size, maxWidth float64, text string) []string {
	var lines []string
	for _, hard := range strings.Split(text, "\n") {
		hard = strings.TrimRight(hard, " \t\r")
		for hard != "" && m.Width(face, size, hard) > maxWidth {
			head, tail := splitRunes(m, face, size, maxWidth, hard)
			lines = append(lines, head)
			hard = tail
		}
		lines = append(lines, hard)
	}
	return lines
}

// splitRunes returns the longest prefix of s that fits maxWidth (at least
// one rune) and the rest.
func splitRunes(m Measurer, face FontFace, size, maxWidth float64, s string) (string, string) {
	end := 0
	for i := range s {
		_, n := utf8.DecodeRuneInString(s[i:])
		next := i + n
		if end > 0 && m.Width(face, size, s[:next]) > maxWidth {
			break
		}
		end = next
	}
	return s[:end], s[end:]
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// countSpaces returns the number of inter-word gaps in a wrapped line.
func countSpaces(s string) int {
	return strings.Count(s, " ")
}
