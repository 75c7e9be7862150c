package markup

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NoBreak disables the search bound of the bounded search functions
const NoBreak = -1

// ParseText is the lower-cased projection of a Source used for all delimiter searches.
//
// It always has the same byte length as the source text: a rune is only lower-cased when its
// lower-case encoding has the same width, and spans passed to IgnoreWhenParsing are replaced
// with spaces so that nothing inside them can be mistaken for a delimiter.
type ParseText struct {
	text []byte
}

// NewParseText creates the ParseText of the given source text
func NewParseText(text string) *ParseText {
	buf := make([]byte, 0, len(text))
	for i := 0; i < len(text); {
		c := text[i]
		if c < utf8.RuneSelf {
			if 'A' <= c && c <= 'Z' {
				c += 'a' - 'A'
			}
			buf = append(buf, c)
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		if lower := unicode.ToLower(r); lower != r && r != utf8.RuneError && utf8.RuneLen(lower) == size {
			buf = utf8.AppendRune(buf, lower)
		} else {
			buf = append(buf, text[i:i+size]...)
		}
		i += size
	}
	return &ParseText{text: buf}
}

// Len returns the length of the text in bytes
func (p *ParseText) Len() int {
	return len(p.text)
}

// At returns the byte at pos, or 0 if pos is out of range
func (p *ParseText) At(pos int) byte {
	if pos < 0 || pos >= len(p.text) {
		return 0
	}
	return p.text[pos]
}

// String returns the normalized text
func (p *ParseText) String() string {
	return string(p.text)
}

// Substring returns the normalized text in [begin, end)
func (p *ParseText) Substring(begin, end int) string {
	begin, end = clamp(begin, len(p.text)), clamp(end, len(p.text))
	if begin >= end {
		return ""
	}
	return string(p.text[begin:end])
}

// ContainsAt reports whether s occurs in the text starting exactly at pos.
// s must already be lower case.
func (p *ParseText) ContainsAt(s string, pos int) bool {
	if pos < 0 || pos+len(s) > len(p.text) {
		return false
	}
	return string(p.text[pos:pos+len(s)]) == s
}

// IndexOf returns the first position >= from at which s occurs, or -1
func (p *ParseText) IndexOf(s string, from int) int {
	return p.IndexOfBounded(s, from, NoBreak)
}

// IndexOfBounded returns the first position >= from and < breakAt at which s occurs, or -1.
// A breakAt of NoBreak searches to the end of the text.
func (p *ParseText) IndexOfBounded(s string, from, breakAt int) int {
	if from < 0 {
		from = 0
	}
	limit := len(p.text) - len(s) + 1
	if breakAt != NoBreak && breakAt < limit {
		limit = breakAt
	}
	if from >= limit {
		return -1
	}
	i := strings.Index(string(p.text[from:limit+len(s)-1]), s)
	if i < 0 {
		return -1
	}
	return from + i
}

// LastIndexOf returns the last position <= from at which s occurs, or -1
func (p *ParseText) LastIndexOf(s string, from int) int {
	return p.LastIndexOfBounded(s, from, NoBreak)
}

// LastIndexOfBounded returns the last position <= from and > breakAt at which s occurs, or -1.
// A breakAt of NoBreak searches to the start of the text.
func (p *ParseText) LastIndexOfBounded(s string, from, breakAt int) int {
	if from > len(p.text)-len(s) {
		from = len(p.text) - len(s)
	}
	lower := breakAt + 1
	if lower < 0 {
		lower = 0
	}
	if from < lower {
		return -1
	}
	i := strings.LastIndex(string(p.text[lower:from+len(s)]), s)
	if i < 0 {
		return -1
	}
	return lower + i
}

// IndexOfByte returns the first position >= from holding c, or -1
func (p *ParseText) IndexOfByte(c byte, from int) int {
	if from < 0 {
		from = 0
	}
	if from >= len(p.text) {
		return -1
	}
	for i := from; i < len(p.text); i++ {
		if p.text[i] == c {
			return i
		}
	}
	return -1
}

// LastIndexOfByte returns the last position <= from holding c, or -1
func (p *ParseText) LastIndexOfByte(c byte, from int) int {
	if from >= len(p.text) {
		from = len(p.text) - 1
	}
	for i := from; i >= 0; i-- {
		if p.text[i] == c {
			return i
		}
	}
	return -1
}

// IndexOfAny returns the first position >= from and < breakAt holding any byte of chars, or -1
func (p *ParseText) IndexOfAny(chars string, from, breakAt int) int {
	if from < 0 {
		from = 0
	}
	limit := len(p.text)
	if breakAt != NoBreak && breakAt < limit {
		limit = breakAt
	}
	for i := from; i < limit; i++ {
		if strings.IndexByte(chars, p.text[i]) >= 0 {
			return i
		}
	}
	return -1
}

// IgnoreWhenParsing overwrites [begin, end) with spaces
func (p *ParseText) IgnoreWhenParsing(begin, end int) {
	begin, end = clamp(begin, len(p.text)), clamp(end, len(p.text))
	for i := begin; i < end; i++ {
		p.text[i] = ' '
	}
}

func clamp(pos, length int) int {
	if pos < 0 {
		return 0
	}
	if pos > length {
		return length
	}
	return pos
}
