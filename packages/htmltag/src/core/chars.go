package core

// Character code constants used by the tag recognizer
const (
	CharTAB        = 9
	CharCR         = 13
	CharSPACE      = 32
	CharMINUS      = 45
	CharPERIOD     = 46
	Char0          = 48
	Char9          = 57
	CharCOLON      = 58
	CharA          = 65
	CharZ          = 90
	CharUNDERSCORE = 95
	CharLowerA     = 97
	CharLowerZ     = 122
)

// IsWhitespace checks if a character code represents ASCII whitespace
func IsWhitespace(code int) bool {
	return code == CharSPACE || (code >= CharTAB && code <= CharCR)
}

// IsDigit checks if a character code represents a digit
func IsDigit(code int) bool {
	return Char0 <= code && code <= Char9
}

// IsAsciiLetter checks if a character code represents an ASCII letter
func IsAsciiLetter(code int) bool {
	return (code >= CharLowerA && code <= CharLowerZ) || (code >= CharA && code <= CharZ)
}

// IsNameStart checks if a character code may start a tag name.
// Bytes of multi-byte UTF-8 sequences are accepted so that non-ASCII names are not cut short.
func IsNameStart(code int) bool {
	return IsAsciiLetter(code) || code == CharUNDERSCORE || code == CharCOLON || code >= 0x80
}

// IsNamePart checks if a character code may continue a tag name
func IsNamePart(code int) bool {
	return IsNameStart(code) || IsDigit(code) || code == CharMINUS || code == CharPERIOD
}
