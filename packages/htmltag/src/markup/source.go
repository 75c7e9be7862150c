package markup

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"htmltag-go/packages/htmltag/src/util"
)

// SourceOptions are options for creating a Source
type SourceOptions struct {
	// Registry holds the tag types to recognize. Defaults to NewDefaultRegistry().
	Registry *Registry
	// Logger receives diagnostics. Nil drops them.
	Logger Logger
	// IgnoringTypes are the tag types inside which no other non-server tag is recognized.
	// Defaults to the comment and CDATA section types.
	IgnoringTypes []TagType
	// SeparatelyCachedTypes get a sub-cache of their own. Defaults to IgnoringTypes.
	SeparatelyCachedTypes []TagType
	// URL names the document in diagnostics
	URL string
}

// DefaultIgnoringTypes returns the tag types that suppress recognition of enclosed markup by default
func DefaultIgnoringTypes() []TagType {
	return []TagType{StartTagTypeCOMMENT, StartTagTypeCDATA_SECTION}
}

// Source is an immutable document together with its lazily built ParseText and tag cache.
//
// A Source is not safe for concurrent use; each parsing session should own its Source.
// The Registry it consults may be shared.
type Source struct {
	text          string
	file          *util.ParseSourceFile
	parseText     *ParseText
	registry      *Registry
	logger        Logger
	ignoringTypes []TagType
	cache         *Cache
	caser         cases.Caser

	// Populated by FullSequentialParse, reset by IgnoreWhenParsing.
	allTags        []Tag
	registeredTags []Tag
	allStartTags   []*StartTag

	// Non-nil while FullSequentialParse is running
	sequential *sequentialParseState
}

// NewSource creates a new Source over text
func NewSource(text string, options *SourceOptions) *Source {
	if options == nil {
		options = &SourceOptions{}
	}
	registry := options.Registry
	if registry == nil {
		registry = NewDefaultRegistry()
	}
	ignoringTypes := options.IgnoringTypes
	if ignoringTypes == nil {
		ignoringTypes = DefaultIgnoringTypes()
	}
	separatelyCached := options.SeparatelyCachedTypes
	if separatelyCached == nil {
		separatelyCached = ignoringTypes
	}
	s := &Source{
		text:          text,
		file:          util.NewParseSourceFile(text, options.URL),
		registry:      registry,
		logger:        options.Logger,
		ignoringTypes: ignoringTypes,
		caser:         cases.Lower(language.Und),
	}
	s.cache = newCache(s, separatelyCached)
	return s
}

// Text returns the source text
func (s *Source) Text() string {
	return s.text
}

// Len returns the length of the source text in bytes
func (s *Source) Len() int {
	return len(s.text)
}

// Substring returns the source text in [begin, end), clamped to the bounds of the text
func (s *Source) Substring(begin, end int) string {
	begin, end = clamp(begin, len(s.text)), clamp(end, len(s.text))
	if begin >= end {
		return ""
	}
	return s.text[begin:end]
}

// ParseText returns the normalized search text, building it on first use
func (s *Source) ParseText() *ParseText {
	if s.parseText == nil {
		s.parseText = NewParseText(s.text)
	}
	return s.parseText
}

// Registry returns the registry of tag types consulted by the source
func (s *Source) Registry() *Registry {
	return s.registry
}

// Cache returns the tag cache of the source
func (s *Source) Cache() *Cache {
	return s.cache
}

// IgnoringTypes returns the tag types that suppress recognition of enclosed markup
func (s *Source) IgnoringTypes() []TagType {
	return s.ignoringTypes
}

// Logger returns the diagnostic sink, which may be nil
func (s *Source) Logger() Logger {
	return s.logger
}

// SetLogger replaces the diagnostic sink
func (s *Source) SetLogger(logger Logger) {
	s.logger = logger
}

// Location returns the row and column of pos
func (s *Source) Location(pos int) *util.ParseLocation {
	return s.file.LocationAt(pos)
}

// IgnoreWhenParsing excludes [begin, end) from tag recognition, typically because it holds
// server-side code. Every cached tag is discarded since it may no longer be valid.
// It panics when called during FullSequentialParse.
func (s *Source) IgnoreWhenParsing(begin, end int) {
	if s.sequential != nil {
		panic("IgnoreWhenParsing called during a full sequential parse")
	}
	if begin < 0 || end > len(s.text) || begin > end {
		panic(fmt.Sprintf("invalid ignore span [%d,%d) in source of length %d", begin, end, len(s.text)))
	}
	s.ParseText().IgnoreWhenParsing(begin, end)
	s.ClearCache()
}

// ClearCache discards every cached tag and the result of a full sequential parse
func (s *Source) ClearCache() {
	s.cache.Clear()
	s.allTags = nil
	s.registeredTags = nil
	s.allStartTags = nil
}

// IsFullSequentialParsed reports whether FullSequentialParse results are available
func (s *Source) IsFullSequentialParsed() bool {
	return s.allTags != nil
}

func (s *Source) canonicalName(name string) string {
	for i := 0; i < len(name); i++ {
		if c := name[i]; c >= 0x80 || ('A' <= c && c <= 'Z') {
			return s.caser.String(name)
		}
	}
	return name
}

func (s *Source) logf(pos int, format string, args ...interface{}) {
	if s.logger == nil {
		return
	}
	s.logger.Log(fmt.Sprintf(format, args...) + " at " + s.Location(pos).String())
}
