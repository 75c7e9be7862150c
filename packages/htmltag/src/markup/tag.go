package markup

import (
	"fmt"

	"htmltag-go/packages/htmltag/src/util"
)

// Tag is a lexical tag recognized in a Source, occupying the half-open span [Begin, End).
//
// The concrete types are *StartTag and *EndTag. Tags are immutable once created.
type Tag interface {
	// Begin returns the position of the tag's '<'
	Begin() int
	// End returns the position just after the tag's closing delimiter
	End() int
	// Name returns the canonical lower case name, including the tag type's name prefix
	Name() string
	// ElementName returns the well-known name of the tag, or ElementNameOther
	ElementName() ElementName
	// TagType returns the type the tag was recognized as
	TagType() TagType
	// Source returns the source the tag belongs to
	Source() *Source
	// Text returns the source text of the tag
	Text() string
	// Tidy returns the canonical text of the tag
	Tidy() string
	// IsUnregistered reports whether the tag did not match any registered tag type
	IsUnregistered() bool
	// FindNextTag returns the next tag in the source, or nil
	FindNextTag() Tag
	// FindPreviousTag returns the previous tag in the source, or nil
	FindPreviousTag() Tag
	// Element returns the element the tag belongs to, or nil
	Element() *Element
	// Span returns the location of the tag in the source
	Span() *util.ParseSourceSpan
	String() string

	base() *tagBase
}

type tagBase struct {
	source      *Source
	begin       int
	end         int
	name        string
	elementName ElementName
	tagType     TagType
	// parseIndex is the index of the tag in Source.AllTags, or -1 when the tag was not
	// produced by a full sequential parse.
	parseIndex int
}

func newTagBase(source *Source, begin, end int, tagType TagType, name string) tagBase {
	if source == nil {
		panic("tag source must not be nil")
	}
	if tagType == nil {
		panic("tag type must not be nil")
	}
	if begin < 0 || end > source.Len() || begin > end {
		panic(fmt.Sprintf("invalid tag span [%d,%d) in source of length %d", begin, end, source.Len()))
	}
	name = source.canonicalName(name)
	return tagBase{
		source:      source,
		begin:       begin,
		end:         end,
		name:        name,
		elementName: LookupElementName(name),
		tagType:     tagType,
		parseIndex:  -1,
	}
}

func (t *tagBase) base() *tagBase {
	return t
}

// Begin returns the position of the tag's '<'
func (t *tagBase) Begin() int {
	return t.begin
}

// End returns the position just after the tag
func (t *tagBase) End() int {
	return t.end
}

// Name returns the canonical lower case name
func (t *tagBase) Name() string {
	return t.name
}

// ElementName returns the well-known name of the tag
func (t *tagBase) ElementName() ElementName {
	return t.elementName
}

// TagType returns the tag type
func (t *tagBase) TagType() TagType {
	return t.tagType
}

// Source returns the source of the tag
func (t *tagBase) Source() *Source {
	return t.source
}

// Text returns the source text of the tag
func (t *tagBase) Text() string {
	return t.source.Substring(t.begin, t.end)
}

// Tidy returns the text of the tag. Attribute normalization is done by the attribute layer.
func (t *tagBase) Tidy() string {
	return t.Text()
}

// IsUnregistered reports whether the tag is of an unregistered tag type
func (t *tagBase) IsUnregistered() bool {
	return t.tagType == StartTagTypeUNREGISTERED || t.tagType == EndTagTypeUNREGISTERED
}

// FindNextTag returns the tag following this one.
// After a full sequential parse this is a direct index step.
func (t *tagBase) FindNextTag() Tag {
	if all := t.source.allTags; all != nil && t.parseIndex >= 0 {
		if t.parseIndex+1 < len(all) {
			return all[t.parseIndex+1]
		}
		return nil
	}
	return t.source.NextTag(t.begin + 1)
}

// FindPreviousTag returns the tag preceding this one
func (t *tagBase) FindPreviousTag() Tag {
	if all := t.source.allTags; all != nil && t.parseIndex >= 0 {
		if t.parseIndex > 0 {
			return all[t.parseIndex-1]
		}
		return nil
	}
	if t.begin == 0 {
		return nil
	}
	return t.source.PreviousTag(t.begin - 1)
}

// Span returns the location of the tag in the source
func (t *tagBase) Span() *util.ParseSourceSpan {
	return util.NewParseSourceSpan(t.source.Location(t.begin), t.source.Location(t.end))
}

func (t *tagBase) describe() string {
	return fmt.Sprintf("%s %q [%d,%d)", t.tagType.Description(), t.name, t.begin, t.end)
}
