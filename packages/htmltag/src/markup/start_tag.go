package markup

// StartTag is a tag of a start tag type. Comments, CDATA sections, declarations and server
// tags are start tags of their respective types.
type StartTag struct {
	tagBase
	emptyElementTag bool
}

// NewStartTag creates a start tag of the given type spanning [begin, end).
// It is meant for TagType implementations and panics on an invalid span.
func NewStartTag(source *Source, begin, end int, tagType TagType, name string) *StartTag {
	if tagType != nil && tagType.IsEndTagType() {
		panic("start tag created with end tag type " + tagType.Description())
	}
	return &StartTag{tagBase: newTagBase(source, begin, end, tagType, name)}
}

// IsEmptyElementTag reports whether the tag is a normal start tag closed with "/>"
func (t *StartTag) IsEmptyElementTag() bool {
	return t.emptyElementTag
}

// Element returns the element started by this tag
func (t *StartTag) Element() *Element {
	return t.source.cache.element(t)
}

// String returns a description of the tag
func (t *StartTag) String() string {
	return t.describe()
}
