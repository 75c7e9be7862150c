package markup

// EndTag is a tag of an end tag type
type EndTag struct {
	tagBase
}

// NewEndTag creates an end tag of the given type spanning [begin, end).
// It is meant for TagType implementations and panics on an invalid span.
func NewEndTag(source *Source, begin, end int, tagType TagType, name string) *EndTag {
	if tagType != nil && !tagType.IsEndTagType() {
		panic("end tag created with start tag type " + tagType.Description())
	}
	return &EndTag{tagBase: newTagBase(source, begin, end, tagType, name)}
}

// Element returns the element closed by this tag, or nil if it has no matching start tag
func (t *EndTag) Element() *Element {
	return t.source.cache.element(t)
}

// String returns a description of the tag
func (t *EndTag) String() string {
	return t.describe()
}
