package markup

import (
	"fmt"
	"strings"
)

// TagType describes the syntax of a kind of tag, such as a normal start tag or a comment.
//
// Every tag type is identified by its start delimiter, which must begin with '<'. A tag type
// whose start delimiter begins with "</" is an end tag type.
type TagType interface {
	// Description is a human readable name of the tag type
	Description() string
	// StartDelimiter is the lower case text every tag of this type starts with
	StartDelimiter() string
	// ClosingDelimiter is the text every tag of this type ends with
	ClosingDelimiter() string
	// IsServerTag reports whether tags of this type may appear anywhere, including inside other tags
	IsServerTag() bool
	// NamePrefix is the start delimiter without the leading '<' (and '/' for end tag types)
	NamePrefix() string
	// IsEndTagType reports whether the tags of this type are end tags
	IsEndTagType() bool
	// ConstructTagAt returns the tag of this type starting at pos, or nil if the text at pos
	// does not form such a tag. It is only called when the start delimiter matches at pos.
	ConstructTagAt(source *Source, pos int) Tag
}

// TagTypeBase holds the immutable properties shared by all tag types.
// Implementations of TagType embed it and provide ConstructTagAt.
type TagTypeBase struct {
	description      string
	startDelimiter   string
	closingDelimiter string
	serverTag        bool
	namePrefix       string
}

// NewTagTypeBase creates a new TagTypeBase.
// It panics if startDelimiter does not begin with '<'.
func NewTagTypeBase(description, startDelimiter, closingDelimiter string, serverTag bool) TagTypeBase {
	if len(startDelimiter) == 0 || startDelimiter[0] != '<' {
		panic(fmt.Sprintf("start delimiter %q of tag type %q must begin with '<'", startDelimiter, description))
	}
	startDelimiter = strings.ToLower(startDelimiter)
	namePrefix := startDelimiter[1:]
	if strings.HasPrefix(namePrefix, "/") {
		namePrefix = namePrefix[1:]
	}
	return TagTypeBase{
		description:      description,
		startDelimiter:   startDelimiter,
		closingDelimiter: closingDelimiter,
		serverTag:        serverTag,
		namePrefix:       namePrefix,
	}
}

// Description returns the description of the tag type
func (t *TagTypeBase) Description() string {
	return t.description
}

// StartDelimiter returns the lower case start delimiter
func (t *TagTypeBase) StartDelimiter() string {
	return t.startDelimiter
}

// ClosingDelimiter returns the closing delimiter
func (t *TagTypeBase) ClosingDelimiter() string {
	return t.closingDelimiter
}

// IsServerTag returns whether tags of this type bypass the nesting check
func (t *TagTypeBase) IsServerTag() bool {
	return t.serverTag
}

// NamePrefix returns the name prefix
func (t *TagTypeBase) NamePrefix() string {
	return t.namePrefix
}

// IsEndTagType returns whether the start delimiter begins with "</"
func (t *TagTypeBase) IsEndTagType() bool {
	return len(t.startDelimiter) > 1 && t.startDelimiter[1] == '/'
}

// String returns the description and delimiters of the tag type
func (t *TagTypeBase) String() string {
	return t.description + " " + t.startDelimiter + " ... " + t.closingDelimiter
}
