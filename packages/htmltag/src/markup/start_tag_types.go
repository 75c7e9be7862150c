package markup

import (
	"htmltag-go/packages/htmltag/src/core"
)

// The built-in start tag types. StartTagTypeUNREGISTERED is never registered; it is the type
// of the fallback tags synthesized when no registered type matches.
var (
	StartTagTypeUNREGISTERED               TagType = newUnregisteredTagType("unregistered start tag", "<")
	StartTagTypeNORMAL                     TagType = &normalStartTagType{NewTagTypeBase("normal start tag", "<", ">", false)}
	StartTagTypeCOMMENT                    TagType = NewDelimitedTagType("comment", "<!--", "-->", false)
	StartTagTypeCDATA_SECTION              TagType = NewDelimitedTagType("CDATA section", "<![cdata[", "]]>", false)
	StartTagTypeDOCTYPE_DECLARATION        TagType = &declarationTagType{NewTagTypeBase("document type declaration", "<!doctype", ">", false), nil}
	StartTagTypeMARKUP_DECLARATION         TagType = &declarationTagType{NewTagTypeBase("markup declaration", "<!", ">", false), []string{"element", "attlist", "entity", "notation"}}
	StartTagTypeXML_DECLARATION            TagType = &xmlDeclarationTagType{NewDelimitedTagType("XML declaration", "<?xml", "?>", false)}
	StartTagTypeXML_PROCESSING_INSTRUCTION TagType = &processingInstructionTagType{NewTagTypeBase("XML processing instruction", "<?", "?>", false)}
	StartTagTypeSERVER_COMMON              TagType = NewDelimitedTagType("common server tag", "<%", "%>", true)
	StartTagTypeSERVER_COMMON_COMMENT      TagType = NewDelimitedTagType("common server comment", "<%--", "--%>", true)
)

// BuiltinStartTagTypes returns the registered-by-default start tag types, in registration order
func BuiltinStartTagTypes() []TagType {
	return []TagType{
		StartTagTypeNORMAL,
		StartTagTypeCOMMENT,
		StartTagTypeCDATA_SECTION,
		StartTagTypeMARKUP_DECLARATION,
		StartTagTypeDOCTYPE_DECLARATION,
		StartTagTypeXML_PROCESSING_INSTRUCTION,
		StartTagTypeXML_DECLARATION,
		StartTagTypeSERVER_COMMON,
		StartTagTypeSERVER_COMMON_COMMENT,
	}
}

type normalStartTagType struct {
	TagTypeBase
}

func (t *normalStartTagType) ConstructTagAt(source *Source, pos int) Tag {
	text := source.ParseText()
	nameBegin := pos + len(t.StartDelimiter())
	nameEnd := scanName(text, nameBegin)
	if nameEnd == nameBegin {
		return nil
	}
	if c := text.At(nameEnd); !core.IsWhitespace(int(c)) && c != '/' && c != '>' {
		if nameEnd == text.Len() {
			source.logf(pos, "StartTag %q not terminated before end of document", source.Substring(nameBegin, nameEnd))
		}
		return nil
	}
	end, ok := findStartTagEnd(text, nameEnd)
	if !ok {
		if end == text.Len() {
			source.logf(pos, "StartTag %q not terminated before end of document", source.Substring(nameBegin, nameEnd))
		}
		return nil
	}
	tag := NewStartTag(source, pos, end, t, source.Substring(nameBegin, nameEnd))
	tag.emptyElementTag = end-2 >= nameEnd && text.At(end-2) == '/'
	return tag
}

// scanName returns the end of the tag name starting at pos, or pos if there is none
func scanName(text *ParseText, pos int) int {
	if pos >= text.Len() || !core.IsNameStart(int(text.At(pos))) {
		return pos
	}
	end := pos + 1
	for end < text.Len() && core.IsNamePart(int(text.At(end))) {
		end++
	}
	return end
}

// findStartTagEnd returns the position after the '>' closing the attribute section that
// starts at pos. Quoted values may contain '>'; an unquoted '<' rejects the tag. When the
// document ends first, ok is false and end is the length of the text.
func findStartTagEnd(text *ParseText, pos int) (end int, ok bool) {
	for i := pos; i < text.Len(); i++ {
		switch c := text.At(i); c {
		case '>':
			return i + 1, true
		case '<':
			return i, false
		case '"', '\'':
			closing := text.IndexOfByte(c, i+1)
			if closing < 0 {
				// Unterminated quote: fall back to the first '>' after it
				gt := text.IndexOfByte('>', i+1)
				if gt < 0 {
					return text.Len(), false
				}
				return gt + 1, true
			}
			i = closing
		}
	}
	return text.Len(), false
}

// DelimitedTagType is a start tag type whose tags extend from the start delimiter to the
// first following occurrence of the closing delimiter. The name of every tag is the name prefix.
type DelimitedTagType struct {
	TagTypeBase
}

// NewDelimitedTagType creates a new DelimitedTagType.
// It panics if startDelimiter does not begin with '<' or closingDelimiter is empty.
func NewDelimitedTagType(description, startDelimiter, closingDelimiter string, serverTag bool) *DelimitedTagType {
	if closingDelimiter == "" {
		panic("closing delimiter of tag type " + description + " must not be empty")
	}
	return &DelimitedTagType{NewTagTypeBase(description, startDelimiter, closingDelimiter, serverTag)}
}

// ConstructTagAt returns the tag spanning from pos to the end of the next closing delimiter
func (t *DelimitedTagType) ConstructTagAt(source *Source, pos int) Tag {
	return constructDelimited(source, t, pos, t.NamePrefix())
}

func constructDelimited(source *Source, t TagType, pos int, name string) Tag {
	text := source.ParseText()
	closing := text.IndexOf(lowerASCII(t.ClosingDelimiter()), pos+len(t.StartDelimiter()))
	if closing < 0 {
		source.logf(pos, "%s not terminated before end of document", t.Description())
		return nil
	}
	return NewStartTag(source, pos, closing+len(t.ClosingDelimiter()), t, name)
}

// xmlDeclarationTagType requires whitespace after "<?xml" so that "<?xml-stylesheet" is a
// processing instruction.
type xmlDeclarationTagType struct {
	*DelimitedTagType
}

func (t *xmlDeclarationTagType) ConstructTagAt(source *Source, pos int) Tag {
	if !core.IsWhitespace(int(source.ParseText().At(pos + len(t.StartDelimiter())))) {
		return nil
	}
	return constructDelimited(source, t, pos, t.NamePrefix())
}

// processingInstructionTagType names its tags after the processing instruction target
type processingInstructionTagType struct {
	TagTypeBase
}

func (t *processingInstructionTagType) ConstructTagAt(source *Source, pos int) Tag {
	text := source.ParseText()
	targetBegin := pos + len(t.StartDelimiter())
	targetEnd := scanName(text, targetBegin)
	if targetEnd == targetBegin {
		return nil
	}
	return constructDelimited(source, t, pos, t.NamePrefix()+source.Substring(targetBegin, targetEnd))
}

// declarationTagType covers "<!doctype ...>" and the DTD markup declarations. When keywords
// is non-empty the delimiter must be followed by one of them.
type declarationTagType struct {
	TagTypeBase
	keywords []string
}

func (t *declarationTagType) ConstructTagAt(source *Source, pos int) Tag {
	text := source.ParseText()
	name := t.NamePrefix()
	after := pos + len(t.StartDelimiter())
	if len(t.keywords) > 0 {
		keyword := ""
		for _, k := range t.keywords {
			if text.ContainsAt(k, after) {
				keyword = k
				break
			}
		}
		if keyword == "" {
			return nil
		}
		name += keyword
		after += len(keyword)
	}
	if !core.IsWhitespace(int(text.At(after))) {
		return nil
	}
	end, ok := findStartTagEnd(text, after)
	if !ok {
		if end == text.Len() {
			source.logf(pos, "%s not terminated before end of document", t.Description())
		}
		return nil
	}
	return NewStartTag(source, pos, end, t, name)
}

// unregisteredTagType is the type of fallback tags spanning from '<' to the next '>'
type unregisteredTagType struct {
	TagTypeBase
}

func newUnregisteredTagType(description, startDelimiter string) *unregisteredTagType {
	return &unregisteredTagType{NewTagTypeBase(description, startDelimiter, ">", false)}
}

func (t *unregisteredTagType) ConstructTagAt(source *Source, pos int) Tag {
	gt := source.ParseText().IndexOfByte('>', pos+1)
	if gt < 0 {
		return nil
	}
	var tag Tag
	if t.IsEndTagType() {
		tag = NewEndTag(source, pos, gt+1, t, "")
	} else {
		tag = NewStartTag(source, pos, gt+1, t, "")
	}
	source.logf(pos, "encountered possible %s %q whose content does not match a registered tag type",
		kindOf(tag), source.Substring(pos, gt+1))
	return tag
}

func kindOf(tag Tag) string {
	if _, ok := tag.(*EndTag); ok {
		return "EndTag"
	}
	return "StartTag"
}

func lowerASCII(s string) string {
	for i := 0; i < len(s); i++ {
		if 'A' <= s[i] && s[i] <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if 'A' <= b[j] && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}
