package markup

import (
	"htmltag-go/packages/htmltag/src/core"
)

// The built-in end tag types. EndTagTypeUNREGISTERED is never registered.
var (
	EndTagTypeUNREGISTERED TagType = newUnregisteredTagType("unregistered end tag", "</")
	EndTagTypeNORMAL       TagType = &normalEndTagType{NewTagTypeBase("normal end tag", "</", ">", false)}
)

// BuiltinEndTagTypes returns the registered-by-default end tag types
func BuiltinEndTagTypes() []TagType {
	return []TagType{EndTagTypeNORMAL}
}

type normalEndTagType struct {
	TagTypeBase
}

func (t *normalEndTagType) ConstructTagAt(source *Source, pos int) Tag {
	text := source.ParseText()
	nameBegin := pos + len(t.StartDelimiter())
	nameEnd := scanName(text, nameBegin)
	if nameEnd == nameBegin {
		return nil
	}
	i := nameEnd
	for i < text.Len() && core.IsWhitespace(int(text.At(i))) {
		i++
	}
	if i == text.Len() {
		source.logf(pos, "EndTag %q not terminated before end of document", source.Substring(nameBegin, nameEnd))
		return nil
	}
	if text.At(i) != '>' {
		return nil
	}
	return NewEndTag(source, pos, i+1, t, source.Substring(nameBegin, nameEnd))
}
