package markup

// ElementName is a closed enumeration of the element names the engine dispatches on.
// Names outside the enumeration map to ElementNameOther and are compared by string.
type ElementName int

const (
	ElementNameOther ElementName = iota
	ElementNameA
	ElementNameArea
	ElementNameBase
	ElementNameBody
	ElementNameBr
	ElementNameCol
	ElementNameDiv
	ElementNameEmbed
	ElementNameForm
	ElementNameHead
	ElementNameHr
	ElementNameHtml
	ElementNameImg
	ElementNameInput
	ElementNameLink
	ElementNameMeta
	ElementNameOption
	ElementNameP
	ElementNameParam
	ElementNameScript
	ElementNameSelect
	ElementNameSource
	ElementNameStyle
	ElementNameTable
	ElementNameTextarea
	ElementNameTitle
	ElementNameTrack
	ElementNameWbr
)

var elementNames = map[string]ElementName{
	"a":        ElementNameA,
	"area":     ElementNameArea,
	"base":     ElementNameBase,
	"body":     ElementNameBody,
	"br":       ElementNameBr,
	"col":      ElementNameCol,
	"div":      ElementNameDiv,
	"embed":    ElementNameEmbed,
	"form":     ElementNameForm,
	"head":     ElementNameHead,
	"hr":       ElementNameHr,
	"html":     ElementNameHtml,
	"img":      ElementNameImg,
	"input":    ElementNameInput,
	"link":     ElementNameLink,
	"meta":     ElementNameMeta,
	"option":   ElementNameOption,
	"p":        ElementNameP,
	"param":    ElementNameParam,
	"script":   ElementNameScript,
	"select":   ElementNameSelect,
	"source":   ElementNameSource,
	"style":    ElementNameStyle,
	"table":    ElementNameTable,
	"textarea": ElementNameTextarea,
	"title":    ElementNameTitle,
	"track":    ElementNameTrack,
	"wbr":      ElementNameWbr,
}

// LookupElementName returns the ElementName of a lower case name
func LookupElementName(name string) ElementName {
	if n, ok := elementNames[name]; ok {
		return n
	}
	return ElementNameOther
}

// IsVoid reports whether elements of this name never have an end tag
func (n ElementName) IsVoid() bool {
	switch n {
	case ElementNameArea, ElementNameBase, ElementNameBr, ElementNameCol, ElementNameEmbed,
		ElementNameHr, ElementNameImg, ElementNameInput, ElementNameLink, ElementNameMeta,
		ElementNameParam, ElementNameSource, ElementNameTrack, ElementNameWbr:
		return true
	}
	return false
}
