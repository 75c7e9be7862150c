package markup

// Element pairs a start tag with the end tag that closes it, if any
type Element struct {
	startTag *StartTag
	endTag   *EndTag
}

// StartTag returns the start tag of the element
func (e *Element) StartTag() *StartTag {
	return e.startTag
}

// EndTag returns the end tag of the element, or nil if it has none
func (e *Element) EndTag() *EndTag {
	return e.endTag
}

// Name returns the name of the element
func (e *Element) Name() string {
	return e.startTag.Name()
}

// Begin returns the begin of the start tag
func (e *Element) Begin() int {
	return e.startTag.Begin()
}

// End returns the end of the end tag, or of the start tag when there is no end tag
func (e *Element) End() int {
	if e.endTag != nil {
		return e.endTag.End()
	}
	return e.startTag.End()
}

// Content returns the source text between the start and end tags
func (e *Element) Content() string {
	if e.endTag == nil {
		return ""
	}
	return e.startTag.source.Substring(e.startTag.End(), e.endTag.Begin())
}

// resolution is the state of an elementCell
type resolution int

const (
	unresolved resolution = iota
	resolvedPresent
	resolvedAbsent
)

// elementCell memoizes the element of a tag. It moves from unresolved to one of the resolved
// states exactly once.
type elementCell struct {
	state   resolution
	element *Element
}

func (c *Cache) element(tag Tag) *Element {
	cell := c.elements[tag]
	if cell.state == unresolved {
		cell.element = resolveElement(tag)
		cell.state = resolvedAbsent
		if cell.element != nil {
			cell.state = resolvedPresent
		}
		c.elements[tag] = cell
	}
	return cell.element
}

func resolveElement(tag Tag) *Element {
	switch t := tag.(type) {
	case *StartTag:
		return resolveStartTagElement(t)
	case *EndTag:
		return resolveEndTagElement(t)
	}
	return nil
}

func resolveStartTagElement(start *StartTag) *Element {
	element := &Element{startTag: start}
	if start.TagType() != StartTagTypeNORMAL || start.IsEmptyElementTag() || start.ElementName().IsVoid() {
		return element
	}
	depth := 0
	for next := start.FindNextTag(); next != nil; next = next.FindNextTag() {
		if next.Name() != start.Name() {
			continue
		}
		switch n := next.(type) {
		case *StartTag:
			if n.TagType() == StartTagTypeNORMAL && !n.IsEmptyElementTag() {
				depth++
			}
		case *EndTag:
			if n.TagType() != EndTagTypeNORMAL {
				continue
			}
			if depth == 0 {
				element.endTag = n
				return element
			}
			depth--
		}
	}
	// Implicitly terminated
	return element
}

func resolveEndTagElement(end *EndTag) *Element {
	if end.TagType() != EndTagTypeNORMAL {
		return nil
	}
	depth := 0
	for prev := end.FindPreviousTag(); prev != nil; prev = prev.FindPreviousTag() {
		if prev.Name() != end.Name() {
			continue
		}
		switch p := prev.(type) {
		case *EndTag:
			if p.TagType() == EndTagTypeNORMAL {
				depth++
			}
		case *StartTag:
			if p.TagType() != StartTagTypeNORMAL || p.IsEmptyElementTag() {
				continue
			}
			if depth > 0 {
				depth--
				continue
			}
			if element := p.Element(); element != nil && element.EndTag() == end {
				return element
			}
			return nil
		}
	}
	return nil
}
