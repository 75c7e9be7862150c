package markup

// TagAt returns the tag starting at pos, or nil
func (s *Source) TagAt(pos int) Tag {
	return s.cache.TagAt(pos)
}

// NextTag returns the first tag beginning at or after pos
func (s *Source) NextTag(pos int) Tag {
	return s.cache.PreviousOrNext(pos, nil, false)
}

// PreviousTag returns the last tag beginning at or before pos
func (s *Source) PreviousTag(pos int) Tag {
	return s.cache.PreviousOrNext(pos, nil, true)
}

// NextTagOfType returns the first tag of type tagType beginning at or after pos
func (s *Source) NextTagOfType(pos int, tagType TagType) Tag {
	return s.cache.PreviousOrNext(pos, tagType, false)
}

// PreviousTagOfType returns the last tag of type tagType beginning at or before pos
func (s *Source) PreviousTagOfType(pos int, tagType TagType) Tag {
	return s.cache.PreviousOrNext(pos, tagType, true)
}

// NextStartTag returns the first start tag named name beginning at or after pos.
// Names are compared case-insensitively.
func (s *Source) NextStartTag(pos int, name string) *StartTag {
	name = s.canonicalName(name)
	for tag := s.NextTag(pos); tag != nil; tag = s.NextTag(tag.Begin() + 1) {
		if st, ok := tag.(*StartTag); ok && st.Name() == name {
			return st
		}
	}
	return nil
}

// NextEndTag returns the first end tag named name beginning at or after pos
func (s *Source) NextEndTag(pos int, name string) *EndTag {
	name = s.canonicalName(name)
	for tag := s.NextTag(pos); tag != nil; tag = s.NextTag(tag.Begin() + 1) {
		if et, ok := tag.(*EndTag); ok && et.Name() == name {
			return et
		}
	}
	return nil
}

// EnclosingTag returns the nearest tag of type tagType (any type when nil) beginning at or
// before pos that contains pos, or nil
func (s *Source) EnclosingTag(pos int, tagType TagType) Tag {
	tag := s.cache.PreviousOrNext(pos, tagType, true)
	if tag != nil && pos < tag.End() {
		return tag
	}
	return nil
}
