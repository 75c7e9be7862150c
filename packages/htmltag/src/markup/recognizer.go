package markup

import (
	"fmt"
	"runtime"
	"strings"
)

// sequentialParseState is the state of a running FullSequentialParse
type sequentialParseState struct {
	// ignoringEnd is the end of the last tag of an ignoring type found so far.
	// Positions before it lie inside such a tag.
	ignoringEnd int
}

type validity int

const (
	validityUnknown validity = iota
	validityValid
	validityInvalid
)

// recognizeAt returns the tag starting at pos without consulting the cache for pos itself.
//
// Candidates are tried in registry precedence order. Non-server candidates are only tried when
// pos is not inside a tag of an ignoring type. If no candidate constructs a tag at a valid
// position, an unregistered tag reaching to the next '>' is returned instead.
func (s *Source) recognizeAt(pos int) Tag {
	text := s.ParseText()
	if pos < 0 || pos >= text.Len() || text.At(pos) != '<' {
		return nil
	}
	valid := validityUnknown
	it := s.registry.CandidatesAt(text, pos)
	for t, ok := it.Next(); ok; t, ok = it.Next() {
		if !t.IsServerTag() {
			if valid == validityUnknown {
				valid = s.checkPosition(pos)
			}
			if valid == validityInvalid {
				continue
			}
		}
		if tag := s.construct(t, pos); tag != nil {
			return tag
		}
	}
	if valid == validityUnknown {
		valid = s.checkPosition(pos)
	}
	if valid == validityInvalid {
		return nil
	}
	fallback := StartTagTypeUNREGISTERED
	if text.At(pos+1) == '/' {
		fallback = EndTagTypeUNREGISTERED
	}
	return s.construct(fallback, pos)
}

// construct asks t for a tag at pos. A construction that runs off the end of the text is
// logged and treated as no match.
func (s *Source) construct(t TagType, pos int) (tag Tag) {
	defer func() {
		if r := recover(); r != nil {
			if !isBoundsError(r) {
				panic(r)
			}
			s.logf(pos, "%s construction aborted: %v", t.Description(), r)
			tag = nil
		}
	}()
	tag = t.ConstructTagAt(s, pos)
	if tag != nil && tag.Begin() != pos {
		s.logf(pos, "%s construction returned a tag at %d, ignored", t.Description(), tag.Begin())
		return nil
	}
	return tag
}

func isBoundsError(r interface{}) bool {
	err, ok := r.(runtime.Error)
	if !ok {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "index out of range") || strings.Contains(msg, "slice bounds out of range")
}

func (s *Source) checkPosition(pos int) validity {
	if s.isValidPosition(pos) {
		return validityValid
	}
	return validityInvalid
}

// isValidPosition reports whether a non-server tag may start at pos
func (s *Source) isValidPosition(pos int) bool {
	if st := s.sequential; st != nil {
		return pos >= st.ignoringEnd
	}
	return s.enclosingIgnoringTag(pos) == nil
}

// enclosingIgnoringTag returns the tag of an ignoring type with begin < pos < end, if any.
//
// The text before pos is scanned forward from the end of the last cached ignoring-type tag,
// jumping over every ignoring-type tag found on the way, so a delimiter lying inside another
// ignoring-type tag is never taken for the start of one. Only positions strictly before pos
// are recognized, so the check never recognizes a tag at pos itself.
func (s *Source) enclosingIgnoringTag(pos int) Tag {
	if pos <= 0 || len(s.ignoringTypes) == 0 {
		return nil
	}
	cursor := 0
	for _, t := range s.ignoringTypes {
		if known := s.cache.lastOfTypeBefore(t, pos); known != nil {
			if known.End() > pos {
				return known
			}
			cursor = max(cursor, known.End())
		}
	}
	text := s.ParseText()
	for cursor < pos {
		q := -1
		for _, t := range s.ignoringTypes {
			if i := text.IndexOfBounded(t.StartDelimiter(), cursor, pos); i >= 0 && (q < 0 || i < q) {
				q = i
			}
		}
		if q < 0 {
			return nil
		}
		tag := s.cache.all.at(q)
		if tag == nil {
			tag = s.probeAt(q)
		}
		if tag == nil || !s.isIgnoringType(tag.TagType()) {
			cursor = q + 1
			continue
		}
		if tag.End() > pos {
			return tag
		}
		cursor = max(tag.End(), q+1)
	}
	return nil
}

// probeAt returns the tag recognized at q, which must be a valid position, without caching it.
// Diagnostics are suppressed; they are reported when q itself is queried.
func (s *Source) probeAt(q int) Tag {
	logger := s.logger
	s.logger = nil
	defer func() {
		s.logger = logger
	}()
	it := s.registry.CandidatesAt(s.ParseText(), q)
	for t, ok := it.Next(); ok; t, ok = it.Next() {
		if tag := s.construct(t, q); tag != nil {
			return tag
		}
	}
	return nil
}

func (s *Source) isIgnoringType(t TagType) bool {
	for _, it := range s.ignoringTypes {
		if it == t {
			return true
		}
	}
	return false
}

// FullSequentialParse recognizes every tag of the source in one left-to-right pass and loads
// the result into the cache. Afterwards searches are answered from the cache alone and
// FindNextTag/FindPreviousTag are index steps. The returned slice is a copy.
//
// The nesting check uses the end of the last ignoring-type tag seen so far, which is exact
// because every earlier tag is already known. The returned slice contains unregistered tags;
// RegisteredTags and AllStartTags exclude them.
func (s *Source) FullSequentialParse() []Tag {
	s.parseAll()
	return append([]Tag{}, s.allTags...)
}

func (s *Source) parseAll() {
	if s.allTags != nil {
		return
	}
	if s.sequential != nil {
		panic("FullSequentialParse called recursively")
	}
	state := &sequentialParseState{}
	s.sequential = state
	defer func() {
		s.sequential = nil
	}()

	text := s.ParseText()
	tags := []Tag{}
	for pos := 0; pos < text.Len(); {
		q := text.IndexOfByte('<', pos)
		if q < 0 {
			break
		}
		tag := s.recognizeAt(q)
		if tag == nil {
			pos = q + 1
			continue
		}
		tag.base().parseIndex = len(tags)
		tags = append(tags, tag)
		if s.isIgnoringType(tag.TagType()) && tag.End() > state.ignoringEnd {
			state.ignoringEnd = tag.End()
		}
		if tag.IsUnregistered() {
			pos = q + 1
		} else {
			pos = max(tag.End(), q+1)
		}
	}

	s.cache.BulkLoad(tags)
	s.allTags = tags
	s.registeredTags = make([]Tag, 0, len(tags))
	s.allStartTags = make([]*StartTag, 0, len(tags))
	for _, tag := range tags {
		if tag.IsUnregistered() {
			continue
		}
		s.registeredTags = append(s.registeredTags, tag)
		if st, ok := tag.(*StartTag); ok {
			s.allStartTags = append(s.allStartTags, st)
		}
	}
}

// AllTags returns every tag found by FullSequentialParse, running it if needed
func (s *Source) AllTags() []Tag {
	return s.FullSequentialParse()
}

// RegisteredTags returns the tags of registered types found by FullSequentialParse
func (s *Source) RegisteredTags() []Tag {
	s.parseAll()
	return append([]Tag{}, s.registeredTags...)
}

// AllStartTags returns the start tags of registered types found by FullSequentialParse
func (s *Source) AllStartTags() []*StartTag {
	s.parseAll()
	return append([]*StartTag{}, s.allStartTags...)
}

// String returns a summary of the source, mainly for debugging
func (s *Source) String() string {
	return fmt.Sprintf("Source(%s, %d bytes, %d cached tags)", s.file.URL, len(s.text), s.cache.Len())
}
