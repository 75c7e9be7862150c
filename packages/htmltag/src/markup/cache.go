package markup

import (
	"sort"
)

// Cache memoizes the tags of a Source by start position.
//
// It consists of one sub-cache holding every discovered tag and one sub-cache for each
// separately cached tag type, which keeps "is pos inside a comment" style queries down to a
// binary search over the tags of that type. Within a sub-cache tags are unique by begin and
// kept in ascending begin order; the all-types sub-cache is a superset of the others.
//
// Before BulkLoad the caches only hold what has been asked for, so searches fall back to
// scanning the ParseText. After BulkLoad the caches are complete and every search is
// answered from them.
type Cache struct {
	source   *Source
	all      *subCache
	separate []*subCache
	complete bool
	elements map[Tag]elementCell
}

type subCache struct {
	tagType TagType
	tags    []Tag
}

func newCache(source *Source, separatelyCached []TagType) *Cache {
	c := &Cache{
		source:   source,
		all:      &subCache{},
		elements: make(map[Tag]elementCell),
	}
	for _, t := range separatelyCached {
		c.separate = append(c.separate, &subCache{tagType: t})
	}
	return c
}

// Len returns the number of cached tags
func (c *Cache) Len() int {
	return len(c.all.tags)
}

// IsComplete reports whether the cache was bulk loaded from a full sequential parse
func (c *Cache) IsComplete() bool {
	return c.complete
}

// Tags returns the cached tags in ascending begin order
func (c *Cache) Tags() []Tag {
	return append([]Tag(nil), c.all.tags...)
}

// TagAt returns the tag starting at pos, recognizing and caching it if needed.
// Once the cache is complete no recognition takes place.
func (c *Cache) TagAt(pos int) Tag {
	if pos < 0 || pos >= c.source.Len() {
		return nil
	}
	if tag := c.all.at(pos); tag != nil {
		return tag
	}
	if c.complete {
		return nil
	}
	tag := c.source.recognizeAt(pos)
	if tag != nil {
		c.Add(tag)
	}
	return tag
}

// Add inserts a tag into the all-types sub-cache and into the sub-cache of its type, if any.
// A tag whose begin is already cached is ignored.
func (c *Cache) Add(tag Tag) {
	if !c.all.insert(tag) {
		return
	}
	if sc := c.subCacheFor(tag.TagType()); sc != nil {
		sc.insert(tag)
	}
}

// BulkLoad replaces the cached tags with tags, which must be in ascending begin order as
// produced by a full sequential parse, and marks the cache complete.
func (c *Cache) BulkLoad(tags []Tag) {
	c.all.tags = append(make([]Tag, 0, len(tags)), tags...)
	for _, sc := range c.separate {
		sc.tags = nil
	}
	for _, tag := range tags {
		if sc := c.subCacheFor(tag.TagType()); sc != nil {
			sc.tags = append(sc.tags, tag)
		}
	}
	c.complete = true
	c.elements = make(map[Tag]elementCell)
}

// Clear discards all cached tags and element links
func (c *Cache) Clear() {
	c.all.tags = nil
	for _, sc := range c.separate {
		sc.tags = nil
	}
	c.complete = false
	c.elements = make(map[Tag]elementCell)
}

// PreviousOrNext returns the nearest tag of type tagType (any type when nil) beginning at or
// before pos when previous is true, or at or after pos otherwise. It returns nil if pos is
// outside the source or there is no such tag.
func (c *Cache) PreviousOrNext(pos int, tagType TagType, previous bool) Tag {
	if pos < 0 || pos > c.source.Len() {
		return nil
	}
	if c.complete {
		sc := c.subCacheFor(tagType)
		if sc == nil {
			sc = c.all
		}
		return sc.nearest(pos, tagType, previous)
	}
	delimiter := "<"
	if tagType != nil {
		delimiter = tagType.StartDelimiter()
	}
	text := c.source.ParseText()
	for q := pos; ; {
		if previous {
			q = text.LastIndexOf(delimiter, q)
		} else {
			q = text.IndexOf(delimiter, q)
		}
		if q < 0 {
			return nil
		}
		if tag := c.TagAt(q); tag != nil && (tagType == nil || tag.TagType() == tagType) {
			return tag
		}
		if previous {
			q--
		} else {
			q++
		}
	}
}

// lastOfTypeBefore returns the cached tag of the given type with the greatest begin < pos
func (c *Cache) lastOfTypeBefore(tagType TagType, pos int) Tag {
	sc := c.subCacheFor(tagType)
	if sc == nil {
		sc = c.all
	}
	if pos <= 0 {
		return nil
	}
	return sc.nearest(pos-1, tagType, true)
}

func (c *Cache) subCacheFor(tagType TagType) *subCache {
	if tagType == nil {
		return nil
	}
	for _, sc := range c.separate {
		if sc.tagType == tagType {
			return sc
		}
	}
	return nil
}

// search returns the index of the first tag with begin >= pos
func (sc *subCache) search(pos int) int {
	return sort.Search(len(sc.tags), func(i int) bool {
		return sc.tags[i].Begin() >= pos
	})
}

func (sc *subCache) at(pos int) Tag {
	i := sc.search(pos)
	if i < len(sc.tags) && sc.tags[i].Begin() == pos {
		return sc.tags[i]
	}
	return nil
}

func (sc *subCache) insert(tag Tag) bool {
	i := sc.search(tag.Begin())
	if i < len(sc.tags) && sc.tags[i].Begin() == tag.Begin() {
		return false
	}
	sc.tags = append(sc.tags, nil)
	copy(sc.tags[i+1:], sc.tags[i:])
	sc.tags[i] = tag
	return true
}

func (sc *subCache) nearest(pos int, tagType TagType, previous bool) Tag {
	i := sc.search(pos)
	if previous {
		if i == len(sc.tags) || sc.tags[i].Begin() > pos {
			i--
		}
		for ; i >= 0; i-- {
			if tagType == nil || sc.tags[i].TagType() == tagType {
				return sc.tags[i]
			}
		}
		return nil
	}
	for ; i < len(sc.tags); i++ {
		if tagType == nil || sc.tags[i].TagType() == tagType {
			return sc.tags[i]
		}
	}
	return nil
}
