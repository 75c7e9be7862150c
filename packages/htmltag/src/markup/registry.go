package markup

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// Registry is a catalogue of tag types, stored as a trie keyed on the bytes of their start
// delimiters.
//
// Writers are serialized by a mutex and publish a new trie on every change, copying only the
// nodes on the modified path. Readers always work on an immutable snapshot, so a Registry
// may be shared by any number of Sources on different goroutines.
type Registry struct {
	mu   sync.Mutex
	root atomic.Pointer[registryNode]
}

type registryNode struct {
	key byte
	// children are sorted by key
	children []*registryNode
	// tagTypes whose start delimiter ends at this node, highest precedence first
	tagTypes []TagType
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	r := &Registry{}
	r.root.Store(&registryNode{})
	return r
}

// NewDefaultRegistry creates a Registry holding the built-in tag types
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, t := range BuiltinStartTagTypes() {
		r.Register(t)
	}
	for _, t := range BuiltinEndTagTypes() {
		r.Register(t)
	}
	return r
}

// Register adds a tag type. A type that is already registered is moved to the front of its
// node, giving it precedence over other types with the same start delimiter.
func (r *Registry) Register(t TagType) {
	delimiter := t.StartDelimiter()
	r.mu.Lock()
	defer r.mu.Unlock()
	root := r.root.Load().clone()
	node := root
	for i := 0; i < len(delimiter); i++ {
		node = node.mutableChild(delimiter[i])
	}
	types := make([]TagType, 0, len(node.tagTypes)+1)
	types = append(types, t)
	for _, existing := range node.tagTypes {
		if existing != t {
			types = append(types, existing)
		}
	}
	node.tagTypes = types
	r.root.Store(root)
}

// Deregister removes a tag type and prunes the nodes left empty.
// It returns false if the type was not registered.
func (r *Registry) Deregister(t TagType) bool {
	delimiter := t.StartDelimiter()
	r.mu.Lock()
	defer r.mu.Unlock()
	old := r.root.Load()
	if !old.lookup(delimiter).contains(t) {
		return false
	}
	root := old.clone()
	path := make([]*registryNode, 0, len(delimiter)+1)
	path = append(path, root)
	node := root
	for i := 0; i < len(delimiter); i++ {
		node = node.mutableChild(delimiter[i])
		path = append(path, node)
	}
	types := make([]TagType, 0, len(node.tagTypes))
	for _, existing := range node.tagTypes {
		if existing != t {
			types = append(types, existing)
		}
	}
	node.tagTypes = types

	// Prune empty nodes from leaf to root
	for i := len(path) - 1; i > 0; i-- {
		current := path[i]
		if len(current.tagTypes) != 0 || len(current.children) != 0 {
			break
		}
		path[i-1].removeChild(current.key)
	}
	r.root.Store(root)
	return true
}

// IsRegistered reports whether the tag type is registered
func (r *Registry) IsRegistered(t TagType) bool {
	return r.root.Load().lookup(t.StartDelimiter()).contains(t)
}

// CandidatesAt returns the tag types that could start at pos in text, in precedence order:
// types with longer matching start delimiters first, and among types with the same start
// delimiter the most recently registered first.
func (r *Registry) CandidatesAt(text *ParseText, pos int) *CandidateIterator {
	it := &CandidateIterator{}
	if pos < 0 || pos >= text.Len() {
		return it
	}
	node := r.root.Load()
	for i := pos; i < text.Len(); i++ {
		child := node.child(text.At(i))
		if child == nil {
			break
		}
		it.path = append(it.path, child)
		node = child
	}
	it.level = len(it.path) - 1
	return it
}

// TagTypes returns every registered tag type, types with longer start delimiters first
func (r *Registry) TagTypes() []TagType {
	var byDepth [][]TagType
	var walk func(n *registryNode, depth int)
	walk = func(n *registryNode, depth int) {
		if len(n.tagTypes) > 0 {
			for len(byDepth) <= depth {
				byDepth = append(byDepth, nil)
			}
			byDepth[depth] = append(byDepth[depth], n.tagTypes...)
		}
		for _, c := range n.children {
			walk(c, depth+1)
		}
	}
	walk(r.root.Load(), 0)
	var result []TagType
	for i := len(byDepth) - 1; i >= 0; i-- {
		result = append(result, byDepth[i]...)
	}
	return result
}

// String lists the registered tag types, one per line
func (r *Registry) String() string {
	var sb strings.Builder
	for _, t := range r.TagTypes() {
		sb.WriteString(t.StartDelimiter())
		sb.WriteString(" ")
		sb.WriteString(t.Description())
		sb.WriteString("\n")
	}
	return sb.String()
}

// CandidateIterator lazily yields candidate tag types in precedence order
type CandidateIterator struct {
	// path holds the matched nodes below the root, deepest last
	path  []*registryNode
	level int
	index int
}

// Next returns the next candidate, or false when there are no more
func (it *CandidateIterator) Next() (TagType, bool) {
	for it.level >= 0 {
		node := it.path[it.level]
		if it.index < len(node.tagTypes) {
			t := node.tagTypes[it.index]
			it.index++
			return t, true
		}
		it.level--
		it.index = 0
	}
	return nil, false
}

// All drains the iterator
func (it *CandidateIterator) All() []TagType {
	var types []TagType
	for t, ok := it.Next(); ok; t, ok = it.Next() {
		types = append(types, t)
	}
	return types
}

func (n *registryNode) clone() *registryNode {
	return &registryNode{
		key:      n.key,
		children: append([]*registryNode(nil), n.children...),
		tagTypes: n.tagTypes,
	}
}

func (n *registryNode) search(key byte) int {
	return sort.Search(len(n.children), func(i int) bool {
		return n.children[i].key >= key
	})
}

func (n *registryNode) child(key byte) *registryNode {
	i := n.search(key)
	if i < len(n.children) && n.children[i].key == key {
		return n.children[i]
	}
	return nil
}

// mutableChild replaces the child for key with a private copy, creating it if needed, and
// returns the copy. n must itself be a private copy.
func (n *registryNode) mutableChild(key byte) *registryNode {
	i := n.search(key)
	if i < len(n.children) && n.children[i].key == key {
		c := n.children[i].clone()
		n.children[i] = c
		return c
	}
	c := &registryNode{key: key}
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = c
	return c
}

func (n *registryNode) removeChild(key byte) {
	i := n.search(key)
	if i < len(n.children) && n.children[i].key == key {
		n.children = append(n.children[:i], n.children[i+1:]...)
	}
}

func (n *registryNode) lookup(delimiter string) *registryNode {
	for i := 0; n != nil && i < len(delimiter); i++ {
		n = n.child(delimiter[i])
	}
	return n
}

func (n *registryNode) contains(t TagType) bool {
	if n == nil {
		return false
	}
	for _, existing := range n.tagTypes {
		if existing == t {
			return true
		}
	}
	return false
}
