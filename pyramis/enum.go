package pyramis

import (
	"fmt"
	"strings"

	"github.com/aglyzov/go-pyramis/keypath"
)

// Enum calls fn for every value stored at or below the key, depth first.
// Keys passed to fn are relative to the key; the value stored at the key
// itself is reported last, with RootKey. Children are visited in insertion
// order.
func (s *Store) Enum(key string, fn func(key string, val interface{})) {
	s.Walk(key, func(key string, val interface{}) bool {
		fn(key, val)
		return true
	})
}

// Walk is like Enum but stops as soon as fn returns false.
// It returns whether all values were visited.
func (s *Store) Walk(key string, fn func(key string, val interface{}) bool) bool {
	return s.visit(key, func(key string, _ bool, val interface{}) bool {
		return fn(key, val)
	})
}

// visit walks the values at or below the key; self is set for the value
// stored at the key itself.
func (s *Store) visit(key string, fn func(key string, self bool, val interface{}) bool) bool {
	r, ok := s.locate(key)
	if !ok {
		return true
	}

	return s.walk(r, RootKey, true, fn)
}

func (s *Store) walk(r ref, prefix string, self bool, fn func(string, bool, interface{}) bool) bool {
	if !r.isNode() {
		return fn(prefix, self, r.val)
	}

	var n = r.node

	ok := n.each(func(seg string, sub ref) bool {
		if self {
			return s.walk(sub, seg, false, fn)
		}
		return s.walk(sub, prefix+s.sep+seg, false, fn)
	})

	if !ok {
		return false
	}

	if n.val != nil {
		return fn(prefix, self, n.val)
	}

	return true
}

// Items returns the values stored at or below the prefix with keys relative
// to the prefix, in Enum order.
func (s *Store) Items(prefix string) []KV {
	var items []KV

	s.Enum(prefix, func(key string, val interface{}) {
		items = append(items, KV{key, val})
	})

	return items
}

// Keys returns the relative keys of the values stored at or below the
// prefix, in Enum order.
func (s *Store) Keys(prefix string) []string {
	var keys []string

	s.Enum(prefix, func(key string, _ interface{}) {
		keys = append(keys, key)
	})

	return keys
}

// Len returns the number of values in the store.
func (s *Store) Len() int {
	var size int

	s.Enum(RootKey, func(string, interface{}) {
		size++
	})

	return size
}

// DeleteTree deletes every value stored at or below the prefix, one key at
// a time, so watchers see a notification per deleted value. With
// ignoreRootValue the value stored at the prefix itself is kept.
func (s *Store) DeleteTree(prefix string, ignoreRootValue bool) {
	var keys []string

	prefix = keypath.Clean(prefix, s.sep)

	// collect first: deleting prunes the very nodes being walked
	s.visit(prefix, func(key string, self bool, _ interface{}) bool {
		switch {
		case self && ignoreRootValue:
		case self:
			keys = append(keys, prefix)
		case prefix == RootKey:
			keys = append(keys, key)
		default:
			keys = append(keys, prefix+s.sep+key)
		}
		return true
	})

	for _, key := range keys {
		s.Delete(key)
	}
}

// DebugDump prints the tree structure to stdout.
func (s *Store) DebugDump() {
	s.debugDump(ref{node: s.root}, "ROOT", "")
}

func (s *Store) debugDump(r ref, tag string, indent string) {
	if !r.isNode() {
		fmt.Printf("%s%s LEAF val=%v\n", indent, tag, r.val)
		return
	}

	if r.node.val != nil {
		fmt.Printf("%s%s NODE val=%v\n", indent, tag, r.node.val)
	} else {
		fmt.Printf("%s%s NODE\n", indent, tag)
	}

	r.node.each(func(seg string, sub ref) bool {
		s.debugDump(sub, fmt.Sprintf("%q:", seg), indent+strings.Repeat(" ", 2))
		return true
	})
}
