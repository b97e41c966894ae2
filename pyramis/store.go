package pyramis

import (
	"go.uber.org/zap"

	"github.com/aglyzov/go-pyramis/emitter"
	"github.com/aglyzov/go-pyramis/keypath"
)

// RootKey denotes the empty path: the value stored at the root and the
// channel observing every change of a store.
const RootKey = keypath.RootKey

// KV is a key-value pair.
type KV struct {
	Key string
	Val interface{}
}

// Store is a tree of values addressed by separator-delimited keys.
//
// A Store is not safe for concurrent use.
type Store struct {
	root       *node
	sep        string
	ignoreSame bool
	ee         *emitter.Emitter
	log        *zap.Logger
}

// New creates an empty store and applies the options.
func New(opts ...Option) *Store {
	var s = settings{config: DefaultConfig()}

	for _, opt := range opts {
		opt(&s)
	}

	s.config.validate()

	var st = &Store{
		root:       newNode(), // never replaced, never pruned
		sep:        s.config.Separator,
		ignoreSame: s.config.IgnoreSameValue,
		ee:         emitter.New(emitter.WithLogger(s.config.Logger)),
		log:        s.config.Logger,
	}

	for _, kv := range s.items {
		st.Set(kv.Key, kv.Val)
	}

	return st
}

// Separator returns the segment separator.
func (s *Store) Separator() string {
	return s.sep
}

// Path builds a key out of segments, refusing segments which contain the
// separator.
func (s *Store) Path(segments ...string) (string, error) {
	return keypath.Join(s.sep, segments...)
}

// locate descends to the ref stored at the key. It fails when the key is
// unknown or the walk runs into a leaf before the last segment.
func (s *Store) locate(key string) (ref, bool) {
	var cur = ref{node: s.root}

	for _, seg := range keypath.Split(key, s.sep) {
		if !cur.isNode() {
			return ref{}, false // cannot descend past a leaf
		}

		next, ok := cur.node.child(seg)
		if !ok {
			return ref{}, false
		}

		cur = next
	}

	return cur, true
}

// Get returns the value stored at the key.
func (s *Store) Get(key string) (interface{}, bool) {
	r, ok := s.locate(key)
	if !ok {
		return nil, false
	}

	if r.isNode() {
		return r.node.val, r.node.val != nil
	}

	return r.val, true
}

// Has reports whether a value is stored at the key.
func (s *Store) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Set stores a value at the key, or deletes it when val is nil. Watchers of
// the key and of all its ancestors are notified before Set returns.
// It returns whether the store changed.
func (s *Store) Set(key string, val interface{}) bool {
	var (
		parsed  = keypath.Parse(key, s.sep)
		prev    interface{}
		changed bool
	)

	if val != nil {
		prev, changed = s.set(parsed.Path, val)
	} else {
		prev, changed = s.delete(parsed.Path)
	}

	if !changed {
		return false
	}

	for i := range parsed.Keys {
		s.ee.Emit(parsed.Keys[i], parsed.Subkeys[i], val, prev)
	}

	return true
}

// Delete removes the value stored at the key. Descendants of the key are
// kept. It returns whether anything was removed.
func (s *Store) Delete(key string) bool {
	return s.Set(key, nil)
}

func (s *Store) set(path []string, val interface{}) (interface{}, bool) {
	if len(path) == 0 {
		return s.replace(s.root, val)
	}

	var (
		cur  = s.root
		last = len(path) - 1
	)

	for i, seg := range path[:last] {
		next, ok := cur.child(seg)

		switch {
		case !ok:
			sub := newNode()
			cur.put(seg, ref{node: sub})
			cur = sub

		case !next.isNode():
			// promote the leaf into a node keeping the leaf as its own value
			sub := newNode()
			sub.val = next.val
			cur.put(seg, ref{node: sub})
			cur = sub

			s.log.Debug("leaf promoted", zap.Strings("path", path[:i+1]))

		default:
			cur = next.node
		}
	}

	var seg = path[last]

	next, ok := cur.child(seg)

	switch {
	case !ok:
		cur.put(seg, ref{val: val})
		return nil, true

	case !next.isNode():
		if s.ignoreSame && sameValue(next.val, val) {
			return nil, false
		}
		cur.put(seg, ref{val: val})
		return next.val, true

	default:
		// keep the descendants, replace the node's own value only
		return s.replace(next.node, val)
	}
}

func (s *Store) replace(n *node, val interface{}) (interface{}, bool) {
	var prev = n.val

	if s.ignoreSame && sameValue(prev, val) {
		return nil, false
	}

	n.val = val

	return prev, true
}

func (s *Store) delete(path []string) (interface{}, bool) {
	prev, _ := s.deleteClean(ref{node: s.root}, path)
	return prev, prev != nil
}

// deleteClean removes the value at path below r. It returns the removed
// value (nil if none) and whether r became empty and has to be unlinked by
// the caller.
func (s *Store) deleteClean(r ref, path []string) (interface{}, bool) {
	if !r.isNode() {
		if len(path) != 0 {
			return nil, false // the key continues past a leaf: nothing there
		}
		return r.val, true
	}

	var (
		n    = r.node
		prev interface{}
	)

	if len(path) == 0 {
		prev, n.val = n.val, nil
		return prev, n.empty()
	}

	var seg = path[0]

	sub, ok := n.child(seg)
	if !ok {
		return nil, false
	}

	prev, empty := s.deleteClean(sub, path[1:])

	switch {
	case empty:
		n.remove(seg)
		s.log.Debug("pruned", zap.String("segment", seg), zap.Int("depth", len(path)))

	case sub.isNode() && sub.node.children.Empty():
		// only the own value is left: demote the node back into a leaf
		n.put(seg, ref{val: sub.node.val})
		s.log.Debug("node demoted", zap.String("segment", seg), zap.Int("depth", len(path)))
	}

	return prev, n.empty()
}
