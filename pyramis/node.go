package pyramis

import (
	"fmt"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// ref holds either a leaf value or a node
type ref struct {
	val  interface{}
	node *node
}

func (r ref) isNode() bool {
	return r.node != nil
}

func (r ref) String() string {
	if r.node != nil {
		return fmt.Sprintf("<ref NODE val=%v, children=%d>", r.node.val, r.node.children.Size())
	}
	return fmt.Sprintf("<ref LEAF val=%v>", r.val)
}

type node struct {
	// val is the value stored at the node's own path (nil when unset)
	val interface{}
	// children maps a segment to a ref, in insertion order
	children *linkedhashmap.Map
}

func newNode() *node {
	return &node{
		children: linkedhashmap.New(),
	}
}

func (n *node) child(seg string) (ref, bool) {
	r, ok := n.children.Get(seg)
	if !ok {
		return ref{}, false
	}
	return r.(ref), true
}

func (n *node) put(seg string, r ref) {
	n.children.Put(seg, r)
}

func (n *node) remove(seg string) {
	n.children.Remove(seg)
}

// empty reports a node to be pruned: no own value and no children
func (n *node) empty() bool {
	return n.val == nil && n.children.Empty()
}

// each calls fn for every child in insertion order until fn returns false.
// The children are snapshotted first, so fn may mutate the node.
func (n *node) each(fn func(seg string, r ref) bool) bool {
	var (
		keys = n.children.Keys()
		vals = n.children.Values()
	)

	for i, k := range keys {
		if !fn(k.(string), vals[i].(ref)) {
			return false
		}
	}

	return true
}
