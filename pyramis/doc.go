// Package pyramis implements a hierarchical key-value store addressed by
// separator-delimited keys, e.g. "a.b.c".
//
// Any key may hold a value, children, or both at once: the store behaves
// like a file system where a directory can also be a file.
//
// The tree consists of nodes and leaves:
//
//   - a leaf is a plain value stored under a segment;
//   - a node maps segments to children and may hold a value of its own.
//
// Setting a value below a leaf promotes the leaf into a node keeping the
// former leaf as the node's own value. Deleting the last child of such a node
// demotes it back into a leaf, and a node without a value and children is
// pruned right away, so the tree never keeps empty branches:
//
//	Set("a", 1)      Set("a.b", 2)        Delete("a.b")
//
//	[ROOT]           [ROOT]               [ROOT]
//	  `-- a: 1         `-- a: (1)            `-- a: 1
//	                         `-- b: 2
//
// A nil value means "absent": Set(key, nil) is the same as Delete(key).
//
// # Watching
//
// Watchers are registered on exact keys. Every change is reported to the
// watchers of the changed key and of all its ancestors, with the key relative
// to the watcher:
//
//	s.Watch("a", fn)     // fn("b.c", 5, nil) after Set("a.b.c", 5)
//	s.Watch("a.b", fn)   // fn("c", 5, nil)
//	s.Watch("a.b.c", fn) // fn("", 5, nil)
//
// Notifications are delivered synchronously before Set returns. The store
// is not safe for concurrent use and watchers must not mutate the store.
//
// # Keys
//
// Keys are split lexically, there is no escaping: a segment must not contain
// the separator. Use Store.Path to build keys from arbitrary segments.
// Leading and trailing separators are ignored, so "a." is the key "a".
package pyramis
