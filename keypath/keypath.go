// Package keypath splits separator-delimited keys ("a.b.c") into segments
// and ancestor chains.
//
// Splitting is purely lexical: there is no escaping, so a segment must not
// contain the separator. Use Join to build keys from untrusted segments.
//
// Leading and trailing separators are ignored: ".a" and "a.." both address
// "a". Inner empty segments ("a..b") are kept. Thus no ancestor of a key
// but the root is RootKey, and RootKey as a relative key always means the
// key itself.
package keypath

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// RootKey denotes the empty path.
const RootKey = ""

// DefaultSeparator is used by stores created without an explicit separator.
const DefaultSeparator = "."

var (
	// ErrSeparatorInSegment is returned by Join when a segment contains the separator.
	ErrSeparatorInSegment = errors.New("segment contains the separator")
	// ErrInvalidSeparator is returned when a separator is not exactly one character.
	ErrInvalidSeparator = errors.New("separator must be a single character")
	// ErrEmptyEdgeSegment is returned by Join when the first or the last of
	// several segments is empty, as it would be dropped by Parse.
	ErrEmptyEdgeSegment = errors.New("first or last segment is empty")
)

// Parsed is a key decomposed for navigation and notification fan-out.
//
// Keys and Subkeys are aligned and always one entry longer than Path:
// Keys[i] is the i-th ancestor (Keys[0] is the root, the last one is the key
// itself) and Subkeys[i] is what remains of the key below Keys[i]. The last
// Subkey is RootKey, meaning "this exact node".
type Parsed struct {
	Path    []string
	Keys    []string
	Subkeys []string
}

// Depth returns the number of segments.
func (p Parsed) Depth() int {
	return len(p.Path)
}

// Clean strips leading and trailing separators off a key.
func Clean(key, sep string) string {
	return strings.Trim(key, sep)
}

// Parse decomposes a key. The root key yields an empty Path and a single
// root-relative-to-root entry.
func Parse(key, sep string) Parsed {
	if key = Clean(key, sep); key == RootKey {
		return Parsed{
			Path:    []string{},
			Keys:    []string{RootKey},
			Subkeys: []string{RootKey},
		}
	}

	var (
		path    = strings.Split(key, sep)
		keys    = make([]string, 0, len(path)+1)
		subkeys = make([]string, 0, len(path)+1)
		pos     int
	)

	keys = append(keys, RootKey)

	for _, part := range path {
		end := pos + len(part)

		keys = append(keys, key[:end])
		subkeys = append(subkeys, key[pos:])

		pos = end + len(sep)
	}

	subkeys = append(subkeys, RootKey)

	return Parsed{
		Path:    path,
		Keys:    keys,
		Subkeys: subkeys,
	}
}

// Split returns the segments of a key (nil for the root key).
func Split(key, sep string) []string {
	if key = Clean(key, sep); key == RootKey {
		return nil
	}

	return strings.Split(key, sep)
}

// Join builds a key out of segments. It refuses segments which would be
// mis-split later on. A single empty segment yields RootKey.
func Join(sep string, segments ...string) (string, error) {
	if !ValidSeparator(sep) {
		return "", ErrInvalidSeparator
	}

	for i, seg := range segments {
		if strings.Contains(seg, sep) {
			return "", fmt.Errorf("segment %d (%q): %w", i, seg, ErrSeparatorInSegment)
		}
	}

	if n := len(segments); n > 1 {
		switch {
		case segments[0] == "":
			return "", fmt.Errorf("segment 0: %w", ErrEmptyEdgeSegment)
		case segments[n-1] == "":
			return "", fmt.Errorf("segment %d: %w", n-1, ErrEmptyEdgeSegment)
		}
	}

	return strings.Join(segments, sep), nil
}

// Child appends a relative key to a prefix. RootKey on either side is an
// identity.
func Child(prefix, rel, sep string) string {
	switch {
	case prefix == RootKey:
		return rel
	case rel == RootKey:
		return prefix
	}

	return prefix + sep + rel
}

// ValidSeparator reports whether sep is a single character.
func ValidSeparator(sep string) bool {
	return sep != "" && utf8.RuneCountInString(sep) == 1
}
