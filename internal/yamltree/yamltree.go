// Package yamltree flattens YAML documents into store items.
//
// Nested mappings become key prefixes:
//
//	db:
//	  host: localhost   ->  db.host = "localhost"
//	  ports: [1, 2]     ->  db.ports = []interface{}{1, 2}
//
// Anything that is not a non-empty mapping is a single value. Nulls carry
// no value and are skipped.
package yamltree

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/aglyzov/go-pyramis/keypath"
	"github.com/aglyzov/go-pyramis/pyramis"
)

// ErrUnsupportedKey is returned for mapping keys that are not scalars.
var ErrUnsupportedKey = errors.New("mapping key is not a scalar")

// Load reads a single YAML document and returns its values in document
// order. Keys containing the separator are rejected.
func Load(r io.Reader, sep string) ([]pyramis.KV, error) {
	var doc yaml.Node

	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil // empty input
		}
		return nil, fmt.Errorf("yaml decode: %w", err)
	}

	var items []pyramis.KV

	if err := flatten(&doc, nil, sep, &items); err != nil {
		return nil, err
	}

	return items, nil
}

func flatten(n *yaml.Node, path []string, sep string, items *[]pyramis.KV) error {
	switch n.Kind {
	case yaml.DocumentNode:
		for _, c := range n.Content {
			if err := flatten(c, path, sep, items); err != nil {
				return err
			}
		}
		return nil

	case yaml.AliasNode:
		return flatten(n.Alias, path, sep, items)

	case yaml.MappingNode:
		if len(n.Content) == 0 {
			break // an empty mapping is a value of its own
		}

		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]

			if k.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: %w", k.Line, ErrUnsupportedKey)
			}

			if err := flatten(v, append(path[:len(path):len(path)], k.Value), sep, items); err != nil {
				return err
			}
		}
		return nil
	}

	var val interface{}

	if err := n.Decode(&val); err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}

	if val == nil {
		return nil
	}

	key, err := keypath.Join(sep, path...)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}

	*items = append(*items, pyramis.KV{Key: key, Val: val})

	return nil
}
