package pyramis

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnum(t *testing.T) {
	t.Parallel()

	s := New(WithItems(
		KV{"a.x", 1},
		KV{"a.y", 2},
		KV{"a", 0},
		KV{"b", 3},
		KV{"c.d.e", 4},
	))

	for _, tcase := range []*struct {
		Name string
		Key  string
		Exp  []KV
	}{
		{
			Name: "whole store", Key: RootKey,
			Exp: []KV{{"a.x", 1}, {"a.y", 2}, {"a", 0}, {"b", 3}, {"c.d.e", 4}},
		},
		{
			Name: "own value after children", Key: "a",
			Exp: []KV{{"x", 1}, {"y", 2}, {"", 0}},
		},
		{
			Name: "leaf", Key: "a.x",
			Exp: []KV{{"", 1}},
		},
		{
			Name: "node without own value", Key: "c",
			Exp: []KV{{"d.e", 4}},
		},
		{
			Name: "unknown", Key: "z",
			Exp: nil,
		},
		{
			Name: "past a leaf", Key: "b.q",
			Exp: nil,
		},
	} {
		tcase := tcase

		t.Run(tcase.Name, func(t *testing.T) {
			var got []KV

			s.Enum(tcase.Key, func(key string, val interface{}) {
				got = append(got, KV{key, val})
			})

			if diff := cmp.Diff(tcase.Exp, got); diff != "" {
				t.Errorf("unexpected items (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEnum_OwnValueOnce(t *testing.T) {
	t.Parallel()

	s := New(WithItems(KV{"p", "own"}, KV{"p.a", 1}, KV{"p.b", 2}))

	var seen = map[string]int{}

	s.Enum("p", func(key string, val interface{}) {
		seen[key]++
	})

	assert.Equal(t, map[string]int{"": 1, "a": 1, "b": 1}, seen)
}

func TestEnum_RootValue(t *testing.T) {
	t.Parallel()

	s := New(WithItems(KV{RootKey, "top"}, KV{"a", 1}))

	assert.Equal(t, []KV{{"a", 1}, {"", "top"}}, s.Items(RootKey))
}

func TestWalk_Stop(t *testing.T) {
	t.Parallel()

	s := New(WithItems(KV{"a", 1}, KV{"b", 2}, KV{"c", 3}))

	var keys []string

	done := s.Walk(RootKey, func(key string, _ interface{}) bool {
		keys = append(keys, key)
		return key != "b"
	})

	assert.False(t, done)
	assert.Equal(t, []string{"a", "b"}, keys)

	assert.True(t, s.Walk(RootKey, func(string, interface{}) bool { return true }))
	assert.True(t, s.Walk("unknown", func(string, interface{}) bool { return false }))
}

func TestKeys_Items_Len(t *testing.T) {
	t.Parallel()

	s := New(WithSeparator("/"), WithItems(KV{"usr/bin", 1}, KV{"usr/lib", 2}, KV{"etc", 3}))

	assert.Equal(t, []string{"usr/bin", "usr/lib", "etc"}, s.Keys(RootKey))
	assert.Equal(t, []string{"bin", "lib"}, s.Keys("usr"))
	assert.Nil(t, s.Keys("var"))
	assert.Equal(t, []KV{{"bin", 1}, {"lib", 2}}, s.Items("usr"))
	assert.Equal(t, 3, s.Len())
}

func TestEnum_InsertionOrder(t *testing.T) {
	t.Parallel()

	s := New(WithItems(KV{"z", 1}, KV{"a", 2}, KV{"m", 3}))

	assert.Equal(t, []string{"z", "a", "m"}, s.Keys(RootKey))

	s.Set("a", 4) // replacing keeps the position

	assert.Equal(t, []string{"z", "a", "m"}, s.Keys(RootKey))

	s.Delete("a")
	s.Set("a", 5)

	assert.Equal(t, []string{"z", "m", "a"}, s.Keys(RootKey))
}

func TestDeleteTree(t *testing.T) {
	t.Parallel()

	s := New(WithItems(KV{"x.y.z", 1}, KV{"q", 2}))

	s.DeleteTree("x.y.z", false)

	var count int
	s.Enum("x", func(string, interface{}) { count++ })

	assert.Equal(t, 0, count)
	assert.Equal(t, []KV{{"q", 2}}, s.Items(RootKey))

	checkTree(t, s)
}

func TestDeleteTree_IgnoreRootValue(t *testing.T) {
	t.Parallel()

	s := New(WithItems(KV{"p", 1}, KV{"p.a", 2}, KV{"p.b.c", 3}, KV{"other", 4}))

	s.DeleteTree("p", true)

	assert.Equal(t, []KV{{"p", 1}, {"other", 4}}, s.Items(RootKey))

	r, ok := s.root.child("p")
	require.True(t, ok)
	assert.False(t, r.isNode(), "p is a plain leaf again")

	s.DeleteTree("p", false)

	assert.Equal(t, []KV{{"other", 4}}, s.Items(RootKey))

	checkTree(t, s)
}

func TestDeleteTree_Root(t *testing.T) {
	t.Parallel()

	s := New(WithItems(KV{RootKey, 0}, KV{"a.b", 1}, KV{"c", 2}))

	s.DeleteTree(RootKey, true)

	assert.Equal(t, []KV{{"", 0}}, s.Items(RootKey))

	s.DeleteTree(RootKey, false)

	assert.Equal(t, 0, s.Len())
	assert.True(t, s.root.empty())
}

func TestDeleteTree_NotifiesEachValue(t *testing.T) {
	t.Parallel()

	var (
		s       = New(WithItems(KV{"t", 0}, KV{"t.a", 1}, KV{"t.b.c", 2}))
		deleted []KV
	)

	s.Watch("t", func(key string, val, prev interface{}) {
		assert.Nil(t, val)
		deleted = append(deleted, KV{key, prev})
	})

	s.DeleteTree("t", false)

	assert.Equal(t, []KV{{"a", 1}, {"b.c", 2}, {"", 0}}, deleted)
}

func TestDeleteTree_Unknown(t *testing.T) {
	t.Parallel()

	s := New(WithItems(KV{"a", 1}))

	s.DeleteTree("b", false)
	s.DeleteTree("a.b", false)

	assert.Equal(t, 1, s.Len())
}

func TestDebugDump(t *testing.T) {
	// not parallel: captures os.Stdout

	s := New(WithItems(KV{"a", 1}, KV{"a.b", 2}, KV{"c", "x"}))

	r, w, err := os.Pipe()
	require.NoError(t, err)

	stdout := os.Stdout
	os.Stdout = w

	s.DebugDump()

	os.Stdout = stdout
	require.NoError(t, w.Close())

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)

	assert.Equal(t,
		"ROOT NODE\n"+
			"  \"a\": NODE val=1\n"+
			"    \"b\": LEAF val=2\n"+
			"  \"c\": LEAF val=x\n",
		buf.String(),
	)
}
