package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDoc = `app:
  name: demo
  db:
    host: h
`

func writeDoc(t *testing.T, doc string) string {
	t.Helper()

	fn := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(fn, []byte(doc), 0o644))

	return fn
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	err := newApp(&out).Run(append([]string{"pyramis"}, args...))

	return out.String(), err
}

func TestDump(t *testing.T) {
	t.Parallel()

	fn := writeDoc(t, testDoc)

	out, err := runApp(t, "dump", fn)
	require.NoError(t, err)
	assert.Equal(t, "app.name = demo\napp.db.host = h\n", out)

	out, err = runApp(t, "dump", "--prefix", "app.db", fn)
	require.NoError(t, err)
	assert.Equal(t, "app.db.host = h\n", out)

	out, err = runApp(t, "--separator", "/", "dump", fn)
	require.NoError(t, err)
	assert.Equal(t, "app/name = demo\napp/db/host = h\n", out)
}

func TestDump_Errors(t *testing.T) {
	t.Parallel()

	_, err := runApp(t, "dump")
	assert.Error(t, err)

	_, err = runApp(t, "dump", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = runApp(t, "--separator", "::", "dump", writeDoc(t, testDoc))
	assert.Error(t, err)

	_, err = runApp(t, "dump", writeDoc(t, "a.b: 1\n"))
	assert.Error(t, err)
}

func TestGet(t *testing.T) {
	t.Parallel()

	fn := writeDoc(t, testDoc)

	out, err := runApp(t, "get", fn, "app.name")
	require.NoError(t, err)
	assert.Equal(t, "demo\n", out)

	_, err = runApp(t, "get", fn, "app.missing")
	assert.EqualError(t, err, `key "app.missing": not found`)

	_, err = runApp(t, "get", fn)
	assert.EqualError(t, err, "expected a key argument")

	out, err = runApp(t, "--verbose", "get", fn, "app.db.host")
	require.NoError(t, err)
	assert.Equal(t, "h\n", out)
}

func TestWatch(t *testing.T) {
	t.Parallel()

	fn := writeDoc(t, testDoc)

	out, err := runApp(t, "watch", "--key", "app", fn, "app.db.port=5432", "app.name=", "other=1")
	require.NoError(t, err)
	assert.Equal(t, ""+
		"app: \"db.port\" <nil> -> 5432\n"+
		"app: \"name\" demo -> <nil>\n",
		out,
	)

	out, err = runApp(t, "watch", "--key", "app.db", "--enum", fn)
	require.NoError(t, err)
	assert.Equal(t, "app.db: \"host\" <nil> -> h\n", out)

	out, err = runApp(t, "--ignore-same-value", "watch", fn, "app.name=demo")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = runApp(t, "watch", fn, "broken")
	assert.Error(t, err)
}
