package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "none.env")}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestExtractText(t *testing.T) {
	out, err := run(t, "extract", "--text", "In the Quinnipiac University poll, Democrats lead.")
	require.NoError(t, err)
	assert.Equal(t, "Quinnipiac University\tQuinnipiac University\tIn the Quinnipiac University poll, Democrats lead.\n", out)
}

func TestExtractExplain(t *testing.T) {
	out, err := run(t, "extract", "--explain", "--text", "A new poll from Gallup shows support slipping.")
	require.NoError(t, err)
	assert.Contains(t, out, "-\t")
}

func TestExtractRequiresInput(t *testing.T) {
	_, err := run(t, "extract")
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	dir := t.TempDir()
	pos := filepath.Join(dir, "pos.csv")
	require.NoError(t, os.WriteFile(pos, []byte(
		"\"In the Quinnipiac University poll, Democrats lead.\",Quinnipiac University\n"), 0o600))

	out, err := run(t, "classify", "--positive-csv", pos)
	require.NoError(t, err)
	assert.Contains(t, out, "regex hits: 1")
	assert.Contains(t, out, "chunk hits: 1")
}

func TestStoreStats(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "pollfinder.db")

	_, err := run(t, "extract", "--store", dsn, "--text", "In the Quinnipiac University poll, Democrats lead.")
	require.NoError(t, err)

	out, err := run(t, "store", "stats", "--store", dsn)
	require.NoError(t, err)
	assert.Equal(t, "extractions: 2\ncases: 0\n", out)

	out, err = run(t, "store", "list", "--store", dsn)
	require.NoError(t, err)
	assert.Contains(t, out, "chunk\tQuinnipiac University")
	assert.Contains(t, out, "regex\tQuinnipiac University")
}
