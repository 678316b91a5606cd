package mmap

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	assert.NilError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestOpen(t *testing.T) {
	path := writeFile(t, "hello, мир\n")

	f, err := Open(path)
	assert.NilError(t, err)
	assert.Equal(t, f.Name(), path)
	assert.Equal(t, f.Len(), len("hello, мир\n"))

	data, err := f.Bytes()
	assert.NilError(t, err)
	assert.Equal(t, string(data), "hello, мир\n")

	assert.NilError(t, f.Close())
	assert.NilError(t, f.Close())
	_, err = f.Bytes()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestOpenEmpty(t *testing.T) {
	f, err := Open(writeFile(t, ""))
	assert.NilError(t, err)
	defer f.Close()

	data, err := f.Bytes()
	assert.NilError(t, err)
	assert.Equal(t, len(data), 0)
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"))
	assert.Check(t, errors.Is(err, os.ErrNotExist), "got %v", err)

	_, err = Open(t.TempDir())
	assert.ErrorContains(t, err, "is a directory")
}
