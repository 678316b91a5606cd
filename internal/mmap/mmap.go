// Package mmap maps input files read-only into memory.
//
// On unix platforms files are mapped with mmap(2) through
// golang.org/x/sys/unix; elsewhere the file is read into a heap buffer.
// Either way the caller gets a byte slice and must Close the File when done.
package mmap

import (
	"errors"
	"os"
)

// ErrClosed is returned by Bytes after Close.
var ErrClosed = errors.New("mmap: file closed")

// File is a read-only view of a file's contents.
type File struct {
	name   string
	data   []byte
	mapped bool
	closed bool
}

// Open maps the named file. Empty files yield an empty, unmapped view.
func Open(name string) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &os.PathError{Op: "mmap", Path: name, Err: errors.New("is a directory")}
	}
	if info.Size() == 0 {
		return &File{name: name}, nil
	}

	data, mapped, err := mapFile(f, info.Size())
	if err != nil {
		return nil, &os.PathError{Op: "mmap", Path: name, Err: err}
	}
	return &File{name: name, data: data, mapped: mapped}, nil
}

// Name returns the path the file was opened with.
func (f *File) Name() string {
	return f.name
}

// Bytes returns the file contents. The slice is valid until Close and must
// not be modified.
func (f *File) Bytes() ([]byte, error) {
	if f.closed {
		return nil, ErrClosed
	}
	return f.data, nil
}

// Len returns the file size in bytes.
func (f *File) Len() int {
	return len(f.data)
}

// Close releases the mapping. Closing twice is a no-op.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	data := f.data
	f.data = nil
	if !f.mapped {
		return nil
	}
	return unmap(data)
}
