package disk

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// CreateFS is a file system that supports creating files, so that images
// can be marshaled to it.
type CreateFS interface {
	// Create opens a file for writing, truncating it. If overwrite is
	// false and the file exists, the error matches fs.ErrExist.
	Create(name string, overwrite bool) (file io.WriteCloser, err error)
}

// DirFS is a file system rooted at a host directory, for both reading
// and creating files.
type DirFS string

var _ fs.FS = DirFS("")
var _ CreateFS = DirFS("")

// Open opens a file for reading.
func (dir DirFS) Open(name string) (file fs.File, err error) {
	return os.DirFS(string(dir)).Open(name)
}

// Create opens a file for writing.
func (dir DirFS) Create(name string, overwrite bool) (file io.WriteCloser, err error) {
	if !fs.ValidPath(name) {
		err = &fs.PathError{Op: "create", Path: name, Err: fs.ErrInvalid}
		return
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}

	osfile, err := os.OpenFile(filepath.Join(string(dir), filepath.FromSlash(name)), flags, 0644)
	if err != nil {
		return
	}

	file = osfile
	return
}

// splitPath separates a host path into a directory file system and the
// name of the file within it.
func splitPath(path string) (dir DirFS, name string) {
	head, name := filepath.Split(path)
	if len(head) == 0 {
		head = "."
	}
	dir = DirFS(head)
	return
}
