package filesvc

import (
	"errors"
	"io/fs"
	"os"
)

const filePerm = 0o644

// FS is the file access the reconciler needs. Paths are absolute.
type FS interface {
	ReadFile(path string) (string, error)
	WriteFile(path, data string) error
	Exists(path string) (bool, error)
}

type OSFS struct{}

func (OSFS) ReadFile(p string) (string, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteFile replaces the file in place, keeping the mode of an existing
// file.
func (OSFS) WriteFile(p, data string) error {
	mode := fs.FileMode(filePerm)
	if info, err := os.Stat(p); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(p, []byte(data), mode)
}

// Exists reports whether p names a regular file. A directory at p is an
// error since it can never be written as an env file.
func (OSFS) Exists(p string) (bool, error) {
	info, err := os.Stat(p)
	switch {
	case err == nil && info.IsDir():
		return false, &fs.PathError{Op: "stat", Path: p, Err: errors.New("is a directory")}
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}
