package initcmd

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/unkn0wn-root/envconf/internal/errdef"
)

type TempFile interface {
	io.Writer
	Name() string
	Chmod(fs.FileMode) error
	Sync() error
	Close() error
}

// FS is the filesystem surface init writes through. Scaffold writes go to a
// temp file first and are renamed into place.
type FS interface {
	Stat(string) (fs.FileInfo, error)
	MkdirAll(string, fs.FileMode) error
	ReadFile(string) ([]byte, error)
	CreateTemp(string, string) (TempFile, error)
	Rename(string, string) error
	Remove(string) error
}

type OSFS struct{}

func (OSFS) Stat(p string) (fs.FileInfo, error)         { return os.Stat(p) }
func (OSFS) MkdirAll(p string, m fs.FileMode) error     { return os.MkdirAll(p, m) }
func (OSFS) ReadFile(p string) ([]byte, error)          { return os.ReadFile(p) }
func (OSFS) CreateTemp(d, pat string) (TempFile, error) { return os.CreateTemp(d, pat) }
func (OSFS) Rename(a, b string) error                   { return os.Rename(a, b) }
func (OSFS) Remove(p string) error                      { return os.Remove(p) }

// targetPath returns the cleaned relative path used in reports and its
// location under baseDir. Paths escaping baseDir are rejected.
func targetPath(baseDir, p string) (string, string, error) {
	rel := filepath.Clean(filepath.FromSlash(strings.TrimSpace(p)))
	switch {
	case rel == "." || rel == "..",
		filepath.IsAbs(rel) || filepath.VolumeName(rel) != "",
		strings.HasPrefix(rel, ".."+string(os.PathSeparator)):
		return "", "", errdef.New(errdef.CodeInternal, "init: invalid scaffold path %q", p)
	}
	return rel, filepath.Join(baseDir, rel), nil
}
