package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/unkn0wn-root/envconf/internal/errdef"
)

// FileSet is one declared template/output pair. Template and Output are
// absolute once loaded.
type FileSet struct {
	Name        string
	Template    string
	Output      string
	AllowEmpty  []string
	ForcePrompt []string
}

// fileSetDecl is the on-disk shape shared by the TOML and YAML loaders.
type fileSetDecl struct {
	Template    string   `toml:"template" yaml:"template"`
	Output      string   `toml:"output" yaml:"output"`
	AllowEmpty  []string `toml:"allow-empty" yaml:"allow-empty"`
	ForcePrompt []string `toml:"force-prompt-on-create" yaml:"force-prompt-on-create"`
}

type document struct {
	Files map[string]fileSetDecl `toml:"files" yaml:"files"`
}

type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf infers the config format from the file extension.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Load reads and validates the config file at path. File sets come back in
// declaration order with paths resolved against the file's directory.
func Load(path string) ([]FileSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errdef.Wrap(errdef.CodeConfig, err, "config file %s not found", path)
		}
		return nil, errdef.Wrap(errdef.CodeConfig, err, "read %s", path)
	}
	return Parse(data, FormatOf(path), filepath.Dir(path))
}

// Parse decodes config bytes. baseDir anchors relative paths.
func Parse(data []byte, format Format, baseDir string) ([]FileSet, error) {
	var (
		doc   document
		order []string
		err   error
	)
	switch format {
	case FormatYAML:
		doc, order, err = decodeYAML(data)
	default:
		doc, order, err = decodeTOML(data)
	}
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeConfig, err, "parse %s config", format)
	}
	return build(doc, order, baseDir)
}

func build(doc document, order []string, baseDir string) ([]FileSet, error) {
	if len(doc.Files) == 0 {
		return nil, errdef.New(errdef.CodeConfig, "no file sets declared under [files]")
	}
	sets := make([]FileSet, 0, len(doc.Files))
	for _, name := range order {
		decl, ok := doc.Files[name]
		if !ok {
			continue
		}
		set, err := decl.fileSet(name, baseDir)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	if len(sets) != len(doc.Files) {
		return nil, errdef.New(errdef.CodeConfig, "could not determine declaration order of file sets")
	}
	return sets, nil
}

func (d fileSetDecl) fileSet(name, baseDir string) (FileSet, error) {
	var missing []string
	if strings.TrimSpace(d.Template) == "" {
		missing = append(missing, "template")
	}
	if strings.TrimSpace(d.Output) == "" {
		missing = append(missing, "output")
	}
	if len(missing) > 0 {
		return FileSet{}, errdef.New(errdef.CodeConfig, "files.%s: missing %s", name, strings.Join(missing, ", "))
	}
	return FileSet{
		Name:        name,
		Template:    resolve(baseDir, d.Template),
		Output:      resolve(baseDir, d.Output),
		AllowEmpty:  nonNil(d.AllowEmpty),
		ForcePrompt: nonNil(d.ForcePrompt),
	}, nil
}

func nonNil(keys []string) []string {
	if keys == nil {
		return []string{}
	}
	return keys
}

// Select keeps the named sets in declaration order. An empty selection
// keeps everything.
func Select(sets []FileSet, names []string) ([]FileSet, error) {
	if len(names) == 0 {
		return sets, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[strings.TrimSpace(n)] = false
	}
	var out []FileSet
	for _, s := range sets {
		if _, ok := want[s.Name]; ok {
			want[s.Name] = true
			out = append(out, s)
		}
	}
	var unknown []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if !want[n] {
			unknown = append(unknown, n)
		}
	}
	if len(unknown) > 0 {
		return nil, errdef.New(errdef.CodeConfig, "unknown file set %s", strings.Join(unknown, ", "))
	}
	return out, nil
}
