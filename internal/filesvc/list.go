package filesvc

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var templateSuffixes = []string{".example", ".template", ".sample", ".dist"}

var skipDirs = map[string]struct{}{"node_modules": {}, "vendor": {}}

type TemplateEntry struct {
	Name   string // relative to root
	Path   string
	Output string // relative output path derived from Name
}

// ListTemplates returns dotenv templates under root, optionally recursing
// into subdirectories while skipping hidden and dependency folders.
func ListTemplates(root string, recursive bool) ([]TemplateEntry, error) {
	var entries []TemplateEntry
	appendEntry := func(rel, path string) {
		out, ok := TemplateOutput(filepath.Base(rel))
		if !ok {
			return
		}
		entries = append(entries, TemplateEntry{
			Name:   rel,
			Path:   path,
			Output: filepath.Join(filepath.Dir(rel), out),
		})
	}

	if recursive {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if path == root {
					return nil
				}
				if _, skip := skipDirs[d.Name()]; skip || strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}

			rel := d.Name()
			if r, relErr := filepath.Rel(root, path); relErr == nil {
				rel = r
			}

			appendEntry(rel, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		dirEntries, err := os.ReadDir(root)
		if err != nil {
			return nil, err
		}

		for _, entry := range dirEntries {
			if entry.IsDir() {
				continue
			}
			appendEntry(entry.Name(), filepath.Join(root, entry.Name()))
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	return entries, nil
}

// TemplateOutput maps a template file name such as ".env.example" or
// "api.env.template" to the output it describes.
func TemplateOutput(name string) (string, bool) {
	for _, suffix := range templateSuffixes {
		stem, ok := strings.CutSuffix(name, suffix)
		if !ok {
			continue
		}
		if stem == ".env" || strings.HasPrefix(stem, ".env.") || strings.HasSuffix(stem, ".env") {
			return stem, true
		}
	}
	return "", false
}
