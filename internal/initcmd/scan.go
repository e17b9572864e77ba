package initcmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/unkn0wn-root/envconf/internal/filesvc"
)

const defaultSetName = "app"

// scanTemplate builds a template that only writes envconf.toml, declaring
// one file set per dotenv template found under dir.
func scanTemplate(dir string, recursive bool) (template, error) {
	entries, err := filesvc.ListTemplates(dir, recursive)
	if err != nil {
		return template{}, fmt.Errorf("init: scan %s: %w", dir, err)
	}
	if len(entries) == 0 {
		return template{}, fmt.Errorf("init: no dotenv templates found in %s", dir)
	}

	sets := make(map[string]setDecl, len(entries))
	ignore := make([]string, 0, len(entries))
	for _, e := range entries {
		name := uniqueName(sets, setName(e))
		out := filepath.ToSlash(e.Output)
		sets[name] = setDecl{Template: filepath.ToSlash(e.Name), Output: out}
		ignore = append(ignore, out)
	}

	data, err := renderConfig(sets)
	if err != nil {
		return template{}, err
	}
	return template{
		Name:        "scan",
		Description: describeTemplate(fileConfig),
		Files:       []fileSpec{{Path: fileConfig, Data: data, Mode: filePerm}},
		Ignore:      ignore,
	}, nil
}

// setName derives a file set name from the template location:
// ".env.example" -> "app", "worker/.env.example" -> "worker",
// "api.env.template" -> "api", ".env.test.example" -> "test".
func setName(e filesvc.TemplateEntry) string {
	base := filepath.Base(e.Output)
	var stem string
	switch {
	case base == ".env":
	case strings.HasPrefix(base, ".env."):
		stem = strings.TrimPrefix(base, ".env.")
	default:
		stem = strings.TrimSuffix(base, ".env")
	}

	var parts []string
	if dir := filepath.ToSlash(filepath.Dir(e.Name)); dir != "." {
		parts = append(parts, strings.Split(dir, "/")...)
	}
	if stem != "" {
		parts = append(parts, stem)
	}
	if len(parts) == 0 {
		return defaultSetName
	}
	return strings.Join(parts, "-")
}

func uniqueName(taken map[string]setDecl, name string) string {
	if _, ok := taken[name]; !ok {
		return name
	}
	for i := 2; ; i++ {
		candidate := name + "-" + strconv.Itoa(i)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}
