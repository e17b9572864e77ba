package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/unkn0wn-root/envconf/internal/errdef"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func names(sets []FileSet) []string {
	out := make([]string, 0, len(sets))
	for _, s := range sets {
		out = append(out, s.Name)
	}
	return out
}

func TestLoadTOMLKeepsDeclarationOrder(t *testing.T) {
	path := writeConfig(t, "envconf.toml", `
[files]
middle = { template = "m.example", output = "m.env" }

[files.zeta]
template = "zeta/.env.example"
output = "zeta/.env"
allow-empty = ["SENTRY_DSN"]

[files.alpha]
template = ".env.example"
output = ".env"
force-prompt-on-create = ["SESSION_SECRET"]
`)
	sets, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"middle", "zeta", "alpha"}, names(sets)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	dir := filepath.Dir(path)
	want := FileSet{
		Name:        "zeta",
		Template:    filepath.Join(dir, "zeta", ".env.example"),
		Output:      filepath.Join(dir, "zeta", ".env"),
		AllowEmpty:  []string{"SENTRY_DSN"},
		ForcePrompt: []string{},
	}
	if diff := cmp.Diff(want, sets[1]); diff != "" {
		t.Fatalf("file set mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"SESSION_SECRET"}, sets[2].ForcePrompt); diff != "" {
		t.Fatalf("force prompt mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadTOMLDottedKeys(t *testing.T) {
	path := writeConfig(t, "envconf.toml", `
files.b.template = "b.example"
files.b.output = "b.env"
files.a.template = "a.example"
files.a.output = "a.env"
`)
	sets, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"b", "a"}, names(sets)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTOMLInlineFilesTable(t *testing.T) {
	data := []byte(`files = { web = { template = "a", output = "b" }, api = { template = "c", output = "d", allow-empty = ["X"] } }` + "\n")
	sets, err := Parse(data, FormatTOML, "/base")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff([]string{"web", "api"}, names(sets)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if sets[0].Template != filepath.Join("/base", "a") || sets[0].Output != filepath.Join("/base", "b") {
		t.Fatalf("unexpected paths: %+v", sets[0])
	}
	if diff := cmp.Diff([]string{"X"}, sets[1].AllowEmpty); diff != "" {
		t.Fatalf("allow-empty mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadYAMLKeepsDeclarationOrder(t *testing.T) {
	path := writeConfig(t, "envconf.yaml", `
files:
  web:
    template: web/.env.example
    output: web/.env
  api:
    template: api/.env.example
    output: /abs/api/.env
    allow-empty: [DEBUG]
`)
	sets, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"web", "api"}, names(sets)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if sets[1].Output != filepath.Clean("/abs/api/.env") {
		t.Fatalf("absolute output should be kept, got %s", sets[1].Output)
	}
	if diff := cmp.Diff([]string{"DEBUG"}, sets[1].AllowEmpty); diff != "" {
		t.Fatalf("allow-empty mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		name    string
		file    string
		content string
	}{
		{"unparsable", "envconf.toml", "[files.web\n"},
		{"unknown key", "envconf.toml", "[files.web]\ntemplate = \"a\"\noutput = \"b\"\nallow_empty = []\n"},
		{"missing output", "envconf.toml", "[files.web]\ntemplate = \"a\"\n"},
		{"no files", "envconf.toml", "title = \"x\"\n"},
		{"empty yaml", "envconf.yml", ""},
		{"yaml unknown key", "envconf.yml", "files:\n  web:\n    template: a\n    output: b\n    extra: 1\n"},
	}
	for _, tc := range testCases {
		path := writeConfig(t, tc.file, tc.content)
		_, err := Load(path)
		if !errdef.Is(err, errdef.CodeConfig) {
			t.Fatalf("%s: expected config error, got %v", tc.name, err)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "envconf.toml"))
	if !errdef.Is(err, errdef.CodeConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestPath(t *testing.T) {
	env := func(v string) func(string) string {
		return func(key string) string {
			if key == EnvConfig {
				return v
			}
			return ""
		}
	}
	cwd := filepath.FromSlash("/work")
	testCases := []struct {
		flag string
		env  string
		want string
	}{
		{"", "", filepath.Join(cwd, DefaultFile)},
		{"", "conf/envconf.yaml", filepath.Join(cwd, "conf", "envconf.yaml")},
		{"other.toml", "conf/envconf.yaml", filepath.Join(cwd, "other.toml")},
	}
	for _, tc := range testCases {
		if got := Path(tc.flag, env(tc.env), cwd); got != tc.want {
			t.Fatalf("Path(%q, %q) = %q, want %q", tc.flag, tc.env, got, tc.want)
		}
	}
}

func TestSelect(t *testing.T) {
	sets := []FileSet{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	got, err := Select(sets, []string{"c", "a"})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "c"}, names(got)); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}
	if _, err := Select(sets, []string{"missing"}); !errdef.Is(err, errdef.CodeConfig) {
		t.Fatalf("expected config error for unknown set, got %v", err)
	}
}
