package filesvc

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("A=\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
}

func TestListTemplatesNonRecursive(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".env.example"))
	writeFile(t, filepath.Join(root, ".env"))
	writeFile(t, filepath.Join(root, "sub", ".env.template"))

	entries, err := ListTemplates(root, false)
	if err != nil {
		t.Fatalf("ListTemplates returned error: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != ".env.example" || entries[0].Output != ".env" {
		t.Fatalf("expected only top-level template, got %+v", entries)
	}
}

func TestListTemplatesRecursive(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".env.example"))
	writeFile(t, filepath.Join(root, "api", "api.env.sample"))
	writeFile(t, filepath.Join(root, "node_modules", "pkg", ".env.example"))
	writeFile(t, filepath.Join(root, ".git", ".env.example"))

	entries, err := ListTemplates(root, true)
	if err != nil {
		t.Fatalf("ListTemplates returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected two templates, got %+v", entries)
	}
	outputs := map[string]string{}
	for _, entry := range entries {
		outputs[entry.Name] = entry.Output
	}
	if outputs[".env.example"] != ".env" {
		t.Fatalf("unexpected root output: %+v", entries)
	}
	if outputs[filepath.Join("api", "api.env.sample")] != filepath.Join("api", "api.env") {
		t.Fatalf("unexpected nested output: %+v", entries)
	}
}

func TestTemplateOutput(t *testing.T) {
	testCases := []struct {
		name string
		out  string
		ok   bool
	}{
		{".env.example", ".env", true},
		{".env.local.template", ".env.local", true},
		{"web.env.dist", "web.env", true},
		{"README.example", "", false},
		{".env", "", false},
	}
	for _, tc := range testCases {
		out, ok := TemplateOutput(tc.name)
		if out != tc.out || ok != tc.ok {
			t.Fatalf("TemplateOutput(%q) = %q,%v want %q,%v", tc.name, out, ok, tc.out, tc.ok)
		}
	}
}

func TestOSFS(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	var fsys OSFS

	ok, err := fsys.Exists(path)
	if err != nil || ok {
		t.Fatalf("Exists before write = %v,%v", ok, err)
	}
	if err := fsys.WriteFile(path, "A=1\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	ok, err = fsys.Exists(path)
	if err != nil || !ok {
		t.Fatalf("Exists after write = %v,%v", ok, err)
	}
	data, err := fsys.ReadFile(path)
	if err != nil || data != "A=1\n" {
		t.Fatalf("ReadFile = %q,%v", data, err)
	}
	if _, err := fsys.Exists(dir); err == nil {
		t.Fatalf("expected error for directory")
	}
}
