package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type harness struct {
	dir    string
	out    bytes.Buffer
	errOut bytes.Buffer
	vars   map[string]string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{dir: t.TempDir(), vars: map[string]string{"NO_COLOR": "1"}}
}

func (h *harness) write(t *testing.T, rel, data string) {
	t.Helper()
	p := filepath.Join(h.dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func (h *harness) read(t *testing.T, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(h.dir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}

func (h *harness) run(stdin string, args ...string) int {
	h.out.Reset()
	h.errOut.Reset()
	return run(context.Background(), args, env{
		in:     strings.NewReader(stdin),
		out:    &h.out,
		errOut: &h.errOut,
		getenv: func(k string) string { return h.vars[k] },
		cwd:    h.dir,
	})
}

const twoSets = `
[files.web]
template = "web/.env.example"
output = "web/.env"
allow-empty = ["SENTRY_DSN"]

[files.api]
template = "api/.env.example"
output = "api/.env"
`

func TestRunCreatesAndUpdates(t *testing.T) {
	h := newHarness(t)
	h.write(t, "envconf.toml", twoSets)
	h.write(t, "web/.env.example", "PORT=8080\nSECRET=\nSENTRY_DSN=\n")
	h.write(t, "api/.env.example", "TOKEN=\nREGION=eu\n")
	h.write(t, "api/.env", "TOKEN=abc\n")

	if code := h.run("s3cr3t\n\n", "--verbose"); code != 0 {
		t.Fatalf("exit %d: %s", code, h.errOut.String())
	}
	if got := h.read(t, "web/.env"); got != "PORT=8080\nSECRET=s3cr3t\nSENTRY_DSN=\n" {
		t.Fatalf("web/.env = %q", got)
	}
	if got := h.read(t, "api/.env"); got != "TOKEN=abc\nREGION=eu\n" {
		t.Fatalf("api/.env = %q", got)
	}

	out := h.out.String()
	for _, want := range []string{
		"Configuring env from " + filepath.Join("web", ".env.example"),
		"Successfully created " + filepath.Join("web", ".env"),
		filepath.Join("api", ".env") + " is missing 1 environment variable.",
		"Successfully updated " + filepath.Join("api", ".env"),
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(h.errOut.String(), "run finished") {
		t.Fatalf("expected verbose run summary in log: %s", h.errOut.String())
	}
	if strings.Contains(h.errOut.String(), "s3cr3t") {
		t.Fatalf("debug log leaked an answer: %s", h.errOut.String())
	}

	if code := h.run(""); code != 0 {
		t.Fatalf("second run exit %d: %s", code, h.errOut.String())
	}
	if !strings.Contains(h.out.String(), "is synced with its template") {
		t.Fatalf("expected synced status, got %s", h.out.String())
	}
}

func TestRunCheckReportsDrift(t *testing.T) {
	h := newHarness(t)
	h.write(t, "envconf.toml", twoSets)
	h.write(t, "web/.env.example", "PORT=\n")
	h.write(t, "api/.env.example", "TOKEN=\n")
	h.write(t, "api/.env", "TOKEN=abc\n")

	if code := h.run("", "--check"); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if _, err := os.Stat(filepath.Join(h.dir, "web", ".env")); !os.IsNotExist(err) {
		t.Fatalf("check mode created an output")
	}
	if !strings.Contains(h.out.String(), "SET") || !strings.Contains(h.out.String(), "needs-create (1 pending)") {
		t.Fatalf("expected summary, got:\n%s", h.out.String())
	}
	if !strings.Contains(h.errOut.String(), "error: drift:") {
		t.Fatalf("expected drift error, got %q", h.errOut.String())
	}
}

func TestRunOnlySelectsSets(t *testing.T) {
	h := newHarness(t)
	h.write(t, "envconf.toml", twoSets)
	h.write(t, "web/.env.example", "PORT=\n")
	h.write(t, "api/.env.example", "TOKEN=1\n")

	if code := h.run("", "--only", "api"); code != 0 {
		t.Fatalf("exit %d: %s", code, h.errOut.String())
	}
	if _, err := os.Stat(filepath.Join(h.dir, "web", ".env")); !os.IsNotExist(err) {
		t.Fatalf("unselected set was processed")
	}
	if got := h.read(t, "api/.env"); got != "TOKEN=1\n" {
		t.Fatalf("api/.env = %q", got)
	}

	if code := h.run("", "--only", "nope"); code != 1 || !strings.Contains(h.errOut.String(), "unknown file set nope") {
		t.Fatalf("expected unknown set error, got %d %q", code, h.errOut.String())
	}
}

func TestRunAbortOnClosedInput(t *testing.T) {
	h := newHarness(t)
	h.write(t, "envconf.toml", twoSets)
	h.write(t, "web/.env.example", "PORT=\n")
	h.write(t, "api/.env.example", "TOKEN=1\n")

	if code := h.run(""); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if _, err := os.Stat(filepath.Join(h.dir, "web", ".env")); !os.IsNotExist(err) {
		t.Fatalf("aborted set was written")
	}
	if _, err := os.Stat(filepath.Join(h.dir, "api", ".env")); !os.IsNotExist(err) {
		t.Fatalf("run continued after abort")
	}
}

func TestRunConfigFromEnv(t *testing.T) {
	h := newHarness(t)
	h.write(t, "conf/sets.yaml", "files:\n  app:\n    template: .env.example\n    output: .env\n")
	h.write(t, "conf/.env.example", "A=1\n")
	h.vars["ENVCONF_CONFIG"] = "conf/sets.yaml"

	if code := h.run("", "--dry-run"); code != 0 {
		t.Fatalf("exit %d: %s", code, h.errOut.String())
	}
	if _, err := os.Stat(filepath.Join(h.dir, "conf", ".env")); !os.IsNotExist(err) {
		t.Fatalf("dry-run wrote output")
	}
	if !strings.Contains(h.out.String(), "+A=1") {
		t.Fatalf("expected diff, got:\n%s", h.out.String())
	}
}

func TestRunWarnsOnBadTracingSettings(t *testing.T) {
	h := newHarness(t)
	h.write(t, "envconf.toml", "[files.app]\ntemplate = \".env.example\"\noutput = \".env\"\n")
	h.write(t, ".env.example", "A=1\n")
	h.vars["ENVCONF_TRACE_OTEL_TIMEOUT"] = "soon"

	if code := h.run(""); code != 0 {
		t.Fatalf("exit %d: %s", code, h.errOut.String())
	}
	if !strings.Contains(h.errOut.String(), "ENVCONF_TRACE_OTEL_TIMEOUT ignored") {
		t.Fatalf("expected tracing warning, got %q", h.errOut.String())
	}
}

func TestRunMissingConfig(t *testing.T) {
	h := newHarness(t)
	if code := h.run(""); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.HasPrefix(h.errOut.String(), "error: config:") {
		t.Fatalf("unexpected error output %q", h.errOut.String())
	}
}

func TestRunRejectsCheckWithDryRun(t *testing.T) {
	h := newHarness(t)
	if code := h.run("", "--check", "--dry-run"); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
}

func TestRunInitThenSync(t *testing.T) {
	h := newHarness(t)
	if code := h.run("", "init", "--template", "minimal", h.dir); code != 0 {
		t.Fatalf("init exit %d: %s", code, h.errOut.String())
	}
	if !strings.Contains(h.out.String(), "create envconf.toml") {
		t.Fatalf("unexpected init output:\n%s", h.out.String())
	}

	if code := h.run("postgres://localhost/app\n"); code != 0 {
		t.Fatalf("sync exit %d: %s", code, h.errOut.String())
	}
	if got := h.read(t, ".env"); !strings.Contains(got, "DATABASE_URL=postgres://localhost/app\n") {
		t.Fatalf(".env = %q", got)
	}
}

func TestRunVersion(t *testing.T) {
	h := newHarness(t)
	if code := h.run("", "--version"); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.HasPrefix(h.out.String(), "envconf dev") {
		t.Fatalf("unexpected version output %q", h.out.String())
	}
}
