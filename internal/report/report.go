package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/quick"
	udiff "github.com/aymanbagabas/go-udiff"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/unkn0wn-root/envconf/internal/theme"
)

// Printer writes the human-facing status lines. Paths are shown relative to
// cwd when possible.
type Printer struct {
	out   io.Writer
	th    theme.Theme
	color bool
	cwd   string
}

func New(out io.Writer, r *lipgloss.Renderer, cwd string) *Printer {
	return &Printer{
		out:   out,
		th:    theme.DefaultTheme(r),
		color: r != nil && theme.Colorful(r),
		cwd:   cwd,
	}
}

func (p *Printer) rel(path string) string {
	if p.cwd == "" {
		return path
	}
	if r, err := filepath.Rel(p.cwd, path); err == nil {
		return r
	}
	return path
}

func (p *Printer) line(style lipgloss.Style, format string, args ...any) error {
	if _, err := fmt.Fprintln(p.out, style.Render(fmt.Sprintf(format, args...))); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}

func (p *Printer) Synced(output string) error {
	return p.line(p.th.Synced, "%s is synced with its template", p.rel(output))
}

func (p *Printer) Missing(output string, n int) error {
	return p.line(p.th.Missing, "%s is missing %s.", p.rel(output), plural(n, "environment variable"))
}

func (p *Printer) Configuring(template string) error {
	return p.line(p.th.Info, "Configuring env from %s", p.rel(template))
}

func (p *Printer) Updated(output string) error {
	return p.line(p.th.Updated, "Successfully updated %s", p.rel(output))
}

func (p *Printer) Created(output string) error {
	if err := p.line(p.th.Created, "Successfully created %s", p.rel(output)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(p.out); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}

// WouldCreate is the check-mode counterpart of Configuring.
func (p *Printer) WouldCreate(output string, n int) error {
	return p.line(p.th.Missing, "%s does not exist (%s to prompt)", p.rel(output), plural(n, "variable"))
}

// Diff prints the change a write would make without making it.
func (p *Printer) Diff(output, before, after string) error {
	name := p.rel(output)
	diff := udiff.Unified(name, name+" (dry-run)", before, after)
	if diff == "" {
		return p.line(p.th.Synced, "%s: no changes", name)
	}
	if p.color {
		if err := quick.Highlight(p.out, diff, "diff", "terminal256", "monokai"); err == nil {
			return nil
		}
	}
	if _, err := io.WriteString(p.out, diff); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}

// Row is one line of the check summary.
type Row struct {
	Name    string
	State   string
	Output  string
	Pending int
}

func (p *Printer) Summary(rows []Row) error {
	if len(rows) == 0 {
		return nil
	}
	width := 0
	for _, r := range rows {
		width = max(width, runewidth.StringWidth(r.Name))
	}
	if err := p.line(p.th.Header, "%s  %s", runewidth.FillRight("SET", width), "STATE"); err != nil {
		return err
	}
	for _, r := range rows {
		state := r.State
		if r.Pending > 0 {
			state = fmt.Sprintf("%s (%d pending)", state, r.Pending)
		}
		if _, err := fmt.Fprintf(p.out, "%s  %s  %s\n", runewidth.FillRight(r.Name, width), state, p.rel(r.Output)); err != nil {
			return fmt.Errorf("report: %w", err)
		}
	}
	return nil
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, strings.TrimSuffix(noun, "s"))
}
