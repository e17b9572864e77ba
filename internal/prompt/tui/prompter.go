package tui

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unkn0wn-root/envconf/internal/errdef"
	"github.com/unkn0wn-root/envconf/internal/prompt"
	"github.com/unkn0wn-root/envconf/internal/theme"
)

// Prompter runs a small bubbletea program per batch of questions.
type Prompter struct {
	in  io.Reader
	out io.Writer
	th  theme.Theme
}

func New(in io.Reader, out io.Writer, th theme.Theme) *Prompter {
	return &Prompter{in: in, out: out, th: th}
}

func (p *Prompter) Resolve(ctx context.Context, qs []prompt.Question) (prompt.Answers, error) {
	if len(qs) == 0 {
		return nil, nil
	}
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if p.in != nil {
		opts = append(opts, tea.WithInput(p.in))
	}
	if p.out != nil {
		opts = append(opts, tea.WithOutput(p.out))
	}
	final, err := tea.NewProgram(newModel(qs, p.th), opts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || ctx.Err() != nil {
			return nil, errdef.Wrap(errdef.CodePrompt, errdef.ErrAborted, "interrupted")
		}
		return nil, errdef.Wrap(errdef.CodePrompt, err, "run prompt")
	}
	m, ok := final.(model)
	if !ok {
		return nil, errdef.New(errdef.CodeInternal, "prompt: unexpected model %T", final)
	}
	return m.result()
}

func (m model) result() (prompt.Answers, error) {
	if m.aborted {
		return nil, errdef.Wrap(errdef.CodePrompt, errdef.ErrAborted, "cancelled")
	}
	if !m.done() {
		return nil, errdef.New(errdef.CodePrompt, "answered %d of %d questions", len(m.answers), len(m.qs))
	}
	return m.answers, nil
}
