package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unkn0wn-root/envconf/internal/prompt"
	"github.com/unkn0wn-root/envconf/internal/theme"
)

// model walks through the questions one at a time. Input questions use a
// text field, confirm questions take y/n/enter.
type model struct {
	qs      []prompt.Question
	idx     int
	input   textinput.Model
	answers prompt.Answers
	aborted bool
	invalid bool
	th      theme.Theme
}

func newModel(qs []prompt.Question, th theme.Theme) model {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 0
	m := model{
		qs:      qs,
		input:   in,
		answers: make(prompt.Answers, 0, len(qs)),
		th:      th,
	}
	m.prepare()
	return m
}

func (m *model) prepare() {
	m.input.Reset()
	m.input.Placeholder = ""
	m.invalid = false
	q, ok := m.current()
	if !ok {
		m.input.Blur()
		return
	}
	if q.Kind == prompt.KindInput && q.HasDefault {
		m.input.Placeholder = q.Default
	}
	m.input.Focus()
}

func (m model) current() (prompt.Question, bool) {
	if m.idx >= len(m.qs) {
		return prompt.Question{}, false
	}
	return m.qs[m.idx], true
}

func (m model) done() bool {
	return m.idx >= len(m.qs)
}

func (m model) Init() tea.Cmd {
	if m.done() {
		return tea.Quit
	}
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.aborted = true
		return m, tea.Quit
	case tea.KeyEnter:
		return m.submit(m.input.Value())
	}

	q, ok := m.current()
	if !ok {
		return m, nil
	}
	if q.Kind == prompt.KindConfirm && key.Type == tea.KeyRunes {
		return m.submit(string(key.Runes))
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) submit(text string) (tea.Model, tea.Cmd) {
	q, ok := m.current()
	if !ok {
		return m, tea.Quit
	}
	switch q.Kind {
	case prompt.KindConfirm:
		yes, valid := prompt.ParseConfirm(text)
		if !valid {
			m.invalid = true
			return m, nil
		}
		m.answers = append(m.answers, prompt.Confirm(q.Name, yes))
	default:
		m.answers = append(m.answers, q.InputAnswer(text))
	}
	m.idx++
	m.prepare()
	if m.done() {
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	for i, ans := range m.answers {
		b.WriteString(m.line(m.qs[i], answerText(ans)))
		b.WriteByte('\n')
	}
	q, ok := m.current()
	if !ok || m.aborted {
		return b.String()
	}
	b.WriteString(m.th.Marker.Render("?"))
	b.WriteByte(' ')
	b.WriteString(m.th.Question.Render(q.Message))
	b.WriteByte(' ')
	if q.Kind == prompt.KindConfirm {
		b.WriteString(m.th.Hint.Render("(Y/n)"))
	} else {
		b.WriteString(m.input.View())
	}
	if m.invalid {
		b.WriteByte('\n')
		b.WriteString(m.th.Error.Render("Please answer y or n."))
	}
	b.WriteByte('\n')
	return b.String()
}

func (m model) line(q prompt.Question, value string) string {
	return fmt.Sprintf("%s %s %s",
		m.th.Marker.Render("?"),
		m.th.Question.Render(q.Message),
		m.th.Answer.Render(value),
	)
}

func answerText(ans prompt.Answer) string {
	if ans.Kind == prompt.KindConfirm {
		if ans.Confirmed {
			return "Yes"
		}
		return "No"
	}
	return ans.Value
}
