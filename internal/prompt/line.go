package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/unkn0wn-root/envconf/internal/errdef"
)

// Line asks questions one per line on a plain reader. It is used when
// stdin is not a terminal, e.g. when answers are piped in.
type Line struct {
	in  *bufio.Reader
	out io.Writer
}

func NewLine(in io.Reader, out io.Writer) *Line {
	if out == nil {
		out = io.Discard
	}
	return &Line{in: bufio.NewReader(in), out: out}
}

func (l *Line) Resolve(ctx context.Context, qs []Question) (Answers, error) {
	answers := make(Answers, 0, len(qs))
	for _, q := range qs {
		ans, err := l.ask(ctx, q)
		if err != nil {
			return nil, err
		}
		answers = append(answers, ans)
	}
	return answers, nil
}

func (l *Line) ask(ctx context.Context, q Question) (Answer, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Answer{}, errdef.Wrap(errdef.CodePrompt, errdef.ErrAborted, "%s", q.Name)
		}
		if err := l.printQuestion(q); err != nil {
			return Answer{}, err
		}
		text, err := l.readLine()
		if err != nil {
			return Answer{}, err
		}
		if q.Kind == KindInput {
			return q.InputAnswer(text), nil
		}
		if ok, valid := ParseConfirm(text); valid {
			return Confirm(q.Name, ok), nil
		}
		if _, err := fmt.Fprintln(l.out, "Please answer y or n."); err != nil {
			return Answer{}, fmt.Errorf("prompt: write: %w", err)
		}
	}
}

func (l *Line) printQuestion(q Question) error {
	hint := ""
	switch {
	case q.Kind == KindConfirm:
		hint = " (Y/n)"
	case q.HasDefault:
		hint = fmt.Sprintf(" (%s)", q.Default)
	}
	if _, err := fmt.Fprintf(l.out, "? %s%s ", q.Message, hint); err != nil {
		return fmt.Errorf("prompt: write: %w", err)
	}
	return nil
}

func (l *Line) readLine() (string, error) {
	text, err := l.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && text != "") {
		if errors.Is(err, io.EOF) {
			return "", errdef.Wrap(errdef.CodePrompt, errdef.ErrAborted, "input closed")
		}
		return "", errdef.Wrap(errdef.CodePrompt, err, "read answer")
	}
	return strings.TrimRight(text, "\r\n"), nil
}
