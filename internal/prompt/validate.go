package prompt

import (
	"strings"

	"github.com/unkn0wn-root/envconf/internal/errdef"
)

// Validate checks that answers match the questions one to one, in order and
// with the requested kind.
func Validate(qs []Question, answers Answers) error {
	if len(answers) != len(qs) {
		return errdef.New(errdef.CodePrompt, "expected %d answers, got %d", len(qs), len(answers))
	}
	for i, q := range qs {
		ans := answers[i]
		if ans.Name != q.Name {
			return errdef.New(errdef.CodePrompt, "answer %d is for %s, expected %s", i, ans.Name, q.Name)
		}
		if ans.Kind != q.Kind {
			return errdef.New(errdef.CodePrompt, "answer for %s is %s, expected %s", q.Name, ans.Kind, q.Kind)
		}
	}
	return nil
}

// InputAnswer builds the answer for typed text, falling back to the
// question's default when nothing was typed.
func (q Question) InputAnswer(text string) Answer {
	if text == "" && q.HasDefault {
		text = q.Default
	}
	return Input(q.Name, text)
}

// ParseConfirm reads a yes/no reply. A blank reply means yes.
func ParseConfirm(text string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "", "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	default:
		return false, false
	}
}
