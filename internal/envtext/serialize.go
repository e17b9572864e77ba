package envtext

import (
	"strings"

	"github.com/unkn0wn-root/envconf/internal/errdef"
	"github.com/unkn0wn-root/envconf/internal/prompt"
	"github.com/unkn0wn-root/envconf/internal/util"
)

// SerializeCreate fills a template with answers. Each answer rewrites the
// value of the first line that assigns its key; later lines assigning the
// same key stay as they are. Everything else is copied byte for byte.
func SerializeCreate(template string, answers prompt.Answers) (string, error) {
	lines := strings.Split(template, "\n")
	for _, ans := range answers {
		value, ok := createValue(ans)
		if !ok {
			continue
		}
		idx := firstAssignment(lines, ans.Name)
		if idx < 0 {
			return "", errdef.New(errdef.CodeInternal, "template has no line for %s", ans.Name)
		}
		a, _ := parseLine(lines[idx])
		_, eol := util.SplitLineEnding(lines[idx])
		lines[idx] = a.prefix + value + eol
	}
	return strings.Join(lines, "\n"), nil
}

func createValue(ans prompt.Answer) (string, bool) {
	switch ans.Kind {
	case prompt.KindInput:
		return ans.Value, true
	case prompt.KindConfirm:
		return "", ans.Confirmed
	default:
		return "", false
	}
}

func firstAssignment(lines []string, key string) int {
	for i, line := range lines {
		if a, ok := parseLine(line); ok && a.key == key {
			return i
		}
	}
	return -1
}

// SerializeAppend adds answers to the end of an existing output. The
// original text is kept intact apart from trailing whitespace, which is
// collapsed to a single newline. Keys are not deduplicated.
func SerializeAppend(output string, answers prompt.Answers) string {
	var b strings.Builder
	if trimmed := util.TrimRightSpace(output); trimmed != "" {
		b.WriteString(trimmed)
		b.WriteByte('\n')
	}
	for _, ans := range answers {
		switch ans.Kind {
		case prompt.KindConfirm:
			if !ans.Confirmed {
				continue
			}
			b.WriteString(ans.Name)
			b.WriteString("=\n")
		case prompt.KindInput:
			b.WriteString(ans.Name)
			b.WriteByte('=')
			b.WriteString(ans.Value)
			b.WriteByte('\n')
		}
	}
	return b.String()
}
