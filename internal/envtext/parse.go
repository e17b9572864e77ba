package envtext

import (
	"strings"

	"github.com/unkn0wn-root/envconf/internal/util"
)

const exportPrefix = "export "

// assignment is one KEY=VALUE line split into the byte ranges the codec
// needs: the untouched prefix (up to and including '='), the key and the
// raw remainder.
type assignment struct {
	prefix string
	key    string
	raw    string
}

// Parse reads dotenv text into an ordered Map. Lines that are not
// assignments (comments, blanks, malformed lines) are skipped.
func Parse(text string) *Map {
	m := NewMap()
	for line := range strings.SplitSeq(text, "\n") {
		a, ok := parseLine(line)
		if !ok {
			continue
		}
		m.Set(a.key, unquote(a.raw))
	}
	return m
}

func parseLine(line string) (assignment, bool) {
	body, _ := util.SplitLineEnding(line)
	rest := util.TrimLeftSpace(body)
	if rest == "" || strings.HasPrefix(rest, "#") {
		return assignment{}, false
	}
	if strings.HasPrefix(rest, exportPrefix) {
		rest = util.TrimLeftSpace(rest[len(exportPrefix):])
	}
	eq := strings.IndexByte(rest, '=')
	if eq <= 0 {
		return assignment{}, false
	}
	key := util.TrimRightSpace(rest[:eq])
	if !validKey(key) {
		return assignment{}, false
	}
	prefixLen := len(body) - len(rest) + eq + 1
	return assignment{
		prefix: body[:prefixLen],
		key:    key,
		raw:    body[prefixLen:],
	}, true
}

func validKey(key string) bool {
	if key == "" {
		return false
	}
	return !strings.ContainsAny(key, " \t#=")
}

// unquote turns the raw remainder of an assignment into its value. Quoted
// values lose their quotes only; escapes are kept verbatim. An unquoted
// value ends at the first '#', as dotenv reads it.
func unquote(raw string) string {
	v := strings.TrimSpace(raw)
	if len(v) >= 2 {
		switch q := v[0]; q {
		case '"', '\'', '`':
			if end := strings.IndexByte(v[1:], q); end >= 0 {
				return v[1 : end+1]
			}
		}
	}
	if i := strings.IndexByte(v, '#'); i >= 0 {
		v = util.TrimRightSpace(v[:i])
	}
	return v
}
