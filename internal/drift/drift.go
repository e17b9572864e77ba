// Package drift computes which template variables need resolving before an
// output file matches its template.
package drift

import "github.com/unkn0wn-root/envconf/internal/envtext"

type Mode int

const (
	// ModeCreate applies when the output file does not exist yet.
	ModeCreate Mode = iota
	// ModeSync applies when the output exists and may lag its template.
	ModeSync
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeSync:
		return "sync"
	default:
		return "unknown"
	}
}

// KeySet is a set of variable names.
type KeySet map[string]struct{}

func NewKeySet(keys ...string) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

func (s KeySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Rules are the per file set policy lists.
type Rules struct {
	AllowEmpty  KeySet
	ForcePrompt KeySet
}

func NewRules(allowEmpty, forcePrompt []string) Rules {
	return Rules{
		AllowEmpty:  NewKeySet(allowEmpty...),
		ForcePrompt: NewKeySet(forcePrompt...),
	}
}

// Detect picks the mode from the presence of output and returns the pending
// keys for it. A nil output means the file does not exist.
func Detect(template, output *envtext.Map, rules Rules) (Mode, []string) {
	if output == nil {
		return ModeCreate, DetectCreate(template, rules)
	}
	return ModeSync, DetectSync(template, output)
}

// DetectCreate returns template keys that are blank or forced, skipping
// allow-empty keys, which win over a force flag.
func DetectCreate(template *envtext.Map, rules Rules) []string {
	var pending []string
	for _, key := range template.Keys() {
		if rules.AllowEmpty.Has(key) {
			continue
		}
		if template.Value(key) == "" || rules.ForcePrompt.Has(key) {
			pending = append(pending, key)
		}
	}
	return pending
}

// DetectSync returns template keys absent from output, in template order.
// Values are not compared.
func DetectSync(template, output *envtext.Map) []string {
	var pending []string
	for _, key := range template.Keys() {
		if !output.Has(key) {
			pending = append(pending, key)
		}
	}
	return pending
}
