// Package policy turns pending keys into prompt questions. The mapping from
// mode, policy lists and template value to a question lives only here.
package policy

import (
	"fmt"

	"github.com/unkn0wn-root/envconf/internal/drift"
	"github.com/unkn0wn-root/envconf/internal/envtext"
	"github.com/unkn0wn-root/envconf/internal/prompt"
)

type Kind int

const (
	InputNoDefault Kind = iota
	InputWithDefault
	ConfirmEmpty
)

func (k Kind) String() string {
	switch k {
	case InputNoDefault:
		return "input-no-default"
	case InputWithDefault:
		return "input-with-default"
	case ConfirmEmpty:
		return "confirm-empty"
	default:
		return "unknown"
	}
}

// Policy says how a pending key gets its value. Default is only set for
// InputWithDefault.
type Policy struct {
	Kind    Kind
	Default string
}

type PendingKey struct {
	Name   string
	Policy Policy
}

// Classify assigns a policy to every pending key. Repeated names keep their
// first position only.
func Classify(mode drift.Mode, pending []string, template *envtext.Map, rules drift.Rules) []PendingKey {
	out := make([]PendingKey, 0, len(pending))
	seen := make(drift.KeySet, len(pending))
	for _, name := range pending {
		if seen.Has(name) {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, PendingKey{Name: name, Policy: classify(mode, name, template, rules)})
	}
	return out
}

func classify(mode drift.Mode, name string, template *envtext.Map, rules drift.Rules) Policy {
	if mode == drift.ModeCreate {
		return Policy{Kind: InputNoDefault}
	}
	if rules.AllowEmpty.Has(name) {
		return Policy{Kind: ConfirmEmpty}
	}
	if def := template.Value(name); def != "" {
		return Policy{Kind: InputWithDefault, Default: def}
	}
	return Policy{Kind: InputNoDefault}
}

// Questions builds the resolution request for classified keys.
func Questions(keys []PendingKey) []prompt.Question {
	qs := make([]prompt.Question, 0, len(keys))
	for _, k := range keys {
		qs = append(qs, Question(k))
	}
	return qs
}

func Question(k PendingKey) prompt.Question {
	switch k.Policy.Kind {
	case ConfirmEmpty:
		return prompt.Question{
			Name:    k.Name,
			Kind:    prompt.KindConfirm,
			Message: fmt.Sprintf("Populate %s with the default value (empty string)?", k.Name),
		}
	case InputWithDefault:
		return prompt.Question{
			Name:       k.Name,
			Kind:       prompt.KindInput,
			Message:    inputMessage(k.Name),
			Default:    k.Policy.Default,
			HasDefault: true,
		}
	default:
		return prompt.Question{
			Name:    k.Name,
			Kind:    prompt.KindInput,
			Message: inputMessage(k.Name),
		}
	}
}

func inputMessage(name string) string {
	return fmt.Sprintf("Enter the value for %s:", name)
}
