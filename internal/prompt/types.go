package prompt

import "context"

// Kind is the answer shape a question expects.
type Kind int

const (
	KindInput Kind = iota
	KindConfirm
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}

// Question is one entry of a resolution request.
type Question struct {
	Name       string
	Kind       Kind
	Message    string
	Default    string
	HasDefault bool
}

// Answer carries the resolution for one variable. Confirmed is meaningful
// for KindConfirm, Value for KindInput.
type Answer struct {
	Name      string
	Kind      Kind
	Confirmed bool
	Value     string
}

func Confirm(name string, ok bool) Answer {
	return Answer{Name: name, Kind: KindConfirm, Confirmed: ok}
}

func Input(name, value string) Answer {
	return Answer{Name: name, Kind: KindInput, Value: value}
}

// Answers are ordered like the questions they resolve.
type Answers []Answer

// Prompter resolves a batch of questions. Implementations block until every
// question is answered or the session is aborted.
type Prompter interface {
	Resolve(ctx context.Context, qs []Question) (Answers, error)
}

// Func adapts a function to Prompter.
type Func func(ctx context.Context, qs []Question) (Answers, error)

func (f Func) Resolve(ctx context.Context, qs []Question) (Answers, error) {
	return f(ctx, qs)
}
