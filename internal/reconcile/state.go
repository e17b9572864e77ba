package reconcile

import "github.com/unkn0wn-root/envconf/internal/drift"

// State tracks one file set through a pass.
type State int

const (
	StateInit State = iota
	StateSynced
	StateNeedsCreate
	StateNeedsUpdate
	StateDone
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateSynced:
		return "synced"
	case StateNeedsCreate:
		return "needs-create"
	case StateNeedsUpdate:
		return "needs-update"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Result describes what happened to one file set. In check mode State stays
// at NeedsCreate or NeedsUpdate for drifted sets.
type Result struct {
	Name    string
	State   State
	Mode    drift.Mode
	Pending []string
	Output  string
	Written bool
}

// Drifted reports whether the set needed any work.
func (r Result) Drifted() bool {
	return r.State != StateSynced
}
