// pkg/build/state.go
package build

import (
	"fmt"
)

// State is a stage of the build pipeline
type State string

const (
	StateInit          State = "init"
	StateBindingsReady State = "bindings_ready"
	StateCompiling     State = "compiling"
	StateLinkPlanned   State = "link_planned"
	StateDone          State = "done"
	StateFailed        State = "failed"
)

// IsTerminal reports whether no further transition can leave s
func IsTerminal(s State) bool {
	return s == StateDone || s == StateFailed
}

func isAllowedTransition(from, to State) bool {
	if to == StateFailed {
		return !IsTerminal(from)
	}
	switch from {
	case StateInit:
		return to == StateBindingsReady || to == StateDone
	case StateBindingsReady:
		return to == StateCompiling
	case StateCompiling:
		return to == StateLinkPlanned
	case StateLinkPlanned:
		return to == StateDone
	default:
		return false
	}
}

// machine records the states one run passes through
type machine struct {
	history []State
}

func newMachine() *machine {
	return &machine{history: []State{StateInit}}
}

func (m *machine) current() State {
	return m.history[len(m.history)-1]
}

func (m *machine) transition(to State) error {
	from := m.current()
	if !isAllowedTransition(from, to) {
		return fmt.Errorf("disallowed transition: %s -> %s", from, to)
	}
	m.history = append(m.history, to)
	return nil
}
