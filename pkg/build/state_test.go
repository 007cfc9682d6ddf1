package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowedTransitions(t *testing.T) {
	all := []State{StateInit, StateBindingsReady, StateCompiling, StateLinkPlanned, StateDone, StateFailed}
	allowed := map[State][]State{
		StateInit:          {StateBindingsReady, StateDone, StateFailed},
		StateBindingsReady: {StateCompiling, StateFailed},
		StateCompiling:     {StateLinkPlanned, StateFailed},
		StateLinkPlanned:   {StateDone, StateFailed},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, s := range allowed[from] {
				if s == to {
					want = true
				}
			}
			assert.Equal(t, want, isAllowedTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestMachine(t *testing.T) {
	m := newMachine()
	require.NoError(t, m.transition(StateBindingsReady))
	assert.Error(t, m.transition(StateDone))
	require.NoError(t, m.transition(StateFailed))
	assert.Error(t, m.transition(StateFailed))
	assert.Equal(t, []State{StateInit, StateBindingsReady, StateFailed}, m.history)
	assert.True(t, IsTerminal(m.current()))
}
