package mock

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMutator(t *testing.T) {

	m := NewMutator()

	require.NoError(t, m.Inc("a"))
	require.NoError(t, m.Set("b", 1.5))
	require.NoError(t, m.Observe("c", -2))

	require.Equal(t,
		[]Call{
			{Op: "inc", Name: "a", Value: 1},
			{Op: "set", Name: "b", Value: 1.5},
			{Op: "observe", Name: "c", Value: -2},
		},
		m.GetCalls())

	m.Err = errors.New("broken")
	require.EqualError(t, m.Inc("a"), "broken")
	require.Len(t, m.GetCalls(), 3)
}
