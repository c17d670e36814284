package mock

import (
	"sync"
)

// A Call of the mutator
type Call struct {
	Op    string
	Name  string
	Value float64
}

// A Mutator records updates instead of applying them.
// Err, if set, is returned by every call.
type Mutator struct {
	Err error

	mu    sync.RWMutex
	calls []Call
}

func NewMutator() *Mutator {
	return &Mutator{}
}

func (m *Mutator) Inc(name string) error {
	return m.record(Call{Op: "inc", Name: name, Value: 1})
}

func (m *Mutator) Set(name string, val float64) error {
	return m.record(Call{Op: "set", Name: name, Value: val})
}

func (m *Mutator) Observe(name string, val float64) error {
	return m.record(Call{Op: "observe", Name: name, Value: val})
}

func (m *Mutator) GetCalls() []Call {

	m.mu.RLock()
	defer m.mu.RUnlock()

	retval := make([]Call, len(m.calls))
	copy(retval, m.calls)

	return retval
}

func (m *Mutator) record(c Call) error {

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}

	m.calls = append(m.calls, c)
	return nil
}
