package console

import "sync/atomic"

// State of the console dispatcher
type State int32

const (
	StateIdle State = iota
	StateAwaitingLine
	StateDispatching
	StateInputClosed
	StateCancelled
	StateTerminated
)

func (s State) String() string {

	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingLine:
		return "awaiting line"
	case StateDispatching:
		return "dispatching"
	case StateInputClosed:
		return "input closed"
	case StateCancelled:
		return "cancelled"
	case StateTerminated:
		return "terminated"
	}

	return "unknown"
}

type state struct {
	val int32
}

// State returns the current state
func (s *state) State() State {
	return State(atomic.LoadInt32(&s.val))
}

func (s *state) setState(val State) {
	atomic.StoreInt32(&s.val, int32(val))
}
