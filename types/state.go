package types

// State represents the controller lifecycle state.
//
// States follow a defined progression:
//
//	StateInit → StateRunning → StateStopped
//
// A stopped controller cannot be restarted; build a new one instead.
type State int

const (
	// StateInit is the initial state before Start.
	StateInit State = iota

	// StateRunning indicates the event loop is processing width signals.
	StateRunning

	// StateStopped indicates the controller has been torn down.
	StateStopped
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateInit:
		return "Init"
	case StateRunning:
		return "Running"
	case StateStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}
