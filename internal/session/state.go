package session

import "errors"

// State is the initialization stage of a session.
type State int

const (
	Uninitialized State = iota
	PhysicsSelected
	WorldCreated
	Ready
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case PhysicsSelected:
		return "physics-selected"
	case WorldCreated:
		return "world-created"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

var (
	// ErrNotReady indicates an operation attempted before the world exists.
	ErrNotReady = errors.New("session: world has not been created")

	// ErrNegativeEvents indicates a negative event count.
	ErrNegativeEvents = errors.New("session: event count must not be negative")
)
