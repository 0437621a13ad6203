package controller

// State is the controller's position in the submission lifecycle.
type State int

const (
	// Idle: nothing submitted yet, or the last submit found no file.
	Idle State = iota
	// Loading: a request is in flight.
	Loading
	// Success: the latest response was rendered.
	Success
	// Error: the latest attempt ended in the error region.
	Error
	// Stale is returned by Submit when a newer submission superseded this
	// one; it is never the controller's current state.
	Stale
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Error:
		return "error"
	case Stale:
		return "stale"
	}
	return "unknown"
}
