package app

// State is the application core's UI state.
type State uint8

const (
	StateRunning State = iota
	StatePaused
	StateShowingDetail
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateShowingDetail:
		return "detail"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}
