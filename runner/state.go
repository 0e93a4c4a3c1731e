package runner

// State is the run state of the enumeration
type State uint8

const (
	Idle State = iota
	Running
	Paused
	Complete // exhausted without a match
	Success  // target found
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Complete:
		return "complete"
	case Success:
		return "success"
	}

	return "unknown"
}

// Finished reports whether s only accepts a reset
func (s State) Finished() bool {
	return s == Complete || s == Success
}
