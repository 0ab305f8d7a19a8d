package stage

// State is the lifecycle state of a stage. Stages only ever move forward: idle -> running -> done, or idle -> done
// when there was nothing to run.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// EventType distinguishes the notifications a stage emits.
type EventType int

const (
	// EventError carries the reason a run failed. It is always followed by an EventEnd.
	EventError EventType = iota
	// EventEnd is emitted exactly once per stage.
	EventEnd
)

func (t EventType) String() string {
	switch t {
	case EventError:
		return "error"
	case EventEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Event is a notification about the terminal outcome of a stage.
type Event struct {
	Type EventType
	Err  error
}
