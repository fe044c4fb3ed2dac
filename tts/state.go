package tts

// StateType represents the lifecycle state of the overlay.
type StateType int

const (
	// StateAwaitingInput indicates the input surface is live and no
	// decision has been made.
	StateAwaitingInput StateType = iota
	// StateTriggered indicates Enter was observed and the pipeline was
	// launched on a background goroutine.
	StateTriggered
	// StateAbandoned indicates focus was lost without Enter; no pipeline
	// ran.
	StateAbandoned
	// StateClosing indicates the window close has been requested.
	StateClosing
	// StateTerminated indicates the completion signal was observed and the
	// process may exit.
	StateTerminated
)

// String returns the string representation of the state.
func (s StateType) String() string {
	switch s {
	case StateAwaitingInput:
		return "awaiting-input"
	case StateTriggered:
		return "triggered"
	case StateAbandoned:
		return "abandoned"
	case StateClosing:
		return "closing"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// StateMachine validates lifecycle transitions. The overlay moves strictly
// forward: a decision (trigger or abandon) leads to closing, and closing
// ends in termination once the completion signal is observed.
type StateMachine struct {
	current StateType
}

// NewStateMachine creates a state machine in StateAwaitingInput.
func NewStateMachine() *StateMachine {
	return &StateMachine{current: StateAwaitingInput}
}

var validTransitions = map[StateType][]StateType{
	StateAwaitingInput: {StateTriggered, StateAbandoned},
	StateTriggered:     {StateClosing},
	StateAbandoned:     {StateClosing},
	StateClosing:       {StateTerminated},
	StateTerminated:    {},
}

// CanTransition reports whether moving to the given state is valid.
func (sm *StateMachine) CanTransition(to StateType) bool {
	for _, state := range validTransitions[sm.current] {
		if state == to {
			return true
		}
	}
	return false
}

// Transition attempts to move to the given state and reports success.
func (sm *StateMachine) Transition(to StateType) bool {
	if !sm.CanTransition(to) {
		return false
	}
	sm.current = to
	return true
}

// Current returns the current state.
func (sm *StateMachine) Current() StateType {
	return sm.current
}
