package core

// Action is a semantic input, decoupled from the physical key that produced it.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow: shift left
	ActionRight          // D, Right arrow: shift right
	ActionUp             // W, Up arrow: rotate
	ActionDown           // S, Down arrow: soft drop
	ActionJump           // Space: hard drop
	ActionHold           // C, Shift: hold or swap
	ActionConfirm        // Enter
	ActionBack           // B, Escape
	ActionRestart        // R, N: new game
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionJump:
		return "Jump"
	case ActionHold:
		return "Hold"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions triggered during one simulation tick.
// Repeated presses of the same key within a tick are counted so that a fast
// typist's auto-repeat is not lost between ticks.
type InputFrame struct {
	Actions map[Action]int
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]int),
	}
}

// Set records one press of a.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]int)
	}
	f.Actions[a]++
}

// Has reports whether a was pressed at least once this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a] > 0
}

// Count returns how many times a was pressed this frame.
func (f InputFrame) Count(a Action) int {
	return f.Actions[a]
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}

// Clone returns an independent copy of the frame.
func (f InputFrame) Clone() InputFrame {
	c := NewInputFrame()
	for k, v := range f.Actions {
		c.Actions[k] = v
	}
	return c
}
