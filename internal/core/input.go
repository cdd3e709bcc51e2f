package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // W, Up arrow - move cursor up
	ActionDown             // S, Down arrow - move cursor down
	ActionLeft             // A, Left arrow - move cursor left (west on hex)
	ActionRight            // D, Right arrow - move cursor right (east on hex)
	ActionUpLeft           // Q - north-west on hex
	ActionUpRight          // E - north-east on hex
	ActionDownLeft         // Z - south-west on hex
	ActionDownRight        // C - south-east on hex
	ActionPlace            // Space - append the cursor cell to the guess
	ActionUndo             // Backspace - remove the last guessed cell
	ActionConfirm          // Enter - submit guess / continue
	ActionRestart          // R key - restart game after game over
	ActionQuit             // Ctrl+C - exit game/session
	ActionPause            // P, Escape - pause/unpause game
)

var actionNames = map[Action]string{
	ActionNone:      "None",
	ActionUp:        "Up",
	ActionDown:      "Down",
	ActionLeft:      "Left",
	ActionRight:     "Right",
	ActionUpLeft:    "UpLeft",
	ActionUpRight:   "UpRight",
	ActionDownLeft:  "DownLeft",
	ActionDownRight: "DownRight",
	ActionPlace:     "Place",
	ActionUndo:      "Undo",
	ActionConfirm:   "Confirm",
	ActionRestart:   "Restart",
	ActionQuit:      "Quit",
	ActionPause:     "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
	// Order keeps the actions in the order they arrived, so several cursor
	// moves within one tick are applied in sequence.
	Order []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
	f.Order = append(f.Order, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Sequence returns the triggered actions in arrival order.
func (f InputFrame) Sequence() []Action {
	return f.Order
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Order = f.Order[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Order = append([]Action(nil), f.Order...)
	return clone
}
