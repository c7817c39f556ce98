package tui

// UndoState is a saved document for undo
type UndoState struct {
	Content     string
	Description string // what action created this state
}

// UndoStack keeps content snapshots, oldest first
type UndoStack struct {
	states []UndoState
	max    int
}

// NewUndoStack creates a stack holding at most max states
func NewUndoStack(max int) *UndoStack {
	if max <= 0 {
		max = 100
	}
	return &UndoStack{max: max}
}

// Push saves content unless it equals the newest saved state
func (u *UndoStack) Push(content, description string) {
	if n := len(u.states); n > 0 && u.states[n-1].Content == content {
		return
	}
	u.states = append(u.states, UndoState{Content: content, Description: description})
	if len(u.states) > u.max {
		u.states = u.states[len(u.states)-u.max:]
	}
}

// Pop removes and returns the newest state
func (u *UndoStack) Pop() (UndoState, bool) {
	if len(u.states) == 0 {
		return UndoState{}, false
	}
	last := u.states[len(u.states)-1]
	u.states = u.states[:len(u.states)-1]
	return last, true
}

// Len returns the number of saved states
func (u *UndoStack) Len() int {
	return len(u.states)
}

// Clear drops all saved states
func (u *UndoStack) Clear() {
	u.states = nil
}
