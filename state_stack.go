package canvas

// StateStack is the save/restore history of drawing state. The last frame is
// the current state. A stack is never empty: the bottom frame cannot be
// popped.
//
// The zero value is not usable; create stacks with NewStateStack.
type StateStack struct {
	frames []State
}

// NewStateStack returns a stack holding a single default frame.
func NewStateStack() *StateStack {
	frames := make([]State, 1, 8)
	frames[0] = DefaultState()
	return &StateStack{frames: frames}
}

// Push duplicates the current frame. Later changes affect only the copy.
func (s *StateStack) Push() {
	s.frames = append(s.frames, s.frames[len(s.frames)-1])
}

// Pop discards the current frame and exposes the one beneath it.
// With a single frame left Pop does nothing and reports false.
func (s *StateStack) Pop() bool {
	if len(s.frames) <= 1 {
		return false
	}
	s.frames = s.frames[:len(s.frames)-1]
	return true
}

// Current returns the top frame for in-place reads and writes. The pointer
// is invalidated by the next Push or Pop.
func (s *StateStack) Current() *State {
	return &s.frames[len(s.frames)-1]
}

// Len returns the number of frames, always at least one.
func (s *StateStack) Len() int {
	return len(s.frames)
}

// Reset drops every saved frame and restores the defaults.
func (s *StateStack) Reset() {
	s.frames = s.frames[:1]
	s.frames[0] = DefaultState()
}
