package explore

// Stack is the navigation history: an ordered, never-empty sequence of
// frames. The tail frame is the current position. Popping restores the
// previous frame with its view state exactly as it was before the push.
type Stack struct {
	engine *Engine
	frames []*Frame
}

// NewStack caches the root node and starts a stack with a single frame
// wrapping it.
func (e *Engine) NewStack(root *Node) *Stack {
	e.Cache(root)
	return &Stack{
		engine: e,
		frames: []*Frame{newFrame(root)},
	}
}

// Push drills into a child node: it appends a fresh frame with default view
// state, caching the child first. Pushing a nil or non-selectable node is a
// guarded no-op; Push reports whether the stack changed.
func (s *Stack) Push(n *Node) bool {
	if n == nil || !n.Selectable() {
		return false
	}
	s.engine.Cache(n)
	s.frames = append(s.frames, newFrame(n))
	return true
}

// Pop backs out of the current frame, restoring the previous frame with its
// saved selection. The root frame cannot be popped; Pop reports whether the
// stack changed.
func (s *Stack) Pop() bool {
	if len(s.frames) <= 1 {
		return false
	}
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]
	return true
}

// Jump truncates the stack down to the frame at the given depth, as if Pop
// had been called repeatedly, leaving that frame's saved state intact.
// Jumping to the current frame is a no-op. Jump reports whether the index
// was valid.
func (s *Stack) Jump(index int) bool {
	if index < 0 || index >= len(s.frames) {
		return false
	}
	for i := index + 1; i < len(s.frames); i++ {
		s.frames[i] = nil
	}
	s.frames = s.frames[:index+1]
	return true
}

// Current returns the tail frame.
func (s *Stack) Current() *Frame {
	return s.frames[len(s.frames)-1]
}

// Depth returns the number of frames on the stack.
func (s *Stack) Depth() int {
	return len(s.frames)
}

// Frames returns the stack from root to current, for history rendering.
func (s *Stack) Frames() []*Frame {
	return s.frames
}

// Engine returns the engine this stack caches through.
func (s *Stack) Engine() *Engine {
	return s.engine
}
