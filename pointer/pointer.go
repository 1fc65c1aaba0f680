// Package pointer tracks the normalized pointer position that drives the
// parallax term of the effect shader.
package pointer

// Vec2 is a point in normalized [0,1]x[0,1] coordinates.
type Vec2 struct {
	X, Y float32
}

// Center is the neutral rest position used when parallax is disabled or
// the pointer has left the window.
var Center = Vec2{0.5, 0.5}

// State holds the smoothed pointer position. Target is written by cursor
// callbacks, Current is advanced once per rendered frame. Both are only
// ever touched from the render thread, so no locking is needed.
type State struct {
	Current Vec2
	Target  Vec2
}

// NewState returns a state resting at the neutral center.
func NewState() *State {
	return &State{Current: Center, Target: Center}
}

// SetTargetFromPixels converts a cursor position in window pixels into a
// normalized target. Y is flipped so 0 is the bottom edge, matching the
// shader's UV convention. Coordinates outside the window clamp to the
// nearest edge.
func (s *State) SetTargetFromPixels(cursorX, cursorY, width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	s.Target.X = clamp01(float32(cursorX / width))
	s.Target.Y = clamp01(float32(1.0 - cursorY/height))
}

// Leave resets the target to the neutral center; Current keeps easing
// toward it over the following frames.
func (s *State) Leave() {
	s.Target = Center
}

// Tick advances Current one frame. With parallax enabled this is
// exponential smoothing toward Target with the given factor, so
// convergence is geometric. With parallax disabled Current snaps straight
// to the center with no smoothing.
func (s *State) Tick(lerpFactor float32, parallaxEnabled bool) {
	if !parallaxEnabled {
		s.Current = Center
		return
	}
	s.Current.X += (s.Target.X - s.Current.X) * lerpFactor
	s.Current.Y += (s.Target.Y - s.Current.Y) * lerpFactor
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
