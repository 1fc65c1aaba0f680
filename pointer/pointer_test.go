package pointer

import (
	"math"
	"testing"
)

func absDiff(a, b float32) float64 {
	return math.Abs(float64(a) - float64(b))
}

func TestTickConverges(t *testing.T) {
	s := NewState()
	s.Target = Vec2{0.9, 0.2}

	// Strict decrease only holds while the per-tick step is above float32
	// resolution; once the distance drops below stallEpsilon it may
	// plateau one ulp short of the target.
	const stallEpsilon = 1e-6

	prevX := absDiff(s.Current.X, s.Target.X)
	prevY := absDiff(s.Current.Y, s.Target.Y)

	for i := 0; i < 400; i++ {
		s.Tick(0.035, true)
		dx := absDiff(s.Current.X, s.Target.X)
		dy := absDiff(s.Current.Y, s.Target.Y)
		if dx > prevX || dy > prevY {
			t.Fatalf("tick %d: distance increased (x %v->%v, y %v->%v)", i, prevX, dx, prevY, dy)
		}
		if prevX > stallEpsilon && dx >= prevX {
			t.Fatalf("tick %d: x distance stalled at %v, still far from target", i, prevX)
		}
		if prevY > stallEpsilon && dy >= prevY {
			t.Fatalf("tick %d: y distance stalled at %v, still far from target", i, prevY)
		}
		prevX, prevY = dx, dy
	}

	if prevX > 0.001 || prevY > 0.001 {
		t.Fatalf("did not converge near target, remaining (%v, %v)", prevX, prevY)
	}
}

func TestTickSnapsToCenterWhenDisabled(t *testing.T) {
	s := NewState()
	s.Current = Vec2{0.9, 0.1}
	s.Target = Vec2{0.8, 0.3}

	s.Tick(0.035, false)

	if s.Current != Center {
		t.Fatalf("expected immediate snap to center, got %+v", s.Current)
	}
}

func TestSetTargetFromPixels(t *testing.T) {
	tests := []struct {
		name          string
		cursorX       float64
		cursorY       float64
		width, height float64
		wantX, wantY  float32
	}{
		{"center", 400, 300, 800, 600, 0.5, 0.5},
		{"top left is y=1", 0, 0, 800, 600, 0, 1},
		{"bottom right is y=0", 800, 600, 800, 600, 1, 0},
		{"clamps left of window", -50, 300, 800, 600, 0, 0.5},
		{"clamps below window", 400, 900, 800, 600, 0.5, 0},
		{"clamps above window", 400, -10, 800, 600, 0.5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			s.SetTargetFromPixels(tt.cursorX, tt.cursorY, tt.width, tt.height)
			if absDiff(s.Target.X, tt.wantX) > 1e-6 || absDiff(s.Target.Y, tt.wantY) > 1e-6 {
				t.Fatalf("got target (%v, %v), want (%v, %v)", s.Target.X, s.Target.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestSetTargetIgnoresZeroSizeWindow(t *testing.T) {
	s := NewState()
	s.Target = Vec2{0.7, 0.7}
	s.SetTargetFromPixels(100, 100, 0, 0)
	if s.Target != (Vec2{0.7, 0.7}) {
		t.Fatalf("zero-size window should not change target, got %+v", s.Target)
	}
}

func TestLeaveResetsTarget(t *testing.T) {
	s := NewState()
	s.Target = Vec2{0.9, 0.9}
	s.Current = Vec2{0.8, 0.8}

	s.Leave()

	if s.Target != Center {
		t.Fatalf("leave should reset target to center, got %+v", s.Target)
	}
	if s.Current == Center {
		t.Fatal("leave should not snap current; it eases over following ticks")
	}
}

func TestTargetAlwaysInUnitSquare(t *testing.T) {
	s := NewState()
	for _, p := range [][2]float64{{-1e9, 1e9}, {1e9, -1e9}, {123456, 654321}} {
		s.SetTargetFromPixels(p[0], p[1], 800, 600)
		if s.Target.X < 0 || s.Target.X > 1 || s.Target.Y < 0 || s.Target.Y > 1 {
			t.Fatalf("target escaped unit square: %+v for cursor %v", s.Target, p)
		}
	}
}
