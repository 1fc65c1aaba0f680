package renderer

// The frame scheduler is a two-state machine. It may only run while the
// render resources exist and the window is visible; hiding the window
// stops frame production until it is shown again.
type schedulerState int

const (
	schedStopped schedulerState = iota
	schedRunning
)

type scheduler struct {
	state schedulerState
}

// update applies one observation of the gate conditions and returns the
// resulting state. Transitions are edge-free: calling update repeatedly
// with the same inputs is a no-op.
func (s *scheduler) update(resourcesReady, visible bool) schedulerState {
	switch s.state {
	case schedStopped:
		if resourcesReady && visible {
			s.state = schedRunning
		}
	case schedRunning:
		if !visible || !resourcesReady {
			s.state = schedStopped
		}
	}
	return s.state
}

func (s *scheduler) running() bool {
	return s.state == schedRunning
}

// stop forces the scheduler into the stopped state, used on teardown.
func (s *scheduler) stop() {
	s.state = schedStopped
}
