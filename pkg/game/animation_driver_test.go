package game

import "testing"

// leakyScheduler 忽略 CancelFrame 的调度器，模拟宿主仍然调用了过期回调
type leakyScheduler struct {
	callbacks []FrameCallback
}

func (s *leakyScheduler) RequestFrame(cb FrameCallback) FrameID {
	s.callbacks = append(s.callbacks, cb)
	return FrameID(len(s.callbacks))
}

func (s *leakyScheduler) CancelFrame(FrameID) {}

// TestAnimationDriverLifecycle verifies the stopped → running → stopped transitions.
func TestAnimationDriverLifecycle(t *testing.T) {
	var q FrameQueue
	steps := 0
	d := NewAnimationDriver(&q, func(float64) { steps++ })

	if d.State() != DriverStopped {
		t.Fatalf("Expected new driver to be stopped, got %s", d.State())
	}

	d.Start()
	if d.State() != DriverRunning {
		t.Fatalf("Expected running after Start, got %s", d.State())
	}
	if q.Pending() != 1 {
		t.Fatalf("Expected exactly one pending frame, got %d", q.Pending())
	}

	for i := 0; i < 5; i++ {
		q.Flush(float64(i) * 16)
		if q.Pending() != 1 {
			t.Fatalf("Frame %d: expected driver to reschedule itself once, pending=%d", i, q.Pending())
		}
	}
	if steps != 5 || d.Frames() != 5 {
		t.Errorf("Expected 5 steps, got steps=%d frames=%d", steps, d.Frames())
	}

	d.Stop()
	if d.State() != DriverStopped {
		t.Errorf("Expected stopped after Stop, got %s", d.State())
	}
	if q.Pending() != 0 {
		t.Errorf("Expected Stop to cancel the pending frame, pending=%d", q.Pending())
	}

	q.Flush(100)
	if steps != 5 {
		t.Errorf("Expected no steps after Stop, got %d", steps)
	}
}

// TestAnimationDriverStartIsIdempotent verifies that a second Start does not double-schedule.
func TestAnimationDriverStartIsIdempotent(t *testing.T) {
	var q FrameQueue
	d := NewAnimationDriver(&q, func(float64) {})

	d.Start()
	d.Start()

	if q.Pending() != 1 {
		t.Errorf("Expected 1 pending frame, got %d", q.Pending())
	}
}

// TestAnimationDriverIgnoresStaleCallback verifies that a callback delivered after Stop does nothing.
func TestAnimationDriverIgnoresStaleCallback(t *testing.T) {
	s := &leakyScheduler{}
	steps := 0
	d := NewAnimationDriver(s, func(float64) { steps++ })

	d.Start()
	d.Stop()

	for _, cb := range s.callbacks {
		cb(16)
	}

	if steps != 0 {
		t.Errorf("Expected stale callback to be ignored, got %d steps", steps)
	}
	if len(s.callbacks) != 1 {
		t.Errorf("Expected stale callback not to reschedule, got %d requests", len(s.callbacks))
	}
}

// TestAnimationDriverStopFromStep verifies that stopping inside the step prevents rescheduling.
func TestAnimationDriverStopFromStep(t *testing.T) {
	var q FrameQueue
	var d *AnimationDriver
	d = NewAnimationDriver(&q, func(float64) { d.Stop() })

	d.Start()
	q.Flush(16)

	if d.State() != DriverStopped {
		t.Errorf("Expected stopped, got %s", d.State())
	}
	if q.Pending() != 0 {
		t.Errorf("Expected no pending frames, got %d", q.Pending())
	}
	if d.Frames() != 1 {
		t.Errorf("Expected 1 frame, got %d", d.Frames())
	}
}
