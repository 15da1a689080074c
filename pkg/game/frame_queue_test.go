package game

import "testing"

// TestFrameQueueFlushRunsPendingOnce verifies that each requested callback runs exactly once.
func TestFrameQueueFlushRunsPendingOnce(t *testing.T) {
	var q FrameQueue
	calls := 0
	q.RequestFrame(func(float64) { calls++ })
	q.RequestFrame(func(float64) { calls++ })

	if got := q.Flush(16); got != 2 {
		t.Errorf("Expected 2 callbacks to run, got %d", got)
	}
	if got := q.Flush(32); got != 0 {
		t.Errorf("Expected empty second flush, got %d", got)
	}
	if calls != 2 {
		t.Errorf("Expected 2 calls, got %d", calls)
	}
}

// TestFrameQueuePassesTimestamp verifies that callbacks receive the flush timestamp.
func TestFrameQueuePassesTimestamp(t *testing.T) {
	var q FrameQueue
	var got float64
	q.RequestFrame(func(now float64) { got = now })
	q.Flush(123.5)

	if got != 123.5 {
		t.Errorf("Expected timestamp 123.5, got %.1f", got)
	}
}

// TestFrameQueueRequestDuringFlush verifies that frames requested inside a callback wait for the next flush.
func TestFrameQueueRequestDuringFlush(t *testing.T) {
	var q FrameQueue
	inner := 0
	q.RequestFrame(func(float64) {
		q.RequestFrame(func(float64) { inner++ })
	})

	q.Flush(16)
	if inner != 0 {
		t.Fatal("Frame requested during flush ran in the same flush")
	}
	if q.Pending() != 1 {
		t.Fatalf("Expected 1 pending frame, got %d", q.Pending())
	}

	q.Flush(32)
	if inner != 1 {
		t.Errorf("Expected nested frame to run on the next flush, got %d calls", inner)
	}
}

// TestFrameQueueCancel verifies cancellation before and during a flush.
func TestFrameQueueCancel(t *testing.T) {
	tests := []struct {
		name         string
		cancelInside bool
	}{
		{name: "cancel before flush", cancelInside: false},
		{name: "cancel from earlier callback", cancelInside: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q FrameQueue
			cancelled := false
			var victim FrameID

			if tt.cancelInside {
				q.RequestFrame(func(float64) { q.CancelFrame(victim) })
			}
			victim = q.RequestFrame(func(float64) { cancelled = true })
			if !tt.cancelInside {
				q.CancelFrame(victim)
			}

			q.Flush(16)
			if cancelled {
				t.Error("Cancelled callback still ran")
			}
		})
	}
}

// TestFrameQueueCancelUnknown verifies that cancelling unknown or finished ids is harmless.
func TestFrameQueueCancelUnknown(t *testing.T) {
	var q FrameQueue
	id := q.RequestFrame(func(float64) {})
	q.Flush(16)

	q.CancelFrame(id)
	q.CancelFrame(9999)
	q.CancelFrame(0)

	if q.Pending() != 0 {
		t.Errorf("Expected no pending frames, got %d", q.Pending())
	}
}
