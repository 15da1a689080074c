package terminal

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/cursorfx/pkg/game"
)

// viewportRecorder 记录宿主分发的视口事件
type viewportRecorder struct {
	width, height int
	x, y          float64
	moves, leaves int
}

func (r *viewportRecorder) OnResize(width, height int) { r.width, r.height = width, height }
func (r *viewportRecorder) OnPointerMove(x, y float64) {
	r.x, r.y = x, y
	r.moves++
}
func (r *viewportRecorder) OnPointerLeave() { r.leaves++ }

var _ game.Host = (*Host)(nil)

func newSimulationHost(t *testing.T, cols, rows int) (*Host, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("simulation screen init failed: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(cols, rows)
	return NewHost(screen, 8), screen
}

// TestHostViewportSize verifies the cell-to-virtual-pixel mapping.
func TestHostViewportSize(t *testing.T) {
	h, _ := newSimulationHost(t, 80, 24)

	w, ht := h.ViewportSize()
	if w != 640 || ht != 384 {
		t.Errorf("ViewportSize() = %dx%d, want 640x384", w, ht)
	}
}

// TestHostAcquireSurface verifies that the surface matches the viewport or reports missing color support.
func TestHostAcquireSurface(t *testing.T) {
	h, screen := newSimulationHost(t, 80, 24)

	s, err := h.AcquireSurface()
	if screen.Colors() < 8 {
		if !errors.Is(err, ErrNoColor) {
			t.Errorf("Expected ErrNoColor on monochrome screen, got %v", err)
		}
		return
	}
	if err != nil {
		t.Fatalf("AcquireSurface failed: %v", err)
	}
	w, ht := s.Size()
	vw, vh := h.ViewportSize()
	if w != vw || ht != vh {
		t.Errorf("surface %dx%d, viewport %dx%d", w, ht, vw, vh)
	}
}

// TestHostHandleEvent verifies translation of tcell events into viewport events.
func TestHostHandleEvent(t *testing.T) {
	h, _ := newSimulationHost(t, 80, 24)
	r := &viewportRecorder{}
	h.AddListener(r)

	if h.handleEvent(tcell.NewEventMouse(10, 3, tcell.ButtonNone, tcell.ModNone)) {
		t.Fatal("mouse event should not quit")
	}
	if r.moves != 1 || r.x != 84 || r.y != 56 {
		t.Errorf("Expected move to (84,56), got (%.0f,%.0f) moves=%d", r.x, r.y, r.moves)
	}

	h.handleEvent(tcell.NewEventResize(100, 30))
	if r.width != 800 || r.height != 480 {
		t.Errorf("Expected resize to 800x480, got %dx%d", r.width, r.height)
	}

	h.handleEvent(tcell.NewEventFocus(false))
	if r.leaves != 1 {
		t.Errorf("Expected focus loss to dispatch leave, got %d", r.leaves)
	}
	h.handleEvent(tcell.NewEventFocus(true))
	if r.leaves != 1 {
		t.Errorf("Focus gain should not dispatch leave, got %d", r.leaves)
	}
}

// TestHostQuitKeys verifies the keys that end the event loop.
func TestHostQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		quit bool
	}{
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), true},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), true},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), true},
		{"other rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), false},
	}

	h, _ := newSimulationHost(t, 10, 10)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.handleEvent(tt.ev); got != tt.quit {
				t.Errorf("handleEvent(%s) = %v, want %v", tt.name, got, tt.quit)
			}
		})
	}
}

// TestHostFrameFlush verifies that a tick runs pending callbacks and pushes the surface to the screen.
func TestHostFrameFlush(t *testing.T) {
	h, screen := newSimulationHost(t, 4, 2)
	if screen.Colors() < 8 {
		t.Skip("simulation screen reports no color support")
	}
	if _, err := h.AcquireSurface(); err != nil {
		t.Fatalf("AcquireSurface failed: %v", err)
	}

	ran := 0
	h.RequestFrame(func(float64) {
		ran++
		h.surface.FillCircle(4, 4, 1, cyan)
	})
	h.frame()

	if ran != 1 {
		t.Fatalf("Expected 1 frame callback, got %d", ran)
	}
	mainc, _, _, _ := screen.GetContent(0, 0)
	if mainc != upperHalfBlock {
		t.Errorf("Expected half block at (0,0), got %q", mainc)
	}
}
