package app

import (
	"testing"

	"github.com/decker502/cursorfx/pkg/config"
	"github.com/decker502/cursorfx/pkg/game"
)

// 编译期检查：App 同时是 ebiten.Game 和 game.Host
var _ game.Host = (*App)(nil)

// TestNewAppRequiresEffectConfig verifies that a missing effect config is rejected.
func TestNewAppRequiresEffectConfig(t *testing.T) {
	if _, err := NewApp(Config{Verbose: true}); err == nil {
		t.Error("Expected error for missing effect config")
	}
}

// TestAppFrameScheduling verifies that frame callbacks are queued until Update flushes them.
func TestAppFrameScheduling(t *testing.T) {
	cfg := config.DefaultEffectConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	a, err := NewApp(Config{Verbose: true, Effect: cfg})
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}

	ran := 0
	id := a.RequestFrame(func(float64) { ran++ })
	a.RequestFrame(func(float64) { ran++ })
	a.CancelFrame(id)

	if n := a.frames.Flush(0); n != 1 || ran != 1 {
		t.Errorf("Expected 1 callback after cancel, flushed=%d ran=%d", n, ran)
	}
}

// TestAppLayoutTracksWindow verifies that the logical size follows the window.
func TestAppLayoutTracksWindow(t *testing.T) {
	cfg := config.DefaultEffectConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	a, err := NewApp(Config{Verbose: true, Effect: cfg})
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}

	w, h := a.Layout(1440, 900)
	if w != 1440 || h != 900 {
		t.Errorf("Layout returned %dx%d, want 1440x900", w, h)
	}
	if a.Effect().Mounted() {
		t.Error("Effect should not mount before the first Update")
	}
}
