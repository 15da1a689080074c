package main

import (
	"image"
	"path/filepath"
	"testing"
)

func TestPointerPath(t *testing.T) {
	tests := []struct {
		name        string
		frame       int
		wantX       float64
		wantY       float64
		wantPresent bool
	}{
		{"circle", 0, 400 + 180, 300, true},
		{"sweep", 0, 0, 300, true},
		{"sweep", 99, 800, 300, true},
		{"still", 42, 400, 300, true},
		{"none", 10, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at, err := pointerPath(tt.name, 800, 600)
			if err != nil {
				t.Fatalf("pointerPath(%q) failed: %v", tt.name, err)
			}
			x, y, ok := at(tt.frame, 100)
			if ok != tt.wantPresent || x != tt.wantX || y != tt.wantY {
				t.Errorf("frame %d = (%.1f, %.1f, %v), want (%.1f, %.1f, %v)",
					tt.frame, x, y, ok, tt.wantX, tt.wantY, tt.wantPresent)
			}
		})
	}

	if _, err := pointerPath("zigzag", 800, 600); err == nil {
		t.Error("Expected error for unknown path")
	}
}

func TestWritePNG(t *testing.T) {
	name := filepath.Join(t.TempDir(), "frame.png")
	if err := writePNG(name, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("writePNG failed: %v", err)
	}
}
