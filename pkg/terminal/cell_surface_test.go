package terminal

import (
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/cursorfx/pkg/render"
)

// gridWriter 记录写入的字符格
type gridWriter struct {
	cells map[[2]int]rune
	style map[[2]int]tcell.Style
}

func newGridWriter() *gridWriter {
	return &gridWriter{cells: map[[2]int]rune{}, style: map[[2]int]tcell.Style{}}
}

func (w *gridWriter) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	w.cells[[2]int{x, y}] = primary
	w.style[[2]int{x, y}] = style
}

var cyan = color.NRGBA{R: 0x22, G: 0xd3, B: 0xee, A: 0xff}

// TestCellSurface_ResizeMatchesViewport verifies that Size reports the virtual viewport exactly.
func TestCellSurface_ResizeMatchesViewport(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantCols      int
		wantRows      int
	}{
		{"exact multiple", 640, 384, 80, 24},
		{"rounds up", 641, 385, 81, 25},
		{"empty", 0, 0, 0, 0},
		{"negative clamps", -5, -5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewCellSurface(10, 10, 8)
			s.SetCompositeMode(render.CompositeLighter)
			s.Resize(tt.width, tt.height)

			w, h := s.Size()
			wantW, wantH := max(tt.width, 0), max(tt.height, 0)
			if w != wantW || h != wantH {
				t.Errorf("Size() = %dx%d, want %dx%d", w, h, wantW, wantH)
			}
			cols, rows := s.Grid()
			if cols != tt.wantCols || rows != tt.wantRows {
				t.Errorf("Grid() = %dx%d, want %dx%d", cols, rows, tt.wantCols, tt.wantRows)
			}
			if s.CompositeMode() != render.CompositeSourceOver {
				t.Error("Resize should reset composite mode")
			}
		})
	}
}

// TestCellSurface_FillCircle verifies that a dot lights the half-cell under it.
func TestCellSurface_FillCircle(t *testing.T) {
	s := NewCellSurface(80, 80, 8)
	s.FillCircle(36, 44, 2, cyan)

	got := s.Pixel(4, 5)
	r, g, b := got.RGB255()
	if r != cyan.R || g != cyan.G || b != cyan.B {
		t.Errorf("pixel (4,5) = %d,%d,%d, want %v", r, g, b, cyan)
	}
	if p := s.Pixel(0, 0); p.R != 0 || p.G != 0 || p.B != 0 {
		t.Errorf("far pixel should stay black, got %v", p)
	}
}

// TestCellSurface_StrokeLine verifies that a horizontal line covers the pixels along it.
func TestCellSurface_StrokeLine(t *testing.T) {
	s := NewCellSurface(160, 80, 8)
	s.StrokeLine(12, 44, 148, 44, 1, cyan)

	for x := 2; x <= 17; x++ {
		if p := s.Pixel(x, 5); p.B == 0 {
			t.Errorf("pixel (%d,5) not covered by line", x)
		}
	}
	if p := s.Pixel(10, 8); p.B != 0 {
		t.Errorf("pixel (10,8) should not be covered, got %v", p)
	}
}

// TestCellSurface_CompositeModes verifies source-over versus additive blending.
func TestCellSurface_CompositeModes(t *testing.T) {
	half := cyan
	half.A = 128

	over := NewCellSurface(16, 16, 8)
	over.FillCircle(4, 4, 4, half)
	over.FillCircle(4, 4, 4, half)

	lighter := NewCellSurface(16, 16, 8)
	lighter.SetCompositeMode(render.CompositeLighter)
	lighter.FillCircle(4, 4, 4, half)
	lighter.FillCircle(4, 4, 4, half)

	ob := over.Pixel(0, 0).B
	lb := lighter.Pixel(0, 0).B
	if !(lb > ob) {
		t.Errorf("lighter blue %.3f should exceed source-over blue %.3f", lb, ob)
	}
	if lb > 1 {
		t.Errorf("lighter should clamp, got %.3f", lb)
	}
}

// TestCellSurface_Clear verifies that clearing resets every pixel to black.
func TestCellSurface_Clear(t *testing.T) {
	s := NewCellSurface(16, 16, 8)
	s.FillCircle(4, 4, 4, cyan)
	s.Clear()

	if p := s.Pixel(0, 0); p.R != 0 || p.G != 0 || p.B != 0 {
		t.Errorf("Expected black after Clear, got %v", p)
	}
}

// TestCellSurface_Flush verifies half-block output for lit cells and blanks elsewhere.
func TestCellSurface_Flush(t *testing.T) {
	s := NewCellSurface(32, 32, 8)
	s.FillCircle(4, 4, 1, cyan)

	w := newGridWriter()
	s.Flush(w)

	cols, rows := s.Grid()
	if len(w.cells) != cols*rows {
		t.Fatalf("Expected %d cells written, got %d", cols*rows, len(w.cells))
	}
	if w.cells[[2]int{0, 0}] != upperHalfBlock {
		t.Errorf("Expected half block at (0,0), got %q", w.cells[[2]int{0, 0}])
	}
	fg, _, _ := w.style[[2]int{0, 0}].Decompose()
	if fg != tcell.NewRGBColor(int32(cyan.R), int32(cyan.G), int32(cyan.B)) {
		t.Errorf("Expected cyan foreground, got %v", fg)
	}
	if w.cells[[2]int{3, 1}] != ' ' {
		t.Errorf("Expected blank cell at (3,1), got %q", w.cells[[2]int{3, 1}])
	}
}

// TestSegmentDistance verifies the point-to-segment helper.
func TestSegmentDistance(t *testing.T) {
	tests := []struct {
		name                   string
		px, py, ax, ay, bx, by float64
		want                   float64
	}{
		{"on segment", 5, 0, 0, 0, 10, 0, 0},
		{"perpendicular", 5, 3, 0, 0, 10, 0, 3},
		{"beyond end", 13, 4, 0, 0, 10, 0, 5},
		{"degenerate", 3, 4, 0, 0, 0, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := segmentDistance(tt.px, tt.py, tt.ax, tt.ay, tt.bx, tt.by); got != tt.want {
				t.Errorf("segmentDistance = %v, want %v", got, tt.want)
			}
		})
	}
}
