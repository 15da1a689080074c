package render

import (
	"image/color"
	"testing"
)

func TestImageSurface_ResizeMatchesViewport(t *testing.T) {
	s := NewImageSurface(320, 240)
	if w, h := s.Size(); w != 320 || h != 240 {
		t.Fatalf("expected 320x240, got %dx%d", w, h)
	}

	s.SetCompositeMode(CompositeLighter)
	s.FillCircle(100, 100, 10, color.NRGBA{R: 255, A: 255})

	s.Resize(1024, 768)
	if w, h := s.Size(); w != 1024 || h != 768 {
		t.Fatalf("expected 1024x768 after resize, got %dx%d", w, h)
	}
	// 重建后内容丢弃，合成模式恢复默认
	if s.CompositeMode() != CompositeSourceOver {
		t.Errorf("expected composite mode reset to source-over, got %v", s.CompositeMode())
	}
	if a := s.Image().RGBAAt(100, 100).A; a != 0 {
		t.Errorf("expected cleared pixel after resize, got alpha %d", a)
	}

	// 负尺寸按 0 处理
	s.Resize(-5, 10)
	if w, h := s.Size(); w != 0 || h != 10 {
		t.Errorf("expected 0x10, got %dx%d", w, h)
	}
}

func TestImageSurface_FillCircle(t *testing.T) {
	s := NewImageSurface(64, 64)
	s.FillCircle(32, 32, 8, color.NRGBA{R: 255, G: 0, B: 0, A: 255})

	center := s.Image().RGBAAt(32, 32)
	if center.R < 250 || center.A < 250 {
		t.Errorf("expected opaque red at center, got %v", center)
	}
	if corner := s.Image().RGBAAt(2, 2); corner.A != 0 {
		t.Errorf("expected transparent corner, got %v", corner)
	}
}

func TestImageSurface_StrokeLine(t *testing.T) {
	s := NewImageSurface(64, 64)
	s.StrokeLine(10, 32, 54, 32, 4, color.NRGBA{G: 255, A: 255})

	if mid := s.Image().RGBAAt(32, 32); mid.G < 200 {
		t.Errorf("expected green on the line, got %v", mid)
	}
	if off := s.Image().RGBAAt(32, 10); off.A != 0 {
		t.Errorf("expected transparent pixel off the line, got %v", off)
	}

	// 零长度线段退化为圆点
	s.Clear()
	s.StrokeLine(20, 20, 20, 20, 6, color.NRGBA{B: 255, A: 255})
	if dot := s.Image().RGBAAt(20, 20); dot.B < 200 {
		t.Errorf("expected dot for zero-length line, got %v", dot)
	}
}

func TestImageSurface_CompositeModes(t *testing.T) {
	half := color.NRGBA{R: 255, A: 128}

	over := NewImageSurface(16, 16)
	over.FillCircle(8, 8, 6, half)
	over.FillCircle(8, 8, 6, half)

	lighter := NewImageSurface(16, 16)
	lighter.SetCompositeMode(CompositeLighter)
	lighter.FillCircle(8, 8, 6, half)
	lighter.FillCircle(8, 8, 6, half)

	o := over.Image().RGBAAt(8, 8)
	l := lighter.Image().RGBAAt(8, 8)
	// source-over: 0.5 + 0.5*0.5 = 0.75；lighter: 0.5 + 0.5 = 1
	if o.A < 185 || o.A > 197 {
		t.Errorf("source-over alpha expected ~191, got %d", o.A)
	}
	if l.A < 250 {
		t.Errorf("lighter alpha expected ~255, got %d", l.A)
	}
}

func TestImageSurface_ClipsOffscreenShapes(t *testing.T) {
	s := NewImageSurface(32, 32)
	// 完全在表面外的形状被忽略，部分越界的形状被裁剪
	s.FillCircle(-50, -50, 5, color.NRGBA{R: 255, A: 255})
	s.StrokeLine(-10, 16, 10, 16, 2, color.NRGBA{R: 255, A: 255})

	if px := s.Image().RGBAAt(5, 16); px.R == 0 {
		t.Errorf("expected clipped line to reach (5,16), got %v", px)
	}
}

func TestImageSurface_Snapshot(t *testing.T) {
	s := NewImageSurface(8, 8)
	s.FillCircle(4, 4, 3, color.NRGBA{R: 255, A: 255})

	snap := s.Snapshot()
	s.Clear()
	if snap.RGBAAt(4, 4).A == 0 {
		t.Error("snapshot should not be affected by later Clear")
	}
}

func TestParseCompositeMode(t *testing.T) {
	if ParseCompositeMode("lighter") != CompositeLighter {
		t.Error("expected lighter")
	}
	if ParseCompositeMode("source-over") != CompositeSourceOver {
		t.Error("expected source-over")
	}
	if ParseCompositeMode("unknown") != CompositeSourceOver {
		t.Error("unknown names fall back to source-over")
	}
}
