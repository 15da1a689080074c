package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// ImageSurface 基于 image.RGBA 的离屏表面
//
// 不依赖窗口和 GPU，用于测试和离线渲染帧序列。
// 形状先由 x/image/vector 光栅化为覆盖率遮罩，再按合成模式混合到目标图像。
type ImageSurface struct {
	img  *image.RGBA
	mode CompositeMode

	rasterizer *vector.Rasterizer
	mask       *image.Alpha
}

// NewImageSurface 创建指定尺寸的离屏表面
func NewImageSurface(width, height int) *ImageSurface {
	s := &ImageSurface{rasterizer: vector.NewRasterizer(1, 1)}
	s.Resize(width, height)
	return s
}

// Size 返回像素尺寸
func (s *ImageSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize 重建底层图像，原有像素丢弃
func (s *ImageSurface) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	s.mode = CompositeSourceOver
}

// Clear 清空为全透明
func (s *ImageSurface) Clear() {
	clear(s.img.Pix)
}

// SetCompositeMode 设置合成模式
func (s *ImageSurface) SetCompositeMode(mode CompositeMode) {
	s.mode = mode
}

// CompositeMode 返回当前合成模式
func (s *ImageSurface) CompositeMode() CompositeMode {
	return s.mode
}

// Image 返回底层图像（只读使用）
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// Snapshot 返回当前帧的副本，可安全地交给其他 goroutine 编码
func (s *ImageSurface) Snapshot() *image.RGBA {
	dup := image.NewRGBA(s.img.Bounds())
	copy(dup.Pix, s.img.Pix)
	return dup
}

// StrokeLine 绘制圆头线段
func (s *ImageSurface) StrokeLine(x0, y0, x1, y1, width float64, clr color.NRGBA) {
	r := width / 2
	if r <= 0 || clr.A == 0 {
		return
	}

	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length < 1e-6 {
		s.FillCircle(x0, y0, r, clr)
		return
	}

	bbox := image.Rect(
		int(math.Floor(math.Min(x0, x1)-r)), int(math.Floor(math.Min(y0, y1)-r)),
		int(math.Ceil(math.Max(x0, x1)+r)), int(math.Ceil(math.Max(y0, y1)+r)),
	)
	s.fill(bbox, clr, func(z *vector.Rasterizer, ox, oy float64) {
		// 胶囊形：终点半圆 + 起点半圆，沿同一方向连续绕行
		theta := math.Atan2(dy, dx)
		const steps = 8
		for k := 0; k <= steps; k++ {
			a := theta + math.Pi/2 - math.Pi*float64(k)/steps
			px, py := x1+math.Cos(a)*r-ox, y1+math.Sin(a)*r-oy
			if k == 0 {
				z.MoveTo(float32(px), float32(py))
			} else {
				z.LineTo(float32(px), float32(py))
			}
		}
		for k := 0; k <= steps; k++ {
			a := theta - math.Pi/2 - math.Pi*float64(k)/steps
			z.LineTo(float32(x0+math.Cos(a)*r-ox), float32(y0+math.Sin(a)*r-oy))
		}
		z.ClosePath()
	})
}

// FillCircle 绘制实心圆
func (s *ImageSurface) FillCircle(cx, cy, radius float64, clr color.NRGBA) {
	if radius <= 0 || clr.A == 0 {
		return
	}

	bbox := image.Rect(
		int(math.Floor(cx-radius)), int(math.Floor(cy-radius)),
		int(math.Ceil(cx+radius)), int(math.Ceil(cy+radius)),
	)
	s.fill(bbox, clr, func(z *vector.Rasterizer, ox, oy float64) {
		const steps = 16
		z.MoveTo(float32(cx+radius-ox), float32(cy-oy))
		for k := 1; k < steps; k++ {
			a := 2 * math.Pi * float64(k) / steps
			z.LineTo(float32(cx+math.Cos(a)*radius-ox), float32(cy+math.Sin(a)*radius-oy))
		}
		z.ClosePath()
	})
}

// fill 在 bbox 范围内光栅化路径并合成到目标图像
func (s *ImageSurface) fill(bbox image.Rectangle, clr color.NRGBA, path func(z *vector.Rasterizer, ox, oy float64)) {
	clipped := bbox.Intersect(s.img.Bounds())
	if clipped.Empty() {
		return
	}

	w, h := bbox.Dx(), bbox.Dy()
	z := s.rasterizer
	z.Reset(w, h)
	z.DrawOp = draw.Src
	path(z, float64(bbox.Min.X), float64(bbox.Min.Y))

	s.mask = reuseAlpha(s.mask, w, h)
	z.Draw(s.mask, s.mask.Bounds(), image.Opaque, image.Point{})

	sa := float64(clr.A) / 255
	sr := float64(clr.R) / 255 * sa
	sg := float64(clr.G) / 255 * sa
	sb := float64(clr.B) / 255 * sa

	for y := clipped.Min.Y; y < clipped.Max.Y; y++ {
		for x := clipped.Min.X; x < clipped.Max.X; x++ {
			cov := float64(s.mask.AlphaAt(x-bbox.Min.X, y-bbox.Min.Y).A) / 255
			if cov == 0 {
				continue
			}
			i := s.img.PixOffset(x, y)
			px := s.img.Pix[i : i+4 : i+4]
			a := sa * cov
			switch s.mode {
			case CompositeLighter:
				px[0] = addChannel(px[0], sr*cov)
				px[1] = addChannel(px[1], sg*cov)
				px[2] = addChannel(px[2], sb*cov)
				px[3] = addChannel(px[3], a)
			default:
				px[0] = overChannel(px[0], sr*cov, a)
				px[1] = overChannel(px[1], sg*cov, a)
				px[2] = overChannel(px[2], sb*cov, a)
				px[3] = overChannel(px[3], a, a)
			}
		}
	}
}

func reuseAlpha(m *image.Alpha, w, h int) *image.Alpha {
	n := w * h
	if m == nil || cap(m.Pix) < n {
		return image.NewAlpha(image.Rect(0, 0, w, h))
	}
	m.Pix = m.Pix[:n]
	m.Stride = w
	m.Rect = image.Rect(0, 0, w, h)
	return m
}

// overChannel 预乘 source-over：dst = src + dst*(1-srcAlpha)
func overChannel(dst uint8, src, srcAlpha float64) uint8 {
	v := src + float64(dst)/255*(1-srcAlpha)
	return toByte(v)
}

// addChannel 加色混合：dst = min(1, dst+src)
func addChannel(dst uint8, src float64) uint8 {
	return toByte(float64(dst)/255 + src)
}

func toByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
