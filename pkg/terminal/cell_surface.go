package terminal

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/decker502/cursorfx/pkg/render"
)

// upperHalfBlock 每个字符格显示上下两个像素：前景色为上半格，背景色为下半格
const upperHalfBlock = '▀'

// CellWriter 可写入字符格的屏幕（tcell.Screen 满足此接口）
type CellWriter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// CellSurface 终端字符格绘制表面
//
// 对外的坐标空间是虚拟像素（与窗口宿主一致，便于共用同一份特效配置），
// 内部每 scale 个虚拟像素对应一个半格像素。像素颜色用 go-colorful 混合，
// 背景为黑色，source-over 即线性插值，lighter 为相加后截断。
type CellSurface struct {
	width, height int
	scale         float64

	cols, pixelRows int
	pixels          []colorful.Color

	mode render.CompositeMode
}

// NewCellSurface 创建表面；width/height 为虚拟像素尺寸
func NewCellSurface(width, height int, scale float64) *CellSurface {
	if scale <= 0 {
		scale = 1
	}
	s := &CellSurface{scale: scale}
	s.Resize(width, height)
	return s
}

// Size 返回虚拟像素尺寸
func (s *CellSurface) Size() (int, int) {
	return s.width, s.height
}

// Resize 重建像素缓冲，原有内容丢弃，合成模式恢复为 source-over
func (s *CellSurface) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	s.width, s.height = width, height
	s.cols = int(math.Ceil(float64(width) / s.scale))
	s.pixelRows = int(math.Ceil(float64(height) / s.scale))
	s.pixels = make([]colorful.Color, s.cols*s.pixelRows)
	s.mode = render.CompositeSourceOver
}

// Clear 清空为黑色
func (s *CellSurface) Clear() {
	clear(s.pixels)
}

// SetCompositeMode 设置合成模式
func (s *CellSurface) SetCompositeMode(mode render.CompositeMode) {
	s.mode = mode
}

// CompositeMode 返回当前合成模式
func (s *CellSurface) CompositeMode() render.CompositeMode {
	return s.mode
}

// Grid 返回字符格尺寸
func (s *CellSurface) Grid() (cols, rows int) {
	return s.cols, (s.pixelRows + 1) / 2
}

// Pixel 返回半格像素颜色，越界返回黑色
func (s *CellSurface) Pixel(x, y int) colorful.Color {
	if x < 0 || y < 0 || x >= s.cols || y >= s.pixelRows {
		return colorful.Color{}
	}
	return s.pixels[y*s.cols+x]
}

// StrokeLine 绘制线段；终端分辨率下最细为一个半格像素
func (s *CellSurface) StrokeLine(x0, y0, x1, y1, width float64, clr color.NRGBA) {
	if width <= 0 || clr.A == 0 {
		return
	}
	ax, ay := x0/s.scale, y0/s.scale
	bx, by := x1/s.scale, y1/s.scale
	r := math.Max(width/2/s.scale, 0.5)

	s.stamp(math.Min(ax, bx)-r, math.Min(ay, by)-r, math.Max(ax, bx)+r, math.Max(ay, by)+r, clr,
		func(px, py float64) float64 {
			return r + 0.5 - segmentDistance(px, py, ax, ay, bx, by)
		})
}

// FillCircle 绘制实心圆
func (s *CellSurface) FillCircle(cx, cy, radius float64, clr color.NRGBA) {
	if radius <= 0 || clr.A == 0 {
		return
	}
	ox, oy := cx/s.scale, cy/s.scale
	r := math.Max(radius/s.scale, 0.5)

	s.stamp(ox-r, oy-r, ox+r, oy+r, clr, func(px, py float64) float64 {
		return r + 0.5 - math.Hypot(px-ox, py-oy)
	})
}

// stamp 对包围盒内每个像素中心计算覆盖率并混合
func (s *CellSurface) stamp(minX, minY, maxX, maxY float64, clr color.NRGBA, coverage func(px, py float64) float64) {
	x0 := max(int(math.Floor(minX)), 0)
	y0 := max(int(math.Floor(minY)), 0)
	x1 := min(int(math.Ceil(maxX)), s.cols)
	y1 := min(int(math.Ceil(maxY)), s.pixelRows)

	src := colorful.Color{R: float64(clr.R) / 255, G: float64(clr.G) / 255, B: float64(clr.B) / 255}
	alpha := float64(clr.A) / 255

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			cov := coverage(float64(x)+0.5, float64(y)+0.5)
			if cov <= 0 {
				continue
			}
			s.blend(x, y, src, alpha*math.Min(cov, 1))
		}
	}
}

func (s *CellSurface) blend(x, y int, src colorful.Color, a float64) {
	i := y*s.cols + x
	dst := s.pixels[i]
	switch s.mode {
	case render.CompositeLighter:
		s.pixels[i] = colorful.Color{R: dst.R + src.R*a, G: dst.G + src.G*a, B: dst.B + src.B*a}.Clamped()
	default:
		s.pixels[i] = dst.BlendRgb(src, a).Clamped()
	}
}

// Flush 把像素写入字符格
func (s *CellSurface) Flush(w CellWriter) {
	cols, rows := s.Grid()
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			top := s.Pixel(cx, cy*2)
			bottom := s.Pixel(cx, cy*2+1)
			if isBlack(top) && isBlack(bottom) {
				w.SetContent(cx, cy, ' ', nil, tcell.StyleDefault)
				continue
			}
			style := tcell.StyleDefault.Foreground(toTcell(top)).Background(toTcell(bottom))
			w.SetContent(cx, cy, upperHalfBlock, nil, style)
		}
	}
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func isBlack(c colorful.Color) bool {
	r, g, b := c.RGB255()
	return r == 0 && g == 0 && b == 0
}

// segmentDistance 点到线段的距离
func segmentDistance(px, py, ax, ay, bx, by float64) float64 {
	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px-ax, py-ay)
	}
	t := ((px-ax)*dx + (py-ay)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(ax+t*dx), py-(ay+t*dy))
}
