package render

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// whiteSubImage 作为三角形纹理源，顶点颜色直接决定像素颜色
var whiteSubImage *ebiten.Image

func ensureWhiteImage() {
	if whiteSubImage != nil {
		return
	}
	whiteImage := ebiten.NewImage(3, 3)
	whiteImage.Fill(color.White)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// EbitenSurface 基于离屏 ebiten.Image 的绘制表面
//
// 粒子先绘制到离屏图像，宿主在 Draw 中把它叠加到屏幕最上层。
// 线段和圆通过 vector.Path 生成三角形，再用 DrawTriangles 绘制，以便每次绘制都能指定 Blend。
type EbitenSurface struct {
	img   *ebiten.Image
	blend ebiten.Blend

	path     vector.Path
	vertices []ebiten.Vertex
	indices  []uint16
}

// NewEbitenSurface 创建指定尺寸的表面
func NewEbitenSurface(width, height int) *EbitenSurface {
	s := &EbitenSurface{}
	s.Resize(width, height)
	return s
}

// Size 返回像素尺寸
func (s *EbitenSurface) Size() (int, int) {
	if s.img == nil {
		return 0, 0
	}
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize 重建离屏图像；原有内容丢弃，合成模式恢复为 source-over
func (s *EbitenSurface) Resize(width, height int) {
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
	if width > 0 && height > 0 {
		s.img = ebiten.NewImage(width, height)
	}
	s.blend = ebiten.BlendSourceOver
}

// Clear 清空为全透明
func (s *EbitenSurface) Clear() {
	if s.img != nil {
		s.img.Clear()
	}
}

// SetCompositeMode 设置后续绘制的混合方式
func (s *EbitenSurface) SetCompositeMode(mode CompositeMode) {
	switch mode {
	case CompositeLighter:
		s.blend = ebiten.BlendLighter
	default:
		s.blend = ebiten.BlendSourceOver
	}
}

// Image 返回离屏图像，尺寸为 0 时返回 nil
func (s *EbitenSurface) Image() *ebiten.Image {
	return s.img
}

// StrokeLine 绘制圆头线段
func (s *EbitenSurface) StrokeLine(x0, y0, x1, y1, width float64, clr color.NRGBA) {
	if s.img == nil || width <= 0 || clr.A == 0 {
		return
	}

	s.path = vector.Path{}
	s.path.MoveTo(float32(x0), float32(y0))
	s.path.LineTo(float32(x1), float32(y1))

	op := &vector.StrokeOptions{
		Width:   float32(width),
		LineCap: vector.LineCapRound,
	}
	s.vertices, s.indices = s.path.AppendVerticesAndIndicesForStroke(s.vertices[:0], s.indices[:0], op)
	s.drawTriangles(clr)
}

// FillCircle 绘制实心圆
func (s *EbitenSurface) FillCircle(cx, cy, radius float64, clr color.NRGBA) {
	if s.img == nil || radius <= 0 || clr.A == 0 {
		return
	}

	s.path = vector.Path{}
	s.path.Arc(float32(cx), float32(cy), float32(radius), 0, 2*math.Pi, vector.Clockwise)
	s.path.Close()

	s.vertices, s.indices = s.path.AppendVerticesAndIndicesForFilling(s.vertices[:0], s.indices[:0])
	s.drawTriangles(clr)
}

func (s *EbitenSurface) drawTriangles(clr color.NRGBA) {
	ensureWhiteImage()

	// DrawTrianglesOptions 默认 ColorScaleModeStraightAlpha，顶点颜色为非预乘值
	r := float32(clr.R) / 255
	g := float32(clr.G) / 255
	b := float32(clr.B) / 255
	a := float32(clr.A) / 255

	for i := range s.vertices {
		s.vertices[i].SrcX = 1
		s.vertices[i].SrcY = 1
		s.vertices[i].ColorR = r
		s.vertices[i].ColorG = g
		s.vertices[i].ColorB = b
		s.vertices[i].ColorA = a
	}

	op := &ebiten.DrawTrianglesOptions{
		Blend:     s.blend,
		AntiAlias: true,
	}
	s.img.DrawTriangles(s.vertices, s.indices, whiteSubImage, op)
}
