// Package render 提供全视口绘制表面的抽象及其实现
//
// 表面的像素尺寸始终等于视口尺寸。每次 Resize 都会丢弃原有像素内容，
// 并把合成模式恢复为默认值（source-over），因此绘制方必须每帧重新设置合成模式。
package render

import "image/color"

// CompositeMode 合成模式
type CompositeMode int

const (
	// CompositeSourceOver 普通 alpha 混合（默认）
	CompositeSourceOver CompositeMode = iota
	// CompositeLighter 加色混合
	CompositeLighter
)

// ParseCompositeMode 把配置中的名称转换为 CompositeMode，未知名称返回默认值
func ParseCompositeMode(name string) CompositeMode {
	switch name {
	case "lighter":
		return CompositeLighter
	default:
		return CompositeSourceOver
	}
}

// Surface 全视口绘制表面
//
// 所有坐标为视口像素坐标，颜色使用非预乘 alpha。
type Surface interface {
	// Size 返回当前像素尺寸
	Size() (width, height int)

	// Resize 重建表面；原有内容丢弃，合成模式恢复默认
	Resize(width, height int)

	// Clear 清空为全透明
	Clear()

	// SetCompositeMode 设置后续绘制使用的合成模式
	SetCompositeMode(mode CompositeMode)

	// StrokeLine 绘制圆头线段
	StrokeLine(x0, y0, x1, y1, width float64, clr color.NRGBA)

	// FillCircle 绘制实心圆
	FillCircle(cx, cy, radius float64, clr color.NRGBA)
}
