// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// PointerInput 把 ebiten 的轮询式鼠标 / 触摸输入转换为"在场 / 不在场"读数
//
// 触摸优先；手指抬起视为指针离开。
type PointerInput struct {
	// TouchOnly 只使用触摸输入（移动端没有悬停，光标位置无意义）
	TouchOnly bool
	// IgnoreFocus 不检查窗口焦点（鼠标穿透的叠加窗口永远不会获得焦点）
	IgnoreFocus bool

	touchIDs []ebiten.TouchID
	touching bool
}

// Poll 返回当前帧视口内的指针位置；ok 为 false 表示指针不在场
func (in *PointerInput) Poll(width, height int) (x, y int, ok bool) {
	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	if len(in.touchIDs) > 0 {
		in.touching = true
		x, y = ebiten.TouchPosition(in.touchIDs[0])
		return x, y, true
	}

	if in.touching || in.TouchOnly {
		in.touching = false
		return 0, 0, false
	}

	if !in.IgnoreFocus && !ebiten.IsFocused() {
		return 0, 0, false
	}

	x, y = ebiten.CursorPosition()
	if !InViewport(x, y, width, height) {
		return 0, 0, false
	}
	return x, y, true
}

// InViewport 坐标是否落在 [0,width) x [0,height) 内
func InViewport(x, y, width, height int) bool {
	return x >= 0 && y >= 0 && x < width && y < height
}
