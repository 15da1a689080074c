package game

import (
	"errors"

	"github.com/decker502/cursorfx/pkg/render"
)

// HeadlessFrameInterval 无窗口宿主的帧间隔（毫秒），对应 60 FPS
const HeadlessFrameInterval = 1000.0 / 60.0

// ErrSurfaceUnavailable 宿主无法提供绘制表面
var ErrSurfaceUnavailable = errors.New("drawing surface unavailable")

// HeadlessHost 无窗口宿主
//
// 用离屏 ImageSurface 作为绘制表面，帧由调用方通过 Step / Advance 手动推进。
// 用于测试和离线渲染帧序列。
type HeadlessHost struct {
	FrameQueue

	listeners Listeners

	width  int
	height int
	nowMs  float64

	surface *render.ImageSurface

	// FailSurface 为 true 时 AcquireSurface 返回错误，模拟不支持绘制的环境
	FailSurface bool
}

// NewHeadlessHost 创建指定视口尺寸的无窗口宿主
func NewHeadlessHost(width, height int) *HeadlessHost {
	return &HeadlessHost{width: width, height: height}
}

// ViewportSize 返回视口尺寸
func (h *HeadlessHost) ViewportSize() (int, int) {
	return h.width, h.height
}

// AcquireSurface 返回离屏表面（首次调用时创建）
func (h *HeadlessHost) AcquireSurface() (render.Surface, error) {
	if h.FailSurface {
		return nil, ErrSurfaceUnavailable
	}
	if h.surface == nil {
		h.surface = render.NewImageSurface(h.width, h.height)
	}
	return h.surface, nil
}

// Surface 返回已创建的离屏表面，未获取过时为 nil
func (h *HeadlessHost) Surface() *render.ImageSurface {
	return h.surface
}

// AddListener 注册视口事件监听者
func (h *HeadlessHost) AddListener(l ViewportListener) ListenerID {
	return h.listeners.Add(l)
}

// RemoveListener 注销视口事件监听者
func (h *HeadlessHost) RemoveListener(id ListenerID) {
	h.listeners.Remove(id)
}

// ListenerCount 返回已注册的监听者数量
func (h *HeadlessHost) ListenerCount() int {
	return h.listeners.Len()
}

// Now 返回当前模拟时间（毫秒）
func (h *HeadlessHost) Now() float64 {
	return h.nowMs
}

// Resize 改变视口尺寸并分发 resize 事件
func (h *HeadlessHost) Resize(width, height int) {
	h.width, h.height = width, height
	h.listeners.DispatchResize(width, height)
}

// MovePointer 分发指针移动事件
func (h *HeadlessHost) MovePointer(x, y float64) {
	h.listeners.DispatchMove(x, y)
}

// LeavePointer 分发指针离开事件
func (h *HeadlessHost) LeavePointer() {
	h.listeners.DispatchLeave()
}

// Step 推进一帧，返回执行的帧回调数量
func (h *HeadlessHost) Step() int {
	h.nowMs += HeadlessFrameInterval
	return h.Flush(h.nowMs)
}

// Advance 连续推进 n 帧，返回执行的帧回调总数
func (h *HeadlessHost) Advance(n int) int {
	ran := 0
	for i := 0; i < n; i++ {
		ran += h.Step()
	}
	return ran
}
