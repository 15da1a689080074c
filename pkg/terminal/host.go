// Package terminal 提供基于 tcell 的终端宿主
//
// 鼠标移动事件驱动指针追踪，终端失去焦点视为指针离开，
// 帧回调由固定间隔的 ticker 驱动。
package terminal

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/cursorfx/pkg/game"
	"github.com/decker502/cursorfx/pkg/render"
)

// DefaultScale 每个半格像素对应的虚拟像素数
const DefaultScale = 8.0

// ErrNoColor 终端不支持颜色
var ErrNoColor = errors.New("terminal does not support color")

// Host 终端宿主，实现 game.Host
//
// 所有事件和帧回调都在 Run 的 goroutine 上分发；
// PollEvent 在独立 goroutine 中阻塞读取，通过 channel 转交。
type Host struct {
	screen   tcell.Screen
	scale    float64
	interval time.Duration

	frames    game.FrameQueue
	listeners game.Listeners
	surface   *CellSurface

	cols, rows int
	start      time.Time
}

// NewHost 创建宿主；screen 必须已经 Init
func NewHost(screen tcell.Screen, scale float64) *Host {
	if scale <= 0 {
		scale = DefaultScale
	}
	cols, rows := screen.Size()
	return &Host{
		screen:   screen,
		scale:    scale,
		interval: 16 * time.Millisecond, // ~60 FPS
		cols:     cols,
		rows:     rows,
		start:    time.Now(),
	}
}

// ViewportSize 返回虚拟像素尺寸（每个字符格为 1x2 个半格像素）
func (h *Host) ViewportSize() (int, int) {
	return int(float64(h.cols) * h.scale), int(float64(h.rows*2) * h.scale)
}

// AcquireSurface 返回字符格表面；单色终端返回 ErrNoColor
func (h *Host) AcquireSurface() (render.Surface, error) {
	if h.screen.Colors() < 8 {
		return nil, ErrNoColor
	}
	if h.surface == nil {
		w, ht := h.ViewportSize()
		h.surface = NewCellSurface(w, ht, h.scale)
	}
	return h.surface, nil
}

// AddListener 注册视口事件监听者
func (h *Host) AddListener(l game.ViewportListener) game.ListenerID {
	return h.listeners.Add(l)
}

// RemoveListener 注销视口事件监听者
func (h *Host) RemoveListener(id game.ListenerID) {
	h.listeners.Remove(id)
}

// RequestFrame 请求在下一个 tick 执行回调
func (h *Host) RequestFrame(cb game.FrameCallback) game.FrameID {
	return h.frames.RequestFrame(cb)
}

// CancelFrame 取消挂起的帧回调
func (h *Host) CancelFrame(id game.FrameID) {
	h.frames.CancelFrame(id)
}

// Run 运行事件循环，直到 ctx 取消或按下 Esc / q / Ctrl+C
func (h *Host) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			if quit := h.handleEvent(ev); quit {
				log.Printf("[TerminalHost] quit requested")
				return nil
			}

		case <-ticker.C:
			h.frame()
		}
	}
}

// handleEvent 把 tcell 事件转换为视口事件；返回 true 表示退出
func (h *Host) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return true
			}
		}

	case *tcell.EventResize:
		h.screen.Sync()
		h.cols, h.rows = ev.Size()
		w, ht := h.ViewportSize()
		log.Printf("[TerminalHost] resized to %dx%d cells", h.cols, h.rows)
		h.listeners.DispatchResize(w, ht)

	case *tcell.EventMouse:
		x, y := ev.Position()
		h.listeners.DispatchMove(h.cellToViewport(x, y))

	case *tcell.EventFocus:
		if !ev.Focused {
			h.listeners.DispatchLeave()
		}
	}
	return false
}

// cellToViewport 字符格坐标转换为虚拟像素坐标（取字符格中心）
func (h *Host) cellToViewport(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * h.scale, (float64(row)*2 + 1) * h.scale
}

func (h *Host) frame() {
	nowMs := float64(time.Since(h.start)) / float64(time.Millisecond)
	if h.frames.Flush(nowMs) == 0 || h.surface == nil {
		return
	}
	h.surface.Flush(h.screen)
	h.screen.Show()
}
