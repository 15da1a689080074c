package game

import "github.com/decker502/cursorfx/pkg/render"

// FrameCallback 帧回调；nowMs 为宿主提供的单调时间戳（毫秒）
type FrameCallback func(nowMs float64)

// FrameID 已请求帧的句柄，0 为无效值
type FrameID uint64

// FrameScheduler 帧调度（语义同 requestAnimationFrame / cancelAnimationFrame）
//
// 回调在宿主的事件循环 goroutine 上执行，每次请求只执行一次。
type FrameScheduler interface {
	RequestFrame(cb FrameCallback) FrameID
	CancelFrame(id FrameID)
}

// ViewportListener 视口事件监听者
type ViewportListener interface {
	// OnResize 视口尺寸变化
	OnResize(width, height int)
	// OnPointerMove 指针移动，坐标为视口坐标
	OnPointerMove(x, y float64)
	// OnPointerLeave 指针离开视口（或窗口失去焦点）
	OnPointerLeave()
}

// ListenerID 已注册监听者的句柄，0 为无效值
type ListenerID uint64

// Host 页面外壳：提供视口尺寸、绘制表面、事件和帧调度
//
// 所有事件和帧回调都在同一个 goroutine 上分发。
type Host interface {
	FrameScheduler

	// ViewportSize 返回当前视口像素尺寸
	ViewportSize() (width, height int)

	// AcquireSurface 获取全视口绘制表面；环境不支持时返回错误
	AcquireSurface() (render.Surface, error)

	AddListener(l ViewportListener) ListenerID
	RemoveListener(id ListenerID)
}

// Listeners 监听者注册表，供各宿主实现复用
//
// 分发期间增删监听者是安全的：分发使用开始时的快照，
// 但已被移除的监听者不会再收到后续事件。
type Listeners struct {
	nextID  ListenerID
	entries []listenerEntry
}

type listenerEntry struct {
	id ListenerID
	l  ViewportListener
}

// Add 注册监听者
func (ls *Listeners) Add(l ViewportListener) ListenerID {
	ls.nextID++
	ls.entries = append(ls.entries, listenerEntry{id: ls.nextID, l: l})
	return ls.nextID
}

// Remove 注销监听者，未知 id 忽略
func (ls *Listeners) Remove(id ListenerID) {
	for i, e := range ls.entries {
		if e.id == id {
			ls.entries = append(ls.entries[:i:i], ls.entries[i+1:]...)
			return
		}
	}
}

// Len 返回已注册监听者数量
func (ls *Listeners) Len() int {
	return len(ls.entries)
}

// DispatchResize 分发尺寸变化
func (ls *Listeners) DispatchResize(width, height int) {
	ls.each(func(l ViewportListener) { l.OnResize(width, height) })
}

// DispatchMove 分发指针移动
func (ls *Listeners) DispatchMove(x, y float64) {
	ls.each(func(l ViewportListener) { l.OnPointerMove(x, y) })
}

// DispatchLeave 分发指针离开
func (ls *Listeners) DispatchLeave() {
	ls.each(func(l ViewportListener) { l.OnPointerLeave() })
}

func (ls *Listeners) each(fn func(ViewportListener)) {
	snapshot := ls.entries
	for _, e := range snapshot {
		if ls.contains(e.id) {
			fn(e.l)
		}
	}
}

func (ls *Listeners) contains(id ListenerID) bool {
	for _, e := range ls.entries {
		if e.id == id {
			return true
		}
	}
	return false
}
