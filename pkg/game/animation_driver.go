package game

import "log"

// DriverState 动画驱动状态
type DriverState int

const (
	// DriverStopped 没有挂起的帧回调（挂载前或卸载后）
	DriverStopped DriverState = iota
	// DriverRunning 有一个挂起的帧回调
	DriverRunning
)

// String 返回状态名称
func (s DriverState) String() string {
	switch s {
	case DriverRunning:
		return "running"
	default:
		return "stopped"
	}
}

// AnimationDriver 连续帧循环
//
// running 状态下每个帧回调执行一次 step（模拟 + 渲染），然后重新请求下一帧。
// Stop 同步取消挂起的回调；即使宿主仍调用了过期回调，停止后的回调也不会执行 step。
type AnimationDriver struct {
	scheduler FrameScheduler
	step      FrameCallback

	state   DriverState
	pending FrameID
	frames  uint64
}

// NewAnimationDriver 创建处于 stopped 状态的驱动
func NewAnimationDriver(scheduler FrameScheduler, step FrameCallback) *AnimationDriver {
	return &AnimationDriver{
		scheduler: scheduler,
		step:      step,
		state:     DriverStopped,
	}
}

// State 返回当前状态
func (d *AnimationDriver) State() DriverState {
	return d.state
}

// Frames 返回已执行的帧数
func (d *AnimationDriver) Frames() uint64 {
	return d.frames
}

// Start stopped → running，请求第一帧；已在运行时忽略
func (d *AnimationDriver) Start() {
	if d.state == DriverRunning {
		return
	}
	d.state = DriverRunning
	d.pending = d.scheduler.RequestFrame(d.tick)
	log.Printf("[AnimationDriver] started")
}

// Stop running → stopped，取消挂起的帧回调
func (d *AnimationDriver) Stop() {
	if d.state == DriverStopped {
		return
	}
	d.state = DriverStopped
	if d.pending != 0 {
		d.scheduler.CancelFrame(d.pending)
		d.pending = 0
	}
	log.Printf("[AnimationDriver] stopped after %d frames", d.frames)
}

func (d *AnimationDriver) tick(nowMs float64) {
	d.pending = 0
	if d.state != DriverRunning {
		return
	}

	d.frames++
	d.step(nowMs)

	// step 内部可能调用了 Stop
	if d.state == DriverRunning {
		d.pending = d.scheduler.RequestFrame(d.tick)
	}
}
