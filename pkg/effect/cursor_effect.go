// Package effect 指针响应粒子特效组件
//
// CursorEffect 把指针追踪、粒子池、模拟、渲染和动画驱动组装在一起，
// 通过 game.Host 挂载到任意宿主（ebiten 窗口、终端或无窗口宿主）。
package effect

import (
	"log"
	"math/rand"
	"time"

	"github.com/decker502/cursorfx/pkg/components"
	"github.com/decker502/cursorfx/pkg/config"
	"github.com/decker502/cursorfx/pkg/game"
	"github.com/decker502/cursorfx/pkg/render"
	"github.com/decker502/cursorfx/pkg/systems"
)

// Option 构造选项
type Option func(*CursorEffect)

// WithSeed 使用固定随机种子（测试和离线渲染用）
func WithSeed(seed int64) Option {
	return func(e *CursorEffect) {
		e.seed = seed
		e.seeded = true
	}
}

// Stats 运行统计，用于调试 HUD 和测试
type Stats struct {
	Mounted   bool
	NoOp      bool
	Frames    uint64
	Particles int
	Drawn     int
	Sparks    int
	Resets    int
	MeanAlpha float64
}

// CursorEffect 指针响应粒子特效
//
// 所有方法都必须在宿主的事件循环 goroutine 上调用。
type CursorEffect struct {
	cfg *config.EffectConfig

	seed   int64
	seeded bool

	host     game.Host
	surface  render.Surface
	listener game.ListenerID
	mounted  bool
	noop     bool

	pointer        *systems.PointerSystem
	pool           *systems.ParticlePool
	particleSystem *systems.ParticleSystem
	sparkSystem    *systems.SparkSystem
	renderSystem   *systems.ParticleRenderSystem
	driver         *game.AnimationDriver
}

// New 创建特效；cfg 必须已通过 Validate
func New(cfg *config.EffectConfig, opts ...Option) *CursorEffect {
	e := &CursorEffect{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Mount 挂载到宿主
//
// 获取绘制表面并对齐视口尺寸，注册视口事件，初始化粒子池，启动动画驱动。
// 宿主无法提供表面时特效退化为空操作：不注册事件，不调度帧。
func (e *CursorEffect) Mount(host game.Host) {
	if e.mounted {
		log.Printf("[CursorEffect] already mounted, ignoring Mount")
		return
	}
	e.host = host
	e.mounted = true

	surface, err := host.AcquireSurface()
	if err != nil {
		e.noop = true
		log.Printf("[CursorEffect] %v, effect disabled", err)
		return
	}
	e.noop = false

	width, height := host.ViewportSize()
	surface.Resize(width, height)
	e.surface = surface

	seed := e.seed
	if !e.seeded {
		seed = time.Now().UnixNano()
	}

	e.pointer = systems.NewPointerSystem()
	e.pool = systems.NewParticlePool(e.cfg, width, height, rand.New(rand.NewSource(seed)))
	e.particleSystem = systems.NewParticleSystem(e.cfg, e.pool, e.pointer)
	if e.cfg.Sparks.Enabled {
		e.sparkSystem = systems.NewSparkSystem(e.cfg, e.pointer, rand.New(rand.NewSource(seed+1)))
	} else {
		e.sparkSystem = nil
	}
	e.renderSystem = systems.NewParticleRenderSystem(e.cfg, e.pool, e.particleSystem, e.sparkSystem)

	e.listener = host.AddListener(e)
	e.driver = game.NewAnimationDriver(host, e.frame)
	e.driver.Start()

	log.Printf("[CursorEffect] mounted: %dx%d, %d particles", width, height, e.pool.Len())
}

// Unmount 卸载
//
// 返回前同步注销事件监听并取消挂起的帧回调，之后不会再修改任何状态。
func (e *CursorEffect) Unmount() {
	if !e.mounted {
		return
	}

	if e.listener != 0 {
		e.host.RemoveListener(e.listener)
		e.listener = 0
	}
	if e.driver != nil {
		e.driver.Stop()
	}

	e.mounted = false
	e.surface = nil
	log.Printf("[CursorEffect] unmounted")
}

// Mounted 是否已挂载
func (e *CursorEffect) Mounted() bool {
	return e.mounted
}

// OnResize 视口尺寸变化：重建表面并更新粒子工作区
func (e *CursorEffect) OnResize(width, height int) {
	if !e.mounted || e.noop {
		return
	}
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	e.surface.Resize(width, height)
	e.pool.Resize(width, height)
}

// OnPointerMove 指针移动
func (e *CursorEffect) OnPointerMove(x, y float64) {
	if !e.mounted || e.noop {
		return
	}
	e.pointer.HandleMove(x, y)
}

// OnPointerLeave 指针离开视口
func (e *CursorEffect) OnPointerLeave() {
	if !e.mounted || e.noop {
		return
	}
	e.pointer.HandleLeave()
}

// Particles 返回当前粒子状态的副本
func (e *CursorEffect) Particles() []components.ParticleComponent {
	if e.pool == nil {
		return nil
	}
	src := e.pool.Particles()
	dup := make([]components.ParticleComponent, len(src))
	copy(dup, src)
	return dup
}

// Surface 返回当前绘制表面，未挂载或空操作时为 nil
func (e *CursorEffect) Surface() render.Surface {
	return e.surface
}

// DriverState 返回动画驱动状态
func (e *CursorEffect) DriverState() game.DriverState {
	if e.driver == nil {
		return game.DriverStopped
	}
	return e.driver.State()
}

// Stats 返回运行统计
func (e *CursorEffect) Stats() Stats {
	st := Stats{Mounted: e.mounted, NoOp: e.noop}
	if e.driver != nil {
		st.Frames = e.driver.Frames()
	}
	if e.pool == nil {
		return st
	}

	particles := e.pool.Particles()
	st.Particles = len(particles)
	sum := 0.0
	for i := range particles {
		sum += particles[i].Alpha
	}
	if len(particles) > 0 {
		st.MeanAlpha = sum / float64(len(particles))
	}
	st.Drawn = e.renderSystem.Drawn()
	st.Resets = e.particleSystem.Resets()
	if e.sparkSystem != nil {
		st.Sparks = e.sparkSystem.Count()
	}
	return st
}

// frame 一帧：模拟 → 火花 → 渲染
func (e *CursorEffect) frame(nowMs float64) {
	e.particleSystem.Update()
	if e.sparkSystem != nil {
		e.sparkSystem.Update()
	}
	e.renderSystem.Draw(e.surface, nowMs)
}
