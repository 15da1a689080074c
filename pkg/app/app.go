// Package app 提供 ebiten 窗口宿主
//
// 该包把特效挂载逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/cursorfx/pkg/config"
	"github.com/decker502/cursorfx/pkg/effect"
	"github.com/decker502/cursorfx/pkg/game"
	"github.com/decker502/cursorfx/pkg/render"
	"github.com/decker502/cursorfx/pkg/utils"
)

// backgroundColor 非叠加模式下的页面背景
var backgroundColor = color.RGBA{R: 0x0b, G: 0x11, B: 0x20, A: 0xff}

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Overlay 透明、鼠标穿透、置顶的叠加窗口，不绘制背景
	Overlay bool
	// Debug 显示调试信息（FPS、粒子数量等）
	Debug bool
	// TouchOnly 只使用触摸输入（移动端）
	TouchOnly bool
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// Effect 已验证的特效配置
	Effect *config.EffectConfig
}

// App 是 ebiten 窗口宿主，实现 ebiten.Game 和 game.Host 接口
//
// ebiten 的 Update / Draw / Layout 都在同一个 goroutine 上调用，
// 视口事件和帧回调统一在 Update 中分发。
type App struct {
	cfg Config

	frames    game.FrameQueue
	listeners game.Listeners
	effect    *effect.CursorEffect
	surface   *render.EbitenSurface

	width, height             int // 已分发给监听者的视口尺寸
	layoutWidth, layoutHeight int // 最近一次 Layout 报告的尺寸

	input         utils.PointerInput
	pointerInside bool
	lastX, lastY  int

	start time.Time

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建窗口宿主，特效在第一次 Update 时挂载
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	if cfg.Effect == nil {
		return nil, errors.New("effect config is required")
	}

	var opts []effect.Option
	if cfg.Seed != 0 {
		opts = append(opts, effect.WithSeed(cfg.Seed))
	}

	log.Printf("[App] created: overlay=%v debug=%v particles=%d", cfg.Overlay, cfg.Debug, cfg.Effect.Particles.Count)

	a := &App{
		cfg:    cfg,
		effect: effect.New(cfg.Effect, opts...),
		start:  time.Now(),
	}
	a.input.TouchOnly = cfg.TouchOnly
	// 叠加窗口鼠标穿透，永远不会获得焦点
	a.input.IgnoreFocus = cfg.Overlay

	return a, nil
}

// ViewportSize 返回当前视口尺寸
func (a *App) ViewportSize() (int, int) {
	return a.width, a.height
}

// AcquireSurface 返回离屏 ebiten 表面
func (a *App) AcquireSurface() (render.Surface, error) {
	if a.surface == nil {
		a.surface = render.NewEbitenSurface(a.width, a.height)
	}
	return a.surface, nil
}

// AddListener 注册视口事件监听者
func (a *App) AddListener(l game.ViewportListener) game.ListenerID {
	return a.listeners.Add(l)
}

// RemoveListener 注销视口事件监听者
func (a *App) RemoveListener(id game.ListenerID) {
	a.listeners.Remove(id)
}

// RequestFrame 请求在下一次 Update 时执行回调
func (a *App) RequestFrame(cb game.FrameCallback) game.FrameID {
	return a.frames.RequestFrame(cb)
}

// CancelFrame 取消挂起的帧回调
func (a *App) CancelFrame(id game.FrameID) {
	a.frames.CancelFrame(id)
}

// Update 分发视口事件并执行帧回调
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	a.handleFullscreen()

	if a.layoutWidth <= 0 || a.layoutHeight <= 0 {
		return nil
	}

	if !a.effect.Mounted() {
		a.width, a.height = a.layoutWidth, a.layoutHeight
		a.effect.Mount(a)
	} else if a.layoutWidth != a.width || a.layoutHeight != a.height {
		a.width, a.height = a.layoutWidth, a.layoutHeight
		log.Printf("[App] viewport resized to %dx%d", a.width, a.height)
		a.listeners.DispatchResize(a.width, a.height)
	}

	a.pollPointer()

	nowMs := float64(time.Since(a.start)) / float64(time.Millisecond)
	a.frames.Flush(nowMs)
	return nil
}

// handleFullscreen F11 切换全屏
func (a *App) handleFullscreen() {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			w := a.cfg.Effect.Window
			ebiten.SetWindowSize(w.Width, w.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", w.Width, w.Height)
			a.pendingWindowSizeReset = false
		}
	}

	if a.cfg.Overlay || !inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		return
	}

	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}
}

// pollPointer 把轮询到的指针读数转换为移动 / 离开事件
func (a *App) pollPointer() {
	x, y, ok := a.input.Poll(a.width, a.height)
	if !ok {
		if a.pointerInside {
			a.pointerInside = false
			a.listeners.DispatchLeave()
		}
		return
	}

	if a.pointerInside && x == a.lastX && y == a.lastY {
		return
	}
	a.pointerInside = true
	a.lastX, a.lastY = x, y
	a.listeners.DispatchMove(float64(x), float64(y))
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	if !a.cfg.Overlay {
		screen.Fill(backgroundColor)
	}

	if a.surface != nil {
		if img := a.surface.Image(); img != nil {
			screen.DrawImage(img, nil)
		}
	}

	if a.cfg.Debug {
		st := a.effect.Stats()
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
			"FPS: %0.1f  TPS: %0.1f\nparticles: %d  drawn: %d\nsparks: %d  resets: %d\nmean alpha: %.3f",
			ebiten.ActualFPS(), ebiten.ActualTPS(),
			st.Particles, st.Drawn, st.Sparks, st.Resets, st.MeanAlpha,
		), 8, 8)
	}
}

// Layout 视口尺寸等于窗口尺寸，逻辑像素与窗口像素一一对应
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.layoutWidth, a.layoutHeight = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Close 卸载特效，注销监听并取消挂起的帧
// 在 RunGame 返回后调用
func (a *App) Close() {
	a.effect.Unmount()
}

// Effect 返回挂载的特效
func (a *App) Effect() *effect.CursorEffect {
	return a.effect
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.cfg.Verbose
}
