// Package main 指针响应粒子特效的桌面入口
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--config <path>     特效配置文件（默认使用内嵌的 data/effect.yaml）
//	--particles <n>     覆盖粒子数量
//	--seed <n>          固定随机种子（0 表示随机）
//	--overlay           透明置顶窗口，鼠标事件穿透到下层窗口
//	--touch             只跟踪触摸输入（在桌面上调试移动端行为）
//	--debug             显示调试信息
//	--verbose           输出详细日志
//
// Controls:
//
//	F11      - 切换全屏（非叠加模式）
//	Escape   - 退出
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/cursorfx/pkg/app"
	"github.com/decker502/cursorfx/pkg/config"
	"github.com/decker502/cursorfx/pkg/embedded"
)

var (
	configPath = flag.String("config", "", "Effect config file (default: embedded data/effect.yaml)")
	particles  = flag.Int("particles", 0, "Override particle count")
	seed       = flag.Int64("seed", 0, "Random seed, 0 for time-based")
	overlay    = flag.Bool("overlay", false, "Transparent click-through always-on-top window")
	touch      = flag.Bool("touch", false, "Track touches only, ignore the mouse cursor")
	debug      = flag.Bool("debug", false, "Show debug HUD")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	cfg, err := loadEffectConfig(*configPath, *particles)
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}

	// 命令行开关与配置文件任一启用即生效
	useOverlay := *overlay || cfg.Window.Overlay

	gameApp, err := app.NewApp(app.Config{
		Verbose:   *verbose,
		Overlay:   useOverlay,
		Debug:     *debug || cfg.Window.Debug,
		TouchOnly: *touch,
		Seed:      *seed,
		Effect:    cfg,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "应用初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer gameApp.Close()

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	opts := &ebiten.RunGameOptions{}
	if useOverlay {
		// 叠加层：透明背景、无边框、置顶、不拦截鼠标事件
		ebiten.SetWindowDecorated(false)
		ebiten.SetWindowFloating(true)
		ebiten.SetWindowMousePassthrough(true)
		opts.ScreenTransparent = true
	}

	if err := ebiten.RunGameWithOptions(gameApp, opts); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Printf("[main] RunGame: %v", err)
		fmt.Fprintf(os.Stderr, "运行失败: %v\n", err)
		os.Exit(1)
	}
}

// loadEffectConfig 加载特效配置；count > 0 时覆盖粒子数量并重新验证
func loadEffectConfig(path string, count int) (*config.EffectConfig, error) {
	var (
		cfg *config.EffectConfig
		err error
	)
	if path != "" {
		cfg, err = config.LoadEffectConfig(path)
	} else {
		var data []byte
		data, err = embedded.ReadFile(config.DefaultEffectConfigPath)
		if err != nil {
			return nil, err
		}
		cfg, err = config.ParseEffectConfig(data)
	}
	if err != nil {
		return nil, err
	}

	if count > 0 {
		cfg.Particles.Count = count
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid particle override: %w", err)
		}
	}
	return cfg, nil
}
