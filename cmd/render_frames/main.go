// cmd/render_frames/main.go
// 离线渲染帧序列 - 在无窗口宿主上运行特效，按固定指针轨迹输出 PNG
//
// 用法：
//
//	go run ./cmd/render_frames --out frames --frames 240 --every 4 --path circle
//
// 轨迹：
//
//	circle  指针绕画面中心做圆周运动
//	sweep   指针从左到右扫过画面中线
//	still   指针停在画面中心
//	none    没有指针（观察淡出）
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/decker502/cursorfx/pkg/config"
	"github.com/decker502/cursorfx/pkg/effect"
	"github.com/decker502/cursorfx/pkg/game"
)

var (
	outDir     = flag.String("out", "frames", "Output directory")
	frameCount = flag.Int("frames", 240, "Number of frames to simulate")
	every      = flag.Int("every", 4, "Save every N-th frame")
	width      = flag.Int("width", 800, "Viewport width")
	height     = flag.Int("height", 600, "Viewport height")
	seed       = flag.Int64("seed", 1, "Random seed")
	pathName   = flag.String("path", "circle", "Pointer path: circle, sweep, still, none")
	configPath = flag.String("config", "", "Effect config file (default: built-in defaults)")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if *every <= 0 {
		return fmt.Errorf("--every must be positive, got %d", *every)
	}

	pointerAt, err := pointerPath(*pathName, float64(*width), float64(*height))
	if err != nil {
		return err
	}

	cfg := config.DefaultEffectConfig()
	if *configPath != "" {
		if cfg, err = config.LoadEffectConfig(*configPath); err != nil {
			return err
		}
	} else if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	host := game.NewHeadlessHost(*width, *height)
	fx := effect.New(cfg, effect.WithSeed(*seed))
	fx.Mount(host)
	defer fx.Unmount()

	// 模拟必须串行；PNG 编码并行
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	saved := 0
	for frame := 0; frame < *frameCount; frame++ {
		if x, y, ok := pointerAt(frame, *frameCount); ok {
			host.MovePointer(x, y)
		} else if frame == 0 {
			host.LeavePointer()
		}
		host.Step()

		if frame%*every != 0 {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		img := host.Surface().Snapshot()
		name := filepath.Join(*outDir, fmt.Sprintf("frame_%04d.png", frame))
		g.Go(func() error {
			return writePNG(name, img)
		})
		saved++
	}

	if err := g.Wait(); err != nil {
		return err
	}

	st := fx.Stats()
	fmt.Printf("✓ rendered %d frames, saved %d to %s (drawn=%d sparks=%d resets=%d)\n",
		st.Frames, saved, *outDir, st.Drawn, st.Sparks, st.Resets)
	return nil
}

// pointerPath 返回第 frame 帧的指针位置；ok 为 false 表示指针不在场
func pointerPath(name string, w, h float64) (func(frame, total int) (float64, float64, bool), error) {
	cx, cy := w/2, h/2
	switch name {
	case "circle":
		r := math.Min(w, h) * 0.3
		return func(frame, total int) (float64, float64, bool) {
			a := 2 * math.Pi * float64(frame) / float64(max(total, 1))
			return cx + math.Cos(a)*r, cy + math.Sin(a)*r, true
		}, nil
	case "sweep":
		return func(frame, total int) (float64, float64, bool) {
			t := float64(frame) / float64(max(total-1, 1))
			return w * t, cy, true
		}, nil
	case "still":
		return func(int, int) (float64, float64, bool) {
			return cx, cy, true
		}, nil
	case "none":
		return func(int, int) (float64, float64, bool) {
			return 0, 0, false
		}, nil
	default:
		return nil, fmt.Errorf("unknown pointer path %q", name)
	}
}

func writePNG(name string, img image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return f.Close()
}
