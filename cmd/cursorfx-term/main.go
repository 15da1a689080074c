// Package main runs the cursor effect inside a terminal using tcell.
//
// Usage:
//
//	go run ./cmd/cursorfx-term [flags]
//
// Flags:
//
//	--config <path>     Effect config file (default: built-in defaults)
//	--particles <n>     Override particle count
//	--scale <n>         Virtual pixels per half-cell (default 8)
//	--log <path>        Write logs to file (terminal output is owned by the effect)
//
// Controls:
//
//	Mouse move   - Attract particles
//	Esc / q      - Quit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/cursorfx/pkg/config"
	"github.com/decker502/cursorfx/pkg/effect"
	"github.com/decker502/cursorfx/pkg/terminal"
)

var (
	configPath = flag.String("config", "", "Effect config file")
	particles  = flag.Int("particles", 0, "Override particle count")
	scale      = flag.Float64("scale", terminal.DefaultScale, "Virtual pixels per half-cell")
	logPath    = flag.String("log", "", "Log file path (logging disabled when empty)")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()
	screen.Clear()

	host := terminal.NewHost(screen, *scale)
	fx := effect.New(cfg)
	fx.Mount(host)
	defer fx.Unmount()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := host.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func loadConfig() (*config.EffectConfig, error) {
	var cfg *config.EffectConfig
	if *configPath != "" {
		loaded, err := config.LoadEffectConfig(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.DefaultEffectConfig()
	}

	if *particles > 0 {
		cfg.Particles.Count = *particles
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid effect config: %w", err)
	}
	return cfg, nil
}
