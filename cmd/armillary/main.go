// Package main runs the armillary landing scene in an SDL2 window.
package main

import (
	"fmt"
	"os"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/armillary/internal/assets"
	"github.com/Faultbox/armillary/internal/config"
	"github.com/Faultbox/armillary/internal/engine/audio"
	"github.com/Faultbox/armillary/internal/engine/debug"
	"github.com/Faultbox/armillary/internal/engine/input"
	"github.com/Faultbox/armillary/internal/engine/renderer"
	"github.com/Faultbox/armillary/internal/engine/ui2d"
	"github.com/Faultbox/armillary/internal/engine/window"
	"github.com/Faultbox/armillary/internal/landing"
	"github.com/Faultbox/armillary/internal/logger"
)

const (
	// maxFrameTime caps dt after stalls such as window drags.
	maxFrameTime  = 0.25
	loaderWorkers = 4
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if path, err := config.WriteRequested(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	} else if path != "" {
		fmt.Printf("Config written to %s\n", path)
		return
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		logger.Error("fatal", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func run(cfg *config.Config) error {
	logger.Info("=== Armillary ===")

	win, err := window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	}, logger.Named("window"))
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Close()

	rend, err := renderer.New(logger.Named("renderer"))
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer rend.Close()

	dw, dh := win.DrawableSize()
	composer, err := renderer.NewComposer(rend, dw, dh, renderer.OutlineSettings{
		Color:     cfg.Outline.Color,
		Thickness: cfg.Outline.Thickness,
		Strength:  cfg.Outline.Strength,
	})
	if err != nil {
		return fmt.Errorf("create composer: %w", err)
	}
	defer composer.Close()

	ui, err := ui2d.NewContext(dw, dh)
	if err != nil {
		return fmt.Errorf("create ui: %w", err)
	}
	defer ui.Close()

	am := assets.NewManager()
	am.AddSource(os.DirFS(cfg.Assets.Root))
	defer am.Close()
	loader := assets.NewLoader(am, loaderWorkers, logger.Named("assets"))

	opts := landing.Options{
		Config:  cfg,
		Loader:  loader,
		Surface: composer,
		UI:      ui,
		Logger:  logger.Named("landing"),
	}

	if cfg.Audio.Enabled {
		sfx := audio.New(logger.Named("audio"))
		if err := sfx.Init(); err != nil {
			logger.Warn("audio disabled", zap.Error(err))
		} else {
			sfx.SetVolume(cfg.Audio.Volume)
			defer sfx.Close()
			opts.Cues = sfx
		}
	}

	app, err := landing.New(opts)
	if err != nil {
		return fmt.Errorf("create landing: %w", err)
	}
	defer app.Close()

	ww, wh := win.Size()
	app.Resize(ww, wh)
	if ww > 0 {
		app.SetPixelRatio(float32(dw) / float32(ww))
	}

	shots := debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "armillary")
	in := input.New()
	last := window.Ticks()

	for {
		if in.Update() {
			break
		}
		for _, e := range in.Events() {
			dispatch(app, win, e)
		}

		now := window.Ticks()
		dt := now - last
		last = now
		if dt > maxFrameTime {
			dt = maxFrameTime
		}

		app.Frame(float32(dt))
		app.Render()
		if in.IsKeyPressed(sdl.SCANCODE_F12) {
			pixels, w, h := composer.ReadPixels()
			if path, err := shots.CaptureFromPixels(pixels, w, h); err != nil {
				logger.Warn("screenshot failed", zap.Error(err))
			} else {
				logger.Info("screenshot saved", zap.String("path", path))
			}
		}
		win.SwapBuffers()
	}

	logger.Info("shutting down")
	return nil
}

func dispatch(app *landing.App, win *window.Window, e input.Event) {
	switch e.Type {
	case input.EventWindowResize:
		// Event sizes are window units; the drawable may be larger on HiDPI.
		ww, wh := win.Size()
		dw, _ := win.DrawableSize()
		app.Resize(ww, wh)
		if ww > 0 {
			app.SetPixelRatio(float32(dw) / float32(ww))
		}
	case input.EventMouseMove:
		app.PointerMove(e.MouseX, e.MouseY, e.DeltaX, e.DeltaY)
	case input.EventMouseDown:
		app.PointerDown(e.MouseX, e.MouseY, e.Button)
	case input.EventMouseUp:
		app.PointerUp(e.MouseX, e.MouseY, e.Button)
	case input.EventMouseWheel:
		app.Wheel(e.Wheel)
	case input.EventKeyDown:
		if e.Key == sdl.SCANCODE_ESCAPE {
			app.Escape()
		}
	}
}
