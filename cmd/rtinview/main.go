// rtinview is an interactive viewer for RTIN terrain meshes.
//
// Usage:
//
//	rtinview [flags] <heightmap>
//
// Keys: +/- change the error threshold, W toggles wireframe, R resets the
// camera, P saves a screenshot, Esc quits. Drag to orbit, scroll to zoom.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/rtin-terrain/internal/config"
	"github.com/Faultbox/rtin-terrain/internal/engine/camera"
	"github.com/Faultbox/rtin-terrain/internal/engine/debug"
	"github.com/Faultbox/rtin-terrain/internal/engine/input"
	"github.com/Faultbox/rtin-terrain/internal/engine/lighting"
	"github.com/Faultbox/rtin-terrain/internal/engine/scene"
	"github.com/Faultbox/rtin-terrain/internal/engine/window"
	"github.com/Faultbox/rtin-terrain/internal/logger"
	"github.com/Faultbox/rtin-terrain/internal/terrain"
)

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	flag.Parse()
	if flag.NArg() > 0 {
		flags.Heightmap = flag.Arg(0)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	opts := logger.Options{Level: cfg.Logging.Level, Console: true}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.DefaultFileOptions(cfg.Logging.LogFile)
	}
	if err := logger.Init(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Terrain.Heightmap == "" {
		fmt.Fprintln(os.Stderr, "Usage: rtinview [flags] <heightmap>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		logger.Error("viewer failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	src, err := terrain.Open(cfg.Terrain.Heightmap)
	if err != nil {
		return err
	}
	stats := src.Stats()
	logger.Info("heightmap loaded",
		zap.String("path", cfg.Terrain.Heightmap),
		zap.Uint32("side", stats.Side),
		zap.Uint32("triangles", stats.TriangleCount),
		zap.Float32("maxError", stats.MaxError))

	win, err := window.New(window.Config{
		Title:      "rtinview",
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	sc, err := scene.New(win.DrawableSize())
	if err != nil {
		return err
	}
	defer sc.Destroy()
	logger.Info("OpenGL initialized", zap.String("version", scene.GLVersion()))
	sc.SetSun(lighting.Sun{
		Azimuth:   cfg.Viewer.SunAzimuth,
		Elevation: cfg.Viewer.SunElevation,
		Ambient:   cfg.Viewer.Ambient,
	})

	v := &viewer{
		src:    src,
		win:    win,
		scene:  sc,
		cam:    camera.NewOrbitCamera(cfg.Viewer.FOV),
		input:  input.New(),
		shots:  debug.NewScreenshots(".", "rtin"),
		params: terrain.ParamsFromConfig(cfg.Terrain),
		state: newViewState(filepath.Base(cfg.Terrain.Heightmap),
			cfg.Terrain.ErrorThreshold, cfg.Viewer.ThresholdStep, cfg.Terrain.Wireframe),
	}

	if err := v.rebuild(); err != nil {
		return err
	}
	v.cam.FitToBounds(sc.Bounds)

	return v.loop()
}

type viewer struct {
	src    *terrain.Source
	win    *window.Window
	scene  *scene.Scene
	cam    *camera.OrbitCamera
	input  *input.Input
	shots  *debug.Screenshots
	params terrain.Params
	state  *viewState
}

func (v *viewer) loop() error {
	for {
		for _, ev := range v.input.Poll() {
			if quit := v.handle(ev); quit {
				return nil
			}
		}

		if v.state.dirty {
			if err := v.rebuild(); err != nil {
				return err
			}
		}

		v.scene.Render(v.cam)
		v.win.SwapBuffers()
	}
}

func (v *viewer) handle(ev input.Event) bool {
	switch ev.Action {
	case input.ActionQuit:
		return true
	case input.ActionResize:
		v.scene.Resize(v.win.DrawableSize())
	case input.ActionDrag:
		v.cam.HandleDrag(ev.DX, ev.DY)
	case input.ActionZoom:
		v.cam.HandleZoom(ev.DY)
	case input.ActionCoarsen:
		v.state.coarsen()
	case input.ActionRefine:
		v.state.refine()
	case input.ActionToggleWireframe:
		v.state.toggleWireframe()
	case input.ActionResetCamera:
		v.cam.Reset()
	case input.ActionScreenshot:
		v.screenshot()
	}
	return false
}

// rebuild selects and uploads a new mesh for the current threshold.
func (v *viewer) rebuild() error {
	start := time.Now()

	v.params.ErrorThreshold = v.state.threshold
	v.params.Wireframe = v.state.wireframe

	mesh, err := v.src.Build(context.Background(), v.params)
	if err != nil {
		return fmt.Errorf("building mesh: %w", err)
	}
	v.scene.SetMesh(mesh)

	v.state.triangles = mesh.Triangles
	v.state.dirty = false
	v.win.SetTitle(v.state.title())

	logger.Timed("rebuild", start,
		zap.Float32("threshold", v.state.threshold),
		zap.Int("triangles", mesh.Triangles),
		zap.Int("vertices", len(mesh.Vertices)))
	return nil
}

func (v *viewer) screenshot() {
	pixels, w, h := v.scene.ReadPixels()
	path, err := v.shots.SavePixels(pixels, w, h, v.state.threshold)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}
