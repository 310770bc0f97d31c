package main

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-surface/common"
	"github.com/Carmen-Shannon/oxy-surface/engine"
	"github.com/Carmen-Shannon/oxy-surface/engine/camera"
	"github.com/Carmen-Shannon/oxy-surface/engine/config"
	"github.com/Carmen-Shannon/oxy-surface/engine/light"
	"github.com/Carmen-Shannon/oxy-surface/engine/renderer"
	"github.com/Carmen-Shannon/oxy-surface/engine/scene"
	"github.com/Carmen-Shannon/oxy-surface/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"
)

const viewHelp = `Opens the interactive viewer.

  Up / Down      one more / one fewer ring
  Right / Left   one more / one fewer slice
  T              toggle sphere and torus
  G / Enter      regenerate
  P              pause the orbit
  Space          toggle vsync
  Scroll         zoom
  Escape         quit`

func newViewCommand(c *cli) *cobra.Command {
	var flags surfaceFlags
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the interactive viewer",
		Long:  viewHelp,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := c.cfg
			p := flags.params(cmd, cfg.Params())
			cfg.Surface.Kind, cfg.Surface.Rings, cfg.Surface.Slices = p.Kind, p.Rings, p.Slices
			return runViewer(cfg)
		},
	}
	flags.register(cmd)
	return cmd
}

// runViewer opens the window, renderer, scene and engine described by cfg and blocks
// until the window closes. It must run on the main goroutine.
func runViewer(cfg config.Config) (err error) {
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, win.Close())
	}()

	msaa, err := renderer.ParseMSAA(cfg.Render.MSAA)
	if err != nil {
		return err
	}
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(cfg.Render.PresentMode),
		renderer.WithMSAA(msaa),
		renderer.WithForceSoftwareRenderer(cfg.Render.Software),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer r.Release()

	cam := camera.NewCamera(
		camera.WithFov(cfg.FovRadians()),
		camera.WithAspect(float32(cfg.Window.Width)/float32(cfg.Window.Height)),
		camera.WithNear(cfg.Camera.Near),
		camera.WithFar(cfg.Camera.Far),
		camera.WithController(camera.NewOrbitController(
			camera.WithRadius(cfg.Camera.Radius),
			camera.WithHeight(cfg.Camera.Height),
			camera.WithOrbitSpeed(cfg.Camera.OrbitSpeed),
			camera.WithRadiusLimits(min(1.5, cfg.Camera.Radius), max(50, cfg.Camera.Radius)),
		)),
	)

	pos := cfg.Light.Position
	s, err := scene.NewScene(
		scene.WithParams(cfg.Params()),
		scene.WithCamera(cam),
		scene.WithLight(light.NewLight(light.WithPosition(pos[0], pos[1], pos[2]))),
		scene.WithObjectColor(mgl32.Vec3(cfg.Surface.Color)),
		scene.WithRenderer(r),
	)
	if err != nil {
		return fmt.Errorf("create scene: %w", err)
	}

	eng := engine.NewEngine(s,
		engine.WithWindow(win),
		engine.WithProfiling(cfg.Render.Profiling),
		engine.WithTickRate(cfg.Render.TickRate),
		engine.WithRenderFrameLimit(cfg.Render.FrameLimit),
	)

	common.Logger().Info("viewer started",
		"surface", s.Params(), "present_mode", r.PresentMode(), "msaa", int(r.MSAA()))
	eng.Run()
	common.Logger().Info("viewer closed")
	return nil
}
