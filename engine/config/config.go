// Package config loads and saves the viewer's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/Carmen-Shannon/oxy-surface/common"
	"github.com/Carmen-Shannon/oxy-surface/engine/geometry"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

var (
	// ErrInvalidWindow is returned for a non-positive window size.
	ErrInvalidWindow = errors.New("invalid window size")

	// ErrInvalidCamera is returned for camera settings that cannot form a projection or orbit.
	ErrInvalidCamera = errors.New("invalid camera settings")
)

// Config is the complete viewer configuration.
type Config struct {
	LogLevel slog.Level    `toml:"log_level" comment:"debug, info, warn or error"`
	Surface  SurfaceConfig `toml:"surface"`
	Window   WindowConfig  `toml:"window"`
	Camera   CameraConfig  `toml:"camera"`
	Light    LightConfig   `toml:"light"`
	Render   RenderConfig  `toml:"render"`
}

// SurfaceConfig selects the initial surface. Rings and slices are clamped to the kind's minimums.
type SurfaceConfig struct {
	Kind   geometry.Kind `toml:"kind" comment:"sphere or torus"`
	Rings  int           `toml:"rings"`
	Slices int           `toml:"slices"`
	Color  [3]float32    `toml:"color" comment:"surface albedo (r, g, b)"`
}

// WindowConfig sizes the viewer window.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// CameraConfig describes the orbiting camera.
type CameraConfig struct {
	Radius     float32 `toml:"radius"`
	Height     float32 `toml:"height"`
	OrbitSpeed float32 `toml:"orbit_speed" comment:"radians per second"`
	FovDegrees float32 `toml:"fov_degrees"`
	Near       float32 `toml:"near"`
	Far        float32 `toml:"far"`
}

// LightConfig places the point light.
type LightConfig struct {
	Position [3]float32 `toml:"position"`
}

// RenderConfig controls presentation and the render loop.
type RenderConfig struct {
	PresentMode common.PresentMode `toml:"present_mode" comment:"vsync or uncapped"`
	MSAA        int                `toml:"msaa" comment:"1 or 4"`
	Profiling   bool               `toml:"profiling"`
	TickRate    float64            `toml:"tick_rate" comment:"camera updates per second"`
	FrameLimit  float64            `toml:"frame_limit" comment:"0 leaves the render loop uncapped"`
	Software    bool               `toml:"software" comment:"force the fallback (CPU) adapter"`
}

// Default returns the configuration used when no file is present: a 16×32 sphere orbited
// at radius 5 and height 2, lit from (5, 5, 5).
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		LogLevel: slog.LevelInfo,
		Surface: SurfaceConfig{
			Kind:   geometry.KindSphere,
			Rings:  16,
			Slices: 32,
			Color:  [3]float32{0.7, 0.7, 0.9},
		},
		Window: WindowConfig{
			Title:  "oxy-surface",
			Width:  1280,
			Height: 720,
		},
		Camera: CameraConfig{
			Radius:     5,
			Height:     2,
			OrbitSpeed: 0.5,
			FovDegrees: 45,
			Near:       0.1,
			Far:        100,
		},
		Light: LightConfig{
			Position: [3]float32{5, 5, 5},
		},
		Render: RenderConfig{
			PresentMode: common.PresentModeVSync,
			MSAA:        4,
			TickRate:    60,
		},
	}
}

// Load reads the configuration at path over the defaults. A missing file yields the defaults.
//
// Parameters:
//   - path: the TOML file to read; "" means defaults only
//
// Returns:
//   - Config: the loaded configuration
//   - error: an error if the file exists but cannot be read, decoded or validated
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		common.Logger().Debug("config file not found, using defaults", "path", path)
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads a TOML document over the defaults and validates the result.
// Keys absent from the document keep their default values; unknown keys are an error.
//
// Parameters:
//   - r: the TOML document
//
// Returns:
//   - Config: the decoded configuration
//   - error: a decode error (*toml.DecodeError or *toml.StrictMissingError) or a validation error
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("decode config: %w\n%s", err, strict.String())
		}
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg as a commented TOML document.
//
// Parameters:
//   - w: the destination
//   - cfg: the configuration to encode
//
// Returns:
//   - error: an error if encoding or writing fails
func Save(w io.Writer, cfg Config) error {
	if err := toml.NewEncoder(w).SetIndentTables(true).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// Validate reports every setting the viewer cannot run with, joined into one error.
//
// Returns:
//   - error: nil, or errors matching ErrInvalidWindow, ErrInvalidCamera or common.ErrInvalidMSAA
func (c Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: %dx%d", ErrInvalidWindow, c.Window.Width, c.Window.Height))
	}

	cam := c.Camera
	switch {
	case cam.Radius <= 0:
		errs = append(errs, fmt.Errorf("%w: radius %g must be positive", ErrInvalidCamera, cam.Radius))
	case cam.FovDegrees <= 0 || cam.FovDegrees >= 180:
		errs = append(errs, fmt.Errorf("%w: fov %g must lie in (0, 180)", ErrInvalidCamera, cam.FovDegrees))
	case cam.Near <= 0 || cam.Far <= cam.Near:
		errs = append(errs, fmt.Errorf("%w: need 0 < near (%g) < far (%g)", ErrInvalidCamera, cam.Near, cam.Far))
	}

	if _, err := common.ParseMSAA(c.Render.MSAA); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Params returns the requested surface parameters.
func (c Config) Params() geometry.Params {
	return geometry.Params{Kind: c.Surface.Kind, Rings: c.Surface.Rings, Slices: c.Surface.Slices}
}

// FovRadians returns the vertical field of view in radians.
func (c Config) FovRadians() float32 {
	return mgl32.DegToRad(c.Camera.FovDegrees)
}
