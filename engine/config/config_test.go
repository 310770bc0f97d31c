package config

import (
	"bytes"
	"errors"
	"go/build"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-surface/common"
	"github.com/Carmen-Shannon/oxy-surface/engine/geometry"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, geometry.Params{Kind: geometry.KindSphere, Rings: 16, Slices: 32}, cfg.Params())
	assert.InDelta(t, 0.785398, cfg.FovRadians(), 1e-5)
}

func TestDecodeOverridesDefaults(t *testing.T) {
	doc := `
log_level = "debug"

[surface]
kind = "torus"
rings = 24

[light]
position = [1.0, 2.0, 3.0]

[render]
present_mode = "uncapped"
msaa = 1
`
	cfg, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, geometry.Params{Kind: geometry.KindTorus, Rings: 24, Slices: 32}, cfg.Params())
	assert.Equal(t, [3]float32{1, 2, 3}, cfg.Light.Position)
	assert.Equal(t, common.PresentModeUncapped, cfg.Render.PresentMode)
	assert.Equal(t, 1, cfg.Render.MSAA)

	// untouched sections keep their defaults
	assert.Equal(t, Default().Camera, cfg.Camera)
	assert.Equal(t, Default().Window, cfg.Window)
	assert.Equal(t, Default().Surface.Color, cfg.Surface.Color)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"window", "[window]\nwidth = 0", ErrInvalidWindow},
		{"radius", "[camera]\nradius = -1.0", ErrInvalidCamera},
		{"fov", "[camera]\nfov_degrees = 180.0", ErrInvalidCamera},
		{"clip planes", "[camera]\nnear = 10.0\nfar = 1.0", ErrInvalidCamera},
		{"msaa", "[render]\nmsaa = 8", common.ErrInvalidMSAA},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeRejectsBadValues(t *testing.T) {
	var decodeErr *toml.DecodeError

	_, err := Decode(strings.NewReader(`[surface]
kind = "cube"`))
	require.ErrorAs(t, err, &decodeErr)
	assert.Contains(t, err.Error(), geometry.ErrUnknownKind.Error())

	_, err = Decode(strings.NewReader(`[render]
present_mode = "sometimes"`))
	require.ErrorAs(t, err, &decodeErr)
	assert.Contains(t, err.Error(), common.ErrInvalidPresentMode.Error())
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("[surface]\nsegments = 4"))

	var strict *toml.StrictMissingError
	require.ErrorAs(t, err, &strict)
	assert.Contains(t, err.Error(), "segments")
}

func TestValidateJoinsFindings(t *testing.T) {
	cfg := Default()
	cfg.Window.Height = -1
	cfg.Render.MSAA = 2

	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrInvalidWindow)
	assert.ErrorIs(t, err, common.ErrInvalidMSAA)
	assert.False(t, errors.Is(err, ErrInvalidCamera))
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Surface.Kind = geometry.KindTorus
	cfg.Surface.Rings = 7
	cfg.Render.PresentMode = common.PresentModeUncapped
	cfg.LogLevel = slog.LevelWarn

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, cfg))
	assert.Contains(t, buf.String(), `kind = 'torus'`)
	assert.Contains(t, buf.String(), "# sphere or torus")

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, cfg, decoded)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(dir, "oxysurface.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window]\ntitle = \"probe\"\n"), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "probe", cfg.Window.Title)

	require.NoError(t, os.WriteFile(path, []byte("[window]\nwidth = -5\n"), 0o644))
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalidWindow)
	assert.Contains(t, err.Error(), path)
}

func TestConfigDoesNotImportGPUPackages(t *testing.T) {
	pkg, err := build.ImportDir(".", 0)
	require.NoError(t, err)
	for _, imp := range pkg.Imports {
		assert.NotContains(t, imp, "engine/renderer")
		assert.NotContains(t, imp, "engine/window")
		assert.NotContains(t, imp, "go-gl/glfw")
		assert.NotContains(t, imp, "cogentcore/webgpu")
	}
}
