package drei

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmlewis/drei/gfx"
	"github.com/gmlewis/drei/gfx/gfxtest"
)

func TestNewSceneAppliesSettings(t *testing.T) {
	rec := gfxtest.New(nil, nil)
	NewScene(rec, DefaultSettings())

	assert.Equal(t, []gfxtest.Call{
		{Name: "ClearColor", Args: []any{float32(0), float32(0), float32(0), float32(1)}},
		{Name: "ClearDepth", Args: []any{float32(1)}},
		{Name: "Enable", Args: []any{gfx.DepthTest}},
		{Name: "DepthFunc", Args: []any{gfx.LEqual}},
	}, rec.Calls)
}

func TestSceneRender(t *testing.T) {
	rec := gfxtest.New(nil, nil)
	scene := NewScene(rec, DefaultSettings())
	cam := NewOrthoCamera(rec, -1, 1, -1, 1, -1, 1)
	cam.UpdateProjection()

	var log []string
	n := NewNode("n")
	n.Drawable = drawLog{name: "n", log: &log}
	scene.Add(n)

	rec.Reset()
	scene.Render(cam, Frame{Count: 7})
	require.NotEmpty(t, rec.Calls)
	assert.Equal(t, gfxtest.Call{Name: "Clear", Args: []any{gfx.ColorBufferBit | gfx.DepthBufferBit}}, rec.Calls[0])
	assert.Equal(t, []string{"n"}, log)
}

func TestSceneDepthDisabled(t *testing.T) {
	rec := gfxtest.New(nil, nil)
	settings := DefaultSettings()
	settings.DepthEnabled = false
	scene := NewScene(rec, settings)
	assert.Len(t, rec.Named("Disable"), 1)
	assert.Empty(t, rec.Named("Enable"))

	cam := NewScreenCamera(rec, -1, 1)
	cam.UpdateProjection()
	rec.Reset()
	scene.Render(cam, Frame{})
	assert.Equal(t, gfxtest.Call{Name: "Clear", Args: []any{gfx.ColorBufferBit}}, rec.Calls[0])
}

func TestSceneRenderNeedsProjection(t *testing.T) {
	rec := gfxtest.New(nil, nil)
	scene := NewScene(rec, DefaultSettings())
	cam := NewPerspectiveCamera(rec, 1, 0.1, 10)
	assert.Panics(t, func() { scene.Render(cam, Frame{}) })
}

func TestParseSettings(t *testing.T) {
	s, err := ParseSettings([]byte("clearColor: [0.1, 0.2, 0.3]\ndepthFunc: less\n"))
	require.NoError(t, err)
	assert.Equal(t, Settings{
		ClearColor:   [4]float32{0.1, 0.2, 0.3, 1},
		ClearDepth:   1,
		DepthEnabled: true,
		DepthFunc:    gfx.Less,
	}, s)

	s, err = ParseSettings([]byte("clearDepth: 0.5\ndepthEnabled: false\n"))
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), s.ClearDepth)
	assert.False(t, s.DepthEnabled)
	assert.Equal(t, gfx.LEqual, s.DepthFunc)

	s, err = ParseSettings(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestParseSettingsErrors(t *testing.T) {
	for _, in := range []string{
		"depthFunc: SOMETIMES",
		"clearColor: [1, 2]",
		"clearColor: [1, 2, 3, 4, 5]",
		"clearDepth: [1]",
	} {
		_, err := ParseSettings([]byte(in))
		assert.Error(t, err, in)
	}
}

func TestLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("clearColor: [1, 1, 1, 1]\ndepthFunc: ALWAYS\n"), 0o644))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, [4]float32{1, 1, 1, 1}, s.ClearColor)
	assert.Equal(t, gfx.Always, s.DepthFunc)

	_, err = LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
