package ledeffects

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamuesp-libs/ledeffects-symmetric-bar/model"
)

const testConfig = `
panel:
  width: 16
  height: 12
  serpentine: true
ledeffects:
  symmetric_bar:
    startcolor: "#00FF00"
    endcolor: "0x000080"
    colormode: 1
    sleep: 200
    dim_all: true
audio:
  gain: 4.5
`

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Colors are resolved without a separate Validate
	sbc := cfg.Effects.SymmetricBar
	assert.Equal(t, model.Color{R: 255, A: 255}, sbc.startColor)
	require.Nil(t, cfg.Validate())

	sbc = cfg.Effects.SymmetricBar
	assert.Equal(t, model.Color{R: 255, A: 255}, sbc.startColor)
	assert.Equal(t, model.Color{B: 255, A: 255}, sbc.endColor)
	assert.Equal(t, model.Color{A: 255}, sbc.background)
	assert.Equal(t, ColorModeShade, sbc.ColorMode)
}

func TestParseConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Nil(t, cfg.Parse([]byte(testConfig)))

	assert.Equal(t, 16, cfg.Panel.Width)
	assert.Equal(t, 12, cfg.Panel.Height)
	assert.True(t, cfg.Panel.Serpentine)
	assert.Equal(t, 30, cfg.Panel.FPS, "defaults survive")
	assert.Equal(t, 4.5, cfg.Audio.Gain)
	assert.Equal(t, 1.6, cfg.Audio.NoiseRatio)

	sbc := cfg.Effects.SymmetricBar
	assert.Equal(t, model.Color{G: 255, A: 255}, sbc.startColor)
	assert.Equal(t, model.Color{B: 0x80, A: 255}, sbc.endColor)
	assert.Equal(t, ColorModeHue, sbc.ColorMode)
	assert.Equal(t, 200, sbc.Sleep)
	assert.True(t, sbc.DimAll)
	assert.Equal(t, 30, sbc.Timeout)
}

func TestParseConfigInvalid(t *testing.T) {
	cases := []string{
		"ledeffects: {symmetric_bar: {background: '#XYZXYZ'}}",
		"ledeffects: {symmetric_bar: {sleep: -1}}",
		"panel: {width: -1}",
		"panel: {fps: 0}",
		"panel: [",
	}
	for _, doc := range cases {
		assert.NotNil(t, DefaultConfig().Parse([]byte(doc)), doc)
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	require.Nil(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	fp := filepath.Join(t.TempDir(), "ledeffects.yaml")
	require.NoError(t, os.WriteFile(fp, []byte(testConfig), 0600))

	cfg, err = LoadConfig(fp)
	require.Nil(t, err)
	assert.Equal(t, 16, cfg.Panel.Width)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NotNil(t, err)
}
