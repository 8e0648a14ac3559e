package ledeffects

// This file contains the configuration for the panel, the audio analysis and
// the effects.  Effect keys follow the ledeffects.<effect>.<key> naming
// used by the host firmware configuration

import (
	"fmt"
	"os"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	"gopkg.in/yaml.v2"

	"github.com/mamuesp-libs/ledeffects-symmetric-bar/model"
)

// Color modes understood by the symmetric bar
const (
	ColorModeShade = 0
	ColorModeHue   = 1
)

type PanelConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Serpentine bool    `yaml:"serpentine"` // odd rows of the strip run right to left
	Brightness float64 `yaml:"brightness"` // applied to every frame when an effect asks for dim_all
	FPS        int     `yaml:"fps"`
}

type AudioConfig struct {
	Gain          float64 `yaml:"gain"`
	AverageWeight float64 `yaml:"average_weight"`
	NoiseRatio    float64 `yaml:"noise_ratio"`
	NoiseFloor    float64 `yaml:"noise_floor"`
	FadeStep      float64 `yaml:"fade_step"`
}

type SymmetricBarConfig struct {
	StartColor string  `yaml:"startcolor"`
	EndColor   string  `yaml:"endcolor"`
	Background string  `yaml:"background"`
	Saturation float64 `yaml:"saturation"`
	Value      float64 `yaml:"value"`
	ColorMode  int     `yaml:"colormode"`
	Timeout    int     `yaml:"timeout"` // seconds before the host moves to the next effect, 0 runs forever
	Sleep      int     `yaml:"sleep"`   // milliseconds held at the end of each half sweep
	DimAll     bool    `yaml:"dim_all"`

	startColor model.Color
	endColor   model.Color
	background model.Color
}

type EffectsConfig struct {
	SymmetricBar SymmetricBarConfig `yaml:"symmetric_bar"`
}

// Config is the main configuration structure
type Config struct {
	Panel   PanelConfig   `yaml:"panel"`
	Audio   AudioConfig   `yaml:"audio"`
	Effects EffectsConfig `yaml:"ledeffects"`
}

// DefaultConfig returns a config with sensible defaults for an 8x8 panel
func DefaultConfig() (cfg *Config) {
	cfg = &Config{
		Panel: PanelConfig{
			Width:      8,
			Height:     8,
			Brightness: 0.5,
			FPS:        30,
		},
		Audio: AudioConfig{
			Gain:          2.0,
			AverageWeight: 0.05,
			NoiseRatio:    1.6,
			NoiseFloor:    0.1,
			FadeStep:      0.05,
		},
		Effects: EffectsConfig{
			SymmetricBar: SymmetricBarConfig{
				StartColor: "#FF0000",
				EndColor:   "#0000FF",
				Background: "#000000",
				Saturation: 1.0,
				Value:      0.5,
				ColorMode:  ColorModeShade,
				Timeout:    30,
				Sleep:      0,
				DimAll:     false,
			},
		},
	}
	if err := cfg.Effects.SymmetricBar.resolve(); err != nil {
		panic(err.Error())
	}
	return cfg
}

// LoadConfig reads the YAML config file at path over the top of the defaults,
// an empty path returns the defaults
func LoadConfig(path string) (cfg *Config, err errors.Error) {
	cfg = DefaultConfig()
	if len(path) == 0 {
		return cfg, nil
	}

	data, errGo := os.ReadFile(path)
	if errGo != nil {
		return nil, errors.Wrap(errGo).With("file", path).With("stack", stack.Trace().TrimRuntime())
	}

	if err = cfg.Parse(data); err != nil {
		return nil, err.With("file", path)
	}
	return cfg, nil
}

// Parse applies YAML formatted settings to the config and validates the result
func (cfg *Config) Parse(data []byte) (err errors.Error) {
	if errGo := yaml.Unmarshal(data, cfg); errGo != nil {
		return errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	return cfg.Validate()
}

// Validate checks the numeric ranges and resolves the color strings
func (cfg *Config) Validate() (err errors.Error) {
	if cfg.Panel.Width < 0 || cfg.Panel.Height < 0 {
		errGo := fmt.Errorf("panel dimensions %dx%d must not be negative", cfg.Panel.Width, cfg.Panel.Height)
		return errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	if cfg.Panel.FPS <= 0 {
		errGo := fmt.Errorf("panel fps %d must be positive", cfg.Panel.FPS)
		return errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	return cfg.Effects.SymmetricBar.resolve()
}

func (sbc *SymmetricBarConfig) resolve() (err errors.Error) {
	if sbc.startColor, err = HexToColor(sbc.StartColor); err != nil {
		return err.With("key", "ledeffects.symmetric_bar.startcolor")
	}
	if sbc.endColor, err = HexToColor(sbc.EndColor); err != nil {
		return err.With("key", "ledeffects.symmetric_bar.endcolor")
	}
	if sbc.background, err = HexToColor(sbc.Background); err != nil {
		return err.With("key", "ledeffects.symmetric_bar.background")
	}
	if sbc.Sleep < 0 || sbc.Timeout < 0 {
		errGo := fmt.Errorf("sleep %d and timeout %d must not be negative", sbc.Sleep, sbc.Timeout)
		return errors.Wrap(errGo).With("key", "ledeffects.symmetric_bar").With("stack", stack.Trace().TrimRuntime())
	}
	return nil
}
