package drei

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gmlewis/drei/gfx"
)

// Settings is the global render state a Scene applies at construction.
type Settings struct {
	ClearColor   [4]float32    // default opaque black
	ClearDepth   float32       // default 1
	DepthEnabled bool          // default true
	DepthFunc    gfx.DepthFunc // default LEQUAL
}

// DefaultSettings returns the settings used when nothing is overridden.
func DefaultSettings() Settings {
	return Settings{
		ClearColor:   [4]float32{0, 0, 0, 1},
		ClearDepth:   1,
		DepthEnabled: true,
		DepthFunc:    gfx.LEqual,
	}
}

// settingsFile is the YAML form of Settings. Absent keys stay nil and keep
// their default. depthFunc is decoded by gfx.DepthFunc.UnmarshalText.
type settingsFile struct {
	ClearColor   []float32      `yaml:"clearColor"`
	ClearDepth   *float32       `yaml:"clearDepth"`
	DepthEnabled *bool          `yaml:"depthEnabled"`
	DepthFunc    *gfx.DepthFunc `yaml:"depthFunc"`
}

// ParseSettings decodes YAML settings over DefaultSettings.
//
//	clearColor: [0.1, 0.1, 0.2, 1]
//	clearDepth: 1
//	depthEnabled: true
//	depthFunc: LEQUAL
func ParseSettings(data []byte) (Settings, error) {
	s := DefaultSettings()
	var f settingsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return s, fmt.Errorf("ParseSettings: %w", err)
	}
	if f.ClearColor != nil {
		if len(f.ClearColor) < 3 || len(f.ClearColor) > 4 {
			return s, fmt.Errorf("ParseSettings: clearColor needs 3 or 4 components, got %v", len(f.ClearColor))
		}
		copy(s.ClearColor[:], f.ClearColor)
	}
	if f.ClearDepth != nil {
		s.ClearDepth = *f.ClearDepth
	}
	if f.DepthEnabled != nil {
		s.DepthEnabled = *f.DepthEnabled
	}
	if f.DepthFunc != nil {
		s.DepthFunc = *f.DepthFunc
	}
	return s, nil
}

// LoadSettings reads YAML settings from a file.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultSettings(), fmt.Errorf("LoadSettings: %w", err)
	}
	return ParseSettings(data)
}
