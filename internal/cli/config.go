package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// configFileName is the per-project config file looked up next to the
// evaluated script when --config is not given.
const configFileName = "tenon.toml"

// Config carries the tool defaults a script does not set itself.
type Config struct {
	// Segments sets the default curve resolution of the render root.
	Segments SegmentsConfig `toml:"segments"`
	// Mesh controls STL tessellation.
	Mesh MeshConfig `toml:"mesh"`
}

// SegmentsConfig mirrors the segment attributes of the output language.
type SegmentsConfig struct {
	Fn int     `toml:"fn"`
	Fa float64 `toml:"fa"`
	Fs float64 `toml:"fs"`
}

// MeshConfig holds tessellation settings.
type MeshConfig struct {
	// Cells is the marching cubes resolution along the longest axis.
	// Zero selects the kernel default.
	Cells int `toml:"cells"`
}

// defaultConfig returns the built-in defaults used when no config file is
// found.
func defaultConfig() Config {
	return Config{}
}

// loadConfig reads the TOML config at path. An empty path falls back to a
// tenon.toml next to the script; a missing fallback file is not an error.
func loadConfig(path, scriptPath string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(filepath.Dir(scriptPath), configFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
