package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	appName        = "i2a"
	configFileName = "config.toml"
	localFileName  = "i2a.toml"
)

type Config struct {
	Format        string `koanf:"format"`         // "1"/"1:4", "2"/"1:1" or "3"/"1:1_fg"
	Printf        bool   `koanf:"printf"`         // write \033[ instead of the ESC byte
	PrintFilename bool   `koanf:"print_filename"` // print "<file>:" before each image
	PrintInfo     bool   `koanf:"print_info"`     // print resolution, format and mode

	// Output path; empty means stdout. ".gz" and ".zst" compress.
	Output string `koanf:"output"`

	Preview PreviewConfig `koanf:"preview"`

	// Files that were found and loaded, in load order.
	Sources []string `koanf:"-"`
}

// PreviewConfig controls the optional PNG rendering of encoded output.
type PreviewConfig struct {
	Dir   string `koanf:"dir"`   // write <dir>/<name>.png per image when set
	Font  string `koanf:"font"`  // TTF file; empty uses geometric block glyphs
	Scale int    `koanf:"scale"` // character cell multiplier (default: 1)
}

// Default returns the configuration used when no file sets a value.
func Default() *Config {
	return &Config{
		Format:  "1",
		Preview: PreviewConfig{Scale: 1},
	}
}

// Load reads the standard config files, then extra, later files
// overriding earlier ones. Missing standard files are skipped; a missing
// extra file is an error.
func Load(extra ...string) (*Config, error) {
	k := koanf.New(".")
	var sources []string

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", path, err)
			}
			sources = append(sources, path)
		}
	}
	for _, path := range extra {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		sources = append(sources, path)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	cfg.Sources = sources

	cfg.Output = expandPath(cfg.Output)
	cfg.Preview.Dir = expandPath(cfg.Preview.Dir)
	cfg.Preview.Font = expandPath(cfg.Preview.Font)
	if cfg.Preview.Scale <= 0 {
		cfg.Preview.Scale = 1
	}

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/i2a/config.toml
		filepath.Join(xdg.ConfigHome, appName, configFileName),
		// 2. ./i2a.toml (pwd, highest priority)
		localFileName,
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
