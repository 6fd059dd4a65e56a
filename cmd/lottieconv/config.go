package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config mirrors the lottieconv.toml configuration file
type Config struct {
	Output  OutputConfig  `toml:"output"`
	Library LibraryConfig `toml:"library"`
}

type OutputConfig struct {
	// Frame rate of animated output; 0 keeps the source rate
	FPS float64 `toml:"fps"`
	// Surface size; 0 keeps the animation viewport
	Width  int `toml:"width"`
	Height int `toml:"height"`
	// Loop count for animated output; 0 loops forever
	Loop int `toml:"loop"`
	// JPEG quality for still output, 1-100
	Quality int `toml:"quality"`
}

type LibraryConfig struct {
	// Explicit path to the rlottie shared library
	Path string `toml:"path"`
	// Native model cache budget in bytes; 0 disables the cache
	CacheSize int `toml:"cache_size"`
}

// loadConfig reads a TOML config file. A missing file is not an error when
// explicit is false, so the default lottieconv.toml stays optional.
func loadConfig(path string, explicit bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}
