// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Typing TypingConfig `toml:"typing"`
	Audio  AudioConfig  `toml:"audio"`
	Log    LogConfig    `toml:"log"`
}

// TypingConfig maps typing-related settings. Nil means unset.
type TypingConfig struct {
	WPM              *float64 `toml:"wpm"`
	Duration         *float64 `toml:"duration"`
	MistakeProb      *float64 `toml:"mistake-prob"`
	MistakeLenMin    *int     `toml:"mistake-len-min"`
	MistakeLenMax    *int     `toml:"mistake-len-max"`
	RandomDelayChar  *float64 `toml:"random-delay-char"`
	RandomDelaySpace *float64 `toml:"random-delay-space"`
	RandomJitter     *float64 `toml:"random-jitter"`
	Hotkey           *string  `toml:"hotkey"`
}

// AudioConfig maps audio cue settings.
type AudioConfig struct {
	Cue *string `toml:"cue"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	if cfg.Typing.WPM != nil && cfg.Typing.Duration != nil {
		return FileConfig{}, fmt.Errorf("config sets both wpm and duration; keep one")
	}
	return cfg, nil
}
