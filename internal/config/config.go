package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/cadence/internal/playback"
)

// Output selects the media output.
const (
	OutputAuto    = "auto"    // speaker for file tracks, virtual for the rest
	OutputSpeaker = "speaker" // same as auto; fails if the audio device is unavailable
	OutputVirtual = "virtual" // never touch the audio device
)

const (
	defaultVolume      = 0.8
	defaultHistorySize = 20
)

var defaultSleepPresets = []int{15, 30, 45, 60, 90, 120}

type Config struct {
	Volume         *float64 `koanf:"volume"`          // 0.0-1.0 (default: 0.8)
	Repeat         string   `koanf:"repeat"`          // "off", "track", or "queue"
	Shuffle        bool     `koanf:"shuffle"`         // start with shuffle on
	HistorySize    int      `koanf:"history_size"`    // recently played entries kept (default: 20)
	SleepPresets   []int    `koanf:"sleep_presets"`   // sleep timer choices in minutes
	MusicDir       string   `koanf:"music_dir"`       // scanned into the catalog when set
	Output         string   `koanf:"output"`          // "auto", "speaker", or "virtual"
	Notifications  *bool    `koanf:"notifications"`   // desktop notification on track start (default: true)
	MPRIS          *bool    `koanf:"mpris"`           // register on the session bus (default: true)
	RestoreSession *bool    `koanf:"restore_session"` // reload the last queue on start (default: true)
	StateFile      string   `koanf:"state_file"`      // default: $XDG_DATA_HOME/cadence/cadence.db
	LogFile        string   `koanf:"log_file"`        // default: $XDG_STATE_HOME/cadence/cadence.log
	LogLevel       string   `koanf:"log_level"`       // "debug", "info", "warn", "error" (default: info)
}

// Load reads the default config files. Missing files are skipped.
func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given config files in order, later files overriding
// earlier ones. Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.MusicDir = expandPath(cfg.MusicDir)
	cfg.StateFile = expandPath(cfg.StateFile)
	cfg.LogFile = expandPath(cfg.LogFile)
	cfg.Output = strings.ToLower(strings.TrimSpace(cfg.Output))

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/cadence/config.toml
		filepath.Join(xdg.ConfigHome, "cadence", "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
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

// GetVolume returns the starting volume clamped to [0, 1].
func (c *Config) GetVolume() float64 {
	if c.Volume == nil {
		return defaultVolume
	}
	return max(0, min(1, *c.Volume))
}

// GetRepeatMode returns the starting repeat mode, falling back to off for
// unknown values.
func (c *Config) GetRepeatMode() playback.RepeatMode {
	mode, _ := playback.ParseRepeatMode(strings.ToLower(c.Repeat))
	return mode
}

// GetHistorySize returns the recently played capacity.
func (c *Config) GetHistorySize() int {
	if c.HistorySize <= 0 {
		return defaultHistorySize
	}
	return c.HistorySize
}

// GetSleepPresets returns the sleep timer choices, skipping non-positive values.
func (c *Config) GetSleepPresets() []time.Duration {
	minutes := c.SleepPresets
	if len(minutes) == 0 {
		minutes = defaultSleepPresets
	}
	presets := make([]time.Duration, 0, len(minutes))
	for _, m := range minutes {
		if m > 0 {
			presets = append(presets, time.Duration(m)*time.Minute)
		}
	}
	return presets
}

// GetOutput returns the media output mode.
func (c *Config) GetOutput() string {
	switch c.Output {
	case OutputSpeaker, OutputVirtual:
		return c.Output
	default:
		return OutputAuto
	}
}

// NotificationsEnabled reports whether track start notifications are shown.
func (c *Config) NotificationsEnabled() bool {
	return c.Notifications == nil || *c.Notifications
}

// MPRISEnabled reports whether the MPRIS server is started.
func (c *Config) MPRISEnabled() bool {
	return c.MPRIS == nil || *c.MPRIS
}

// RestoreSessionEnabled reports whether the last session is restored on start.
func (c *Config) RestoreSessionEnabled() bool {
	return c.RestoreSession == nil || *c.RestoreSession
}

// GetLogLevel returns the configured log level, info when unset or invalid.
func (c *Config) GetLogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
