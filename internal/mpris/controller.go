package mpris

import (
	"time"

	"github.com/llehouerou/cadence/internal/playback"
)

// Controller is the part of the playback engine the adapter drives.
type Controller interface {
	Snapshot() playback.State
	TogglePlayPause() error
	Play() error
	Pause() error
	SkipNext() error
	SkipPrevious() error
	Seek(target time.Duration) error
	SeekBy(delta time.Duration) error
	SetVolume(v float64) error
	SetShuffle(enabled bool)
	SetRepeatMode(mode playback.RepeatMode) error
}

var _ Controller = (*playback.Engine)(nil)
