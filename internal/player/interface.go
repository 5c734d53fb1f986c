// Package player holds the media output adapters the playback engine drives.
package player

import "time"

// Listener receives events from a media output. Callbacks may arrive on any
// goroutine, including synchronously from inside an Interface call.
type Listener interface {
	OnMediaTimeUpdate(position time.Duration)
	OnMediaDuration(duration time.Duration)
	OnMediaEnded(ref string)
	OnPlaybackFailed(ref string, err error)
}

// Interface is the media output contract. Load prepares a media reference in
// the paused state; Play and Pause only toggle output of what was loaded.
type Interface interface {
	Load(ref string) error
	Play()
	Pause()
	SeekTo(position time.Duration)
	SetVolume(level float64)
	SetListener(l Listener)
	Close() error
}

var (
	_ Interface = (*Speaker)(nil)
	_ Interface = (*Virtual)(nil)
	_ Interface = (*Router)(nil)
	_ Interface = (*Mock)(nil)
)

// nopListener drops every event. Used until SetListener is called.
type nopListener struct{}

func (nopListener) OnMediaTimeUpdate(time.Duration) {}
func (nopListener) OnMediaDuration(time.Duration)   {}
func (nopListener) OnMediaEnded(string)             {}
func (nopListener) OnPlaybackFailed(string, error)  {}
