package playback

import (
	"time"

	"github.com/llehouerou/cadence/internal/catalog"
	"github.com/llehouerou/cadence/internal/playlist"
)

// RepeatMode defines what happens at the end of a track or of the queue.
type RepeatMode = playlist.RepeatMode

const (
	RepeatOff   = playlist.RepeatOff
	RepeatTrack = playlist.RepeatTrack
	RepeatQueue = playlist.RepeatQueue
)

// ParseRepeatMode parses "off", "track" or "queue".
func ParseRepeatMode(s string) (RepeatMode, bool) {
	return playlist.ParseRepeatMode(s)
}

// DefaultVolume is the volume a fresh session starts with.
const DefaultVolume = 0.8

// State is an immutable snapshot of the engine, captured after a transition.
type State struct {
	Current        *catalog.Track
	Playing        bool
	Position       time.Duration
	Duration       time.Duration
	Volume         float64
	Shuffle        bool
	Repeat         RepeatMode
	SleepRemaining time.Duration

	Queue   []string // stored order
	Order   []int    // selection order, as indices into Queue
	Index   int      // cursor into Queue, -1 when the current track is not queued
	CanUndo bool
	CanRedo bool
}

// HasTrack returns true if a track is loaded.
func (s State) HasTrack() bool {
	return s.Current != nil
}

// CurrentID returns the loaded track id, or "".
func (s State) CurrentID() string {
	if s.Current == nil {
		return ""
	}
	return s.Current.ID
}

// Progress returns position/duration in [0, 1].
func (s State) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return min(max(float64(s.Position)/float64(s.Duration), 0), 1)
}

// Finished returns true when playback stopped at the end of the queue.
func (s State) Finished() bool {
	return s.Current != nil && !s.Playing && s.Duration > 0 && s.Position >= s.Duration
}
