package app

import (
	"time"

	"github.com/llehouerou/cadence/internal/lyrics"
	"github.com/llehouerou/cadence/internal/playback"
)

// TickMsg is the one-second wall-clock tick.
type TickMsg time.Time

// StateChangedMsg wraps a playback state change.
type StateChangedMsg playback.StateChange

// TrackStartedMsg wraps a track start.
type TrackStartedMsg playback.TrackStarted

// EngineErrorMsg wraps a media output failure.
type EngineErrorMsg playback.ErrorEvent

// EventsClosedMsg is sent once the engine closes the subscription.
type EventsClosedMsg struct{}

// LyricsMsg carries lyrics loaded for a track.
type LyricsMsg struct {
	TrackID string
	Result  lyrics.FetchResult
}

// LikedMsg carries the liked flag of a track.
type LikedMsg struct {
	TrackID string
	Liked   bool
	Toggled bool
	Err     error
}
