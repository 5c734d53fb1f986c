package playback

import "github.com/llehouerou/cadence/internal/catalog"

// StateChange is emitted after every transition that changed the engine.
type StateChange struct {
	Previous State
	Current  State
}

// TrackStarted is emitted whenever a track is loaded and started.
//
// Emitted by:
//   - LoadAndPlay and PlayIndex
//   - SkipNext/SkipPrevious when they land on a different track
//   - auto-advance, including repeat-track replays
//
// NOT emitted by:
//   - Restore: a restored session is loaded paused
//   - SkipNext/SkipPrevious that stay on the current track (position reset only)
//
// Bookkeeping (recently played, notifications, lyrics) hangs off this event.
type TrackStarted struct {
	Track catalog.Track
	Index int
}

// ErrorEvent is emitted when the media output fails.
type ErrorEvent struct {
	Operation string // e.g. "load"
	Ref       string // media ref if applicable
	Err       error
}
