package playback

import "errors"

// Conditions the engine reports when an intent resolves as a no-op.
// None of them are fatal; the engine state is unchanged when one is returned.
var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrEmptyQueue          = errors.New("queue is empty")
	ErrMissingCurrentTrack = errors.New("no track loaded")
	ErrPlaybackFailed      = errors.New("playback failed")
)
