// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"fmt"
	"path/filepath"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Catalog operations
	OpCatalogScan Op = "scan music folder"
	OpCatalogLoad Op = "load catalog"

	// Playlist operations
	OpPlaylistLoad   Op = "load playlists"
	OpPlaylistCreate Op = "create playlist"
	OpPlaylistUpdate Op = "update playlist"
	OpPlaylistDelete Op = "delete playlist"
	OpPlaylistAdd    Op = "add to playlist"
	OpPlaylistRemove Op = "remove from playlist"

	// Queue operations
	OpQueueAdd     Op = "add to queue"
	OpQueueRemove  Op = "remove from queue"
	OpQueueReorder Op = "reorder queue"

	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpPlaybackLoad  Op = "play track"
	OpPlaybackSeek  Op = "seek"
	OpPlaybackMode  Op = "change playback mode"
	OpSleepTimer    Op = "set sleep timer"

	// Session operations
	OpSessionLoad    Op = "restore session"
	OpSessionSave    Op = "save session"
	OpRecentSave     Op = "save recently played"
	OpFavoriteToggle Op = "update liked songs"

	// Lyrics
	OpLyricsLoad Op = "load lyrics"

	// Initialization
	OpInitialize Op = "initialize application"
	OpAudioInit  Op = "open audio device"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// ForOperation maps a playback error event operation to an Op.
func ForOperation(operation string) Op {
	switch operation {
	case "load":
		return OpPlaybackLoad
	case "seek":
		return OpPlaybackSeek
	default:
		return OpPlaybackStart
	}
}

// FormatRef formats a playback failure, naming the media by its base name.
func FormatRef(operation, ref string, err error) string {
	name := ref
	if name != "" {
		name = filepath.Base(name)
	}
	return FormatWith(ForOperation(operation), name, err)
}
