// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit         Action = "quit"
	ActionSwitchFocus  Action = "switch_focus"
	ActionSearch       Action = "search"
	ActionToggleLyrics Action = "toggle_lyrics"

	// Playback actions
	ActionPlayPause     Action = "play_pause"
	ActionNextTrack     Action = "next_track"
	ActionPrevTrack     Action = "prev_track"
	ActionSeekForward   Action = "seek_forward"
	ActionSeekBack      Action = "seek_back"
	ActionVolumeUp      Action = "volume_up"
	ActionVolumeDown    Action = "volume_down"
	ActionCycleRepeat   Action = "cycle_repeat"
	ActionToggleShuffle Action = "toggle_shuffle"
	ActionSleepTimer    Action = "sleep_timer"  // cycle through presets
	ActionSleepCancel   Action = "sleep_cancel" // clear the timer
	ActionToggleLiked   Action = "toggle_liked" // current track

	// Navigation actions
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"

	// Selection/activation actions
	ActionSelect Action = "select" // enter - play/activate
	ActionAdd    Action = "add"    // a - add to queue
	ActionAlbum  Action = "album"  // play the selection's album
	ActionCancel Action = "cancel" // esc - leave prompt

	// Queue-specific actions
	ActionDelete       Action = "delete"         // d/delete - dequeue
	ActionClear        Action = "clear"          // c - clear queue
	ActionMoveItemUp   Action = "move_item_up"   // shift+k
	ActionMoveItemDown Action = "move_item_down" // shift+j
	ActionUndo         Action = "undo"           // ctrl+z
	ActionRedo         Action = "redo"           // ctrl+y
)
