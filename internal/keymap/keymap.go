package keymap

// Binding contexts.
const (
	ContextGlobal   = "global"
	ContextPlayback = "playback"
	ContextQueue    = "queue"
	ContextSearch   = "search"
)

// Binding maps keys to an action within a context.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string
}

// All contains all key bindings.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", ContextGlobal},
	{ActionSwitchFocus, []string{"tab"}, "Switch focus", ContextGlobal},
	{ActionSearch, []string{"/"}, "Search catalog", ContextGlobal},
	{ActionToggleLyrics, []string{"L"}, "Toggle lyrics", ContextGlobal},

	// Playback
	{ActionPlayPause, []string{" ", "space"}, "Play/pause", ContextPlayback},
	{ActionNextTrack, []string{"n", "pgdown"}, "Next track", ContextPlayback},
	{ActionPrevTrack, []string{"p", "pgup"}, "Previous track", ContextPlayback},
	{ActionSeekForward, []string{"shift+right", "."}, "Seek +5s", ContextPlayback},
	{ActionSeekBack, []string{"shift+left", ","}, "Seek -5s", ContextPlayback},
	{ActionVolumeUp, []string{"+", "="}, "Volume up", ContextPlayback},
	{ActionVolumeDown, []string{"-"}, "Volume down", ContextPlayback},
	{ActionCycleRepeat, []string{"R"}, "Cycle repeat mode", ContextPlayback},
	{ActionToggleShuffle, []string{"S"}, "Toggle shuffle", ContextPlayback},
	{ActionSleepTimer, []string{"z"}, "Next sleep timer preset", ContextPlayback},
	{ActionSleepCancel, []string{"Z"}, "Cancel sleep timer", ContextPlayback},
	{ActionToggleLiked, []string{"f"}, "Like/unlike current track", ContextPlayback},

	// Queue panel
	{ActionMoveUp, []string{"k", "up"}, "Move up", ContextQueue},
	{ActionMoveDown, []string{"j", "down"}, "Move down", ContextQueue},
	{ActionJumpStart, []string{"g", "home"}, "First item", ContextQueue},
	{ActionJumpEnd, []string{"G", "end"}, "Last item", ContextQueue},
	{ActionSelect, []string{"enter"}, "Play track", ContextQueue},
	{ActionDelete, []string{"d", "delete"}, "Remove from queue", ContextQueue},
	{ActionClear, []string{"c"}, "Clear queue", ContextQueue},
	{ActionMoveItemUp, []string{"K", "shift+up"}, "Move item up", ContextQueue},
	{ActionMoveItemDown, []string{"J", "shift+down"}, "Move item down", ContextQueue},
	{ActionUndo, []string{"ctrl+z", "u"}, "Undo queue change", ContextQueue},
	{ActionRedo, []string{"ctrl+y", "ctrl+r"}, "Redo queue change", ContextQueue},

	// Search results
	{ActionMoveUp, []string{"up", "ctrl+k"}, "Move up", ContextSearch},
	{ActionMoveDown, []string{"down", "ctrl+j"}, "Move down", ContextSearch},
	{ActionSelect, []string{"enter"}, "Play now", ContextSearch},
	{ActionAdd, []string{"ctrl+a"}, "Add to queue", ContextSearch},
	{ActionAlbum, []string{"ctrl+o"}, "Play album", ContextSearch},
	{ActionCancel, []string{"esc"}, "Close search", ContextSearch},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
