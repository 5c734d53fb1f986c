package queuepanel

// JumpToTrackMsg requests playback of the queue entry at Index.
type JumpToTrackMsg struct {
	Index int
}

// DequeueMsg requests removal of a track from the queue.
type DequeueMsg struct {
	ID string
}

// MoveMsg requests moving the entry at From to To.
type MoveMsg struct {
	From, To int
}

// ClearMsg requests emptying the queue.
type ClearMsg struct{}

// UndoMsg requests undoing the last queue edit.
type UndoMsg struct{}

// RedoMsg requests redoing the last undone queue edit.
type RedoMsg struct{}
