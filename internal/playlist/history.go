package playlist

import "slices"

// QueueHistory records queue contents for undo and redo. The latest pushed
// snapshot is the present; Undo steps back from it and Redo forward again.
// At most depth snapshots are kept, present included.
type QueueHistory struct {
	past    [][]string // oldest first
	present []string
	future  [][]string // next redo last
	depth   int
	started bool
}

// NewQueueHistory creates a history keeping depth snapshots.
func NewQueueHistory(depth int) *QueueHistory {
	return &QueueHistory{depth: max(depth, 1)}
}

// Push records ids as the present and forgets anything undone.
func (h *QueueHistory) Push(ids []string) {
	if h.started {
		h.past = append(h.past, h.present)
		if over := len(h.past) - (h.depth - 1); over > 0 {
			h.past = slices.Delete(h.past, 0, over)
		}
	}
	h.present = slices.Clone(ids)
	h.future = nil
	h.started = true
}

// Undo moves one snapshot back and returns it.
func (h *QueueHistory) Undo() ([]string, bool) {
	if len(h.past) == 0 {
		return nil, false
	}
	h.future = append(h.future, h.present)
	h.present, h.past = h.past[len(h.past)-1], h.past[:len(h.past)-1]
	return slices.Clone(h.present), true
}

// Redo moves one snapshot forward and returns it.
func (h *QueueHistory) Redo() ([]string, bool) {
	if len(h.future) == 0 {
		return nil, false
	}
	h.past = append(h.past, h.present)
	h.present, h.future = h.future[len(h.future)-1], h.future[:len(h.future)-1]
	return slices.Clone(h.present), true
}

func (h *QueueHistory) CanUndo() bool { return len(h.past) > 0 }
func (h *QueueHistory) CanRedo() bool { return len(h.future) > 0 }
