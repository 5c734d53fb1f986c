package playlist

import (
	"math/rand/v2"
	"slices"
	"time"
)

// RepeatMode defines what happens when traversal reaches the end of the queue.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatTrack
	RepeatQueue
)

// String returns the repeat mode name.
func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "off"
	case RepeatTrack:
		return "track"
	case RepeatQueue:
		return "queue"
	default:
		return "unknown"
	}
}

// Next returns the mode that follows m in the off -> track -> queue cycle.
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatOff:
		return RepeatTrack
	case RepeatTrack:
		return RepeatQueue
	default:
		return RepeatOff
	}
}

// ParseRepeatMode parses "off", "track" or "queue".
func ParseRepeatMode(s string) (RepeatMode, bool) {
	switch s {
	case "off", "":
		return RepeatOff, true
	case "track", "one":
		return RepeatTrack, true
	case "queue", "all":
		return RepeatQueue, true
	default:
		return RepeatOff, false
	}
}

// PlayingQueue wraps a Playlist with a traversal cursor and the selection
// order used to pick the next and previous entries.
//
// Stored order is never changed by shuffle. When shuffle is on, the
// selection order is a permutation of stored indices. Enabling shuffle draws
// it around the cursor entry, which keeps its own slot. Edits while shuffled
// keep the cursor entry's slot and the entries before it, and redraw only
// what lies ahead.
type PlayingQueue struct {
	playlist     *Playlist
	currentIndex int // -1 if the current track is not in the queue
	repeatMode   RepeatMode
	shuffle      bool
	order        []int // order[slot] = stored index
	rng          *rand.Rand
}

// NewQueue creates a new empty playing queue.
func NewQueue() *PlayingQueue {
	seed := uint64(time.Now().UnixNano()) //nolint:gosec // not security-sensitive
	return NewQueueWithRand(rand.New(rand.NewPCG(seed, seed>>1)))
}

// NewQueueWithRand creates a queue that shuffles with the given source.
func NewQueueWithRand(rng *rand.Rand) *PlayingQueue {
	return &PlayingQueue{
		playlist:     NewPlaylist(),
		currentIndex: -1,
		rng:          rng,
	}
}

// Current returns the id under the cursor.
func (q *PlayingQueue) Current() (string, bool) {
	return q.playlist.ID(q.currentIndex)
}

// CurrentIndex returns the stored index of the cursor (-1 if none).
func (q *PlayingQueue) CurrentIndex() int {
	return q.currentIndex
}

// JumpTo sets the cursor to the specified stored index.
// Returns the id at that position, or false if invalid.
func (q *PlayingQueue) JumpTo(index int) (string, bool) {
	id, ok := q.playlist.ID(index)
	if !ok {
		return "", false
	}
	q.currentIndex = index
	return id, true
}

// ClearCursor detaches the cursor from the queue.
func (q *PlayingQueue) ClearCursor() {
	q.currentIndex = -1
}

// Locate points the cursor at the first entry with the given id, or -1 if
// the id is not queued. Returns the new cursor.
func (q *PlayingQueue) Locate(id string) int {
	q.currentIndex = q.playlist.IndexOf(id)
	return q.currentIndex
}

// Next advances the cursor according to the repeat mode and selection order
// and returns the id now under it. Returns false, leaving the cursor alone,
// when there is no next entry.
func (q *PlayingQueue) Next() (string, bool) {
	idx, ok := q.peek(1)
	if !ok {
		return "", false
	}
	return q.JumpTo(idx)
}

// Previous moves the cursor back; it mirrors Next.
func (q *PlayingQueue) Previous() (string, bool) {
	idx, ok := q.peek(-1)
	if !ok {
		return "", false
	}
	return q.JumpTo(idx)
}

// Skip moves the cursor step slots along the selection order, ignoring
// repeat-track. The order wraps only when wrap is set.
func (q *PlayingQueue) Skip(step int, wrap bool) (string, bool) {
	idx, ok := q.step(step, wrap)
	if !ok {
		return "", false
	}
	return q.JumpTo(idx)
}

// PeekNext returns the id Next would move to without moving the cursor.
func (q *PlayingQueue) PeekNext() (string, bool) {
	idx, ok := q.peek(1)
	if !ok {
		return "", false
	}
	return q.playlist.ID(idx)
}

// HasNext returns true if Next would succeed.
func (q *PlayingQueue) HasNext() bool {
	_, ok := q.peek(1)
	return ok
}

// First returns the stored index of the first entry in selection order.
func (q *PlayingQueue) First() (int, bool) {
	if q.playlist.Len() == 0 {
		return 0, false
	}
	return q.order[0], true
}

// peek resolves the stored index one step away in selection order.
func (q *PlayingQueue) peek(step int) (int, bool) {
	if q.repeatMode == RepeatTrack && q.currentIndex >= 0 && q.currentIndex < q.playlist.Len() {
		return q.currentIndex, true
	}
	return q.step(step, q.repeatMode == RepeatQueue)
}

func (q *PlayingQueue) step(step int, wrap bool) (int, bool) {
	n := q.playlist.Len()
	if n == 0 {
		return 0, false
	}

	slot := q.slotOf(q.currentIndex)
	if slot < 0 {
		// Cursor is off the queue: forward starts at the top, backward has
		// nothing behind it unless the order wraps.
		if step > 0 {
			return q.order[0], true
		}
		if wrap {
			return q.order[n-1], true
		}
		return 0, false
	}

	target := slot + step
	if target < 0 || target >= n {
		if !wrap {
			return 0, false
		}
		target = ((target % n) + n) % n
	}
	return q.order[target], true
}

func (q *PlayingQueue) slotOf(index int) int {
	if index < 0 {
		return -1
	}
	return slices.Index(q.order, index)
}

// Add appends ids to the queue without moving the cursor.
func (q *PlayingQueue) Add(ids ...string) {
	if len(ids) == 0 {
		return
	}
	prev, slot := q.order, q.slotOf(q.currentIndex)
	q.playlist.Add(ids...)
	q.reflow(prev, slot, func(i int) int { return i })
}

// Replace swaps the queue contents and puts the cursor on the first entry
// matching currentID (-1 if absent).
func (q *PlayingQueue) Replace(currentID string, ids ...string) {
	q.playlist.Replace(ids...)
	q.currentIndex = q.playlist.IndexOf(currentID)
	q.rebuildOrder()
}

// RemoveID removes every entry with the given id. If the cursor entry is
// removed the cursor becomes -1; otherwise it follows its entry.
// Returns false if the id was not queued.
func (q *PlayingQueue) RemoveID(id string) bool {
	old := q.playlist.IDs()
	if q.playlist.RemoveID(id) == 0 {
		return false
	}
	remap := make([]int, len(old))
	next := 0
	for i, x := range old {
		if x == id {
			remap[i] = -1
			continue
		}
		remap[i] = next
		next++
	}
	q.applyEdit(func(i int) int { return remap[i] })
	return true
}

// RemoveAt removes the entry at the given stored index.
// Adjusts the cursor the same way RemoveID does.
func (q *PlayingQueue) RemoveAt(index int) bool {
	if !q.playlist.Remove(index) {
		return false
	}
	q.applyEdit(func(i int) int {
		switch {
		case i == index:
			return -1
		case i > index:
			return i - 1
		}
		return i
	})
	return true
}

// Move moves the entry at from to to; the cursor follows its entry.
func (q *PlayingQueue) Move(from, to int) bool {
	if !q.playlist.Move(from, to) {
		return false
	}
	q.applyEdit(func(i int) int {
		switch {
		case i == from:
			return to
		case from < i && i <= to:
			return i - 1
		case to <= i && i < from:
			return i + 1
		}
		return i
	})
	return true
}

// Clear removes all entries and resets the cursor.
func (q *PlayingQueue) Clear() {
	q.playlist.Clear()
	q.currentIndex = -1
	q.rebuildOrder()
}

// applyEdit moves the cursor and the selection order onto the stored
// indices after an edit. remap maps an old stored index to its new one, or
// -1 when the entry was removed.
func (q *PlayingQueue) applyEdit(remap func(int) int) {
	prev, slot := q.order, q.slotOf(q.currentIndex)
	if q.currentIndex >= 0 {
		q.currentIndex = remap(q.currentIndex)
	}
	q.reflow(prev, slot, remap)
}

// IDs returns all ids in stored order.
func (q *PlayingQueue) IDs() []string {
	return q.playlist.IDs()
}

// Order returns the selection order as stored indices.
func (q *PlayingQueue) Order() []int {
	return slices.Clone(q.order)
}

// Len returns the number of entries in the queue.
func (q *PlayingQueue) Len() int {
	return q.playlist.Len()
}

// IsEmpty returns true if the queue has no entries.
func (q *PlayingQueue) IsEmpty() bool {
	return q.playlist.Len() == 0
}

// RepeatMode returns the current repeat mode.
func (q *PlayingQueue) RepeatMode() RepeatMode {
	return q.repeatMode
}

// SetRepeatMode sets the repeat mode.
func (q *PlayingQueue) SetRepeatMode(mode RepeatMode) {
	q.repeatMode = mode
}

// CycleRepeatMode advances to the next repeat mode and returns it.
func (q *PlayingQueue) CycleRepeatMode() RepeatMode {
	q.repeatMode = q.repeatMode.Next()
	return q.repeatMode
}

// Shuffle returns whether shuffle is enabled.
func (q *PlayingQueue) Shuffle() bool {
	return q.shuffle
}

// SetShuffle enables or disables shuffle. Enabling draws a fresh permutation.
func (q *PlayingQueue) SetShuffle(enabled bool) {
	if enabled == q.shuffle {
		return
	}
	q.shuffle = enabled
	q.rebuildOrder()
}

// ToggleShuffle flips shuffle and returns the new value.
func (q *PlayingQueue) ToggleShuffle() bool {
	q.SetShuffle(!q.shuffle)
	return q.shuffle
}

// Reshuffle draws a new permutation if shuffle is on.
func (q *PlayingQueue) Reshuffle() {
	if q.shuffle {
		q.rebuildOrder()
	}
}

// reflow rebuilds the selection order after an edit while shuffled. The
// entries already passed keep their relative order in front, the cursor
// entry follows them, and everything not yet played is drawn fresh behind
// it. With nothing removed ahead of the cursor its slot is unchanged.
func (q *PlayingQueue) reflow(prev []int, slot int, remap func(int) int) {
	if !q.shuffle || slot < 0 || q.currentIndex < 0 {
		q.rebuildOrder()
		return
	}
	n := q.playlist.Len()
	placed := make([]bool, n)
	order := make([]int, 0, n)
	for _, old := range prev[:slot] {
		if idx := remap(old); idx >= 0 && !placed[idx] {
			order = append(order, idx)
			placed[idx] = true
		}
	}
	if placed[q.currentIndex] {
		q.rebuildOrder()
		return
	}
	order = append(order, q.currentIndex)
	placed[q.currentIndex] = true

	ahead := make([]int, 0, n-len(order))
	for i := range n {
		if !placed[i] {
			ahead = append(ahead, i)
		}
	}
	q.rng.Shuffle(len(ahead), func(i, j int) {
		ahead[i], ahead[j] = ahead[j], ahead[i]
	})
	q.order = append(order, ahead...)
}

// rebuildOrder recomputes the selection order. Without shuffle it is the
// identity; with shuffle the cursor entry stays in its own slot and every
// other index is permuted around it.
func (q *PlayingQueue) rebuildOrder() {
	n := q.playlist.Len()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if q.shuffle && n > 1 {
		free := make([]int, 0, n)
		for i := range n {
			if i != q.currentIndex {
				free = append(free, i)
			}
		}
		q.rng.Shuffle(len(free), func(i, j int) {
			free[i], free[j] = free[j], free[i]
		})
		k := 0
		for slot := range n {
			if slot == q.currentIndex {
				continue
			}
			order[slot] = free[k]
			k++
		}
	}
	q.order = order
}
