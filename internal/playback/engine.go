// Package playback owns what is playing, in what order and for how long.
package playback

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/llehouerou/cadence/internal/catalog"
	"github.com/llehouerou/cadence/internal/player"
	"github.com/llehouerou/cadence/internal/playlist"
)

const defaultUndoDepth = 50

// errUnchanged marks a transition that had nothing to do. It is never
// returned to callers and suppresses the StateChange event.
var errUnchanged = errors.New("unchanged")

// Catalog resolves queue ids to tracks.
type Catalog interface {
	Track(id string) (catalog.Track, bool)
}

// Options configures an Engine.
type Options struct {
	Logger    *slog.Logger
	Rand      *rand.Rand // shuffle source; seeded from the clock when nil
	UndoDepth int        // queue undo states kept; 50 when zero
}

// Engine is the single writer of playback state and the only component that
// commands the media output.
//
// Every intent and every media event is applied under one mutex and records
// its side effects (media commands and notifications) in an outbox. The
// outbox is drained by a single goroutine after the mutex is released, so a
// media output calling back synchronously from inside a command never
// re-enters a running transition: its event is applied as a fresh transition
// and its effects are appended behind the ones already queued.
type Engine struct {
	mu      sync.Mutex
	catalog Catalog
	out     player.Interface
	queue   *playlist.PlayingQueue
	history *playlist.QueueHistory
	logger  *slog.Logger

	current   *catalog.Track
	ref       string // media ref of current
	playing   bool
	ended     bool // output holds no media: end of queue or failure
	announced bool // TrackStarted already sent for current
	position  time.Duration
	duration  time.Duration
	volume    float64
	sleep     time.Duration
	failures  int // consecutive load failures

	outbox   []func()
	draining bool

	subs   []*Subscription
	subsMu sync.Mutex
	closed bool
}

var _ player.Listener = (*Engine)(nil)

// New creates an engine driving out and registers itself as its listener.
func New(cat Catalog, out player.Interface, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	q := playlist.NewQueue()
	if opts.Rand != nil {
		q = playlist.NewQueueWithRand(opts.Rand)
	}
	depth := opts.UndoDepth
	if depth <= 0 {
		depth = defaultUndoDepth
	}

	e := &Engine{
		catalog: cat,
		out:     out,
		queue:   q,
		history: playlist.NewQueueHistory(depth),
		logger:  logger,
		volume:  DefaultVolume,
	}
	e.history.Push(nil)
	out.SetListener(e)
	out.SetVolume(e.volume)
	return e
}

// transition applies fn under the lock, records a StateChange when fn
// changed something, then drains the outbox.
func (e *Engine) transition(op string, fn func() error) error {
	e.mu.Lock()
	prev := e.snapshotLocked()
	err := fn()
	if err == nil {
		cur := e.snapshotLocked()
		e.post(func() { e.broadcastState(StateChange{Previous: prev, Current: cur}) })
	}
	e.mu.Unlock()

	e.drain()

	if errors.Is(err, errUnchanged) {
		return nil
	}
	if err != nil {
		e.logger.Debug("intent ignored", "op", op, "error", err)
	}
	return err
}

// post appends an effect to the outbox. Caller holds e.mu.
func (e *Engine) post(fx func()) {
	e.outbox = append(e.outbox, fx)
}

// drain runs queued effects in order with the lock released. Only one
// goroutine drains at a time; others leave their effects to it.
func (e *Engine) drain() {
	e.mu.Lock()
	if e.draining {
		e.mu.Unlock()
		return
	}
	e.draining = true
	for len(e.outbox) > 0 {
		fx := e.outbox[0]
		e.outbox[0] = nil
		e.outbox = e.outbox[1:]
		e.mu.Unlock()
		fx()
		e.mu.Lock()
	}
	e.outbox = nil
	e.draining = false
	e.mu.Unlock()
}

func mediaRef(t catalog.Track) string {
	if t.MediaRef != "" {
		return t.MediaRef
	}
	return player.VirtualRef(t.ID)
}

// loadLocked queues a load of ref, then an optional seek and play.
func (e *Engine) loadLocked(ref string, play bool, seek time.Duration) {
	e.post(func() {
		if err := e.out.Load(ref); err != nil {
			e.OnPlaybackFailed(ref, err)
			return
		}
		// The output may have called back during Load and moved the engine
		// on; only follow up if ref is still what should be playing.
		e.mu.Lock()
		current := e.ref == ref && !e.ended
		if current {
			e.failures = 0
		}
		play = play && current && e.playing
		e.mu.Unlock()
		if current && seek > 0 {
			e.out.SeekTo(seek)
		}
		if play {
			e.out.Play()
		}
	})
}

// startLocked makes t current from position 0 and loads it.
func (e *Engine) startLocked(t catalog.Track, play bool) {
	e.current = &t
	e.ref = mediaRef(t)
	e.position = 0
	e.duration = t.Duration
	e.playing = play
	e.ended = false
	e.announced = false
	e.loadLocked(e.ref, play, 0)
	if play {
		e.announceLocked()
	}
}

func (e *Engine) announceLocked() {
	if e.current == nil || e.announced {
		return
	}
	e.announced = true
	ev := TrackStarted{Track: *e.current, Index: e.queue.CurrentIndex()}
	e.post(func() { e.broadcastTrack(ev) })
}

// LoadAndPlay makes the track current and starts it from the beginning.
// When queue ids are given they replace the queue.
func (e *Engine) LoadAndPlay(id string, queue ...string) error {
	return e.transition("load and play", func() error {
		t, ok := e.catalog.Track(id)
		if !ok {
			return fmt.Errorf("%w: unknown track %q", ErrInvalidArgument, id)
		}
		if len(queue) > 0 {
			e.queue.Replace(id, queue...)
			e.history.Push(e.queue.IDs())
		} else {
			e.queue.Locate(id)
		}
		e.startLocked(t, true)
		return nil
	})
}

// PlayIndex starts the queue entry at the given stored index.
func (e *Engine) PlayIndex(index int) error {
	return e.transition("play index", func() error {
		ids := e.queue.IDs()
		if index < 0 || index >= len(ids) {
			return fmt.Errorf("%w: index %d out of range", ErrInvalidArgument, index)
		}
		t, ok := e.catalog.Track(ids[index])
		if !ok {
			return fmt.Errorf("%w: unknown track %q", ErrInvalidArgument, ids[index])
		}
		e.queue.JumpTo(index)
		e.startLocked(t, true)
		return nil
	})
}

// TogglePlayPause flips between playing and paused.
func (e *Engine) TogglePlayPause() error {
	return e.transition("toggle play", func() error {
		return e.setPlayingLocked(!e.playing)
	})
}

// Play resumes playback.
func (e *Engine) Play() error {
	return e.transition("play", func() error {
		return e.setPlayingLocked(true)
	})
}

// Pause pauses playback.
func (e *Engine) Pause() error {
	return e.transition("pause", func() error {
		return e.setPlayingLocked(false)
	})
}

func (e *Engine) setPlayingLocked(playing bool) error {
	if e.current == nil {
		return ErrMissingCurrentTrack
	}
	if playing == e.playing {
		return errUnchanged
	}
	e.playing = playing
	if !playing {
		e.post(e.out.Pause)
		return nil
	}

	if e.ended {
		// The output dropped the media; load it again where we left off.
		if e.position >= e.duration {
			e.position = 0
		}
		e.ended = false
		e.announced = false
		e.loadLocked(e.ref, true, e.position)
	} else {
		e.post(e.out.Play)
	}
	e.announceLocked()
	return nil
}

// Seek moves to target, clamped to [0, duration].
func (e *Engine) Seek(target time.Duration) error {
	return e.transition("seek", func() error {
		return e.seekLocked(target)
	})
}

// SeekBy moves relative to the current position.
func (e *Engine) SeekBy(delta time.Duration) error {
	return e.transition("seek", func() error {
		return e.seekLocked(e.position + delta)
	})
}

func (e *Engine) seekLocked(target time.Duration) error {
	if e.current == nil {
		return ErrMissingCurrentTrack
	}
	e.position = min(max(target, 0), e.duration)
	if !e.ended {
		pos := e.position
		e.post(func() { e.out.SeekTo(pos) })
	}
	return nil
}

// SetVolume sets the volume, clamped to [0, 1].
func (e *Engine) SetVolume(v float64) error {
	return e.transition("set volume", func() error {
		if math.IsNaN(v) {
			return fmt.Errorf("%w: volume is NaN", ErrInvalidArgument)
		}
		v = min(max(v, 0), 1)
		if v == e.volume {
			return errUnchanged
		}
		e.volume = v
		e.post(func() { e.out.SetVolume(v) })
		return nil
	})
}

// SkipNext moves to the next track in selection order.
func (e *Engine) SkipNext() error {
	return e.transition("skip next", func() error {
		return e.skipLocked(e.queue.Next)
	})
}

// SkipPrevious moves to the previous track in selection order. It always
// goes to the previous entry, whatever the position in the current track.
func (e *Engine) SkipPrevious() error {
	return e.transition("skip previous", func() error {
		return e.skipLocked(e.queue.Previous)
	})
}

func (e *Engine) skipLocked(move func() (string, bool)) error {
	if e.queue.IsEmpty() {
		return ErrEmptyQueue
	}
	t, ok := e.selectLocked(move)
	if ok && (e.current == nil || t.ID != e.current.ID) {
		e.startLocked(t, e.playing)
		return nil
	}
	if e.current == nil {
		return ErrMissingCurrentTrack
	}
	// No other target: stay on the current track from the top.
	return e.seekLocked(0)
}

// selectLocked moves the queue cursor with move until it lands on an id the
// catalog resolves. Unresolvable ids are skipped. If nothing resolves the
// cursor is put back.
func (e *Engine) selectLocked(move func() (string, bool)) (catalog.Track, bool) {
	saved := e.queue.CurrentIndex()
	for range e.queue.Len() {
		id, ok := move()
		if !ok {
			break
		}
		if t, ok := e.catalog.Track(id); ok {
			return t, true
		}
		e.logger.Debug("skipping unresolvable track", "id", id)
	}
	if saved < 0 {
		e.queue.ClearCursor()
	} else {
		e.queue.JumpTo(saved)
	}
	return catalog.Track{}, false
}

// advanceLocked handles the natural or failed end of the current track.
func (e *Engine) advanceLocked(failed bool) {
	repeat := e.queue.RepeatMode()
	if repeat == RepeatTrack && !failed {
		e.startLocked(*e.current, e.playing)
		return
	}

	t, ok := e.selectLocked(func() (string, bool) {
		return e.queue.Skip(1, repeat == RepeatQueue)
	})
	if ok {
		e.startLocked(t, e.playing)
		return
	}

	// End of queue: stop on the last track, shown as finished.
	e.playing = false
	e.ended = true
	e.position = e.duration
}

// ToggleShuffle flips shuffle and returns the new value.
func (e *Engine) ToggleShuffle() bool {
	var on bool
	_ = e.transition("toggle shuffle", func() error {
		on = e.queue.ToggleShuffle()
		return nil
	})
	return on
}

// SetShuffle enables or disables shuffle.
func (e *Engine) SetShuffle(enabled bool) {
	_ = e.transition("set shuffle", func() error {
		if e.queue.Shuffle() == enabled {
			return errUnchanged
		}
		e.queue.SetShuffle(enabled)
		return nil
	})
}

// SetRepeatMode sets the repeat mode.
func (e *Engine) SetRepeatMode(mode RepeatMode) error {
	return e.transition("set repeat", func() error {
		if mode < RepeatOff || mode > RepeatQueue {
			return fmt.Errorf("%w: repeat mode %d", ErrInvalidArgument, mode)
		}
		if e.queue.RepeatMode() == mode {
			return errUnchanged
		}
		e.queue.SetRepeatMode(mode)
		return nil
	})
}

// CycleRepeatMode advances off -> track -> queue -> off and returns the new mode.
func (e *Engine) CycleRepeatMode() RepeatMode {
	var mode RepeatMode
	_ = e.transition("cycle repeat", func() error {
		mode = e.queue.CycleRepeatMode()
		return nil
	})
	return mode
}

// Enqueue appends tracks to the queue.
func (e *Engine) Enqueue(ids ...string) error {
	return e.transition("enqueue", func() error {
		if len(ids) == 0 {
			return fmt.Errorf("%w: nothing to enqueue", ErrInvalidArgument)
		}
		for _, id := range ids {
			if _, ok := e.catalog.Track(id); !ok {
				return fmt.Errorf("%w: unknown track %q", ErrInvalidArgument, id)
			}
		}
		e.queue.Add(ids...)
		e.history.Push(e.queue.IDs())
		return nil
	})
}

// Dequeue removes every queue entry with the id. Removing the current track
// does not stop playback.
func (e *Engine) Dequeue(id string) error {
	return e.transition("dequeue", func() error {
		if !e.queue.RemoveID(id) {
			return fmt.Errorf("%w: %q not queued", ErrInvalidArgument, id)
		}
		e.history.Push(e.queue.IDs())
		return nil
	})
}

// ClearQueue empties the queue. The current track keeps playing.
func (e *Engine) ClearQueue() {
	_ = e.transition("clear queue", func() error {
		if e.queue.IsEmpty() {
			return errUnchanged
		}
		e.queue.Clear()
		e.history.Push(nil)
		return nil
	})
}

// Reorder moves the queue entry at from to to.
func (e *Engine) Reorder(from, to int) error {
	return e.transition("reorder", func() error {
		if !e.queue.Move(from, to) {
			return fmt.Errorf("%w: move %d -> %d", ErrInvalidArgument, from, to)
		}
		e.history.Push(e.queue.IDs())
		return nil
	})
}

// Undo restores the previous queue contents.
func (e *Engine) Undo() bool {
	return e.restoreQueue("undo", e.history.Undo)
}

// Redo re-applies an undone queue change.
func (e *Engine) Redo() bool {
	return e.restoreQueue("redo", e.history.Redo)
}

func (e *Engine) restoreQueue(op string, step func() ([]string, bool)) bool {
	var ok bool
	_ = e.transition(op, func() error {
		var ids []string
		ids, ok = step()
		if !ok {
			return errUnchanged
		}
		var currentID string
		if e.current != nil {
			currentID = e.current.ID
		}
		e.queue.Replace(currentID, ids...)
		return nil
	})
	return ok
}

// SetSleepTimer pauses playback after d of playing time. Zero cancels.
func (e *Engine) SetSleepTimer(d time.Duration) error {
	return e.transition("sleep timer", func() error {
		if d < 0 {
			return fmt.Errorf("%w: negative sleep timer", ErrInvalidArgument)
		}
		e.sleep = d
		return nil
	})
}

// Tick is the one-second wall-clock tick. While playing it counts the sleep
// timer down and pauses when it reaches zero.
func (e *Engine) Tick() {
	_ = e.transition("tick", func() error {
		if e.sleep <= 0 || !e.playing {
			return errUnchanged
		}
		e.sleep -= time.Second
		if e.sleep <= 0 {
			e.sleep = 0
			e.logger.Info("sleep timer expired")
			return e.setPlayingLocked(false)
		}
		return nil
	})
}

// OnMediaTimeUpdate records the position reported by the output.
func (e *Engine) OnMediaTimeUpdate(position time.Duration) {
	_ = e.transition("time update", func() error {
		if e.current == nil || e.ended {
			return errUnchanged
		}
		position = min(max(position, 0), e.duration)
		if position == e.position {
			return errUnchanged
		}
		e.position = position
		return nil
	})
}

// OnMediaDuration records the media length reported by the output.
func (e *Engine) OnMediaDuration(duration time.Duration) {
	_ = e.transition("duration", func() error {
		if e.current == nil || duration <= 0 || duration == e.duration {
			return errUnchanged
		}
		e.duration = duration
		e.position = min(e.position, duration)
		return nil
	})
}

// OnMediaEnded auto-advances past the finished track. Ends reported for a
// ref that is no longer loaded are ignored.
func (e *Engine) OnMediaEnded(ref string) {
	_ = e.transition("media ended", func() error {
		if e.current == nil || e.ended || ref != e.ref {
			return errUnchanged
		}
		e.advanceLocked(false)
		return nil
	})
}

// OnPlaybackFailed treats a failed load like the end of the track. Failures
// for a ref that is no longer current are ignored. After more consecutive
// failures than there are queue entries, playback stops.
func (e *Engine) OnPlaybackFailed(ref string, err error) {
	_ = e.transition("playback failed", func() error {
		if e.current == nil || ref != e.ref || e.ended {
			return errUnchanged
		}
		e.logger.Warn("playback failed", "ref", ref, "error", err)
		ev := ErrorEvent{Operation: "load", Ref: ref, Err: fmt.Errorf("%w: %w", ErrPlaybackFailed, err)}
		e.post(func() { e.broadcastError(ev) })

		e.failures++
		if e.failures > e.queue.Len() {
			e.playing = false
			e.ended = true
			return nil
		}
		e.advanceLocked(true)
		return nil
	})
}

// Session is the persistable part of the engine state.
type Session struct {
	Queue     []string
	CurrentID string
	Position  time.Duration
	Volume    float64
	Shuffle   bool
	Repeat    RepeatMode
}

// Session returns the current session for persistence.
func (e *Engine) Session() Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := Session{
		Queue:    e.queue.IDs(),
		Position: e.position,
		Volume:   e.volume,
		Shuffle:  e.queue.Shuffle(),
		Repeat:   e.queue.RepeatMode(),
	}
	if e.current != nil {
		s.CurrentID = e.current.ID
	}
	return s
}

// Restore loads a saved session, paused. Ids the catalog no longer knows
// are dropped.
func (e *Engine) Restore(s Session) error {
	return e.transition("restore", func() error {
		if s.Repeat < RepeatOff || s.Repeat > RepeatQueue {
			return fmt.Errorf("%w: repeat mode %d", ErrInvalidArgument, s.Repeat)
		}
		ids := lo.Filter(s.Queue, func(id string, _ int) bool {
			_, ok := e.catalog.Track(id)
			return ok
		})
		e.queue.SetShuffle(false)
		e.queue.Replace(s.CurrentID, ids...)
		e.queue.SetRepeatMode(s.Repeat)
		e.queue.SetShuffle(s.Shuffle)
		e.history.Push(e.queue.IDs())

		if !math.IsNaN(s.Volume) {
			e.volume = min(max(s.Volume, 0), 1)
			v := e.volume
			e.post(func() { e.out.SetVolume(v) })
		}

		if t, ok := e.catalog.Track(s.CurrentID); ok {
			e.current = &t
			e.ref = mediaRef(t)
			e.duration = t.Duration
			e.position = min(max(s.Position, 0), t.Duration)
			e.playing = false
			e.ended = false
			e.announced = false
			e.loadLocked(e.ref, false, e.position)
		}
		return nil
	})
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() State {
	return State{
		Current:        e.current,
		Playing:        e.playing,
		Position:       e.position,
		Duration:       e.duration,
		Volume:         e.volume,
		Shuffle:        e.queue.Shuffle(),
		Repeat:         e.queue.RepeatMode(),
		SleepRemaining: e.sleep,
		Queue:          e.queue.IDs(),
		Order:          e.queue.Order(),
		Index:          e.queue.CurrentIndex(),
		CanUndo:        e.history.CanUndo(),
		CanRedo:        e.history.CanRedo(),
	}
}

// Subscribe creates a new event subscription.
func (e *Engine) Subscribe() *Subscription {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	sub := newSubscription()
	if e.closed {
		sub.close()
		return sub
	}
	e.subs = append(e.subs, sub)
	return sub
}

func (e *Engine) broadcastState(ev StateChange) {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	for _, sub := range e.subs {
		sub.sendState(ev)
	}
}

func (e *Engine) broadcastTrack(ev TrackStarted) {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	for _, sub := range e.subs {
		sub.sendTrack(ev)
	}
}

func (e *Engine) broadcastError(ev ErrorEvent) {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	for _, sub := range e.subs {
		sub.sendError(ev)
	}
}

// Close ends all subscriptions. The media output is left to its owner.
func (e *Engine) Close() error {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	for _, sub := range e.subs {
		sub.close()
	}
	e.subs = nil
	return nil
}
