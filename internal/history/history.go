// Package history keeps the recently played list.
package history

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/llehouerou/cadence/internal/playback"
)

// DefaultSize is the number of tracks kept when no size is configured.
const DefaultSize = 20

// Saver persists the recently played list.
type Saver interface {
	SaveRecent(ctx context.Context, ids []string) error
}

// Recorder tracks recently played ids, most recent first, without duplicates.
type Recorder struct {
	mu     sync.Mutex
	ids    []string
	max    int
	saver  Saver
	logger *slog.Logger
}

// NewRecorder creates a recorder holding at most max ids, seeded with initial.
// A max of zero or less uses DefaultSize.
func NewRecorder(maxSize int, initial []string) *Recorder {
	if maxSize <= 0 {
		maxSize = DefaultSize
	}
	r := &Recorder{max: maxSize, logger: slog.New(slog.DiscardHandler)}
	r.ids = r.trim(lo.Uniq(initial))
	return r
}

// SetSaver installs a persistence hook called after every Record.
func (r *Recorder) SetSaver(s Saver, logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saver = s
	if logger != nil {
		r.logger = logger
	}
}

// Record moves id to the front of the list.
// Returns true if the list changed.
func (r *Recorder) Record(id string) bool {
	if id == "" {
		return false
	}
	r.mu.Lock()
	if len(r.ids) > 0 && r.ids[0] == id {
		r.mu.Unlock()
		return false
	}
	next := make([]string, 0, len(r.ids)+1)
	next = append(next, id)
	next = append(next, lo.Without(r.ids, id)...)
	r.ids = r.trim(next)
	ids := slices.Clone(r.ids)
	saver := r.saver
	r.mu.Unlock()

	if saver != nil {
		if err := saver.SaveRecent(context.Background(), ids); err != nil {
			r.logger.Warn("save recent", "error", err)
		}
	}
	return true
}

// IDs returns the recently played ids, most recent first.
func (r *Recorder) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.ids)
}

// Len returns the number of recorded ids.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ids)
}

func (r *Recorder) trim(ids []string) []string {
	if len(ids) > r.max {
		return ids[:r.max]
	}
	return ids
}

// Watch records every started track until ctx is cancelled or the
// subscription is closed.
func (r *Recorder) Watch(ctx context.Context, sub *playback.Subscription) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done:
			return
		case e := <-sub.TrackStarted:
			r.Record(e.Track.ID)
		}
	}
}
