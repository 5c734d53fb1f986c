package notify

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/llehouerou/cadence/internal/catalog"
	"github.com/llehouerou/cadence/internal/mpris"
	"github.com/llehouerou/cadence/internal/playback"
)

const trackExpire = 5 * time.Second

// ForTrack builds the "now playing" notification for a track.
func ForTrack(track catalog.Track) Notification {
	var body []string
	if track.Artist != "" {
		body = append(body, track.Artist)
	}
	if track.Album != "" {
		body = append(body, track.Album)
	}

	title := track.Title
	if title == "" {
		title = track.ID
	}

	return Notification{
		Summary: title,
		Body:    strings.Join(body, " - "),
		Icon:    strings.TrimPrefix(mpris.ArtURL(track), "file://"),
		Expire:  trackExpire,
		Urgency: Low,
	}
}

// TrackWatcher shows a notification for every started track, replacing
// the previous one.
type TrackWatcher struct {
	sender Sender
	logger *slog.Logger
	lastID uint32
}

// NewTrackWatcher creates a watcher sending through s.
func NewTrackWatcher(s Sender, logger *slog.Logger) *TrackWatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TrackWatcher{sender: s, logger: logger}
}

// Show sends the notification for track.
func (w *TrackWatcher) Show(track catalog.Track) {
	n := ForTrack(track)
	n.Replaces = w.lastID
	id, err := w.sender.Send(n)
	if err != nil {
		w.logger.Debug("notify", "track", track.ID, "error", err)
		return
	}
	w.lastID = id
}

// Watch shows notifications until ctx is cancelled or the subscription closes.
func (w *TrackWatcher) Watch(ctx context.Context, sub *playback.Subscription) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done:
			return
		case e := <-sub.TrackStarted:
			w.Show(e.Track)
		}
	}
}
