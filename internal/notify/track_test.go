package notify

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/synctest"
	"time"

	"github.com/llehouerou/cadence/internal/catalog"
	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/player"
)

type recordingSender struct {
	sent   []Notification
	nextID uint32
	err    error
}

func (r *recordingSender) Send(n Notification) (uint32, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.sent = append(r.sent, n)
	if n.Replaces != 0 {
		return n.Replaces, nil
	}
	r.nextID++
	return r.nextID, nil
}

func (r *recordingSender) Dismiss(uint32) error { return nil }

func TestForTrack(t *testing.T) {
	dir := t.TempDir()
	coverPath := filepath.Join(dir, "cover.jpg")
	if err := os.WriteFile(coverPath, []byte{0xFF, 0xD8, 0xFF}, 0o600); err != nil {
		t.Fatal(err)
	}

	n := ForTrack(catalog.Track{
		ID:       "a",
		Title:    "Song",
		Artist:   "Artist",
		Album:    "Album",
		MediaRef: filepath.Join(dir, "01-song.mp3"),
	})

	if n.Summary != "Song" {
		t.Errorf("Summary = %q, want %q", n.Summary, "Song")
	}
	if n.Body != "Artist - Album" {
		t.Errorf("Body = %q, want %q", n.Body, "Artist - Album")
	}
	if n.Icon != coverPath {
		t.Errorf("Icon = %q, want %q", n.Icon, coverPath)
	}
	if n.Urgency != Low {
		t.Errorf("Urgency = %d, want Low", n.Urgency)
	}
	if n.Expire != trackExpire {
		t.Errorf("Expire = %v, want %v", n.Expire, trackExpire)
	}
}

func TestForTrack_MinimalTrack(t *testing.T) {
	n := ForTrack(catalog.Track{ID: "t1"})
	if n.Summary != "t1" {
		t.Errorf("Summary = %q, want id fallback", n.Summary)
	}
	if n.Body != "" || n.Icon != "" {
		t.Errorf("Body/Icon = %q/%q, want empty", n.Body, n.Icon)
	}
}

func TestTrackWatcher_ReplacesPrevious(t *testing.T) {
	rec := &recordingSender{}
	w := NewTrackWatcher(rec, nil)

	w.Show(catalog.Track{ID: "a", Title: "A"})
	w.Show(catalog.Track{ID: "b", Title: "B"})

	if len(rec.sent) != 2 {
		t.Fatalf("sent %d notifications, want 2", len(rec.sent))
	}
	if rec.sent[0].Replaces != 0 {
		t.Errorf("first Replaces = %d, want 0", rec.sent[0].Replaces)
	}
	if rec.sent[1].Replaces != 1 {
		t.Errorf("second Replaces = %d, want 1", rec.sent[1].Replaces)
	}
}

func TestTrackWatcher_ErrorKeepsLastID(t *testing.T) {
	rec := &recordingSender{}
	w := NewTrackWatcher(rec, nil)
	w.Show(catalog.Track{ID: "a"})

	rec.err = errors.New("no server")
	w.Show(catalog.Track{ID: "b"})

	if w.lastID != 1 {
		t.Errorf("lastID = %d, want 1", w.lastID)
	}
}

func TestTrackWatcher_Watch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		cat := catalog.New([]catalog.Track{
			{ID: "a", Title: "A", Duration: time.Minute},
		}, nil, nil)
		e := playback.New(cat, player.NewMock(), playback.Options{})

		rec := &recordingSender{}
		w := NewTrackWatcher(rec, nil)
		done := make(chan struct{})
		go func() {
			w.Watch(context.Background(), e.Subscribe())
			close(done)
		}()
		synctest.Wait()

		if err := e.LoadAndPlay("a"); err != nil {
			t.Fatalf("LoadAndPlay: %v", err)
		}
		synctest.Wait()

		if len(rec.sent) != 1 || rec.sent[0].Summary != "A" {
			t.Errorf("sent = %+v, want one notification for A", rec.sent)
		}

		_ = e.Close()
		<-done
	})
}
