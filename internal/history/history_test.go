package history

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"testing/synctest"

	"github.com/llehouerou/cadence/internal/catalog"
	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/player"
)

type fakeSaver struct {
	mu    sync.Mutex
	saved [][]string
	err   error
}

func (f *fakeSaver) SaveRecent(_ context.Context, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, ids)
	return f.err
}

func (f *fakeSaver) last() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.saved) == 0 {
		return nil
	}
	return f.saved[len(f.saved)-1]
}

func TestRecord_MostRecentFirst(t *testing.T) {
	r := NewRecorder(5, nil)
	for _, id := range []string{"a", "b", "c"} {
		r.Record(id)
	}

	want := []string{"c", "b", "a"}
	if got := r.IDs(); !slices.Equal(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
}

func TestRecord_Deduplicates(t *testing.T) {
	r := NewRecorder(5, []string{"a", "b", "c"})

	if !r.Record("c") {
		t.Error("Record(c) = false, want true")
	}
	want := []string{"c", "a", "b"}
	if got := r.IDs(); !slices.Equal(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}

	if r.Record("c") {
		t.Error("Record of current head should report no change")
	}
}

func TestRecord_Trims(t *testing.T) {
	r := NewRecorder(3, nil)
	for _, id := range []string{"a", "b", "c", "d"} {
		r.Record(id)
	}
	want := []string{"d", "c", "b"}
	if got := r.IDs(); !slices.Equal(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
}

func TestRecord_EmptyID(t *testing.T) {
	r := NewRecorder(3, nil)
	if r.Record("") {
		t.Error("Record(\"\") = true, want false")
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}

func TestNewRecorder_Defaults(t *testing.T) {
	initial := []string{"a", "a", "b"}
	r := NewRecorder(0, initial)
	if r.max != DefaultSize {
		t.Errorf("max = %d, want %d", r.max, DefaultSize)
	}
	if got := r.IDs(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("IDs() = %v, want [a b]", got)
	}
}

func TestRecord_Saves(t *testing.T) {
	r := NewRecorder(3, nil)
	s := &fakeSaver{}
	r.SetSaver(s, nil)

	r.Record("a")
	r.Record("b")
	if got := s.last(); !slices.Equal(got, []string{"b", "a"}) {
		t.Errorf("saved = %v, want [b a]", got)
	}

	s.err = errors.New("disk full")
	if !r.Record("c") {
		t.Error("Record should succeed even when the saver fails")
	}
}

type oneTrackCatalog struct{}

func (oneTrackCatalog) Track(id string) (catalog.Track, bool) {
	if id != "a" && id != "b" {
		return catalog.Track{}, false
	}
	return catalog.Track{ID: id, Title: id}, true
}

func TestWatch_RecordsStartedTracks(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		out := player.NewMock()
		e := playback.New(oneTrackCatalog{}, out, playback.Options{})
		defer e.Close()

		r := NewRecorder(5, nil)
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			r.Watch(ctx, e.Subscribe())
			close(done)
		}()
		synctest.Wait()

		if err := e.LoadAndPlay("a", "a", "b"); err != nil {
			t.Fatalf("LoadAndPlay: %v", err)
		}
		if err := e.SkipNext(); err != nil {
			t.Fatalf("SkipNext: %v", err)
		}
		synctest.Wait()

		want := []string{"b", "a"}
		if got := r.IDs(); !slices.Equal(got, want) {
			t.Errorf("IDs() = %v, want %v", got, want)
		}

		cancel()
		<-done
	})
}
