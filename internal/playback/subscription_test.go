package playback

import (
	"errors"
	"testing"
	"testing/synctest"
	"time"

	"github.com/llehouerou/cadence/internal/catalog"
)

func TestNewSubscription_ChannelsReadable(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		sub := newSubscription()

		sub.sendState(StateChange{Current: State{Playing: true}})
		sub.sendTrack(TrackStarted{Track: catalog.Track{ID: "a"}, Index: 1})
		sub.sendError(ErrorEvent{Operation: "load", Ref: "/a.mp3", Err: ErrPlaybackFailed})

		e := <-sub.StateChanged
		if !e.Current.Playing {
			t.Error("StateChanged.Current.Playing = false, want true")
		}

		tr := <-sub.TrackStarted
		if tr.Track.ID != "a" || tr.Index != 1 {
			t.Errorf("TrackStarted = %+v, want a at 1", tr)
		}

		er := <-sub.Error
		if !errors.Is(er.Err, ErrPlaybackFailed) {
			t.Errorf("Error.Err = %v, want ErrPlaybackFailed", er.Err)
		}
	})
}

func TestSubscription_Close_SignalsDone(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		sub := newSubscription()
		sub.close()
		<-sub.Done
	})
}

func TestSubscription_NonBlocking_DropsWhenFull(t *testing.T) {
	sub := newSubscription()

	for range eventBuffer + 5 {
		sub.sendState(StateChange{})
	}

	count := 0
	for {
		select {
		case <-sub.StateChanged:
			count++
		default:
			goto done
		}
	}
done:
	if count != eventBuffer {
		t.Errorf("received %d events, want %d (buffer size)", count, eventBuffer)
	}
}

func TestEngine_Subscribe_ReceivesEvents(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		e, _ := newTestEngine(t)
		sub := e.Subscribe()

		if err := e.LoadAndPlay("a", "a", "b"); err != nil {
			t.Fatalf("LoadAndPlay() error = %v", err)
		}

		select {
		case ev := <-sub.TrackStarted:
			if ev.Track.ID != "a" || ev.Index != 0 {
				t.Errorf("TrackStarted = %s at %d, want a at 0", ev.Track.ID, ev.Index)
			}
		case <-time.After(time.Second):
			t.Fatal("no TrackStarted event")
		}

		select {
		case ev := <-sub.StateChanged:
			if ev.Previous.Playing || !ev.Current.Playing {
				t.Errorf("StateChanged playing %v -> %v, want false -> true", ev.Previous.Playing, ev.Current.Playing)
			}
		case <-time.After(time.Second):
			t.Fatal("no StateChanged event")
		}
	})
}

func TestEngine_Close_EndsSubscriptions(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		e, _ := newTestEngine(t)
		sub := e.Subscribe()

		if err := e.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
		<-sub.Done

		late := e.Subscribe()
		<-late.Done
	})
}
