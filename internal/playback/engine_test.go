//nolint:goconst // test file with repeated string literals
package playback

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/cadence/internal/catalog"
	"github.com/llehouerou/cadence/internal/player"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Track{
		{ID: "a", Title: "A", Duration: 200 * time.Second},
		{ID: "b", Title: "B", Duration: 233 * time.Second},
		{ID: "c", Title: "C", Duration: 180 * time.Second},
		{ID: "d", Title: "D", Duration: 60 * time.Second, MediaRef: "/music/d.mp3"},
	}, nil, nil)
}

func newTestEngine(t *testing.T) (*Engine, *player.Mock) {
	t.Helper()
	out := player.NewMock()
	e := New(testCatalog(), out, Options{Rand: rand.New(rand.NewPCG(7, 11))})
	t.Cleanup(func() { _ = e.Close() })
	return e, out
}

func currentID(e *Engine) string {
	return e.Snapshot().CurrentID()
}

func TestNew_Defaults(t *testing.T) {
	e, out := newTestEngine(t)
	s := e.Snapshot()

	assert.Nil(t, s.Current)
	assert.False(t, s.Playing)
	assert.Equal(t, DefaultVolume, s.Volume)
	assert.Equal(t, RepeatOff, s.Repeat)
	assert.Equal(t, -1, s.Index)
	assert.Equal(t, []float64{DefaultVolume}, out.Volumes())
}

func TestEngine_Seek_Clamps(t *testing.T) {
	tests := []struct {
		target time.Duration
		want   time.Duration
	}{
		{-5 * time.Second, 0},
		{0, 0},
		{90 * time.Second, 90 * time.Second},
		{200 * time.Second, 200 * time.Second},
		{500 * time.Second, 200 * time.Second},
	}

	for _, tt := range tests {
		e, out := newTestEngine(t)
		require.NoError(t, e.LoadAndPlay("a"))

		require.NoError(t, e.Seek(tt.target))

		s := e.Snapshot()
		if s.Position != tt.want {
			t.Errorf("Seek(%v): Position = %v, want %v", tt.target, s.Position, tt.want)
		}
		if !s.Playing {
			t.Errorf("Seek(%v) changed Playing", tt.target)
		}
		if seeks := out.Seeks(); len(seeks) != 1 || seeks[0] != tt.want {
			t.Errorf("Seek(%v): output seeks = %v, want [%v]", tt.target, seeks, tt.want)
		}
	}
}

func TestEngine_Seek_NoTrack(t *testing.T) {
	e, _ := newTestEngine(t)

	err := e.Seek(time.Second)
	if !errors.Is(err, ErrMissingCurrentTrack) {
		t.Errorf("Seek() error = %v, want ErrMissingCurrentTrack", err)
	}
}

func TestEngine_SeekBy(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.LoadAndPlay("a"))
	require.NoError(t, e.Seek(10*time.Second))

	require.NoError(t, e.SeekBy(5*time.Second))
	assert.Equal(t, 15*time.Second, e.Snapshot().Position)

	require.NoError(t, e.SeekBy(-time.Minute))
	assert.Equal(t, time.Duration(0), e.Snapshot().Position)
}

func TestEngine_SetVolume_Clamps(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.3, 0.3},
		{1, 1},
		{7, 1},
	}

	for _, tt := range tests {
		e, _ := newTestEngine(t)
		require.NoError(t, e.SetVolume(tt.in))
		if got := e.Snapshot().Volume; got != tt.want {
			t.Errorf("SetVolume(%v): Volume = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEngine_SetVolume_ForwardsToOutput(t *testing.T) {
	e, out := newTestEngine(t)

	require.NoError(t, e.SetVolume(0.4))
	require.NoError(t, e.SetVolume(0.4))

	assert.Equal(t, []float64{DefaultVolume, 0.4}, out.Volumes())
}

func TestEngine_LoadAndPlay(t *testing.T) {
	e, out := newTestEngine(t)

	require.NoError(t, e.LoadAndPlay("a", "a", "b", "c"))

	s := e.Snapshot()
	assert.Equal(t, "a", s.CurrentID())
	assert.True(t, s.Playing)
	assert.Equal(t, time.Duration(0), s.Position)
	assert.Equal(t, 200*time.Second, s.Duration)
	assert.Equal(t, []string{"a", "b", "c"}, s.Queue)
	assert.Equal(t, 0, s.Index)
	assert.Equal(t, []string{"virtual:a"}, out.Loads())
	assert.Equal(t, 1, out.Plays())
	assert.Equal(t, player.Playing, out.State())
}

func TestEngine_LoadAndPlay_ResetsPositionAndPlays(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.LoadAndPlay("a"))
	require.NoError(t, e.Seek(50*time.Second))
	require.NoError(t, e.TogglePlayPause())

	require.NoError(t, e.LoadAndPlay("b"))

	s := e.Snapshot()
	assert.Equal(t, "b", s.CurrentID())
	assert.Equal(t, time.Duration(0), s.Position)
	assert.True(t, s.Playing, "explicit load always plays")
}

func TestEngine_LoadAndPlay_UsesMediaRef(t *testing.T) {
	e, out := newTestEngine(t)

	require.NoError(t, e.LoadAndPlay("d"))

	assert.Equal(t, []string{"/music/d.mp3"}, out.Loads())
}

func TestEngine_LoadAndPlay_UnknownTrack(t *testing.T) {
	e, out := newTestEngine(t)

	err := e.LoadAndPlay("nope", "a", "b")

	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Nil(t, e.Snapshot().Current)
	assert.Empty(t, e.Snapshot().Queue, "queue must not change on failure")
	assert.Empty(t, out.Loads())
}

func TestEngine_LoadAndPlay_WithoutQueueKeepsQueue(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.Enqueue("a", "b", "c"))

	require.NoError(t, e.LoadAndPlay("b"))

	s := e.Snapshot()
	assert.Equal(t, []string{"a", "b", "c"}, s.Queue)
	assert.Equal(t, 1, s.Index)
}

func TestEngine_TogglePlayPause_Idempotent(t *testing.T) {
	e, out := newTestEngine(t)
	require.NoError(t, e.LoadAndPlay("a"))
	before := e.Snapshot()

	require.NoError(t, e.TogglePlayPause())
	assert.False(t, e.Snapshot().Playing)
	assert.Equal(t, player.Paused, out.State())

	require.NoError(t, e.TogglePlayPause())
	after := e.Snapshot()
	assert.Equal(t, before.Playing, after.Playing)
	assert.Equal(t, before.Position, after.Position)
	assert.Equal(t, before.CurrentID(), after.CurrentID())
	assert.Equal(t, player.Playing, out.State())
}

func TestEngine_TogglePlayPause_NoTrack(t *testing.T) {
	e, out := newTestEngine(t)

	err := e.TogglePlayPause()

	assert.ErrorIs(t, err, ErrMissingCurrentTrack)
	assert.False(t, e.Snapshot().Playing)
	assert.Zero(t, out.Plays())
}

func TestEngine_PlayPause_Explicit(t *testing.T) {
	e, out := newTestEngine(t)
	require.NoError(t, e.LoadAndPlay("a"))

	require.NoError(t, e.Play())
	assert.Equal(t, 1, out.Plays(), "Play while playing does nothing")

	require.NoError(t, e.Pause())
	require.NoError(t, e.Pause())
	assert.Equal(t, 1, out.Pauses())
	assert.False(t, e.Snapshot().Playing)
}

func TestEngine_EnqueueDequeue_RoundTrip(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.Enqueue("a", "b"))
	before := e.Snapshot().Queue

	require.NoError(t, e.Enqueue("c"))
	require.NoError(t, e.Dequeue("c"))

	assert.Equal(t, before, e.Snapshot().Queue)
}

func TestEngine_Enqueue_Unknown(t *testing.T) {
	e, _ := newTestEngine(t)

	assert.ErrorIs(t, e.Enqueue("a", "ghost"), ErrInvalidArgument)
	assert.ErrorIs(t, e.Enqueue(), ErrInvalidArgument)
	assert.Empty(t, e.Snapshot().Queue)
}

func TestEngine_Dequeue_Missing(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.Enqueue("a"))

	assert.ErrorIs(t, e.Dequeue("b"), ErrInvalidArgument)
	assert.Equal(t, []string{"a"}, e.Snapshot().Queue)
}

func TestEngine_Dequeue_CurrentKeepsPlaying(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.LoadAndPlay("b", "a", "b", "c"))

	require.NoError(t, e.Dequeue("b"))

	s := e.Snapshot()
	assert.Equal(t, "b", s.CurrentID())
	assert.True(t, s.Playing)
	assert.Equal(t, -1, s.Index)
	assert.Equal(t, []string{"a", "c"}, s.Queue)

	// Current is no longer queued: next starts from the top.
	require.NoError(t, e.SkipNext())
	assert.Equal(t, "a", currentID(e))
}

func TestEngine_ClearQueue_KeepsCurrent(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.LoadAndPlay("a", "a", "b"))

	e.ClearQueue()

	s := e.Snapshot()
	assert.Empty(t, s.Queue)
	assert.Equal(t, "a", s.CurrentID())
	assert.True(t, s.Playing)
	assert.ErrorIs(t, e.SkipNext(), ErrEmptyQueue)
}

func TestEngine_Reorder(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.LoadAndPlay("a", "a", "b", "c"))

	require.NoError(t, e.Reorder(0, 2))

	s := e.Snapshot()
	assert.Equal(t, []string{"b", "c", "a"}, s.Queue)
	assert.Equal(t, 2, s.Index, "cursor follows the current entry")
}

func TestEngine_Reorder_OutOfRange(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.Enqueue("a", "b", "c"))

	for _, mv := range [][2]int{{-1, 0}, {0, 3}, {5, 1}} {
		err := e.Reorder(mv[0], mv[1])
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Reorder(%d, %d) error = %v, want ErrInvalidArgument", mv[0], mv[1], err)
		}
	}
	assert.Equal(t, []string{"a", "b", "c"}, e.Snapshot().Queue)
}

func TestEngine_SkipNext(t *testing.T) {
	e, out := newTestEngine(t)
	require.NoError(t, e.LoadAndPlay("a", "a", "b", "c"))
	require.NoError(t, e.Seek(30*time.Second))

	require.NoError(t, e.SkipNext())

	s := e.Snapshot()
	assert.Equal(t, "b", s.CurrentID())
	assert.Equal(t, time.Duration(0), s.Position)
	assert.True(t, s.Playing)
	assert.Equal(t, []string{"virtual:a", "virtual:b"}, out.Loads())
}

func TestEngine_SkipNext_WhilePausedStaysPaused(t *testing.T) {
	e, out := newTestEngine(t)
	require.NoError(t, e.LoadAndPlay("a", "a", "b"))
	require.NoError(t, e.TogglePlayPause())

	require.NoError(t, e.SkipNext())

	assert.Equal(t, "b", currentID(e))
	assert.False(t, e.Snapshot().Playing)
	assert.Equal(t, 1, out.Plays())
}

func TestEngine_SkipNext_AtEndStays(t *testing.T) {
	for _, playing := range []bool{true, false} {
		e, out := newTestEngine(t)
		require.NoError(t, e.LoadAndPlay("c", "a", "b", "c"))
		if !playing {
			require.NoError(t, e.TogglePlayPause())
		}
		require.NoError(t, e.Seek(40*time.Second))

		require.NoError(t, e.SkipNext())

		s := e.Snapshot()
		assert.Equal(t, "c", s.CurrentID())
		assert.Equal(t, time.Duration(0), s.Position)
		assert.Equal(t, playing, s.Playing, "manual skip never changes Playing")
		assert.Len(t, out.Loads(), 1, "no reload when staying")
	}
}

func TestEngine_SkipPrevious(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.LoadAndPlay("b", "a", "b", "c"))
	require.NoError(t, e.Seek(100*time.Second))

	require.NoError(t, e.SkipPrevious())
	assert.Equal(t, "a", currentID(e), "previous ignores how far into the track we are")

	require.NoError(t, e.SkipPrevious())
	s := e.Snapshot()
	assert.Equal(t, "a", s.CurrentID())
	assert.Equal(t, time.Duration(0), s.Position)
}

func TestEngine_Skip_EmptyQueue(t *testing.T) {
	e, _ := newTestEngine(t)

	assert.ErrorIs(t, e.SkipNext(), ErrEmptyQueue)
	assert.ErrorIs(t, e.SkipPrevious(), ErrEmptyQueue)

	require.NoError(t, e.LoadAndPlay("a"))
	assert.ErrorIs(t, e.SkipNext(), ErrEmptyQueue)
	assert.Equal(t, "a", currentID(e))
}

func TestEngine_SkipNext_RepeatQueueWraps(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.LoadAndPlay("c", "a", "b", "c"))
	require.NoError(t, e.SetRepeatMode(RepeatQueue))

	require.NoError(t, e.SkipNext())

	assert.Equal(t, "a", currentID(e))
}

func TestEngine_SkipPrevious_RepeatQueueWraps(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.LoadAndPlay("a", "a", "b", "c"))
	require.NoError(t, e.SetRepeatMode(RepeatQueue))

	require.NoError(t, e.SkipPrevious())

	assert.Equal(t, "c", currentID(e))
}

func TestEngine_SkipNext_RepeatTrackRestarts(t *testing.T) {
	e, out := newTestEngine(t)
	require.NoError(t, e.LoadAndPlay("a", "a", "b"))
	require.NoError(t, e.SetRepeatMode(RepeatTrack))
	require.NoError(t, e.Seek(20*time.Second))

	require.NoError(t, e.SkipNext())

	s := e.Snapshot()
	assert.Equal(t, "a", s.CurrentID())
	assert.Equal(t, time.Duration(0), s.Position)
	assert.True(t, s.Playing)
	assert.Equal(t, []time.Duration{20 * time.Second, 0}, out.Seeks())
}

func TestEngine_SkipNext_SkipsUnresolvable(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.LoadAndPlay("a", "a", "ghost", "b"))

	require.NoError(t, e.SkipNext())

	assert.Equal(t, "b", currentID(e))
	assert.Equal(t, 2, e.Snapshot().Index)
}

func TestEngine_ShuffleRoundTrip_KeepsNextTarget(t *testing.T) {
	ids := []string{"a", "b", "c", "d"}
	for start := range ids {
		e, _ := newTestEngine(t)
		require.NoError(t, e.LoadAndPlay(ids[start], ids...))

		assert.True(t, e.ToggleShuffle())
		assert.False(t, e.ToggleShuffle())
		require.NoError(t, e.SkipNext())

		want := ids[start]
		if start+1 < len(ids) {
			want = ids[start+1]
		}
		if got := currentID(e); got != want {
			t.Errorf("from %s: next after shuffle round trip = %s, want %s", ids[start], got, want)
		}
	}
}

func TestEngine_Shuffle_DoesNotInterrupt(t *testing.T) {
	e, out := newTestEngine(t)
	require.NoError(t, e.LoadAndPlay("b", "a", "b", "c", "d"))
	require.NoError(t, e.Seek(42*time.Second))

	e.SetShuffle(true)

	s := e.Snapshot()
	assert.True(t, s.Shuffle)
	assert.True(t, s.Playing)
	assert.Equal(t, 42*time.Second, s.Position)
	assert.Equal(t, "b", s.CurrentID())
	assert.Equal(t, 1, s.Order[1], "current keeps its slot in the permutation")
	assert.Equal(t, []string{"a", "b", "c", "d"}, s.Queue, "stored order is untouched")
	assert.Len(t, out.Loads(), 1)
}

func TestEngine_Shuffle_VisitsEveryTrack(t *testing.T) {
	e, _ := newTestEngine(t)
	e.SetShuffle(true)
	require.NoError(t, e.Enqueue("a", "b", "c", "d"))

	seen := map[string]bool{}
	for range 4 {
		require.NoError(t, e.SkipNext())
		seen[currentID(e)] = true
	}

	assert.Len(t, seen, 4)
}

func TestEngine_Shuffle_EnqueueKeepsCurrentSlot(t *testing.T) {
	for seed := range uint64(20) {
		out := player.NewMock()
		e := New(testCatalog(), out, Options{Rand: rand.New(rand.NewPCG(seed, seed+1))})
		require.NoError(t, e.LoadAndPlay("a", "a", "b", "c"))
		e.SetShuffle(true)
		require.NoError(t, e.SkipNext())

		before := e.Snapshot()
		slot := slices.Index(before.Order, before.Index)
		played := make([]string, 0, 4)
		for _, idx := range before.Order[:slot+1] {
			played = append(played, before.Queue[idx])
		}

		require.NoError(t, e.Enqueue("d"))
		after := e.Snapshot()
		assert.Equal(t, slot, slices.Index(after.Order, after.Index),
			"seed %d: current moved from slot %d, order %v -> %v", seed, slot, before.Order, after.Order)

		for out.SimulateEnded(); e.Snapshot().Playing; out.SimulateEnded() {
			played = append(played, currentID(e))
		}
		assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, played, "seed %d", seed)
		_ = e.Close()
	}
}

func TestEngine_Shuffle_DequeueBehindCurrent(t *testing.T) {
	e, out := newTestEngine(t)
	require.NoError(t, e.LoadAndPlay("a", "a", "b", "c", "d"))
	e.SetShuffle(true)
	require.NoError(t, e.SkipNext())
	require.NoError(t, e.SkipNext())

	s := e.Snapshot()
	slot := slices.Index(s.Order, s.Index)
	behind := s.Queue[s.Order[0]]
	require.NotEqual(t, currentID(e), behind)
	require.NoError(t, e.Dequeue(behind))

	s = e.Snapshot()
	assert.Equal(t, slot-1, slices.Index(s.Order, s.Index))
	remaining := 0
	for out.SimulateEnded(); e.Snapshot().Playing; out.SimulateEnded() {
		remaining++
	}
	assert.Equal(t, len(s.Queue)-slot, remaining, "every entry ahead still plays")
}

func TestEngine_OnMediaEnded_StaleRefIgnored(t *testing.T) {
	e, out := newTestEngine(t)
	require.NoError(t, e.LoadAndPlay("a", "a", "b", "c"))
	require.NoError(t, e.SkipNext())

	out.SimulateEndedFor("virtual:a")

	s := e.Snapshot()
	assert.Equal(t, "b", s.CurrentID())
	assert.True(t, s.Playing)
	assert.Equal(t, []string{"virtual:a", "virtual:b"}, out.Loads())
}

func TestEngine_CycleRepeatMode(t *testing.T) {
	e, _ := newTestEngine(t)

	got := []RepeatMode{e.CycleRepeatMode(), e.CycleRepeatMode(), e.CycleRepeatMode()}

	assert.Equal(t, []RepeatMode{RepeatTrack, RepeatQueue, RepeatOff}, got)
}

func TestEngine_SetRepeatMode_Invalid(t *testing.T) {
	e, _ := newTestEngine(t)

	assert.ErrorIs(t, e.SetRepeatMode(RepeatMode(9)), ErrInvalidArgument)
	assert.Equal(t, RepeatOff, e.Snapshot().Repeat)
}

func TestEngine_OnMediaEnded_RepeatTrack(t *testing.T) {
	e, out := newTestEngine(t)
	sub := e.Subscribe()
	require.NoError(t, e.LoadAndPlay("a", "a", "b"))
	require.NoError(t, e.SetRepeatMode(RepeatTrack))

	const n = 5
	for range n {
		out.SimulateEnded()
		s := e.Snapshot()
		require.Equal(t, "a", s.CurrentID())
		require.True(t, s.Playing)
		require.Equal(t, time.Duration(0), s.Position)
	}

	assert.Len(t, out.Loads(), n+1)
	started := 0
	for len(sub.TrackStarted) > 0 {
		<-sub.TrackStarted
		started++
	}
	assert.Equal(t, n+1, started, "every replay is announced")
}

func TestEngine_OnMediaEnded_RepeatQueueWraps(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.LoadAndPlay("b", "a", "b"))
	require.NoError(t, e.SetRepeatMode(RepeatQueue))

	e.OnMediaEnded("virtual:b")

	s := e.Snapshot()
	assert.Equal(t, "a", s.CurrentID())
	assert.True(t, s.Playing)
}

func TestEngine_EndToEnd(t *testing.T) {
	e, out := newTestEngine(t)

	require.NoError(t, e.LoadAndPlay("a", "a", "b"))
	s := e.Snapshot()
	assert.Equal(t, "a", s.CurrentID())
	assert.True(t, s.Playing)
	assert.Equal(t, time.Duration(0), s.Position)

	out.SimulateTimeUpdate(199 * time.Second)
	out.SimulateEnded()
	s = e.Snapshot()
	assert.Equal(t, "b", s.CurrentID())
	assert.Equal(t, time.Duration(0), s.Position)
	assert.True(t, s.Playing)

	out.SimulateEnded()
	s = e.Snapshot()
	assert.Equal(t, "b", s.CurrentID())
	assert.False(t, s.Playing)
	assert.Equal(t, 233*time.Second, s.Position, "finished track shows its end")
	assert.True(t, s.Finished())

	// A late end event changes nothing.
	out.SimulateEnded()
	assert.Equal(t, s.Position, e.Snapshot().Position)
}

func TestEngine_PlayAfterFinishedReloads(t *testing.T) {
	e, out := newTestEngine(t)
	require.NoError(t, e.LoadAndPlay("a", "a"))
	out.SimulateEnded()
	require.False(t, e.Snapshot().Playing)

	require.NoError(t, e.TogglePlayPause())

	s := e.Snapshot()
	assert.True(t, s.Playing)
	assert.Equal(t, time.Duration(0), s.Position)
	assert.Equal(t, []string{"virtual:a", "virtual:a"}, out.Loads())
}

func TestEngine_OnMediaTimeUpdate(t *testing.T) {
	e, _ := newTestEngine(t)

	e.OnMediaTimeUpdate(10 * time.Second)
	assert.Equal(t, time.Duration(0), e.Snapshot().Position, "ignored with no track")

	require.NoError(t, e.LoadAndPlay("a"))
	e.OnMediaTimeUpdate(10 * time.Second)
	assert.Equal(t, 10*time.Second, e.Snapshot().Position)

	e.OnMediaTimeUpdate(time.Hour)
	assert.Equal(t, 200*time.Second, e.Snapshot().Position)
}

func TestEngine_OnMediaDuration(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.LoadAndPlay("a"))
	e.OnMediaTimeUpdate(150 * time.Second)

	e.OnMediaDuration(120 * time.Second)
	s := e.Snapshot()
	assert.Equal(t, 120*time.Second, s.Duration)
	assert.Equal(t, 120*time.Second, s.Position)

	e.OnMediaDuration(-time.Second)
	assert.Equal(t, 120*time.Second, e.Snapshot().Duration)
}

func TestEngine_SleepTimer(t *testing.T) {
	e, out := newTestEngine(t)
	require.NoError(t, e.LoadAndPlay("a"))
	require.NoError(t, e.SetSleepTimer(5*time.Second))

	for i := range 4 {
		e.Tick()
		require.True(t, e.Snapshot().Playing, "tick %d", i+1)
	}
	e.Tick()

	s := e.Snapshot()
	assert.False(t, s.Playing)
	assert.Equal(t, time.Duration(0), s.SleepRemaining)
	assert.Equal(t, player.Paused, out.State())

	// Further ticks leave it off.
	e.Tick()
	assert.Equal(t, time.Duration(0), e.Snapshot().SleepRemaining)
}

func TestEngine_SleepTimer_OnlyCountsWhilePlaying(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.LoadAndPlay("a"))
	require.NoError(t, e.SetSleepTimer(3*time.Second))
	require.NoError(t, e.TogglePlayPause())

	for range 10 {
		e.Tick()
	}
	assert.Equal(t, 3*time.Second, e.Snapshot().SleepRemaining)

	// Time updates do not count the timer down.
	require.NoError(t, e.TogglePlayPause())
	e.OnMediaTimeUpdate(30 * time.Second)
	assert.Equal(t, 3*time.Second, e.Snapshot().SleepRemaining)
}

func TestEngine_SleepTimer_CancelAndInvalid(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.LoadAndPlay("a"))
	require.NoError(t, e.SetSleepTimer(time.Minute))

	require.NoError(t, e.SetSleepTimer(0))
	e.Tick()
	assert.True(t, e.Snapshot().Playing)
	assert.ErrorIs(t, e.SetSleepTimer(-time.Second), ErrInvalidArgument)
}

func TestEngine_PlaybackFailed_Advances(t *testing.T) {
	e, out := newTestEngine(t)
	sub := e.Subscribe()
	out.SetLoadError("virtual:a", errors.New("decode error"))

	require.NoError(t, e.LoadAndPlay("a", "a", "b"))

	s := e.Snapshot()
	assert.Equal(t, "b", s.CurrentID())
	assert.True(t, s.Playing)
	require.Len(t, sub.Error, 1)
	ev := <-sub.Error
	assert.ErrorIs(t, ev.Err, ErrPlaybackFailed)
	assert.Equal(t, "virtual:a", ev.Ref)
}

func TestEngine_PlaybackFailed_StaleRefIgnored(t *testing.T) {
	e, out := newTestEngine(t)
	require.NoError(t, e.LoadAndPlay("a", "a", "b"))
	require.NoError(t, e.SkipNext())

	out.SimulateFailure("virtual:a", errors.New("late"))

	assert.Equal(t, "b", currentID(e))
	assert.True(t, e.Snapshot().Playing)
}

func TestEngine_PlaybackFailed_AllFailingStops(t *testing.T) {
	e, out := newTestEngine(t)
	for _, id := range []string{"a", "b", "c"} {
		out.SetLoadError("virtual:"+id, errors.New("broken"))
	}
	require.NoError(t, e.SetRepeatMode(RepeatQueue))

	require.NoError(t, e.LoadAndPlay("a", "a", "b", "c"))

	s := e.Snapshot()
	assert.False(t, s.Playing)
	assert.LessOrEqual(t, len(out.Loads()), 4)
}

func TestEngine_PlaybackFailed_RepeatTrackMovesOn(t *testing.T) {
	e, out := newTestEngine(t)
	out.SetLoadError("virtual:a", errors.New("broken"))
	require.NoError(t, e.SetRepeatMode(RepeatTrack))

	require.NoError(t, e.LoadAndPlay("a", "a", "b"))

	assert.Equal(t, "b", currentID(e))
	assert.Equal(t, []string{"virtual:a", "virtual:b"}, out.Loads())
}

func TestEngine_SynchronousCallbacksDoNotReenter(t *testing.T) {
	e, out := newTestEngine(t)
	depth := 0
	maxDepth := 0
	out.OnLoad = func(ref string, l player.Listener) {
		depth++
		maxDepth = max(maxDepth, depth)
		l.OnMediaDuration(100 * time.Second)
		l.OnMediaEnded(ref)
		depth--
	}

	require.NoError(t, e.LoadAndPlay("a", "a", "b", "c"))

	s := e.Snapshot()
	assert.Equal(t, "c", s.CurrentID())
	assert.False(t, s.Playing)
	assert.Equal(t, 100*time.Second, s.Duration)
	assert.Equal(t, []string{"virtual:a", "virtual:b", "virtual:c"}, out.Loads())
	assert.Equal(t, 1, maxDepth, "loads must not nest")
	assert.Zero(t, out.Plays(), "tracks that ended during load are not played")
}

func TestEngine_UndoRedo(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.Enqueue("a", "b"))
	require.NoError(t, e.Enqueue("c"))

	assert.True(t, e.Undo())
	assert.Equal(t, []string{"a", "b"}, e.Snapshot().Queue)
	assert.True(t, e.Undo())
	assert.Empty(t, e.Snapshot().Queue)
	assert.False(t, e.Undo())

	assert.True(t, e.Redo())
	assert.True(t, e.Redo())
	assert.Equal(t, []string{"a", "b", "c"}, e.Snapshot().Queue)
	assert.False(t, e.Snapshot().CanRedo)
}

func TestEngine_Undo_KeepsCurrent(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.LoadAndPlay("b", "a", "b"))
	require.NoError(t, e.Dequeue("a"))

	require.True(t, e.Undo())

	s := e.Snapshot()
	assert.Equal(t, []string{"a", "b"}, s.Queue)
	assert.Equal(t, 1, s.Index)
	assert.Equal(t, "b", s.CurrentID())
}

func TestEngine_PlayIndex(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.Enqueue("a", "b", "c"))

	require.NoError(t, e.PlayIndex(2))
	assert.Equal(t, "c", currentID(e))
	assert.True(t, e.Snapshot().Playing)

	assert.ErrorIs(t, e.PlayIndex(3), ErrInvalidArgument)
	assert.Equal(t, 2, e.Snapshot().Index)
}

func TestEngine_SessionRestore(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.LoadAndPlay("b", "a", "b", "c"))
	require.NoError(t, e.Seek(42*time.Second))
	require.NoError(t, e.SetVolume(0.5))
	require.NoError(t, e.SetRepeatMode(RepeatQueue))
	saved := e.Session()
	saved.Queue = append(saved.Queue, "ghost")

	restored, out := newTestEngine(t)
	require.NoError(t, restored.Restore(saved))

	s := restored.Snapshot()
	assert.Equal(t, "b", s.CurrentID())
	assert.False(t, s.Playing, "restored sessions start paused")
	assert.Equal(t, 42*time.Second, s.Position)
	assert.Equal(t, 0.5, s.Volume)
	assert.Equal(t, RepeatQueue, s.Repeat)
	assert.Equal(t, []string{"a", "b", "c"}, s.Queue)
	assert.Equal(t, 1, s.Index)
	assert.Equal(t, []string{"virtual:b"}, out.Loads())
	assert.Equal(t, []time.Duration{42 * time.Second}, out.Seeks())
	assert.Zero(t, out.Plays())

	// Playing a restored session announces the track.
	sub := restored.Subscribe()
	require.NoError(t, restored.TogglePlayPause())
	require.Len(t, sub.TrackStarted, 1)
}

func TestEngine_SnapshotIsImmutable(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.Enqueue("a", "b"))

	s := e.Snapshot()
	s.Queue[0] = "zzz"

	assert.True(t, slices.Equal(e.Snapshot().Queue, []string{"a", "b"}))
}
