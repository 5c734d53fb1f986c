package playback

import (
	"testing"
	"time"

	"github.com/llehouerou/cadence/internal/catalog"
)

func TestState_Progress(t *testing.T) {
	tests := []struct {
		name     string
		position time.Duration
		duration time.Duration
		want     float64
	}{
		{"no duration", 10 * time.Second, 0, 0},
		{"start", 0, time.Minute, 0},
		{"half", 30 * time.Second, time.Minute, 0.5},
		{"past end", 2 * time.Minute, time.Minute, 1},
	}
	for _, tt := range tests {
		s := State{Position: tt.position, Duration: tt.duration}
		if got := s.Progress(); got != tt.want {
			t.Errorf("%s: Progress() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestState_Finished(t *testing.T) {
	track := &catalog.Track{ID: "a", Duration: time.Minute}

	tests := []struct {
		name  string
		state State
		want  bool
	}{
		{"empty", State{}, false},
		{"playing at end", State{Current: track, Playing: true, Position: time.Minute, Duration: time.Minute}, false},
		{"stopped at end", State{Current: track, Position: time.Minute, Duration: time.Minute}, true},
		{"paused mid-track", State{Current: track, Position: time.Second, Duration: time.Minute}, false},
	}
	for _, tt := range tests {
		if got := tt.state.Finished(); got != tt.want {
			t.Errorf("%s: Finished() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestState_CurrentID(t *testing.T) {
	if got := (State{}).CurrentID(); got != "" {
		t.Errorf("CurrentID() = %q, want empty", got)
	}
	s := State{Current: &catalog.Track{ID: "a"}}
	if !s.HasTrack() || s.CurrentID() != "a" {
		t.Errorf("HasTrack() = %v, CurrentID() = %q", s.HasTrack(), s.CurrentID())
	}
}

func TestParseRepeatMode(t *testing.T) {
	for in, want := range map[string]RepeatMode{"off": RepeatOff, "track": RepeatTrack, "queue": RepeatQueue} {
		got, ok := ParseRepeatMode(in)
		if !ok || got != want {
			t.Errorf("ParseRepeatMode(%q) = %v, %v; want %v, true", in, got, ok, want)
		}
	}
}
