package player

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// VirtualScheme prefixes media refs that have no audio behind them.
const VirtualScheme = "virtual:"

// VirtualRef builds the media ref for a catalog entry without audio.
func VirtualRef(id string) string {
	return VirtualScheme + id
}

// IsVirtualRef reports whether ref should play on the virtual output.
func IsVirtualRef(ref string) bool {
	return ref == "" || strings.HasPrefix(ref, VirtualScheme)
}

// DurationFunc resolves the length of a virtual ref.
type DurationFunc func(ref string) (time.Duration, bool)

// Virtual is a silent output whose position moves only when Advance is
// called. It stands in for real audio when a catalog entry has no file.
type Virtual struct {
	mu         sync.Mutex
	listener   Listener
	durationOf DurationFunc

	ref      string
	state    State
	position time.Duration
	duration time.Duration
	level    float64
}

// NewVirtual creates a virtual output.
func NewVirtual(durationOf DurationFunc) *Virtual {
	return &Virtual{
		listener:   nopListener{},
		durationOf: durationOf,
		level:      1,
	}
}

// SetListener registers the event receiver.
func (v *Virtual) SetListener(l Listener) {
	if l == nil {
		l = nopListener{}
	}
	v.mu.Lock()
	v.listener = l
	v.mu.Unlock()
}

// Load resets the position and reports the ref's duration.
func (v *Virtual) Load(ref string) error {
	d, ok := v.durationOf(ref)
	if !ok || d <= 0 {
		return fmt.Errorf("virtual load %q: unknown duration", ref)
	}

	v.mu.Lock()
	v.ref = ref
	v.duration = d
	v.position = 0
	v.state = Paused
	l := v.listener
	v.mu.Unlock()

	l.OnMediaDuration(d)
	l.OnMediaTimeUpdate(0)
	return nil
}

// Play starts the clock.
func (v *Virtual) Play() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state == Paused {
		v.state = Playing
	}
}

// Pause stops the clock.
func (v *Virtual) Pause() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state == Playing {
		v.state = Paused
	}
}

// SeekTo moves the position, clamped to the loaded duration.
func (v *Virtual) SeekTo(position time.Duration) {
	v.mu.Lock()
	if !v.state.Loaded() {
		v.mu.Unlock()
		return
	}
	v.position = min(max(position, 0), v.duration)
	pos := v.position
	l := v.listener
	v.mu.Unlock()

	l.OnMediaTimeUpdate(pos)
}

// SetVolume records the level; there is nothing to attenuate.
func (v *Virtual) SetVolume(level float64) {
	v.mu.Lock()
	v.level = clampLevel(level)
	v.mu.Unlock()
}

// Advance moves the clock forward by d while playing, reporting the new
// position and, on reaching the duration, the end of media.
func (v *Virtual) Advance(d time.Duration) {
	v.mu.Lock()
	if v.state != Playing || d <= 0 {
		v.mu.Unlock()
		return
	}
	v.position += d
	ended := v.position >= v.duration
	if ended {
		v.position = v.duration
		v.state = Stopped
	}
	pos, ref := v.position, v.ref
	l := v.listener
	v.mu.Unlock()

	l.OnMediaTimeUpdate(pos)
	if ended {
		l.OnMediaEnded(ref)
	}
}

// Position returns the clock position.
func (v *Virtual) Position() time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.position
}

// State returns the output state.
func (v *Virtual) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Close stops the clock.
func (v *Virtual) Close() error {
	v.mu.Lock()
	v.state = Stopped
	v.mu.Unlock()
	return nil
}
