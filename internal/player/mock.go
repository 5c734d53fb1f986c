package player

import (
	"slices"
	"sync"
	"time"
)

// Mock is a recording test double. Events are fired explicitly through the
// Simulate helpers; OnLoad, when set, runs inside Load to mimic outputs
// that call back synchronously.
type Mock struct {
	mu       sync.Mutex
	listener Listener
	loadErr  map[string]error

	state   State
	ref     string
	loads   []string
	plays   int
	pauses  int
	seeks   []time.Duration
	volumes []float64
	closed  bool

	// OnLoad is called after a successful Load with the listener.
	OnLoad func(ref string, l Listener)
}

// NewMock creates a new mock output.
func NewMock() *Mock {
	return &Mock{
		listener: nopListener{},
		loadErr:  make(map[string]error),
	}
}

func (m *Mock) SetListener(l Listener) {
	if l == nil {
		l = nopListener{}
	}
	m.mu.Lock()
	m.listener = l
	m.mu.Unlock()
}

func (m *Mock) Load(ref string) error {
	m.mu.Lock()
	m.loads = append(m.loads, ref)
	if err := m.loadErr[ref]; err != nil {
		m.mu.Unlock()
		return err
	}
	m.state = Paused
	m.ref = ref
	hook, l := m.OnLoad, m.listener
	m.mu.Unlock()

	if hook != nil {
		hook(ref, l)
	}
	return nil
}

func (m *Mock) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plays++
	if m.state == Paused {
		m.state = Playing
	}
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauses++
	if m.state == Playing {
		m.state = Paused
	}
}

func (m *Mock) SeekTo(p time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seeks = append(m.seeks, p)
}

func (m *Mock) SetVolume(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volumes = append(m.volumes, level)
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.state = Stopped
	return nil
}

// Test helpers

// SetLoadError makes Load(ref) fail with err.
func (m *Mock) SetLoadError(ref string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr[ref] = err
}

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) Loads() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.loads)
}

func (m *Mock) Plays() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.plays
}

func (m *Mock) Pauses() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pauses
}

func (m *Mock) Seeks() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.seeks)
}

func (m *Mock) Volumes() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.volumes)
}

func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *Mock) currentListener() Listener {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listener
}

// SimulateTimeUpdate reports a position.
func (m *Mock) SimulateTimeUpdate(p time.Duration) {
	m.currentListener().OnMediaTimeUpdate(p)
}

// SimulateDuration reports a media length.
func (m *Mock) SimulateDuration(d time.Duration) {
	m.currentListener().OnMediaDuration(d)
}

// SimulateEnded reports the end of the last loaded media.
func (m *Mock) SimulateEnded() {
	m.mu.Lock()
	m.state = Stopped
	ref := m.ref
	m.mu.Unlock()
	m.currentListener().OnMediaEnded(ref)
}

// SimulateEndedFor reports the end of ref, loaded or not.
func (m *Mock) SimulateEndedFor(ref string) {
	m.currentListener().OnMediaEnded(ref)
}

// SimulateFailure reports a playback failure for ref.
func (m *Mock) SimulateFailure(ref string, err error) {
	m.currentListener().OnPlaybackFailed(ref, err)
}
