package playback

// eventBuffer is the per-channel backlog a slow subscriber may accumulate
// before further events are dropped.
const eventBuffer = 16

// Subscription delivers engine events to one consumer. Sends never block
// the engine: when a channel is full the event is dropped, and consumers
// that need the full picture read Engine.Snapshot.
type Subscription struct {
	StateChanged <-chan StateChange
	TrackStarted <-chan TrackStarted
	Error        <-chan ErrorEvent
	// Done is closed when the engine closes.
	Done <-chan struct{}

	state chan StateChange
	track chan TrackStarted
	errs  chan ErrorEvent
	done  chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		state: make(chan StateChange, eventBuffer),
		track: make(chan TrackStarted, eventBuffer),
		errs:  make(chan ErrorEvent, eventBuffer),
		done:  make(chan struct{}),
	}
	s.StateChanged, s.TrackStarted, s.Error, s.Done = s.state, s.track, s.errs, s.done
	return s
}

func (s *Subscription) close() { close(s.done) }

func (s *Subscription) sendState(e StateChange)  { offer(s.state, e) }
func (s *Subscription) sendTrack(e TrackStarted) { offer(s.track, e) }
func (s *Subscription) sendError(e ErrorEvent)   { offer(s.errs, e) }

func offer[T any](ch chan T, v T) {
	select {
	case ch <- v:
	default:
	}
}
