package player

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

const (
	speakerSampleRate = beep.SampleRate(44100)
	reportInterval    = 250 * time.Millisecond
)

// Speaker plays audio files through the system audio device.
//
// Every Load bumps a generation counter; end-of-media callbacks from an
// older generation are dropped so a track replaced mid-flight never
// reports completion.
type Speaker struct {
	mu          sync.Mutex
	listener    Listener
	logger      *slog.Logger
	initialized bool

	ref      string
	state    State
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	streamer beep.StreamSeekCloser
	format   beep.Format
	gen      uint64
	level    float64

	done chan struct{}
	wg   sync.WaitGroup
}

// NewSpeaker creates a speaker output and starts its position reporter.
// The audio device is opened lazily on the first Load.
func NewSpeaker(logger *slog.Logger) *Speaker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Speaker{
		listener: nopListener{},
		logger:   logger,
		level:    1,
		done:     make(chan struct{}),
	}
	s.wg.Add(1)
	go s.reportLoop()
	return s
}

// SetListener registers the event receiver.
func (s *Speaker) SetListener(l Listener) {
	if l == nil {
		l = nopListener{}
	}
	s.mu.Lock()
	s.listener = l
	s.mu.Unlock()
}

// Load decodes the file at ref and queues it paused on the device.
func (s *Speaker) Load(ref string) error {
	streamer, format, err := openStream(ref)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if err := s.initLocked(); err != nil {
		s.mu.Unlock()
		streamer.Close()
		return err
	}
	s.stopLocked()

	s.gen++
	gen := s.gen
	s.ref = ref
	s.streamer = streamer
	s.format = format

	var out beep.Streamer = streamer
	if format.SampleRate != speakerSampleRate {
		out = beep.Resample(4, format.SampleRate, speakerSampleRate, streamer)
	}
	s.ctrl = &beep.Ctrl{Streamer: out, Paused: true}
	vol, silent := levelToVolume(s.level)
	s.volume = &effects.Volume{Streamer: s.ctrl, Base: 2, Volume: vol, Silent: silent}
	s.state = Paused
	l := s.listener
	duration := format.SampleRate.D(streamer.Len())
	s.mu.Unlock()

	speaker.Play(beep.Seq(s.volume, beep.Callback(func() {
		// Runs under the speaker lock; hand off before touching listeners.
		go s.ended(gen)
	})))

	s.logger.Debug("speaker loaded", "ref", ref, "duration", duration)
	l.OnMediaDuration(duration)
	l.OnMediaTimeUpdate(0)
	return nil
}

func (s *Speaker) initLocked() error {
	if s.initialized {
		return nil
	}
	if err := speaker.Init(speakerSampleRate, speakerSampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	s.initialized = true
	return nil
}

// stopLocked releases the current stream. Caller holds s.mu.
func (s *Speaker) stopLocked() {
	if s.streamer == nil {
		return
	}
	speaker.Clear()
	if err := s.streamer.Close(); err != nil {
		s.logger.Debug("close stream", "ref", s.ref, "error", err)
	}
	s.streamer = nil
	s.ctrl = nil
	s.volume = nil
	s.state = Stopped
}

func (s *Speaker) ended(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.state == Stopped {
		s.mu.Unlock()
		return
	}
	s.state = Stopped
	l, ref := s.listener, s.ref
	s.mu.Unlock()

	l.OnMediaEnded(ref)
}

// Play resumes output of the loaded media.
func (s *Speaker) Play() {
	s.setPaused(false)
}

// Pause suspends output.
func (s *Speaker) Pause() {
	s.setPaused(true)
}

func (s *Speaker) setPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl == nil {
		return
	}
	speaker.Lock()
	s.ctrl.Paused = paused
	speaker.Unlock()
	if paused {
		s.state = Paused
	} else {
		s.state = Playing
	}
}

// SeekTo moves the read head to an absolute position.
func (s *Speaker) SeekTo(position time.Duration) {
	s.mu.Lock()
	if s.streamer == nil {
		s.mu.Unlock()
		return
	}
	n := s.format.SampleRate.N(position)
	n = min(max(n, 0), s.streamer.Len())
	speaker.Lock()
	err := s.streamer.Seek(n)
	speaker.Unlock()
	pos := s.format.SampleRate.D(n)
	l := s.listener
	ref := s.ref
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("seek failed", "ref", ref, "error", err)
		return
	}
	l.OnMediaTimeUpdate(pos)
}

// SetVolume applies a 0.0-1.0 level.
func (s *Speaker) SetVolume(level float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.level = clampLevel(level)
	if s.volume == nil {
		return
	}
	vol, silent := levelToVolume(s.level)
	speaker.Lock()
	s.volume.Volume = vol
	s.volume.Silent = silent
	speaker.Unlock()
}

// State returns the output state.
func (s *Speaker) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close stops output and the reporter goroutine.
func (s *Speaker) Close() error {
	s.mu.Lock()
	select {
	case <-s.done:
		s.mu.Unlock()
		return nil
	default:
		close(s.done)
	}
	s.gen++
	s.stopLocked()
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

// reportLoop emits time updates while playing.
func (s *Speaker) reportLoop() {
	defer s.wg.Done()
	ticker := time.NewTicker(reportInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.state != Playing || s.streamer == nil {
				s.mu.Unlock()
				continue
			}
			speaker.Lock()
			pos := s.format.SampleRate.D(s.streamer.Position())
			speaker.Unlock()
			l := s.listener
			s.mu.Unlock()

			l.OnMediaTimeUpdate(pos)
		}
	}
}
