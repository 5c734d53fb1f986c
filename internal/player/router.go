package player

import (
	"sync"
	"time"
)

// Router sends file refs to the file output and virtual refs to the
// virtual output. Transport calls go to whichever output loaded last.
type Router struct {
	mu      sync.Mutex
	files   Interface
	virtual Interface
	active  Interface
}

// NewRouter creates a router. files may be nil when no audio device is
// wanted; every ref then plays virtually.
func NewRouter(files, virtual Interface) *Router {
	return &Router{files: files, virtual: virtual, active: virtual}
}

// Load picks the output for ref and loads it there.
func (r *Router) Load(ref string) error {
	target := r.virtual
	if r.files != nil && !IsVirtualRef(ref) {
		target = r.files
	}

	r.mu.Lock()
	prev := r.active
	r.active = target
	r.mu.Unlock()

	if prev != target {
		prev.Pause()
	}
	return target.Load(ref)
}

func (r *Router) current() Interface {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

func (r *Router) Play()                  { r.current().Play() }
func (r *Router) Pause()                 { r.current().Pause() }
func (r *Router) SeekTo(p time.Duration) { r.current().SeekTo(p) }

// SetVolume applies the level to both outputs.
func (r *Router) SetVolume(level float64) {
	if r.files != nil {
		r.files.SetVolume(level)
	}
	r.virtual.SetVolume(level)
}

// SetListener registers l on both outputs.
func (r *Router) SetListener(l Listener) {
	if r.files != nil {
		r.files.SetListener(l)
	}
	r.virtual.SetListener(l)
}

// Close closes both outputs.
func (r *Router) Close() error {
	var err error
	if r.files != nil {
		err = r.files.Close()
	}
	if verr := r.virtual.Close(); err == nil {
		err = verr
	}
	return err
}
