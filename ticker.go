package glide

// Frame describes one tick of the stage clock.
type Frame struct {
	Index uint64  // monotonically increasing frame counter
	DT    float64 // seconds since the previous frame
	Now   float64 // stage clock in seconds
}

// Ticker is a component that animates while it has unsettled state.
// Implementations are expected to be pointer types so that identity is stable
// across Register and Unregister calls.
type Ticker interface {
	Tick(f Frame)
}

// Scheduler is the single per-frame driver. Components register while they
// have unconverged state and unregister once everything settles, so a static
// page runs zero callbacks per frame.
type Scheduler struct {
	tickers []Ticker
	member  map[Ticker]bool
	pending []Ticker
	ticking bool
	dirty   bool
}

// NewScheduler creates an idle scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{member: make(map[Ticker]bool)}
}

// Register adds t to the frame loop. Registering a ticker that is already
// registered is a no-op and returns false. A ticker registered from inside a
// tick first runs on the next frame.
func (s *Scheduler) Register(t Ticker) bool {
	if t == nil || s.member[t] {
		return false
	}
	s.member[t] = true
	if s.ticking {
		s.pending = append(s.pending, t)
		return true
	}
	if !s.contains(t) {
		s.tickers = append(s.tickers, t)
	}
	return true
}

// Unregister removes t from the frame loop. Safe to call repeatedly and from
// inside a tick; in that case t does not run again this frame and the list is
// compacted when the frame ends.
func (s *Scheduler) Unregister(t Ticker) {
	if !s.member[t] {
		return
	}
	delete(s.member, t)
	if s.ticking {
		s.dirty = true
		return
	}
	for i, c := range s.tickers {
		if c == t {
			copy(s.tickers[i:], s.tickers[i+1:])
			s.tickers[len(s.tickers)-1] = nil
			s.tickers = s.tickers[:len(s.tickers)-1]
			return
		}
	}
}

// Registered reports whether t is currently part of the frame loop.
func (s *Scheduler) Registered(t Ticker) bool {
	return s.member[t]
}

// Active returns the number of registered tickers.
func (s *Scheduler) Active() int {
	return len(s.member)
}

// Tick runs every registered ticker once, in registration order.
func (s *Scheduler) Tick(f Frame) {
	s.ticking = true
	for i := 0; i < len(s.tickers); i++ {
		t := s.tickers[i]
		if !s.member[t] {
			continue
		}
		t.Tick(f)
	}
	s.ticking = false

	if s.dirty {
		kept := s.tickers[:0]
		for _, t := range s.tickers {
			if s.member[t] {
				kept = append(kept, t)
			}
		}
		for i := len(kept); i < len(s.tickers); i++ {
			s.tickers[i] = nil
		}
		s.tickers = kept
		s.dirty = false
	}
	for _, t := range s.pending {
		if s.member[t] && !s.contains(t) {
			s.tickers = append(s.tickers, t)
		}
	}
	for i := range s.pending {
		s.pending[i] = nil
	}
	s.pending = s.pending[:0]
}

func (s *Scheduler) contains(t Ticker) bool {
	for _, c := range s.tickers {
		if c == t {
			return true
		}
	}
	return false
}
