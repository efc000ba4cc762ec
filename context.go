package glide

// PointerState is the shared pointer record. Only the stage's input drain
// writes it; components read it during their ticks.
type PointerState struct {
	X, Y     float64
	Active   bool
	Down     bool
	Target   string  // deepest element under the pointer, if known
	LastMove float64 // stage clock of the last movement
}

// ScrollState is the shared scroll record written by the input drain.
type ScrollState struct {
	Y          float64
	Velocity   float64 // px/s, signed
	LastSample float64 // stage clock of the last scroll sample
	sampled    bool
}

// EventSink receives motion notifications, e.g. an ECS bridge.
type EventSink interface {
	EmitEvent(event MotionEvent)
}

// MotionEvent is one outgoing notification.
type MotionEvent struct {
	Kind  MotionKind
	ID    string  // element or component identifier
	Value float64 // slider value, or 0
	Time  float64 // stage clock
}

// Context is the explicit state shared by every component of a stage. It is
// created and owned by the Stage and handed to each component at construction.
type Context struct {
	Scheduler *Scheduler
	Viewport  Viewport
	Surface   Surface
	Config    Config

	Pointer PointerState
	Scroll  ScrollState

	// SpinRate is the stage-wide playback multiplier applied to every spin
	// target. The SpinController is its only writer.
	SpinRate Scalar

	sink   EventSink
	width  float64
	height float64
	now    float64
	frame  uint64
	hidden bool
	debug  bool
	touch  bool // a touch event has been seen
	holds  map[any]struct{}
}

func newContext(vp Viewport, surface Surface, cfg Config) *Context {
	if surface == nil {
		surface = Discard
	}
	c := &Context{
		Scheduler: NewScheduler(),
		Viewport:  vp,
		Surface:   surface,
		Config:    cfg,
		SpinRate:  NewScalar(1, cfg.Spin.Rate),
		debug:     cfg.Debug,
		holds:     make(map[any]struct{}),
	}
	if vp != nil {
		c.width, c.height = vp.Size()
	}
	return c
}

// Touch reports whether the device is touch-capable, either declared by the
// viewport or learned from a touch event.
func (c *Context) Touch() bool {
	if c.touch {
		return true
	}
	return c.Viewport != nil && c.Viewport.Capabilities().Touch
}

// Now returns the stage clock in seconds.
func (c *Context) Now() float64 { return c.now }

// Size returns the last known viewport size.
func (c *Context) Size() (w, h float64) { return c.width, c.height }

// Hidden reports whether the page is currently hidden.
func (c *Context) Hidden() bool { return c.hidden }

// Hold marks owner as holding an interaction, which keeps the pointer active
// past the idle window.
func (c *Context) Hold(owner any) {
	c.holds[owner] = struct{}{}
}

// Release clears a hold placed by owner. Safe to call without a hold.
func (c *Context) Release(owner any) {
	delete(c.holds, owner)
}

// Holding reports whether any component holds an interaction.
func (c *Context) Holding() bool {
	return len(c.holds) > 0
}

// IdleFor returns seconds since the pointer last moved.
func (c *Context) IdleFor() float64 {
	return c.now - c.Pointer.LastMove
}

// ClientRect resolves id against the viewport at the current scroll offset.
func (c *Context) ClientRect(id string) (Rect, bool) {
	return ClientRect(c.Viewport, id, c.Scroll.Y)
}

func (c *Context) emit(kind MotionKind, id string, value float64) {
	if c.sink == nil {
		return
	}
	c.sink.EmitEvent(MotionEvent{Kind: kind, ID: id, Value: value, Time: c.now})
}
