package glide

import "time"

const (
	defaultScreenshotDir = "screenshots"

	// Scroll samples further apart than this are treated as a fresh gesture.
	maxScrollSampleGap = 0.1
)

// Stage is the top-level coordinator. It owns the shared Context, the input
// queue and every component, and drives them once per frame: the whole
// input queue is drained first, then every registered ticker runs.
type Stage struct {
	ctx *Context

	queue    []InputEvent
	injected []InputEvent

	field    *ProximityField
	cursor   *TargetCursor
	reveals  *RevealScheduler
	pins     *PinnedStack
	spin     *SpinController
	idle     *IdleMotion
	sections []*SectionTracker
	sliders  []*ElasticSlider

	runner *TestRunner

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []string
}

// NewStage creates a stage over vp drawing to surface. A nil surface
// discards every draw.
func NewStage(vp Viewport, surface Surface, cfg Config) *Stage {
	ctx := newContext(vp, surface, cfg)
	return &Stage{
		ctx:           ctx,
		reveals:       NewRevealScheduler(ctx),
		pins:          NewPinnedStack(ctx),
		spin:          NewSpinController(ctx),
		idle:          NewIdleMotion(ctx),
		ScreenshotDir: defaultScreenshotDir,
	}
}

// Context returns the stage's shared context.
func (s *Stage) Context() *Context { return s.ctx }

// EnableField creates the ambient proximity field, once.
func (s *Stage) EnableField() *ProximityField {
	if s.field == nil {
		s.field = NewProximityField(s.ctx)
	}
	return s.field
}

// EnableCursor creates the target cursor, once.
func (s *Stage) EnableCursor() *TargetCursor {
	if s.cursor == nil {
		s.cursor = NewTargetCursor(s.ctx)
	}
	return s.cursor
}

// Field returns the proximity field, or nil when not enabled.
func (s *Stage) Field() *ProximityField { return s.field }

// Cursor returns the target cursor, or nil when not enabled.
func (s *Stage) Cursor() *TargetCursor { return s.cursor }

// Reveals returns the scroll reveal scheduler.
func (s *Stage) Reveals() *RevealScheduler { return s.reveals }

// Pins returns the pinned section stack.
func (s *Stage) Pins() *PinnedStack { return s.pins }

// Spin returns the spin controller.
func (s *Stage) Spin() *SpinController { return s.spin }

// Idle returns the idle float and pulse controller.
func (s *Stage) Idle() *IdleMotion { return s.idle }

// TrackSections adds a section tracker over ids.
func (s *Stage) TrackSections(ids ...string) *SectionTracker {
	t := NewSectionTracker(s.ctx, ids...)
	s.sections = append(s.sections, t)
	return t
}

// AddSlider creates an elastic slider. It reports nil, and adds nothing,
// when the track element does not exist.
func (s *Stage) AddSlider(id string, parts SliderParts, out Output) *ElasticSlider {
	sl := NewElasticSlider(s.ctx, id, parts, out)
	if sl == nil {
		return nil
	}
	s.sliders = append(s.sliders, sl)
	return sl
}

// SetEventSink sets the receiver of motion notifications.
func (s *Stage) SetEventSink(sink EventSink) {
	s.ctx.sink = sink
}

// SetDebugMode enables or disables debug mode. When enabled, per-frame
// stats and registration warnings are printed to stderr.
func (s *Stage) SetDebugMode(enabled bool) {
	s.ctx.debug = enabled
}

// SetTestRunner attaches a scripted runner, stepped at the start of Update.
func (s *Stage) SetTestRunner(runner *TestRunner) {
	s.runner = runner
}

// Push queues an input event for the next Update.
func (s *Stage) Push(ev InputEvent) {
	s.queue = append(s.queue, ev)
}

// Pending returns the number of queued and injected events not yet drained.
func (s *Stage) Pending() int {
	return len(s.queue) + len(s.injected)
}

// Update advances the clock by dt seconds, drains every queued event and then
// runs one scheduler tick. Nothing ticks while the page is hidden.
func (s *Stage) Update(dt float64) {
	if s.runner != nil {
		s.runner.step(s)
	}
	c := s.ctx
	c.frame++
	c.now += dt

	var (
		stats debugStats
		t0    time.Time
	)
	if c.debug {
		t0 = time.Now()
	}

	if len(s.injected) > 0 {
		s.queue = append(s.queue, s.injected[0])
		copy(s.injected, s.injected[1:])
		s.injected = s.injected[:len(s.injected)-1]
	}
	stats.events = len(s.queue)
	for i := 0; i < len(s.queue); i++ {
		s.handle(s.queue[i])
	}
	s.queue = s.queue[:0]
	s.expireIdle()

	if c.debug {
		stats.drainTime = time.Since(t0)
		t0 = time.Now()
	}

	if !c.hidden {
		c.Scheduler.Tick(Frame{Index: c.frame, DT: dt, Now: c.now})
	}

	if c.debug {
		stats.frame = c.frame
		stats.tickTime = time.Since(t0)
		stats.tickers = c.Scheduler.Active()
		s.debugLog(stats)
	}
}

// Draw writes the draw-time state of clock-driven components: the cursor,
// spin rotations and idle offsets. Everything else writes its surface during
// its tick.
func (s *Stage) Draw() {
	if s.ctx.hidden {
		return
	}
	if s.cursor != nil {
		s.cursor.Draw()
	}
	s.spin.Draw()
	s.idle.Draw()
}

func (s *Stage) handle(ev InputEvent) {
	c := s.ctx
	t := ev.Time
	if t <= 0 {
		t = c.now
	}
	if ev.Touch && !c.touch {
		s.touched()
	}
	switch ev.Kind {
	case EventPointerMove:
		s.pointerMoved(ev, t)
	case EventPointerLeave:
		c.Pointer.Active = false
		c.Pointer.Target = ""
		if s.field != nil {
			s.field.OnPointerInactive()
		}
		if s.cursor != nil {
			s.cursor.OnPointerLeave()
		}
	case EventPointerDown:
		s.syncPointer(ev, t)
		c.Pointer.Down = true
		if s.cursor != nil {
			s.cursor.OnPointerDown()
		}
		for _, sl := range s.sliders {
			sl.OnPointerDown(ev.X, ev.Y, c.Pointer.Target)
		}
	case EventPointerUp:
		s.syncPointer(ev, t)
		c.Pointer.Down = false
		if s.cursor != nil {
			s.cursor.OnPointerUp()
		}
		for _, sl := range s.sliders {
			sl.OnPointerUp(c.Pointer.Target)
		}
	case EventScroll:
		s.scrolled(ev, t)
	case EventResize:
		s.resized(ev.Width, ev.Height)
	case EventVisibility:
		if ev.Hidden == c.hidden {
			return
		}
		c.hidden = ev.Hidden
		if !c.hidden && s.field != nil {
			s.field.OnVisible()
		}
	}
}

// syncPointer treats a press or release away from the last known position as
// a move to it first.
func (s *Stage) syncPointer(ev InputEvent, t float64) {
	p := s.ctx.Pointer
	if !p.Active || ev.X != p.X || ev.Y != p.Y {
		s.pointerMoved(ev, t)
	}
}

func (s *Stage) pointerMoved(ev InputEvent, t float64) {
	p := &s.ctx.Pointer
	p.X, p.Y = ev.X, ev.Y
	p.Active = true
	p.LastMove = t
	p.Target = s.resolveTarget(ev.Target, ev.X, ev.Y)
	if s.field != nil {
		s.field.OnPointerMove()
	}
	if s.cursor != nil {
		s.cursor.OnPointerMove(p.Target)
	}
	for _, sl := range s.sliders {
		sl.OnPointerMove(ev.X)
	}
}

func (s *Stage) resolveTarget(explicit string, x, y float64) string {
	if explicit != "" {
		return explicit
	}
	ht, ok := s.ctx.Viewport.(HitTester)
	if !ok {
		return ""
	}
	if e, ok := ht.ElementAt(x, y, s.ctx.Scroll.Y); ok {
		return e.ID
	}
	return ""
}

func (s *Stage) scrolled(ev InputEvent, t float64) {
	c := s.ctx
	sc := &c.Scroll
	dt := t - sc.LastSample
	minDT := 1 / float64(max(c.Config.TPS, 1))
	if !sc.sampled || dt < minDT {
		dt = minDT
	}
	if dt > maxScrollSampleGap {
		dt = maxScrollSampleGap
	}
	sc.Velocity = (ev.ScrollY - sc.Y) / dt
	sc.Y, sc.LastSample, sc.sampled = ev.ScrollY, t, true

	// Content moved under a resting pointer.
	if p := &c.Pointer; p.Active {
		if target := s.resolveTarget(ev.Target, p.X, p.Y); target != p.Target {
			p.Target = target
			if s.cursor != nil {
				s.cursor.OnPointerMove(target)
			}
		}
	}

	s.reveals.OnScroll()
	s.pins.OnScroll()
	for _, tr := range s.sections {
		tr.OnScroll()
	}
	s.spin.OnScroll()
	if s.cursor != nil {
		s.cursor.OnScroll()
	}
}

type resizer interface {
	Resize(w, h float64)
}

type capabilitySetter interface {
	SetCapabilities(c Capabilities)
}

// touched records the first touch event. The viewport learns it is on a
// touch device and the cursor re-checks whether it should run.
func (s *Stage) touched() {
	c := s.ctx
	c.touch = true
	if cs, ok := c.Viewport.(capabilitySetter); ok {
		caps := c.Viewport.Capabilities()
		caps.Touch = true
		cs.SetCapabilities(caps)
	}
	if s.cursor != nil {
		s.cursor.OnResize()
	}
}

func (s *Stage) resized(w, h float64) {
	c := s.ctx
	c.width, c.height = w, h
	if r, ok := c.Viewport.(resizer); ok {
		r.Resize(w, h)
	}
	if s.field != nil {
		s.field.Layout()
	}
	if s.cursor != nil {
		s.cursor.OnResize()
	}
	s.reveals.OnResize()
	s.pins.OnResize()
	for _, tr := range s.sections {
		tr.OnResize()
	}
}

// expireIdle turns the pointer inactive once it has rested for the idle
// window and no component holds an interaction.
func (s *Stage) expireIdle() {
	c := s.ctx
	p := &c.Pointer
	if !p.Active || c.Config.PointerIdle <= 0 || c.Holding() {
		return
	}
	if c.IdleFor() < c.Config.PointerIdle {
		return
	}
	p.Active = false
	if s.field != nil {
		s.field.OnPointerInactive()
	}
}
