package glide

// PinLayer is one piece of a pinned section's content. Its pose is RestPose
// plus Delta scaled by the pin progress, so Delta is the full change at the
// end of the pin range.
type PinLayer struct {
	ID    string
	Delta Pose
}

// ContactLayers returns the layers of the closing section: the content block
// lifts and fades by half, the title lifts further, shrinks and fades more.
func ContactLayers(content, title string) []PinLayer {
	return []PinLayer{
		{ID: content, Delta: Pose{Y: -150, Alpha: -0.5}},
		{ID: title, Delta: Pose{Y: -100, Scale: -0.2, Alpha: -0.6}},
	}
}

type pinnedSection struct {
	id       string
	layers   []PinLayer
	progress float64
	offset   float64
}

// PinnedStack keeps sections fixed to the top of the viewport while the
// following content scrolls over them. A continuous progress value through
// the pin range drives the section's layers. It ticks once per scroll or
// resize and only then.
type PinnedStack struct {
	ctx   *Context
	pins  map[string]*pinnedSection
	order []*pinnedSection
}

// NewPinnedStack creates an empty stack bound to ctx.
func NewPinnedStack(ctx *Context) *PinnedStack {
	return &PinnedStack{ctx: ctx, pins: make(map[string]*pinnedSection)}
}

// Pin registers section id with its layers. It reports false when the
// section does not exist or is already pinned.
func (s *PinnedStack) Pin(id string, layers ...PinLayer) bool {
	if _, dup := s.pins[id]; dup {
		debugWarn(s.ctx, "pin: %q already pinned", id)
		return false
	}
	if s.ctx.Viewport == nil {
		return false
	}
	if _, ok := s.ctx.Viewport.Element(id); !ok {
		debugWarn(s.ctx, "pin: element %q not found", id)
		return false
	}
	p := &pinnedSection{id: id, layers: append([]PinLayer(nil), layers...)}
	s.pins[id] = p
	s.order = append(s.order, p)
	s.update(p)
	return true
}

// Progress returns the last computed progress of section id.
func (s *PinnedStack) Progress(id string) (float64, bool) {
	p, ok := s.pins[id]
	if !ok {
		return 0, false
	}
	return p.progress, true
}

// PinProgress returns how far scrollY has travelled through a pin range that
// starts when bounds' top reaches the viewport top and ends when its bottom
// does. A zero-height section has no range and reports 0.
func PinProgress(bounds Rect, scrollY float64) float64 {
	if bounds.Height <= 0 {
		return 0
	}
	return clamp01((scrollY - bounds.Y) / bounds.Height)
}

// OnScroll schedules one tick to recompute progress.
func (s *PinnedStack) OnScroll() {
	if len(s.order) > 0 {
		s.ctx.Scheduler.Register(s)
	}
}

// OnResize schedules one tick to recompute progress.
func (s *PinnedStack) OnResize() { s.OnScroll() }

// Tick implements Ticker.
func (s *PinnedStack) Tick(Frame) {
	for _, p := range s.order {
		s.update(p)
	}
	s.ctx.Scheduler.Unregister(s)
}

func (s *PinnedStack) update(p *pinnedSection) {
	e, ok := s.ctx.Viewport.Element(p.id)
	if !ok {
		return
	}
	scroll := s.ctx.Scroll.Y
	p.progress = PinProgress(e.Bounds, scroll)
	p.offset = 0
	if e.Bounds.Height > 0 {
		p.offset = clamp(scroll-e.Bounds.Y, 0, e.Bounds.Height)
	}
	section := RestPose
	section.Y = p.offset
	s.ctx.Surface.SetPose(p.id, -1, section)
	for _, l := range p.layers {
		s.ctx.Surface.SetPose(l.ID, -1, RestPose.Add(l.Delta.Scaled(p.progress)))
	}
}
