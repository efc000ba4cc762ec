package glide

// SectionTracker reports which section the viewport's center line last
// entered, from either direction. Leaving a section without entering another
// keeps the previous one active, as a side navigation indicator expects.
type SectionTracker struct {
	ctx      *Context
	sections []string
	active   string
	inside   map[string]bool

	// OnChange, when set, is called with the newly active section.
	OnChange func(id string)
}

// NewSectionTracker creates a tracker over sections, in document order.
// Unknown ids are ignored until they appear in the viewport.
func NewSectionTracker(ctx *Context, sections ...string) *SectionTracker {
	t := &SectionTracker{
		ctx:      ctx,
		sections: append([]string(nil), sections...),
		inside:   make(map[string]bool),
	}
	t.evaluate()
	return t
}

// Active returns the active section, or "" before any has been entered.
func (t *SectionTracker) Active() string { return t.active }

// OnScroll re-evaluates the center line.
func (t *SectionTracker) OnScroll() { t.evaluate() }

// OnResize re-evaluates the center line.
func (t *SectionTracker) OnResize() { t.evaluate() }

func (t *SectionTracker) evaluate() {
	_, h := t.ctx.Size()
	center := h / 2
	for _, id := range t.sections {
		r, ok := t.ctx.ClientRect(id)
		in := ok && r.Y <= center && r.Bottom() >= center
		was := t.inside[id]
		t.inside[id] = in
		if in && !was && t.active != id {
			t.active = id
			t.ctx.emit(MotionSectionActive, id, 0)
			if t.OnChange != nil {
				t.OnChange(id)
			}
		}
	}
}
