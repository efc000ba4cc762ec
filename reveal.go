package glide

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// RevealKind tags the visual preset a RevealStyle was built from. The engine
// interprets every kind the same way; the tag exists for inspection and
// debug output.
type RevealKind uint8

const (
	RevealCustom RevealKind = iota
	RevealText              // per-character rise with a backward tilt
	RevealFloat             // block fade and rise
	RevealSlide             // alternating side slide with a slight tilt
	RevealRise              // staggered rise for list items
	RevealExpand            // horizontal expand from half width
	RevealTitle             // oversized title settling onto its baseline
	RevealCards             // batched card grid, alternating sides
)

func (k RevealKind) String() string {
	switch k {
	case RevealText:
		return "text"
	case RevealFloat:
		return "float"
	case RevealSlide:
		return "slide"
	case RevealRise:
		return "rise"
	case RevealExpand:
		return "expand"
	case RevealTitle:
		return "title"
	case RevealCards:
		return "cards"
	default:
		return "custom"
	}
}

// RevealStyle parameterizes one reversible transition. The element plays
// from From to RestPose while it is within its trigger range and back again
// when it leaves, in either direction.
type RevealStyle struct {
	Kind RevealKind

	// Start is the viewport fraction (0 top, 1 bottom) the element's top edge
	// must rise above for the element to be in range. End is the fraction
	// its bottom edge must stay below; 0 keeps the element in range until it
	// has scrolled completely off the top.
	Start, End float64

	From     Pose
	Duration float64 // seconds per part
	Delay    float64 // seconds before the first part starts
	Stagger  float64 // seconds between consecutive parts or group members

	// Parts > 0 animates that many sub-parts of the element individually
	// (e.g. characters) instead of the element as a whole.
	Parts int

	// Alternate mirrors From.X and From.Rotation on odd group members.
	Alternate bool

	// Once keeps the element revealed after the first play.
	Once bool

	Ease ease.TweenFunc // nil uses the scheduler default
}

// TextReveal staggers parts characters upward out of a backward tilt.
func TextReveal(parts int) RevealStyle {
	return RevealStyle{
		Kind:     RevealText,
		Start:    0.9,
		From:     Pose{Alpha: 0, Y: 40, Scale: 0.9, ScaleX: 1, RotationX: -45},
		Duration: 0.6,
		Stagger:  0.02,
		Parts:    parts,
	}
}

// FloatReveal fades a block in while it rises.
func FloatReveal() RevealStyle {
	return RevealStyle{
		Kind:     RevealFloat,
		Start:    0.92,
		From:     Pose{Alpha: 0, Y: 40, Scale: 0.98, ScaleX: 1},
		Duration: 0.5,
	}
}

// SlideReveal slides item i in from the left when i is even and from the
// right when odd, delayed by its index.
func SlideReveal(i int) RevealStyle {
	side := -1.0
	if i%2 == 1 {
		side = 1
	}
	return RevealStyle{
		Kind:     RevealSlide,
		Start:    0.95,
		From:     Pose{Alpha: 0, X: 50 * side, Y: 20, Scale: 0.98, ScaleX: 1, Rotation: 2 * side},
		Duration: 0.5,
		Delay:    float64(i) * 0.05,
	}
}

// RiseReveal lifts list item i into place, delayed by its index.
func RiseReveal(i int) RevealStyle {
	return RevealStyle{
		Kind:     RevealRise,
		Start:    0.95,
		From:     Pose{Alpha: 0, Y: 50, Scale: 0.95, ScaleX: 1},
		Duration: 0.6,
		Delay:    float64(i) * 0.08,
	}
}

// ExpandReveal widens a strip from half its width.
func ExpandReveal() RevealStyle {
	return RevealStyle{
		Kind:     RevealExpand,
		Start:    0.95,
		From:     Pose{Alpha: 0, Scale: 1, ScaleX: 0.5},
		Duration: 0.6,
	}
}

// TitleReveal shrinks an oversized title down onto its baseline.
func TitleReveal() RevealStyle {
	return RevealStyle{
		Kind:     RevealTitle,
		Start:    0.9,
		From:     Pose{Alpha: 0, Y: 30, Scale: 1.3, ScaleX: 1},
		Duration: 0.6,
	}
}

// CardsReveal reveals a card grid as one batch, members alternating sides.
func CardsReveal() RevealStyle {
	return RevealStyle{
		Kind:      RevealCards,
		Start:     0.9,
		From:      Pose{Alpha: 0, X: -40, Scale: 0.95, ScaleX: 1, Rotation: -3},
		Duration:  0.6,
		Stagger:   0.1,
		Alternate: true,
	}
}

// RevealEntry is the per-element state of a registered reveal. For a group
// the ID names the batch and Members lists the elements it animates.
type RevealEntry struct {
	ID      string
	Members []string
	Style   RevealStyle

	InView   bool
	Head     float64 // playhead in seconds, 0 is fully hidden
	Plays    int     // forward triggers
	Reverses int     // reverse triggers

	dir       float64
	total     float64
	animating bool
	curve     *gween.Tween
}

// Progress returns the playhead as a fraction of the whole transition.
func (e *RevealEntry) Progress() float64 {
	if e.total <= 0 {
		return clamp01(e.Head)
	}
	return clamp01(e.Head / e.total)
}

func (e *RevealEntry) parts() int {
	if len(e.Members) > 0 {
		return len(e.Members)
	}
	if e.Style.Parts > 0 {
		return e.Style.Parts
	}
	return 1
}

// RevealScheduler owns every reversible reveal of a stage. It ticks only
// while at least one entry's playhead is moving.
type RevealScheduler struct {
	ctx     *Context
	ease    ease.TweenFunc
	entries map[string]*RevealEntry
	order   []*RevealEntry
	moving  []*RevealEntry
}

// NewRevealScheduler creates an empty scheduler bound to ctx.
func NewRevealScheduler(ctx *Context) *RevealScheduler {
	fn, ok := easeByName[ctx.Config.Reveal.Ease]
	if !ok {
		fn = ease.OutQuad
	}
	return &RevealScheduler{
		ctx:     ctx,
		ease:    fn,
		entries: make(map[string]*RevealEntry),
	}
}

// Register adds a reveal for element id. It reports false, and schedules
// nothing, when id is already registered or the element does not exist.
func (r *RevealScheduler) Register(id string, style RevealStyle) bool {
	if _, dup := r.entries[id]; dup {
		debugWarn(r.ctx, "reveal: %q already registered", id)
		return false
	}
	if r.ctx.Viewport == nil {
		return false
	}
	if _, ok := r.ctx.Viewport.Element(id); !ok {
		debugWarn(r.ctx, "reveal: element %q not found", id)
		return false
	}
	r.add(&RevealEntry{ID: id, Style: style})
	return true
}

// RegisterGroup adds a batch reveal: the members trigger together off their
// combined bounds and animate with Style.Stagger between them. Missing
// members are skipped; the call reports false if none exist or name is taken.
func (r *RevealScheduler) RegisterGroup(name string, members []string, style RevealStyle) bool {
	if _, dup := r.entries[name]; dup {
		debugWarn(r.ctx, "reveal: group %q already registered", name)
		return false
	}
	if r.ctx.Viewport == nil {
		return false
	}
	var present []string
	for _, id := range members {
		if _, ok := r.ctx.Viewport.Element(id); ok {
			present = append(present, id)
		}
	}
	if len(present) == 0 {
		debugWarn(r.ctx, "reveal: group %q has no elements", name)
		return false
	}
	r.add(&RevealEntry{ID: name, Members: present, Style: style})
	return true
}

func (r *RevealScheduler) add(e *RevealEntry) {
	if e.Style.Ease == nil {
		e.Style.Ease = r.ease
	}
	n := e.parts()
	e.total = e.Style.Delay + float64(n-1)*e.Style.Stagger + e.Style.Duration
	if e.Style.Duration > 0 {
		e.curve = gween.New(0, 1, float32(e.Style.Duration), e.Style.Ease)
	}
	r.entries[e.ID] = e
	r.order = append(r.order, e)
	r.write(e)
	r.evaluate(e)
}

// Unregister removes the reveal registered under id, leaving the element in
// whatever pose it was last written.
func (r *RevealScheduler) Unregister(id string) {
	e, ok := r.entries[id]
	if !ok {
		return
	}
	delete(r.entries, id)
	r.order = removeEntry(r.order, e)
	if e.animating {
		e.animating = false
		r.moving = removeEntry(r.moving, e)
	}
	if len(r.moving) == 0 {
		r.ctx.Scheduler.Unregister(r)
	}
}

// Entry returns a snapshot of the entry registered under id.
func (r *RevealScheduler) Entry(id string) (RevealEntry, bool) {
	e, ok := r.entries[id]
	if !ok {
		return RevealEntry{}, false
	}
	return *e, true
}

// Len returns the number of registered entries.
func (r *RevealScheduler) Len() int { return len(r.order) }

// Animating returns the number of entries whose playhead is moving.
func (r *RevealScheduler) Animating() int { return len(r.moving) }

// OnScroll re-evaluates every trigger against the new scroll position.
func (r *RevealScheduler) OnScroll() { r.evaluateAll() }

// OnResize re-evaluates every trigger against the new viewport.
func (r *RevealScheduler) OnResize() { r.evaluateAll() }

func (r *RevealScheduler) evaluateAll() {
	for _, e := range r.order {
		r.evaluate(e)
	}
}

func (r *RevealScheduler) bounds(e *RevealEntry) (Rect, bool) {
	if len(e.Members) == 0 {
		return r.ctx.ClientRect(e.ID)
	}
	var (
		u     Rect
		found bool
	)
	for _, id := range e.Members {
		rect, ok := r.ctx.ClientRect(id)
		if !ok {
			continue
		}
		if !found {
			u, found = rect, true
			continue
		}
		u = u.Union(rect)
	}
	return u, found
}

func (r *RevealScheduler) evaluate(e *RevealEntry) {
	rect, ok := r.bounds(e)
	if !ok {
		return
	}
	_, h := r.ctx.Size()
	in := rect.Y <= e.Style.Start*h && rect.Bottom() >= e.Style.End*h
	if in == e.InView {
		return
	}
	if !in && e.Style.Once && e.Plays > 0 {
		return
	}
	e.InView = in
	if in {
		e.dir = 1
		e.Plays++
		r.ctx.emit(MotionRevealed, e.ID, 0)
	} else {
		e.dir = -1
		e.Reverses++
		r.ctx.emit(MotionConcealed, e.ID, 0)
	}
	// The single playhead reverses in place, so a trigger mid-flight
	// overrides the transition already running.
	if !e.animating {
		e.animating = true
		r.moving = append(r.moving, e)
	}
	r.ctx.Scheduler.Register(r)
}

// Tick implements Ticker.
func (r *RevealScheduler) Tick(f Frame) {
	eps := r.ctx.Config.Reveal.Epsilon
	kept := r.moving[:0]
	for _, e := range r.moving {
		e.Head = clamp(e.Head+e.dir*f.DT, 0, e.total)
		if e.dir > 0 && e.total-e.Head <= eps {
			e.Head = e.total
		} else if e.dir < 0 && e.Head <= eps {
			e.Head = 0
		}
		r.write(e)
		if (e.dir > 0 && e.Head == e.total) || (e.dir < 0 && e.Head == 0) {
			e.animating = false
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(r.moving); i++ {
		r.moving[i] = nil
	}
	r.moving = kept
	if len(r.moving) == 0 {
		r.ctx.Scheduler.Unregister(r)
	}
}

// write renders every part of e at its current playhead.
func (r *RevealScheduler) write(e *RevealEntry) {
	s := e.Style
	for i, n := 0, e.parts(); i < n; i++ {
		from := s.From
		if s.Alternate && i%2 == 1 {
			from.X = -from.X
			from.Rotation = -from.Rotation
		}
		pose := from.Lerp(RestPose, r.partProgress(e, i))
		switch {
		case len(e.Members) > 0:
			r.ctx.Surface.SetPose(e.Members[i], -1, pose)
		case s.Parts > 0:
			r.ctx.Surface.SetPose(e.ID, i, pose)
		default:
			r.ctx.Surface.SetPose(e.ID, -1, pose)
		}
	}
}

// partProgress returns the eased progress of part i, 0 before its delay and
// exactly 1 after it has finished.
func (r *RevealScheduler) partProgress(e *RevealEntry, i int) float64 {
	local := e.Head - e.Style.Delay - float64(i)*e.Style.Stagger
	if e.curve == nil {
		if e.dir > 0 && local >= 0 {
			return 1
		}
		return 0
	}
	if local <= 0 {
		return 0
	}
	if local >= e.Style.Duration {
		return 1
	}
	v, _ := e.curve.Set(float32(local))
	return float64(v)
}

func removeEntry(list []*RevealEntry, e *RevealEntry) []*RevealEntry {
	for i, x := range list {
		if x == e {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = nil
			return list[:len(list)-1]
		}
	}
	return list
}
