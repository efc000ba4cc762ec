package glide

// Element is the geometry and classification of one page element as reported
// by the viewport. Bounds are in document coordinates (unaffected by scroll).
type Element struct {
	ID     string
	Parent string
	Tags   []string
	Bounds Rect
}

// HasTag reports whether the element carries tag.
func (e Element) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Capabilities describes the input device.
type Capabilities struct {
	Touch bool // touch-capable device
}

// Viewport is the query service the core reads geometry from.
type Viewport interface {
	// Element looks up an element by identifier. Missing elements report false.
	Element(id string) (Element, bool)
	// Size returns the viewport dimensions.
	Size() (w, h float64)
	// Capabilities returns device capability flags.
	Capabilities() Capabilities
}

// HitTester is implemented by viewports that can resolve the deepest element
// under a client-space point. The stage uses it when a pointer event carries
// no target.
type HitTester interface {
	ElementAt(x, y, scrollY float64) (Element, bool)
}

// ClientRect returns the element's bounding box relative to the viewport for
// the given scroll offset.
func ClientRect(vp Viewport, id string, scrollY float64) (Rect, bool) {
	if vp == nil {
		return Rect{}, false
	}
	e, ok := vp.Element(id)
	if !ok {
		return Rect{}, false
	}
	return e.Bounds.Offset(0, -scrollY), true
}

// maxAncestorDepth bounds parent-chain walks.
const maxAncestorDepth = 64

// Closest walks from the element id up its parent chain and returns the first
// element matching pred, mirroring DOM closest(). The walk stops after a
// bounded number of hops so a malformed parent cycle cannot hang a frame.
func Closest(vp Viewport, id string, pred func(Element) bool) (Element, bool) {
	if vp == nil || pred == nil {
		return Element{}, false
	}
	for depth := 0; id != "" && depth < maxAncestorDepth; depth++ {
		e, ok := vp.Element(id)
		if !ok {
			return Element{}, false
		}
		if pred(e) {
			return e, true
		}
		id = e.Parent
	}
	return Element{}, false
}

// Layout is an in-memory Viewport. It backs the example programs and tests,
// and can stand in for any host that can describe its elements up front.
type Layout struct {
	width, height float64
	caps          Capabilities
	elements      map[string]Element
	order         []string
}

// NewLayout creates an empty layout with the given viewport size.
func NewLayout(w, h float64) *Layout {
	return &Layout{width: w, height: h, elements: make(map[string]Element)}
}

// Add inserts or replaces an element. Later additions paint above earlier ones.
func (l *Layout) Add(e Element) {
	if _, ok := l.elements[e.ID]; !ok {
		l.order = append(l.order, e.ID)
	}
	l.elements[e.ID] = e
}

// Remove deletes an element. Children keep their parent reference.
func (l *Layout) Remove(id string) {
	if _, ok := l.elements[id]; !ok {
		return
	}
	delete(l.elements, id)
	for i, o := range l.order {
		if o == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// Move sets the document bounds of an existing element.
func (l *Layout) Move(id string, bounds Rect) {
	e, ok := l.elements[id]
	if !ok {
		return
	}
	e.Bounds = bounds
	l.elements[id] = e
}

// Resize changes the viewport size.
func (l *Layout) Resize(w, h float64) {
	l.width, l.height = w, h
}

// SetCapabilities sets the device capability flags.
func (l *Layout) SetCapabilities(c Capabilities) {
	l.caps = c
}

// Element implements Viewport.
func (l *Layout) Element(id string) (Element, bool) {
	e, ok := l.elements[id]
	return e, ok
}

// Size implements Viewport.
func (l *Layout) Size() (float64, float64) {
	return l.width, l.height
}

// Capabilities implements Viewport.
func (l *Layout) Capabilities() Capabilities {
	return l.caps
}

// Elements returns element IDs in paint order. The returned slice MUST NOT be
// mutated.
func (l *Layout) Elements() []string {
	return l.order
}

// DocumentHeight returns the bottom edge of the lowest element.
func (l *Layout) DocumentHeight() float64 {
	var h float64
	for _, e := range l.elements {
		if b := e.Bounds.Bottom(); b > h {
			h = b
		}
	}
	return h
}

// ElementAt returns the deepest element containing the client point (x, y) at
// the given scroll offset. Deeper elements win; among equal depth the one
// painted last wins.
func (l *Layout) ElementAt(x, y, scrollY float64) (Element, bool) {
	var best Element
	bestDepth := -1
	for i := len(l.order) - 1; i >= 0; i-- {
		e := l.elements[l.order[i]]
		if !e.Bounds.Offset(0, -scrollY).Contains(x, y) {
			continue
		}
		if d := l.depth(e); d > bestDepth {
			best, bestDepth = e, d
		}
	}
	return best, bestDepth >= 0
}

func (l *Layout) depth(e Element) int {
	d := 0
	for p := e.Parent; p != "" && d < maxAncestorDepth; d++ {
		pe, ok := l.elements[p]
		if !ok {
			break
		}
		p = pe.Parent
	}
	return d
}
