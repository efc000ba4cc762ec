package glide

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputEvent is one raw input sample. Only the fields relevant to Kind are
// read. Pointer coordinates are client (viewport) coordinates.
type InputEvent struct {
	Kind EventKind

	X, Y   float64
	Target string // deepest element under the pointer; "" resolves through a HitTester

	ScrollY float64 // EventScroll: new document scroll offset

	Width, Height float64 // EventResize

	Hidden bool // EventVisibility

	Touch bool // pointer events produced by a touch screen

	Time float64 // stage clock in seconds; 0 means the frame the event is drained
}

// EbitenInput polls Ebitengine each frame and turns the changes it sees into
// InputEvents on a Stage. The mouse wheel scrolls the document.
type EbitenInput struct {
	// WheelStep is the number of pixels scrolled per wheel notch.
	WheelStep float64

	// MaxScroll returns the largest legal scroll offset. Nil means unbounded.
	MaxScroll func() float64

	started  bool
	lastX    int
	lastY    int
	inside   bool
	scrollY  float64
	width    int
	height   int
	focused  bool
	touchIDs []ebiten.TouchID
	touching bool
}

// NewEbitenInput creates a poller with a 40 pixel wheel step.
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{WheelStep: 40, focused: true}
}

// Resize records the outside size reported by Ebitengine's Layout and
// queues a resize when it changed.
func (in *EbitenInput) Resize(s *Stage, w, h int) {
	if w == in.width && h == in.height {
		return
	}
	in.width, in.height = w, h
	s.Push(InputEvent{Kind: EventResize, Width: float64(w), Height: float64(h)})
}

// Poll queues every input change since the last call.
func (in *EbitenInput) Poll(s *Stage) {
	if focused := ebiten.IsFocused(); focused != in.focused {
		in.focused = focused
		s.Push(InputEvent{Kind: EventVisibility, Hidden: !focused})
	}

	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	switch {
	case len(in.touchIDs) > 0:
		in.pollTouch(s)
	case in.touching:
		in.touching = false
		x, y := float64(in.lastX), float64(in.lastY)
		s.Push(InputEvent{Kind: EventPointerUp, X: x, Y: y, Touch: true})
		s.Push(InputEvent{Kind: EventPointerLeave, Touch: true})
	default:
		in.pollMouse(s)
	}

	_, dy := ebiten.Wheel()
	if dy != 0 {
		y := in.scrollY - dy*in.WheelStep
		if y < 0 {
			y = 0
		}
		if in.MaxScroll != nil {
			if limit := in.MaxScroll(); y > limit {
				y = limit
			}
		}
		if y != in.scrollY {
			in.scrollY = y
			s.Push(InputEvent{Kind: EventScroll, ScrollY: y})
		}
	}
}

func (in *EbitenInput) pollMouse(s *Stage) {
	mx, my := ebiten.CursorPosition()
	inside := mx >= 0 && my >= 0 && mx < in.width && my < in.height
	x, y := float64(mx), float64(my)
	switch {
	case inside && (!in.started || !in.inside || mx != in.lastX || my != in.lastY):
		s.Push(InputEvent{Kind: EventPointerMove, X: x, Y: y})
	case !inside && in.inside:
		s.Push(InputEvent{Kind: EventPointerLeave})
	}
	in.started, in.inside = true, inside
	in.lastX, in.lastY = mx, my

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		s.Push(InputEvent{Kind: EventPointerDown, X: x, Y: y})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		s.Push(InputEvent{Kind: EventPointerUp, X: x, Y: y})
	}
}

// pollTouch maps the first touch onto the pointer.
func (in *EbitenInput) pollTouch(s *Stage) {
	tx, ty := ebiten.TouchPosition(in.touchIDs[0])
	x, y := float64(tx), float64(ty)
	if !in.touching {
		in.touching = true
		s.Push(InputEvent{Kind: EventPointerMove, X: x, Y: y, Touch: true})
		s.Push(InputEvent{Kind: EventPointerDown, X: x, Y: y, Touch: true})
	} else if tx != in.lastX || ty != in.lastY {
		s.Push(InputEvent{Kind: EventPointerMove, X: x, Y: y, Touch: true})
	}
	in.lastX, in.lastY = tx, ty
}
