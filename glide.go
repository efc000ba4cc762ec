package glide

import (
	"fmt"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when the color is handed to Ebitengine.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default field color.
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is the field color used over light sections.
var ColorBlack = Color{0, 0, 0, 1}

// ParseColor parses a hex color ("#fff", "#ffffff") into an opaque Color.
func ParseColor(hex string) (Color, error) {
	c, err := colorful.Hex(expandHex(hex))
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", hex, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

// expandHex turns the short "#rgb" form into "#rrggbb".
func expandHex(hex string) string {
	if len(hex) != 4 || hex[0] != '#' {
		return hex
	}
	return string([]byte{'#', hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
}

// Hex formats the color's RGB components as "#rrggbb".
func (c Color) Hex() string {
	return colorful.Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}.Hex()
}

// RGBA converts the color to a premultiplied color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// Vec2 is a 2D vector used for positions and offsets.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Union returns the smallest rectangle containing both r and other.
// An empty rectangle contributes nothing.
func (r Rect) Union(other Rect) Rect {
	if r.Empty() {
		return other
	}
	if other.Empty() {
		return r
	}
	x0 := math.Min(r.X, other.X)
	y0 := math.Min(r.Y, other.Y)
	x1 := math.Max(r.Right(), other.Right())
	y1 := math.Max(r.Bottom(), other.Bottom())
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Pose is the set of presentational properties a transition animates on an
// element. Rotation and RotationX are in degrees.
type Pose struct {
	Alpha     float64
	X, Y      float64
	Scale     float64
	ScaleX    float64
	Rotation  float64
	RotationX float64
}

// RestPose is the fully revealed, untransformed pose.
var RestPose = Pose{Alpha: 1, Scale: 1, ScaleX: 1}

// Lerp interpolates every property from p toward to by t.
func (p Pose) Lerp(to Pose, t float64) Pose {
	return Pose{
		Alpha:     p.Alpha + (to.Alpha-p.Alpha)*t,
		X:         p.X + (to.X-p.X)*t,
		Y:         p.Y + (to.Y-p.Y)*t,
		Scale:     p.Scale + (to.Scale-p.Scale)*t,
		ScaleX:    p.ScaleX + (to.ScaleX-p.ScaleX)*t,
		Rotation:  p.Rotation + (to.Rotation-p.Rotation)*t,
		RotationX: p.RotationX + (to.RotationX-p.RotationX)*t,
	}
}

// Add returns p with every property of d added to it.
func (p Pose) Add(d Pose) Pose {
	return Pose{
		Alpha:     p.Alpha + d.Alpha,
		X:         p.X + d.X,
		Y:         p.Y + d.Y,
		Scale:     p.Scale + d.Scale,
		ScaleX:    p.ScaleX + d.ScaleX,
		Rotation:  p.Rotation + d.Rotation,
		RotationX: p.RotationX + d.RotationX,
	}
}

// Scaled returns p with every property multiplied by k.
func (p Pose) Scaled(k float64) Pose {
	return Pose{
		Alpha:     p.Alpha * k,
		X:         p.X * k,
		Y:         p.Y * k,
		Scale:     p.Scale * k,
		ScaleX:    p.ScaleX * k,
		Rotation:  p.Rotation * k,
		RotationX: p.RotationX * k,
	}
}

// EventKind identifies a kind of input event.
type EventKind uint8

const (
	EventPointerMove  EventKind = iota // pointer moved (client coordinates)
	EventPointerLeave                  // pointer left the document
	EventPointerDown                   // primary button pressed
	EventPointerUp                     // primary button released
	EventScroll                        // document scroll position changed
	EventResize                        // viewport resized
	EventVisibility                    // page hidden or shown
)

func (k EventKind) String() string {
	switch k {
	case EventPointerMove:
		return "pointermove"
	case EventPointerLeave:
		return "pointerleave"
	case EventPointerDown:
		return "pointerdown"
	case EventPointerUp:
		return "pointerup"
	case EventScroll:
		return "scroll"
	case EventResize:
		return "resize"
	case EventVisibility:
		return "visibility"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// MotionKind identifies an outgoing notification published to an EventSink.
type MotionKind uint8

const (
	MotionRevealed      MotionKind = iota // reveal transition started forward
	MotionConcealed                       // reveal transition started in reverse
	MotionTargetEnter                     // cursor locked onto a target
	MotionTargetLeave                     // cursor released its target
	MotionSectionActive                   // a tracked section became active
	MotionValueChanged                    // a slider committed a new value
)

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
