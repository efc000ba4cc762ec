package glide

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenSurface is a Surface that retains the latest command of every kind
// and paints the whole page onto an Ebitengine image each frame. Elements
// are drawn as flat rectangles from the Layout, colored by tag.
type EbitenSurface struct {
	layout *Layout

	Background   Color
	ElementColor Color
	TagColors    map[string]Color
	CursorColor  Color
	TrackColor   Color
	FillColor    Color

	cells      []ProximityCell
	fieldColor Color

	cursor       CursorCommand
	cornerSize   float64
	borderWidth  float64
	hasCursor    bool
	cursorHidden bool

	poses     map[PoseKey]Pose
	parts     map[string]int
	rotations map[string]RotationState
	sliders   map[string]SliderCommand
	owned     map[string]bool // elements painted by a slider
	idle      map[string]IdleState

	pixel *ebiten.Image
}

// NewEbitenSurface creates a surface painting the elements of layout.
func NewEbitenSurface(layout *Layout) *EbitenSurface {
	cfg := DefaultConfig().Cursor
	return &EbitenSurface{
		layout:       layout,
		Background:   Color{R: 0.96, G: 0.95, B: 0.91, A: 1},
		ElementColor: Color{R: 0.85, G: 0.84, B: 0.80, A: 1},
		TagColors:    make(map[string]Color),
		CursorColor:  ColorBlack,
		TrackColor:   Color{R: 0.8, G: 0.8, B: 0.8, A: 1},
		FillColor:    ColorBlack,
		cornerSize:   cfg.CornerSize,
		borderWidth:  cfg.BorderWidth,
		poses:        make(map[PoseKey]Pose),
		parts:        make(map[string]int),
		rotations:    make(map[string]RotationState),
		sliders:      make(map[string]SliderCommand),
		owned:        make(map[string]bool),
		idle:         make(map[string]IdleState),
	}
}

// SetCursorGeometry sets the marker size and border used to draw corners.
func (s *EbitenSurface) SetCursorGeometry(cornerSize, borderWidth float64) {
	s.cornerSize, s.borderWidth = cornerSize, borderWidth
}

// DrawField implements Surface.
func (s *EbitenSurface) DrawField(cells []ProximityCell, c Color) {
	s.cells = append(s.cells[:0], cells...)
	s.fieldColor = c
}

// DrawCursor implements Surface.
func (s *EbitenSurface) DrawCursor(c CursorCommand) {
	s.cursor = c
	s.hasCursor = true
}

// SetPose implements Surface.
func (s *EbitenSurface) SetPose(id string, part int, p Pose) {
	s.poses[PoseKey{ID: id, Part: part}] = p
	if part >= s.parts[id] {
		s.parts[id] = part + 1
	}
}

// SetRotation implements Surface.
func (s *EbitenSurface) SetRotation(id string, degrees, rate float64) {
	s.rotations[id] = RotationState{Degrees: degrees, Rate: rate}
}

// SetIdle implements Surface.
func (s *EbitenSurface) SetIdle(id string, dy, scale float64) {
	if dy == 0 && scale == 1 {
		delete(s.idle, id)
		return
	}
	s.idle[id] = IdleState{DY: dy, Scale: scale}
}

// DrawSlider implements Surface.
func (s *EbitenSurface) DrawSlider(id string, c SliderCommand) {
	s.sliders[id] = c
	for _, part := range [...]string{c.Parts.Track, c.Parts.Decrement, c.Parts.Increment} {
		if part != "" {
			s.owned[part] = true
		}
	}
}

// Draw paints the retained state onto screen at document scroll offset
// scrollY.
func (s *EbitenSurface) Draw(screen *ebiten.Image, scrollY float64) {
	if s.pixel == nil {
		s.pixel = ebiten.NewImage(1, 1)
		s.pixel.Fill(ColorWhite.RGBA())
	}
	screen.Fill(s.Background.RGBA())

	fc := s.fieldColor.RGBA()
	for i := range s.cells {
		c := &s.cells[i]
		vector.DrawFilledCircle(screen, float32(c.BaseX), float32(c.BaseY), float32(c.Size.Current/2), fc, true)
	}

	if s.layout != nil {
		for _, id := range s.layout.Elements() {
			if s.owned[id] {
				continue
			}
			e, _ := s.layout.Element(id)
			s.drawElement(screen, e, scrollY)
		}
		for _, c := range s.sliders {
			s.drawSlider(screen, c, scrollY)
		}
	}

	if s.hasCursor {
		if !s.cursorHidden {
			ebiten.SetCursorMode(ebiten.CursorModeHidden)
			s.cursorHidden = true
		}
		s.drawCursor(screen)
	}
}

func (s *EbitenSurface) colorFor(e Element) Color {
	for _, tag := range e.Tags {
		if c, ok := s.TagColors[tag]; ok {
			return c
		}
	}
	return s.ElementColor
}

// inherited sums the translation and multiplies the alpha of e's ancestors,
// so content moves with a pinned section.
func (s *EbitenSurface) inherited(e Element) (dx, dy, alpha float64) {
	alpha = 1
	for depth, id := 0, e.Parent; id != "" && depth < maxAncestorDepth; depth++ {
		if p, ok := s.poses[PoseKey{ID: id, Part: -1}]; ok {
			dx += p.X
			dy += p.Y
			alpha *= p.Alpha
		}
		parent, ok := s.layout.Element(id)
		if !ok {
			break
		}
		id = parent.Parent
	}
	return dx, dy, alpha
}

func (s *EbitenSurface) drawElement(screen *ebiten.Image, e Element, scrollY float64) {
	dx, dy, alpha := s.inherited(e)
	r := e.Bounds.Offset(dx, dy-scrollY)
	col := s.colorFor(e)
	deg := s.rotations[e.ID].Degrees
	idle, idling := s.idle[e.ID]
	if idling {
		r = r.Offset(0, idle.DY)
	}

	if n := s.parts[e.ID]; n > 0 && s.hasPart(e.ID) {
		w := r.Width / float64(n)
		for i := 0; i < n; i++ {
			p, ok := s.poses[PoseKey{ID: e.ID, Part: i}]
			if !ok {
				p = RestPose
			}
			if idling {
				p.Scale *= idle.Scale
			}
			s.drawQuad(screen, Rect{X: r.X + float64(i)*w, Y: r.Y, Width: w * 0.8, Height: r.Height}, p, deg, col, alpha)
		}
		return
	}
	p, ok := s.poses[PoseKey{ID: e.ID, Part: -1}]
	if !ok {
		p = RestPose
	}
	if idling {
		p.Scale *= idle.Scale
	}
	s.drawQuad(screen, r, p, deg, col, alpha)
}

func (s *EbitenSurface) hasPart(id string) bool {
	_, ok := s.poses[PoseKey{ID: id, Part: 0}]
	return ok
}

// drawQuad paints r transformed by p about its center, rotated by deg.
func (s *EbitenSurface) drawQuad(screen *ebiten.Image, r Rect, p Pose, deg float64, c Color, alpha float64) {
	a := p.Alpha * alpha
	if a <= 0 || r.Empty() {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-0.5, -0.5)
	op.GeoM.Scale(r.Width*p.Scale*p.ScaleX, r.Height*p.Scale*math.Cos(p.RotationX*math.Pi/180))
	op.GeoM.Rotate((deg + p.Rotation) * math.Pi / 180)
	op.GeoM.Translate(r.X+r.Width/2+p.X, r.Y+r.Height/2+p.Y)
	op.ColorScale.ScaleWithColor(c.RGBA())
	op.ColorScale.ScaleAlpha(float32(a))
	screen.DrawImage(s.pixel, op)
}

func (s *EbitenSurface) drawSlider(screen *ebiten.Image, c SliderCommand, scrollY float64) {
	te, ok := s.layout.Element(c.Parts.Track)
	if !ok {
		return
	}
	dx, dy, alpha := s.inherited(te)
	r := te.Bounds.Offset(dx, dy-scrollY)
	sx := c.TrackScaleX * c.ContainerScale
	w := r.Width * sx
	h := r.Height * c.ContainerScale
	x := r.X + r.Width/2 - w/2
	y := r.Y + r.Height/2 - h/2

	track := s.TrackColor
	track.A *= alpha
	fill := s.FillColor
	fill.A *= alpha
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), track.RGBA(), true)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(c.Fill*sx), float32(h), fill.RGBA(), true)

	for i, id := range [...]string{c.Parts.Decrement, c.Parts.Increment} {
		ie, ok := s.layout.Element(id)
		if !ok {
			continue
		}
		ir := ie.Bounds.Offset(dx, dy-scrollY)
		pose := RestPose
		pose.X = c.IconX[i]
		pose.Scale = c.IconScale[i] * c.ContainerScale
		s.drawQuad(screen, ir, pose, 0, s.FillColor, alpha)
	}
	ebitenutil.DebugPrintAt(screen, c.Label, int(r.X), int(r.Bottom())+6)
}

// cornerBars returns the two bars of bracket i in marker-local coordinates.
func cornerBars(i int, size, bw float64) [2]Rect {
	top := Rect{Width: size, Height: bw}
	bottom := Rect{Y: size - bw, Width: size, Height: bw}
	left := Rect{Width: bw, Height: size}
	right := Rect{X: size - bw, Width: bw, Height: size}
	switch i {
	case 0:
		return [2]Rect{top, left}
	case 1:
		return [2]Rect{top, right}
	case 2:
		return [2]Rect{bottom, right}
	default:
		return [2]Rect{bottom, left}
	}
}

func (s *EbitenSurface) drawCursor(screen *ebiten.Image) {
	c := s.cursor
	col := s.CursorColor.RGBA()
	rad := c.Rotation * math.Pi / 180
	for i, corner := range c.Corners {
		for _, bar := range cornerBars(i, s.cornerSize, s.borderWidth) {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(bar.Width, bar.Height)
			op.GeoM.Translate(corner.X+bar.X, corner.Y+bar.Y)
			op.GeoM.Scale(c.Scale, c.Scale)
			op.GeoM.Rotate(rad)
			op.GeoM.Translate(c.X, c.Y)
			op.ColorScale.ScaleWithColor(col)
			screen.DrawImage(s.pixel, op)
		}
	}
	vector.DrawFilledCircle(screen, float32(c.X), float32(c.Y), float32(4*c.DotScale), col, true)
}
