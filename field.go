package glide

import "math"

// ProximityField is a grid of dots whose size swells near the pointer. It
// ticks only while some dot is still converging or the pointer has moved
// within the idle window, and it never computes while the page is hidden.
type ProximityField struct {
	ctx   *Context
	cfg   FieldConfig
	cells []ProximityCell

	r, g, b, a Scalar
}

// NewProximityField creates a field covering the context's viewport and
// draws it once.
func NewProximityField(ctx *Context) *ProximityField {
	f := &ProximityField{ctx: ctx, cfg: ctx.Config.Field}
	c := f.cfg.Color
	rate := f.cfg.ColorRate
	f.r, f.g, f.b, f.a = NewScalar(c.R, rate), NewScalar(c.G, rate), NewScalar(c.B, rate), NewScalar(c.A, rate)
	f.Layout()
	return f
}

// Cells returns the current grid. The returned slice MUST NOT be mutated.
func (f *ProximityField) Cells() []ProximityCell {
	return f.cells
}

// Layout discards the grid and lays out a fresh one covering the viewport
// plus one row and column of overscan, then redraws.
func (f *ProximityField) Layout() {
	w, h := f.ctx.Size()
	spacing := f.cfg.Spacing
	f.cells = nil
	if spacing > 0 && w+spacing > 0 && h+spacing > 0 {
		cols := int(math.Ceil((w + spacing) / spacing))
		rows := int(math.Ceil((h + spacing) / spacing))
		f.cells = make([]ProximityCell, 0, rows*cols)
		for row := 0; row < rows; row++ {
			for col := 0; col < cols; col++ {
				f.cells = append(f.cells, ProximityCell{
					BaseX: float64(col) * spacing,
					BaseY: float64(row) * spacing,
					Size:  NewScalar(f.cfg.RestSize, f.cfg.Rate),
				})
			}
		}
	}
	f.drawFrame()
}

// TargetSize returns the size a cell at (x, y) converges toward for the
// current pointer state.
func (f *ProximityField) TargetSize(x, y float64) float64 {
	p := f.ctx.Pointer
	radius := f.cfg.Radius
	if !p.Active || radius <= 0 {
		return f.cfg.RestSize
	}
	d := math.Hypot(p.X-x, p.Y-y)
	if d >= radius {
		return f.cfg.RestSize
	}
	percent := (radius - d) / radius
	return f.cfg.RestSize + percent*(f.cfg.MaxSize-f.cfg.RestSize)
}

// SetColor starts converging the field color toward c.
func (f *ProximityField) SetColor(c Color) {
	f.r.Target, f.g.Target, f.b.Target, f.a.Target = c.R, c.G, c.B, c.A
	f.wake()
}

// Color returns the current field color.
func (f *ProximityField) Color() Color {
	return Color{R: f.r.Current, G: f.g.Current, B: f.b.Current, A: f.a.Current}
}

// OnPointerMove resumes ticking. The pointer record has already been updated.
func (f *ProximityField) OnPointerMove() {
	f.wake()
}

// OnPointerInactive resumes ticking so cells can shrink back to rest.
func (f *ProximityField) OnPointerInactive() {
	f.wake()
}

// OnVisible redraws once so the field does not show a stale partial frame,
// then resumes ticking until it settles again.
func (f *ProximityField) OnVisible() {
	f.drawFrame()
	f.wake()
}

// Tick implements Ticker.
func (f *ProximityField) Tick(Frame) {
	if f.ctx.hidden {
		return
	}
	f.drawFrame()
	if f.ctx.IdleFor() >= f.cfg.IdleWindow && f.settled() {
		f.ctx.Scheduler.Unregister(f)
	}
}

func (f *ProximityField) wake() {
	if f.ctx.hidden {
		return
	}
	f.ctx.Scheduler.Register(f)
}

// drawFrame advances every cell one step and hands the grid to the surface.
func (f *ProximityField) drawFrame() {
	for i := range f.cells {
		c := &f.cells[i]
		c.Size.Target = f.TargetSize(c.BaseX, c.BaseY)
		c.Size.Tick()
	}
	f.r.Tick()
	f.g.Tick()
	f.b.Tick()
	f.a.Tick()
	f.ctx.Surface.DrawField(f.cells, f.Color())
}

func (f *ProximityField) settled() bool {
	eps := f.cfg.Epsilon
	for i := range f.cells {
		if !f.cells[i].Size.Settled(eps) {
			return false
		}
	}
	const colorEps = 1.0 / 512
	return f.r.Settled(colorEps) && f.g.Settled(colorEps) && f.b.Settled(colorEps) && f.a.Settled(colorEps)
}
