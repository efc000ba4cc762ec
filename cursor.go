package glide

import (
	"math"

	"github.com/tanema/gween/ease"
)

// CursorCorner is one of the four bracket markers. Coordinates are relative
// to the tracker's own position.
type CursorCorner struct {
	X, Y Scalar
}

// BlendCorner moves a corner from current toward target by strength:
// current + (target - current) * strength on each axis.
func BlendCorner(current, target Vec2, strength float64) Vec2 {
	return Vec2{
		X: Step(current.X, target.X, strength),
		Y: Step(current.Y, target.Y, strength),
	}
}

// TargetCursor is a pointer-following indicator. While idle it spins at a
// constant rate with its corners resting in a small quad. When the pointer
// enters an interactive element the spin stops and the corners lock onto the
// element's bounding box, blended by an interaction strength in [0, 1].
type TargetCursor struct {
	ctx      *Context
	cfg      CursorConfig
	disabled bool

	target string
	x, y   Scalar

	corners    [4]CursorCorner
	strength   float64
	strengthTw *tween

	rotation   float64 // degrees, used while locked
	rotationTw *tween
	spinStart  float64 // stage clock at the start of the current idle revolution

	scale, dotScale Scalar
}

// NewTargetCursor creates the cursor centered in the viewport. On touch
// devices and narrow viewports the cursor is disabled and never draws.
func NewTargetCursor(ctx *Context) *TargetCursor {
	cfg := ctx.Config.Cursor
	if cfg.Targets == nil {
		cfg.Targets = DefaultTargets
	}
	w, h := ctx.Size()
	c := &TargetCursor{
		ctx:       ctx,
		cfg:       cfg,
		x:         NewScalar(w/2, cfg.FollowRate),
		y:         NewScalar(h/2, cfg.FollowRate),
		scale:     NewScalar(1, cfg.ScaleRate),
		dotScale:  NewScalar(1, cfg.ScaleRate),
		spinStart: ctx.now,
	}
	for i := range c.corners {
		c.corners[i] = CursorCorner{
			X: NewScalar(cfg.IdleCorners[i].X, cfg.CornerRate),
			Y: NewScalar(cfg.IdleCorners[i].Y, cfg.CornerRate),
		}
	}
	c.disabled = c.shouldDisable()
	return c
}

func (c *TargetCursor) shouldDisable() bool {
	if c.ctx.Touch() {
		return true
	}
	w, _ := c.ctx.Size()
	return w <= c.cfg.MobileMaxWidth
}

// Disabled reports whether the cursor is switched off for this device.
func (c *TargetCursor) Disabled() bool { return c.disabled }

// Target returns the element the cursor is locked onto, or "".
func (c *TargetCursor) Target() string { return c.target }

// Strength returns the current interaction strength.
func (c *TargetCursor) Strength() float64 { return c.strength }

// Position returns the tracker's current position.
func (c *TargetCursor) Position() Vec2 { return Vec2{X: c.x.Current, Y: c.y.Current} }

// Corner returns corner i (0 top-left, clockwise) relative to the tracker.
func (c *TargetCursor) Corner(i int) Vec2 {
	return Vec2{X: c.corners[i].X.Current, Y: c.corners[i].Y.Current}
}

// Rotation returns the tracker rotation in degrees at the current clock.
func (c *TargetCursor) Rotation() float64 {
	if c.target != "" || c.rotationTw.running() {
		return c.rotation
	}
	if c.cfg.SpinDuration <= 0 {
		return 0
	}
	turns := (c.ctx.now - c.spinStart) / c.cfg.SpinDuration
	return (turns - math.Floor(turns)) * 360
}

// OnPointerMove updates hover state for the deepest element under the
// pointer. The shared pointer record has already been updated.
func (c *TargetCursor) OnPointerMove(hovered string) {
	if c.disabled {
		return
	}
	next := ""
	if hovered != "" {
		if e, ok := Closest(c.ctx.Viewport, hovered, c.cfg.Targets); ok {
			next = e.ID
		}
	}
	switch {
	case next == c.target:
	case next == "":
		c.leave()
	default:
		c.enter(next)
	}
	c.wake()
}

// OnPointerLeave releases any target when the pointer leaves the document.
func (c *TargetCursor) OnPointerLeave() {
	if c.disabled {
		return
	}
	c.leave()
	c.wake()
}

// OnPointerDown plays the press feedback.
func (c *TargetCursor) OnPointerDown() {
	if c.disabled {
		return
	}
	c.scale.Target = c.cfg.PressScale
	c.dotScale.Target = c.cfg.PressDotScale
	c.wake()
}

// OnPointerUp restores the press feedback.
func (c *TargetCursor) OnPointerUp() {
	if c.disabled {
		return
	}
	c.scale.Target = 1
	c.dotScale.Target = 1
	c.wake()
}

// OnScroll re-tracks a locked target whose box moved under the pointer.
func (c *TargetCursor) OnScroll() {
	if c.disabled || c.target == "" {
		return
	}
	c.wake()
}

// OnResize re-evaluates the device check and re-tracks a locked target.
func (c *TargetCursor) OnResize() {
	disable := c.shouldDisable()
	if disable && !c.disabled {
		c.leave()
		c.ctx.Scheduler.Unregister(c)
	}
	c.disabled = disable
	if !c.disabled && c.target != "" {
		c.wake()
	}
}

func (c *TargetCursor) enter(id string) {
	prev := c.target
	c.target = id
	c.ctx.Hold(c)
	if prev == "" {
		c.rotation = c.Rotation()
		c.rotationTw = newTween(&c.rotation, 0, c.cfg.ResetDuration, ease.OutQuad)
	} else {
		c.ctx.emit(MotionTargetLeave, prev, 0)
		// Hopping between targets restarts the blend from the old box.
		c.strength = 0
	}
	// Corners keep their current positions as the start of the new blend.
	c.strengthTw = newTween(&c.strength, 1, c.cfg.HoverDuration, ease.OutQuad)
	c.ctx.emit(MotionTargetEnter, id, 0)
}

func (c *TargetCursor) leave() {
	if c.target == "" {
		return
	}
	id := c.target
	c.target = ""
	c.ctx.Release(c)
	c.strengthTw = newTween(&c.strength, 0, c.cfg.LeaveDuration, ease.OutQuad)
	c.rotationTw = nil
	c.rotation = 0
	c.spinStart = c.ctx.now
	for i := range c.corners {
		c.corners[i].X.Target = c.cfg.IdleCorners[i].X
		c.corners[i].Y.Target = c.cfg.IdleCorners[i].Y
	}
	c.ctx.emit(MotionTargetLeave, id, 0)
}

func (c *TargetCursor) wake() {
	c.ctx.Scheduler.Register(c)
}

// boxCorners returns the absolute marker positions framing rect.
func (c *TargetCursor) boxCorners(r Rect) [4]Vec2 {
	bw, cs := c.cfg.BorderWidth, c.cfg.CornerSize
	return [4]Vec2{
		{X: r.X - bw, Y: r.Y - bw},
		{X: r.Right() + bw - cs, Y: r.Y - bw},
		{X: r.Right() + bw - cs, Y: r.Bottom() + bw - cs},
		{X: r.X - bw, Y: r.Bottom() + bw - cs},
	}
}

// Tick implements Ticker.
func (c *TargetCursor) Tick(f Frame) {
	p := c.ctx.Pointer
	px, py := c.x.Current, c.y.Current
	c.x.Target, c.y.Target = p.X, p.Y
	c.x.Tick()
	c.y.Tick()

	c.strengthTw.Update(f.DT)
	c.rotationTw.Update(f.DT)

	locked := false
	if c.target != "" {
		// The box is recomputed every tick so scrolling while hovered is tracked.
		if rect, ok := c.ctx.ClientRect(c.target); ok {
			locked = true
			if c.strength > 0 {
				// Blend in page space so the tracker's own motion does not
				// drag the markers.
				abs := c.boxCorners(rect)
				for i := range c.corners {
					corner := &c.corners[i]
					cur := Vec2{X: px + corner.X.Current, Y: py + corner.Y.Current}
					next := BlendCorner(cur, abs[i], c.strength)
					corner.X.Target, corner.Y.Target = abs[i].X-c.x.Current, abs[i].Y-c.y.Current
					corner.X.Current, corner.Y.Current = next.X-c.x.Current, next.Y-c.y.Current
				}
			}
		} else {
			c.leave()
		}
	}
	if !locked {
		for i := range c.corners {
			c.corners[i].X.Tick()
			c.corners[i].Y.Tick()
		}
	}

	c.scale.Tick()
	c.dotScale.Tick()

	if c.settled() {
		c.ctx.Scheduler.Unregister(c)
	}
}

func (c *TargetCursor) settled() bool {
	eps := c.cfg.Epsilon
	if c.strengthTw.running() || c.rotationTw.running() {
		return false
	}
	if !c.x.Settled(eps) || !c.y.Settled(eps) {
		return false
	}
	if c.target != "" && c.strength <= 0 {
		return false
	}
	for i := range c.corners {
		if !c.corners[i].X.Settled(eps) || !c.corners[i].Y.Settled(eps) {
			return false
		}
	}
	return c.scale.Settled(eps/10) && c.dotScale.Settled(eps/10)
}

// Draw writes the cursor transform to the surface. Rotation is evaluated
// against the stage clock so an idle cursor keeps spinning without ticking.
func (c *TargetCursor) Draw() {
	if c.disabled {
		return
	}
	cmd := CursorCommand{
		X:        c.x.Current,
		Y:        c.y.Current,
		Rotation: c.Rotation(),
		Scale:    c.scale.Current,
		DotScale: c.dotScale.Current,
		Tracking: c.target != "",
	}
	for i := range c.corners {
		cmd.Corners[i] = c.Corner(i)
	}
	c.ctx.Surface.DrawCursor(cmd)
}
