package glide

import (
	"math"
	"strings"
)

// SpinPreset is a base revolution duration and direction (+1 clockwise,
// -1 counter-clockwise).
type SpinPreset struct {
	Duration  float64
	Direction float64
}

// SpinPresets maps element tags to spin presets.
var SpinPresets = map[string]SpinPreset{
	"spin-fast":       {Duration: 6, Direction: 1},
	"spin-medium":     {Duration: 12, Direction: 1},
	"spin-slow":       {Duration: 20, Direction: 1},
	"spin-rev-fast":   {Duration: 8, Direction: -1},
	"spin-rev-medium": {Duration: 15, Direction: -1},
	"spin-rev-slow":   {Duration: 25, Direction: -1},
}

// Boost maps an absolute scroll velocity in px/s to the extra playback rate
// added to 1. It rises with slope 1/VelocityScale near rest, flattens with
// speed and never exceeds MaxBoost.
func (c SpinConfig) Boost(velocity float64) float64 {
	v := math.Abs(velocity)
	if c.MaxBoost <= 0 || c.VelocityScale <= 0 || v == 0 {
		return 0
	}
	return math.Min(c.MaxBoost, c.MaxBoost*math.Tanh(v/(c.VelocityScale*c.MaxBoost)))
}

type spinTarget struct {
	id        string
	duration  float64
	direction float64

	// The angle is anchor-relative so it can be evaluated at any clock
	// without per-frame integration.
	phase  float64
	anchor float64
	rate   float64
}

func (t *spinTarget) angle(now float64) float64 {
	a := t.phase
	if t.duration > 0 {
		a += 360 * t.direction * t.rate * (now - t.anchor) / t.duration
	}
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

func (t *spinTarget) setRate(rate, now float64) {
	if rate == t.rate {
		return
	}
	t.phase = t.angle(now)
	t.anchor = now
	t.rate = rate
}

// SpinController rotates every registered target at its base speed times a
// stage-wide multiplier that rises with scroll velocity and decays back to
// 1. It ticks only while the multiplier is away from 1.
type SpinController struct {
	ctx     *Context
	cfg     SpinConfig
	targets map[string]*spinTarget
	order   []*spinTarget
}

// NewSpinController creates a controller owning ctx.SpinRate.
func NewSpinController(ctx *Context) *SpinController {
	return &SpinController{
		ctx:     ctx,
		cfg:     ctx.Config.Spin,
		targets: make(map[string]*spinTarget),
	}
}

// Register adds element id spinning once per duration seconds in direction.
// It reports false when the element does not exist or is already spinning.
func (s *SpinController) Register(id string, duration, direction float64) bool {
	if _, dup := s.targets[id]; dup {
		return false
	}
	if s.ctx.Viewport == nil {
		return false
	}
	if _, ok := s.ctx.Viewport.Element(id); !ok {
		debugWarn(s.ctx, "spin: element %q not found", id)
		return false
	}
	if direction < 0 {
		direction = -1
	} else {
		direction = 1
	}
	t := &spinTarget{
		id:        id,
		duration:  duration,
		direction: direction,
		anchor:    s.ctx.now,
		rate:      s.ctx.SpinRate.Current,
	}
	s.targets[id] = t
	s.order = append(s.order, t)
	return true
}

// RegisterTagged adds element id using the first spin preset among its tags,
// falling back to the configured base duration.
func (s *SpinController) RegisterTagged(id string) bool {
	if s.ctx.Viewport == nil {
		return false
	}
	e, ok := s.ctx.Viewport.Element(id)
	if !ok {
		debugWarn(s.ctx, "spin: element %q not found", id)
		return false
	}
	for _, tag := range e.Tags {
		if !strings.HasPrefix(tag, "spin-") {
			continue
		}
		if p, ok := SpinPresets[tag]; ok {
			return s.Register(id, p.Duration, p.Direction)
		}
	}
	return s.Register(id, s.cfg.BaseDuration, 1)
}

// Unregister stops spinning element id.
func (s *SpinController) Unregister(id string) {
	t, ok := s.targets[id]
	if !ok {
		return
	}
	delete(s.targets, id)
	for i, x := range s.order {
		if x == t {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of spin targets.
func (s *SpinController) Len() int { return len(s.order) }

// Multiplier returns the current shared playback multiplier.
func (s *SpinController) Multiplier() float64 { return s.ctx.SpinRate.Current }

// Angle returns the rotation of element id at the current clock.
func (s *SpinController) Angle(id string) (float64, bool) {
	t, ok := s.targets[id]
	if !ok {
		return 0, false
	}
	return t.angle(s.ctx.now), true
}

// OnScroll samples the shared scroll velocity into the multiplier target.
func (s *SpinController) OnScroll() {
	rate := &s.ctx.SpinRate
	rate.Target = 1 + s.cfg.Boost(s.ctx.Scroll.Velocity)
	if math.Abs(rate.Current-1) < s.cfg.Epsilon && math.Abs(rate.Target-1) < s.cfg.Epsilon {
		return
	}
	s.ctx.Scheduler.Register(s)
}

// Tick implements Ticker. The multiplier converges toward its target, and
// the target itself decays toward 1 so the targets settle to base speed once
// scrolling stops.
func (s *SpinController) Tick(Frame) {
	rate := &s.ctx.SpinRate
	rate.Tick()
	if math.Abs(rate.Current-1) < s.cfg.Epsilon && math.Abs(rate.Target-1) < s.cfg.Epsilon {
		rate.Set(1)
		s.apply(1)
		s.ctx.Scheduler.Unregister(s)
		return
	}
	s.apply(rate.Current)
	rate.Target = Step(rate.Target, 1, s.cfg.Decay)
}

func (s *SpinController) apply(rate float64) {
	now := s.ctx.now
	for _, t := range s.order {
		t.setRate(rate, now)
	}
}

// Draw writes every target's rotation at the current clock.
func (s *SpinController) Draw() {
	now := s.ctx.now
	for _, t := range s.order {
		s.ctx.Surface.SetRotation(t.id, t.angle(now), t.rate)
	}
}
