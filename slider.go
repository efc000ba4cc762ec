package glide

import (
	"fmt"
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/tanema/gween/ease"
)

// Region is where the pointer sits relative to a slider track.
type Region uint8

const (
	RegionMiddle Region = iota // over the track
	RegionLeft                 // past the left edge
	RegionRight                // past the right edge
)

func (r Region) String() string {
	switch r {
	case RegionLeft:
		return "left"
	case RegionRight:
		return "right"
	default:
		return "middle"
	}
}

// Output is a controlled numeric channel driven by a slider, such as a
// volume. Values are always in [0, 1].
type Output interface {
	SetValue(v float64)
}

// OutputFunc adapts a function to Output.
type OutputFunc func(v float64)

// SetValue implements Output.
func (f OutputFunc) SetValue(v float64) { f(v) }

// SliderParts names the elements that make up an elastic slider.
type SliderParts struct {
	Track     string // the draggable track
	Decrement string // optional step-down control
	Increment string // optional step-up control
}

// Overflow splits a pointer x position against a track into a clamped value
// in [0, 1], the region, and the distance past the nearest edge in pixels,
// capped at maxOverflow. A zero-width track reports ok false.
func Overflow(x float64, track Rect, maxOverflow float64) (value float64, region Region, overflow float64, ok bool) {
	if track.Width <= 0 {
		return 0, RegionMiddle, 0, false
	}
	raw := (x - track.X) / track.Width
	switch {
	case raw < 0:
		return 0, RegionLeft, math.Min(track.X-x, maxOverflow), true
	case raw > 1:
		return 1, RegionRight, math.Min(x-track.Right(), maxOverflow), true
	default:
		return raw, RegionMiddle, 0, true
	}
}

// sprung is a visual property that follows its target with a plain step
// while dragging and with a damped spring after release.
type sprung struct {
	Scalar
	vel float64
}

func (s *sprung) tick(spring *harmonica.Spring, springing bool) {
	if !springing {
		s.vel = 0
		s.Tick()
		return
	}
	s.Current, s.vel = spring.Update(s.Current, s.vel, s.Target)
}

func (s *sprung) settled(eps float64) bool {
	return math.Abs(s.Current-s.Target) < eps && math.Abs(s.vel) < eps
}

// ElasticSlider maps horizontal drags on a track to a value in [0, 1].
// Dragging past an edge stretches the track and pushes that edge's icon out
// by the capped overflow; releasing springs both back. The value itself is
// clamped at all times.
type ElasticSlider struct {
	ctx    *Context
	cfg    SliderConfig
	id     string
	parts  SliderParts
	output Output
	spring harmonica.Spring

	value    float64
	region   Region
	overflow float64
	dragging bool
	released bool
	pressed  string // step control under the last press

	trackScale  sprung
	container   sprung
	containerTw *tween
	iconX       [2]sprung
	iconStretch [2]sprung
	iconPulse   [2]float64
	pulseTw     [2]*tween
}

// NewElasticSlider creates slider id over parts driving output, starting at
// the configured initial value. It reports nil when the track element does
// not exist.
func NewElasticSlider(ctx *Context, id string, parts SliderParts, output Output) *ElasticSlider {
	if ctx.Viewport == nil {
		return nil
	}
	if _, ok := ctx.Viewport.Element(parts.Track); !ok {
		debugWarn(ctx, "slider: track %q not found", parts.Track)
		return nil
	}
	cfg := ctx.Config.Slider
	tps := ctx.Config.TPS
	if tps <= 0 {
		tps = 60
	}
	s := &ElasticSlider{
		ctx:    ctx,
		cfg:    cfg,
		id:     id,
		parts:  parts,
		output: output,
		spring: harmonica.NewSpring(harmonica.FPS(tps), cfg.SpringFrequency, cfg.SpringDamping),
		value:  clamp01(cfg.Initial),
	}
	s.trackScale.Scalar = NewScalar(1, cfg.DragRate)
	s.container.Scalar = NewScalar(1, cfg.DragRate)
	for i := range s.iconX {
		s.iconX[i].Scalar = NewScalar(0, cfg.DragRate)
		s.iconStretch[i].Scalar = NewScalar(1, cfg.DragRate)
		s.iconPulse[i] = 1
	}
	s.commit(s.value)
	s.draw()
	return s
}

// Value returns the committed value.
func (s *ElasticSlider) Value() float64 { return s.value }

// Region returns the region of the last drag sample.
func (s *ElasticSlider) Region() Region { return s.region }

// OverflowPx returns the capped overflow of the last drag sample.
func (s *ElasticSlider) OverflowPx() float64 { return s.overflow }

// Dragging reports whether a drag gesture is in progress.
func (s *ElasticSlider) Dragging() bool { return s.dragging }

// Label returns the value as a rounded percentage.
func (s *ElasticSlider) Label() string {
	return fmt.Sprintf("%d%%", int(math.Round(s.value*100)))
}

// SetValue commits v, clamped to [0, 1], without any gesture.
func (s *ElasticSlider) SetValue(v float64) {
	s.commit(clamp01(v))
	s.draw()
}

// StepBy moves the value by dir steps, clamped to [0, 1], and pulses the
// corresponding icon. It is independent of drag state.
func (s *ElasticSlider) StepBy(dir int) {
	if dir == 0 {
		return
	}
	s.commit(clamp01(s.value + float64(dir)*s.cfg.Step))
	i := 1
	if dir < 0 {
		i = 0
	}
	s.pulseTw[i] = newPulse(&s.iconPulse[i], s.cfg.PulseScale, 1, s.cfg.PulseDuration, ease.OutQuad)
	s.draw()
	s.ctx.Scheduler.Register(s)
}

// OnPointerDown starts a drag when the press lands on the track, or arms a
// step control.
func (s *ElasticSlider) OnPointerDown(x, y float64, hovered string) {
	s.pressed = s.stepControl(hovered)
	if s.pressed != "" {
		return
	}
	track, ok := s.ctx.ClientRect(s.parts.Track)
	if !ok {
		return
	}
	hit := Rect{X: track.X, Y: track.Y - s.cfg.HitPad, Width: track.Width, Height: track.Height + 2*s.cfg.HitPad}
	if !hit.Contains(x, y) {
		return
	}
	s.dragging = true
	s.released = false
	s.ctx.Hold(s)
	s.container.Target = s.cfg.PressScale
	s.containerTw = newTween(&s.container.Current, s.cfg.PressScale, s.cfg.PressDuration, ease.OutQuad)
	s.sample(x)
	s.ctx.Scheduler.Register(s)
}

// OnPointerMove continues a drag.
func (s *ElasticSlider) OnPointerMove(x float64) {
	if !s.dragging {
		return
	}
	s.sample(x)
	s.ctx.Scheduler.Register(s)
}

// OnPointerUp ends a drag and springs the visuals back, or completes a step
// click when released over the control that was pressed.
func (s *ElasticSlider) OnPointerUp(hovered string) {
	if s.pressed != "" {
		control := s.pressed
		s.pressed = ""
		if s.stepControl(hovered) == control {
			if control == s.parts.Decrement {
				s.StepBy(-1)
			} else {
				s.StepBy(1)
			}
		}
		return
	}
	if !s.dragging {
		return
	}
	s.dragging = false
	s.released = true
	s.ctx.Release(s)
	s.region = RegionMiddle
	s.overflow = 0
	s.containerTw = nil
	s.rest()
	s.ctx.Scheduler.Register(s)
}

func (s *ElasticSlider) stepControl(hovered string) string {
	if hovered == "" {
		return ""
	}
	for _, id := range [...]string{s.parts.Decrement, s.parts.Increment} {
		if id == "" {
			continue
		}
		if _, ok := Closest(s.ctx.Viewport, hovered, func(e Element) bool { return e.ID == id }); ok {
			return id
		}
	}
	return ""
}

// sample applies one drag position.
func (s *ElasticSlider) sample(x float64) {
	track, ok := s.ctx.ClientRect(s.parts.Track)
	if !ok {
		return
	}
	value, region, overflow, ok := Overflow(x, track, s.cfg.MaxOverflow)
	if !ok {
		return
	}
	s.region, s.overflow = region, overflow
	s.commit(value)
	if overflow <= 0 {
		s.rest()
		return
	}
	s.trackScale.Target = 1 + overflow/track.Width
	if region == RegionLeft {
		s.iconX[0].Target, s.iconStretch[0].Target = -overflow, s.cfg.IconScale
		s.iconX[1].Target, s.iconStretch[1].Target = 0, 1
	} else {
		s.iconX[1].Target, s.iconStretch[1].Target = overflow, s.cfg.IconScale
		s.iconX[0].Target, s.iconStretch[0].Target = 0, 1
	}
}

func (s *ElasticSlider) rest() {
	s.trackScale.Target = 1
	if !s.dragging {
		s.container.Target = 1
	}
	for i := range s.iconX {
		s.iconX[i].Target = 0
		s.iconStretch[i].Target = 1
	}
}

func (s *ElasticSlider) commit(v float64) {
	changed := v != s.value
	s.value = v
	if s.output != nil {
		s.output.SetValue(v)
	}
	if changed {
		s.ctx.emit(MotionValueChanged, s.id, v)
	}
}

// Tick implements Ticker.
func (s *ElasticSlider) Tick(f Frame) {
	springing := s.released
	s.trackScale.tick(&s.spring, springing)
	if s.containerTw.running() {
		s.containerTw.Update(f.DT)
	} else {
		s.container.tick(&s.spring, springing)
	}
	for i := range s.iconX {
		s.iconX[i].tick(&s.spring, springing)
		s.iconStretch[i].tick(&s.spring, springing)
		s.pulseTw[i].Update(f.DT)
	}
	s.draw()
	if s.settled() {
		s.snap()
		s.draw()
		s.ctx.Scheduler.Unregister(s)
	}
}

func (s *ElasticSlider) settled() bool {
	eps := s.cfg.Epsilon
	if s.containerTw.running() || s.pulseTw[0].running() || s.pulseTw[1].running() {
		return false
	}
	if !s.trackScale.settled(eps/10) || !s.container.settled(eps/10) {
		return false
	}
	for i := range s.iconX {
		if !s.iconX[i].settled(eps) || !s.iconStretch[i].settled(eps/10) {
			return false
		}
	}
	return true
}

func (s *ElasticSlider) snap() {
	s.trackScale.Snap()
	s.trackScale.vel = 0
	s.container.Snap()
	s.container.vel = 0
	for i := range s.iconX {
		s.iconX[i].Snap()
		s.iconX[i].vel = 0
		s.iconStretch[i].Snap()
		s.iconStretch[i].vel = 0
	}
	if !s.dragging {
		s.released = false
	}
}

// Command returns the current presentation of the slider.
func (s *ElasticSlider) Command() SliderCommand {
	cmd := SliderCommand{
		Parts:          s.parts,
		Value:          s.value,
		Label:          s.Label(),
		Region:         s.region,
		TrackScaleX:    s.trackScale.Current,
		ContainerScale: s.container.Current,
	}
	if track, ok := s.ctx.ClientRect(s.parts.Track); ok {
		cmd.Fill = s.value * track.Width
	}
	for i := range s.iconX {
		cmd.IconX[i] = s.iconX[i].Current
		cmd.IconScale[i] = s.iconStretch[i].Current * s.iconPulse[i]
	}
	return cmd
}

func (s *ElasticSlider) draw() {
	s.ctx.Surface.DrawSlider(s.id, s.Command())
}
