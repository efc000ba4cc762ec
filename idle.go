package glide

import (
	"math"
	"math/rand/v2"

	"github.com/tanema/gween/ease"
)

// IdleKind selects a continuous idle motion.
type IdleKind uint8

const (
	IdleFloat IdleKind = iota // bob up and back
	IdlePulse                 // breathe in scale
)

func (k IdleKind) String() string {
	switch k {
	case IdleFloat:
		return "float"
	case IdlePulse:
		return "pulse"
	default:
		return "unknown"
	}
}

// IdleTags maps element tags to the idle motion they request.
var IdleTags = map[string]IdleKind{
	"idle-float": IdleFloat,
	"idle-pulse": IdlePulse,
}

// idleCycle is one endless yoyo, anchored to the stage clock.
type idleCycle struct {
	start    float64
	delay    float64
	duration float64
}

// progress returns the eased yoyo position in [0, 1] at now.
func (c *idleCycle) progress(now float64) float64 {
	if c == nil || c.duration <= 0 {
		return 0
	}
	local := now - c.start - c.delay
	if local <= 0 {
		return 0
	}
	turns := local / c.duration
	n := math.Floor(turns)
	f := turns - n
	if int64(n)%2 == 1 {
		f = 1 - f
	}
	return float64(ease.InOutSine(float32(f), 0, 1, 1))
}

type idleTarget struct {
	id    string
	float *idleCycle
	pulse *idleCycle
}

// IdleMotion runs the ambient float and pulse loops. Offsets are a pure
// function of the stage clock and are written in Draw, so idle elements never
// register a ticker.
type IdleMotion struct {
	ctx     *Context
	cfg     IdleConfig
	rng     *rand.Rand
	targets map[string]*idleTarget
	order   []*idleTarget
}

// NewIdleMotion creates an empty idle motion controller. Random durations
// and delays come from cfg.Seed, so runs are reproducible.
func NewIdleMotion(ctx *Context) *IdleMotion {
	cfg := ctx.Config.Idle
	return &IdleMotion{
		ctx:     ctx,
		cfg:     cfg,
		rng:     rand.New(rand.NewPCG(cfg.Seed, cfg.Seed)),
		targets: make(map[string]*idleTarget),
	}
}

// Register starts kind on element id with a random duration and delay from
// the configured ranges. A motion already running on id is left alone and
// reports false, as does a missing element.
func (m *IdleMotion) Register(id string, kind IdleKind) bool {
	lo, hi := m.cfg.FloatMin, m.cfg.FloatMax
	if kind == IdlePulse {
		lo, hi = m.cfg.PulseMin, m.cfg.PulseMax
	}
	return m.RegisterTimed(id, kind, lo+(hi-lo)*m.rng.Float64(), m.cfg.MaxDelay*m.rng.Float64())
}

// RegisterTimed starts kind on element id with an explicit half-cycle
// duration and start delay, both in seconds.
func (m *IdleMotion) RegisterTimed(id string, kind IdleKind, duration, delay float64) bool {
	if m.ctx.Viewport == nil {
		return false
	}
	if _, ok := m.ctx.Viewport.Element(id); !ok {
		debugWarn(m.ctx, "idle: element %q not found", id)
		return false
	}
	t, ok := m.targets[id]
	if !ok {
		t = &idleTarget{id: id}
	}
	slot := &t.float
	if kind == IdlePulse {
		slot = &t.pulse
	}
	if *slot != nil {
		debugWarn(m.ctx, "idle: %s already running on %q", kind, id)
		return false
	}
	*slot = &idleCycle{start: m.ctx.now, delay: delay, duration: duration}
	if !ok {
		m.targets[id] = t
		m.order = append(m.order, t)
	}
	return true
}

// RegisterTagged starts every idle motion named by the element's tags and
// reports whether any was started.
func (m *IdleMotion) RegisterTagged(id string) bool {
	if m.ctx.Viewport == nil {
		return false
	}
	e, ok := m.ctx.Viewport.Element(id)
	if !ok {
		debugWarn(m.ctx, "idle: element %q not found", id)
		return false
	}
	started := false
	for _, tag := range e.Tags {
		if kind, ok := IdleTags[tag]; ok && m.Register(id, kind) {
			started = true
		}
	}
	return started
}

// Unregister stops every idle motion on id and writes it back to rest.
func (m *IdleMotion) Unregister(id string) {
	t, ok := m.targets[id]
	if !ok {
		return
	}
	delete(m.targets, id)
	for i, o := range m.order {
		if o == t {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.ctx.Surface.SetIdle(id, 0, 1)
}

// Len returns the number of elements with an idle motion.
func (m *IdleMotion) Len() int { return len(m.order) }

// Offset returns the vertical offset and scale of id at the current clock.
func (m *IdleMotion) Offset(id string) (dy, scale float64, ok bool) {
	t, ok := m.targets[id]
	if !ok {
		return 0, 1, false
	}
	dy, scale = m.offset(t, m.ctx.now)
	return dy, scale, true
}

func (m *IdleMotion) offset(t *idleTarget, now float64) (dy, scale float64) {
	scale = 1
	if t.float != nil {
		dy = m.cfg.FloatOffset * t.float.progress(now)
	}
	if t.pulse != nil {
		scale = 1 + (m.cfg.PulseScale-1)*t.pulse.progress(now)
	}
	return dy, scale
}

// Draw writes every idle offset at the current clock.
func (m *IdleMotion) Draw() {
	now := m.ctx.now
	for _, t := range m.order {
		dy, scale := m.offset(t, now)
		m.ctx.Surface.SetIdle(t.id, dy, scale)
	}
}
