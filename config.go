package glide

import (
	"encoding/json"
	"fmt"

	"github.com/tanema/gween/ease"
)

// FieldConfig tunes the ambient proximity field.
type FieldConfig struct {
	Spacing    float64 // grid interval in pixels
	Radius     float64 // maximum influence distance
	RestSize   float64 // resting cell size
	MaxSize    float64 // cell size directly under the pointer
	Rate       float64 // per-tick convergence of cell size
	Epsilon    float64 // size difference treated as settled
	ColorRate  float64 // per-tick convergence of the field color
	Color      Color
	IdleWindow float64 // seconds without pointer movement before the field may stop
}

// CursorConfig tunes the target cursor.
type CursorConfig struct {
	SpinDuration   float64 // seconds per idle revolution
	HoverDuration  float64 // seconds for interaction strength to reach 1
	LeaveDuration  float64 // seconds for interaction strength to return to 0
	ResetDuration  float64 // seconds for rotation to return to 0 on lock
	FollowRate     float64 // per-tick convergence of the tracker toward the pointer
	CornerRate     float64 // per-tick convergence of corners toward the idle quad
	ScaleRate      float64 // per-tick convergence of click feedback scales
	Epsilon        float64 // position difference treated as settled
	BorderWidth    float64 // gap between the target box and the corner markers
	CornerSize     float64 // marker side length
	IdleCorners    [4]Vec2 // resting corner offsets: top-left, top-right, bottom-right, bottom-left
	PressScale     float64 // tracker scale while pressed
	PressDotScale  float64 // dot scale while pressed
	MobileMaxWidth float64 // viewports at or below this width disable the cursor
	Targets        func(Element) bool
}

// RevealConfig tunes the scroll reveal scheduler.
type RevealConfig struct {
	Epsilon float64 // playhead seconds treated as having reached an end
	Ease    string  // default curve: linear, outQuad, inOutQuad, outCubic, outBack
}

// SpinConfig tunes the velocity-reactive spin controller.
type SpinConfig struct {
	Rate          float64 // per-tick convergence of the multiplier toward its target
	Decay         float64 // per-tick decay of the target toward 1
	VelocityScale float64 // px/s of scroll velocity per unit of boost near rest
	MaxBoost      float64 // hard cap on the boost added to 1
	Epsilon       float64
	BaseDuration  float64 // seconds per revolution when a target has no preset
}

// SliderConfig tunes elastic sliders.
type SliderConfig struct {
	Initial         float64 // starting value
	Step            float64 // increment/decrement step
	MaxOverflow     float64 // overflow cap in pixels
	HitPad          float64 // extra vertical pixels around the track that accept a press
	DragRate        float64 // per-tick convergence of stretch visuals while dragging
	PressScale      float64 // container scale while pressed
	IconScale       float64 // icon scale while stretched past its edge
	PulseScale      float64 // icon scale at the start of a step pulse
	PulseDuration   float64 // seconds for a pulse to settle
	PressDuration   float64 // seconds for the press scale to apply
	SpringFrequency float64 // release spring angular frequency
	SpringDamping   float64 // release spring damping ratio (<1 overshoots)
	Epsilon         float64
}

// IdleConfig tunes the ambient float and pulse loops. Each element draws its
// half-cycle duration from [Min, Max] and a start delay from [0, MaxDelay].
type IdleConfig struct {
	FloatOffset float64 // vertical travel in pixels at the top of a float
	FloatMin    float64
	FloatMax    float64
	PulseScale  float64 // scale at the peak of a pulse
	PulseMin    float64
	PulseMax    float64
	MaxDelay    float64
	Seed        uint64 // seeds the duration and delay picks
}

// Config aggregates every tunable of the stage.
type Config struct {
	Field  FieldConfig
	Cursor CursorConfig
	Reveal RevealConfig
	Spin   SpinConfig
	Slider SliderConfig
	Idle   IdleConfig

	// PointerIdle is the number of seconds without movement after which the
	// pointer counts as inactive, unless a component holds an interaction.
	PointerIdle float64
	TPS         int // ticks per second assumed by spring integration
	Debug       bool
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Field: FieldConfig{
			Spacing:    60,
			Radius:     200,
			RestSize:   4,
			MaxSize:    10,
			Rate:       0.15,
			Epsilon:    0.1,
			ColorRate:  0.05,
			Color:      ColorWhite,
			IdleWindow: 0.5,
		},
		Cursor: CursorConfig{
			SpinDuration:  2,
			HoverDuration: 0.2,
			LeaveDuration: 0.1,
			ResetDuration: 0.2,
			FollowRate:    0.35,
			CornerRate:    0.2,
			ScaleRate:     0.25,
			Epsilon:       0.05,
			BorderWidth:   3,
			CornerSize:    12,
			IdleCorners: [4]Vec2{
				{X: -18, Y: -18},
				{X: 6, Y: -18},
				{X: 6, Y: 6},
				{X: -18, Y: 6},
			},
			PressScale:     0.9,
			PressDotScale:  0.5,
			MobileMaxWidth: 768,
			Targets:        DefaultTargets,
		},
		Reveal: RevealConfig{
			Epsilon: 1e-6,
			Ease:    "outQuad",
		},
		Spin: SpinConfig{
			Rate:          0.08,
			Decay:         0.15,
			VelocityScale: 400,
			MaxBoost:      8,
			Epsilon:       0.005,
			BaseDuration:  20,
		},
		Slider: SliderConfig{
			Initial:         0.5,
			Step:            0.1,
			MaxOverflow:     50,
			HitPad:          14,
			DragRate:        0.5,
			PressScale:      1.05,
			IconScale:       1.2,
			PulseScale:      1.4,
			PulseDuration:   0.3,
			PressDuration:   0.2,
			SpringFrequency: 9,
			SpringDamping:   0.55,
			Epsilon:         0.01,
		},
		Idle: IdleConfig{
			FloatOffset: -12,
			FloatMin:    3,
			FloatMax:    5,
			PulseScale:  1.02,
			PulseMin:    2,
			PulseMax:    3,
			MaxDelay:    2,
			Seed:        1,
		},
		PointerIdle: 0.5,
		TPS:         60,
	}
}

// DefaultTargets is the interactive-target predicate: links, buttons,
// explicit cursor targets, and cards or floating blocks that have not opted
// out with "no-cursor-track".
func DefaultTargets(e Element) bool {
	if e.HasTag("a") || e.HasTag("button") || e.HasTag("cursor-target") {
		return true
	}
	if e.HasTag("no-cursor-track") {
		return false
	}
	return e.HasTag("card") || e.HasTag("float")
}

// Validate reports the first tunable outside its legal range.
func (c Config) Validate() error {
	rates := []struct {
		name string
		v    float64
	}{
		{"field.rate", c.Field.Rate},
		{"field.colorRate", c.Field.ColorRate},
		{"cursor.followRate", c.Cursor.FollowRate},
		{"cursor.cornerRate", c.Cursor.CornerRate},
		{"cursor.scaleRate", c.Cursor.ScaleRate},
		{"spin.rate", c.Spin.Rate},
		{"spin.decay", c.Spin.Decay},
		{"slider.dragRate", c.Slider.DragRate},
	}
	for _, r := range rates {
		if r.v <= 0 || r.v > 1 {
			return fmt.Errorf("config: %s = %v, want (0, 1]", r.name, r.v)
		}
	}
	if c.Field.Spacing <= 0 {
		return fmt.Errorf("config: field.spacing = %v, want > 0", c.Field.Spacing)
	}
	if c.Field.MaxSize < c.Field.RestSize {
		return fmt.Errorf("config: field.maxSize %v below restSize %v", c.Field.MaxSize, c.Field.RestSize)
	}
	if c.Spin.MaxBoost < 0 || c.Spin.VelocityScale <= 0 {
		return fmt.Errorf("config: spin boost %v / velocity scale %v out of range", c.Spin.MaxBoost, c.Spin.VelocityScale)
	}
	if c.Slider.Step <= 0 || c.Slider.Step > 1 {
		return fmt.Errorf("config: slider.step = %v, want (0, 1]", c.Slider.Step)
	}
	if c.Slider.MaxOverflow < 0 {
		return fmt.Errorf("config: slider.maxOverflow = %v, want >= 0", c.Slider.MaxOverflow)
	}
	if c.Idle.FloatMin <= 0 || c.Idle.FloatMax < c.Idle.FloatMin {
		return fmt.Errorf("config: idle float durations [%v, %v] out of range", c.Idle.FloatMin, c.Idle.FloatMax)
	}
	if c.Idle.PulseMin <= 0 || c.Idle.PulseMax < c.Idle.PulseMin {
		return fmt.Errorf("config: idle pulse durations [%v, %v] out of range", c.Idle.PulseMin, c.Idle.PulseMax)
	}
	if c.Idle.MaxDelay < 0 {
		return fmt.Errorf("config: idle.maxDelay = %v, want >= 0", c.Idle.MaxDelay)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("config: tps = %d, want > 0", c.TPS)
	}
	return nil
}

// configFile is the JSON shape accepted by LoadConfig. Every field is optional
// and overlays the defaults. Every numeric tunable has a key; the cursor's
// Targets predicate is code and can only be set on the Config itself.
type configFile struct {
	Field *struct {
		Spacing    *float64 `json:"spacing"`
		Radius     *float64 `json:"radius"`
		RestSize   *float64 `json:"restSize"`
		MaxSize    *float64 `json:"maxSize"`
		Rate       *float64 `json:"rate"`
		Epsilon    *float64 `json:"epsilon"`
		ColorRate  *float64 `json:"colorRate"`
		Color      *string  `json:"color"`
		IdleWindow *float64 `json:"idleWindow"`
	} `json:"field"`
	Cursor *struct {
		SpinDuration   *float64       `json:"spinDuration"`
		HoverDuration  *float64       `json:"hoverDuration"`
		LeaveDuration  *float64       `json:"leaveDuration"`
		ResetDuration  *float64       `json:"resetDuration"`
		FollowRate     *float64       `json:"followRate"`
		CornerRate     *float64       `json:"cornerRate"`
		ScaleRate      *float64       `json:"scaleRate"`
		Epsilon        *float64       `json:"epsilon"`
		BorderWidth    *float64       `json:"borderWidth"`
		CornerSize     *float64       `json:"cornerSize"`
		IdleCorners    *[4][2]float64 `json:"idleCorners"`
		PressScale     *float64       `json:"pressScale"`
		PressDotScale  *float64       `json:"pressDotScale"`
		MobileMaxWidth *float64       `json:"mobileMaxWidth"`
	} `json:"cursor"`
	Reveal *struct {
		Epsilon *float64 `json:"epsilon"`
		Ease    *string  `json:"ease"`
	} `json:"reveal"`
	Spin *struct {
		Rate          *float64 `json:"rate"`
		Decay         *float64 `json:"decay"`
		VelocityScale *float64 `json:"velocityScale"`
		MaxBoost      *float64 `json:"maxBoost"`
		Epsilon       *float64 `json:"epsilon"`
		BaseDuration  *float64 `json:"baseDuration"`
	} `json:"spin"`
	Slider *struct {
		Initial         *float64 `json:"initial"`
		Step            *float64 `json:"step"`
		MaxOverflow     *float64 `json:"maxOverflow"`
		HitPad          *float64 `json:"hitPad"`
		DragRate        *float64 `json:"dragRate"`
		PressScale      *float64 `json:"pressScale"`
		IconScale       *float64 `json:"iconScale"`
		PulseScale      *float64 `json:"pulseScale"`
		PulseDuration   *float64 `json:"pulseDuration"`
		PressDuration   *float64 `json:"pressDuration"`
		SpringFrequency *float64 `json:"springFrequency"`
		SpringDamping   *float64 `json:"springDamping"`
		Epsilon         *float64 `json:"epsilon"`
	} `json:"slider"`
	Idle *struct {
		FloatOffset *float64 `json:"floatOffset"`
		FloatMin    *float64 `json:"floatMin"`
		FloatMax    *float64 `json:"floatMax"`
		PulseScale  *float64 `json:"pulseScale"`
		PulseMin    *float64 `json:"pulseMin"`
		PulseMax    *float64 `json:"pulseMax"`
		MaxDelay    *float64 `json:"maxDelay"`
		Seed        *uint64  `json:"seed"`
	} `json:"idle"`
	PointerIdle *float64 `json:"pointerIdle"`
	TPS         *int     `json:"tps"`
	Debug       *bool    `json:"debug"`
}

// LoadConfig parses JSON tuning overrides on top of DefaultConfig and
// validates the result.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	var f configFile
	if err := json.Unmarshal(data, &f); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if fc := f.Field; fc != nil {
		setF(&cfg.Field.Spacing, fc.Spacing)
		setF(&cfg.Field.Radius, fc.Radius)
		setF(&cfg.Field.RestSize, fc.RestSize)
		setF(&cfg.Field.MaxSize, fc.MaxSize)
		setF(&cfg.Field.Rate, fc.Rate)
		setF(&cfg.Field.Epsilon, fc.Epsilon)
		setF(&cfg.Field.ColorRate, fc.ColorRate)
		setF(&cfg.Field.IdleWindow, fc.IdleWindow)
		if fc.Color != nil {
			c, err := ParseColor(*fc.Color)
			if err != nil {
				return cfg, fmt.Errorf("parse config: field: %w", err)
			}
			cfg.Field.Color = c
		}
	}
	if cc := f.Cursor; cc != nil {
		setF(&cfg.Cursor.SpinDuration, cc.SpinDuration)
		setF(&cfg.Cursor.HoverDuration, cc.HoverDuration)
		setF(&cfg.Cursor.LeaveDuration, cc.LeaveDuration)
		setF(&cfg.Cursor.ResetDuration, cc.ResetDuration)
		setF(&cfg.Cursor.FollowRate, cc.FollowRate)
		setF(&cfg.Cursor.CornerRate, cc.CornerRate)
		setF(&cfg.Cursor.ScaleRate, cc.ScaleRate)
		setF(&cfg.Cursor.Epsilon, cc.Epsilon)
		setF(&cfg.Cursor.BorderWidth, cc.BorderWidth)
		setF(&cfg.Cursor.CornerSize, cc.CornerSize)
		setF(&cfg.Cursor.PressScale, cc.PressScale)
		setF(&cfg.Cursor.PressDotScale, cc.PressDotScale)
		setF(&cfg.Cursor.MobileMaxWidth, cc.MobileMaxWidth)
		if cc.IdleCorners != nil {
			for i, xy := range cc.IdleCorners {
				cfg.Cursor.IdleCorners[i] = Vec2{X: xy[0], Y: xy[1]}
			}
		}
	}
	if rc := f.Reveal; rc != nil {
		setF(&cfg.Reveal.Epsilon, rc.Epsilon)
		if rc.Ease != nil {
			if _, ok := easeByName[*rc.Ease]; !ok {
				return cfg, fmt.Errorf("parse config: reveal: unknown ease %q", *rc.Ease)
			}
			cfg.Reveal.Ease = *rc.Ease
		}
	}
	if sc := f.Spin; sc != nil {
		setF(&cfg.Spin.Rate, sc.Rate)
		setF(&cfg.Spin.Decay, sc.Decay)
		setF(&cfg.Spin.VelocityScale, sc.VelocityScale)
		setF(&cfg.Spin.MaxBoost, sc.MaxBoost)
		setF(&cfg.Spin.Epsilon, sc.Epsilon)
		setF(&cfg.Spin.BaseDuration, sc.BaseDuration)
	}
	if sl := f.Slider; sl != nil {
		setF(&cfg.Slider.Initial, sl.Initial)
		setF(&cfg.Slider.Step, sl.Step)
		setF(&cfg.Slider.MaxOverflow, sl.MaxOverflow)
		setF(&cfg.Slider.HitPad, sl.HitPad)
		setF(&cfg.Slider.DragRate, sl.DragRate)
		setF(&cfg.Slider.PressScale, sl.PressScale)
		setF(&cfg.Slider.IconScale, sl.IconScale)
		setF(&cfg.Slider.PulseScale, sl.PulseScale)
		setF(&cfg.Slider.PulseDuration, sl.PulseDuration)
		setF(&cfg.Slider.PressDuration, sl.PressDuration)
		setF(&cfg.Slider.SpringFrequency, sl.SpringFrequency)
		setF(&cfg.Slider.SpringDamping, sl.SpringDamping)
		setF(&cfg.Slider.Epsilon, sl.Epsilon)
	}
	if ic := f.Idle; ic != nil {
		setF(&cfg.Idle.FloatOffset, ic.FloatOffset)
		setF(&cfg.Idle.FloatMin, ic.FloatMin)
		setF(&cfg.Idle.FloatMax, ic.FloatMax)
		setF(&cfg.Idle.PulseScale, ic.PulseScale)
		setF(&cfg.Idle.PulseMin, ic.PulseMin)
		setF(&cfg.Idle.PulseMax, ic.PulseMax)
		setF(&cfg.Idle.MaxDelay, ic.MaxDelay)
		if ic.Seed != nil {
			cfg.Idle.Seed = *ic.Seed
		}
	}
	setF(&cfg.PointerIdle, f.PointerIdle)
	if f.TPS != nil {
		cfg.TPS = *f.TPS
	}
	if f.Debug != nil {
		cfg.Debug = *f.Debug
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func setF(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

// easeByName maps the easing names accepted in configuration to gween curves.
var easeByName = map[string]ease.TweenFunc{
	"linear":    ease.Linear,
	"outQuad":   ease.OutQuad,
	"inOutQuad": ease.InOutQuad,
	"outCubic":  ease.OutCubic,
	"outBack":   ease.OutBack,
}
