package glide

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// tween animates one float64 field from its current value to a destination
// over a fixed duration along a gween curve. Starting a new tween on the same
// field replaces the old one; there is no global tween manager.
type tween struct {
	tw    *gween.Tween
	field *float64
	to    float64
	Done  bool
}

// newTween starts animating *field toward to. A non-positive duration snaps
// immediately.
func newTween(field *float64, to, duration float64, fn ease.TweenFunc) *tween {
	t := &tween{field: field, to: to}
	if duration <= 0 || *field == to {
		*field = to
		t.Done = true
		return t
	}
	t.tw = gween.New(float32(*field), float32(to), float32(duration), fn)
	return t
}

// newPulse snaps *field to from and animates it back to to.
func newPulse(field *float64, from, to, duration float64, fn ease.TweenFunc) *tween {
	*field = from
	return newTween(field, to, duration, fn)
}

// Update advances the tween by dt seconds, writes the field, and reports
// whether the tween has finished. Finished tweens write their exact
// destination so later comparisons against it are not thrown off by float32
// rounding.
func (t *tween) Update(dt float64) bool {
	if t == nil || t.Done {
		return true
	}
	val, finished := t.tw.Update(float32(dt))
	if finished {
		*t.field = t.to
		t.Done = true
		return true
	}
	*t.field = float64(val)
	return false
}

// running reports whether t is non-nil and unfinished.
func (t *tween) running() bool {
	return t != nil && !t.Done
}
