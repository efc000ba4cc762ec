package glide

import (
	"testing"
)

func newIdleStage() (*Stage, *Recorder) {
	l := NewLayout(800, 600)
	l.Add(Element{ID: "blob", Tags: []string{"idle-float"}, Bounds: Rect{X: 10, Y: 10, Width: 80, Height: 80}})
	l.Add(Element{ID: "orb", Tags: []string{"idle-pulse"}, Bounds: Rect{X: 100, Y: 10, Width: 80, Height: 80}})
	l.Add(Element{ID: "both", Tags: []string{"idle-float", "idle-pulse"}, Bounds: Rect{X: 200, Y: 10, Width: 80, Height: 80}})
	l.Add(Element{ID: "plain", Bounds: Rect{X: 300, Y: 10, Width: 80, Height: 80}})
	rec := NewRecorder()
	return NewStage(l, rec, DefaultConfig()), rec
}

func TestIdleKindString(t *testing.T) {
	if IdleFloat.String() != "float" || IdlePulse.String() != "pulse" || IdleKind(9).String() != "unknown" {
		t.Error("unexpected IdleKind strings")
	}
}

func TestIdle_FloatYoyo(t *testing.T) {
	s, rec := newIdleStage()
	m := s.Idle()
	if !m.RegisterTimed("blob", IdleFloat, 1, 0.5) {
		t.Fatal("RegisterTimed should succeed")
	}

	tests := []struct {
		frames int
		want   float64
	}{
		{15, 0},    // still inside the delay
		{30, 0},    // cycle starts
		{60, -6},   // halfway up, InOutSine(0.5) = 0.5
		{90, -12},  // top of the float
		{120, -6},  // halfway back
		{150, 0},   // back at rest
		{210, -12}, // and up again
	}
	done := 0
	for _, tt := range tests {
		runFrames(s, tt.frames-done)
		done = tt.frames
		dy, scale, ok := m.Offset("blob")
		if !ok || !approxEqual(dy, tt.want, 1e-4) || scale != 1 {
			t.Errorf("frame %d: offset = (%v, %v), want (%v, 1)", tt.frames, dy, scale, tt.want)
		}
	}

	s.Draw()
	if got := rec.Idle["blob"]; !approxEqual(got.DY, -12, 1e-4) || got.Scale != 1 {
		t.Errorf("drawn idle = %+v, want dy -12", got)
	}
}

func TestIdle_PulseScale(t *testing.T) {
	s, _ := newIdleStage()
	m := s.Idle()
	m.RegisterTimed("orb", IdlePulse, 2, 0)
	runFrames(s, 120)
	_, scale, _ := m.Offset("orb")
	if !approxEqual(scale, 1.02, 1e-6) {
		t.Errorf("scale at the peak = %v, want 1.02", scale)
	}
	runFrames(s, 60)
	_, scale, _ = m.Offset("orb")
	if !approxEqual(scale, 1.01, 1e-6) {
		t.Errorf("scale halfway back = %v, want 1.01", scale)
	}
}

func TestIdle_NeverTicks(t *testing.T) {
	s, rec := newIdleStage()
	m := s.Idle()
	m.RegisterTagged("blob")
	m.RegisterTagged("orb")
	for i := 0; i < 120; i++ {
		s.Update(frameDT)
		s.Draw()
	}
	if n := s.ctx.Scheduler.Active(); n != 0 {
		t.Errorf("%d tickers registered, want 0", n)
	}
	if len(rec.Idle) != 2 {
		t.Errorf("idle writes for %d elements, want 2", len(rec.Idle))
	}
}

func TestIdle_HiddenDoesNotDraw(t *testing.T) {
	s, rec := newIdleStage()
	s.Idle().RegisterTimed("blob", IdleFloat, 1, 0)
	s.Push(InputEvent{Kind: EventVisibility, Hidden: true})
	runFrames(s, 30)
	s.Draw()
	if len(rec.Idle) != 0 {
		t.Errorf("hidden page wrote idle offsets: %v", rec.Idle)
	}
}

func TestIdle_RegisterOncePerKind(t *testing.T) {
	s, _ := newIdleStage()
	m := s.Idle()
	if !m.RegisterTagged("both") {
		t.Fatal("tagged element should start")
	}
	if m.RegisterTagged("both") {
		t.Error("second tagged registration should report false")
	}
	if m.Register("both", IdlePulse) || m.Register("both", IdleFloat) {
		t.Error("running kinds should not restart")
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
	if m.RegisterTagged("plain") {
		t.Error("untagged element should not start")
	}
	if m.Register("missing", IdleFloat) || m.RegisterTagged("missing") {
		t.Error("missing element should report false")
	}
}

func TestIdle_CombinedFloatAndPulse(t *testing.T) {
	s, _ := newIdleStage()
	m := s.Idle()
	m.RegisterTimed("both", IdleFloat, 1, 0)
	m.RegisterTimed("both", IdlePulse, 1, 0)
	runFrames(s, 60)
	dy, scale, _ := m.Offset("both")
	if !approxEqual(dy, -12, 1e-4) || !approxEqual(scale, 1.02, 1e-6) {
		t.Errorf("offset = (%v, %v), want (-12, 1.02)", dy, scale)
	}
}

func TestIdle_RandomRanges(t *testing.T) {
	s, _ := newIdleStage()
	m := s.Idle()
	m.Register("blob", IdleFloat)
	m.Register("orb", IdlePulse)
	cfg := DefaultConfig().Idle

	f := m.targets["blob"].float
	if f.duration < cfg.FloatMin || f.duration > cfg.FloatMax || f.delay < 0 || f.delay > cfg.MaxDelay {
		t.Errorf("float cycle = %+v, want duration in [3, 5] and delay in [0, 2]", *f)
	}
	p := m.targets["orb"].pulse
	if p.duration < cfg.PulseMin || p.duration > cfg.PulseMax || p.delay < 0 || p.delay > cfg.MaxDelay {
		t.Errorf("pulse cycle = %+v, want duration in [2, 3] and delay in [0, 2]", *p)
	}

	// The same seed picks the same timings.
	s2, _ := newIdleStage()
	s2.Idle().Register("blob", IdleFloat)
	if g := s2.Idle().targets["blob"].float; g.duration != f.duration || g.delay != f.delay {
		t.Errorf("seeded picks differ: %+v vs %+v", *g, *f)
	}
}

func TestIdle_Unregister(t *testing.T) {
	s, rec := newIdleStage()
	m := s.Idle()
	m.RegisterTimed("blob", IdleFloat, 1, 0)
	runFrames(s, 30)
	s.Draw()
	m.Unregister("blob")
	m.Unregister("blob")
	if m.Len() != 0 {
		t.Errorf("Len = %d after Unregister, want 0", m.Len())
	}
	if got := rec.Idle["blob"]; got.DY != 0 || got.Scale != 1 {
		t.Errorf("unregistered element left at %+v, want rest", got)
	}
	if _, _, ok := m.Offset("blob"); ok {
		t.Error("Offset should report false after Unregister")
	}
}
