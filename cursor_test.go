package glide

import "testing"

type eventLog struct {
	events []MotionEvent
}

func (l *eventLog) EmitEvent(e MotionEvent) { l.events = append(l.events, e) }

func (l *eventLog) kinds() []MotionKind {
	out := make([]MotionKind, len(l.events))
	for i, e := range l.events {
		out[i] = e.Kind
	}
	return out
}

func newCursorStage() (*Stage, *Layout, *Recorder, *eventLog) {
	l := NewLayout(1280, 800)
	l.Add(Element{ID: "btn", Tags: []string{"button"}, Bounds: Rect{X: 100, Y: 100, Width: 200, Height: 50}})
	l.Add(Element{ID: "btn-label", Parent: "btn", Bounds: Rect{X: 110, Y: 110, Width: 60, Height: 20}})
	l.Add(Element{ID: "link", Tags: []string{"a"}, Bounds: Rect{X: 400, Y: 100, Width: 80, Height: 20}})
	l.Add(Element{ID: "plain", Bounds: Rect{X: 600, Y: 100, Width: 100, Height: 100}})
	rec := NewRecorder()
	log := &eventLog{}
	s := NewStage(l, rec, DefaultConfig())
	s.SetEventSink(log)
	s.EnableCursor()
	return s, l, rec, log
}

func runFrames(s *Stage, n int) {
	for i := 0; i < n; i++ {
		s.Update(frameDT)
	}
}

func TestBlendCorner(t *testing.T) {
	got := BlendCorner(Vec2{}, Vec2{X: 100, Y: 100}, 0.5)
	if got != (Vec2{X: 50, Y: 50}) {
		t.Errorf("BlendCorner = %+v, want (50,50)", got)
	}
	if got := BlendCorner(Vec2{X: 3, Y: 4}, Vec2{X: 100, Y: 100}, 0); got != (Vec2{X: 3, Y: 4}) {
		t.Errorf("zero strength moved the corner: %+v", got)
	}
	if got := BlendCorner(Vec2{}, Vec2{X: 100, Y: 100}, 1); got != (Vec2{X: 100, Y: 100}) {
		t.Errorf("full strength = %+v, want target", got)
	}
}

func TestCursor_DisabledOnTouchAndNarrow(t *testing.T) {
	l := NewLayout(1280, 800)
	l.SetCapabilities(Capabilities{Touch: true})
	rec := NewRecorder()
	s := NewStage(l, rec, DefaultConfig())
	if !s.EnableCursor().Disabled() {
		t.Error("cursor should be disabled on touch devices")
	}
	s.Push(InputEvent{Kind: EventPointerMove, X: 10, Y: 10})
	s.Update(frameDT)
	s.Draw()
	if rec.CursorDraws != 0 {
		t.Errorf("disabled cursor drew %d times", rec.CursorDraws)
	}

	narrow := NewStage(NewLayout(768, 800), nil, DefaultConfig())
	if !narrow.EnableCursor().Disabled() {
		t.Error("cursor should be disabled at the mobile breakpoint")
	}
}

func TestCursor_IdleSpinWithoutTicking(t *testing.T) {
	s, _, rec, _ := newCursorStage()
	runFrames(s, 30)
	if s.ctx.Scheduler.Registered(s.Cursor()) {
		t.Fatal("idle cursor should not tick")
	}
	s.Draw()
	// Half a second into a 2 second revolution.
	if got := rec.Cursor.Rotation; !approxEqual(got, 90, 1e-6) {
		t.Errorf("rotation = %v, want 90", got)
	}
}

func TestCursor_LocksOntoTarget(t *testing.T) {
	s, _, rec, log := newCursorStage()
	c := s.Cursor()

	// Hovering the label resolves to its button ancestor.
	s.Push(InputEvent{Kind: EventPointerMove, X: 150, Y: 125})
	s.Update(frameDT)
	if c.Target() != "btn" {
		t.Fatalf("target = %q, want btn", c.Target())
	}
	if got := log.kinds(); len(got) != 1 || got[0] != MotionTargetEnter {
		t.Errorf("events = %v, want [enter]", got)
	}

	runFrames(s, 180)
	if c.Strength() != 1 {
		t.Errorf("strength = %v, want 1", c.Strength())
	}
	pos := c.Position()
	if !approxEqual(pos.X, 150, 0.1) || !approxEqual(pos.Y, 125, 0.1) {
		t.Errorf("tracker at %+v, want (150,125)", pos)
	}
	// Top-left marker sits one border outside the box: 97 - tracker.
	tl := c.Corner(0)
	if !approxEqual(tl.X, 97-pos.X, 1e-9) || !approxEqual(tl.Y, 97-pos.Y, 1e-9) {
		t.Errorf("corner 0 = %+v", tl)
	}
	// Bottom-right marker: right + border - corner size.
	br := c.Corner(2)
	if !approxEqual(br.X, 300+3-12-pos.X, 1e-9) || !approxEqual(br.Y, 150+3-12-pos.Y, 1e-9) {
		t.Errorf("corner 2 = %+v", br)
	}

	if !s.ctx.Pointer.Active {
		t.Error("hovering a target keeps the pointer active past the idle window")
	}
	if s.ctx.Scheduler.Registered(c) {
		t.Error("locked cursor should stop ticking once converged")
	}
	s.Draw()
	if !rec.Cursor.Tracking || rec.Cursor.Rotation != 0 {
		t.Errorf("draw = %+v, want tracking with zero rotation", rec.Cursor)
	}
}

func TestCursor_LeaveRestoresIdle(t *testing.T) {
	s, _, _, log := newCursorStage()
	c := s.Cursor()
	s.Push(InputEvent{Kind: EventPointerMove, X: 150, Y: 125})
	runFrames(s, 60)

	s.Push(InputEvent{Kind: EventPointerMove, X: 650, Y: 150})
	s.Update(frameDT)
	if c.Target() != "" {
		t.Fatalf("plain element should not be a target, got %q", c.Target())
	}
	if got := log.kinds(); len(got) != 2 || got[1] != MotionTargetLeave {
		t.Errorf("events = %v, want [enter leave]", got)
	}
	runFrames(s, 240)
	idle := DefaultConfig().Cursor.IdleCorners
	for i := range idle {
		got := c.Corner(i)
		if !approxEqual(got.X, idle[i].X, 0.05) || !approxEqual(got.Y, idle[i].Y, 0.05) {
			t.Errorf("corner %d = %+v, want %+v", i, got, idle[i])
		}
	}
	if c.Strength() != 0 {
		t.Errorf("strength = %v, want 0", c.Strength())
	}
}

func TestCursor_RetargetWithoutReset(t *testing.T) {
	s, _, _, log := newCursorStage()
	c := s.Cursor()
	s.Push(InputEvent{Kind: EventPointerMove, X: 150, Y: 125})
	runFrames(s, 60)

	pageCorner := func() Vec2 {
		pos, rel := c.Position(), c.Corner(0)
		return Vec2{X: pos.X + rel.X, Y: pos.Y + rel.Y}
	}
	start := pageCorner()
	if !approxEqual(start.X, 97, 1e-9) {
		t.Fatalf("corner 0 before the hop at x=%v, want 97", start.X)
	}

	s.Push(InputEvent{Kind: EventPointerMove, X: 420, Y: 110})
	s.Update(frameDT)
	if c.Target() != "link" {
		t.Fatalf("target = %q, want link", c.Target())
	}
	want := []MotionKind{MotionTargetEnter, MotionTargetLeave, MotionTargetEnter}
	got := log.kinds()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events = %v, want %v", got, want)
		}
	}
	if log.events[1].ID != "btn" || log.events[2].ID != "link" {
		t.Errorf("event ids = %q, %q", log.events[1].ID, log.events[2].ID)
	}

	// The markers travel from the old box to the new one (397) without a
	// jump and without overshooting.
	prev := start.X
	for i := 0; ; i++ {
		x := pageCorner().X
		if d := x - prev; d < -1e-9 || d > 100 {
			t.Fatalf("frame %d: corner 0 moved %v, want within [0, 100]", i, d)
		}
		prev = x
		if i == 60 {
			break
		}
		s.Update(frameDT)
	}
	if !approxEqual(prev, 397, 1e-6) {
		t.Errorf("corner 0 settled at x=%v, want 397", prev)
	}
	if c.Strength() != 1 {
		t.Errorf("strength = %v after the hop, want 1", c.Strength())
	}
}

func TestCursor_TargetRemovedCountsAsLeave(t *testing.T) {
	s, l, _, _ := newCursorStage()
	c := s.Cursor()
	s.Push(InputEvent{Kind: EventPointerMove, X: 420, Y: 110})
	s.Update(frameDT)
	if c.Target() != "link" {
		t.Fatalf("target = %q", c.Target())
	}
	l.Remove("link")
	s.Update(frameDT)
	if c.Target() != "" {
		t.Errorf("target = %q after removal, want none", c.Target())
	}
	if s.ctx.Holding() {
		t.Error("hold should be released with the target")
	}
}

func TestCursor_PressFeedback(t *testing.T) {
	s, _, _, _ := newCursorStage()
	c := s.Cursor()
	s.Push(InputEvent{Kind: EventPointerDown, X: 650, Y: 150})
	runFrames(s, 60)
	if !approxEqual(c.scale.Current, 0.9, 0.01) || !approxEqual(c.dotScale.Current, 0.5, 0.01) {
		t.Errorf("pressed scale = %v, dot = %v", c.scale.Current, c.dotScale.Current)
	}
	s.Push(InputEvent{Kind: EventPointerUp, X: 650, Y: 150})
	runFrames(s, 60)
	if !approxEqual(c.scale.Current, 1, 0.01) || !approxEqual(c.dotScale.Current, 1, 0.01) {
		t.Errorf("released scale = %v, dot = %v", c.scale.Current, c.dotScale.Current)
	}
}

func TestCursor_ResizeToMobileDisables(t *testing.T) {
	s, _, _, _ := newCursorStage()
	c := s.Cursor()
	s.Push(InputEvent{Kind: EventPointerMove, X: 150, Y: 125})
	s.Update(frameDT)
	s.Push(InputEvent{Kind: EventResize, Width: 500, Height: 800})
	s.Update(frameDT)
	if !c.Disabled() || c.Target() != "" {
		t.Errorf("disabled=%v target=%q, want disabled without target", c.Disabled(), c.Target())
	}
	if s.ctx.Scheduler.Registered(c) {
		t.Error("disabled cursor should not tick")
	}
}

func TestCursor_TracksTargetWhileScrolling(t *testing.T) {
	s, _, _, _ := newCursorStage()
	c := s.Cursor()
	s.Push(InputEvent{Kind: EventPointerMove, X: 150, Y: 125})
	runFrames(s, 120)
	before := c.Corner(0)

	// The button stays under the pointer after a small scroll.
	s.Push(InputEvent{Kind: EventScroll, ScrollY: 10})
	runFrames(s, 120)
	if c.Target() != "btn" {
		t.Fatalf("target = %q, want btn", c.Target())
	}
	after := c.Corner(0)
	if !approxEqual(after.Y, before.Y-10, 0.1) {
		t.Errorf("corner moved %v, want -10", after.Y-before.Y)
	}
}

func TestCursor_FirstTouchDisables(t *testing.T) {
	s, l, rec, _ := newCursorStage()
	c := s.Cursor()
	s.Push(InputEvent{Kind: EventPointerMove, X: 150, Y: 125})
	s.Update(frameDT)
	if c.Target() != "btn" {
		t.Fatalf("target = %q, want btn", c.Target())
	}

	s.Push(InputEvent{Kind: EventPointerMove, X: 420, Y: 110, Touch: true})
	s.Push(InputEvent{Kind: EventPointerDown, X: 420, Y: 110, Touch: true})
	s.Update(frameDT)
	if !c.Disabled() || c.Target() != "" {
		t.Errorf("disabled=%v target=%q, want disabled without target", c.Disabled(), c.Target())
	}
	if !l.Capabilities().Touch || !s.ctx.Touch() {
		t.Error("first touch should mark the device touch-capable")
	}
	if s.ctx.Scheduler.Registered(c) {
		t.Error("disabled cursor should not tick")
	}
	draws := rec.CursorDraws
	s.Draw()
	if rec.CursorDraws != draws {
		t.Error("disabled cursor should not draw")
	}

	// A desktop-sized resize does not bring it back on a touch device.
	s.Push(InputEvent{Kind: EventResize, Width: 1440, Height: 900})
	s.Update(frameDT)
	if !c.Disabled() {
		t.Error("cursor re-enabled on a touch device")
	}
}
