package glide

import "testing"

func newRevealStage() (*Stage, *Layout, *Recorder, *eventLog) {
	l := NewLayout(800, 600)
	l.Add(Element{ID: "hero", Bounds: Rect{X: 0, Y: 100, Width: 800, Height: 200}})
	l.Add(Element{ID: "card", Bounds: Rect{X: 0, Y: 1000, Width: 300, Height: 200}})
	for i, id := range []string{"c0", "c1", "c2"} {
		l.Add(Element{ID: id, Bounds: Rect{X: float64(i) * 250, Y: 1400, Width: 200, Height: 150}})
	}
	l.Add(Element{ID: "title", Bounds: Rect{X: 0, Y: 1800, Width: 400, Height: 80}})
	rec := NewRecorder()
	log := &eventLog{}
	s := NewStage(l, rec, DefaultConfig())
	s.SetEventSink(log)
	return s, l, rec, log
}

func posesApprox(a, b Pose) bool {
	const eps = 1e-6
	return approxEqual(a.Alpha, b.Alpha, eps) && approxEqual(a.X, b.X, eps) && approxEqual(a.Y, b.Y, eps) &&
		approxEqual(a.Scale, b.Scale, eps) && approxEqual(a.ScaleX, b.ScaleX, eps) &&
		approxEqual(a.Rotation, b.Rotation, eps) && approxEqual(a.RotationX, b.RotationX, eps)
}

func scrollTo(s *Stage, y float64) {
	s.Push(InputEvent{Kind: EventScroll, ScrollY: y})
	s.Update(frameDT)
}

func TestReveal_RegisterIdempotentAndMissing(t *testing.T) {
	s, _, _, _ := newRevealStage()
	r := s.Reveals()
	if !r.Register("card", FloatReveal()) {
		t.Fatal("first Register should succeed")
	}
	if r.Register("card", FloatReveal()) {
		t.Error("duplicate Register should report false")
	}
	if r.Register("missing", FloatReveal()) {
		t.Error("missing element should report false")
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestReveal_OffscreenStartsHiddenAndIdle(t *testing.T) {
	s, _, rec, log := newRevealStage()
	s.Reveals().Register("card", FloatReveal())
	p, ok := rec.Pose("card")
	if !ok || !posesApprox(p, FloatReveal().From) {
		t.Errorf("initial pose = %+v, want From", p)
	}
	if s.ctx.Scheduler.Registered(s.Reveals()) {
		t.Error("nothing in view, scheduler should be idle")
	}
	if len(log.events) != 0 {
		t.Errorf("events = %v, want none", log.kinds())
	}
}

func TestReveal_InViewPlaysOnRegister(t *testing.T) {
	s, _, rec, log := newRevealStage()
	s.Reveals().Register("hero", FloatReveal())
	if got := log.kinds(); len(got) != 1 || got[0] != MotionRevealed {
		t.Fatalf("events = %v, want [revealed]", got)
	}
	runFrames(s, 40)
	p, _ := rec.Pose("hero")
	if !posesApprox(p, RestPose) {
		t.Errorf("pose = %+v, want RestPose", p)
	}
	if s.Reveals().Animating() != 0 || s.ctx.Scheduler.Registered(s.Reveals()) {
		t.Error("finished reveal should stop ticking")
	}
}

func TestReveal_ReversibleBothDirections(t *testing.T) {
	s, _, rec, log := newRevealStage()
	r := s.Reveals()
	r.Register("card", FloatReveal())

	// Card top at client 400, above 0.92*600.
	scrollTo(s, 600)
	runFrames(s, 40)
	e, _ := r.Entry("card")
	if !e.InView || e.Plays != 1 || e.Progress() != 1 {
		t.Fatalf("after scrolling in: %+v", e)
	}
	p, _ := rec.Pose("card")
	if !posesApprox(p, RestPose) {
		t.Errorf("revealed pose = %+v", p)
	}

	scrollTo(s, 0)
	runFrames(s, 40)
	e, _ = r.Entry("card")
	if e.InView || e.Reverses != 1 || e.Progress() != 0 {
		t.Fatalf("after scrolling out: %+v", e)
	}
	p, _ = rec.Pose("card")
	if !posesApprox(p, FloatReveal().From) {
		t.Errorf("concealed pose = %+v", p)
	}

	// Past the top: bottom edge above the viewport.
	scrollTo(s, 600)
	runFrames(s, 40)
	scrollTo(s, 1300)
	e, _ = r.Entry("card")
	if e.InView || e.Plays != 2 || e.Reverses != 2 {
		t.Errorf("scrolled past: %+v", e)
	}

	want := []MotionKind{MotionRevealed, MotionConcealed, MotionRevealed, MotionConcealed}
	got := log.kinds()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events = %v, want %v", got, want)
		}
	}
}

func TestReveal_ReversesMidFlightWithoutJump(t *testing.T) {
	s, _, _, _ := newRevealStage()
	r := s.Reveals()
	r.Register("card", FloatReveal())

	scrollTo(s, 600)
	runFrames(s, 9)
	mid, _ := r.Entry("card")
	if mid.Progress() <= 0 || mid.Progress() >= 1 {
		t.Fatalf("mid-flight progress = %v", mid.Progress())
	}

	scrollTo(s, 0)
	e, _ := r.Entry("card")
	if e.Progress() >= mid.Progress() || e.Progress() <= 0 {
		t.Errorf("progress %v after reversing from %v, want slightly lower", e.Progress(), mid.Progress())
	}
	runFrames(s, 30)
	e, _ = r.Entry("card")
	if e.Head != 0 || r.Animating() != 0 {
		t.Errorf("reverse did not finish: head=%v animating=%d", e.Head, r.Animating())
	}
}

func TestReveal_Once(t *testing.T) {
	s, _, rec, log := newRevealStage()
	style := FloatReveal()
	style.Once = true
	s.Reveals().Register("card", style)
	scrollTo(s, 600)
	runFrames(s, 40)
	scrollTo(s, 0)
	runFrames(s, 40)
	p, _ := rec.Pose("card")
	if !posesApprox(p, RestPose) {
		t.Errorf("once reveal reversed: %+v", p)
	}
	if got := log.kinds(); len(got) != 1 {
		t.Errorf("events = %v, want one reveal", got)
	}
}

func TestReveal_GroupStaggerAndAlternate(t *testing.T) {
	s, _, rec, _ := newRevealStage()
	r := s.Reveals()
	if !r.RegisterGroup("grid", []string{"c0", "c1", "missing", "c2"}, CardsReveal()) {
		t.Fatal("RegisterGroup failed")
	}
	e, _ := r.Entry("grid")
	if len(e.Members) != 3 {
		t.Fatalf("members = %v, want 3 present", e.Members)
	}

	// Odd members enter from the mirrored side.
	p0, _ := rec.Pose("c0")
	p1, _ := rec.Pose("c1")
	if p0.X != -40 || p1.X != 40 || p0.Rotation != -3 || p1.Rotation != 3 {
		t.Errorf("initial poses c0=%+v c1=%+v", p0, p1)
	}

	scrollTo(s, 1000)
	runFrames(s, 3)
	// Head is 4/60 s: c0 has started, c1 waits for its 0.1 s stagger.
	p0, _ = rec.Pose("c0")
	p1, _ = rec.Pose("c1")
	if p0.Alpha <= 0 {
		t.Errorf("c0 should have started, alpha=%v", p0.Alpha)
	}
	if p1.Alpha != 0 {
		t.Errorf("c1 should still be waiting, alpha=%v", p1.Alpha)
	}

	runFrames(s, 60)
	for _, id := range []string{"c0", "c1", "c2"} {
		p, _ := rec.Pose(id)
		if !posesApprox(p, RestPose) {
			t.Errorf("%s pose = %+v, want RestPose", id, p)
		}
	}
}

func TestReveal_GroupWithoutMembers(t *testing.T) {
	s, _, _, _ := newRevealStage()
	if s.Reveals().RegisterGroup("empty", []string{"x", "y"}, CardsReveal()) {
		t.Error("group with no present members should report false")
	}
}

func TestReveal_TextParts(t *testing.T) {
	s, _, rec, _ := newRevealStage()
	s.Reveals().Register("hero", TextReveal(3))
	for i := 0; i < 3; i++ {
		if _, ok := rec.Poses[PoseKey{ID: "hero", Part: i}]; !ok {
			t.Errorf("part %d pose not written", i)
		}
	}
	if _, ok := rec.Pose("hero"); ok {
		t.Error("parted reveal should not write a whole-element pose")
	}
	runFrames(s, 60)
	for i := 0; i < 3; i++ {
		if p := rec.Poses[PoseKey{ID: "hero", Part: i}]; !posesApprox(p, RestPose) {
			t.Errorf("part %d = %+v, want RestPose", i, p)
		}
	}
}

func TestReveal_ZeroDurationSnaps(t *testing.T) {
	s, _, rec, _ := newRevealStage()
	style := RevealStyle{Start: 1, From: Pose{Alpha: 0, Scale: 1, ScaleX: 1}}
	s.Reveals().Register("hero", style)
	s.Update(frameDT)
	if p, _ := rec.Pose("hero"); !posesApprox(p, RestPose) {
		t.Errorf("pose = %+v, want RestPose after one frame", p)
	}
	if s.Reveals().Animating() != 0 {
		t.Error("zero-duration reveal should finish in one frame")
	}
}

func TestReveal_UnregisterStopsTicking(t *testing.T) {
	s, _, _, _ := newRevealStage()
	r := s.Reveals()
	r.Register("hero", FloatReveal())
	r.Unregister("hero")
	r.Unregister("hero")
	if r.Len() != 0 || s.ctx.Scheduler.Registered(r) {
		t.Error("unregistered reveal should leave the scheduler idle")
	}
}

func TestRevealKindString(t *testing.T) {
	if CardsReveal().Kind.String() != "cards" || (RevealStyle{}).Kind.String() != "custom" {
		t.Error("unexpected kind names")
	}
}
