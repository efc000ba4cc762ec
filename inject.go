package glide

// Injected events are released into the input queue one per frame, so a
// scripted gesture spans as many frames as it has events, like real input.

func (s *Stage) inject(ev InputEvent) {
	s.injected = append(s.injected, ev)
}

// InjectMove queues a pointer move to client coordinates (x, y).
func (s *Stage) InjectMove(x, y float64) {
	s.inject(InputEvent{Kind: EventPointerMove, X: x, Y: y})
}

// InjectLeave queues the pointer leaving the document.
func (s *Stage) InjectLeave() {
	s.inject(InputEvent{Kind: EventPointerLeave})
}

// InjectPress queues a primary button press at (x, y).
func (s *Stage) InjectPress(x, y float64) {
	s.inject(InputEvent{Kind: EventPointerDown, X: x, Y: y})
}

// InjectRelease queues a primary button release at (x, y).
func (s *Stage) InjectRelease(x, y float64) {
	s.inject(InputEvent{Kind: EventPointerUp, X: x, Y: y})
}

// InjectClick queues a press followed by a release at (x, y). Consumes two
// frames.
func (s *Stage) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), frames-2
// linearly interpolated moves, and a release at (toX, toY). The minimum is two
// frames.
func (s *Stage) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// InjectScroll queues the document scrolling to offset y.
func (s *Stage) InjectScroll(y float64) {
	s.inject(InputEvent{Kind: EventScroll, ScrollY: y})
}

// InjectResize queues a viewport resize.
func (s *Stage) InjectResize(w, h float64) {
	s.inject(InputEvent{Kind: EventResize, Width: w, Height: h})
}

// InjectVisibility queues the page becoming hidden or visible.
func (s *Stage) InjectVisibility(hidden bool) {
	s.inject(InputEvent{Kind: EventVisibility, Hidden: hidden})
}
