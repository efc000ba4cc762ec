package glide

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = w
	fn()
	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestDebugMode_FrameStats(t *testing.T) {
	s := NewStage(NewLayout(800, 600), nil, DefaultConfig())
	s.SetDebugMode(true)
	output := captureStderr(t, func() {
		s.Push(InputEvent{Kind: EventPointerMove, X: 1, Y: 1})
		s.Update(frameDT)
	})
	if !strings.Contains(output, "[glide] frame 1 | events: 1 | tickers:") {
		t.Errorf("expected frame stats in stderr, got: %q", output)
	}
}

func TestDebugMode_Off(t *testing.T) {
	s := NewStage(NewLayout(800, 600), nil, DefaultConfig())
	output := captureStderr(t, func() {
		s.Update(frameDT)
		s.Reveals().Register("missing", FloatReveal())
	})
	if output != "" {
		t.Errorf("expected no output without debug mode, got: %q", output)
	}
}

func TestDebugMode_RegistrationWarnings(t *testing.T) {
	l := NewLayout(800, 600)
	l.Add(Element{ID: "a", Bounds: Rect{Y: 2000, Width: 10, Height: 10}})
	cfg := DefaultConfig()
	cfg.Debug = true
	s := NewStage(l, nil, cfg)
	output := captureStderr(t, func() {
		s.Reveals().Register("missing", FloatReveal())
		s.Reveals().Register("a", FloatReveal())
		s.Reveals().Register("a", FloatReveal())
		s.Spin().Register("ghost", 10, 1)
		s.Pins().Pin("ghost")
	})
	for _, want := range []string{
		`reveal: element "missing" not found`,
		`reveal: "a" already registered`,
		`spin: element "ghost" not found`,
		`pin: element "ghost" not found`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in stderr, got: %q", want, output)
		}
	}
}

func TestDebugMode_TickerThresholdWarning(t *testing.T) {
	s := NewStage(NewLayout(800, 600), nil, DefaultConfig())
	s.SetDebugMode(true)
	for i := 0; i < debugMaxTickers+1; i++ {
		s.ctx.Scheduler.Register(&countTicker{})
	}
	output := captureStderr(t, func() {
		s.Update(frameDT)
	})
	if !strings.Contains(output, "warning: 33 tickers registered") {
		t.Errorf("expected ticker warning in stderr, got: %q", output)
	}
}

func TestDebugStats_AllFieldsPopulated(t *testing.T) {
	s := NewStage(NewLayout(800, 600), nil, DefaultConfig())
	stats := debugStats{frame: 7, events: 2, tickers: 3}
	output := captureStderr(t, func() {
		s.SetDebugMode(true)
		s.debugLog(stats)
	})
	if !strings.Contains(output, "frame 7 | events: 2 | tickers: 3") {
		t.Errorf("unexpected stats line: %q", output)
	}
}
