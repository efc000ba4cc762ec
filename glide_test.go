package glide

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ffffff", ColorWhite},
		{"#000", ColorBlack},
		{"#ff0000", Color{R: 1, A: 1}},
		{"#0f0", Color{G: 1, A: 1}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		if !approxEqual(got.R, tt.want.R, 1e-6) || !approxEqual(got.G, tt.want.G, 1e-6) ||
			!approxEqual(got.B, tt.want.B, 1e-6) || got.A != tt.want.A {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseColor_Invalid(t *testing.T) {
	if _, err := ParseColor("nope"); err == nil {
		t.Error("expected error for invalid hex")
	}
}

func TestColorHex(t *testing.T) {
	if got := (Color{R: 1, G: 0, B: 0, A: 1}).Hex(); got != "#ff0000" {
		t.Errorf("Hex = %q, want #ff0000", got)
	}
}

func TestColorRGBA_Premultiplied(t *testing.T) {
	c := Color{R: 1, G: 1, B: 1, A: 0.5}.RGBA()
	if c.A != 127 || c.R != 127 {
		t.Errorf("RGBA = %+v, want premultiplied half white", c)
	}
}

func TestRect_UnionAndContains(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 20, Y: 5, Width: 10, Height: 20}
	u := a.Union(b)
	if u != (Rect{X: 0, Y: 0, Width: 30, Height: 25}) {
		t.Errorf("Union = %+v", u)
	}
	if got := (Rect{}).Union(b); got != b {
		t.Errorf("empty union = %+v, want %+v", got, b)
	}
	if !a.Contains(10, 10) {
		t.Error("edge point should be inside")
	}
	if a.Contains(10.1, 5) {
		t.Error("point right of rect should be outside")
	}
	if got := a.Offset(5, -5); got != (Rect{X: 5, Y: -5, Width: 10, Height: 10}) {
		t.Errorf("Offset = %+v", got)
	}
}

func TestPose_LerpAddScaled(t *testing.T) {
	from := Pose{Alpha: 0, Y: 40, Scale: 0.9, ScaleX: 1, RotationX: -45}
	if got := from.Lerp(RestPose, 1); got != RestPose {
		t.Errorf("Lerp(1) = %+v, want RestPose", got)
	}
	if got := from.Lerp(RestPose, 0); got != from {
		t.Errorf("Lerp(0) = %+v, want from", got)
	}
	mid := from.Lerp(RestPose, 0.5)
	if !approxEqual(mid.Y, 20, epsilon) || !approxEqual(mid.Alpha, 0.5, epsilon) {
		t.Errorf("Lerp(0.5) = %+v", mid)
	}

	d := Pose{Y: -100, Alpha: -0.6}
	got := RestPose.Add(d.Scaled(0.5))
	if !approxEqual(got.Y, -50, epsilon) || !approxEqual(got.Alpha, 0.7, epsilon) || got.Scale != 1 {
		t.Errorf("Add(Scaled) = %+v", got)
	}
}

func TestEventKindString(t *testing.T) {
	if EventScroll.String() != "scroll" {
		t.Errorf("EventScroll = %q", EventScroll.String())
	}
	if got := EventKind(200).String(); got != "EventKind(200)" {
		t.Errorf("unknown kind = %q", got)
	}
}

func TestClamp(t *testing.T) {
	if clamp01(-1) != 0 || clamp01(2) != 1 || clamp01(0.3) != 0.3 {
		t.Error("clamp01 out of range")
	}
	if clamp(5, 0, 3) != 3 || clamp(-5, 0, 3) != 0 {
		t.Error("clamp out of range")
	}
}
