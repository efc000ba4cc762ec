package glide

// ProximityCell is one point of the ambient field. Cells are laid out on a
// fixed grid and replaced wholesale on resize.
type ProximityCell struct {
	BaseX, BaseY float64
	Size         Scalar
}

// CursorCommand is the computed transform of the target cursor for a frame.
// Corner offsets are relative to (X, Y).
type CursorCommand struct {
	X, Y     float64
	Rotation float64 // degrees
	Scale    float64
	DotScale float64
	Corners  [4]Vec2
	Tracking bool
}

// SliderCommand is the computed presentation of an elastic slider.
type SliderCommand struct {
	Parts          SliderParts
	Value          float64
	Fill           float64 // track fill width in pixels
	Label          string
	Region         Region
	TrackScaleX    float64
	ContainerScale float64
	IconX          [2]float64 // left (decrement) and right (increment) icon offsets
	IconScale      [2]float64
}

// Surface is the rendering side of the core. It receives one command per
// animated thing per frame and owns everything about how it is drawn.
type Surface interface {
	DrawField(cells []ProximityCell, c Color)
	DrawCursor(c CursorCommand)
	SetPose(id string, part int, p Pose)
	SetRotation(id string, degrees, rate float64)
	DrawSlider(id string, s SliderCommand)
	// SetIdle sets the continuous idle offset composed on top of the
	// element's pose: a vertical shift in pixels and a scale factor.
	SetIdle(id string, dy, scale float64)
}

// Discard is a Surface that drops every command.
var Discard Surface = discard{}

type discard struct{}

func (discard) DrawField([]ProximityCell, Color)     {}
func (discard) DrawCursor(CursorCommand)             {}
func (discard) SetPose(string, int, Pose)            {}
func (discard) SetRotation(string, float64, float64) {}
func (discard) DrawSlider(string, SliderCommand)     {}
func (discard) SetIdle(string, float64, float64)     {}

// PoseKey addresses one pose target: an element, or one part of it.
type PoseKey struct {
	ID   string
	Part int
}

// IdleState is the last idle offset written for an element.
type IdleState struct {
	DY    float64
	Scale float64
}

// RotationState is the last rotation written for a spin target.
type RotationState struct {
	Degrees float64
	Rate    float64
}

// Recorder is a Surface that keeps the latest command of each kind and counts
// writes. Tests and headless hosts inspect it.
type Recorder struct {
	FieldDraws  int
	FieldCells  []ProximityCell
	FieldColor  Color
	CursorDraws int
	Cursor      CursorCommand
	PoseWrites  int
	Poses       map[PoseKey]Pose
	Rotations   map[string]RotationState
	Sliders     map[string]SliderCommand
	Idle        map[string]IdleState
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		Poses:     make(map[PoseKey]Pose),
		Rotations: make(map[string]RotationState),
		Sliders:   make(map[string]SliderCommand),
		Idle:      make(map[string]IdleState),
	}
}

// DrawField implements Surface. The cells are copied.
func (r *Recorder) DrawField(cells []ProximityCell, c Color) {
	r.FieldDraws++
	r.FieldCells = append(r.FieldCells[:0], cells...)
	r.FieldColor = c
}

// DrawCursor implements Surface.
func (r *Recorder) DrawCursor(c CursorCommand) {
	r.CursorDraws++
	r.Cursor = c
}

// SetPose implements Surface.
func (r *Recorder) SetPose(id string, part int, p Pose) {
	r.PoseWrites++
	r.Poses[PoseKey{ID: id, Part: part}] = p
}

// SetRotation implements Surface.
func (r *Recorder) SetRotation(id string, degrees, rate float64) {
	r.Rotations[id] = RotationState{Degrees: degrees, Rate: rate}
}

// DrawSlider implements Surface.
func (r *Recorder) DrawSlider(id string, s SliderCommand) {
	r.Sliders[id] = s
}

// SetIdle implements Surface.
func (r *Recorder) SetIdle(id string, dy, scale float64) {
	r.Idle[id] = IdleState{DY: dy, Scale: scale}
}

// Pose returns the last pose written for the whole element id.
func (r *Recorder) Pose(id string) (Pose, bool) {
	p, ok := r.Poses[PoseKey{ID: id, Part: -1}]
	return p, ok
}
