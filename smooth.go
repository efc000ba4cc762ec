package glide

import "math"

// Step advances current toward target by the fraction rate and returns the
// new value. A rate of 1 or more snaps to target; a rate of 0 or less holds.
// For rates in (0, 1) the result always lies between current and target, so
// repeated stepping never overshoots.
func Step(current, target, rate float64) float64 {
	if rate >= 1 {
		return target
	}
	if rate <= 0 {
		return current
	}
	return current + (target-current)*rate
}

// StepsToSettle returns how many Step calls at the given rate bring a gap of
// distance below eps. Returns 0 when the gap is already below eps and -1 when
// the rate can never close it.
func StepsToSettle(distance, rate, eps float64) int {
	distance = math.Abs(distance)
	if distance < eps {
		return 0
	}
	if rate >= 1 {
		return 1
	}
	if rate <= 0 || eps <= 0 {
		return -1
	}
	n := math.Log(eps/distance) / math.Log(1-rate)
	steps := int(math.Ceil(n))
	// Guard against log rounding landing exactly on the boundary.
	for distance*math.Pow(1-rate, float64(steps)) >= eps {
		steps++
	}
	return steps
}

// Scalar is a single animated number converging toward a moving target.
// Each owner steps its own scalars; no two components share one except the
// stage-wide spin rate.
type Scalar struct {
	Current float64
	Target  float64
	Rate    float64
}

// NewScalar returns a scalar resting at v.
func NewScalar(v, rate float64) Scalar {
	return Scalar{Current: v, Target: v, Rate: rate}
}

// Tick advances Current one step toward Target and returns it.
func (s *Scalar) Tick() float64 {
	s.Current = Step(s.Current, s.Target, s.Rate)
	return s.Current
}

// Settled reports whether Current is within eps of Target.
func (s *Scalar) Settled(eps float64) bool {
	return math.Abs(s.Current-s.Target) < eps
}

// Snap moves Current onto Target.
func (s *Scalar) Snap() {
	s.Current = s.Target
}

// Set places both Current and Target at v.
func (s *Scalar) Set(v float64) {
	s.Current = v
	s.Target = v
}
