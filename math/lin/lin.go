// Package lin provides the vector, quaternion and transform math used by
// the VitaBoy codec and runtime. It follows the spirit of a CPU based 3D
// math library: methods take pointers, write into the receiver, and return
// the receiver so calls can be chained.
//
// Components are float32 because that is the on-disk precision of every
// VitaBoy data file; there is no benefit to widening to float64 only to
// narrow back down at every read/write boundary.
package lin

import "math"

// Various linear math constants.
const (
	PI   float32 = math.Pi
	PIx2 float32 = PI * 2

	// Epsilon is used to distinguish when a float is close enough to a
	// number for general comparisons.
	Epsilon float32 = 0.000001

	// QuatEpsilon is the near-parallel threshold below which Slerp falls
	// back to a normalized lerp.
	QuatEpsilon float32 = 0.0005

	// NormEpsilon is the near-zero length threshold below which
	// normalizing a quaternion or vector yields the identity/zero value
	// rather than dividing by a vanishing length.
	NormEpsilon float32 = 0.0001
)

// Aeq (~=) almost-equals returns true if the difference between a and b is
// so small that it doesn't matter.
func Aeq(a, b float32) bool { return Abs32(a-b) < Epsilon }

// AeqZ (~=) almost-equals-zero returns true if x is close enough to zero.
func AeqZ(x float32) bool { return Abs32(x) < Epsilon }

// Lerp returns the linear interpolation of a to b by the given ratio.
func Lerp(a, b, ratio float32) float32 { return (b-a)*ratio + a }

// Clamp returns a scalar value (one of: s, lb, ub) guaranteed to be within
// the range given by lower bound lb and upper bound ub.
func Clamp(s, lb, ub float32) float32 {
	switch {
	case s < lb:
		return lb
	case s > ub:
		return ub
	}
	return s
}

// Abs32 is math.Abs for float32, avoiding a cast at every call site.
func Abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// Sqrt32 is math.Sqrt for float32.
func Sqrt32(x float32) float32 { return float32(math.Sqrt(float64(x))) }

// Floor32 is math.Floor for float32.
func Floor32(x float32) float32 { return float32(math.Floor(float64(x))) }

// acos32 is math.Acos for float32.
func acos32(x float32) float32 { return float32(math.Acos(float64(x))) }

// sin32 is math.Sin for float32.
func sin32(x float32) float32 { return float32(math.Sin(float64(x))) }
