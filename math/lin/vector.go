package lin

// Vector performs 2 and 3 element vector math needed for mesh and keyframe
// data. V2 is used for texture coordinates; V3 for positions and normals.

// V2 is a 2 element vector, used for texture coordinates.
type V2 struct {
	X float32
	Y float32
}

// V3 is a 3 element vector. This is also used as a point.
type V3 struct {
	X float32
	Y float32
	Z float32
}

// Eq (==) returns true if each element in v has the same value as a.
func (v *V2) Eq(a *V2) bool { return v.X == a.X && v.Y == a.Y }

// Eq (==) returns true if each element in v has the same value as a.
func (v *V3) Eq(a *V3) bool { return v.X == a.X && v.Y == a.Y && v.Z == a.Z }

// Aeq (~=) almost-equals returns true if all the elements in v are
// essentially the same value as the corresponding elements in a.
func (v *V3) Aeq(a *V3) bool { return Aeq(v.X, a.X) && Aeq(v.Y, a.Y) && Aeq(v.Z, a.Z) }

// SetS (=) sets the vector elements to the given values. The updated
// vector v is returned.
func (v *V2) SetS(x, y float32) *V2 { v.X, v.Y = x, y; return v }

// SetS (=) sets the vector elements to the given values. The updated
// vector v is returned.
func (v *V3) SetS(x, y, z float32) *V3 { v.X, v.Y, v.Z = x, y, z; return v }

// Set (=, copy) sets the elements of v to have the same values as a.
func (v *V3) Set(a *V3) *V3 { v.X, v.Y, v.Z = a.X, a.Y, a.Z; return v }

// Add (+) sums vectors a and b, storing the result in v. v is returned.
func (v *V3) Add(a, b *V3) *V3 {
	v.X, v.Y, v.Z = a.X+b.X, a.Y+b.Y, a.Z+b.Z
	return v
}

// Sub (-) subtracts vector b from a, storing the result in v. v is returned.
func (v *V3) Sub(a, b *V3) *V3 {
	v.X, v.Y, v.Z = a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return v
}

// Scale (*) scales vector a by s, storing the result in v. v is returned.
func (v *V3) Scale(a *V3, s float32) *V3 {
	v.X, v.Y, v.Z = a.X*s, a.Y*s, a.Z*s
	return v
}

// Dot returns the dot product of v and a.
func (v *V3) Dot(a *V3) float32 { return v.X*a.X + v.Y*a.Y + v.Z*a.Z }

// Len returns the length of v.
func (v *V3) Len() float32 { return Sqrt32(v.Dot(v)) }

// Unit normalizes v to have length 1, returning v. If the length of v is
// below NormEpsilon, v is left as the zero vector (there is no meaningful
// direction to normalize to).
func (v *V3) Unit() *V3 {
	length := v.Len()
	if length < NormEpsilon {
		v.X, v.Y, v.Z = 0, 0, 0
		return v
	}
	inv := 1 / length
	v.X, v.Y, v.Z = v.X*inv, v.Y*inv, v.Z*inv
	return v
}

// Lerp sets v to the linear interpolation of a to b by the given ratio,
// and returns v.
func (v *V3) Lerp(a, b *V3, ratio float32) *V3 {
	v.X = Lerp(a.X, b.X, ratio)
	v.Y = Lerp(a.Y, b.Y, ratio)
	v.Z = Lerp(a.Z, b.Z, ratio)
	return v
}

// NewV3 creates a new, zero-valued vector.
func NewV3() *V3 { return &V3{} }

// NewV3S creates a new vector with the given values.
func NewV3S(x, y, z float32) *V3 { return &V3{x, y, z} }
