package lin

// Quaternion deals with quaternion math specifically for linear algebra
// rotations. For a nice explanation of quaternions see http://3dgep.com/?p=1815

// Q is a unit length quaternion representing an angle of rotation and a
// direction/orientation, used to track/manipulate 3D bone rotations.
type Q struct {
	X float32
	Y float32
	Z float32
	W float32
}

// QI is the identity quaternion. It should never be changed.
var QI = &Q{0, 0, 0, 1}

// Eq (==) returns true if each element in q has the same value as r.
func (q *Q) Eq(r *Q) bool { return q.X == r.X && q.Y == r.Y && q.Z == r.Z && q.W == r.W }

// Aeq (~=) almost-equals returns true if all the elements in q are
// essentially the same value as the corresponding elements in r.
func (q *Q) Aeq(r *Q) bool { return Aeq(q.X, r.X) && Aeq(q.Y, r.Y) && Aeq(q.Z, r.Z) && Aeq(q.W, r.W) }

// Set (=, copy) assigns all the values from r to q. The updated q is returned.
func (q *Q) Set(r *Q) *Q {
	q.X, q.Y, q.Z, q.W = r.X, r.Y, r.Z, r.W
	return q
}

// SetS (=) explicitly sets each of the quaternion values. q is returned.
func (q *Q) SetS(x, y, z, w float32) *Q {
	q.X, q.Y, q.Z, q.W = x, y, z, w
	return q
}

// Neg (-) returns q with every element negated. q is returned.
func (q *Q) Neg() *Q {
	q.X, q.Y, q.Z, q.W = -q.X, -q.Y, -q.Z, -q.W
	return q
}

// Mult (*) multiplies quaternions r and s returning the result in q. This
// applies the rotation of s followed by r (Hamilton product, r ⊗ s). It is
// safe to use the calling quaternion q as one or both of the parameters.
func (q *Q) Mult(r, s *Q) *Q {
	x := r.W*s.X + r.X*s.W + r.Y*s.Z - r.Z*s.Y
	y := r.W*s.Y - r.X*s.Z + r.Y*s.W + r.Z*s.X
	z := r.W*s.Z + r.X*s.Y - r.Y*s.X + r.Z*s.W
	w := r.W*s.W - r.X*s.X - r.Y*s.Y - r.Z*s.Z
	q.X, q.Y, q.Z, q.W = x, y, z, w
	return q
}

// Dot returns the dot product of the quaternions q and r.
func (q *Q) Dot(r *Q) float32 { return q.X*r.X + q.Y*r.Y + q.Z*r.Z + q.W*r.W }

// Len returns the length of q.
func (q *Q) Len() float32 { return Sqrt32(q.Dot(q)) }

// Unit normalizes q to unit length, returning q. Quaternions shorter than
// NormEpsilon are left as the identity rotation rather than divided by a
// vanishing length.
func (q *Q) Unit() *Q {
	length := q.Len()
	if length < NormEpsilon {
		q.X, q.Y, q.Z, q.W = 0, 0, 0, 1
		return q
	}
	inv := 1 / length
	q.X, q.Y, q.Z, q.W = q.X*inv, q.Y*inv, q.Z*inv, q.W*inv
	return q
}

// Rotate applies the rotation of q to vector v, storing the result in out,
// following the standard q*(v,0)*conjugate(q) sandwich. out is returned.
// It is safe for out to alias v.
func (q *Q) Rotate(out, v *V3) *V3 {
	// t = 2 * cross(q.xyz, v)
	qx, qy, qz, qw := q.X, q.Y, q.Z, q.W
	tx := 2 * (qy*v.Z - qz*v.Y)
	ty := 2 * (qz*v.X - qx*v.Z)
	tz := 2 * (qx*v.Y - qy*v.X)
	// out = v + qw*t + cross(q.xyz, t)
	out.X = v.X + qw*tx + (qy*tz - qz*ty)
	out.Y = v.Y + qw*ty + (qz*tx - qx*tz)
	out.Z = v.Z + qw*tz + (qx*ty - qy*tx)
	return out
}

// Nlerp updates q to be the normalized linear interpolation between
// quaternions r and s where ratio is expected to be between 0 and 1.
func (q *Q) Nlerp(r, s *Q, ratio float32) *Q {
	q.X = Lerp(r.X, s.X, ratio)
	q.Y = Lerp(r.Y, s.Y, ratio)
	q.Z = Lerp(r.Z, s.Z, ratio)
	q.W = Lerp(r.W, s.W, ratio)
	return q.Unit()
}

// Slerp updates q to be the shortest-path spherical interpolation between
// quaternions r and s by the given ratio in [0,1]. If r and s are bit
// identical, q is set to that same value unchanged. Endpoints that are
// near-parallel (within QuatEpsilon) fall back to Nlerp, since the slerp
// formula is numerically unstable as the angle between them approaches
// zero.
func (q *Q) Slerp(r, s *Q, ratio float32) *Q {
	if r.Eq(s) {
		return q.Set(r)
	}
	sx, sy, sz, sw := s.X, s.Y, s.Z, s.W
	cosHalfTheta := r.Dot(s)
	if cosHalfTheta < 0 {
		// take the shorter path around the hypersphere.
		sx, sy, sz, sw = -sx, -sy, -sz, -sw
		cosHalfTheta = -cosHalfTheta
	}
	if 1-cosHalfTheta < QuatEpsilon {
		q.X = Lerp(r.X, sx, ratio)
		q.Y = Lerp(r.Y, sy, ratio)
		q.Z = Lerp(r.Z, sz, ratio)
		q.W = Lerp(r.W, sw, ratio)
		return q.Unit()
	}
	halfTheta := acos32(cosHalfTheta)
	sinHalfTheta := Sqrt32(1 - cosHalfTheta*cosHalfTheta)
	aCoeff := sin32((1-ratio)*halfTheta) / sinHalfTheta
	bCoeff := sin32(ratio*halfTheta) / sinHalfTheta
	q.X = r.X*aCoeff + sx*bCoeff
	q.Y = r.Y*aCoeff + sy*bCoeff
	q.Z = r.Z*aCoeff + sz*bCoeff
	q.W = r.W*aCoeff + sw*bCoeff
	return q
}

// NewQ creates a new, all zero, quaternion.
func NewQ() *Q { return &Q{} }

// NewQI creates a new identity quaternion.
func NewQI() *Q { return &Q{W: 1} }
