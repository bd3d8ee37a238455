package lin

// T is a location+rotation pair: a rigid transform excluding scale, used for
// both a bone's rest/local pose and its propagated world pose.
type T struct {
	Loc *V3 // Location (translation, origin).
	Rot *Q  // Rotation (direction, orientation).
}

// NewT creates a transform at the origin with no rotation.
func NewT() *T { return &T{&V3{}, &Q{0, 0, 0, 1}} }

// Set (=, copy) assigns the values of a to t. t is returned.
func (t *T) Set(a *T) *T {
	t.Loc.Set(a.Loc)
	t.Rot.Set(a.Rot)
	return t
}

// Mult (*) updates t to be the composition of parent transform a with local
// transform b: rotate b's location by a's rotation and add a's location,
// then combine the rotations. This is the forward-kinematic "world = parent
// world * local" step; it is safe for t to alias a.
func (t *T) Mult(a, b *T) *T {
	rotated := V3{}
	a.Rot.Rotate(&rotated, b.Loc)
	t.Loc.Add(a.Loc, &rotated)
	t.Rot.Mult(a.Rot, b.Rot)
	return t
}
