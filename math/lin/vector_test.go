package lin

import "testing"

// While the functions below are not complicated, they are foundational such
// that it is better to test each one of them than have the bugs discovered
// later from other code. Where applicable, check that the output vector can
// also be used as one or both of the input vectors.

func TestV2Eq(t *testing.T) {
	a, b := &V2{1, 2}, &V2{1, 2}
	c := &V2{1, 3}
	if !a.Eq(b) || a.Eq(c) {
		t.Error("V2.Eq")
	}
}

func TestV3Eq(t *testing.T) {
	a, b := &V3{1, 2, 3}, &V3{1, 2, 3}
	c := &V3{1, 2, 4}
	if !a.Eq(b) || a.Eq(c) {
		t.Error("V3.Eq")
	}
}

func TestV3Aeq(t *testing.T) {
	a, b, c := &V3{1, 2, 3}, &V3{1.0000001, 2, 3}, &V3{1, 2, 3.1}
	if !a.Aeq(b) || a.Aeq(c) {
		t.Error("V3.Aeq")
	}
}

func TestSetS(t *testing.T) {
	v, want := &V2{}, &V2{3, 4}
	if !v.SetS(3, 4).Eq(want) {
		t.Errorf(format, v.Dump(), want.Dump())
	}
}

func TestSet(t *testing.T) {
	v, a := &V3{}, &V3{1, 2, 3}
	if !v.Set(a).Eq(a) {
		t.Errorf(format, v.Dump(), a.Dump())
	}
}

func TestAddV3(t *testing.T) {
	v, want := &V3{1, 2, 3}, &V3{2, 4, 6}
	if !v.Add(v, v).Eq(want) {
		t.Errorf(format, v.Dump(), want.Dump())
	}
}

func TestSubtractV3(t *testing.T) {
	v, want := &V3{1, 2, 3}, &V3{0, 0, 0}
	if !v.Sub(v, v).Eq(want) {
		t.Errorf(format, v.Dump(), want.Dump())
	}
}

func TestScaleV3(t *testing.T) {
	v, a, want := &V3{}, &V3{1, 2, 3}, &V3{2, 4, 6}
	if !v.Scale(a, 2).Eq(want) {
		t.Errorf(format, v.Dump(), want.Dump())
	}
}

func TestDotV3(t *testing.T) {
	v, a := &V3{1, 2, 3}, &V3{2, 4, 8}
	if v.Dot(a) != 34 || v.Dot(v) != 14 {
		t.Error("invalid dot product")
	}
}

func TestLengthV3(t *testing.T) {
	v := &V3{9, 2, 6}
	if !Aeq(v.Len(), 11) {
		t.Error("invalid length", v.Len())
	}
}

func TestNormalizeV3(t *testing.T) {
	v, want := &V3{0, 0, 0}, &V3{0, 0, 0}
	if !v.Unit().Eq(want) {
		t.Errorf(format, v.Dump(), want.Dump())
	}
	v = &V3{5, 6, 7}
	if !Aeq(v.Unit().Len(), 1) {
		t.Error("normalized vectors should have length one")
	}
}

func TestLerpV3(t *testing.T) {
	v, b, want := &V3{1, 2, 3}, &V3{5, 6, 7}, &V3{3, 4, 5}
	if !v.Lerp(v, b, 0.5).Eq(want) {
		t.Errorf(format, v.Dump(), want.Dump())
	}
}

func TestCascadeV3(t *testing.T) {
	v, v1, v2 := &V3{1, 2, 3}, &V3{10, 20, 30}, &V3{}
	want := &V3{11, 22, 33}
	if !v2.Add(v, v1).Eq(want) {
		t.Errorf(format, v2.Dump(), want.Dump())
	}
}

func TestNewV3(t *testing.T) {
	if !NewV3().Eq(&V3{0, 0, 0}) {
		t.Error("NewV3")
	}
}

func TestNewV3S(t *testing.T) {
	if !NewV3S(1, 2, 3).Eq(&V3{1, 2, 3}) {
		t.Error("NewV3S")
	}
}

// ============================================================================
// benchmarking.

func BenchmarkV3Sub(b *testing.B) {
	v, a, o := &V3{}, &V3{2, 2, 2}, &V3{1, 1, 1}
	for cnt := 0; cnt < b.N; cnt++ {
		v = v.Sub(a, o)
	}
}
