package vitaboy

import (
	"testing"

	"github.com/vitamoo/vitaboy/codec"
	"github.com/vitamoo/vitaboy/math/lin"
)

func identityBone(name, parent string, x, y, z float32) codec.BoneDescription {
	return codec.BoneDescription{
		Name: name, ParentName: parent,
		Position: &lin.V3{X: x, Y: y, Z: z}, Rotation: &lin.Q{W: 1},
		CanTranslate: true, CanRotate: true,
	}
}

func TestBuildSkeletonEmpty(t *testing.T) {
	sk := BuildSkeleton(&codec.SkeletonDescription{Name: "empty"})
	if sk.Root != noParent {
		t.Errorf("empty skeleton should have no root, got %d", sk.Root)
	}
	sk.Propagate() // must be a no-op, not a panic.
}

func TestBuildSkeletonResolvesParents(t *testing.T) {
	desc := &codec.SkeletonDescription{Name: "chain", Bones: []codec.BoneDescription{
		identityBone("A", "", 0, 0, 0),
		identityBone("B", "A", 1, 0, 0),
		identityBone("C", "B", 0, 1, 0),
	}}
	sk := BuildSkeleton(desc)
	if sk.Root == noParent || sk.Bones[sk.Root].Name != "A" {
		t.Fatalf("expected root A, got %+v", sk.Bones)
	}
	bi, ok := sk.BoneByName("B")
	if !ok || sk.Bones[bi].ParentIndex != sk.Root {
		t.Fatalf("B should resolve to parent A")
	}
}

func TestBuildSkeletonUnknownParentBecomesRoot(t *testing.T) {
	desc := &codec.SkeletonDescription{Name: "s", Bones: []codec.BoneDescription{
		identityBone("A", "GHOST", 0, 0, 0),
	}}
	sk := BuildSkeleton(desc)
	if sk.Bones[0].ParentIndex != noParent {
		t.Error("bone with unknown parent should have no parent")
	}
}

func TestPropagateSmallSkeleton(t *testing.T) {
	desc := &codec.SkeletonDescription{Name: "chain", Bones: []codec.BoneDescription{
		identityBone("A", "", 0, 0, 0),
		identityBone("B", "A", 1, 0, 0),
		identityBone("C", "B", 0, 1, 0),
	}}
	sk := BuildSkeleton(desc)
	sk.Propagate()

	want := map[string]*lin.V3{"A": {0, 0, 0}, "B": {1, 0, 0}, "C": {1, 1, 0}}
	for name, w := range want {
		i, _ := sk.BoneByName(name)
		got := sk.Bones[i].World.Loc
		if !got.Aeq(w) {
			t.Errorf("%s.World.Loc = %+v, want %+v", name, got, w)
		}
	}
}

func TestPropagateRootEqualsLocal(t *testing.T) {
	desc := &codec.SkeletonDescription{Name: "s", Bones: []codec.BoneDescription{
		identityBone("A", "", 3, 4, 5),
	}}
	sk := BuildSkeleton(desc)
	sk.Propagate()
	root := &sk.Bones[sk.Root]
	if !root.World.Loc.Eq(root.Local.Loc) || !root.World.Rot.Eq(root.Local.Rot) {
		t.Error("root world transform should equal its local transform")
	}
}

func TestPropagateRotatesChildOffset(t *testing.T) {
	desc := &codec.SkeletonDescription{Name: "s", Bones: []codec.BoneDescription{
		{Name: "A", Position: &lin.V3{X: 5, Y: 0, Z: 0}, Rotation: &lin.Q{X: 0, Y: 0.7071068, Z: 0, W: 0.7071068}},
		{Name: "B", ParentName: "A", Position: &lin.V3{X: 2, Y: 0, Z: 0}, Rotation: &lin.Q{W: 1}},
	}}
	sk := BuildSkeleton(desc)
	sk.Propagate()
	bi, _ := sk.BoneByName("B")
	want := &lin.V3{X: 5, Y: 0, Z: -2}
	if !sk.Bones[bi].World.Loc.Aeq(want) {
		t.Errorf("B.World.Loc = %+v, want %+v", sk.Bones[bi].World.Loc, want)
	}
}
