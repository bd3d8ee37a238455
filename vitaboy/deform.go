package vitaboy

import (
	"github.com/vitamoo/vitaboy/codec"
	"github.com/vitamoo/vitaboy/math/lin"
)

// upVector is the identity fallback for a normal that cannot be
// meaningfully computed (zero rest normal, or a blend that cancels out).
var upVector = &lin.V3{X: 0, Y: 1, Z: 0}

// Deform poses mesh against skeleton, returning a new world-space
// position and normal array parallel to mesh.Positions/Normals. Bindings
// naming a bone absent from the skeleton are skipped silently
// (InvalidReference / UnknownBone, §7); any vertex untouched by either
// phase keeps its rest-pose value.
func Deform(mesh *codec.MeshDescription, sk *Skeleton) (positions, normals []*lin.V3) {
	n := len(mesh.Positions)
	positions = make([]*lin.V3, n)
	normals = make([]*lin.V3, n)
	for i := range positions {
		positions[i] = lin.NewV3().Set(mesh.Positions[i])
		normals[i] = lin.NewV3().Set(mesh.Normals[i])
	}

	numUVs := mesh.NumUVs()
	for _, binding := range mesh.Bindings {
		if binding.BoneIndex < 0 || binding.BoneIndex >= len(mesh.BoneNames) {
			continue
		}
		bi, ok := sk.BoneByName(mesh.BoneNames[binding.BoneIndex])
		if !ok {
			continue
		}
		world := sk.Bones[bi].World

		// Phase 0: bound vertices.
		for v := binding.FirstVertex; v < binding.FirstVertex+binding.VertexCount && v < numUVs; v++ {
			transformVertex(positions, normals, v, world, mesh)
		}
		// Phase 1: blended vertices, offset into the second vertex-array
		// partition.
		for i := 0; i < binding.BlendedVertexCount; i++ {
			v := numUVs + binding.FirstBlendedVertex + i
			if v >= n {
				continue
			}
			transformVertex(positions, normals, v, world, mesh)
		}
	}

	for i, blend := range mesh.Blends {
		src := numUVs + i
		tgt := blend.TargetIndex
		if src >= n || tgt < 0 || tgt >= n {
			continue
		}
		w := blend.Weight
		if w >= 1.0 {
			positions[tgt].Set(positions[src])
			normals[tgt].Set(normals[src])
			continue
		}
		positions[tgt].Lerp(positions[tgt], positions[src], w)
		blended := lin.NewV3().Lerp(normals[tgt], normals[src], w)
		normals[tgt] = normalizeOrUp(blended)
	}

	return positions, normals
}

func transformVertex(positions, normals []*lin.V3, v int, world *lin.T, mesh *codec.MeshDescription) {
	out := lin.NewV3()
	world.Rot.Rotate(out, mesh.Positions[v])
	positions[v].Add(world.Loc, out)
	normals[v] = normalizeOrUp(world.Rot.Rotate(lin.NewV3(), mesh.Normals[v]))
}

func normalizeOrUp(v *lin.V3) *lin.V3 {
	if v.Len() < lin.NormEpsilon {
		return lin.NewV3().Set(upVector)
	}
	return v.Unit()
}
