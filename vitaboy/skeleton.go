// Package vitaboy builds and animates VitaBoy character skeletons: it
// turns the codec's descriptive records into a runtime bone hierarchy,
// propagates forward-kinematic transforms, deforms skinned meshes, and
// (in practice.go) plays back skill keyframes against a bound skeleton.
package vitaboy

import (
	"log"

	"github.com/vitamoo/vitaboy/codec"
	"github.com/vitamoo/vitaboy/math/lin"
)

// noParent marks a Bone with no parent (the skeleton root, or an
// unresolved parent name treated as a root per §4.4).
const noParent = -1

// Bone is a BoneDescription augmented with the indices and live
// transforms a runtime skeleton needs: resolved parent/children, and the
// local/world transform pair. Bones are stored in a flat slice owned by
// their Skeleton; parent and children are held as indices into that slice
// rather than pointers, so the tree carries no cyclic ownership.
type Bone struct {
	Name         string
	ParentIndex  int
	Children     []int
	Local        *lin.T // rest pose, mutated in place by playback.
	World        *lin.T // written by Propagate.
	CanTranslate bool
	CanRotate    bool
	CanBlend     bool
	CanWiggle    bool
	WigglePower  float32
	Props        codec.PropertyBag
}

// Skeleton is a runtime bone hierarchy built from a SkeletonDescription.
type Skeleton struct {
	Name   string
	Bones  []Bone
	Root   int // index into Bones, or noParent if the skeleton is empty.
	byName map[string]int
}

// BuildSkeleton materializes a runtime Skeleton from desc. Parent
// references are resolved by name; a bone whose parent name does not
// match any bone in desc is left parentless rather than failing the
// build (per §4.4, an UnknownParent is recoverable).
func BuildSkeleton(desc *codec.SkeletonDescription) *Skeleton {
	sk := &Skeleton{Name: desc.Name, Root: noParent}
	sk.Bones = make([]Bone, len(desc.Bones))
	sk.byName = make(map[string]int, len(desc.Bones))
	for i, bd := range desc.Bones {
		sk.byName[bd.Name] = i
	}

	for i, bd := range desc.Bones {
		b := &sk.Bones[i]
		b.Name = bd.Name
		b.ParentIndex = noParent
		if bd.ParentName != "" {
			if pi, ok := sk.byName[bd.ParentName]; ok {
				b.ParentIndex = pi
			} else {
				log.Printf("vitaboy: skeleton %q: bone %q has unknown parent %q, treating as root",
					desc.Name, bd.Name, bd.ParentName)
			}
		}
		b.Local = &lin.T{Loc: lin.NewV3().Set(bd.Position), Rot: lin.NewQ().Set(bd.Rotation)}
		b.World = lin.NewT()
		b.CanTranslate = bd.CanTranslate
		b.CanRotate = bd.CanRotate
		b.CanBlend = bd.CanBlend
		b.CanWiggle = bd.CanWiggle
		b.WigglePower = bd.WigglePower
		b.Props = bd.Props
		if b.ParentIndex == noParent && sk.Root == noParent {
			sk.Root = i
		}
	}

	for i := range sk.Bones {
		if p := sk.Bones[i].ParentIndex; p != noParent {
			sk.Bones[p].Children = append(sk.Bones[p].Children, i)
		}
	}
	return sk
}

// BoneByName returns the index of the named bone, or ok=false if no such
// bone exists in the skeleton.
func (sk *Skeleton) BoneByName(name string) (index int, ok bool) {
	index, ok = sk.byName[name]
	return index, ok
}

// Propagate computes world-space transforms for every bone: world =
// parent_world * local (see lin.T.Mult). sk.Root seeds the walk, but every
// bone with no parent is its own root — a skeleton can have more than one
// after BuildSkeleton tolerates an unresolved ParentName — so Propagate
// walks from all of them, not just sk.Root. An empty skeleton is a no-op.
func (sk *Skeleton) Propagate() {
	for i := range sk.Bones {
		if sk.Bones[i].ParentIndex == noParent {
			sk.propagate(i, nil)
		}
	}
}

func (sk *Skeleton) propagate(i int, parentWorld *lin.T) {
	b := &sk.Bones[i]
	if parentWorld == nil {
		b.World.Set(b.Local)
	} else {
		b.World.Mult(parentWorld, b.Local)
	}
	for _, c := range b.Children {
		sk.propagate(c, b.World)
	}
}
