package vitaboy

import (
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/vitamoo/vitaboy/codec"
	"github.com/vitamoo/vitaboy/math/lin"
)

// ExportGLTF snapshots a single posed frame: sk's current bone local
// transforms as a glTF node hierarchy, and mesh's deformed positions and
// normals (see Deform) as one mesh primitive. It is a diagnostic interop
// path only — the renderer that would actually draw a VitaBoy character
// is out of scope here; this lets a converted character be inspected in
// an off-the-shelf glTF viewer.
func ExportGLTF(sk *Skeleton, mesh *codec.MeshDescription, positions, normals []*lin.V3) *gltf.Document {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "vitamoo"
	doc.Scenes = append(doc.Scenes, &gltf.Scene{Name: "Scene"})
	doc.Scene = gltf.Index(0)

	nodeIndices := make([]uint32, len(sk.Bones))
	for i, b := range sk.Bones {
		nodeIndices[i] = uint32(len(doc.Nodes))
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name:        b.Name,
			Translation: [3]float32{b.Local.Loc.X, b.Local.Loc.Y, b.Local.Loc.Z},
			Rotation:    [4]float32{b.Local.Rot.X, b.Local.Rot.Y, b.Local.Rot.Z, b.Local.Rot.W},
		})
	}
	for i, b := range sk.Bones {
		if b.ParentIndex == noParent {
			doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, nodeIndices[i])
			continue
		}
		parent := doc.Nodes[nodeIndices[b.ParentIndex]]
		parent.Children = append(parent.Children, nodeIndices[i])
	}

	if mesh != nil && len(positions) > 0 {
		pos := make([][3]float32, len(positions))
		norm := make([][3]float32, len(normals))
		for i, p := range positions {
			pos[i] = [3]float32{p.X, p.Y, p.Z}
		}
		for i, n := range normals {
			norm[i] = [3]float32{n.X, n.Y, n.Z}
		}
		indices := make([]uint32, 0, len(mesh.Faces)*3)
		for _, f := range mesh.Faces {
			indices = append(indices, uint32(f.A), uint32(f.B), uint32(f.C))
		}

		posAccessor := modeler.WritePosition(doc, pos)
		normAccessor := modeler.WriteNormal(doc, norm)
		indexAccessor := modeler.WriteIndices(doc, indices)

		meshIdx := uint32(len(doc.Meshes))
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name: mesh.Name,
			Primitives: []*gltf.Primitive{{
				Indices: gltf.Index(indexAccessor),
				Attributes: map[string]uint32{
					gltf.POSITION: posAccessor,
					gltf.NORMAL:   normAccessor,
				},
			}},
		})
		nodeIdx := uint32(len(doc.Nodes))
		doc.Nodes = append(doc.Nodes, &gltf.Node{Name: mesh.Name, Mesh: gltf.Index(meshIdx)})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, nodeIdx)
	}

	return doc
}

// WriteGLTFFile writes doc as a binary .glb to path, creating any missing
// parent directories.
func WriteGLTFFile(doc *gltf.Document, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return gltf.SaveBinary(doc, path)
}
