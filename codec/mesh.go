package codec

import "github.com/vitamoo/vitaboy/math/lin"

// blendWeightScale is the fixed-point scale for BlendBinding.Weight on
// disk: a stored integer of 32768 decodes to a weight of 1.0.
const blendWeightScale = 32768

// Face is a triangle: three indices into the mesh's vertex array.
type Face struct {
	A, B, C int
}

// BoneBinding names which bone drives a contiguous range of bound vertices
// and, separately, a contiguous range of blended vertices.
type BoneBinding struct {
	BoneIndex          int
	FirstVertex        int
	VertexCount        int
	FirstBlendedVertex int
	BlendedVertexCount int
}

// BlendBinding mixes the blended-vertex transform at implicit source index
// (numUVs + position-in-slice) into a bound vertex at TargetIndex, by
// Weight.
type BlendBinding struct {
	TargetIndex int
	Weight      float32
}

// MeshDescription is the on-disk form of a skinned mesh: geometry plus the
// bone/blend bindings the deformer (vitaboy/deform.go) uses to pose it.
type MeshDescription struct {
	Name        string
	TextureName string
	BoneNames   []string
	Faces       []Face
	Bindings    []BoneBinding
	UVs         []*lin.V2
	Blends      []BlendBinding
	Positions   []*lin.V3
	Normals     []*lin.V3
}

// NumUVs is the count of bound vertices: indices [0, NumUVs) in Positions
// and Normals are bound, [NumUVs, len(Positions)) are blended.
func (m *MeshDescription) NumUVs() int { return len(m.UVs) }

// ParseMeshText parses the text form of a mesh record.
func ParseMeshText(content string) *MeshDescription {
	return readMesh(newTextReader(content))
}

// ParseMeshBinary parses the binary form of a mesh record.
func ParseMeshBinary(buf []byte) (m *MeshDescription, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if e, ok := rec.(error); ok {
				err = e
				return
			}
			panic(rec)
		}
	}()
	m = readMesh(newBinaryReader(buf))
	return m, nil
}

// EmitMeshText writes the text form of m.
func EmitMeshText(m *MeshDescription) string {
	w := newTextWriter()
	writeMesh(w, m)
	return w.String()
}

// EmitMeshBinary writes the binary form of m.
func EmitMeshBinary(m *MeshDescription) []byte {
	w := newBinaryWriter()
	writeMesh(w, m)
	return w.Bytes()
}

func readMesh(r Reader) *MeshDescription {
	m := &MeshDescription{}
	m.Name = r.readString()
	m.TextureName = r.readString()

	n := r.readInt()
	m.BoneNames = make([]string, n)
	for i := range m.BoneNames {
		m.BoneNames[i] = r.readString()
	}

	n = r.readInt()
	m.Faces = make([]Face, n)
	for i := range m.Faces {
		f := r.readInts(3)
		m.Faces[i] = Face{A: f[0], B: f[1], C: f[2]}
	}

	n = r.readInt()
	m.Bindings = make([]BoneBinding, n)
	for i := range m.Bindings {
		f := r.readInts(5)
		m.Bindings[i] = BoneBinding{
			BoneIndex:          f[0],
			FirstVertex:        f[1],
			VertexCount:        f[2],
			FirstBlendedVertex: f[3],
			BlendedVertexCount: f[4],
		}
	}

	n = r.readInt()
	m.UVs = make([]*lin.V2, n)
	for i := range m.UVs {
		m.UVs[i] = r.readVec2()
	}

	n = r.readInt()
	m.Blends = make([]BlendBinding, n)
	for i := range m.Blends {
		f := r.readInts(2)
		m.Blends[i] = BlendBinding{TargetIndex: f[0], Weight: float32(f[1]) / blendWeightScale}
	}

	n = r.readInt()
	m.Positions = make([]*lin.V3, n)
	m.Normals = make([]*lin.V3, n)
	for i := 0; i < n; i++ {
		f := r.readFloats(6)
		m.Positions[i] = &lin.V3{X: f[0], Y: f[1], Z: f[2]}
		m.Normals[i] = &lin.V3{X: f[3], Y: f[4], Z: f[5]}
	}

	return m
}

func writeMesh(w Writer, m *MeshDescription) {
	w.writeString(m.Name)
	w.writeString(m.TextureName)

	w.writeInt(len(m.BoneNames))
	for _, n := range m.BoneNames {
		w.writeString(n)
	}

	w.writeInt(len(m.Faces))
	for _, f := range m.Faces {
		w.writeInts([]int{f.A, f.B, f.C})
	}

	w.writeInt(len(m.Bindings))
	for _, b := range m.Bindings {
		w.writeInts([]int{b.BoneIndex, b.FirstVertex, b.VertexCount, b.FirstBlendedVertex, b.BlendedVertexCount})
	}

	w.writeInt(len(m.UVs))
	for _, uv := range m.UVs {
		w.writeVec2(uv)
	}

	w.writeInt(len(m.Blends))
	for _, bl := range m.Blends {
		w.writeInts([]int{bl.TargetIndex, int(bl.Weight*blendWeightScale + 0.5)})
	}

	w.writeInt(len(m.Positions))
	for i := range m.Positions {
		p, n := m.Positions[i], m.Normals[i]
		w.writeFloats([]float32{p.X, p.Y, p.Z, n.X, n.Y, n.Z})
	}
}
