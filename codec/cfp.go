package codec

import "github.com/vitamoo/vitaboy/math/lin"

// ParseKeyframes reads a CFP keyframe stream: a compressed translation
// block of numTranslations*3 floats (if numTranslations > 0) followed by a
// compressed rotation block of numRotations*4 floats (if numRotations >
// 0). The legacy stream is left-handed; translations and rotations are
// converted to the runtime's right-handed convention by negating
// translation Z and quaternion W.
func ParseKeyframes(buf []byte, numTranslations, numRotations int) (translations []*lin.V3, rotations []*lin.Q, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if e, ok := rec.(error); ok {
				err = e
				return
			}
			panic(rec)
		}
	}()
	r := newBinaryReader(buf)
	if numTranslations > 0 {
		flat := decompress(r, numTranslations, 3)
		translations = make([]*lin.V3, numTranslations)
		for i := 0; i < numTranslations; i++ {
			translations[i] = &lin.V3{X: flat[i*3], Y: flat[i*3+1], Z: -flat[i*3+2]}
		}
	}
	if numRotations > 0 {
		flat := decompress(r, numRotations, 4)
		rotations = make([]*lin.Q, numRotations)
		for i := 0; i < numRotations; i++ {
			rotations[i] = &lin.Q{X: flat[i*4], Y: flat[i*4+1], Z: flat[i*4+2], W: -flat[i*4+3]}
		}
	}
	return translations, rotations, nil
}

// EmitKeyframes writes a CFP keyframe stream for the given translation and
// rotation arrays, reapplying the same Z/W negation on the way out.
func EmitKeyframes(translations []*lin.V3, rotations []*lin.Q) []byte {
	w := newBinaryWriter()
	if len(translations) > 0 {
		flat := make([]float32, len(translations)*3)
		for i, v := range translations {
			flat[i*3], flat[i*3+1], flat[i*3+2] = v.X, v.Y, -v.Z
		}
		w.writeBytes(compress(flat, len(translations), 3))
	}
	if len(rotations) > 0 {
		flat := make([]float32, len(rotations)*4)
		for i, q := range rotations {
			flat[i*4], flat[i*4+1], flat[i*4+2], flat[i*4+3] = q.X, q.Y, q.Z, -q.W
		}
		w.writeBytes(compress(flat, len(rotations), 4))
	}
	return w.Bytes()
}
