package codec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/vitamoo/vitaboy/math/lin"
)

// ErrTruncated is returned when a binaryReader is asked to read past the
// end of its buffer. Unlike the text reader's permissive zero-on-malformed
// behavior, the binary side fails the operation: a truncated binary file
// is a structural error, not hand-edited content.
var ErrTruncated = fmt.Errorf("codec: truncated binary stream")

// binaryReader is a Reader over an in-memory little-endian byte buffer.
// It panics with ErrTruncated on overrun; callers recover at the public
// boundary (see record.go's ParseCharacterBinary / mesh.go's ParseMeshBinary).
type binaryReader struct {
	buf []byte
	pos int
}

func newBinaryReader(buf []byte) *binaryReader { return &binaryReader{buf: buf} }

func (r *binaryReader) need(n int) {
	if r.pos+n > len(r.buf) {
		panic(ErrTruncated)
	}
}

func (r *binaryReader) readByte() byte {
	r.need(1)
	b := r.buf[r.pos]
	r.pos++
	return b
}

func (r *binaryReader) readBytes(n int) []byte {
	r.need(n)
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *binaryReader) readString() string {
	n := int(r.readByte())
	if n == 255 {
		n = int(binary.LittleEndian.Uint32(r.readBytes(4)))
	}
	raw := r.readBytes(n)
	// Latin-1: each byte maps directly to the codepoint of the same value.
	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}
	return string(runes)
}

func (r *binaryReader) readInt() int {
	return int(int32(binary.LittleEndian.Uint32(r.readBytes(4))))
}

func (r *binaryReader) readFloat() float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(r.readBytes(4)))
}

func (r *binaryReader) readBool() bool {
	return binary.LittleEndian.Uint32(r.readBytes(4)) != 0
}

func (r *binaryReader) readVec2() *lin.V2 { return &lin.V2{X: r.readFloat(), Y: r.readFloat()} }

func (r *binaryReader) readVec3() *lin.V3 {
	return &lin.V3{X: r.readFloat(), Y: r.readFloat(), Z: r.readFloat()}
}

func (r *binaryReader) readQuat() *lin.Q {
	return &lin.Q{X: r.readFloat(), Y: r.readFloat(), Z: r.readFloat(), W: r.readFloat()}
}

func (r *binaryReader) readInts(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = r.readInt()
	}
	return out
}

func (r *binaryReader) readFloats(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = r.readFloat()
	}
	return out
}

// binaryWriter is a buffered, growable little-endian byte writer. It owns
// its backing slice; Bytes() hands the final buffer to the caller.
type binaryWriter struct {
	buf []byte
}

func newBinaryWriter() *binaryWriter { return &binaryWriter{buf: make([]byte, 0, 256)} }

func (w *binaryWriter) Bytes() []byte { return w.buf }

func (w *binaryWriter) writeBytes(b []byte) { w.buf = append(w.buf, b...) }

func (w *binaryWriter) writeByte(b byte) { w.buf = append(w.buf, b) }

// writeString emits the length prefix (1 byte, or the 0xFF sentinel
// followed by a 32-bit length if the payload is >= 255 bytes) then the
// Latin-1 payload.
func (w *binaryWriter) writeString(s string) {
	runes := []rune(s)
	payload := make([]byte, len(runes))
	for i, r := range runes {
		payload[i] = byte(r)
	}
	if len(payload) >= 255 {
		w.writeByte(0xFF)
		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(payload)))
		w.writeBytes(lenBuf[:])
	} else {
		w.writeByte(byte(len(payload)))
	}
	w.writeBytes(payload)
}

func (w *binaryWriter) writeInt(v int) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(int32(v)))
	w.writeBytes(b[:])
}

func (w *binaryWriter) writeFloat(v float32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
	w.writeBytes(b[:])
}

func (w *binaryWriter) writeBool(v bool) {
	if v {
		w.writeInt(1)
	} else {
		w.writeInt(0)
	}
}

func (w *binaryWriter) writeVec2(v *lin.V2) { w.writeFloat(v.X); w.writeFloat(v.Y) }

func (w *binaryWriter) writeVec3(v *lin.V3) { w.writeFloat(v.X); w.writeFloat(v.Y); w.writeFloat(v.Z) }

func (w *binaryWriter) writeQuat(q *lin.Q) {
	w.writeFloat(q.X)
	w.writeFloat(q.Y)
	w.writeFloat(q.Z)
	w.writeFloat(q.W)
}
