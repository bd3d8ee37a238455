package codec

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestDeltaTableShape(t *testing.T) {
	table := buildDeltaTable()
	if len(table) != 253 {
		t.Fatalf("table has %d entries, want 253", len(table))
	}
	if !approx(table[126], 0, 1e-15) {
		t.Errorf("table[126] = %v, want ~0", table[126])
	}
	if !approx(table[0], -0.1, 1e-9) {
		t.Errorf("table[0] = %v, want -0.1", table[0])
	}
	if !approx(table[252], 0.1, 1e-6) {
		t.Errorf("table[252] = %v, want 0.1", table[252])
	}
}

func approx(got, want, tol float32) bool { return absF32(got-want) <= tol }

func TestAbsoluteJumpThenDelta(t *testing.T) {
	table := buildDeltaTable()
	w := newBinaryWriter()
	w.writeByte(codeAbsolute)
	w.writeFloat(1.0)
	w.writeByte(200)
	data := decompress(newBinaryReader(w.Bytes()), 2, 1)
	want := []float32{1.0, 1.0 + table[200]}
	if data[0] != want[0] || data[1] != want[1] {
		t.Errorf("got %v want %v", data, want)
	}
}

func TestRepeatRunDecode(t *testing.T) {
	w := newBinaryWriter()
	w.writeByte(codeAbsolute)
	w.writeFloat(0.5)
	w.writeByte(codeRepeat)
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], 2)
	w.writeBytes(b[:])
	data := decompress(newBinaryReader(w.Bytes()), 4, 1)
	for i, v := range data {
		if v != 0.5 {
			t.Errorf("data[%d] = %v, want 0.5", i, v)
		}
	}
}

func TestCompressRepeatRunRoundtrip(t *testing.T) {
	in := []float32{0.5, 0.5, 0.5, 0.5}
	stream := compress(in, 4, 1)
	out := decompress(newBinaryReader(stream), 4, 1)
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("out[%d] = %v, want %v", i, out[i], in[i])
		}
	}
}

func TestCompressDecodeRoundtripWithinTolerance(t *testing.T) {
	in := make([]float32, 30)
	for i := range in {
		in[i] = float32(math.Sin(float64(i)*0.3)) * 0.05
	}
	stream := compress(in, len(in), 1)
	out := decompress(newBinaryReader(stream), len(in), 1)
	var maxAbs float32
	for i := range in {
		if d := absF32(in[i] - out[i]); d > maxAbs {
			maxAbs = d
		}
	}
	if maxAbs > 0.01 {
		t.Errorf("max abs error %v exceeds tolerance", maxAbs)
	}
}

func TestDeltaEmptyStream(t *testing.T) {
	if out := decompress(newBinaryReader(nil), 0, 3); len(out) != 0 {
		t.Errorf("expected empty output, got %v", out)
	}
	if stream := compress(nil, 0, 3); len(stream) != 0 {
		t.Errorf("expected empty stream, got %v", stream)
	}
}

func TestDeltaInterleavedDimensions(t *testing.T) {
	// D=2, N=3: dimension 0 then dimension 1 on the wire, interleaved on
	// output as [d0s0, d1s0, d0s1, d1s1, d0s2, d1s2].
	in := []float32{
		1, 10,
		2, 20,
		3, 30,
	}
	stream := compress(in, 3, 2)
	out := decompress(newBinaryReader(stream), 3, 2)
	for i := range in {
		if absF32(out[i]-in[i]) > 0.01 {
			t.Errorf("out[%d] = %v, want ~%v", i, out[i], in[i])
		}
	}
}

func TestDecompressRejectsReservedCode(t *testing.T) {
	w := newBinaryWriter()
	w.writeByte(codeAbsolute)
	w.writeFloat(1.0)
	w.writeByte(deltaTableSize) // 253: reserved, no encoder ever emits it.

	var err error
	func() {
		defer func() {
			if rec := recover(); rec != nil {
				var ok bool
				err, ok = rec.(error)
				if !ok {
					panic(rec)
				}
			}
		}()
		decompress(newBinaryReader(w.Bytes()), 2, 1)
	}()

	if err != ErrReservedCode {
		t.Fatalf("decompress on reserved code 253 = %v, want ErrReservedCode", err)
	}
}
