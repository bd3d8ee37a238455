package codec

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
)

// ErrReservedCode is raised when a delta stream contains code 253, which
// is reserved and carries no defined meaning. decompress panics with it;
// callers recover at the same public boundary that handles ErrTruncated.
var ErrReservedCode = fmt.Errorf("codec: delta stream uses reserved code %d", deltaTableSize)

// deltaTableSize is the number of usable delta codes; code 253 is reserved
// and unused, 254 is the repeat escape, 255 is the absolute-jump escape.
const deltaTableSize = 253

// deltaSpread bounds the table's extremes to +/-0.1.
const deltaSpread = 0.1

const (
	codeRepeat   = 254
	codeAbsolute = 255
)

var (
	deltaTableOnce sync.Once
	deltaTable     [deltaTableSize]float32
)

// buildDeltaTable lazily constructs the quartic delta lookup table. The
// sync.Once guard builds it exactly once, even when first callers race.
func buildDeltaTable() [deltaTableSize]float32 {
	deltaTableOnce.Do(func() {
		for i := 0; i < deltaTableSize; i++ {
			v := 2*(float64(i)/float64(deltaTableSize-1)) - 1
			sign := 1.0
			if v < 0 {
				sign = -1.0
			}
			deltaTable[i] = float32(sign * v * v * v * v * deltaSpread)
		}
	})
	return deltaTable
}

// decompress reads an interleaved array of n*d floats from a delta-coded
// byte stream. Samples are laid out dimension-major on the wire (all n
// samples of dimension 0, then dimension 1, ...) and interleaved on
// output: the i-th sample of dimension d lands at flat index d + i*d_count.
func decompress(r *binaryReader, n, d int) []float32 {
	table := buildDeltaTable()
	out := make([]float32, n*d)
	if n == 0 || d == 0 {
		return out
	}
	var accum float32
	var repeat int
	for dim := 0; dim < d; dim++ {
		for i := 0; i < n; i++ {
			if repeat > 0 {
				repeat--
			} else {
				code := r.readByte()
				switch {
				case code < deltaTableSize:
					accum += table[code]
				case code == deltaTableSize:
					// Reserved; no encoder emits it, so a live one signals a
					// corrupt or hand-edited stream rather than real data.
					panic(ErrReservedCode)
				case code == codeRepeat:
					count := binary.LittleEndian.Uint16(r.readBytes(2))
					repeat = int(count) + 1
					repeat-- // the current sample consumes one of the repeats.
				case code == codeAbsolute:
					accum = r.readFloat()
				}
			}
			out[dim+i*d] = accum
		}
	}
	return out
}

// compress produces a delta-coded byte stream for an interleaved float
// array of shape (n, d). The companion of decompress.
func compress(data []float32, n, d int) []byte {
	table := buildDeltaTable()
	w := newBinaryWriter()
	if n == 0 || d == 0 {
		return w.Bytes()
	}
	minV, maxV := table[0], table[deltaTableSize-1]

	for dim := 0; dim < d; dim++ {
		var accum float32
		var repeatActive bool
		var repeatCount uint16

		flush := func() {
			if repeatActive {
				w.writeByte(codeRepeat)
				var b [2]byte
				// The wire format's count means "this many additional
				// repeats beyond the code-consuming sample", so it is one
				// less than the number of buffered samples this escape
				// covers.
				binary.LittleEndian.PutUint16(b[:], repeatCount-1)
				w.writeBytes(b[:])
				repeatActive = false
				repeatCount = 0
			}
		}

		for i := 0; i < n; i++ {
			target := data[dim+i*d]
			if i == 0 {
				w.writeByte(codeAbsolute)
				w.writeFloat(target)
				accum = target
				continue
			}

			diff := target - accum
			tolerance := float32(1e-6)
			if repeatActive {
				tolerance = 1e-5
			}
			if absF32(diff) <= tolerance {
				if repeatActive && repeatCount == math.MaxUint16 {
					flush()
				}
				repeatActive = true
				repeatCount++
				continue
			}

			flush()
			if diff < minV || diff > maxV {
				w.writeByte(codeAbsolute)
				w.writeFloat(target)
				accum = target
				continue
			}
			bestCode := 0
			bestErr := absF32(target - (accum + table[0]))
			for code := 1; code < deltaTableSize; code++ {
				err := absF32(target - (accum + table[code]))
				if err < bestErr {
					bestErr = err
					bestCode = code
				}
			}
			w.writeByte(byte(bestCode))
			accum += table[bestCode]
		}
		flush()
	}
	return w.Bytes()
}

func absF32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
