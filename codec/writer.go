package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vitamoo/vitaboy/math/lin"
)

// formatFloat renders a float32 with enough precision to round-trip
// exactly back to the same float32 on read.
func formatFloat(v float32) string { return strconv.FormatFloat(float64(v), 'g', -1, 32) }

// Writer is the write-side counterpart to Reader: the structured codec
// emits a record once against this shared capability set, instantiated
// against either a textWriter or a binaryWriter.
type Writer interface {
	writeString(s string)
	writeInt(v int)
	writeFloat(v float32)
	writeBool(v bool)
	writeVec2(v *lin.V2)
	writeVec3(v *lin.V3)
	writeQuat(q *lin.Q)
	writeInts(v []int)
	writeFloats(v []float32)
}

// textWriter accumulates lines of a text character or mesh file.
type textWriter struct {
	lines []string
}

func newTextWriter() *textWriter { return &textWriter{} }

func (w *textWriter) String() string { return strings.Join(w.lines, "\n") + "\n" }

func (w *textWriter) emit(line string) { w.lines = append(w.lines, line) }

func (w *textWriter) writeString(s string) { w.emit(s) }

func (w *textWriter) writeInt(v int) { w.emit(fmt.Sprintf("%d", v)) }

func (w *textWriter) writeFloat(v float32) { w.emit(formatFloat(v)) }

func (w *textWriter) writeBool(v bool) {
	if v {
		w.emit("1")
	} else {
		w.emit("0")
	}
}

func (w *textWriter) writeVec2(v *lin.V2) { w.emit(fmt.Sprintf("%g %g", v.X, v.Y)) }

func (w *textWriter) writeVec3(v *lin.V3) { w.emit(fmt.Sprintf("| %s %s %s |", formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))) }

func (w *textWriter) writeQuat(q *lin.Q) { w.emit(fmt.Sprintf("| %s %s %s %s |", formatFloat(q.X), formatFloat(q.Y), formatFloat(q.Z), formatFloat(q.W))) }

func (w *textWriter) writeInts(v []int) {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = fmt.Sprintf("%d", n)
	}
	w.emit(strings.Join(parts, " "))
}

func (w *textWriter) writeFloats(v []float32) {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = formatFloat(f)
	}
	w.emit(strings.Join(parts, " "))
}

// binaryWriter multi-value helpers: the binary mesh form has no concept of
// a packed line, so writeInts/writeFloats degrade to one write per field.
func (w *binaryWriter) writeInts(v []int) {
	for _, n := range v {
		w.writeInt(n)
	}
}

func (w *binaryWriter) writeFloats(v []float32) {
	for _, f := range v {
		w.writeFloat(f)
	}
}
