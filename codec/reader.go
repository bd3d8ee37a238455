package codec

import (
	"strconv"
	"strings"

	"github.com/vitamoo/vitaboy/math/lin"
)

// Reader is the shared capability set the structured codec (record.go,
// mesh.go) is written against. A textReader and a binaryReader both
// implement it, so the record-parsing logic runs unchanged over either
// on-disk form.
type Reader interface {
	readString() string
	readInt() int
	readFloat() float32
	readBool() bool
	readVec2() *lin.V2
	readVec3() *lin.V3
	readQuat() *lin.Q

	// readInts/readFloats fetch the next multi-value line split on whitespace, for
	// record fields that pack several primitives onto one text line (mesh
	// faces, bindings, blend weights, vertex+normal pairs). Binary readers
	// ignore line boundaries and simply return the requested fields.
	readInts(n int) []int
	readFloats(n int) []float32
}

// textReader is a Reader over a line-oriented text stream.
type textReader struct {
	lines []string
	pos   int
}

func newTextReader(content string) *textReader {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	return &textReader{lines: strings.Split(content, "\n")}
}

// nextLine returns the next non-blank, non-comment logical line.
func (r *textReader) nextLine() string {
	for r.pos < len(r.lines) {
		line := strings.TrimSpace(r.lines[r.pos])
		r.pos++
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		return line
	}
	return ""
}

func (r *textReader) readString() string { return r.nextLine() }

func (r *textReader) readInt() int {
	v, _ := strconv.Atoi(strings.TrimSpace(r.nextLine()))
	return v
}

func (r *textReader) readFloat() float32 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(r.nextLine()), 32)
	return float32(v)
}

func (r *textReader) readBool() bool {
	switch strings.ToLower(strings.TrimSpace(r.nextLine())) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func (r *textReader) readVec2() *lin.V2 {
	f := parseFloats(r.nextLine(), 2)
	return &lin.V2{X: f[0], Y: f[1]}
}

func (r *textReader) readVec3() *lin.V3 {
	f := parseFloats(r.nextLine(), 3)
	return &lin.V3{X: f[0], Y: f[1], Z: f[2]}
}

func (r *textReader) readQuat() *lin.Q {
	f := parseFloats(r.nextLine(), 4)
	return &lin.Q{X: f[0], Y: f[1], Z: f[2], W: f[3]}
}

func (r *textReader) readInts(n int) []int {
	fields := strings.Fields(r.nextLine())
	out := make([]int, n)
	for i := 0; i < n && i < len(fields); i++ {
		out[i], _ = strconv.Atoi(fields[i])
	}
	return out
}

func (r *textReader) readFloats(n int) []float32 {
	fields := strings.Fields(r.nextLine())
	out := make([]float32, n)
	for i := 0; i < n && i < len(fields); i++ {
		v, _ := strconv.ParseFloat(fields[i], 32)
		out[i] = float32(v)
	}
	return out
}

// parseFloats strips pipe delimiters and splits the remainder on
// whitespace, returning exactly n values (zero-padded on malformed input).
func parseFloats(line string, n int) []float32 {
	line = strings.ReplaceAll(line, "|", " ")
	fields := strings.Fields(line)
	out := make([]float32, n)
	for i := 0; i < n && i < len(fields); i++ {
		v, _ := strconv.ParseFloat(fields[i], 32)
		out[i] = float32(v)
	}
	return out
}
