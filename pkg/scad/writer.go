package scad

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// writer accumulates indented script text.
type writer struct {
	b      strings.Builder
	indent int
}

func (w *writer) push() { w.indent++ }
func (w *writer) pop()  { w.indent-- }

func (w *writer) line(s string) {
	for i := 0; i < w.indent; i++ {
		w.b.WriteString("  ")
	}
	w.b.WriteString(s)
	w.b.WriteByte('\n')
}

func (w *writer) linef(format string, args ...any) {
	w.line(fmt.Sprintf(format, args...))
}

// String renders a node tree as OpenSCAD script text. The output is
// bit-identical for identical trees.
func String(n Node) string {
	var w writer
	n.write(&w)
	return w.b.String()
}

// Write renders a node tree to w.
func Write(w io.Writer, n Node) error {
	_, err := io.WriteString(w, String(n))
	return err
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func fmtInt(v int) string {
	return strconv.Itoa(v)
}

func fmtVec3(v [3]float64) string {
	return "[" + fmtFloat(v[0]) + ", " + fmtFloat(v[1]) + ", " + fmtFloat(v[2]) + "]"
}

func fmtVec4(v [4]float64) string {
	return "[" + fmtFloat(v[0]) + ", " + fmtFloat(v[1]) + ", " +
		fmtFloat(v[2]) + ", " + fmtFloat(v[3]) + "]"
}

func fmtMatrix(rows [4][4]float64) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, row := range rows {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('[')
		for j, v := range row {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(fmtFloat(v))
		}
		b.WriteByte(']')
	}
	b.WriteByte(']')
	return b.String()
}
