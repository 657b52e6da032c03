package kernel

import (
	"encoding/binary"
	"fmt"
	"io"
)

// stlHeader is the fixed 80-byte binary STL preamble.
var stlHeader [80]byte

func init() {
	copy(stlHeader[:], "tenon binary STL")
}

// WriteSTL writes the mesh as binary STL. Triangles are emitted in index
// order, so identical meshes produce byte-identical files.
func WriteSTL(w io.Writer, m *Mesh) error {
	if m.TriangleCount()*3 != len(m.Indices) {
		return fmt.Errorf("kernel: malformed mesh: %d indices", len(m.Indices))
	}
	if _, err := w.Write(stlHeader[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(m.TriangleCount())); err != nil {
		return err
	}

	rec := make([]float32, 12) // normal + 3 vertices
	for t := 0; t < m.TriangleCount(); t++ {
		i0 := m.Indices[t*3]
		copy(rec[0:3], m.Normals[i0*3:i0*3+3])
		for j := 0; j < 3; j++ {
			v := m.Indices[t*3+j]
			copy(rec[3+j*3:6+j*3], m.Vertices[v*3:v*3+3])
		}
		if err := binary.Write(w, binary.LittleEndian, rec); err != nil {
			return err
		}
		// Attribute byte count, unused.
		if err := binary.Write(w, binary.LittleEndian, uint16(0)); err != nil {
			return err
		}
	}
	return nil
}
