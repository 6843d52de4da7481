package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/philipparndt/gostitch/pkg/geometry"
)

// Format selects the STL encoding
type Format string

const (
	FormatBinary Format = "binary"
	FormatASCII  Format = "ascii"
)

// WriteBinary encodes the model as binary STL
func WriteBinary(w io.Writer, model *Model) error {
	bw := bufio.NewWriter(w)

	var header [headerSize]byte
	copy(header[:], model.Name)
	if _, err := bw.Write(header[:]); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(model.Triangles))); err != nil {
		return fmt.Errorf("failed to write triangle count: %w", err)
	}

	for i, t := range model.Triangles {
		facet := binaryFacet{
			Normal: toFloat32(t.Normal),
			V1:     toFloat32(t.V1),
			V2:     toFloat32(t.V2),
			V3:     toFloat32(t.V3),
		}
		if err := binary.Write(bw, binary.LittleEndian, &facet); err != nil {
			return fmt.Errorf("failed to write triangle %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// WriteASCII encodes the model as ASCII STL
func WriteASCII(w io.Writer, model *Model) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "solid %s\n", model.Name)
	for _, t := range model.Triangles {
		fmt.Fprintf(bw, "  facet normal %e %e %e\n", t.Normal.X, t.Normal.Y, t.Normal.Z)
		fmt.Fprintf(bw, "    outer loop\n")
		for _, p := range []geometry.Vector3{t.V1, t.V2, t.V3} {
			fmt.Fprintf(bw, "      vertex %e %e %e\n", p.X, p.Y, p.Z)
		}
		fmt.Fprintf(bw, "    endloop\n")
		fmt.Fprintf(bw, "  endfacet\n")
	}
	fmt.Fprintf(bw, "endsolid %s\n", model.Name)

	return bw.Flush()
}

// Write encodes the model in the given format
func Write(w io.Writer, model *Model, format Format) error {
	switch format {
	case FormatBinary, "":
		return WriteBinary(w, model)
	case FormatASCII:
		return WriteASCII(w, model)
	}
	return fmt.Errorf("unknown STL format %q", format)
}

// WriteFile encodes the model into a file
func WriteFile(filename string, model *Model, format Format) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Write(file, model, format); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
