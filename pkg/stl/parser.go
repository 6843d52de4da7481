package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/gostitch/pkg/geometry"
	"github.com/philipparndt/gostitch/pkg/mesh"
)

// ErrMalformed is returned for input that is neither valid ASCII nor binary STL
var ErrMalformed = errors.New("malformed STL")

const (
	headerSize = 80
	facetSize  = 50
)

// Parse reads an STL file and returns a Model
// It automatically detects whether the file is ASCII or binary format
func Parse(filename string) (*Model, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return ParseBytes(data)
}

// ParseReader reads a whole STL stream and returns a Model
func ParseReader(reader io.Reader) (*Model, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read STL: %w", err)
	}
	return ParseBytes(data)
}

// ParseBytes parses STL data held in memory. Binary files may start with
// "solid" too, so a header that looks like ASCII only wins when the size
// does not match the binary layout.
func ParseBytes(data []byte) (*Model, error) {
	if bytes.HasPrefix(data, []byte("solid")) && !binarySizeMatches(data) {
		return parseASCII(bytes.NewReader(data))
	}
	return parseBinary(data)
}

func binarySizeMatches(data []byte) bool {
	if len(data) < headerSize+4 {
		return false
	}
	count := binary.LittleEndian.Uint32(data[headerSize:])
	return int64(len(data)) == int64(headerSize+4)+int64(count)*facetSize
}

// parseASCII parses an ASCII STL file
func parseASCII(reader io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(reader)
	model := NewModel("")

	var currentNormal geometry.Vector3
	var vertices []geometry.Vector3
	line := 0

	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())

		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				model.Name = strings.Join(fields[1:], " ")
			}

		case "facet":
			if len(fields) < 5 || fields[1] != "normal" {
				return nil, fmt.Errorf("%w: line %d: bad facet", ErrMalformed, line)
			}
			n, err := parseTriple(fields[2:5])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
			}
			currentNormal = n

		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: line %d: bad vertex", ErrMalformed, line)
			}
			p, err := parseTriple(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
			}
			vertices = append(vertices, p)

		case "endfacet":
			if len(vertices) != 3 {
				return nil, fmt.Errorf("%w: line %d: facet with %d vertices", ErrMalformed, line, len(vertices))
			}
			model.AddTriangle(geometry.NewTriangle(currentNormal, vertices[0], vertices[1], vertices[2]))
			vertices = vertices[:0] // Clear vertices
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}

	return model, nil
}

func parseTriple(fields []string) (geometry.Vector3, error) {
	var xyz [3]float64
	for i, f := range fields {
		value, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geometry.Vector3{}, err
		}
		xyz[i] = value
	}
	return geometry.NewVector3(xyz[0], xyz[1], xyz[2]), nil
}

// binaryFacet is the on-disk layout of one binary facet
type binaryFacet struct {
	Normal     [3]float32
	V1, V2, V3 [3]float32
	Attribute  uint16
}

// parseBinary parses a binary STL file
func parseBinary(data []byte) (*Model, error) {
	if len(data) < headerSize+4 {
		return nil, fmt.Errorf("%w: %d bytes is too short for a binary header", ErrMalformed, len(data))
	}
	model := NewModel(string(bytes.TrimRight(data[:headerSize], "\x00 ")))

	triangleCount := binary.LittleEndian.Uint32(data[headerSize:])
	want := int64(headerSize+4) + int64(triangleCount)*facetSize
	if int64(len(data)) < want {
		return nil, fmt.Errorf("%w: header announces %d facets, need %d bytes, have %d",
			ErrMalformed, triangleCount, want, len(data))
	}

	reader := bytes.NewReader(data[headerSize+4:])
	model.Triangles = make([]geometry.Triangle, 0, triangleCount)
	for i := uint32(0); i < triangleCount; i++ {
		var facet binaryFacet
		if err := binary.Read(reader, binary.LittleEndian, &facet); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}
		model.AddTriangle(geometry.NewTriangle(
			fromFloat32(facet.Normal),
			fromFloat32(facet.V1),
			fromFloat32(facet.V2),
			fromFloat32(facet.V3),
		))
	}

	return model, nil
}

func fromFloat32(v [3]float32) geometry.Vector3 {
	return geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2]))
}

func toFloat32(v geometry.Vector3) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

func isDegenerate(err error) bool {
	return errors.Is(err, mesh.ErrCoincidentPoints) || errors.Is(err, mesh.ErrDegenerateTriangle)
}
