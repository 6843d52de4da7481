package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/gostitch/pkg/geometry"
	"github.com/philipparndt/gostitch/pkg/mesh"
)

// EdgeInfo contains information about an edge in the mesh
type EdgeInfo struct {
	Start  geometry.Vector3
	End    geometry.Vector3
	Length float64
	Edge   mesh.Edge
	Uses   int
}

// MeasurementResult contains various measurements of a mesh
type MeasurementResult struct {
	BoundingBox         geometry.BoundingBox
	Dimensions          geometry.Vector3
	BoxVolume           float64
	Volume              float64 // enclosed volume, zero unless watertight
	SurfaceArea         float64
	VertexCount         int
	TriangleCount       int
	EdgeCount           int
	BoundaryEdgeCount   int
	InteriorEdgeCount   int
	EulerCharacteristic int
	Watertight          bool
	MinEdgeLength       float64
	MaxEdgeLength       float64
	AvgEdgeLength       float64
	AllEdges            []EdgeInfo
}

// AnalyzeMesh performs comprehensive analysis on a mesh
func AnalyzeMesh(m *mesh.Mesh) *MeasurementResult {
	result := &MeasurementResult{
		BoundingBox:   geometry.BoundingBoxOf(m.Vertices()),
		SurfaceArea:   SurfaceArea(m),
		VertexCount:   m.VertexCount(),
		TriangleCount: m.TriangleCount(),
		Watertight:    m.IsWatertight(),
	}
	result.Dimensions = result.BoundingBox.Size()
	result.BoxVolume = result.BoundingBox.Volume()
	if result.Watertight {
		result.Volume = EnclosedVolume(m)
	}

	boundary := m.BoundaryEdgeIndices()
	interior := m.InteriorEdgeIndices()
	result.BoundaryEdgeCount = len(boundary)
	result.InteriorEdgeCount = len(interior)
	result.AllEdges = make([]EdgeInfo, 0, len(boundary)+len(interior))

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0

	collect := func(edges []mesh.Edge, uses int) {
		for _, e := range edges {
			start, end := m.Vertex(e.A), m.Vertex(e.B)
			length := start.Distance(end)
			result.AllEdges = append(result.AllEdges, EdgeInfo{
				Start:  start,
				End:    end,
				Length: length,
				Edge:   e,
				Uses:   uses,
			})

			totalLength += length
			if length < minLength {
				minLength = length
			}
			if length > maxLength {
				maxLength = length
			}
		}
	}
	collect(boundary, 1)
	collect(interior, 2)

	result.EdgeCount = len(result.AllEdges)
	result.EulerCharacteristic = result.VertexCount - result.EdgeCount + result.TriangleCount
	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}

	return result
}

// SurfaceArea sums the area of every triangle
func SurfaceArea(m *mesh.Mesh) float64 {
	total := 0.0
	for _, f := range m.Faces() {
		total += m.FaceTriangle(f).Area()
	}
	return total
}

// EnclosedVolume sums the signed volumes of the tetrahedra spanned by the
// origin and each triangle. For a watertight mesh with outward normals the
// result is the enclosed volume; inward normals make it negative.
func EnclosedVolume(m *mesh.Mesh) float64 {
	total := 0.0
	for _, f := range m.Faces() {
		t := m.FaceTriangle(f)
		total += t.V1.Dot(t.V2.Cross(t.V3)) / 6.0
	}
	return total
}

// TriangleNormal returns the unit normal of a stored triangle by the
// right-hand rule over its vertex order.
func TriangleNormal(m *mesh.Mesh, f mesh.Face) geometry.Vector3 {
	return m.FaceTriangle(f).Normal
}

// Bristle returns a short segment of the given length standing on the
// triangle along its normal. Its base sits halfway between the longest
// edge and the opposite vertex.
func Bristle(t geometry.Triangle, length float64) geometry.LineSeg {
	longest, opposite := t.LongestEdge()
	along, perp := longest.Resolve(opposite)
	base := longest.Start.Add(along).Add(perp.Mul(0.5))
	return geometry.NewLineSeg(base, base.Add(t.Normal.Mul(length)))
}

// Bristles returns one bristle per triangle, for checking normals by eye
func Bristles(m *mesh.Mesh, length float64) []geometry.LineSeg {
	faces := m.Faces()
	out := make([]geometry.LineSeg, 0, len(faces))
	for _, f := range faces {
		out = append(out, Bristle(m.FaceTriangle(f), length))
	}
	return out
}

// IsOutward reports whether the triangle's normal points away from heart
func IsOutward(m *mesh.Mesh, f mesh.Face, heart geometry.Vector3) bool {
	t := m.FaceTriangle(f)
	away := heart.Direction(t.V1).Add(heart.Direction(t.V2)).Add(heart.Direction(t.V3))
	return away.Dot(t.Normal) > 0
}

// ShortestEdge returns the length of the shortest edge, or zero for an empty mesh
func ShortestEdge(m *mesh.Mesh) float64 {
	edges := FindShortestEdges(AnalyzeMesh(m), 1)
	if len(edges) == 0 {
		return 0
	}
	return edges[0].Length
}

// LongestEdge returns the length of the longest edge, or zero for an empty mesh
func LongestEdge(m *mesh.Mesh) float64 {
	edges := FindLongestEdges(AnalyzeMesh(m), 1)
	if len(edges) == 0 {
		return 0
	}
	return edges[0].Length
}

// FindEdgesByLength finds all edges within a length range
func FindEdgesByLength(result *MeasurementResult, minLength, maxLength float64) []EdgeInfo {
	var edges []EdgeInfo
	for _, edge := range result.AllEdges {
		if edge.Length >= minLength && edge.Length <= maxLength {
			edges = append(edges, edge)
		}
	}
	return edges
}

// FindLongestEdges returns the N longest edges in the mesh
func FindLongestEdges(result *MeasurementResult, count int) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.AllEdges))
	copy(edges, result.AllEdges)

	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].Length > edges[j].Length
	})

	if count > len(edges) {
		count = len(edges)
	}

	return edges[:count]
}

// FindShortestEdges returns the N shortest edges in the mesh
func FindShortestEdges(result *MeasurementResult, count int) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.AllEdges))
	copy(edges, result.AllEdges)

	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].Length < edges[j].Length
	})

	if count > len(edges) {
		count = len(edges)
	}

	return edges[:count]
}

// FindNearestVertex finds the vertex in the mesh nearest to a given point
func FindNearestVertex(m *mesh.Mesh, point geometry.Vector3) (int, float64) {
	nearest := -1
	minDistance := math.MaxFloat64

	for ix, vertex := range m.Vertices() {
		if distance := point.Distance(vertex); distance < minDistance {
			minDistance = distance
			nearest = ix
		}
	}

	return nearest, minDistance
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
