// Package preview renders meshes to shaded images. Triangles seen from
// behind are drawn in red, which makes reversed windings easy to spot, and
// boundary edges can be overlaid.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/philipparndt/gostitch/pkg/geometry"
	"github.com/philipparndt/gostitch/pkg/mesh"
)

// Colours used in rendered images
var (
	Background = color.RGBA{30, 30, 34, 255}
	FrontColor = color.RGBA{220, 220, 220, 255}
	BackColor  = color.RGBA{220, 40, 40, 255}
	EdgeColor  = color.RGBA{250, 210, 40, 255}
)

// Options control a render. Angles are in degrees.
type Options struct {
	Width     int
	Height    int
	Elevation float64
	Azimuth   float64
	Boundary  bool
}

// DefaultOptions returns a 800x600 view from slightly above
func DefaultOptions() Options {
	return Options{Width: 800, Height: 600, Elevation: 25, Azimuth: 30, Boundary: true}
}

// Stats counts what a render drew
type Stats struct {
	FrontFacing int
	BackFacing  int
	Boundary    int
}

// Render draws m with flat shading lit from the camera
func Render(m *mesh.Mesh, opts Options) (*image.RGBA, Stats, error) {
	var stats Stats
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, stats, fmt.Errorf("image size must be positive, got %dx%d", opts.Width, opts.Height)
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	for ix := 0; ix < len(img.Pix); ix += 4 {
		img.Pix[ix], img.Pix[ix+1], img.Pix[ix+2], img.Pix[ix+3] = Background.R, Background.G, Background.B, Background.A
	}
	zbuffer := make([]float64, opts.Width*opts.Height)
	for ix := range zbuffer {
		zbuffer[ix] = math.Inf(1)
	}

	cam := NewCamera(geometry.BoundingBoxOf(m.Vertices()))
	cam.Orbit(opts.Elevation*math.Pi/180, opts.Azimuth*math.Pi/180)
	w, h := float64(opts.Width), float64(opts.Height)

	for _, f := range m.Faces() {
		t := m.FaceTriangle(f)
		normal := t.CalculateNormal()
		toCamera := cam.Position.Sub(t.Center()).Normalize()
		facing := normal.Dot(toCamera)

		base := FrontColor
		if facing < 0 {
			base = BackColor
			stats.BackFacing++
		} else {
			stats.FrontFacing++
		}

		var p [3][3]float64
		for k, v := range [3]geometry.Vector3{t.V1, t.V2, t.V3} {
			p[k][0], p[k][1], p[k][2] = cam.Project(v, w, h)
		}
		fillTriangle(img, zbuffer, p, shade(base, math.Abs(facing)))
	}

	if opts.Boundary {
		for _, seg := range m.BoundaryEdges() {
			x1, y1, _ := cam.Project(seg.Start, w, h)
			x2, y2, _ := cam.Project(seg.End, w, h)
			drawLine(img, int(x1), int(y1), int(x2), int(y2), EdgeColor)
			stats.Boundary++
		}
	}
	return img, stats, nil
}

// shade dims col for light arriving at a grazing angle
func shade(col color.RGBA, lambert float64) color.RGBA {
	k := 0.3 + 0.7*lambert
	return color.RGBA{
		R: uint8(float64(col.R) * k),
		G: uint8(float64(col.G) * k),
		B: uint8(float64(col.B) * k),
		A: col.A,
	}
}

// WritePNG renders m and saves the image to filename
func WritePNG(filename string, m *mesh.Mesh, opts Options) (Stats, error) {
	img, stats, err := Render(m, opts)
	if err != nil {
		return stats, err
	}

	file, err := os.Create(filename)
	if err != nil {
		return stats, fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return stats, fmt.Errorf("failed to encode %s: %w", filename, err)
	}
	return stats, file.Close()
}
