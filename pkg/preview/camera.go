package preview

import (
	"math"

	"github.com/philipparndt/gostitch/pkg/geometry"
)

// Camera is a perspective camera orbiting a target point
type Camera struct {
	Position  geometry.Vector3
	Target    geometry.Vector3
	Up        geometry.Vector3
	FOV       float64 // radians
	Distance  float64
	Elevation float64 // radians above the XZ plane
	Azimuth   float64 // radians around the Y axis
}

// NewCamera creates a camera looking down -Z at the centre of bbox, far
// enough back to see all of it.
func NewCamera(bbox geometry.BoundingBox) *Camera {
	center := bbox.Center()
	size := bbox.Size()
	distance := math.Max(size.X, math.Max(size.Y, size.Z)) * 2.0
	if distance == 0 {
		distance = 1
	}

	c := &Camera{
		Target:   center,
		Up:       geometry.NewVector3(0, 1, 0),
		FOV:      math.Pi / 4,
		Distance: distance,
	}
	c.UpdatePosition()
	return c
}

// UpdatePosition places the camera from its orbit angles
func (c *Camera) UpdatePosition() {
	x := c.Distance * math.Cos(c.Elevation) * math.Sin(c.Azimuth)
	y := c.Distance * math.Sin(c.Elevation)
	z := c.Distance * math.Cos(c.Elevation) * math.Cos(c.Azimuth)

	c.Position = c.Target.Add(geometry.NewVector3(x, y, z))
}

// Orbit turns the camera around its target. Elevation stops short of the
// poles where the up vector would be undefined.
func (c *Camera) Orbit(elevation, azimuth float64) {
	maxAngle := math.Pi/2 - 0.1
	c.Elevation = math.Max(-maxAngle, math.Min(maxAngle, elevation))
	c.Azimuth = azimuth
	c.UpdatePosition()
}

// Project maps a point to screen coordinates and its depth along the view
func (c *Camera) Project(point geometry.Vector3, width, height float64) (float64, float64, float64) {
	forward := c.Target.Sub(c.Position).Normalize()
	right := forward.Cross(c.Up).Normalize()
	up := right.Cross(forward).Normalize()

	relative := point.Sub(c.Position)
	x := relative.Dot(right)
	y := relative.Dot(up)
	z := relative.Dot(forward)

	if z <= 0.01 {
		z = 0.01
	}

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	screenX := (x/(z*fovScale*aspect))*(width/2) + (width / 2)
	screenY := (-y/(z*fovScale))*(height/2) + (height / 2)

	return screenX, screenY, z
}
