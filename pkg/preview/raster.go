package preview

import (
	"image"
	"image/color"
	"math"
)

// fillTriangle scan-converts a projected triangle, keeping the nearest
// depth per pixel in zbuffer.
func fillTriangle(img *image.RGBA, zbuffer []float64, p [3][3]float64, col color.RGBA) {
	// sort by screen y
	if p[0][1] > p[1][1] {
		p[0], p[1] = p[1], p[0]
	}
	if p[1][1] > p[2][1] {
		p[1], p[2] = p[2], p[1]
	}
	if p[0][1] > p[1][1] {
		p[0], p[1] = p[1], p[0]
	}

	bounds := img.Bounds()
	width := bounds.Max.X
	edges := [3][2]int{{0, 1}, {1, 2}, {0, 2}}

	yStart := int(math.Max(0, math.Ceil(p[0][1])))
	yEnd := int(math.Min(float64(bounds.Max.Y-1), p[2][1]))
	for y := yStart; y <= yEnd; y++ {
		fy := float64(y)

		var xs, zs [2]float64
		found := 0
		for _, e := range edges {
			a, b := p[e[0]], p[e[1]]
			if a[1] == b[1] || fy < a[1] || fy > b[1] || found == 2 {
				continue
			}
			t := (fy - a[1]) / (b[1] - a[1])
			xs[found] = a[0] + t*(b[0]-a[0])
			zs[found] = a[2] + t*(b[2]-a[2])
			found++
		}
		if found < 2 {
			continue
		}
		if xs[0] > xs[1] {
			xs[0], xs[1] = xs[1], xs[0]
			zs[0], zs[1] = zs[1], zs[0]
		}

		xFrom := int(math.Max(0, math.Ceil(xs[0])))
		xTo := int(math.Min(float64(bounds.Max.X-1), xs[1]))
		for x := xFrom; x <= xTo; x++ {
			t := 0.0
			if xs[1] != xs[0] {
				t = (float64(x) - xs[0]) / (xs[1] - xs[0])
			}
			z := zs[0] + t*(zs[1]-zs[0])

			idx := y*width + x
			if z < zbuffer[idx] {
				zbuffer[idx] = z
				img.SetRGBA(x, y, col)
			}
		}
	}
}

// drawLine draws a line with Bresenham's algorithm, clipped to the image
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := img.Bounds()

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		if x1 >= 0 && x1 < bounds.Max.X && y1 >= 0 && y1 < bounds.Max.Y {
			img.SetRGBA(x1, y1, col)
		}
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
