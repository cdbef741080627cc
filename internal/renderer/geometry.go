package renderer

import (
	"image"
	"math"
)

type point struct{ X, Y float64 }

type polygon []point

// roundedRect approximates a rounded rectangle as a clockwise polygon
// (in screen coordinates, y down).
func roundedRect(x, y, w, h, r float64) polygon {
	if w <= 0 || h <= 0 {
		return nil
	}
	r = math.Max(0, math.Min(r, math.Min(w, h)/2))
	if r < 0.5 {
		return polygon{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	}

	segments := int(math.Min(16, math.Max(2, r/2)))
	corners := []struct {
		cx, cy, start float64
	}{
		{x + w - r, y + r, -math.Pi / 2},
		{x + w - r, y + h - r, 0},
		{x + r, y + h - r, math.Pi / 2},
		{x + r, y + r, math.Pi},
	}

	poly := make(polygon, 0, 4*(segments+1))
	for _, c := range corners {
		for i := 0; i <= segments; i++ {
			a := c.start + float64(i)/float64(segments)*math.Pi/2
			poly = append(poly, point{c.cx + r*math.Cos(a), c.cy + r*math.Sin(a)})
		}
	}
	return poly
}

func (p polygon) reversed() polygon {
	out := make(polygon, len(p))
	for i, pt := range p {
		out[len(p)-1-i] = pt
	}
	return out
}

// clip cuts a convex polygon to r (Sutherland-Hodgman).
func (p polygon) clip(r image.Rectangle) polygon {
	minX, minY := float64(r.Min.X), float64(r.Min.Y)
	maxX, maxY := float64(r.Max.X), float64(r.Max.Y)

	out := p
	out = clipEdge(out, func(q point) bool { return q.X >= minX }, func(a, b point) point { return atX(a, b, minX) })
	out = clipEdge(out, func(q point) bool { return q.X <= maxX }, func(a, b point) point { return atX(a, b, maxX) })
	out = clipEdge(out, func(q point) bool { return q.Y >= minY }, func(a, b point) point { return atY(a, b, minY) })
	out = clipEdge(out, func(q point) bool { return q.Y <= maxY }, func(a, b point) point { return atY(a, b, maxY) })
	return out
}

func clipEdge(p polygon, inside func(point) bool, cross func(a, b point) point) polygon {
	if len(p) == 0 {
		return nil
	}
	out := make(polygon, 0, len(p)+4)
	prev := p[len(p)-1]
	for _, cur := range p {
		switch {
		case inside(cur) && inside(prev):
			out = append(out, cur)
		case inside(cur):
			out = append(out, cross(prev, cur), cur)
		case inside(prev):
			out = append(out, cross(prev, cur))
		}
		prev = cur
	}
	return out
}

func atX(a, b point, x float64) point {
	t := (x - a.X) / (b.X - a.X)
	return point{x, a.Y + t*(b.Y-a.Y)}
}

func atY(a, b point, y float64) point {
	t := (y - a.Y) / (b.Y - a.Y)
	return point{a.X + t*(b.X-a.X), y}
}

func (p polygon) bounds() image.Rectangle {
	if len(p) == 0 {
		return image.Rectangle{}
	}
	minX, minY := p[0].X, p[0].Y
	maxX, maxY := minX, minY
	for _, q := range p[1:] {
		minX, maxX = math.Min(minX, q.X), math.Max(maxX, q.X)
		minY, maxY = math.Min(minY, q.Y), math.Max(maxY, q.Y)
	}
	return image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
}
