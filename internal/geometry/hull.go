package geometry

import (
	"sort"

	"github.com/paulmach/orb"
)

// Computes the convex hull of the points with the monotone chain algorithm.
// The result is a closed counter clockwise ring, or nil when fewer than 3 non collinear points are given.
func ConvexHull(points []orb.Point) orb.Ring {
	pts := make([]orb.Point, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i][0] != pts[j][0] {
			return pts[i][0] < pts[j][0]
		}
		return pts[i][1] < pts[j][1]
	})
	pts = dedupSorted(pts)
	if len(pts) < 3 {
		return nil
	}

	hull := make([]orb.Point, 0, 2*len(pts))
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	// the last point equals the first one, which closes the ring
	if len(hull) < 4 {
		return nil
	}
	return orb.Ring(hull)
}

func dedupSorted(pts []orb.Point) []orb.Point {
	if len(pts) == 0 {
		return pts
	}
	out := pts[:1]
	for _, p := range pts[1:] {
		if !p.Equal(out[len(out)-1]) {
			out = append(out, p)
		}
	}
	return out
}

// z component of (b-a) x (c-a)
func cross(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

// Returns the ring without its closing point, oriented counter clockwise
func openCCW(ring orb.Ring) []orb.Point {
	pts := []orb.Point(ring)
	if len(pts) > 1 && pts[0].Equal(pts[len(pts)-1]) {
		pts = pts[:len(pts)-1]
	}
	out := make([]orb.Point, len(pts))
	copy(out, pts)
	if signedArea(out) < 0 {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// Triangulates a simple polygon ring by ear clipping. Returned triangles index
// the vertices of the open counter clockwise ring also returned.
func Triangulate(ring orb.Ring) ([]orb.Point, [][3]int) {
	pts := openCCW(ring)
	n := len(pts)
	if n < 3 {
		return pts, nil
	}

	remaining := make([]int, n)
	for i := range remaining {
		remaining[i] = i
	}

	triangles := make([][3]int, 0, n-2)
	for guard := 0; len(remaining) > 3 && guard < n*n; guard++ {
		clipped := false
		for i := range remaining {
			prev := remaining[(i+len(remaining)-1)%len(remaining)]
			cur := remaining[i]
			next := remaining[(i+1)%len(remaining)]
			if !isEar(pts, remaining, prev, cur, next) {
				continue
			}
			triangles = append(triangles, [3]int{prev, cur, next})
			remaining = append(remaining[:i], remaining[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			// self intersecting or degenerate input, fall back to a fan on what is left
			break
		}
	}
	for i := 1; i+1 < len(remaining); i++ {
		triangles = append(triangles, [3]int{remaining[0], remaining[i], remaining[i+1]})
	}
	return pts, triangles
}

func isEar(pts []orb.Point, remaining []int, prev, cur, next int) bool {
	a, b, c := pts[prev], pts[cur], pts[next]
	if cross(a, b, c) <= 0 {
		return false
	}
	for _, idx := range remaining {
		if idx == prev || idx == cur || idx == next {
			continue
		}
		p := pts[idx]
		if cross(a, b, p) >= 0 && cross(b, c, p) >= 0 && cross(c, a, p) >= 0 {
			return false
		}
	}
	return true
}

// Shoelace area of an open ring, positive when counter clockwise
func signedArea(pts []orb.Point) float64 {
	area := 0.0
	for i := range pts {
		j := (i + 1) % len(pts)
		area += pts[i][0]*pts[j][1] - pts[j][0]*pts[i][1]
	}
	return area / 2
}
