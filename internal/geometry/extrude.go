package geometry

import "github.com/paulmach/orb"

// Extrudes a footprint ring between minZ and maxZ into a closed triangle soup:
// a bottom face, a top face and two triangles per side.
func Extrude(footprint orb.Ring, minZ, maxZ float64) []Triangle {
	pts, faces := Triangulate(footprint)
	n := len(pts)
	if n < 3 {
		return nil
	}

	low := func(i int) Coordinate { return Coordinate{X: pts[i][0], Y: pts[i][1], Z: minZ} }
	high := func(i int) Coordinate { return Coordinate{X: pts[i][0], Y: pts[i][1], Z: maxZ} }

	triangles := make([]Triangle, 0, 2*len(faces)+2*n)
	for _, f := range faces {
		triangles = append(triangles, Triangle{low(f[2]), low(f[1]), low(f[0])})
		triangles = append(triangles, Triangle{high(f[0]), high(f[1]), high(f[2])})
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		triangles = append(triangles, Triangle{low(i), low(j), high(j)})
		triangles = append(triangles, Triangle{low(i), high(j), high(i)})
	}
	return triangles
}

// Returns the 12 triangles of the given box
func BoxTriangles(bbox *BoundingBox) []Triangle {
	footprint := orb.Ring{
		{bbox.Xmin, bbox.Ymin},
		{bbox.Xmax, bbox.Ymin},
		{bbox.Xmax, bbox.Ymax},
		{bbox.Xmin, bbox.Ymax},
		{bbox.Xmin, bbox.Ymin},
	}
	return Extrude(footprint, bbox.Zmin, bbox.Zmax)
}

// Returns the XY corners of the box footprint
func FootprintCorners(bbox *BoundingBox) []orb.Point {
	return []orb.Point{
		{bbox.Xmin, bbox.Ymin},
		{bbox.Xmax, bbox.Ymin},
		{bbox.Xmax, bbox.Ymax},
		{bbox.Xmin, bbox.Ymax},
	}
}
