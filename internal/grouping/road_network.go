package grouping

import (
	"fmt"
	"math"
	"sort"

	"github.com/ecopia-map/city_tiler/internal/data"
	"github.com/golang/glog"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Faces smaller than this are dropped
const minFaceArea = 1e-9

// Groups features by the faces enclosed by a line network, such as city blocks enclosed
// by roads. Vertices closer than Tolerance are merged.
type RoadNetworkStrategy struct {
	Roads     []orb.LineString
	Tolerance float64
}

func NewRoadNetworkStrategy(roads []orb.LineString, tolerance float64) *RoadNetworkStrategy {
	return &RoadNetworkStrategy{Roads: roads, Tolerance: tolerance}
}

func (s *RoadNetworkStrategy) Group(features *data.FeatureList) ([]*Group, error) {
	faces := s.Faces()
	glog.V(1).Infof("road network of %d lines encloses %d faces", len(s.Roads), len(faces))
	return NewPolygonStrategy(faces).Group(features)
}

// One direction of a network edge
type halfEdge struct {
	from, to int
	twin     int
	visited  bool
}

type roadGraph struct {
	tolerance float64
	nodes     []orb.Point
	index     map[string]int
	edges     map[[2]int]bool
	halfEdges []halfEdge
	outgoing  [][]int // half edges leaving each node, counter clockwise
}

// Returns the bounded faces of the planar graph made by the roads, as counter clockwise
// polygons in discovery order
func (s *RoadNetworkStrategy) Faces() []orb.Polygon {
	graph := &roadGraph{
		tolerance: s.Tolerance,
		index:     make(map[string]int),
		edges:     make(map[[2]int]bool),
	}
	for _, seg := range nodeSegments(s.segments(), s.Tolerance) {
		graph.addEdge(seg[0], seg[1])
	}
	graph.sortOutgoing()
	return graph.faces()
}

type segment [2]orb.Point

func (s *RoadNetworkStrategy) segments() []segment {
	var segments []segment
	for _, road := range s.Roads {
		for i := 1; i < len(road); i++ {
			segments = append(segments, segment{road[i-1], road[i]})
		}
	}
	return segments
}

// Splits the segments at every point where they cross or touch another one, so that
// crossing roads share a node
func nodeSegments(segments []segment, tolerance float64) []segment {
	splits := make([][]float64, len(segments))
	bounds := make([]orb.Bound, len(segments))
	for i, seg := range segments {
		bounds[i] = orb.MultiPoint{seg[0], seg[1]}.Bound().Pad(tolerance)
	}

	for i := range segments {
		for j := i + 1; j < len(segments); j++ {
			if !bounds[i].Intersects(bounds[j]) {
				continue
			}
			ti, tj := intersections(segments[i], segments[j], tolerance)
			splits[i] = append(splits[i], ti...)
			splits[j] = append(splits[j], tj...)
		}
	}

	var noded []segment
	for i, seg := range segments {
		params := append([]float64{0, 1}, splits[i]...)
		sort.Float64s(params)
		prev := seg[0]
		for _, t := range params[1:] {
			p := lerp(seg, t)
			if p != prev {
				noded = append(noded, segment{prev, p})
			}
			prev = p
		}
	}
	return noded
}

func lerp(seg segment, t float64) orb.Point {
	if t <= 0 {
		return seg[0]
	}
	if t >= 1 {
		return seg[1]
	}
	return orb.Point{seg[0][0] + t*(seg[1][0]-seg[0][0]), seg[0][1] + t*(seg[1][1]-seg[0][1])}
}

// Parameters along a and b of the points they share. Parallel segments share the
// endpoints of one lying on the other.
func intersections(a, b segment, tolerance float64) ([]float64, []float64) {
	r := orb.Point{a[1][0] - a[0][0], a[1][1] - a[0][1]}
	s := orb.Point{b[1][0] - b[0][0], b[1][1] - b[0][1]}
	qp := orb.Point{b[0][0] - a[0][0], b[0][1] - a[0][1]}
	denominator := cross(r, s)

	if math.Abs(denominator) <= 1e-12*math.Max(norm2(r), norm2(s)) {
		if math.Abs(cross(qp, r)) > tolerance*math.Sqrt(norm2(r)) {
			return nil, nil
		}
		var ta, tb []float64
		for _, p := range b {
			if t, ok := project(a, p, tolerance); ok {
				ta = append(ta, t)
			}
		}
		for _, p := range a {
			if t, ok := project(b, p, tolerance); ok {
				tb = append(tb, t)
			}
		}
		return ta, tb
	}

	t := cross(qp, s) / denominator
	u := cross(qp, r) / denominator
	epsA, epsB := relative(tolerance, r), relative(tolerance, s)
	if t < -epsA || t > 1+epsA || u < -epsB || u > 1+epsB {
		return nil, nil
	}
	return []float64{clamp(t)}, []float64{clamp(u)}
}

// Parameter of p along seg when p lies on it
func project(seg segment, p orb.Point, tolerance float64) (float64, bool) {
	d := orb.Point{seg[1][0] - seg[0][0], seg[1][1] - seg[0][1]}
	length2 := norm2(d)
	if length2 == 0 {
		return 0, false
	}
	t := ((p[0]-seg[0][0])*d[0] + (p[1]-seg[0][1])*d[1]) / length2
	eps := relative(tolerance, d)
	if t < -eps || t > 1+eps {
		return 0, false
	}
	return clamp(t), true
}

func cross(a, b orb.Point) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

func norm2(a orb.Point) float64 {
	return a[0]*a[0] + a[1]*a[1]
}

// tolerance as a fraction of the length of d
func relative(tolerance float64, d orb.Point) float64 {
	length := math.Sqrt(norm2(d))
	if length == 0 {
		return 0
	}
	return tolerance / length
}

func clamp(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// Key of the node a point snaps to
func (g *roadGraph) key(p orb.Point) string {
	if g.tolerance > 0 {
		return fmt.Sprintf("%d,%d", int64(math.Round(p[0]/g.tolerance)), int64(math.Round(p[1]/g.tolerance)))
	}
	return fmt.Sprintf("%.6f,%.6f", p[0], p[1])
}

func (g *roadGraph) node(p orb.Point) int {
	k := g.key(p)
	if id, ok := g.index[k]; ok {
		return id
	}
	id := len(g.nodes)
	g.index[k] = id
	g.nodes = append(g.nodes, p)
	g.outgoing = append(g.outgoing, nil)
	return id
}

func (g *roadGraph) addEdge(a, b orb.Point) {
	u, v := g.node(a), g.node(b)
	if u == v {
		return
	}
	key := [2]int{u, v}
	if u > v {
		key = [2]int{v, u}
	}
	if g.edges[key] {
		return
	}
	g.edges[key] = true

	h := len(g.halfEdges)
	g.halfEdges = append(g.halfEdges,
		halfEdge{from: u, to: v, twin: h + 1},
		halfEdge{from: v, to: u, twin: h},
	)
	g.outgoing[u] = append(g.outgoing[u], h)
	g.outgoing[v] = append(g.outgoing[v], h+1)
}

func (g *roadGraph) angle(h int) float64 {
	from, to := g.nodes[g.halfEdges[h].from], g.nodes[g.halfEdges[h].to]
	return math.Atan2(to[1]-from[1], to[0]-from[0])
}

func (g *roadGraph) sortOutgoing() {
	for _, out := range g.outgoing {
		sort.SliceStable(out, func(i, j int) bool { return g.angle(out[i]) < g.angle(out[j]) })
	}
}

// The half edge following h on the face at its left: the one turning clockwise next
// from the twin of h around the head node
func (g *roadGraph) next(h int) int {
	twin := g.halfEdges[h].twin
	out := g.outgoing[g.halfEdges[h].to]
	for i, candidate := range out {
		if candidate == twin {
			return out[(i-1+len(out))%len(out)]
		}
	}
	return twin
}

func (g *roadGraph) faces() []orb.Polygon {
	var faces []orb.Polygon
	for start := range g.halfEdges {
		if g.halfEdges[start].visited {
			continue
		}

		var ring orb.Ring
		h := start
		for steps := 0; !g.halfEdges[h].visited && steps <= len(g.halfEdges); steps++ {
			g.halfEdges[h].visited = true
			ring = append(ring, g.nodes[g.halfEdges[h].from])
			h = g.next(h)
		}
		if h != start || len(ring) < 3 {
			continue
		}
		ring = append(ring, ring[0])

		// the unbounded face and dangling walks wind clockwise or enclose nothing
		if ring.Orientation() != orb.CCW || math.Abs(planar.Area(ring)) <= minFaceArea {
			continue
		}
		faces = append(faces, orb.Polygon{ring})
	}
	return faces
}
