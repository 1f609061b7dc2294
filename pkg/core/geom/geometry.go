package geom

import (
	"iter"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/matzehuels/maplabel/pkg/errors"
)

// Type tags the kind of a [Geometry].
type Type int

const (
	Point Type = iota
	LineString
	Polygon
)

func (t Type) String() string {
	switch t {
	case Point:
		return "Point"
	case LineString:
		return "LineString"
	case Polygon:
		return "Polygon"
	default:
		return "Unknown"
	}
}

// Geometry is a read-only view over a single-part orb geometry. It borrows
// the underlying vertex slice; the caller must keep it alive and unmodified
// for as long as the Geometry is in use.
type Geometry struct {
	typ      Type
	vertices []orb.Point
	source   orb.Geometry
}

// FromOrb wraps a single-part orb geometry. Polygons are represented by
// their outer ring. Geometries without vertices are rejected.
func FromOrb(g orb.Geometry) (Geometry, error) {
	switch v := g.(type) {
	case orb.Point:
		return Geometry{typ: Point, vertices: []orb.Point{v}, source: v}, nil
	case orb.LineString:
		if len(v) == 0 {
			return Geometry{}, errors.New(errors.ErrCodeInvalidGeometry, "line string has no vertices")
		}
		return Geometry{typ: LineString, vertices: v, source: v}, nil
	case orb.Ring:
		if len(v) == 0 {
			return Geometry{}, errors.New(errors.ErrCodeInvalidGeometry, "ring has no vertices")
		}
		return Geometry{typ: Polygon, vertices: v, source: orb.Polygon{v}}, nil
	case orb.Polygon:
		if len(v) == 0 || len(v[0]) == 0 {
			return Geometry{}, errors.New(errors.ErrCodeInvalidGeometry, "polygon has no outer ring")
		}
		return Geometry{typ: Polygon, vertices: v[0], source: v}, nil
	case nil:
		return Geometry{}, errors.New(errors.ErrCodeInvalidGeometry, "nil geometry")
	default:
		return Geometry{}, errors.New(errors.ErrCodeUnsupported, "unsupported geometry type %s", g.GeoJSONType())
	}
}

// Split breaks a possibly multi-part orb geometry into single-part
// geometries. Empty parts are dropped.
func Split(g orb.Geometry) ([]Geometry, error) {
	var parts []orb.Geometry
	switch v := g.(type) {
	case orb.MultiPoint:
		for _, p := range v {
			parts = append(parts, p)
		}
	case orb.MultiLineString:
		for _, ls := range v {
			parts = append(parts, ls)
		}
	case orb.MultiPolygon:
		for _, p := range v {
			parts = append(parts, p)
		}
	case orb.Collection:
		var out []Geometry
		for _, c := range v {
			sub, err := Split(c)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
		}
		return out, nil
	default:
		parts = append(parts, g)
	}

	out := make([]Geometry, 0, len(parts))
	for _, p := range parts {
		geo, err := FromOrb(p)
		if errors.Is(err, errors.ErrCodeInvalidGeometry) && len(parts) > 1 {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, geo)
	}
	return out, nil
}

// Type returns the geometry's type tag.
func (g Geometry) Type() Type { return g.typ }

// NumPoints returns the number of vertices.
func (g Geometry) NumPoints() int { return len(g.vertices) }

// Vertex returns the i-th vertex.
func (g Geometry) Vertex(i int) orb.Point { return g.vertices[i] }

// Vertices iterates the vertices from the first one. Each call rewinds.
func (g Geometry) Vertices() iter.Seq[orb.Point] {
	return func(yield func(orb.Point) bool) {
		for _, p := range g.vertices {
			if !yield(p) {
				return
			}
		}
	}
}

// Bound returns the bounding box of the vertices in layer coordinates.
func (g Geometry) Bound() orb.Bound {
	if g.source == nil {
		return orb.Bound{}
	}
	return g.source.Bound()
}

// LabelPosition returns the representative anchor of the geometry in layer
// coordinates. Points anchor on themselves, polygons on their area centroid
// (or the nearest vertex when the centroid falls outside the shape, as with
// concave rings), and line strings on the vertex-weighted midpoint of their
// length.
func (g Geometry) LabelPosition() orb.Point {
	switch g.typ {
	case Point:
		return g.vertices[0]
	case Polygon:
		poly, _ := g.source.(orb.Polygon)
		center, _ := planar.CentroidArea(poly)
		if planar.PolygonContains(poly, center) {
			return center
		}
		return nearestVertex(g.vertices, center)
	default:
		return midpoint(g.vertices)
	}
}

func nearestVertex(pts []orb.Point, target orb.Point) orb.Point {
	best := pts[0]
	bestDist := planar.DistanceSquared(best, target)
	for _, p := range pts[1:] {
		if d := planar.DistanceSquared(p, target); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}

func midpoint(pts []orb.Point) orb.Point {
	half := planar.Length(orb.LineString(pts)) / 2
	var walked float64
	for i := 1; i < len(pts); i++ {
		seg := planar.Distance(pts[i-1], pts[i])
		if seg > 0 && walked+seg >= half {
			t := (half - walked) / seg
			return orb.Point{
				pts[i-1][0] + (pts[i][0]-pts[i-1][0])*t,
				pts[i-1][1] + (pts[i][1]-pts[i-1][1])*t,
			}
		}
		walked += seg
	}
	return pts[0]
}
