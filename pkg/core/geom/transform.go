package geom

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
	"github.com/tdewolff/canvas"

	"github.com/matzehuels/maplabel/pkg/errors"
)

// Projection converts between a layer's spatial reference and the map's.
// Backward maps layer coordinates into map coordinates; Forward is its
// inverse.
type Projection interface {
	Forward(p orb.Point) orb.Point
	Backward(p orb.Point) orb.Point
}

// Identity is the projection used when layer and map share a reference.
type Identity struct{}

func (Identity) Forward(p orb.Point) orb.Point  { return p }
func (Identity) Backward(p orb.Point) orb.Point { return p }

// WebMercator projects WGS84 layer data (lon, lat) onto a spherical
// mercator map (meters).
type WebMercator struct{}

func (WebMercator) Backward(p orb.Point) orb.Point { return project.WGS84.ToMercator(p) }
func (WebMercator) Forward(p orb.Point) orb.Point  { return project.Mercator.ToWGS84(p) }

// ProjectionFor returns the projection that brings data in layerSRS into
// mapSRS. Supported references are "EPSG:4326" and "EPSG:3857"; an empty
// reference means "same as the map".
func ProjectionFor(layerSRS, mapSRS string) (Projection, error) {
	if layerSRS == "" || layerSRS == mapSRS {
		return Identity{}, nil
	}
	switch {
	case layerSRS == SRSWGS84 && mapSRS == SRSWebMercator:
		return WebMercator{}, nil
	case layerSRS == SRSWebMercator && mapSRS == SRSWGS84:
		return inverse{WebMercator{}}, nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "no projection from %s to %s", layerSRS, mapSRS)
}

// Spatial reference identifiers understood by [ProjectionFor].
const (
	SRSWGS84       = "EPSG:4326"
	SRSWebMercator = "EPSG:3857"
)

type inverse struct{ p Projection }

func (i inverse) Forward(p orb.Point) orb.Point  { return i.p.Backward(p) }
func (i inverse) Backward(p orb.Point) orb.Point { return i.p.Forward(p) }

// ViewTransform maps map coordinates (y up) onto a device raster of the given
// size (y down) so that the map extent fills the raster.
type ViewTransform struct {
	width, height float64
	extent        Envelope
	m, inv        canvas.Matrix
}

// NewViewTransform builds the transform for a width×height device showing
// extent. The extent must have a positive area.
func NewViewTransform(width, height float64, extent Envelope) (*ViewTransform, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "view size must be positive, got %gx%g", width, height)
	}
	if extent.Width() <= 0 || extent.Height() <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "map extent %s is empty", extent)
	}
	sx := width / extent.Width()
	sy := height / extent.Height()
	m := canvas.Matrix{
		{sx, 0, -extent.MinX * sx},
		{0, -sy, extent.MaxY * sy},
	}
	return &ViewTransform{
		width:  width,
		height: height,
		extent: extent,
		m:      m,
		inv:    m.Inv(),
	}, nil
}

// Forward maps a map coordinate to device space.
func (v *ViewTransform) Forward(p orb.Point) orb.Point {
	q := v.m.Dot(canvas.Point{X: p[0], Y: p[1]})
	return orb.Point{q.X, q.Y}
}

// Backward maps a device coordinate back to map space.
func (v *ViewTransform) Backward(p orb.Point) orb.Point {
	q := v.inv.Dot(canvas.Point{X: p[0], Y: p[1]})
	return orb.Point{q.X, q.Y}
}

// Extent returns the device-space rectangle covered by the view.
func (v *ViewTransform) Extent() Envelope {
	return Envelope{MaxX: v.width, MaxY: v.height}
}

// MapExtent returns the map-space rectangle the view shows.
func (v *ViewTransform) MapExtent() Envelope { return v.extent }

// Size returns the device width and height.
func (v *ViewTransform) Size() (float64, float64) { return v.width, v.height }
