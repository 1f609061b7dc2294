package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/matzehuels/maplabel/pkg/core/geom"
	"github.com/matzehuels/maplabel/pkg/errors"
)

// Feature is one input feature, split into single-part geometries.
type Feature struct {
	ID         string
	Parts      []geom.Geometry
	Properties map[string]any
}

// Collection is a decoded source.
type Collection struct {
	Features []Feature
	// Skipped counts features dropped for lacking a usable geometry.
	Skipped int

	bound orb.Bound
	empty bool
}

// Bound returns the bounding box of all parts in source coordinates. It is
// the zero bound when the collection has no parts.
func (c *Collection) Bound() orb.Bound {
	if c.empty {
		return orb.Bound{}
	}
	return c.bound
}

// NumParts returns the total number of labelable parts.
func (c *Collection) NumParts() int {
	var n int
	for _, f := range c.Features {
		n += len(f.Parts)
	}
	return n
}

// ReadGeoJSON decodes a GeoJSON document from r. It does not close r.
func ReadGeoJSON(r io.Reader) (*Collection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "read")
	}

	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "decode")
	}

	var features []*geojson.Feature
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "decode feature collection")
		}
		features = fc.Features
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "decode feature")
		}
		features = []*geojson.Feature{f}
	case "":
		return nil, errors.New(errors.ErrCodeInvalidSource, "missing GeoJSON type")
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "decode geometry")
		}
		features = []*geojson.Feature{geojson.NewFeature(g.Geometry())}
	}

	c := &Collection{empty: true}
	for i, f := range features {
		c.add(i, f)
	}
	return c, nil
}

func (c *Collection) add(i int, f *geojson.Feature) {
	if f == nil || f.Geometry == nil {
		c.Skipped++
		return
	}
	parts, err := geom.Split(f.Geometry)
	if err != nil || len(parts) == 0 {
		c.Skipped++
		return
	}

	feat := Feature{
		ID:         featureID(i, f),
		Parts:      parts,
		Properties: map[string]any(f.Properties),
	}
	if feat.Properties == nil {
		feat.Properties = map[string]any{}
	}
	for _, p := range parts {
		if c.empty {
			c.bound, c.empty = p.Bound(), false
			continue
		}
		c.bound = c.bound.Union(p.Bound())
	}
	c.Features = append(c.Features, feat)
}

func featureID(i int, f *geojson.Feature) string {
	if f.ID != nil {
		return fmt.Sprint(f.ID)
	}
	return fmt.Sprintf("#%d", i)
}

// Load reads and decodes the GeoJSON source src, a file path or URL.
func Load(ctx context.Context, src string) (*Collection, error) {
	data, err := Read(ctx, src)
	if err != nil {
		return nil, err
	}
	return Parse(src, data)
}

// Parse decodes GeoJSON data read from src.
func Parse(src string, data []byte) (*Collection, error) {
	c, err := ReadGeoJSON(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "%s", src)
	}
	return c, nil
}
