// Package source reads the vector data that labels are placed on.
//
// # Format
//
// Sources are GeoJSON documents. A FeatureCollection is the usual input, but
// a single Feature or a bare geometry object is accepted as well:
//
//	{
//	  "type": "FeatureCollection",
//	  "features": [
//	    {
//	      "type": "Feature",
//	      "properties": {"name": "Main Street", "ref": "A1"},
//	      "geometry": {"type": "LineString", "coordinates": [[0, 0], [10, 0]]}
//	    }
//	  ]
//	}
//
// # Parts
//
// Multi-part geometries (MultiPoint, MultiLineString, MultiPolygon and
// GeometryCollection) are split into their single parts, each labelled
// independently with the feature's properties. Features without a usable
// geometry are skipped and counted in [Collection.Skipped].
//
// # Coordinates
//
// Coordinates are returned as written. Reprojection into the map reference
// happens later, per request, through a [geom.Projection].
package source
