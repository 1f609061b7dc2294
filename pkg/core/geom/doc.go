// Package geom provides the geometric primitives used by label placement.
//
// It covers three concerns:
//
//   - [Envelope]: axis-aligned bounding boxes used for collision and
//     containment tests.
//   - [Geometry]: a borrowed view over an [orb.Geometry] exposing the vertex
//     sequence, a type tag, and a representative label anchor.
//   - Transforms: [Projection] maps between the layer's and the map's spatial
//     reference, and [ViewTransform] maps map coordinates to device space.
//
// Device space follows screen conventions: x grows to the right and y grows
// downward.
package geom
