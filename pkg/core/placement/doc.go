// Package placement positions label text on map geometries.
//
// A caller builds one [Request] per label from a [geom.Geometry], its
// [text.MeasuredText], the map transforms, and a [Policy], then hands it to
// [Finder.FindPlacements]. The finder generates candidate distances along
// the geometry, tries each one within a tolerance window, and keeps the
// first attempt per candidate that neither collides with earlier labels nor
// (optionally) leaves the map. Accepted attempts become [AcceptedPlacement]
// values on the request and their boxes are registered with the shared
// [collision.Detector].
//
// # Strategies
//
// Two layouts are available:
//
//   - Horizontal: text is centred on an anchor, optionally word-wrapped
//     into a block. Used for point placement and for every geometry with a
//     single vertex.
//   - Follow: glyphs are laid one after another along a line, each rotated
//     to the local tangent. Used for line placement.
//
// # Coordinates
//
// All layout happens in device space (x right, y down). Glyph node offsets
// are relative to the placement's start point and angles are in radians,
// counter-clockwise as seen on screen.
//
// # Failure
//
// Failing to place a label is normal and is not an error: FindPlacements
// returns false and the request carries no placements. Individual attempt
// outcomes are reported through [observability.PlacementHooks].
package placement
