// Package config loads maplabel job files.
//
// A job file is TOML with three kinds of tables:
//
//	[map]
//	width  = 800
//	height = 600
//	srs    = "EPSG:3857"
//	extent = [-20037508, -20037508, 20037508, 20037508]
//
//	[font]
//	size = 12
//	file = "fonts/NotoSans-Regular.ttf"   # optional, Go Regular otherwise
//
//	[[layer]]
//	name      = "roads"
//	source    = "data/roads.geojson"
//	srs       = "EPSG:4326"
//	text      = "[name] + ' ' + [ref]"
//	placement = "line"
//	spacing   = 200
//
// Layers are placed in file order and share one collision detector, so
// earlier layers take priority. Relative paths are resolved against the
// directory of the job file.
//
// [Load] reads, defaults and validates a file in one step. [Parse] does the
// same for in-memory data. [Layer.Policy] converts a layer table into the
// [placement.Policy] consumed by the placement finder.
package config
