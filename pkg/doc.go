// Package pkg provides the libraries behind maplabel, a map text label placer.
//
// # Overview
//
// Maplabel places text labels on map features so that no two labels
// overlap. The pkg directory is organized into four main areas:
//
//  1. [core] - Placement engine (geometry, measured text, collision index,
//     placement finder)
//  2. [config], [source], [fonts], [expr] - Job inputs
//  3. [render] - Scenes and the SVG, PDF and JSON sinks
//  4. [pipeline] - Orchestration (load → place → render) with [cache]
//
// # Architecture
//
// The typical data flow through maplabel:
//
//	job.toml + GeoJSON sources
//	         ↓
//	    [config] + [source] packages (decode, reproject, split parts)
//	         ↓
//	    [core/placement] package (find collision-free label positions)
//	         ↓
//	    [render/sink] package (draw labels)
//	         ↓
//	    SVG/PDF/JSON output
//
// # Quick Start
//
// Place a single label with the engine directly:
//
//	import (
//	    "github.com/matzehuels/maplabel/pkg/core/collision"
//	    "github.com/matzehuels/maplabel/pkg/core/geom"
//	    "github.com/matzehuels/maplabel/pkg/core/placement"
//	    "github.com/matzehuels/maplabel/pkg/fonts"
//	)
//
//	view, _ := geom.NewViewTransform(800, 600, extent)
//	detector := collision.NewQuadtree(view.Extent())
//	finder := placement.NewFinder(detector, view.Extent())
//
//	m, _ := fonts.NewMeasurer(nil, 12, fonts.DefaultDPI)
//	req := placement.NewRequest(road, m.Measure("Main Street"), geom.Identity{}, view,
//	    placement.Policy{Placement: placement.LinePlacement})
//	if finder.FindPlacements(req) {
//	    for _, p := range req.Placements() { ... }
//	}
//
// Or run a whole job file:
//
//	runner := pipeline.NewRunner(nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{ConfigPath: "job.toml"})
//
// # Package Organization
//
//	pkg/
//	├── core/
//	│   ├── geom/         # Envelopes, geometries, projections, view transform
//	│   ├── text/         # Measured text
//	│   ├── collision/    # Collision detector and quadtree index
//	│   └── placement/    # Placement requests and finder
//	├── config/           # TOML job files
//	├── source/           # GeoJSON sources, local or remote
//	├── fonts/            # Font loading and text measurement
//	├── expr/             # Label text expressions
//	├── render/           # Scene model and output sinks
//	├── pipeline/         # Load → place → render orchestration
//	├── cache/            # Rendered artifact cache
//	├── httputil/         # Remote input download with retries
//	├── observability/    # Pipeline, placement and cache hooks
//	├── errors/           # Coded errors
//	└── buildinfo/        # Version information
package pkg
