package placement

import (
	"strings"

	"github.com/matzehuels/maplabel/pkg/errors"
)

// Mode selects how a label relates to its geometry.
type Mode int

const (
	// PointPlacement centres horizontal text on an anchor.
	PointPlacement Mode = iota
	// LinePlacement makes the text follow the geometry.
	LinePlacement
)

func (m Mode) String() string {
	if m == LinePlacement {
		return "line"
	}
	return "point"
}

// ParseMode parses "point" or "line" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "point":
		return PointPlacement, nil
	case "line":
		return LinePlacement, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidConfig, "unknown placement %q (want point or line)", s)
	}
}

// DefaultOrientationThreshold is the tangent angle, in degrees from the
// positive x axis, beyond which line text is laid out in reverse so that it
// reads upright.
const DefaultOrientationThreshold = 110.0

// Policy holds the layout parameters for one label. Distances are in device
// units, angles in degrees.
type Policy struct {
	Placement Mode

	// WrapWidth enables word wrapping of horizontal text wider than it.
	WrapWidth float64
	// TextRatio, when positive, prefers a wrap column whose block aspect
	// (width/height) does not exceed it.
	TextRatio float64

	// Spacing is the desired distance between repeated labels.
	Spacing float64
	// Tolerance is the half-width of the search window around each ideal
	// candidate. Zero derives it from the candidate spacing.
	Tolerance float64
	// ForceOddLabels makes the candidate count odd, so that one label sits
	// at the middle of the geometry.
	ForceOddLabels bool

	// MaxCharAngleDelta bounds the tangent change between consecutive glyphs
	// of followed text. Zero disables the check.
	MaxCharAngleDelta float64
	// MinimumDistance keeps this label at least this far from any already
	// placed label with the same text.
	MinimumDistance float64

	// AvoidEdges rejects placements that are not fully inside the view.
	AvoidEdges bool
	// AllowOverlap skips the collision check but still registers the boxes.
	AllowOverlap bool

	// Displacement offsets the anchor. For horizontal text it is a plain
	// device offset; for followed text X runs along the reading direction
	// and Y perpendicular to it, positive below the baseline.
	Displacement [2]float64
	// Dimensions, when both positive, replace per-glyph boxes with a single
	// fixed-size box, as for labels drawn over a background image.
	Dimensions [2]float64

	// OrientationThreshold overrides DefaultOrientationThreshold when
	// positive.
	OrientationThreshold float64
}

// HasDimensions reports whether a fixed label box is configured.
func (p Policy) HasDimensions() bool {
	return p.Dimensions[0] > 0 && p.Dimensions[1] > 0
}

func (p Policy) orientationThreshold() float64 {
	if p.OrientationThreshold > 0 {
		return p.OrientationThreshold
	}
	return DefaultOrientationThreshold
}
