package placement

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/matzehuels/maplabel/pkg/core/geom"
)

// buildPathFollow lays the glyphs along the path starting at target, each
// rotated to the tangent of the segment it sits on.
func (f *Finder) buildPathFollow(r *Request, a *attempt, target float64) Reason {
	path := r.devicePath()
	t := r.text
	p := r.Policy
	width, height := t.Natural()

	// Locate the segment holding target. seg indexes its end vertex and
	// remaining is the distance from the running point to that vertex.
	var (
		seg       int
		remaining float64
		angle     float64
		walked    float64
		found     bool
	)
	for k := 1; k < len(path); k++ {
		dx, dy := path[k][0]-path[k-1][0], path[k][1]-path[k-1][1]
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		walked += l
		if walked > target {
			remaining = walked - target
			a.start = interpolate(path[k-1], path[k], remaining/l)
			angle = math.Atan2(-dy, dx)
			seg = k
			found = true
			break
		}
	}
	if !found {
		return ReasonPathExhausted
	}

	orientation := 1.0
	if math.Abs(angle) > p.orientationThreshold()*math.Pi/180 {
		orientation = -1
	}

	if p.HasDimensions() {
		box := fixedBox(p, r.PositionAtDistance(target+width/2))
		if why := f.check(r, box); why != "" {
			return why
		}
		a.boxes = append(a.boxes, box)
	}

	n := t.Len()
	for i := 0; i < n; i++ {
		c := t.At(i)
		if orientation < 0 {
			c = t.At(n - 1 - i)
		}

		if remaining < c.Width {
			last := angle
			for remaining < c.Width {
				seg++
				if seg >= len(path) {
					return ReasonPathExhausted
				}
				dx, dy := path[seg][0]-path[seg-1][0], path[seg][1]-path[seg-1][1]
				l := math.Hypot(dx, dy)
				if l == 0 {
					continue
				}
				angle = math.Atan2(-dy, dx)
				remaining += l
			}
			delta := normalizeAngle(last - angle)
			if p.MaxCharAngleDelta > 0 && math.Abs(delta*180/math.Pi) > p.MaxCharAngleDelta {
				return ReasonAngleDelta
			}
		}

		// u runs along the baseline, v points from the baseline toward the
		// top of the glyph.
		sin, cos := math.Sincos(angle)
		u := orb.Point{cos, -sin}
		v := orb.Point{-sin, -cos}

		end := path[seg]
		base := orb.Point{
			end[0] - remaining*u[0] - height/2*v[0],
			end[1] - remaining*u[1] - height/2*v[1],
		}
		dx, dy := p.Displacement[0]*orientation, p.Displacement[1]*orientation
		base[0] += dx*u[0] - dy*v[0]
		base[1] += dx*u[1] - dy*v[1]

		// Zero-advance glyphs get no box.
		if !p.HasDimensions() && c.Width > 0 {
			box := geom.NewEnvelope(base[0], base[1], base[0]+c.Width*u[0], base[1]+c.Width*u[1])
			box.ExpandToInclude(base[0]+c.Height*v[0], base[1]+c.Height*v[1])
			box.ExpandToInclude(base[0]+c.Width*u[0]+c.Height*v[0], base[1]+c.Width*u[1]+c.Height*v[1])
			if why := f.check(r, box); why != "" {
				return why
			}
			a.boxes = append(a.boxes, box)
		}

		render, renderAngle := base, angle
		if orientation < 0 {
			// Turn the glyph upside down about its own centre line so that
			// reversed text reads upright.
			render[0] += c.Width*u[0] + height*v[0]
			render[1] += c.Width*u[1] + height*v[1]
			renderAngle += math.Pi
		}

		a.nodes = append(a.nodes, GlyphNode{
			Char:  c.Char,
			X:     render[0] - a.start[0],
			Y:     render[1] - a.start[1],
			Angle: renderAngle,
		})
		remaining -= c.Width
	}
	return ""
}

// normalizeAngle maps a into (-π, π].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
