package placement

import "math"

// idealPlacements returns the distances along the path at which labels are
// first tried, most central first, and records the effective tolerance.
func (r *Request) idealPlacements() []float64 {
	distance := r.TotalDistance()
	width, _ := r.text.Natural()
	line := r.Policy.Placement == LinePlacement

	if line && width > distance {
		return nil
	}

	n := 0
	if r.Policy.Spacing > 0 {
		if line {
			n = int(math.Floor(distance / (r.Policy.Spacing + width)))
		} else {
			n = int(math.Floor(distance / r.Policy.Spacing))
		}
	}
	if r.Policy.ForceOddLabels && n%2 == 0 {
		n--
	}
	n = max(n, 1)

	middle := distance / 2
	if line {
		middle -= width / 2
	}
	spacing := distance / float64(n)

	r.tolerance = r.Policy.Tolerance
	if r.tolerance <= 0 {
		r.tolerance = spacing / 2
	}

	out := make([]float64, 0, n)
	if n%2 == 1 {
		out = append(out, middle)
		for k := 1; len(out) < n; k++ {
			off := float64(k) * spacing
			out = append(out, middle+off, middle-off)
		}
		return out
	}
	for k := 0; len(out) < n; k++ {
		off := (float64(k) + 0.5) * spacing
		out = append(out, middle+off, middle-off)
	}
	return out
}
