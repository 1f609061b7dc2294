package pipeline

import (
	"github.com/matzehuels/maplabel/pkg/core/geom"
	"github.com/matzehuels/maplabel/pkg/errors"
)

// MapExtent returns the map-space extent of the job: the configured one,
// or the padded union of all layers' projected bounds. The result is grown
// around its centre to the aspect ratio of the output so that the view
// transform scales both axes equally.
func (j *Job) MapExtent() (geom.Envelope, error) {
	m := j.Config.Map

	var e geom.Envelope
	if m.HasExtent() {
		e = m.Envelope()
	} else {
		var ok bool
		e, ok = j.dataExtent()
		if !ok {
			return geom.Envelope{}, errors.New(errors.ErrCodeInvalidInput, "no extent configured and no features to fit")
		}
		if e.Width() == 0 && e.Height() == 0 {
			e = e.Pad(0.5)
		}
		e = e.Pad(m.Margin * max(e.Width(), e.Height()))
	}
	return fitAspect(e, m.Width/m.Height), nil
}

func (j *Job) dataExtent() (geom.Envelope, bool) {
	var e geom.Envelope
	found := false
	for _, l := range j.Layers {
		for _, f := range l.Data.Features {
			for _, part := range f.Parts {
				for p := range part.Vertices() {
					q := l.Projection.Backward(p)
					if !found {
						e = geom.NewEnvelope(q[0], q[1], q[0], q[1])
						found = true
						continue
					}
					e.ExpandToInclude(q[0], q[1])
				}
			}
		}
	}
	return e, found
}

// fitAspect grows e symmetrically so that width/height equals ratio.
func fitAspect(e geom.Envelope, ratio float64) geom.Envelope {
	c := e.Center()
	w, h := e.Width(), e.Height()
	if h == 0 || w/h > ratio {
		h = w / ratio
	} else {
		w = h * ratio
	}
	return geom.NewEnvelope(c[0]-w/2, c[1]-h/2, c[0]+w/2, c[1]+h/2)
}
