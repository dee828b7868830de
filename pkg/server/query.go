package server

import (
	"net/url"
	"strconv"

	"github.com/matzehuels/graphic/pkg/colour"
	"github.com/matzehuels/graphic/pkg/errors"
	"github.com/matzehuels/graphic/pkg/generate"
	"github.com/matzehuels/graphic/pkg/style"
)

// familyParams reads n, m and edges. Missing counts are left at zero so the
// family's minimum applies; edges defaults to true.
func familyParams(q url.Values) (generate.Params, error) {
	p := generate.Params{DrawEdges: true}
	var err error
	if p.N, err = intParam(q, "n", 0); err != nil {
		return p, err
	}
	if p.M, err = intParam(q, "m", 0); err != nil {
		return p, err
	}
	if p.DrawEdges, err = boolParam(q, "edges", true); err != nil {
		return p, err
	}
	return p, nil
}

// styleParams overrides base with any style fields present in q.
func styleParams(base style.Params, q url.Values) (style.Params, error) {
	p := base
	floats := []struct {
		key string
		dst *float64
	}{
		{"width", &p.Width},
		{"height", &p.Height},
		{"diameter", &p.Diameter},
		{"outline_thickness", &p.OutlineThickness},
		{"label_size", &p.NodeLabelSize},
		{"edge_width", &p.EdgeWidth},
		{"edge_label_size", &p.EdgeLabelSize},
		{"rotation", &p.Rotation},
	}
	for _, f := range floats {
		v, err := floatParam(q, f.key, *f.dst)
		if err != nil {
			return p, err
		}
		*f.dst = v
	}

	colours := []struct {
		key string
		dst *colour.RGB
	}{
		{"fill", &p.Fill},
		{"outline", &p.Outline},
		{"edge_colour", &p.EdgeColour},
	}
	for _, c := range colours {
		if !q.Has(c.key) {
			continue
		}
		v, err := colour.Parse(q.Get(c.key))
		if err != nil {
			return p, err
		}
		*c.dst = v
	}

	if q.Has("prefix") {
		p.TopPrefix = q.Get("prefix")
	}
	if q.Has("bottom_prefix") {
		p.BottomPrefix = q.Get("bottom_prefix")
	}
	if q.Has("edge_label") {
		p.EdgeLabel = q.Get("edge_label")
	}
	var err error
	if p.NumberLabels, err = boolParam(q, "numbers", p.NumberLabels); err != nil {
		return p, err
	}
	if p.LabelStart, err = intParam(q, "label_start", p.LabelStart); err != nil {
		return p, err
	}
	return p, p.Validate()
}

func intParam(q url.Values, key string, def int) (int, error) {
	if !q.Has(key) {
		return def, nil
	}
	v, err := strconv.Atoi(q.Get(key))
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s: not an integer: %q", key, q.Get(key))
	}
	return v, nil
}

func floatParam(q url.Values, key string, def float64) (float64, error) {
	if !q.Has(key) {
		return def, nil
	}
	v, err := strconv.ParseFloat(q.Get(key), 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s: not a number: %q", key, q.Get(key))
	}
	return v, nil
}

func boolParam(q url.Values, key string, def bool) (bool, error) {
	if !q.Has(key) {
		return def, nil
	}
	v, err := strconv.ParseBool(q.Get(key))
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "%s: not a boolean: %q", key, q.Get(key))
	}
	return v, nil
}
