// SPDX-License-Identifier: BSD-3-Clause

package assembly

import (
	"fmt"

	"github.com/At1ass/tt-riingd/pkg/config"
	"github.com/At1ass/tt-riingd/pkg/curve"
)

// BuildCurveTable converts the configuration's flat curve list into a
// name-indexed table. A curve that fails its own shape validation is
// skipped with an error recorded against its id; the caller decides
// whether to treat that as fatal.
func BuildCurveTable(entries []config.Curve) (map[string]curve.Curve, []error) {
	table := make(map[string]curve.Curve, len(entries))
	var errs []error
	for _, e := range entries {
		c, err := ConfigToCurve(e)
		if err != nil {
			errs = append(errs, fmt.Errorf("curve %q: %w", e.ID, err))
			continue
		}
		table[e.ID] = c
	}
	return table, errs
}

// ConfigToCurve converts one configuration curve entry into its runtime
// representation.
func ConfigToCurve(e config.Curve) (curve.Curve, error) {
	switch e.Kind {
	case config.CurveKindConstant:
		return curve.NewConstant(e.Speed), nil
	case config.CurveKindStepCurve:
		return curve.NewStepCurve(e.Tmps, e.Spds)
	case config.CurveKindBezier:
		points := make([]curve.Point, len(e.Points))
		for i, p := range e.Points {
			points[i] = curve.Point{X: p.X, Y: p.Y}
		}
		return curve.NewBezier(points)
	default:
		return curve.Curve{}, fmt.Errorf("%w: %q", ErrUnknownCurveKind, e.Kind)
	}
}

// CurveToConfig converts a runtime curve back into its configuration
// representation under id; config.MarshalCurve turns the result into
// text. The control endpoint does not call it: get_active_curve answers
// with the curve's name only.
func CurveToConfig(id string, c curve.Curve) config.Curve {
	out := config.Curve{Kind: string(c.Kind()), ID: id}
	switch c.Kind() {
	case curve.KindConstant:
		out.Speed = c.ConstantSpeed()
	case curve.KindStepCurve:
		tmps, spds := c.StepPoints()
		out.Tmps = tmps
		out.Spds = spds
	case curve.KindBezier:
		for _, p := range c.BezierPoints() {
			out.Points = append(out.Points, config.Point{X: p.X, Y: p.Y})
		}
	}
	return out
}
