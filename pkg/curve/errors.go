// SPDX-License-Identifier: BSD-3-Clause

package curve

import "errors"

var (
	// ErrTemperatureOutOfRange indicates a StepCurve was evaluated at a
	// temperature outside its configured envelope. The evaluator does
	// not clamp; see the Bezier/StepCurve doc comments.
	ErrTemperatureOutOfRange = errors.New("curve: temperature out of range")
	// ErrBezierMustHaveFourPoints indicates a Bezier curve was
	// constructed or evaluated without exactly four control points.
	ErrBezierMustHaveFourPoints = errors.New("curve: bezier curve must have exactly four points")
	// ErrInvalidStepCurve indicates a StepCurve's tmps/spds arrays are
	// empty, mismatched in length, or not strictly ascending.
	ErrInvalidStepCurve = errors.New("curve: invalid step curve")
)
