// SPDX-License-Identifier: BSD-3-Clause

package fan

import "errors"

var (
	// ErrUnknownCurve indicates an operation referenced a curve name
	// not present on the fan.
	ErrUnknownCurve = errors.New("fan: unknown curve")
	// ErrIncompatibleCurveKind indicates update_curve_data attempted to
	// replace a curve with one of a different kind.
	ErrIncompatibleCurveKind = errors.New("fan: incompatible curve kind")
)
