// SPDX-License-Identifier: BSD-3-Clause

package assembly

import "errors"

var (
	// ErrUnknownCurveKind indicates a curve text blob names a kind this
	// build does not recognize.
	ErrUnknownCurveKind = errors.New("assembly: unknown curve kind")
)
