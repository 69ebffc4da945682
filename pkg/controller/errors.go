// SPDX-License-Identifier: BSD-3-Clause

package controller

import "errors"

var (
	// ErrUnknownController indicates a 1-based controller id outside
	// the set's range.
	ErrUnknownController = errors.New("controller: unknown controller")
	// ErrUnknownChannel indicates a 1-based channel index outside a
	// controller's fan array.
	ErrUnknownChannel = errors.New("controller: unknown channel")
)
