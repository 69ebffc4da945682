// SPDX-License-Identifier: BSD-3-Clause

// Package curve evaluates fan control curves: a function from a
// temperature reading in degrees Celsius to a PWM duty percentage. Three
// kinds are supported: a constant duty, a piecewise-linear step curve, and
// a cubic Bezier curve.
package curve
