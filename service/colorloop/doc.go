// SPDX-License-Identifier: BSD-3-Clause

// Package colorloop implements the color loop: a low-priority,
// non-critical service that periodically (and additionally whenever a
// TemperatureChanged event arrives) applies every configured
// color-to-fan mapping and publishes ColorChanged.
package colorloop
