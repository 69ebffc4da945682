// SPDX-License-Identifier: BSD-3-Clause

package config

import "errors"

var (
	// ErrConfigNotFound indicates no configuration file could be located
	// by any of the locate-rule candidates.
	ErrConfigNotFound = errors.New("config: no configuration file found")
	// ErrUnsupportedVersion indicates the configuration's schema version
	// field is not the one value this daemon accepts.
	ErrUnsupportedVersion = errors.New("config: unsupported schema version")
	// ErrUnknownCurveKind indicates a curve entry's kind discriminator is
	// not one of "constant", "step-curve", "bezier".
	ErrUnknownCurveKind = errors.New("config: unknown curve kind")
	// ErrUnknownControllerKind indicates a controller entry's kind
	// discriminator is not "riing-quad".
	ErrUnknownControllerKind = errors.New("config: unknown controller kind")
	// ErrUnknownSensorKind indicates a sensor entry's kind discriminator
	// is not "lm-sensors".
	ErrUnknownSensorKind = errors.New("config: unknown sensor kind")
	// ErrNoPath indicates an operation that requires a resolved path
	// (reload, save) was attempted before one was established.
	ErrNoPath = errors.New("config: no configuration path resolved")
)
