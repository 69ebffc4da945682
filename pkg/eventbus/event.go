// SPDX-License-Identifier: BSD-3-Clause

package eventbus

import "github.com/At1ass/tt-riingd/pkg/config"

// Kind tags the payload carried by an Event.
type Kind string

const (
	// ConfigChangeDetected is published by the config watcher after
	// classifying a detected on-disk change, and by the control
	// endpoint's reload_config method.
	ConfigChangeDetected Kind = "config_change_detected"
	// SystemShutdown is published by the control endpoint's stop method
	// and signals the coordinator's main loop to exit.
	SystemShutdown Kind = "system_shutdown"
	// TemperatureChanged is published by the monitoring loop after every
	// tick and republished by the broadcast service, carrying a snapshot
	// of the sample cache.
	TemperatureChanged Kind = "temperature_changed"
	// ColorChanged is published by the color loop at the end of each
	// pass over the color map.
	ColorChanged Kind = "color_changed"
)

// Event is the tagged union of everything the bus carries. Only the
// field matching Kind is populated.
type Event struct {
	Kind Kind

	// ConfigChange is set when Kind == ConfigChangeDetected.
	ConfigChange config.Change

	// Temperatures is set when Kind == TemperatureChanged; it is a
	// snapshot copy of the sample cache, safe to retain after delivery.
	Temperatures map[string]float32
}
