// SPDX-License-Identifier: BSD-3-Clause

package assembly

import (
	"github.com/At1ass/tt-riingd/pkg/config"
	"github.com/At1ass/tt-riingd/pkg/tempsource"
)

// BuildSensorEntries converts the configuration's sensor list into
// tempsource.Entry values ready for a tempsource.Source.
func BuildSensorEntries(sensors []config.Sensor) []tempsource.Entry {
	entries := make([]tempsource.Entry, 0, len(sensors))
	for _, s := range sensors {
		entries = append(entries, tempsource.Entry{
			ID:      s.ID,
			Chip:    s.Chip,
			Feature: s.Feature,
		})
	}
	return entries
}
