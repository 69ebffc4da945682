// SPDX-License-Identifier: BSD-3-Clause

package assembly

import (
	"github.com/At1ass/tt-riingd/pkg/config"
	"github.com/At1ass/tt-riingd/pkg/mapping"
)

// BuildMappingIndex converts the configuration's sensor and color mapping
// lists into a populated mapping.Index, normalizing the file's 1-based
// (controller, fan_idx) targets to the 0-based FanRef the index uses
// internally.
func BuildMappingIndex(sensorMappings []config.SensorMapping, colorMappings []config.ColorMapping) *mapping.Index {
	idx := mapping.New()

	// Attach entry-by-entry in file order rather than pre-grouping into a
	// map: a fan named under two sensor entries must resolve to whichever
	// entry appears later in the file, and map iteration order is not a
	// substitute for that.
	for _, sm := range sensorMappings {
		for _, fr := range toFanRefs(sm.Targets) {
			idx.Attach(fr, sm.Sensor)
		}
	}

	colorEntries := make(map[string][]mapping.FanRef, len(colorMappings))
	for _, cm := range colorMappings {
		colorEntries[cm.Color] = append(colorEntries[cm.Color], toFanRefs(cm.Targets)...)
	}
	idx.LoadColorMappings(colorEntries)

	return idx
}

func toFanRefs(targets []config.FanTarget) []mapping.FanRef {
	refs := make([]mapping.FanRef, 0, len(targets))
	for _, t := range targets {
		refs = append(refs, mapping.FanRef{
			Controller: int(t.Controller) - 1,
			Channel:    int(t.FanIdx) - 1,
		})
	}
	return refs
}
