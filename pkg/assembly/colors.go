// SPDX-License-Identifier: BSD-3-Clause

package assembly

import "github.com/At1ass/tt-riingd/pkg/config"

// BuildColorTable converts the configuration's named color list into a
// name-indexed RGB table for the color loop.
func BuildColorTable(colors []config.Color) map[string][3]uint8 {
	table := make(map[string][3]uint8, len(colors))
	for _, c := range colors {
		table[c.Name] = c.RGB
	}
	return table
}
