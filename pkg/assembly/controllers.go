// SPDX-License-Identifier: BSD-3-Clause

package assembly

import (
	"sort"

	"github.com/At1ass/tt-riingd/pkg/config"
	"github.com/At1ass/tt-riingd/pkg/controller"
	"github.com/At1ass/tt-riingd/pkg/hiddev"
)

// BuildControllerSpecs converts the configuration's controller list into
// pkg/controller.Spec values ready for controller.NewSet. A controller's
// fan entries are ordered by their configured idx, so position i in the
// resulting Spec.Fans is channel i+1 regardless of the order entries
// appeared in the file.
func BuildControllerSpecs(controllers []config.Controller) []controller.Spec {
	specs := make([]controller.Spec, 0, len(controllers))
	for _, c := range controllers {
		fans := append([]config.FanSpec(nil), c.Fans...)
		sort.Slice(fans, func(i, j int) bool { return fans[i].Idx < fans[j].Idx })

		fanSpecs := make([]controller.FanSpec, 0, len(fans))
		for _, f := range fans {
			fanSpecs = append(fanSpecs, controller.FanSpec{
				Name:        f.Name,
				CurveNames:  append([]string(nil), f.Curves...),
				ActiveCurve: f.ActiveCurve,
			})
		}

		specs = append(specs, controller.Spec{
			ID: c.ID,
			Selector: hiddev.Selector{
				VendorID:  c.VID,
				ProductID: c.PID,
				Serial:    c.Serial,
			},
			Fans: fanSpecs,
		})
	}
	return specs
}
