// SPDX-License-Identifier: BSD-3-Clause

package tempsource

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/At1ass/tt-riingd/pkg/hwmon"
)

// HwmonSource resolves lm-sensors-style (chip, feature) pairs to hwmon
// sysfs input files and reads them as temperature samples. chip is matched
// against hwmon device names via hwmon.FindDeviceByNameCtx; feature is the
// sysfs attribute stem (e.g. "temp1") read from "<device>/<feature>_input",
// reported in millidegrees Celsius by the kernel.
type HwmonSource struct{}

// NewHwmonSource builds a Source backed by the host's hwmon sysfs tree.
func NewHwmonSource() *HwmonSource { return &HwmonSource{} }

// Sensors implements Source.
func (s *HwmonSource) Sensors(ctx context.Context, entries []Entry) ([]Sensor, error) {
	sensors := make([]Sensor, 0, len(entries))
	for _, e := range entries {
		devicePath, err := hwmon.FindDeviceByNameCtx(ctx, e.Chip)
		if err != nil {
			return nil, fmt.Errorf("%w: chip %q: %w", ErrChipNotFound, e.Chip, err)
		}
		sensors = append(sensors, &hwmonSensor{
			id:   e.ID,
			path: filepath.Join(devicePath, e.Feature+"_input"),
		})
	}
	return sensors, nil
}

type hwmonSensor struct {
	id   string
	path string
}

func (s *hwmonSensor) Key() string { return s.id }

func (s *hwmonSensor) ReadTemperature(ctx context.Context) (float32, error) {
	milliC, err := hwmon.ReadIntCtx(ctx, s.path)
	if err != nil {
		return 0, fmt.Errorf("tempsource: read %s: %w", s.path, err)
	}
	return float32(milliC) / 1000.0, nil
}
