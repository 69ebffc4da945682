// SPDX-License-Identifier: BSD-3-Clause

// Package hwmon resolves a single Linux hwmon (hardware monitoring) chip
// name to its sysfs device directory and reads an integer attribute from
// it. This daemon only ever needs a flat (chip, feature) pair resolved to
// one value — the kernel's millidegree-Celsius temperature reading behind
// "<device>/<feature>_input" — so the package exposes exactly that, not
// the hwmon subsystem's full sensor-type/attribute/discovery surface.
//
// # Basic usage
//
//	device, err := hwmon.FindDeviceByNameCtx(ctx, "k10temp")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	milliC, err := hwmon.ReadIntCtx(ctx, filepath.Join(device, "temp1_input"))
//	if err != nil {
//		log.Printf("read failed: %v", err)
//		return
//	}
//
//	celsius := float64(milliC) / 1000.0
//
// FindDeviceByNameCtx searches /sys/class/hwmon for a device whose "name"
// file matches the given chip name; ReadIntCtx reads and parses a single
// integer attribute file. Both run their blocking os calls on a goroutine
// and race it against ctx so a slow or wedged sysfs mount can't hang the
// caller past its deadline.
package hwmon
