// SPDX-License-Identifier: BSD-3-Clause

// Package fan holds per-channel fan state: the set of curves available on
// a channel, which one is active, and the last duty/RPM reading. It has no
// knowledge of the controller or device session that owns it.
package fan
