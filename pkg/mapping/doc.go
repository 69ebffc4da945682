// SPDX-License-Identifier: BSD-3-Clause

// Package mapping holds the bidirectional sensor<->fan and color->fan
// relations used by the monitoring and color services. FanRef uses 0-based
// (controller_index, channel_index) addressing internally; the 1-based
// config form is normalized on load by the caller.
package mapping
