// SPDX-License-Identifier: BSD-3-Clause

package tempsource

import "errors"

// ErrChipNotFound indicates a configured sensor's chip name did not match
// any discovered hwmon device.
var ErrChipNotFound = errors.New("tempsource: hwmon chip not found")
