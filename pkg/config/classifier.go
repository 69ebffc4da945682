// SPDX-License-Identifier: BSD-3-Clause

package config

import "reflect"

// ChangeKind distinguishes a configuration change that can be applied
// without restarting controller sessions from one that cannot.
type ChangeKind int

const (
	// HotReload means only curves, mappings, colors, or timing changed.
	HotReload ChangeKind = iota
	// ColdRestart means the controllers or sensors sections changed and
	// require the affected sessions to be rebuilt.
	ColdRestart
)

// Change is the classifier's verdict: a kind, and, for ColdRestart, which
// top-level sections changed.
type Change struct {
	Kind             ChangeKind
	ChangedSections  []string
}

// Classify compares old against cur field-by-field. If controllers or
// sensors differ by structural equality, it returns ColdRestart naming
// the changed sections; otherwise it returns HotReload. Classify is total
// and side-effect free: equal configurations always yield HotReload.
func Classify(old, cur *Root) Change {
	var changed []string
	if !reflect.DeepEqual(old.Controllers, cur.Controllers) {
		changed = append(changed, "controllers")
	}
	if !reflect.DeepEqual(old.Sensors, cur.Sensors) {
		changed = append(changed, "sensors")
	}
	if len(changed) > 0 {
		return Change{Kind: ColdRestart, ChangedSections: changed}
	}
	return Change{Kind: HotReload}
}
