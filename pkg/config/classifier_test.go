// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyHotReloadOnCurveOnlyChange(t *testing.T) {
	a := &Root{Version: 1, Curves: []Curve{{Kind: CurveKindConstant, ID: "c", Speed: 50}}}
	b := &Root{Version: 1, Curves: []Curve{{Kind: CurveKindConstant, ID: "c", Speed: 60}}}

	change := Classify(a, b)
	assert.Equal(t, HotReload, change.Kind)
	assert.Empty(t, change.ChangedSections)
}

func TestClassifyColdRestartOnControllerChange(t *testing.T) {
	a := &Root{Version: 1, Controllers: []Controller{{ID: "a"}}}
	b := &Root{Version: 1, Controllers: []Controller{{ID: "b"}}}

	change := Classify(a, b)
	assert.Equal(t, ColdRestart, change.Kind)
	assert.Contains(t, change.ChangedSections, "controllers")
}

func TestClassifyColdRestartOnSensorChange(t *testing.T) {
	a := &Root{Version: 1, Sensors: []Sensor{{ID: "cpu"}}}
	b := &Root{Version: 1, Sensors: []Sensor{{ID: "cpu2"}}}

	change := Classify(a, b)
	assert.Equal(t, ColdRestart, change.Kind)
	assert.Contains(t, change.ChangedSections, "sensors")
}

func TestClassifyIsDeterministicForEqualConfigs(t *testing.T) {
	a := &Root{Version: 1}
	b := &Root{Version: 1}
	assert.Equal(t, Classify(a, b), Classify(a, b))
}
