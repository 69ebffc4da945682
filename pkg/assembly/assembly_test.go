// SPDX-License-Identifier: BSD-3-Clause

package assembly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/At1ass/tt-riingd/pkg/config"
	"github.com/At1ass/tt-riingd/pkg/curve"
	"github.com/At1ass/tt-riingd/pkg/mapping"
)

func TestBuildCurveTableConvertsAllKinds(t *testing.T) {
	table, errs := BuildCurveTable([]config.Curve{
		{Kind: config.CurveKindConstant, ID: "fixed", Speed: 42},
		{Kind: config.CurveKindStepCurve, ID: "step", Tmps: []float32{30, 60}, Spds: []uint8{20, 80}},
		{Kind: config.CurveKindBezier, ID: "bez", Points: []config.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}},
	})
	require.Empty(t, errs)
	require.Len(t, table, 3)
	assert.Equal(t, curve.KindConstant, table["fixed"].Kind())
	assert.Equal(t, curve.KindStepCurve, table["step"].Kind())
	assert.Equal(t, curve.KindBezier, table["bez"].Kind())
}

func TestBuildCurveTableRecordsErrorsButKeepsGoing(t *testing.T) {
	table, errs := BuildCurveTable([]config.Curve{
		{Kind: config.CurveKindStepCurve, ID: "bad", Tmps: []float32{1}, Spds: []uint8{1, 2}},
		{Kind: config.CurveKindConstant, ID: "good", Speed: 10},
	})
	assert.Len(t, errs, 1)
	assert.Len(t, table, 1)
	assert.Contains(t, table, "good")
}

func TestCurveToConfigRoundTripsConstant(t *testing.T) {
	c := curve.NewConstant(55)
	cfg := CurveToConfig("fixed", c)

	back, err := ConfigToCurve(cfg)
	require.NoError(t, err)
	duty, err := back.Evaluate(0)
	require.NoError(t, err)
	assert.Equal(t, byte(55), duty)
}

func TestCurveToConfigRoundTripsStepCurve(t *testing.T) {
	c, err := curve.NewStepCurve([]float32{20, 50}, []byte{10, 90})
	require.NoError(t, err)
	cfg := CurveToConfig("step", c)

	back, err := ConfigToCurve(cfg)
	require.NoError(t, err)
	duty, err := back.Evaluate(35)
	require.NoError(t, err)
	assert.Equal(t, byte(50), duty)
}

func TestBuildControllerSpecsOrdersFansByIdx(t *testing.T) {
	specs := BuildControllerSpecs([]config.Controller{
		{
			ID: "c1", VID: 0x264A, PID: 0x1234,
			Fans: []config.FanSpec{
				{Idx: 2, Name: "second"},
				{Idx: 1, Name: "first"},
			},
		},
	})
	require.Len(t, specs, 1)
	require.Len(t, specs[0].Fans, 2)
	assert.Equal(t, "first", specs[0].Fans[0].Name)
	assert.Equal(t, "second", specs[0].Fans[1].Name)
	assert.Equal(t, uint16(0x264A), specs[0].Selector.VendorID)
}

func TestBuildMappingIndexNormalizesToZeroBased(t *testing.T) {
	idx := BuildMappingIndex(
		[]config.SensorMapping{
			{Sensor: "cpu", Targets: []config.FanTarget{{Controller: 1, FanIdx: 1}}},
		},
		nil,
	)
	fans := idx.FansForSensor("cpu")
	require.Len(t, fans, 1)
	assert.Equal(t, mapping.FanRef{Controller: 0, Channel: 0}, fans[0])
}

func TestBuildColorTableIndexesByName(t *testing.T) {
	table := BuildColorTable([]config.Color{{Name: "red", RGB: [3]uint8{255, 0, 0}}})
	assert.Equal(t, [3]uint8{255, 0, 0}, table["red"])
}

func TestBuildSensorEntriesPreservesOrder(t *testing.T) {
	entries := BuildSensorEntries([]config.Sensor{
		{ID: "cpu", Chip: "k10temp", Feature: "temp1"},
	})
	require.Len(t, entries, 1)
	assert.Equal(t, "cpu", entries[0].ID)
}
