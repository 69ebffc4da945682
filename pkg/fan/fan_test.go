// SPDX-License-Identifier: BSD-3-Clause

package fan

import (
	"errors"
	"testing"

	"github.com/At1ass/tt-riingd/pkg/curve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSpeedUsesActiveCurve(t *testing.T) {
	s := New("fan1", map[string]curve.Curve{
		"silent": curve.NewConstant(20),
		"full":   curve.NewConstant(100),
	}, "silent")

	got, err := s.ComputeSpeed(50)
	require.NoError(t, err)
	assert.Equal(t, byte(20), got)
}

func TestSwitchCurve(t *testing.T) {
	s := New("fan1", map[string]curve.Curve{
		"silent": curve.NewConstant(20),
		"full":   curve.NewConstant(100),
	}, "silent")

	require.NoError(t, s.SwitchCurve("full"))
	assert.Equal(t, "full", s.ActiveCurve())

	// idempotent when name == active_curve
	require.NoError(t, s.SwitchCurve("full"))
	assert.Equal(t, "full", s.ActiveCurve())

	err := s.SwitchCurve("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownCurve))
}

func TestUpdateCurveDataRequiresSameKind(t *testing.T) {
	s := New("fan1", map[string]curve.Curve{
		"silent": curve.NewConstant(20),
	}, "silent")

	err := s.UpdateCurveData("silent", curve.NewConstant(30))
	require.NoError(t, err)
	got, _ := s.ComputeSpeed(0)
	assert.Equal(t, byte(30), got)

	step, err := curve.NewStepCurve([]float32{0, 100}, []byte{0, 100})
	require.NoError(t, err)
	err = s.UpdateCurveData("silent", step)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIncompatibleCurveKind))

	err = s.UpdateCurveData("missing", curve.NewConstant(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownCurve))
}

func TestUpdateStats(t *testing.T) {
	s := New("fan1", map[string]curve.Curve{"c": curve.NewConstant(1)}, "c")
	s.UpdateStats(42, 1234)
	assert.Equal(t, byte(42), s.LastDuty())
	assert.Equal(t, uint16(1234), s.LastRPM())
}
