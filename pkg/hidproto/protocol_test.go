// SPDX-License-Identifier: BSD-3-Clause

package hidproto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCommands(t *testing.T) {
	tests := []struct {
		name string
		got  []byte
		want []byte
	}{
		{"init", EncodeInit(), []byte{0x00, 0xFE, 0x33}},
		{"firmware version", EncodeGetFirmwareVersion(), []byte{0x00, 0x33, 0x50}},
		{"get data", EncodeGetData(1), []byte{0x00, 0x33, 0x51, 0x01}},
		{"set speed", EncodeSetSpeed(2, 123), []byte{0x00, 0x32, 0x51, 0x02, 0x01, 0x7B}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestEncodeSetRgb(t *testing.T) {
	colors := make([]Color, 52)
	for i := range colors {
		colors[i] = Color{R: 1, G: 2, B: 3}
	}
	buf := EncodeSetRgb(3, RGBStaticMode, colors)

	require.Len(t, buf, 5+52*3)
	assert.Equal(t, []byte{0x00, 0x32, 0x52, 0x03, 0x24}, buf[:5])
	for i := 0; i < 52; i++ {
		off := 5 + i*3
		assert.Equal(t, []byte{2, 1, 3}, buf[off:off+3], "triplet %d", i)
	}
}

func TestEncodeSetRgbPadsWithLastColor(t *testing.T) {
	buf := EncodeSetRgb(1, RGBStaticMode, []Color{{R: 9, G: 8, B: 7}})
	require.Len(t, buf, 5+52*3)
	for i := 0; i < 52; i++ {
		off := 5 + i*3
		assert.Equal(t, []byte{8, 9, 7}, buf[off:off+3])
	}
}

func TestDecodeStatusSuccess(t *testing.T) {
	buf := make([]byte, ResponseLength)
	buf[2] = StatusSuccess
	resp, err := DecodeStatus(buf)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, resp.Status)
}

func TestDecodeStatusInvalid(t *testing.T) {
	buf := make([]byte, ResponseLength)
	buf[2] = 0x00
	_, err := DecodeStatus(buf)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidStatus))

	var statusErr *InvalidStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, byte(0xFC), statusErr.Expected)
	assert.Equal(t, byte(0x00), statusErr.Got)
}

func TestDecodeBufferTooShort(t *testing.T) {
	_, err := DecodeStatus(make([]byte, 5))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBufferTooShort))
}

func TestDecodeData(t *testing.T) {
	buf := make([]byte, ResponseLength)
	buf[2] = 55
	buf[3] = 0x10
	buf[4] = 0x20
	data, err := DecodeData(buf)
	require.NoError(t, err)
	assert.Equal(t, byte(55), data.Speed)
	assert.Equal(t, uint16(0x2010), data.RPM)
}

func TestDecodeFirmwareVersion(t *testing.T) {
	buf := make([]byte, ResponseLength)
	buf[0], buf[1], buf[2] = 1, 2, 3
	v, err := DecodeFirmwareVersion(buf)
	require.NoError(t, err)
	assert.Equal(t, FirmwareVersion{Major: 1, Minor: 2, Patch: 3}, v)
	assert.Equal(t, "1.2.3", v.String())
}
