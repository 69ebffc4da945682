// SPDX-License-Identifier: BSD-3-Clause

package hiddev

import (
	"context"
	"testing"

	"github.com/At1ass/tt-riingd/pkg/hidproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeIO is an in-memory DeviceIO that records the last write and replays
// a scripted response buffer on the next read.
type fakeIO struct {
	lastWrite []byte
	response  []byte
	writeErr  error
	readErr   error
}

func (f *fakeIO) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	f.lastWrite = append([]byte(nil), p...)
	return len(p), nil
}

func (f *fakeIO) Read(p []byte, _ int) error {
	if f.readErr != nil {
		return f.readErr
	}
	copy(p, f.response)
	return nil
}

func (f *fakeIO) Close() error { return nil }

func statusBuffer(status byte) []byte {
	buf := make([]byte, hidproto.ResponseLength)
	buf[2] = status
	return buf
}

func TestSessionSetSpeedRoundTrip(t *testing.T) {
	io := &fakeIO{response: statusBuffer(hidproto.StatusSuccess)}
	s := NewSession(io)

	resp, err := s.SetSpeed(context.Background(), 2, 123)
	require.NoError(t, err)
	assert.Equal(t, hidproto.StatusSuccess, resp.Status)
	assert.Equal(t, []byte{0x00, 0x32, 0x51, 0x02, 0x01, 0x7B}, io.lastWrite)
}

func TestSessionGetData(t *testing.T) {
	buf := make([]byte, hidproto.ResponseLength)
	buf[2] = 55
	buf[3] = 0x10
	buf[4] = 0x20
	io := &fakeIO{response: buf}
	s := NewSession(io)

	data, err := s.GetData(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, byte(55), data.Speed)
	assert.Equal(t, uint16(0x2010), data.RPM)
}

func TestSessionPropagatesInvalidStatus(t *testing.T) {
	io := &fakeIO{response: statusBuffer(0x00)}
	s := NewSession(io)

	_, err := s.Init(context.Background())
	require.Error(t, err)
}

func TestSessionRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	io := &fakeIO{response: statusBuffer(hidproto.StatusSuccess)}
	s := NewSession(io)

	_, err := s.Init(ctx)
	require.Error(t, err)
	assert.Nil(t, io.lastWrite)
}
