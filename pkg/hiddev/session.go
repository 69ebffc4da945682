// SPDX-License-Identifier: BSD-3-Clause

package hiddev

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/At1ass/tt-riingd/pkg/hidproto"
)

// ReadTimeout is the duration the session waits for a response to a
// command before giving up.
const ReadTimeout = 250 * time.Millisecond

// DeviceIO is the transport abstraction a Session is built on. A short
// read (fewer bytes than requested) must be reported as ErrIncompleteRead
// by the implementation; all other transport failures are opaque and
// wrapped in ErrTransport by callers that don't already have a more
// specific sentinel.
type DeviceIO interface {
	Write(p []byte) (int, error)
	Read(p []byte, timeoutMs int) error
	Close() error
}

// Session owns one DeviceIO endpoint and serializes every command/response
// pair issued against it with an internal mutex: request/response is the
// atomic unit, so writes and the expected reply from a concurrent caller
// are never interleaved. Blocking I/O runs on whichever goroutine calls
// into the session; callers that must not block their own event loop
// should invoke Session methods from a worker goroutine (the monitoring
// service, for example, drives pkg/controller from its own
// supervisor-managed task).
type Session struct {
	mu sync.Mutex
	io DeviceIO
}

// NewSession wraps io in a Session. Ownership of io (including Close)
// transfers to the Session.
func NewSession(io DeviceIO) *Session {
	return &Session{io: io}
}

// Close releases the underlying transport.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.io.Close()
}

// roundTrip writes req and reads a ResponseLength-byte reply, holding the
// session lock for the duration so no other request/response pair can
// interleave. ctx is honored only as a cooperative cancellation signal
// checked before issuing the I/O; once a transaction starts it runs to
// completion, bounded by ReadTimeout, per the cooperative-cancellation
// policy for HID transactions.
func (s *Session) roundTrip(ctx context.Context, req []byte) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.io.Write(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	buf := make([]byte, hidproto.ResponseLength)
	if err := s.io.Read(buf, int(ReadTimeout/time.Millisecond)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return buf, nil
}

// Init sends the Init command and returns the decoded status.
func (s *Session) Init(ctx context.Context) (hidproto.StatusResponse, error) {
	buf, err := s.roundTrip(ctx, hidproto.EncodeInit())
	if err != nil {
		return hidproto.StatusResponse{}, err
	}
	return hidproto.DecodeStatus(buf)
}

// GetFirmwareVersion sends the GetFirmwareVersion command and returns the
// decoded version.
func (s *Session) GetFirmwareVersion(ctx context.Context) (hidproto.FirmwareVersion, error) {
	buf, err := s.roundTrip(ctx, hidproto.EncodeGetFirmwareVersion())
	if err != nil {
		return hidproto.FirmwareVersion{}, err
	}
	return hidproto.DecodeFirmwareVersion(buf)
}

// SetSpeed sends SetSpeed{port, speed} and returns the decoded status.
func (s *Session) SetSpeed(ctx context.Context, port, speed byte) (hidproto.StatusResponse, error) {
	buf, err := s.roundTrip(ctx, hidproto.EncodeSetSpeed(port, speed))
	if err != nil {
		return hidproto.StatusResponse{}, err
	}
	return hidproto.DecodeStatus(buf)
}

// GetData sends GetData{port} and returns the decoded (speed, rpm) pair.
func (s *Session) GetData(ctx context.Context, port byte) (hidproto.DataResponse, error) {
	buf, err := s.roundTrip(ctx, hidproto.EncodeGetData(port))
	if err != nil {
		return hidproto.DataResponse{}, err
	}
	return hidproto.DecodeData(buf)
}

// SetRgb sends SetRgb{port, mode, colors} and returns the decoded status.
func (s *Session) SetRgb(ctx context.Context, port, mode byte, colors []hidproto.Color) (hidproto.StatusResponse, error) {
	buf, err := s.roundTrip(ctx, hidproto.EncodeSetRgb(port, mode, colors))
	if err != nil {
		return hidproto.StatusResponse{}, err
	}
	return hidproto.DecodeStatus(buf)
}
