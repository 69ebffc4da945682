// SPDX-License-Identifier: BSD-3-Clause

package hidproto

import (
	"errors"
	"fmt"
)

var (
	// ErrBufferTooShort indicates a response buffer shorter than the
	// protocol's fixed 193-byte frame.
	ErrBufferTooShort = errors.New("hidproto: response buffer too short")
	// ErrInvalidStatus indicates a status byte other than StatusSuccess.
	ErrInvalidStatus = errors.New("hidproto: invalid status")
)

// BufferTooShortError carries the expected and actual buffer lengths.
type BufferTooShortError struct {
	Expected int
	Got      int
}

func (e *BufferTooShortError) Error() string {
	return fmt.Sprintf("hidproto: response buffer too short: expected %d bytes, got %d", e.Expected, e.Got)
}

func (e *BufferTooShortError) Unwrap() error { return ErrBufferTooShort }

// InvalidStatusError carries the expected and actual status bytes.
type InvalidStatusError struct {
	Expected byte
	Got      byte
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("hidproto: invalid status: expected 0x%02X, got 0x%02X", e.Expected, e.Got)
}

func (e *InvalidStatusError) Unwrap() error { return ErrInvalidStatus }
