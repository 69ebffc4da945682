// SPDX-License-Identifier: BSD-3-Clause

package hidproto

import "fmt"

const (
	// ResponseLength is the fixed size of every response frame the
	// Riing Quad controllers send back.
	ResponseLength = 193

	// StatusSuccess is the status byte value indicating the device
	// accepted the previous command.
	StatusSuccess byte = 0xFC

	// RGBStaticMode is the mode byte for "set the whole fan to one
	// static color".
	RGBStaticMode byte = 0x24

	// RGBColorCount is the number of (g, r, b) triplets a SetRgb
	// command always writes, regardless of how many LEDs are actually
	// present on the fan.
	RGBColorCount = 52

	// MaxChannel is the highest 1-based fan channel a single
	// controller exposes.
	MaxChannel = 5

	reportIDPrefix byte = 0x00
)

// Color is a single (red, green, blue) triplet. The wire format transmits
// these as green, red, blue — EncodeSetRgb performs that reordering.
type Color struct {
	R, G, B byte
}

// EncodeInit returns the bytes for the Init command.
func EncodeInit() []byte {
	return []byte{reportIDPrefix, 0xFE, 0x33}
}

// EncodeGetFirmwareVersion returns the bytes for the GetFirmwareVersion
// command.
func EncodeGetFirmwareVersion() []byte {
	return []byte{reportIDPrefix, 0x33, 0x50}
}

// EncodeGetData returns the bytes for the GetData{port} command. port is
// 1-based.
func EncodeGetData(port byte) []byte {
	return []byte{reportIDPrefix, 0x33, 0x51, port}
}

// EncodeSetSpeed returns the bytes for the SetSpeed{port, speed} command.
// port is 1-based; speed is a 0..=100 percentage.
func EncodeSetSpeed(port, speed byte) []byte {
	return []byte{reportIDPrefix, 0x32, 0x51, port, 0x01, speed}
}

// EncodeSetRgb returns the bytes for the SetRgb{port, mode, colors}
// command. The core always writes RGBColorCount triplets regardless of how
// many colors are supplied; missing entries repeat the last supplied color,
// or black if colors is empty.
func EncodeSetRgb(port, mode byte, colors []Color) []byte {
	buf := make([]byte, 0, 5+RGBColorCount*3)
	buf = append(buf, reportIDPrefix, 0x32, 0x52, port, mode)

	var last Color
	for i := 0; i < RGBColorCount; i++ {
		c := last
		if i < len(colors) {
			c = colors[i]
			last = c
		}
		buf = append(buf, c.G, c.R, c.B)
	}
	return buf
}

// StatusResponse is the decoded result of Init/SetSpeed/SetRgb responses.
type StatusResponse struct {
	Status byte
}

// FirmwareVersion is the decoded result of a GetFirmwareVersion response.
type FirmwareVersion struct {
	Major, Minor, Patch byte
}

// String renders the version as "major.minor.patch", matching the control
// endpoint's get_firmware_version contract.
func (v FirmwareVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// DataResponse is the decoded result of a GetData response.
type DataResponse struct {
	Speed byte
	RPM   uint16
}

// DecodeStatus interprets buf as a status response (Init, SetSpeed, SetRgb).
func DecodeStatus(buf []byte) (StatusResponse, error) {
	if len(buf) < ResponseLength {
		return StatusResponse{}, &BufferTooShortError{Expected: ResponseLength, Got: len(buf)}
	}
	status := buf[2]
	if status != StatusSuccess {
		return StatusResponse{}, &InvalidStatusError{Expected: StatusSuccess, Got: status}
	}
	return StatusResponse{Status: status}, nil
}

// DecodeFirmwareVersion interprets buf as a GetFirmwareVersion response.
func DecodeFirmwareVersion(buf []byte) (FirmwareVersion, error) {
	if len(buf) < ResponseLength {
		return FirmwareVersion{}, &BufferTooShortError{Expected: ResponseLength, Got: len(buf)}
	}
	return FirmwareVersion{Major: buf[0], Minor: buf[1], Patch: buf[2]}, nil
}

// DecodeData interprets buf as a GetData response. RPM is little-endian at
// offsets 3 (low byte) and 4 (high byte).
func DecodeData(buf []byte) (DataResponse, error) {
	if len(buf) < ResponseLength {
		return DataResponse{}, &BufferTooShortError{Expected: ResponseLength, Got: len(buf)}
	}
	rpm := uint16(buf[4])<<8 | uint16(buf[3])
	return DataResponse{Speed: buf[2], RPM: rpm}, nil
}
