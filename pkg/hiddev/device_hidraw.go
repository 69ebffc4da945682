// SPDX-License-Identifier: BSD-3-Clause

//go:build linux
// +build linux

package hiddev

import (
	"fmt"

	hid "github.com/sstallion/go-hid"
)

// Selector identifies which USB HID device to open: a vendor/product id
// pair and an optional serial number used to disambiguate multiple
// attached devices with the same vid/pid.
type Selector struct {
	VendorID  uint16
	ProductID uint16
	Serial    string
}

// hidrawIO backs DeviceIO with github.com/sstallion/go-hid, the library's
// cgo binding over Linux's hidraw/libusb HID API.
type hidrawIO struct {
	dev *hid.Device
}

// Open resolves sel to a hidraw device node and opens it. If sel.Serial is
// empty any device matching VendorID/ProductID is used.
func Open(sel Selector) (DeviceIO, error) {
	var dev *hid.Device
	var err error

	if sel.Serial != "" {
		dev, err = hid.Open(sel.VendorID, sel.ProductID, sel.Serial)
	} else {
		dev, err = hid.OpenFirst(sel.VendorID, sel.ProductID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: vid=0x%04X pid=0x%04X: %w", ErrOpenFailed, sel.VendorID, sel.ProductID, err)
	}
	return &hidrawIO{dev: dev}, nil
}

// Write implements DeviceIO.
func (h *hidrawIO) Write(p []byte) (int, error) {
	n, err := h.dev.Write(p)
	if err != nil {
		return n, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return n, nil
}

// Read implements DeviceIO. A short read is reported as ErrIncompleteRead.
func (h *hidrawIO) Read(p []byte, timeoutMs int) error {
	n, err := h.dev.ReadWithTimeout(p, timeoutMs)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	if n < len(p) {
		return fmt.Errorf("%w: got %d of %d bytes", ErrIncompleteRead, n, len(p))
	}
	return nil
}

// Close implements DeviceIO.
func (h *hidrawIO) Close() error {
	return h.dev.Close()
}

// Init initializes the process-wide HID API ahead of the first Open;
// Shutdown releases it. No code in this module calls either function:
// the HID library initializes itself on the first Open, and the API stays
// initialized until the process exits.
func Init() error {
	return hid.Init()
}

// Shutdown releases the process-wide HID API.
func Shutdown() error {
	return hid.Exit()
}
