// SPDX-License-Identifier: BSD-3-Clause

package hwmon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"syscall"
)

// DefaultHwmonPath is the path to hwmon devices in sysfs. A package-level
// var rather than a const so tests can point it at a temporary directory.
var DefaultHwmonPath = "/sys/class/hwmon"

// ReadIntCtx reads an integer value from the specified hwmon file path with context support.
func ReadIntCtx(ctx context.Context, path string) (int, error) {
	if path == "" {
		return 0, fmt.Errorf("%w: path cannot be empty", ErrInvalidPath)
	}

	done := make(chan struct {
		value int
		err   error
	}, 1)

	go func() {
		data, err := os.ReadFile(path)
		if err != nil {
			done <- struct {
				value int
				err   error
			}{0, mapFileError(err, path)}
			return
		}

		value, err := strconv.Atoi(strings.TrimSpace(string(data)))
		if err != nil {
			done <- struct {
				value int
				err   error
			}{0, fmt.Errorf("%w: failed to parse integer from %s: %w", ErrInvalidValue, path, err)}
			return
		}

		done <- struct {
			value int
			err   error
		}{value, nil}
	}()

	select {
	case result := <-done:
		return result.value, result.err
	case <-ctx.Done():
		return 0, fmt.Errorf("%w: %w", ErrOperationTimeout, ctx.Err())
	}
}

// readStringCtx reads a string value from the specified hwmon file path with context support.
func readStringCtx(ctx context.Context, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: path cannot be empty", ErrInvalidPath)
	}

	done := make(chan struct {
		value string
		err   error
	}, 1)

	go func() {
		data, err := os.ReadFile(path)
		if err != nil {
			done <- struct {
				value string
				err   error
			}{"", mapFileError(err, path)}
			return
		}

		value := strings.TrimSpace(string(data))
		done <- struct {
			value string
			err   error
		}{value, nil}
	}()

	select {
	case result := <-done:
		return result.value, result.err
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %w", ErrOperationTimeout, ctx.Err())
	}
}

// listDevicesInPathCtx returns the hwmon device directories under hwmonPath.
func listDevicesInPathCtx(ctx context.Context, hwmonPath string) ([]string, error) {
	if hwmonPath == "" {
		return nil, fmt.Errorf("%w: hwmon path cannot be empty", ErrInvalidPath)
	}

	done := make(chan struct {
		devices []string
		err     error
	}, 1)

	go func() {
		entries, err := os.ReadDir(hwmonPath)
		if err != nil {
			done <- struct {
				devices []string
				err     error
			}{nil, mapFileError(err, hwmonPath)}
			return
		}

		var devices []string
		hwmonPattern := regexp.MustCompile(`^hwmon\d+$`)

		for _, entry := range entries {
			if hwmonPattern.MatchString(entry.Name()) {
				devicePath := filepath.Join(hwmonPath, entry.Name())
				// Use os.Stat to follow symlinks and verify it's a directory.
				if stat, err := os.Stat(devicePath); err == nil && stat.IsDir() {
					devices = append(devices, devicePath)
				}
			}
		}

		done <- struct {
			devices []string
			err     error
		}{devices, nil}
	}()

	select {
	case result := <-done:
		return result.devices, result.err
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrOperationTimeout, ctx.Err())
	}
}

// FindDeviceByNameCtx finds a hwmon device directory by its "name" attribute,
// searching DefaultHwmonPath.
func FindDeviceByNameCtx(ctx context.Context, deviceName string) (string, error) {
	if deviceName == "" {
		return "", fmt.Errorf("%w: device name cannot be empty", ErrInvalidPath)
	}

	devices, err := listDevicesInPathCtx(ctx, DefaultHwmonPath)
	if err != nil {
		return "", err
	}

	for _, device := range devices {
		nameFile := filepath.Join(device, "name")
		name, err := readStringCtx(ctx, nameFile)
		if err != nil {
			continue // Skip devices where we can't read the name.
		}

		if name == deviceName {
			return device, nil
		}
	}

	return "", fmt.Errorf("%w: device with name '%s'", ErrDeviceNotFound, deviceName)
}

// mapFileError maps OS file errors to hwmon package errors.
func mapFileError(err error, path string) error {
	if err == nil {
		return nil
	}

	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if os.IsPermission(err) {
		return fmt.Errorf("%w: %s", ErrPermissionDenied, path)
	}
	var pe *os.PathError
	if errors.As(err, &pe) {
		var errno syscall.Errno
		if errors.As(pe.Err, &errno) && errno == syscall.EINVAL {
			return fmt.Errorf("%w: %s: %w", ErrInvalidValue, path, err)
		}
	}
	return fmt.Errorf("%w: %s: %w", ErrReadFailure, path, err)
}
