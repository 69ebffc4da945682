// SPDX-License-Identifier: BSD-3-Clause

package hwmon

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadIntCtxParsesTrimmedValue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "temp1_input")
	require.NoError(t, os.WriteFile(path, []byte("45231\n"), 0o644))

	value, err := ReadIntCtx(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 45231, value)
}

func TestReadIntCtxRejectsEmptyPath(t *testing.T) {
	_, err := ReadIntCtx(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestReadIntCtxMapsMissingFile(t *testing.T) {
	_, err := ReadIntCtx(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestReadIntCtxMapsUnparsableValue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "temp1_input")
	require.NoError(t, os.WriteFile(path, []byte("not-a-number"), 0o644))

	_, err := ReadIntCtx(context.Background(), path)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestReadIntCtxRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	path := filepath.Join(dir, "temp1_input")
	require.NoError(t, os.WriteFile(path, []byte("1"), 0o644))

	_, err := ReadIntCtx(ctx, path)
	assert.ErrorIs(t, err, ErrOperationTimeout)
}

func withTempHwmonRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	original := DefaultHwmonPath
	DefaultHwmonPath = root
	t.Cleanup(func() { DefaultHwmonPath = original })
	return root
}

func makeHwmonDevice(t *testing.T, root, dirName, chip string) {
	t.Helper()
	dir := filepath.Join(root, dirName)
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "name"), []byte(chip+"\n"), 0o644))
}

func TestFindDeviceByNameCtxFindsMatchingDevice(t *testing.T) {
	root := withTempHwmonRoot(t)
	makeHwmonDevice(t, root, "hwmon0", "nct6775")
	makeHwmonDevice(t, root, "hwmon1", "k10temp")

	device, err := FindDeviceByNameCtx(context.Background(), "k10temp")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "hwmon1"), device)
}

func TestFindDeviceByNameCtxReturnsNotFoundForUnknownChip(t *testing.T) {
	root := withTempHwmonRoot(t)
	makeHwmonDevice(t, root, "hwmon0", "nct6775")

	_, err := FindDeviceByNameCtx(context.Background(), "missing-chip")
	assert.ErrorIs(t, err, ErrDeviceNotFound)
}

func TestFindDeviceByNameCtxRejectsEmptyName(t *testing.T) {
	withTempHwmonRoot(t)
	_, err := FindDeviceByNameCtx(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestFindDeviceByNameCtxSkipsUnreadableNameFile(t *testing.T) {
	root := withTempHwmonRoot(t)
	// A hwmon directory with no "name" file at all must be skipped, not
	// treated as an error, so a device that appears mid-scan doesn't abort
	// discovery of the one we're actually looking for.
	require.NoError(t, os.Mkdir(filepath.Join(root, "hwmon0"), 0o755))
	makeHwmonDevice(t, root, "hwmon1", "k10temp")

	device, err := FindDeviceByNameCtx(context.Background(), "k10temp")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "hwmon1"), device)
}
