// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package fsutil

import (
	"os"
	"os/user"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	filePath := path.Join(dir, "a.txt")
	exists, err := FileExists(filePath)
	require.NoError(t, err)
	assert.False(t, exists)
	require.NoError(t, os.WriteFile(filePath, []byte("a"), 0644))
	exists, err = FileExists(filePath)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = FileExists(dir)
	require.NoError(t, err)
	assert.True(t, exists)

	isRegular, err := IsRegularFile(filePath)
	require.NoError(t, err)
	assert.True(t, isRegular)
	isRegular, err = IsRegularFile(dir)
	require.NoError(t, err)
	assert.False(t, isRegular)
	isRegular, err = IsRegularFile(path.Join(dir, "missing"))
	require.NoError(t, err)
	assert.False(t, isRegular)
}

func TestReplaceTildeInDir(t *testing.T) {
	usr, err := user.Current()
	require.NoError(t, err)

	got, err := ReplaceTildeInDir("~/datasets")
	require.NoError(t, err)
	assert.Equal(t, path.Join(usr.HomeDir, "datasets"), got)

	got, err = ReplaceTildeInDir("~")
	require.NoError(t, err)
	assert.Equal(t, path.Clean(usr.HomeDir), got)

	for _, dir := range []string{"relative/dir", "/abs/dir", ""} {
		got, err = ReplaceTildeInDir(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, got)
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := path.Join(dir, "src.bin")
	dst := path.Join(dir, "dst.bin")
	contents := []byte{0, 1, 2, 3, 0xFF, 'x'}
	require.NoError(t, os.WriteFile(src, contents, 0640))
	modTime := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, modTime, modTime))

	n, err := CopyFile(src, dst)
	require.NoError(t, err)
	assert.Equal(t, int64(len(contents)), n)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, contents, got)
	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(modTime), "modification time not preserved: %s", info.ModTime())
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())

	// Overwrites a longer pre-existing file.
	require.NoError(t, os.WriteFile(dst, []byte("some much longer previous content"), 0600))
	_, err = CopyFile(src, dst)
	require.NoError(t, err)
	got, err = os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, contents, got)

	_, err = CopyFile(path.Join(dir, "missing"), dst)
	require.Error(t, err)
}
