// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package fsutil contains utilities for working with the file system.
package fsutil

import (
	"io"
	"os"
	"os/user"
	"path"
	"strings"

	"github.com/pkg/errors"
)

// FileExists returns whether the file or directory exists or an error if something went wrong in the filesystem.
func FileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, errors.Wrapf(err, "failed to FileExists(%q)", path)
}

// IsRegularFile returns whether path exists and is a regular file (not a directory, device, etc.).
// A missing file is not an error.
func IsRegularFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, errors.Wrapf(err, "failed to IsRegularFile(%q)", path)
	}
	return info.Mode().IsRegular(), nil
}

// ReplaceTildeInDir by the user's home directory. Returns dir if it doesn't start with "~".
//
// It returns an error if `dir` has an unknown user or some other filesystem error (e.g: `~unknown/...`)
func ReplaceTildeInDir(dir string) (string, error) {
	if len(dir) == 0 {
		return dir, nil
	}
	if dir[0] != '~' {
		return dir, nil
	}
	var userName string
	if dir != "~" && !strings.HasPrefix(dir, "~/") {
		sepIdx := strings.IndexRune(dir, '/')
		if sepIdx == -1 {
			userName = dir[1:]
		} else {
			userName = dir[1:sepIdx]
		}
	}
	var usr *user.User
	var err error
	if userName == "" {
		usr, err = user.Current()
	} else {
		usr, err = user.Lookup(userName)
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to lookup home directory for user in path %q", dir)
	}
	homeDir := usr.HomeDir
	return path.Join(homeDir, dir[1+len(userName):]), nil
}

// CopyFile copies the contents of src to dst, overwriting dst if it already exists.
// Like `cp -p`, it also carries over the permission bits and the modification time of src.
//
// It returns the number of bytes copied.
func CopyFile(src, dst string) (n int64, err error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to open %q for copying", src)
	}
	defer func() { _ = in.Close() }()
	info, err := in.Stat()
	if err != nil {
		return 0, errors.Wrapf(err, "failed to stat %q", src)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return 0, errors.Wrapf(err, "failed creating %q", dst)
	}
	n, err = io.Copy(out, in)
	if err != nil {
		_ = out.Close()
		return n, errors.Wrapf(err, "copying %q to %q", src, dst)
	}
	if err = out.Close(); err != nil {
		return n, errors.Wrapf(err, "failed closing %q", dst)
	}

	// O_CREATE doesn't change the mode of a pre-existing file.
	if err = os.Chmod(dst, info.Mode().Perm()); err != nil {
		return n, errors.Wrapf(err, "failed to set permissions of %q", dst)
	}
	modTime := info.ModTime()
	if err = os.Chtimes(dst, modTime, modTime); err != nil {
		return n, errors.Wrapf(err, "failed to set modification time of %q", dst)
	}
	return n, nil
}
