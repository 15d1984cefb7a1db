// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package disk provides the persistent qcow2 overlay disk for a source
// image.
//
// The overlay file name is a pure function of the source image path, so
// repeated launches of the same image share one disk. The file is created at
// most once by shelling out to the external image creation tool.
package disk

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// DefaultCreateTool is the image creation binary used if none is configured.
const DefaultCreateTool = "qemu-img"

// overlayNameLen is the number of hex digits of the path hash used for the
// overlay file name.
const overlayNameLen = 8

// OverlayName derives the overlay disk file name for the given source image
// path. Same path, same name, always.
func OverlayName(sourcePath string) string {
	sum := sha256.Sum256([]byte(sourcePath))

	return hex.EncodeToString(sum[:])[:overlayNameLen] + ".qcow2"
}

// CreateFunc allocates a new qcow2 image of the given size at path.
type CreateFunc func(ctx context.Context, path string, sizeGB uint64) error

// CreateTool returns a [CreateFunc] that invokes the given external image
// creation binary as "create -f qcow2 <path> <size>G". The invocation is
// synchronous and its combined output is attached to any error.
func CreateTool(executable string) CreateFunc {
	return func(ctx context.Context, path string, sizeGB uint64) error {
		size := strconv.FormatUint(sizeGB, 10) + "G"
		cmd := exec.CommandContext(
			ctx,
			executable,
			"create", "-f", "qcow2", path, size,
		)

		out, err := cmd.CombinedOutput()
		if err != nil {
			return &CreateError{
				Path:   path,
				Output: string(out),
				Err:    err,
			}
		}

		return nil
	}
}

// Provision ensures the overlay disk for sourcePath exists in dir and
// returns its path.
//
// An existing file is reused as is and create is not invoked. A creation
// failure is fatal to the caller's launch attempt, no path is returned. The
// existence check is the only guard, concurrent calls for the same source
// may race.
func Provision(
	ctx context.Context,
	dir string,
	sourcePath string,
	sizeGB uint64,
	create CreateFunc,
) (string, error) {
	if sizeGB == 0 {
		return "", ErrSizeZero
	}

	path := filepath.Join(dir, OverlayName(sourcePath))

	_, err := os.Stat(path)
	if err == nil {
		slog.Debug("Reusing existing disk", slog.String("path", path))
		return path, nil
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("stat disk: %w", err)
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create disk dir: %w", err)
	}

	if err := create(ctx, path, sizeGB); err != nil {
		return "", err
	}

	slog.Debug("Created disk",
		slog.String("path", path),
		slog.Uint64("sizeGB", sizeGB))

	return path, nil
}
