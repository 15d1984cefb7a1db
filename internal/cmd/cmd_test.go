// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kderwin/vmlaunch/internal/cmd"
)

func createImage(t *testing.T, name string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("image"), 0o600))

	return path
}

func run(t *testing.T, stdin string, args ...string) (int, string) {
	t.Helper()

	out := &bytes.Buffer{}

	rc := cmd.Run(context.Background(), args, cmd.IO{
		Stdin:  strings.NewReader(stdin),
		Stdout: out,
		Stderr: out,
	})

	return rc, out.String()
}

func TestRunCommand(t *testing.T) {
	t.Run("scripted launch", func(t *testing.T) {
		iso := createImage(t, "x.iso")

		rc, _ := run(t, "",
			"run",
			"--image", iso,
			"--memory", "4096",
			"--qemu-bin", "true",
			"--nokvm",
		)
		assert.Equal(t, 0, rc)
	})

	t.Run("emulator exit code is propagated", func(t *testing.T) {
		iso := createImage(t, "x.iso")

		rc, _ := run(t, "",
			"run",
			"--image", iso,
			"--memory", "4096",
			"--qemu-bin", "false",
			"--nokvm",
		)
		assert.Equal(t, 1, rc)
	})

	t.Run("extra emulator argument", func(t *testing.T) {
		iso := createImage(t, "x.iso")

		rc, _ := run(t, "",
			"run",
			"--image", iso,
			"--memory", "4096",
			"--qemu-bin", "true",
			"--nokvm",
			"--qemu-arg", "snapshot",
		)
		assert.Equal(t, 0, rc)
	})

	t.Run("colliding extra argument", func(t *testing.T) {
		iso := createImage(t, "x.iso")

		rc, out := run(t, "",
			"run",
			"--image", iso,
			"--memory", "4096",
			"--qemu-bin", "true",
			"--nokvm",
			"--qemu-arg", "m=512",
		)
		assert.Equal(t, 1, rc)
		assert.Contains(t, out, "colliding args")
	})

	t.Run("non numeric memory", func(t *testing.T) {
		iso := createImage(t, "x.iso")

		rc, out := run(t, "",
			"run",
			"--image", iso,
			"--memory", "lots",
			"--qemu-bin", "true",
			"--nokvm",
		)
		assert.Equal(t, 1, rc)
		assert.Contains(t, out, "memory size must be a positive integer")
	})

	t.Run("missing image file", func(t *testing.T) {
		rc, out := run(t, "",
			"run",
			"--image", filepath.Join(t.TempDir(), "missing.iso"),
			"--memory", "4096",
			"--qemu-bin", "true",
			"--nokvm",
		)
		assert.Equal(t, 1, rc)
		assert.Contains(t, out, "image file not found")
	})

	t.Run("interactive launch", func(t *testing.T) {
		iso := createImage(t, "x.iso")

		// Prompts: image path, memory, disk size; then decline another
		// launch.
		stdin := iso + "\n4096\n\nn\n"

		rc, out := run(t, stdin,
			"run",
			"--qemu-bin", "true",
			"--nokvm",
		)
		assert.Equal(t, 0, rc)
		assert.Contains(t, out, "Disk image path: ")
		assert.Contains(t, out, "Memory size in MB")
		assert.Contains(t, out, "Persistent disk size in GB")
		assert.Contains(t, out, "Launch finished.")
		assert.Contains(t, out, "Launch another VM? [y/N]: ")
	})

	t.Run("interactive launch failure keeps process alive", func(t *testing.T) {
		iso := createImage(t, "x.iso")

		stdin := iso + "\n4096\n\nn\n"

		rc, out := run(t, stdin,
			"run",
			"--qemu-bin", "false",
			"--nokvm",
		)
		assert.Equal(t, 0, rc)
		assert.Contains(t, out, "Launch failed: ")
		assert.Contains(t, out, "Launch another VM? [y/N]: ")
	})

	t.Run("no image given", func(t *testing.T) {
		rc, out := run(t, "\n", "run", "--qemu-bin", "true")
		assert.Equal(t, 1, rc)
		assert.Contains(t, out, "no disk image given")
	})
}

func TestFilterCommand(t *testing.T) {
	t.Run("filters picture", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 4, 4))
		img.Set(1, 1, color.RGBA{255, 0, 0, 255})

		src := filepath.Join(t.TempDir(), "src.png")
		f, err := os.Create(src)
		require.NoError(t, err)
		require.NoError(t, png.Encode(f, img))
		require.NoError(t, f.Close())

		dst := filepath.Join(t.TempDir(), "dst.png")

		rc, out := run(t, "", "filter", src, dst)
		assert.Equal(t, 0, rc)
		assert.Contains(t, out, "Saved filtered picture to "+dst)
		assert.FileExists(t, dst)
	})

	t.Run("missing source", func(t *testing.T) {
		rc, _ := run(t, "",
			"filter",
			"no-such-picture.png",
			filepath.Join(t.TempDir(), "dst.png"),
		)
		assert.Equal(t, 1, rc)
	})

	t.Run("wrong number of args", func(t *testing.T) {
		rc, _ := run(t, "", "filter", "only-one.png")
		assert.Equal(t, 1, rc)
	})
}
