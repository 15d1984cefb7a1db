// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package launch orchestrates a single emulator launch.
//
// A [Spec] combines the emulator parameters with the persistent disk
// request. [Run] provisions the disk if one is requested, compiles the
// emulator command and blocks until the emulator process terminates.
package launch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/kderwin/vmlaunch/internal/disk"
	"github.com/kderwin/vmlaunch/internal/qemu"
	"github.com/kderwin/vmlaunch/internal/qlearn"
)

// Spec describes a single [Run].
type Spec struct {
	// Emulator parameters. Spec.Qemu.DiskPath is set by [Run] when a disk
	// size is requested.
	Qemu qemu.LaunchSpec

	// Directory the persistent overlay disks live in.
	DiskDir string

	// Size of the persistent disk in GB. 0 means no persistent disk.
	DiskSizeGB uint64

	// Image creation tool binary, e.g. "qemu-img".
	CreateTool string

	// CreateDisk overrides the image creation tool invocation. If nil,
	// [disk.CreateTool] with [Spec.CreateTool] is used.
	CreateDisk disk.CreateFunc
}

// HasDisk reports whether a persistent disk was requested.
func (s *Spec) HasDisk() bool {
	return s.DiskSizeGB > 0
}

// State returns the learner state key for this launch.
func (s *Spec) State() qlearn.State {
	return qlearn.LaunchState(filepath.Base(s.Qemu.Image), s.HasDisk())
}

// Observe records this launch in the given learner table. A launch does not
// change the (image, has-disk) state, so it is passed as its own successor.
func (s *Spec) Observe(table *qlearn.Table) {
	state := s.State()
	action := qlearn.RAMAction(s.Qemu.Memory)
	reward := qlearn.LaunchReward(s.HasDisk())

	table.Update(state, action, reward, state)
}

func (s *Spec) createFunc() disk.CreateFunc {
	if s.CreateDisk != nil {
		return s.CreateDisk
	}

	tool := s.CreateTool
	if tool == "" {
		tool = disk.DefaultCreateTool
	}

	return disk.CreateTool(tool)
}

// Run runs the launch described by the given [Spec].
//
// If a persistent disk is requested, it is provisioned first; a provisioning
// failure aborts the launch before the emulator is started. The emulator
// process inherits the given streams and is waited for. Emulator failures
// are returned to the caller for reporting, the host process stays alive for
// another attempt.
func Run(
	ctx context.Context,
	spec *Spec,
	stdin io.Reader,
	stdout, stderr io.Writer,
) error {
	id := uuid.New()
	log := slog.With(slog.String("launch", id.String()))

	spec.Qemu.ApplyDefaults()

	if err := spec.Qemu.Validate(); err != nil {
		return err
	}

	if spec.HasDisk() {
		path, err := disk.Provision(
			ctx,
			spec.DiskDir,
			spec.Qemu.Image,
			spec.DiskSizeGB,
			spec.createFunc(),
		)
		if err != nil {
			return fmt.Errorf("provision disk: %w", err)
		}

		spec.Qemu.DiskPath = path

		log.Debug("Persistent disk attached", slog.String("path", path))
	}

	cmd, err := qemu.NewCommand(spec.Qemu)
	if err != nil {
		return err
	}

	log.Debug("Launching emulator", slog.String("command", cmd.String()))

	err = cmd.Run(ctx, stdin, stdout, stderr)
	if err != nil {
		return fmt.Errorf("launch %s: %w", id, err)
	}

	log.Debug("Emulator terminated")

	return nil
}
