// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExecutable is the emulator binary used if none is configured.
const DefaultExecutable = "qemu-system-x86_64"

// LaunchSpec defines the parameters for a [Command].
type LaunchSpec struct {
	// Path to the qemu-system binary.
	Executable string

	// Path to the source disk image to boot. Must be an existing regular
	// file. Images with an ".iso" extension are attached as CD-ROM, all
	// others as primary hard disk.
	Image string

	// Memory for the machine in MB. Must be set.
	Memory uint64

	// Path to a persistent qcow2 disk image to attach. Empty means no
	// persistent disk.
	DiskPath string

	// Boot from the persistent disk on subsequent boots. Only meaningful
	// for an ISO image with a persistent disk attached.
	BootFromDiskAfterInstall bool

	// Disable KVM hardware acceleration.
	NoKVM bool

	// ExtraArgs are extra arguments that are passed to the QEMU command.
	// They must not interfere with the essential arguments set by the
	// command itself or an error will be returned on [NewCommand].
	ExtraArgs []Argument
}

// ApplyDefaults fills unset fields with host defaults.
func (s *LaunchSpec) ApplyDefaults() {
	if s.Executable == "" {
		s.Executable = DefaultExecutable
	}

	if !s.NoKVM {
		s.NoKVM = !KVMAvailable()
	}
}

// IsISO reports whether the source image is attached as CD-ROM.
func (s *LaunchSpec) IsISO() bool {
	return strings.EqualFold(filepath.Ext(s.Image), ".iso")
}

// Validate checks that the spec describes a runnable launch.
func (s *LaunchSpec) Validate() error {
	if s.Executable == "" {
		return &ArgumentError{"no emulator binary given"}
	}

	if s.Memory == 0 {
		return &ArgumentError{"memory size must be a positive integer"}
	}

	if s.Image == "" {
		return &ArgumentError{"no image file given"}
	}

	stat, err := os.Stat(s.Image)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrImageNotFound, s.Image)
	case err != nil:
		return fmt.Errorf("stat image: %w", err)
	case !stat.Mode().IsRegular():
		return fmt.Errorf("%w: %s", ErrImageNotRegular, s.Image)
	}

	return nil
}

// arguments compiles the argument list for the QEMU command.
//
// The media block (-cdrom/-boot or -hda) is compiled last so the boot order
// argument always refers to the drives added before it.
func (s *LaunchSpec) arguments() Arguments {
	args := Arguments{
		ArgMemory(s.Memory),
	}

	if !s.NoKVM {
		args.Add(ArgEnableKVM)
	}

	args.Add(s.ExtraArgs...)

	if s.DiskPath != "" {
		args.Add(ArgDrive("file="+s.DiskPath, "format=qcow2"))
	}

	if s.IsISO() {
		args.Add(ArgCDROM(s.Image))
		args.Add(ArgBoot(s.bootOrder()))
	} else {
		args.Add(ArgHDA(s.Image))
	}

	return args
}

// bootOrder selects the boot order for an ISO source. With a persistent disk
// attached and boot-after-install requested, the CD-ROM is used for the first
// boot only so later boots start from the installed disk.
func (s *LaunchSpec) bootOrder() string {
	if s.BootFromDiskAfterInstall && s.DiskPath != "" {
		return "once=d"
	}

	return "d"
}
