// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kderwin/vmlaunch/internal/launch"
	"github.com/kderwin/vmlaunch/internal/qemu"
	"github.com/kderwin/vmlaunch/internal/qlearn"
)

// session collects launch inputs and issues launches. In interactive mode it
// keeps offering further launches, so the in-memory learner table built from
// earlier launches can prefill the memory prompt.
type session struct {
	opts   *runOptions
	cfg    *Config
	table  *qlearn.Table
	in     *bufio.Scanner
	out    io.Writer
	errOut io.Writer
}

func (s *session) run(ctx context.Context) error {
	// With image and memory given on the command line, this is a scripted
	// one-shot launch.
	interactive := s.opts.image == "" || s.opts.memory == ""

	for {
		spec, err := s.collect(interactive)
		if err != nil {
			return err
		}

		err = launch.Run(ctx, spec, nil, s.out, s.errOut)

		// One observation per started emulator, not tied to its exit
		// status. Launches rejected during validation or disk
		// provisioning leave no trace in the learner.
		var cmdErr *qemu.CommandError
		if err == nil || errors.As(err, &cmdErr) {
			spec.Observe(s.table)
		}

		if !interactive {
			return err
		}

		if err != nil {
			fmt.Fprintf(s.out, "Launch failed: %v\n", err)
		} else {
			fmt.Fprintln(s.out, "Launch finished.")
		}

		if !s.confirm("Launch another VM?") {
			return nil
		}
	}
}

// collect gathers image path, memory and disk size. Values not given as
// flags are prompted for in that order; an unavailable input falls back to
// the prompt default.
func (s *session) collect(interactive bool) (*launch.Spec, error) {
	image := s.opts.image
	if image == "" {
		image = s.prompt("Disk image path", "")
		if image == "" {
			return nil, ErrNoImage
		}
	}

	memoryInput := s.opts.memory
	if memoryInput == "" {
		memoryInput = s.prompt("Memory size in MB", s.memoryDefault(image))
	}

	memory, err := parseMemory(memoryInput)
	if err != nil {
		return nil, err
	}

	diskInput := s.opts.diskSize
	if diskInput == "" && interactive {
		diskInput = s.prompt("Persistent disk size in GB (empty for none)", "")
	}

	diskSize, err := parseDiskSize(diskInput)
	if err != nil {
		return nil, err
	}

	spec := &launch.Spec{
		Qemu: qemu.LaunchSpec{
			Executable:               s.opts.qemuBin,
			Image:                    image,
			Memory:                   memory,
			BootFromDiskAfterInstall: s.opts.bootFromDisk,
			NoKVM:                    s.opts.noKVM,
			ExtraArgs:                parseExtraArgs(s.opts.qemuArgs),
		},
		DiskDir:    s.opts.diskDir,
		DiskSizeGB: diskSize,
		CreateTool: s.opts.qemuImg,
	}

	return spec, nil
}

// memoryDefault prefers a RAM value remembered for the image over the
// configured fallback. The disk choice is not known yet at prompt time, so
// both disk states are consulted.
func (s *session) memoryDefault(image string) string {
	base := filepath.Base(image)

	for _, hasDisk := range []bool{true, false} {
		action, ok := s.table.Suggest(qlearn.LaunchState(base, hasDisk))
		if !ok {
			continue
		}

		memoryMB, err := action.MemoryMB()
		if err != nil {
			continue
		}

		return strconv.FormatUint(memoryMB, 10)
	}

	return strconv.FormatUint(s.cfg.MemoryMB, 10)
}

func (s *session) prompt(label, fallback string) string {
	if fallback != "" {
		fmt.Fprintf(s.out, "%s [%s]: ", label, fallback)
	} else {
		fmt.Fprintf(s.out, "%s: ", label)
	}

	if !s.in.Scan() {
		// Input unavailable.
		fmt.Fprintln(s.out)
		return fallback
	}

	input := strings.TrimSpace(s.in.Text())
	if input == "" {
		return fallback
	}

	return input
}

func (s *session) confirm(label string) bool {
	fmt.Fprintf(s.out, "%s [y/N]: ", label)

	if !s.in.Scan() {
		fmt.Fprintln(s.out)
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(s.in.Text()))

	return answer == "y" || answer == "yes"
}

func parseMemory(input string) (uint64, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(input), 10, 64)
	if err != nil {
		return 0, &ParseError{
			msg: "memory size must be a positive integer",
			err: err,
		}
	}

	if value == 0 {
		return 0, &ParseError{msg: "memory size must be a positive integer"}
	}

	return value, nil
}

// parseExtraArgs parses pass-through emulator arguments given as "name" or
// "name=value", with or without the leading dash. Collisions with the
// essential arguments are detected when the command is compiled.
func parseExtraArgs(inputs []string) []qemu.Argument {
	args := make([]qemu.Argument, 0, len(inputs))

	for _, input := range inputs {
		name, value, found := strings.Cut(input, "=")
		name = strings.TrimPrefix(name, "-")

		if found {
			args = append(args, qemu.UniqueArg(name).WithValue()(value))
		} else {
			args = append(args, qemu.UniqueArg(name))
		}
	}

	return args
}

// parseDiskSize parses the persistent disk size. Empty input means no
// persistent disk.
func parseDiskSize(input string) (uint64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, nil
	}

	value, err := strconv.ParseUint(input, 10, 64)
	if err != nil {
		return 0, &ParseError{
			msg: "disk size must be a positive integer",
			err: err,
		}
	}

	return value, nil
}
