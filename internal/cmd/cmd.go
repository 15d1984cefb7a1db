// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cmd provides the vmlaunch command line interface.
package cmd

import (
	"context"
	"errors"
	"io"

	"github.com/kderwin/vmlaunch/internal/qemu"
)

// IO provides input and output details for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run is the main entry point for the CLI command. It returns the process
// exit code.
func Run(ctx context.Context, args []string, cfg IO) int {
	root := newRootCommand(cfg)
	root.SetArgs(args)
	root.SetIn(cfg.Stdin)
	root.SetOut(cfg.Stdout)
	root.SetErr(cfg.Stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	// Propagate the emulator's own exit code for scripted use.
	var cmdErr *qemu.CommandError
	if errors.As(err, &cmdErr) && cmdErr.ExitCode > 0 {
		return cmdErr.ExitCode
	}

	return 1
}
