// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Command is a single QEMU command that can be run.
//
// Create with [NewCommand].
type Command struct {
	name string
	args []string
}

// NewCommand validates the given [LaunchSpec] and compiles its argument list
// into a runnable [Command].
func NewCommand(spec LaunchSpec) (*Command, error) {
	err := spec.Validate()
	if err != nil {
		return nil, err
	}

	args, err := spec.arguments().Build()
	if err != nil {
		return nil, err
	}

	cmd := &Command{
		name: spec.Executable,
		args: args,
	}

	return cmd, nil
}

// Args returns the complete argument list the emulator binary is invoked
// with.
func (c *Command) Args() []string {
	return c.args
}

// String implements [fmt.Stringer].
func (c *Command) String() string {
	return strings.Join(append([]string{c.name}, c.args...), " ")
}

// Run starts the emulator process and blocks until it terminates.
//
// The process output is drained into the given writers while waiting. If the
// context is canceled, the process is killed. Any failure is wrapped in a
// [CommandError] carrying the process exit code.
func (c *Command) Run(
	ctx context.Context,
	stdin io.Reader,
	stdout, stderr io.Writer,
) error {
	cmd := exec.CommandContext(ctx, c.name, c.args...)
	cmd.Stdin = stdin

	outPipe, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}

	errPipe, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}

	outputGroup := errgroup.Group{}
	outputGroup.Go(func() error {
		_, err := io.Copy(stdout, outPipe)
		return err
	})
	outputGroup.Go(func() error {
		_, err := io.Copy(stderr, errPipe)
		return err
	})

	if err := cmd.Start(); err != nil {
		// Start closes the pipes on failure, so the copiers terminate.
		_ = outputGroup.Wait()

		return &CommandError{
			Err:      fmt.Errorf("start: %w", err),
			ExitCode: -1,
		}
	}

	// The pipes must be drained completely before Wait is called.
	outputErr := outputGroup.Wait()

	if err := cmd.Wait(); err != nil {
		return &CommandError{
			Err:      err,
			ExitCode: cmd.ProcessState.ExitCode(),
		}
	}

	if outputErr != nil {
		return &CommandError{
			Err: fmt.Errorf("drain output: %w", outputErr),
		}
	}

	return nil
}
