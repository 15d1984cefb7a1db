// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"github.com/spf13/cobra"
)

type rootOptions struct {
	io    IO
	debug bool
}

func newRootCommand(cfgIO IO) *cobra.Command {
	opts := &rootOptions{io: cfgIO}

	root := &cobra.Command{
		Use:   "vmlaunch",
		Short: "Launch QEMU virtual machines from disk images",
		Long: "vmlaunch assembles a QEMU command line for a selected disk " +
			"image, provisions a persistent qcow2 disk on demand and runs " +
			"the emulator. It remembers which RAM size was chosen for an " +
			"image and suggests it on the next launch.",
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			setupLogging(cfgIO.Stderr, opts.debug)
		},
	}

	root.PersistentFlags().BoolVar(
		&opts.debug,
		"debug",
		false,
		"enable debug output",
	)

	root.AddCommand(
		newRunCommand(opts),
		newFilterCommand(opts),
	)

	return root
}
