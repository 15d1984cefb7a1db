// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"bufio"
	"context"

	"github.com/spf13/cobra"

	"github.com/kderwin/vmlaunch/internal/qlearn"
)

type runOptions struct {
	root *rootOptions

	image        string
	memory       string
	diskSize     string
	bootFromDisk bool
	qemuBin      string
	qemuImg      string
	diskDir      string
	noKVM        bool
	qemuArgs     []string
}

func newRunCommand(root *rootOptions) *cobra.Command {
	opts := &runOptions{root: root}

	cmd := &cobra.Command{
		Use:   "run [image]",
		Short: "Launch a virtual machine from a disk image",
		Long: "Launch a virtual machine from a disk image. Images with an " +
			".iso extension boot as CD-ROM, all others as primary hard " +
			"disk. Image path, memory and disk size are prompted for " +
			"unless given as flags.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.image = args[0]
			}

			return opts.run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(
		&opts.image,
		"image",
		opts.image,
		"path to the disk image to boot",
	)

	cmd.Flags().StringVar(
		&opts.memory,
		"memory",
		opts.memory,
		"guest memory size in MB",
	)

	cmd.Flags().StringVar(
		&opts.diskSize,
		"disk",
		opts.diskSize,
		"size of the persistent disk in GB, empty for none",
	)

	cmd.Flags().BoolVar(
		&opts.bootFromDisk,
		"boot-from-disk",
		opts.bootFromDisk,
		"boot from the persistent disk after installation "+
			"(ISO with persistent disk only)",
	)

	cmd.Flags().StringVar(
		&opts.qemuBin,
		"qemu-bin",
		opts.qemuBin,
		"QEMU binary to use",
	)

	cmd.Flags().StringVar(
		&opts.qemuImg,
		"qemu-img",
		opts.qemuImg,
		"image creation tool to use",
	)

	cmd.Flags().StringVar(
		&opts.diskDir,
		"disk-dir",
		opts.diskDir,
		"directory for persistent overlay disks",
	)

	cmd.Flags().BoolVar(
		&opts.noKVM,
		"nokvm",
		opts.noKVM,
		"disable hardware acceleration",
	)

	cmd.Flags().StringArrayVar(
		&opts.qemuArgs,
		"qemu-arg",
		opts.qemuArgs,
		"extra emulator argument as name or name=value, without the "+
			"leading dash (repeatable)",
	)

	return cmd
}

func (o *runOptions) run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	if o.qemuBin == "" {
		o.qemuBin = cfg.QemuBin
	}

	if o.qemuImg == "" {
		o.qemuImg = cfg.QemuImg
	}

	if o.diskDir == "" {
		o.diskDir = cfg.DiskDir
	}

	s := &session{
		opts:   o,
		cfg:    cfg,
		table:  qlearn.NewTable(),
		in:     bufio.NewScanner(o.root.io.Stdin),
		out:    o.root.io.Stdout,
		errOut: o.root.io.Stderr,
	}

	return s.run(ctx)
}
