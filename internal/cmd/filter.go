// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kderwin/vmlaunch/internal/imgfilter"
)

func newFilterCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "filter <picture> <output>",
		Short: "Apply the blur filter to a picture and save the result",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			err := imgfilter.Blur(args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Fprintf(root.io.Stdout, "Saved filtered picture to %s\n", args[1])

			return nil
		},
	}
}
