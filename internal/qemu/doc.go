// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package qemu provides the QEMU argument model and process invocation.
//
// A [LaunchSpec] describes a single launch. It is compiled into an ordered
// argument list and run as a [Command] that blocks until the emulator
// process terminates.
package qemu
