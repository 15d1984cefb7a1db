// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Argument is a QEMU command line argument with or without a value.
//
// Its name might be marked to be unique in an [Arguments] list.
type Argument struct {
	name          string
	value         string
	nonUniqueName bool
}

// Name returns the name of the [Argument].
func (a Argument) Name() string {
	return a.name
}

// Value returns the value of the [Argument].
func (a Argument) Value() string {
	return a.value
}

// String implements [fmt.Stringer].
func (a Argument) String() string {
	s := "-" + a.name
	if a.value != "" {
		s += " " + a.value
	}

	return s
}

// Equal compares the [Argument]s.
//
// If the name is marked unique, only names are compared. Otherwise name and
// value are compared.
func (a Argument) Equal(other Argument) bool {
	if a.name != other.name {
		return false
	}

	if a.nonUniqueName {
		return a.value == other.value
	}

	return true
}

// WithValue returns a constructor function that takes a single value and
// returns a new [Argument] with the name of the receiver argument and the
// value passed to the constructor function.
func (a Argument) WithValue() func(string) Argument {
	return func(s string) Argument {
		a := a
		a.value = s

		return a
	}
}

// WithMultiValue is like [Argument.WithValue] but takes multiple values.
func (a Argument) WithMultiValue(separator string) func(...string) Argument {
	return func(s ...string) Argument {
		return a.WithValue()(strings.Join(s, separator))
	}
}

// WithUintValue is like [Argument.WithValue] but takes an unsigned integer
// value instead of a string.
func (a Argument) WithUintValue() func(uint64) Argument {
	return func(i uint64) Argument {
		return a.WithValue()(strconv.FormatUint(i, 10))
	}
}

// UniqueArg returns a new [Argument] with the given name that is marked as
// unique and so can be used in [Arguments] only once.
func UniqueArg(name string) Argument {
	return Argument{
		name: name,
	}
}

// RepeatableArg returns a new [Argument] with the given name that is not
// unique and so can be used in [Arguments] multiple times.
func RepeatableArg(name string) Argument {
	return Argument{
		name:          name,
		nonUniqueName: true,
	}
}

var (
	// Guest memory in MB.
	ArgMemory = UniqueArg("m").WithUintValue()
	// Source medium attached as CD-ROM drive.
	ArgCDROM = UniqueArg("cdrom").WithValue()
	// Source medium attached as primary hard disk.
	ArgHDA = UniqueArg("hda").WithValue()
	// Boot order. "d" boots from CD-ROM, "once=d" only for the first boot.
	ArgBoot = UniqueArg("boot").WithValue()
	// Additional drive according to QEMUs supported drive options.
	ArgDrive = RepeatableArg("drive").WithMultiValue(",")
	// Hardware acceleration via KVM.
	ArgEnableKVM = UniqueArg("enable-kvm")
)

// Arguments is a list of [Argument]s.
//
// Once all [Argument]s are added, call [Arguments.Build] to compile the
// complete QEMU argument string slice.
type Arguments []Argument

// Add adds the given [Argument]s to the list.
func (a *Arguments) Add(e ...Argument) {
	*a = append(*a, e...)
}

// Build compiles the [Argument]s into a slice of strings which can be used
// with [exec.Command].
//
// It returns an error if the name uniqueness constraint of any [Argument] is
// violated.
func (a Arguments) Build() ([]string, error) {
	s := make([]string, 0, len(a))

	for idx, arg := range a {
		if i := slices.IndexFunc(a[:idx], arg.Equal); i != -1 {
			return nil, fmt.Errorf(
				"%w: %s, %s",
				ErrArgumentCollision,
				arg.String(),
				a[i].String(),
			)
		}

		s = append(s, "-"+arg.name)

		if arg.value != "" {
			s = append(s, arg.value)
		}
	}

	return s, nil
}
