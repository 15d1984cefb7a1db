// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/kderwin/vmlaunch/internal/disk"
	"github.com/kderwin/vmlaunch/internal/qemu"
)

// Config holds the vmlaunch defaults. Values come from built-in defaults, an
// optional config file in the user config directory and VMLAUNCH_* environment
// variables.
type Config struct {
	// QemuBin is the emulator binary.
	QemuBin string `mapstructure:"qemu_bin"`

	// QemuImg is the image creation tool binary.
	QemuImg string `mapstructure:"qemu_img"`

	// DiskDir is the directory persistent overlay disks are created in.
	DiskDir string `mapstructure:"disk_dir"`

	// MemoryMB is the fallback guest memory size for the prompt.
	MemoryMB uint64 `mapstructure:"memory_mb"`
}

// LoadConfig reads the configuration from file, environment and defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("qemu_bin", qemu.DefaultExecutable)
	v.SetDefault("qemu_img", disk.DefaultCreateTool)
	v.SetDefault("disk_dir", defaultDiskDir())
	v.SetDefault("memory_mb", uint64(2048))

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "vmlaunch"))
	}

	v.SetEnvPrefix("VMLAUNCH")
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}

	err = v.Unmarshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

func defaultDiskDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "vmlaunch", "disks")
	}

	return filepath.Join(home, ".local", "share", "vmlaunch", "disks")
}
