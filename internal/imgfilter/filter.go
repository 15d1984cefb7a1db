// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imgfilter applies the fixed picture filter.
//
// Decoding, encoding and format negotiation are delegated entirely to the
// imaging library; the destination file format follows the destination
// extension.
package imgfilter

import (
	"fmt"

	"github.com/disintegration/imaging"
)

// blurSigma is the fixed strength of the blur filter.
const blurSigma = 3.5

// Blur loads the picture at src, applies the fixed blur and saves the result
// to dst.
func Blur(src, dst string) error {
	img, err := imaging.Open(src)
	if err != nil {
		return fmt.Errorf("open picture: %w", err)
	}

	err = imaging.Save(imaging.Blur(img, blurSigma), dst)
	if err != nil {
		return fmt.Errorf("save picture: %w", err)
	}

	return nil
}
