/*
DESCRIPTION
  dither.go provides reduction of a grayscale image to 1-bit using
  Floyd-Steinberg error diffusion, Atkinson dithering, or a plain threshold.

AUTHORS
  Matt Stief <mattstief@users.noreply.github.com>

LICENSE
  Copyright (C) 2026 Matt Stief. All rights reserved.

  Use of this source code is governed by the BSD 2-clause license that can be
  found in the LICENSE file.
*/

package proc

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	atkinson "github.com/koyachi/go-atkinson"

	"github.com/mattstief/photobooth/booth/config"
)

// Mid-gray cutoff for the threshold mode.
const thresholdCutoff = 128

var monoPalette = color.Palette{color.Black, color.White}

// dither reduces the grayscale image to 1-bit using the given mode. An empty
// mode selects Floyd-Steinberg.
func dither(img *image.Gray, mode string) (image.Image, error) {
	switch mode {
	case config.DitherFloydSteinberg, "":
		b := img.Bounds()
		out := image.NewPaletted(b, monoPalette)
		draw.FloydSteinberg.Draw(out, b, img, b.Min)
		return out, nil

	case config.DitherAtkinson:
		return atkinson.Dither(img)

	case config.DitherThreshold:
		b := img.Bounds()
		out := image.NewPaletted(b, monoPalette)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if img.GrayAt(x, y).Y >= thresholdCutoff {
					out.SetColorIndex(x, y, 1)
				}
			}
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unknown dither mode: %s", mode)
	}
}
