/*
DESCRIPTION
  raster.go provides encoding of images as ESC/POS raster bit images
  (GS v 0). Pixels darker than mid-gray are printed black.

AUTHORS
  Matt Stief <mattstief@users.noreply.github.com>

LICENSE
  Copyright (C) 2026 Matt Stief. All rights reserved.

  Use of this source code is governed by the BSD 2-clause license that can be
  found in the LICENSE file.
*/

package escpos

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// Pixels with luminance below this are printed black.
const blackCutoff = 128

// GS v 0 encodes the row width in bytes and the height as 16 bit quantities.
const maxRasterDim = 0xffff

// Raster prints the given image as a raster bit image (GS v 0, normal mode).
// The image is thresholded at mid-gray; dithering, if wanted, must happen
// upstream.
func (e *Encoder) Raster(img image.Image) error {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return errors.New("cannot raster empty image")
	}

	bytesPerRow := (w + 7) / 8
	if bytesPerRow > maxRasterDim {
		return errors.Errorf("image too wide to raster: %d px", w)
	}
	if h > maxRasterDim {
		return errors.Errorf("image too tall to raster: %d px", h)
	}

	data := make([]byte, bytesPerRow*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray).Y
			if v < blackCutoff {
				data[y*bytesPerRow+x/8] |= 0x80 >> uint(x%8)
			}
		}
	}

	err := e.write(gs, 'v', '0', 0,
		byte(bytesPerRow), byte(bytesPerRow>>8),
		byte(h), byte(h>>8),
	)
	if err != nil {
		return errors.Wrap(err, "could not write raster header")
	}

	_, err = e.dst.Write(data)
	if err != nil {
		return errors.Wrap(err, "could not write raster data")
	}
	return nil
}
