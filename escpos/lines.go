/*
DESCRIPTION
  lines.go provides generation of the decorative dotted line bitmaps printed
  above and below the receipt header. Two geometries are used: a coarse dash
  and a fine dash, each as a stacked double row.

AUTHORS
  Matt Stief <mattstief@users.noreply.github.com>

LICENSE
  Copyright (C) 2026 Matt Stief. All rights reserved.

  Use of this source code is governed by the BSD 2-clause license that can be
  found in the LICENSE file.
*/

package escpos

import "image"

// Dash geometries.
const (
	coarseDash = 30
	coarseGap  = 4
	fineDash   = 3
	fineGap    = 3
)

// dashedLine returns a white image of the given width and height with dashed
// rows drawn at the given y offsets. Each dash covers dashWidth-1 pixels
// with gap white pixels between dashes.
func dashedLine(width, height, dashWidth, gap int, rows ...int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 255
	}

	for _, y := range rows {
		for x := 0; x < width; x += dashWidth + gap {
			end := x + dashWidth - 1
			if end > width {
				end = width
			}
			for dx := x; dx < end; dx++ {
				img.Pix[y*img.Stride+dx] = 0
			}
		}
	}
	return img
}

// TopCoarseLine returns the coarse dashed double line printed at the very
// top of the receipt: rows at y 0 and 2 with trailing white space.
func TopCoarseLine(width int) *image.Gray {
	return dashedLine(width, 8, coarseDash, coarseGap, 0, 2)
}

// TopFineLine returns the fine dashed double line printed beneath the top
// coarse line.
func TopFineLine(width int) *image.Gray {
	return dashedLine(width, 10, fineDash, fineGap, 0, 1)
}

// BottomFineLine returns the fine dashed double line printed beneath the
// header text.
func BottomFineLine(width int) *image.Gray {
	return dashedLine(width, 8, fineDash, fineGap, 0, 1)
}

// BottomCoarseLine returns the coarse dashed double line closing the header,
// with extra white space before the photo.
func BottomCoarseLine(width int) *image.Gray {
	return dashedLine(width, 20, coarseDash, coarseGap, 0, 2)
}
