/*
DESCRIPTION
  lines_test.go provides testing for the decorative dotted line bitmaps.

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
	"testing"
)

func TestLineDimensions(t *testing.T) {
	const width = 470
	tests := []struct {
		name   string
		img    *image.Gray
		height int
	}{
		{"top coarse", TopCoarseLine(width), 8},
		{"top fine", TopFineLine(width), 10},
		{"bottom fine", BottomFineLine(width), 8},
		{"bottom coarse", BottomCoarseLine(width), 20},
	}

	for _, test := range tests {
		b := test.img.Bounds()
		if b.Dx() != width || b.Dy() != test.height {
			t.Errorf("%s: unexpected size %dx%d, want %dx%d", test.name, b.Dx(), b.Dy(), width, test.height)
		}
	}
}

func TestDashPattern(t *testing.T) {
	img := dashedLine(100, 3, 30, 4, 0, 2)

	// Dashes cover dashWidth-1 pixels starting at multiples of dashWidth+gap.
	for _, y := range []int{0, 2} {
		if img.GrayAt(0, y).Y != 0 {
			t.Errorf("expected dash start black at row %d", y)
		}
		if img.GrayAt(28, y).Y != 0 {
			t.Errorf("expected dash body black at row %d", y)
		}
		if img.GrayAt(29, y).Y != 255 {
			t.Errorf("expected pixel after dash white at row %d", y)
		}
		if img.GrayAt(33, y).Y != 255 {
			t.Errorf("expected gap white at row %d", y)
		}
		if img.GrayAt(34, y).Y != 0 {
			t.Errorf("expected second dash black at row %d", y)
		}
	}

	// The row between the dashes stays white.
	for x := 0; x < 100; x++ {
		if img.GrayAt(x, 1).Y != 255 {
			t.Fatalf("expected spacer row white at x %d", x)
		}
	}
}
