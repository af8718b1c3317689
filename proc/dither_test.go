/*
DESCRIPTION
  dither_test.go provides testing for the 1-bit reduction modes.

AUTHORS
  Matt Stief <mattstief@users.noreply.github.com>

LICENSE
  Copyright (C) 2026 Matt Stief. All rights reserved.

  Use of this source code is governed by the BSD 2-clause license that can be
  found in the LICENSE file.
*/

package proc

import (
	"image"
	"image/color"
	"testing"

	"github.com/mattstief/photobooth/booth/config"
)

func grayAt(t *testing.T, img image.Image, x, y int) uint8 {
	t.Helper()
	return color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
}

func TestDitherFloydSteinbergExtremes(t *testing.T) {
	black, err := dither(uniformGray(8, 8, 0), config.DitherFloydSteinberg)
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}
	white, err := dither(uniformGray(8, 8, 255), config.DitherFloydSteinberg)
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if v := grayAt(t, black, x, y); v != 0 {
				t.Fatalf("black frame pixel (%d, %d) dithered to %d", x, y, v)
			}
			if v := grayAt(t, white, x, y); v != 255 {
				t.Fatalf("white frame pixel (%d, %d) dithered to %d", x, y, v)
			}
		}
	}
}

func TestDitherThreshold(t *testing.T) {
	dark, err := dither(uniformGray(2, 2, thresholdCutoff-1), config.DitherThreshold)
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}
	light, err := dither(uniformGray(2, 2, thresholdCutoff), config.DitherThreshold)
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}

	if v := grayAt(t, dark, 0, 0); v != 0 {
		t.Errorf("pixel below cutoff thresholded to %d", v)
	}
	if v := grayAt(t, light, 0, 0); v != 255 {
		t.Errorf("pixel at cutoff thresholded to %d", v)
	}
}

func TestDitherUnknownMode(t *testing.T) {
	_, err := dither(uniformGray(2, 2, 0), "halftone")
	if err == nil {
		t.Error("expected error for unknown dither mode")
	}
}
