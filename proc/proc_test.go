/*
DESCRIPTION
  proc_test.go provides testing for the image processing pipeline: flips,
  enhancement and end to end processing.

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

type dumbLogger struct{}

func (dl *dumbLogger) Log(l int8, m string, a ...interface{})  {}
func (dl *dumbLogger) SetLevel(l int8)                         {}
func (dl *dumbLogger) Debug(msg string, args ...interface{})   {}
func (dl *dumbLogger) Info(msg string, args ...interface{})    {}
func (dl *dumbLogger) Warning(msg string, args ...interface{}) {}
func (dl *dumbLogger) Error(msg string, args ...interface{})   {}
func (dl *dumbLogger) Fatal(msg string, args ...interface{})   {}

func TestFlipH(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.Pix = []uint8{
		1, 2,
		3, 4,
	}
	got := flipH(img)
	want := []uint8{
		2, 1,
		4, 3,
	}
	for i := range want {
		if got.Pix[i] != want[i] {
			t.Fatalf("unexpected pixels\nwant: %v\ngot: %v", want, got.Pix)
		}
	}
}

func TestFlipV(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.Pix = []uint8{
		1, 2,
		3, 4,
	}
	got := flipV(img)
	want := []uint8{
		3, 4,
		1, 2,
	}
	for i := range want {
		if got.Pix[i] != want[i] {
			t.Fatalf("unexpected pixels\nwant: %v\ngot: %v", want, got.Pix)
		}
	}
}

func TestEnhance(t *testing.T) {
	tests := []struct {
		in   uint8
		gain float64
		want uint8
	}{
		{100, 1.5, 150},
		{100, 1.0, 100},
		{200, 2.0, 255}, // Clamped.
		{0, 3.0, 0},
		{101, 0.5, 51}, // Rounded, not truncated.
	}

	for _, test := range tests {
		img := uniformGray(1, 1, test.in)
		got := enhance(img, test.gain).Pix[0]
		if got != test.want {
			t.Errorf("enhance(%d, %v): want %d, got %d", test.in, test.gain, test.want, got)
		}
	}
}

func TestProcess(t *testing.T) {
	c := config.Config{
		Logger:           &dumbLogger{},
		AutoBrightness:   true,
		HorizontalFlip:   true,
		Dither:           config.DitherFloydSteinberg,
		TargetBrightness: 210,
		BrightnessMin:    0.5,
		BrightnessMax:    3.0,
		CenterWeight:     0.7,
		Percentile:       30,
	}

	img := image.NewGray(image.Rect(0, 0, 32, 32))
	for i := range img.Pix {
		img.Pix[i] = uint8(i % 256)
	}

	p := New(&dumbLogger{}, c, nil)
	out, err := p.Process(img)
	if err != nil {
		t.Fatalf("did not expect error from Process: %v", err)
	}

	if out.Bounds() != img.Bounds() {
		t.Errorf("bounds changed: want %v, got %v", img.Bounds(), out.Bounds())
	}

	// The output must be pure black and white.
	for y := out.Bounds().Min.Y; y < out.Bounds().Max.Y; y++ {
		for x := out.Bounds().Min.X; x < out.Bounds().Max.X; x++ {
			v := color.GrayModel.Convert(out.At(x, y)).(color.Gray).Y
			if v != 0 && v != 255 {
				t.Fatalf("pixel (%d, %d) is not 1-bit: %d", x, y, v)
			}
		}
	}
}

func TestProcessResizesToPrinterWidth(t *testing.T) {
	c := config.Config{
		Logger:       &dumbLogger{},
		Brightness:   1.0,
		Dither:       config.DitherThreshold,
		PrinterWidth: 64,
	}

	p := New(&dumbLogger{}, c, nil)
	out, err := p.Process(uniformGray(32, 16, 200))
	if err != nil {
		t.Fatalf("did not expect error from Process: %v", err)
	}

	if out.Bounds().Dx() != 64 || out.Bounds().Dy() != 32 {
		t.Errorf("unexpected output size %dx%d, want 64x32", out.Bounds().Dx(), out.Bounds().Dy())
	}
}

func TestProcessFixedGain(t *testing.T) {
	c := config.Config{
		Logger:     &dumbLogger{},
		Brightness: 2.0,
		Dither:     config.DitherThreshold,
	}

	// 100 * 2.0 = 200, above the threshold cutoff, so the result is white.
	p := New(&dumbLogger{}, c, nil)
	out, err := p.Process(uniformGray(4, 4, 100))
	if err != nil {
		t.Fatalf("did not expect error from Process: %v", err)
	}

	v := color.GrayModel.Convert(out.At(0, 0)).(color.Gray).Y
	if v != 255 {
		t.Errorf("expected white pixel after fixed gain, got: %d", v)
	}
}
