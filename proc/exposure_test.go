/*
DESCRIPTION
  exposure_test.go provides testing for the exposure Estimator.

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
	"math"
	"testing"
)

// uniformGray returns a w by h image with every pixel set to v.
func uniformGray(w, h int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

// fillRect sets every pixel of r within img to v.
func fillRect(img *image.Gray, r image.Rectangle, v uint8) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Pix[img.PixOffset(x, y)] = v
		}
	}
}

func defaultEstimator() Estimator {
	return Estimator{
		Target:       210,
		Min:          0.5,
		Max:          3.0,
		CenterWeight: 0.7,
		Percentile:   30,
	}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEstimateAllBlack(t *testing.T) {
	e := defaultEstimator()
	got := e.Estimate(uniformGray(64, 64, 0), nil)
	if got.Gain != fallbackGain {
		t.Errorf("expected fallback gain %v for all-black frame, got: %v", fallbackGain, got.Gain)
	}
}

func TestEstimateUniform(t *testing.T) {
	e := defaultEstimator()
	for _, v := range []uint8{10, 60, 100, 200, 255} {
		got := e.Estimate(uniformGray(64, 64, v), nil)
		want := clamp(e.Target/float64(v), e.Min, e.Max)
		if !approxEqual(got.Gain, want) {
			t.Errorf("uniform %d: expected gain %v, got: %v", v, want, got.Gain)
		}
		if got.Method != "center" {
			t.Errorf("uniform %d: expected center metering, got: %v", v, got.Method)
		}
		if !approxEqual(got.FullMean, float64(v)) {
			t.Errorf("uniform %d: expected full mean %d, got: %v", v, v, got.FullMean)
		}
	}
}

func TestEstimateWorkedExample(t *testing.T) {
	e := Estimator{Target: 200, Min: 0.5, Max: 3.0, CenterWeight: 0.7, Percentile: 30}
	got := e.Estimate(uniformGray(32, 32, 100), nil)
	if !approxEqual(got.Gain, 2.0) {
		t.Errorf("expected gain 2.0, got: %v", got.Gain)
	}
}

func TestEstimateGainBounds(t *testing.T) {
	e := defaultEstimator()
	imgs := []*image.Gray{
		uniformGray(16, 16, 1),
		uniformGray(16, 16, 255),
		uniformGray(1, 1, 7),
	}
	// Gradient frame.
	grad := image.NewGray(image.Rect(0, 0, 32, 32))
	for i := range grad.Pix {
		grad.Pix[i] = uint8(i % 256)
	}
	imgs = append(imgs, grad)

	for i, img := range imgs {
		got := e.Estimate(img, nil)
		if got.Gain < e.Min || got.Gain > e.Max {
			t.Errorf("image %d: gain %v outside [%v, %v]", i, got.Gain, e.Min, e.Max)
		}
	}
}

func TestEstimateTwoFaces(t *testing.T) {
	e := defaultEstimator()
	e.Percentile = 50

	img := uniformGray(100, 100, 50)
	f1 := image.Rect(10, 10, 30, 30)
	f2 := image.Rect(60, 60, 80, 80)
	fillRect(img, f1, 100)
	fillRect(img, f2, 200)

	got := e.Estimate(img, []image.Rectangle{f1, f2})
	if !approxEqual(got.Subject, 150) {
		t.Errorf("expected subject brightness 150 (mean of 100 and 200), got: %v", got.Subject)
	}
	want := clamp(e.Target/150, e.Min, e.Max)
	if !approxEqual(got.Gain, want) {
		t.Errorf("expected gain %v, got: %v", want, got.Gain)
	}
}

func TestEstimateOutlierTrim(t *testing.T) {
	e := defaultEstimator()
	e.CenterWeight = 1 // Meter the whole frame.
	e.Percentile = 50

	clean := uniformGray(10, 10, 100)
	dirty := uniformGray(10, 10, 100)
	// A few blown-out pixels must not move the estimate.
	dirty.Pix[0] = 255
	dirty.Pix[1] = 255
	dirty.Pix[2] = 255

	cleanEst := e.Estimate(clean, nil)
	dirtyEst := e.Estimate(dirty, nil)
	if !approxEqual(cleanEst.Gain, dirtyEst.Gain) {
		t.Errorf("outliers moved the gain: clean %v, dirty %v", cleanEst.Gain, dirtyEst.Gain)
	}
}

func TestEstimateFaceOutOfBounds(t *testing.T) {
	e := defaultEstimator()

	img := uniformGray(50, 50, 100)

	// A face entirely outside the frame contributes no sample, so metering
	// falls back to the center box.
	got := e.Estimate(img, []image.Rectangle{image.Rect(100, 100, 120, 120)})
	if got.Method != "center" {
		t.Errorf("expected center fallback for out-of-bounds face, got: %v", got.Method)
	}

	// A face partially outside is clamped, not dropped.
	fillRect(img, image.Rect(40, 40, 50, 50), 200)
	got = e.Estimate(img, []image.Rectangle{image.Rect(40, 40, 70, 70)})
	if got.Method != "face(1)" {
		t.Errorf("expected face metering for clamped face, got: %v", got.Method)
	}
	if !approxEqual(got.Subject, 200) {
		t.Errorf("expected subject brightness 200 from clamped face, got: %v", got.Subject)
	}
}
