/*
DESCRIPTION
  exposure.go provides automatic exposure estimation for captured stills. A
  subject region (detected faces, or a centered box) is metered using an
  outlier-trimmed percentile of its brightness samples, and a multiplicative
  gain is derived that drives the subject toward a target brightness.

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
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Gain applied when the subject region yields no usable brightness, e.g. an
// all-black frame.
const fallbackGain = 2.0

// Fraction of samples trimmed from each end of a region before the
// representative sample is taken.
const (
	trimLow  = 0.05
	trimHigh = 0.95
)

// Estimator derives a multiplicative exposure gain from a grayscale image
// and optional face rectangles. The zero value is not useful; populate the
// fields from config.
type Estimator struct {
	// Target is the brightness (0-255) the subject region is driven toward.
	Target float64

	// Min and Max clamp the resulting gain.
	Min, Max float64

	// CenterWeight is the fraction of the frame, centered, metered when no
	// faces are available.
	CenterWeight float64

	// Percentile selects the representative sample of a metering region
	// after trimming, as a percentage rank.
	Percentile uint
}

// Estimate holds the result of an exposure estimation along with diagnostics
// for logging.
type Estimate struct {
	Gain     float64 // The clamped gain.
	Subject  float64 // Representative brightness of the metered subject.
	FullMean float64 // Mean brightness over the whole frame.
	Method   string  // How the subject was metered.
	Faces    int     // Number of face rectangles supplied.
}

// Estimate meters the given image and returns the gain that drives the
// subject region toward the target brightness. When face rectangles are
// given, the subject brightness is the equal-weight mean of the per-face
// representatives; otherwise a centered box is metered. There are no error
// conditions; degenerate inputs resolve through the fallback gain.
func (e Estimator) Estimate(img *image.Gray, faces []image.Rectangle) Estimate {
	est := Estimate{Faces: len(faces), FullMean: meanBrightness(img)}

	vals := make([]float64, 0, len(faces))
	for _, r := range faces {
		v, ok := e.regionBrightness(img, r)
		if ok {
			vals = append(vals, v)
		}
	}

	switch {
	case len(vals) > 0:
		est.Subject = stat.Mean(vals, nil)
		est.Method = fmt.Sprintf("face(%d)", len(vals))
	default:
		b := img.Bounds()
		mx := int(float64(b.Dx()) * (1 - e.CenterWeight) / 2)
		my := int(float64(b.Dy()) * (1 - e.CenterWeight) / 2)
		box := image.Rect(b.Min.X+mx, b.Min.Y+my, b.Max.X-mx, b.Max.Y-my)
		v, ok := e.regionBrightness(img, box)
		if ok {
			est.Subject = v
			est.Method = "center"
		} else {
			est.Method = "none"
		}
	}

	if est.Subject > 0 {
		est.Gain = e.Target / est.Subject
	} else {
		est.Gain = fallbackGain
	}
	est.Gain = clamp(est.Gain, e.Min, e.Max)
	return est
}

// regionBrightness returns the representative brightness of the given region
// of the image. The region is clamped to the image bounds; an empty region
// yields no sample. Samples below the 5th and above the 95th percentile by
// value are trimmed before the representative is selected; if trimming
// removes everything the untrimmed set is used.
func (e Estimator) regionBrightness(img *image.Gray, r image.Rectangle) (float64, bool) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return 0, false
	}

	samples := make([]int, 0, r.Dx()*r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			samples = append(samples, int(img.GrayAt(x, y).Y))
		}
	}
	sort.Ints(samples)
	n := len(samples)

	lo := samples[int(float64(n)*trimLow)]
	hiIdx := int(float64(n) * trimHigh)
	if hiIdx >= n {
		hiIdx = n - 1
	}
	hi := samples[hiIdx]

	// The samples are sorted, so the values kept by a [lo, hi] trim form a
	// contiguous run.
	trimmed := samples[sort.SearchInts(samples, lo):sort.SearchInts(samples, hi+1)]
	if len(trimmed) == 0 {
		trimmed = samples
	}

	idx := int(float64(len(trimmed)) * float64(e.Percentile) / 100)
	if idx >= len(trimmed) {
		idx = len(trimmed) - 1
	}
	return float64(trimmed[idx]), true
}

// meanBrightness returns the mean over all pixels of the image.
func meanBrightness(img *image.Gray) float64 {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	if n == 0 {
		return 0
	}

	var sum uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[(y-img.Rect.Min.Y)*img.Stride : (y-img.Rect.Min.Y)*img.Stride+b.Dx()]
		for _, v := range row {
			sum += uint64(v)
		}
	}
	return float64(sum) / float64(n)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
