/*
DESCRIPTION
  proc.go provides the Processor, which turns a captured still into the 1-bit
  image printed on the receipt: optional flips, face detection, exposure
  gain, and dithering.

AUTHORS
  Matt Stief <mattstief@users.noreply.github.com>

LICENSE
  Copyright (C) 2026 Matt Stief. All rights reserved.

  Use of this source code is governed by the BSD 2-clause license that can be
  found in the LICENSE file.
*/

// Package proc provides processing of captured stills for thermal printing:
// orientation flips, automatic exposure correction with optional face
// metering, and reduction to a 1-bit image.
package proc

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/ausocean/utils/logging"
	"github.com/nfnt/resize"

	"github.com/mattstief/photobooth/booth/config"
)

// To indicate package when logging.
const pkg = "proc: "

// FaceDetector finds face rectangles in a grayscale image. Implementations
// must treat failure as zero faces rather than an error.
type FaceDetector interface {
	Detect(img *image.Gray) []image.Rectangle
}

// Processor converts captured stills into 1-bit receipt images according to
// the booth configuration.
type Processor struct {
	log logging.Logger
	cfg config.Config
	det FaceDetector
	est Estimator
}

// New returns a Processor configured from c. det may be nil, in which case
// exposure metering always falls back to the center box.
func New(l logging.Logger, c config.Config, det FaceDetector) *Processor {
	return &Processor{
		log: l,
		cfg: c,
		det: det,
		est: Estimator{
			Target:       c.TargetBrightness,
			Min:          c.BrightnessMin,
			Max:          c.BrightnessMax,
			CenterWeight: c.CenterWeight,
			Percentile:   c.Percentile,
		},
	}
}

// Process runs the full pipeline on a decoded still: grayscale conversion,
// flips, exposure gain (automatic or fixed), and dithering. The returned
// image contains only full black and full white pixels.
func (p *Processor) Process(img image.Image) (image.Image, error) {
	gray := toGray(img)

	if p.cfg.HorizontalFlip {
		gray = flipH(gray)
	}
	if p.cfg.VerticalFlip {
		gray = flipV(gray)
	}

	gain := p.cfg.Brightness
	if p.cfg.AutoBrightness {
		var faces []image.Rectangle
		if p.cfg.FaceDetection && p.det != nil {
			faces = p.det.Detect(gray)
			p.log.Debug(pkg+"face detection complete", "faces", len(faces))
		}
		est := p.est.Estimate(gray, faces)
		gain = est.Gain
		p.log.Info(pkg+"auto exposure", "method", est.Method, "subject", est.Subject, "mean", est.FullMean, "gain", est.Gain)
	}

	gray = enhance(gray, gain)

	// Dithering happens at print resolution, so scale to the printer dot
	// width first.
	if p.cfg.PrinterWidth != 0 && uint(gray.Bounds().Dx()) != p.cfg.PrinterWidth {
		gray = toGray(resize.Resize(p.cfg.PrinterWidth, 0, gray, resize.Lanczos3))
	}

	out, err := dither(gray, p.cfg.Dither)
	if err != nil {
		return nil, fmt.Errorf("could not dither image: %w", err)
	}
	return out, nil
}

// toGray converts any image to grayscale using the standard luminance
// weights.
func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	g := image.NewGray(b)
	draw.Draw(g, b, img, b.Min, draw.Src)
	return g
}

// flipH mirrors the image left-right.
func flipH(img *image.Gray) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.SetGray(b.Max.X-1-(x-b.Min.X), y, img.GrayAt(x, y))
		}
	}
	return out
}

// flipV mirrors the image top-bottom.
func flipV(img *image.Gray) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.SetGray(x, b.Max.Y-1-(y-b.Min.Y), img.GrayAt(x, y))
		}
	}
	return out
}

// enhance multiplies every pixel by gain, rounding and clamping to 255.
func enhance(img *image.Gray, gain float64) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := float64(img.GrayAt(x, y).Y)*gain + 0.5
			if v > 255 {
				v = 255
			}
			out.Pix[out.PixOffset(x, y)] = uint8(v)
		}
	}
	return out
}
