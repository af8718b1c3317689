//go:build withcv
// +build withcv

/*
DESCRIPTION
  detector.go provides a face detector backed by an OpenCV Haar cascade
  classifier.

AUTHORS
  Matt Stief <mattstief@users.noreply.github.com>

LICENSE
  Copyright (C) 2026 Matt Stief. All rights reserved.

  Use of this source code is governed by the BSD 2-clause license that can be
  found in the LICENSE file.
*/

package facedet

import (
	"fmt"
	"image"

	"github.com/ausocean/utils/logging"
	"gocv.io/x/gocv"
)

// Detector finds faces in grayscale images using a Haar cascade classifier.
// Detector is not safe for concurrent use.
type Detector struct {
	log        logging.Logger
	classifier gocv.CascadeClassifier
	params     Params
}

// New returns a Detector with the cascade at p.CascadePath loaded. Detectors
// hold OpenCV resources and must be closed after use.
func New(l logging.Logger, p Params) (*Detector, error) {
	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(p.CascadePath) {
		classifier.Close()
		return nil, fmt.Errorf("could not load cascade file: %s", p.CascadePath)
	}
	l.Info(pkg+"cascade loaded", "path", p.CascadePath)
	return &Detector{log: l, classifier: classifier, params: p}, nil
}

// Detect returns the face rectangles found in img. Failures are logged and
// reported as zero faces.
func (d *Detector) Detect(img *image.Gray) []image.Rectangle {
	mat, err := gocv.ImageGrayToMatGray(img)
	if err != nil {
		d.log.Warning(pkg+"could not convert image for detection", "error", err)
		return nil
	}
	defer mat.Close()

	return d.classifier.DetectMultiScaleWithParams(
		mat,
		d.params.ScaleFactor,
		d.params.MinNeighbors,
		0,
		image.Pt(d.params.MinSize, d.params.MinSize),
		image.Pt(0, 0),
	)
}

// Close releases the classifier's OpenCV resources.
func (d *Detector) Close() error {
	return d.classifier.Close()
}
