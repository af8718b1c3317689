//go:build !withcv
// +build !withcv

/*
DESCRIPTION
  detector_nocv.go replaces the Haar cascade detector for builds without
  OpenCV. Detection always reports zero faces, so exposure metering falls
  back to the center of the frame.

AUTHORS
  Matt Stief <mattstief@users.noreply.github.com>

LICENSE
  Copyright (C) 2026 Matt Stief. All rights reserved.

  Use of this source code is governed by the BSD 2-clause license that can be
  found in the LICENSE file.
*/

package facedet

import (
	"image"

	"github.com/ausocean/utils/logging"
)

// Detector is a no-op substitute for the OpenCV backed detector.
type Detector struct{}

// New returns a no-op Detector and logs that face detection is unavailable.
func New(l logging.Logger, p Params) (*Detector, error) {
	l.Warning(pkg + "face detection unavailable in this build")
	return &Detector{}, nil
}

// Detect always reports zero faces.
func (d *Detector) Detect(img *image.Gray) []image.Rectangle { return nil }

// Close is a no-op.
func (d *Detector) Close() error { return nil }
