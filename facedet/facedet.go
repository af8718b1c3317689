/*
DESCRIPTION
  facedet.go provides the configuration shared by the Haar cascade face
  detector and its no-op substitute.

AUTHORS
  Matt Stief <mattstief@users.noreply.github.com>

LICENSE
  Copyright (C) 2026 Matt Stief. All rights reserved.

  Use of this source code is governed by the BSD 2-clause license that can be
  found in the LICENSE file.
*/

// Package facedet provides Haar cascade face detection for exposure metering.
// The real detector requires OpenCV and is built with the withcv tag; without
// it a no-op detector is substituted and exposure metering falls back to the
// center of the frame.
package facedet

// To indicate package when logging.
const pkg = "facedet: "

// Params holds the cascade parameters for face detection.
type Params struct {
	// CascadePath is the path of the Haar cascade description file.
	CascadePath string

	// ScaleFactor is the image pyramid scale step, > 1.
	ScaleFactor float64

	// MinNeighbors is the number of neighbouring detections required to
	// retain a face.
	MinNeighbors int

	// MinSize is the minimum face side length in pixels.
	MinSize int
}
