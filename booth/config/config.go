/*
DESCRIPTION
  config.go provides the configuration type for a booth instance along with
  validation and map-based updating driven by the Variables table in
  variables.go.

AUTHORS
  Matt Stief <mattstief@users.noreply.github.com>

LICENSE
  Copyright (C) 2026 Matt Stief. All rights reserved.

  Use of this source code is governed by the BSD 2-clause license that can be
  found in the LICENSE file.
*/

// Package config contains the configuration settings for the booth service.
package config

import (
	"time"

	"github.com/ausocean/utils/logging"
)

// Enums to define inputs and triggers.
const (
	// Indicates no option has been set.
	NothingDefined = iota

	// Inputs.
	InputLibcamera
	InputWebcam
	InputFile
	InputManual

	// Triggers.
	TriggerGPIO
	TriggerTouch
	TriggerKeyboard
	TriggerManual
)

// The dithering modes used to reduce the processed photo to 1-bit for the
// thermal print head.
const (
	DitherFloydSteinberg = "floydsteinberg"
	DitherAtkinson       = "atkinson"
	DitherThreshold      = "threshold"
)

// Config provides parameters relevant to a booth instance. A new config must
// be passed to the constructor. Default values for these fields are defined
// as consts in variables.go.
type Config struct {
	// AutoBrightness selects automatic exposure correction of the captured
	// photo. When false the fixed Brightness gain is applied instead.
	AutoBrightness bool

	// Brightness is the fixed multiplicative gain applied to the captured
	// photo when AutoBrightness is off.
	Brightness float64

	BrightnessMax float64 // Upper clamp on the automatic exposure gain.
	BrightnessMin float64 // Lower clamp on the automatic exposure gain.

	// CaptureDelay is the countdown period between a trigger firing and the
	// still being captured.
	CaptureDelay time.Duration

	// CascadePath is the path of the Haar cascade description used for face
	// detection.
	CascadePath string

	// CenterWeight defines the fraction of the frame, centered, sampled for
	// exposure when no face is found. 0.7 samples the middle 70% in each
	// dimension.
	CenterWeight float64

	// DebouncePeriod is the minimum interval between accepted GPIO button
	// presses.
	DebouncePeriod time.Duration

	// Dither selects the 1-bit reduction mode. Valid values are the Dither*
	// consts defined at the start of the file.
	Dither string

	// FaceDetection enables Haar-cascade face detection for exposure
	// metering. Requires a build with the withcv tag; without it detection
	// silently yields no faces and exposure falls back to the center box.
	FaceDetection bool

	FaceMinNeighbors uint    // Minimum neighbour count retained by the cascade.
	FaceMinSize      uint    // Minimum face side length in pixels.
	FaceScaleFactor  float64 // Cascade pyramid scale factor.

	// FooterMessage is printed at the bottom of each receipt.
	FooterMessage string

	Fullscreen bool // Fullscreen selects fullscreen camera preview.
	GPIOPin    uint // GPIOPin is the BCM number of the shutter button pin.
	Height     uint // Height defines the captured still height.

	// HorizontalFlip mirrors the processed photo left-right, as seen from a
	// camera facing the subject.
	HorizontalFlip bool

	// Input defines the still image source.
	//
	// Valid values are defined by enums:
	// InputLibcamera:
	//		Use the libcamera-still utility to capture stills from the
	//		Raspberry Pi camera.
	// InputWebcam:
	//		Grab a frame from a V4L device via ffmpeg.
	// InputFile:
	//		Read a still from a file. Location must be specified in the
	//		InputPath field.
	// InputManual:
	//		Image bytes are written to the booth programmatically.
	Input uint8

	// InputPath defines the input file location for File input, or the V4L
	// device node for Webcam input.
	InputPath string

	// JPEGQuality is a value 0-100 inclusive, controlling JPEG compression of
	// captured stills. 100 represents minimal compression.
	JPEGQuality uint

	// Logger holds an implementation of the logging.Logger interface.
	// This must be set for the booth to work correctly.
	Logger logging.Logger

	// LogLevel is the booth logging verbosity level.
	// Valid values are defined by enums from the logger package: logging.Debug,
	// logging.Info, logging.Warning, logging.Error, logging.Fatal.
	LogLevel int8

	// LongPressPeriod is how long a touch must be held to be treated as a
	// long press, which dismisses the fullscreen preview rather than firing
	// the shutter.
	LongPressPeriod time.Duration

	// OutputDir is the directory processed photos (and receipt spools, when
	// enabled) are archived under.
	OutputDir string

	// Percentile selects the representative brightness sample of a metering
	// region after outlier trimming, as a percentage rank. 50 is the median;
	// lower values expose for the darker part of the subject.
	Percentile uint

	Preview     bool   // Preview runs a live camera preview between captures (Libcamera input only).
	PrinterPath string // PrinterPath is the printer device node, e.g. /dev/usb/lp0.

	// PrinterWidth is the print head width in dots. Photos and decorative
	// lines are rendered at this width.
	PrinterWidth uint

	QRSize   uint // QRSize is the side length in pixels of the printed QR code.
	Rotation uint // Rotation defines the capture rotation angle in degrees for Libcamera input.

	// SpoolReceipts additionally writes the raw bytes of each receipt job to
	// a timestamped file under OutputDir, for inspection without a printer.
	SpoolReceipts bool

	StoreLocation string // Printed beneath the store name.
	StoreName     string // Printed at the top of each receipt, double size.
	StoreQRURL    string // Encoded into the printed QR code.
	StoreSocial   string // Social handle printed in the receipt header.
	StoreSubtitle string // Tagline printed beneath the store name.

	Suppress bool // Holds logger suppression state.

	// TargetBrightness is the brightness (0-255) that automatic exposure
	// drives the subject region toward.
	TargetBrightness float64

	// Triggers defines the inputs that fire the shutter.
	//
	// Valid values are defined by enums:
	// TriggerGPIO:
	//		Arcade button on GPIOPin, active low with pull-up.
	// TriggerTouch:
	//		Touchscreen tap via an evdev touch device. A long press dismisses
	//		the preview instead.
	// TriggerKeyboard:
	//		Spacebar press via an evdev keyboard device.
	// TriggerManual:
	//		Programmatic trigger only.
	Triggers []uint8

	VerticalFlip bool // VerticalFlip flips the processed photo top-bottom.
	Width        uint // Width defines the captured still width.
}

// Validate checks for any errors in the config fields and defaults settings
// if particular parameters have not been defined.
func (c *Config) Validate() error {
	for _, v := range Variables {
		if v.Validate != nil {
			v.Validate(c)
		}
	}
	return nil
}

// Update takes a map of configuration variable names and their corresponding
// values, parses the string values converting into the correct type, and then
// sets the config struct fields as appropriate.
func (c *Config) Update(vars map[string]string) {
	for _, value := range Variables {
		if v, ok := vars[value.Name]; ok && value.Update != nil {
			value.Update(c, v)
		}
	}
}

func (c *Config) LogInvalidField(name string, def interface{}) {
	c.Logger.Info(name+" bad or unset, defaulting", name, def)
}
