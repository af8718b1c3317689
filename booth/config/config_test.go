/*
DESCRIPTION
  config_test.go provides testing for the Config struct methods (Validate and Update).

AUTHORS
  Matt Stief <mattstief@users.noreply.github.com>

LICENSE
  Copyright (C) 2026 Matt Stief. All rights reserved.

  Use of this source code is governed by the BSD 2-clause license that can be
  found in the LICENSE file.
*/

package config

import (
	"testing"
	"time"

	"github.com/ausocean/utils/logging"
	"github.com/google/go-cmp/cmp"
)

type dumbLogger struct{}

func (dl *dumbLogger) Log(l int8, m string, a ...interface{})  {}
func (dl *dumbLogger) SetLevel(l int8)                         {}
func (dl *dumbLogger) Debug(msg string, args ...interface{})   {}
func (dl *dumbLogger) Info(msg string, args ...interface{})    {}
func (dl *dumbLogger) Warning(msg string, args ...interface{}) {}
func (dl *dumbLogger) Error(msg string, args ...interface{})   {}
func (dl *dumbLogger) Fatal(msg string, args ...interface{})   {}

func TestValidate(t *testing.T) {
	dl := &dumbLogger{}

	want := Config{
		Logger:           dl,
		Input:            defaultInput,
		LogLevel:         defaultVerbosity,
		Width:            defaultWidth,
		Height:           defaultHeight,
		JPEGQuality:      defaultJPEGQuality,
		CaptureDelay:     defaultCaptureDelay,
		LongPressPeriod:  defaultLongPressPeriod,
		DebouncePeriod:   defaultDebouncePeriod,
		GPIOPin:          defaultGPIOPin,
		Brightness:       defaultBrightness,
		TargetBrightness: defaultTargetBrightness,
		BrightnessMin:    defaultBrightnessMin,
		BrightnessMax:    defaultBrightnessMax,
		CenterWeight:     defaultCenterWeight,
		Percentile:       defaultPercentile,
		FaceScaleFactor:  defaultFaceScaleFactor,
		FaceMinNeighbors: defaultFaceMinNeighbors,
		FaceMinSize:      defaultFaceMinSize,
		CascadePath:      defaultCascadePath,
		Dither:           defaultDither,
		PrinterPath:      defaultPrinterPath,
		PrinterWidth:     defaultPrinterWidth,
		QRSize:           defaultQRSize,
		OutputDir:        defaultOutputDir,
		StoreName:        defaultStoreName,
		StoreSubtitle:    defaultStoreSubtitle,
		StoreLocation:    defaultStoreLocation,
		StoreSocial:      defaultStoreSocial,
		StoreQRURL:       defaultStoreQRURL,
		FooterMessage:    defaultFooterMessage,
		Triggers:         []uint8{TriggerGPIO, TriggerTouch, TriggerKeyboard},
	}

	got := Config{Logger: dl}
	err := (&got).Validate()
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}

	if !cmp.Equal(got, want) {
		t.Errorf("configs not equal\nwant: %v\ngot: %v", want, got)
	}
}

func TestUpdate(t *testing.T) {
	updateMap := map[string]string{
		"AutoBrightness":   "true",
		"Brightness":       "1.2",
		"BrightnessMax":    "2.5",
		"BrightnessMin":    "0.8",
		"CaptureDelay":     "1.5",
		"CascadePath":      "/cascades/frontalface.xml",
		"CenterWeight":     "0.5",
		"DebouncePeriod":   "0.2",
		"Dither":           "Atkinson",
		"FaceDetection":    "true",
		"FaceMinNeighbors": "3",
		"FaceMinSize":      "40",
		"FaceScaleFactor":  "1.1",
		"FooterMessage":    "come again",
		"Fullscreen":       "true",
		"GPIOPin":          "17",
		"Height":           "600",
		"HorizontalFlip":   "true",
		"Input":            "webcam",
		"InputPath":        "/dev/video1",
		"JPEGQuality":      "85",
		"logging":          "Error",
		"LongPressPeriod":  "3",
		"OutputDir":        "/var/booth",
		"Percentile":       "50",
		"Preview":          "true",
		"PrinterPath":      "/dev/usb/lp1",
		"PrinterWidth":     "384",
		"QRSize":           "200",
		"Rotation":         "180",
		"SpoolReceipts":    "true",
		"StoreLocation":    "Ann Arbor, MI",
		"StoreName":        "Corner Mart",
		"StoreQRURL":       "https://cornermart.example",
		"StoreSocial":      "@cornermart",
		"StoreSubtitle":    "Night Market",
		"TargetBrightness": "190",
		"Triggers":         "GPIO,Manual",
		"VerticalFlip":     "true",
		"Width":            "400",
	}

	dl := &dumbLogger{}

	want := Config{
		Logger:           dl,
		AutoBrightness:   true,
		Brightness:       1.2,
		BrightnessMax:    2.5,
		BrightnessMin:    0.8,
		CaptureDelay:     1500 * time.Millisecond,
		CascadePath:      "/cascades/frontalface.xml",
		CenterWeight:     0.5,
		DebouncePeriod:   200 * time.Millisecond,
		Dither:           DitherAtkinson,
		FaceDetection:    true,
		FaceMinNeighbors: 3,
		FaceMinSize:      40,
		FaceScaleFactor:  1.1,
		FooterMessage:    "come again",
		Fullscreen:       true,
		GPIOPin:          17,
		Height:           600,
		HorizontalFlip:   true,
		Input:            InputWebcam,
		InputPath:        "/dev/video1",
		JPEGQuality:      85,
		LogLevel:         logging.Error,
		LongPressPeriod:  3 * time.Second,
		OutputDir:        "/var/booth",
		Percentile:       50,
		Preview:          true,
		PrinterPath:      "/dev/usb/lp1",
		PrinterWidth:     384,
		QRSize:           200,
		Rotation:         180,
		SpoolReceipts:    true,
		StoreLocation:    "Ann Arbor, MI",
		StoreName:        "Corner Mart",
		StoreQRURL:       "https://cornermart.example",
		StoreSocial:      "@cornermart",
		StoreSubtitle:    "Night Market",
		TargetBrightness: 190,
		Triggers:         []uint8{TriggerGPIO, TriggerManual},
		VerticalFlip:     true,
		Width:            400,
	}

	got := Config{Logger: dl}
	got.Update(updateMap)
	if !cmp.Equal(want, got) {
		t.Errorf("configs not equal\nwant: %v\ngot: %v", want, got)
	}
}
