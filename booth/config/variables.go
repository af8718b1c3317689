/*
DESCRIPTION
  variables.go contains a list of structs that provide a variable Name, type in
  a string format, a function for updating the variable in the Config struct
  from a string, and finally, a validation function to check the validity of the
  corresponding field value in the Config.

AUTHORS
  Matt Stief <mattstief@users.noreply.github.com>

LICENSE
  Copyright (C) 2026 Matt Stief. All rights reserved.

  Use of this source code is governed by the BSD 2-clause license that can be
  found in the LICENSE file.
*/

package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ausocean/utils/logging"
)

// Config map Keys.
const (
	KeyAutoBrightness   = "AutoBrightness"
	KeyBrightness       = "Brightness"
	KeyBrightnessMax    = "BrightnessMax"
	KeyBrightnessMin    = "BrightnessMin"
	KeyCaptureDelay     = "CaptureDelay"
	KeyCascadePath      = "CascadePath"
	KeyCenterWeight     = "CenterWeight"
	KeyDebouncePeriod   = "DebouncePeriod"
	KeyDither           = "Dither"
	KeyFaceDetection    = "FaceDetection"
	KeyFaceMinNeighbors = "FaceMinNeighbors"
	KeyFaceMinSize      = "FaceMinSize"
	KeyFaceScaleFactor  = "FaceScaleFactor"
	KeyFooterMessage    = "FooterMessage"
	KeyFullscreen       = "Fullscreen"
	KeyGPIOPin          = "GPIOPin"
	KeyHeight           = "Height"
	KeyHorizontalFlip   = "HorizontalFlip"
	KeyInput            = "Input"
	KeyInputPath        = "InputPath"
	KeyJPEGQuality      = "JPEGQuality"
	KeyLogging          = "logging"
	KeyLongPressPeriod  = "LongPressPeriod"
	KeyOutputDir        = "OutputDir"
	KeyPercentile       = "Percentile"
	KeyPreview          = "Preview"
	KeyPrinterPath      = "PrinterPath"
	KeyPrinterWidth     = "PrinterWidth"
	KeyQRSize           = "QRSize"
	KeyRotation         = "Rotation"
	KeySpoolReceipts    = "SpoolReceipts"
	KeyStoreLocation    = "StoreLocation"
	KeyStoreName        = "StoreName"
	KeyStoreQRURL       = "StoreQRURL"
	KeyStoreSocial      = "StoreSocial"
	KeyStoreSubtitle    = "StoreSubtitle"
	KeySuppress         = "Suppress"
	KeyTargetBrightness = "TargetBrightness"
	KeyTriggers         = "Triggers"
	KeyVerticalFlip     = "VerticalFlip"
	KeyWidth            = "Width"
)

// Config map parameter types.
const (
	typeString = "string"
	typeUint   = "uint"
	typeBool   = "bool"
	typeFloat  = "float"
)

// Default variable values.
const (
	// General booth defaults.
	defaultInput       = InputLibcamera
	defaultVerbosity   = logging.Info
	defaultWidth       = 480
	defaultHeight      = 800
	defaultJPEGQuality = 90

	// Interaction defaults.
	defaultCaptureDelay    = 3 * time.Second
	defaultLongPressPeriod = 2 * time.Second
	defaultDebouncePeriod  = 300 * time.Millisecond
	defaultGPIOPin         = 18

	// Exposure defaults.
	defaultBrightness       = 1.5
	defaultTargetBrightness = 210.0
	defaultBrightnessMin    = 0.5
	defaultBrightnessMax    = 3.0
	defaultCenterWeight     = 0.7
	defaultPercentile       = 30

	// Face detection defaults.
	defaultFaceScaleFactor  = 1.05
	defaultFaceMinNeighbors = 2
	defaultFaceMinSize      = 30
	defaultCascadePath      = "/usr/share/opencv4/haarcascades/haarcascade_frontalface_default.xml"

	// Output defaults.
	defaultDither       = DitherFloydSteinberg
	defaultPrinterPath  = "/dev/usb/lp0"
	defaultPrinterWidth = 512
	defaultQRSize       = 240
	defaultOutputDir    = "images"

	// Receipt branding defaults.
	defaultStoreName     = "My Store"
	defaultStoreSubtitle = "Tagline or market name"
	defaultStoreLocation = "City, State"
	defaultStoreSocial   = "@mystore"
	defaultStoreQRURL    = "https://example.com"
	defaultFooterMessage = "Thank you for shopping with us!"
)

// Variables describes the variables that can be used for booth control.
// These structs provide the name and type of variable, a function for updating
// this variable in a Config, and a function for validating the value of the variable.
var Variables = []struct {
	Name     string
	Type     string
	Update   func(*Config, string)
	Validate func(*Config)
}{
	{
		Name:   KeyAutoBrightness,
		Type:   typeBool,
		Update: func(c *Config, v string) { c.AutoBrightness = parseBool(KeyAutoBrightness, v, c) },
	},
	{
		Name:   KeyBrightness,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.Brightness = parseFloat(KeyBrightness, v, c) },
		Validate: func(c *Config) {
			if c.Brightness <= 0 {
				c.LogInvalidField(KeyBrightness, defaultBrightness)
				c.Brightness = defaultBrightness
			}
		},
	},
	{
		Name:   KeyBrightnessMax,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.BrightnessMax = parseFloat(KeyBrightnessMax, v, c) },
		Validate: func(c *Config) {
			if c.BrightnessMax <= 0 || c.BrightnessMax < c.BrightnessMin {
				c.LogInvalidField(KeyBrightnessMax, defaultBrightnessMax)
				c.BrightnessMax = defaultBrightnessMax
			}
		},
	},
	{
		Name:   KeyBrightnessMin,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.BrightnessMin = parseFloat(KeyBrightnessMin, v, c) },
		Validate: func(c *Config) {
			if c.BrightnessMin <= 0 {
				c.LogInvalidField(KeyBrightnessMin, defaultBrightnessMin)
				c.BrightnessMin = defaultBrightnessMin
			}
		},
	},
	{
		Name:   KeyCaptureDelay,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.CaptureDelay = parseSeconds(KeyCaptureDelay, v, c) },
		Validate: func(c *Config) {
			if c.CaptureDelay < 0 {
				c.LogInvalidField(KeyCaptureDelay, defaultCaptureDelay)
				c.CaptureDelay = defaultCaptureDelay
			}
		},
	},
	{
		Name:   KeyCascadePath,
		Type:   typeString,
		Update: func(c *Config, v string) { c.CascadePath = v },
		Validate: func(c *Config) {
			if c.CascadePath == "" {
				c.LogInvalidField(KeyCascadePath, defaultCascadePath)
				c.CascadePath = defaultCascadePath
			}
		},
	},
	{
		Name:   KeyCenterWeight,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.CenterWeight = parseFloat(KeyCenterWeight, v, c) },
		Validate: func(c *Config) {
			if c.CenterWeight <= 0 || c.CenterWeight > 1 {
				c.LogInvalidField(KeyCenterWeight, defaultCenterWeight)
				c.CenterWeight = defaultCenterWeight
			}
		},
	},
	{
		Name:   KeyDebouncePeriod,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.DebouncePeriod = parseSeconds(KeyDebouncePeriod, v, c) },
		Validate: func(c *Config) {
			if c.DebouncePeriod <= 0 {
				c.LogInvalidField(KeyDebouncePeriod, defaultDebouncePeriod)
				c.DebouncePeriod = defaultDebouncePeriod
			}
		},
	},
	{
		Name:   KeyDither,
		Type:   "enum:floydsteinberg,atkinson,threshold",
		Update: func(c *Config, v string) { c.Dither = strings.ToLower(v) },
		Validate: func(c *Config) {
			switch c.Dither {
			case DitherFloydSteinberg, DitherAtkinson, DitherThreshold:
			default:
				c.LogInvalidField(KeyDither, defaultDither)
				c.Dither = defaultDither
			}
		},
	},
	{
		Name:   KeyFaceDetection,
		Type:   typeBool,
		Update: func(c *Config, v string) { c.FaceDetection = parseBool(KeyFaceDetection, v, c) },
	},
	{
		Name:   KeyFaceMinNeighbors,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.FaceMinNeighbors = parseUint(KeyFaceMinNeighbors, v, c) },
		Validate: func(c *Config) {
			if c.FaceMinNeighbors <= 0 {
				c.LogInvalidField(KeyFaceMinNeighbors, defaultFaceMinNeighbors)
				c.FaceMinNeighbors = defaultFaceMinNeighbors
			}
		},
	},
	{
		Name:   KeyFaceMinSize,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.FaceMinSize = parseUint(KeyFaceMinSize, v, c) },
		Validate: func(c *Config) {
			if c.FaceMinSize <= 0 {
				c.LogInvalidField(KeyFaceMinSize, defaultFaceMinSize)
				c.FaceMinSize = defaultFaceMinSize
			}
		},
	},
	{
		Name:   KeyFaceScaleFactor,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.FaceScaleFactor = parseFloat(KeyFaceScaleFactor, v, c) },
		Validate: func(c *Config) {
			if c.FaceScaleFactor <= 1.0 {
				c.LogInvalidField(KeyFaceScaleFactor, defaultFaceScaleFactor)
				c.FaceScaleFactor = defaultFaceScaleFactor
			}
		},
	},
	{
		Name:   KeyFooterMessage,
		Type:   typeString,
		Update: func(c *Config, v string) { c.FooterMessage = v },
		Validate: func(c *Config) {
			if c.FooterMessage == "" {
				c.LogInvalidField(KeyFooterMessage, defaultFooterMessage)
				c.FooterMessage = defaultFooterMessage
			}
		},
	},
	{
		Name:   KeyFullscreen,
		Type:   typeBool,
		Update: func(c *Config, v string) { c.Fullscreen = parseBool(KeyFullscreen, v, c) },
	},
	{
		Name:   KeyGPIOPin,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.GPIOPin = parseUint(KeyGPIOPin, v, c) },
		Validate: func(c *Config) {
			if c.GPIOPin <= 0 || c.GPIOPin > 27 {
				c.LogInvalidField(KeyGPIOPin, defaultGPIOPin)
				c.GPIOPin = defaultGPIOPin
			}
		},
	},
	{
		Name:   KeyHeight,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.Height = parseUint(KeyHeight, v, c) },
		Validate: func(c *Config) {
			if c.Height <= 0 {
				c.LogInvalidField(KeyHeight, defaultHeight)
				c.Height = defaultHeight
			}
		},
	},
	{
		Name:   KeyHorizontalFlip,
		Type:   typeBool,
		Update: func(c *Config, v string) { c.HorizontalFlip = parseBool(KeyHorizontalFlip, v, c) },
	},
	{
		Name: KeyInput,
		Type: "enum:libcamera,webcam,file,manual",
		Update: func(c *Config, v string) {
			c.Input = parseEnum(
				KeyInput,
				v,
				map[string]uint8{
					"libcamera": InputLibcamera,
					"webcam":    InputWebcam,
					"file":      InputFile,
					"manual":    InputManual,
				},
				c,
			)
		},
		Validate: func(c *Config) {
			switch c.Input {
			case InputLibcamera, InputWebcam, InputFile, InputManual:
			default:
				c.LogInvalidField(KeyInput, defaultInput)
				c.Input = defaultInput
			}
		},
	},
	{
		Name:   KeyInputPath,
		Type:   typeString,
		Update: func(c *Config, v string) { c.InputPath = v },
	},
	{
		Name:   KeyJPEGQuality,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.JPEGQuality = parseUint(KeyJPEGQuality, v, c) },
		Validate: func(c *Config) {
			if c.JPEGQuality <= 0 || c.JPEGQuality > 100 {
				c.LogInvalidField(KeyJPEGQuality, defaultJPEGQuality)
				c.JPEGQuality = defaultJPEGQuality
			}
		},
	},
	{
		Name: KeyLogging,
		Type: "enum:Debug,Info,Warning,Error,Fatal",
		Update: func(c *Config, v string) {
			switch v {
			case "Debug":
				c.LogLevel = logging.Debug
			case "Info":
				c.LogLevel = logging.Info
			case "Warning":
				c.LogLevel = logging.Warning
			case "Error":
				c.LogLevel = logging.Error
			case "Fatal":
				c.LogLevel = logging.Fatal
			default:
				c.Logger.Warning("invalid Logging param", "value", v)
			}
		},
		Validate: func(c *Config) {
			switch c.LogLevel {
			case logging.Debug, logging.Info, logging.Warning, logging.Error, logging.Fatal:
			default:
				c.LogInvalidField("LogLevel", defaultVerbosity)
				c.LogLevel = defaultVerbosity
			}
		},
	},
	{
		Name:   KeyLongPressPeriod,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.LongPressPeriod = parseSeconds(KeyLongPressPeriod, v, c) },
		Validate: func(c *Config) {
			if c.LongPressPeriod <= 0 {
				c.LogInvalidField(KeyLongPressPeriod, defaultLongPressPeriod)
				c.LongPressPeriod = defaultLongPressPeriod
			}
		},
	},
	{
		Name:   KeyOutputDir,
		Type:   typeString,
		Update: func(c *Config, v string) { c.OutputDir = v },
		Validate: func(c *Config) {
			if c.OutputDir == "" {
				c.LogInvalidField(KeyOutputDir, defaultOutputDir)
				c.OutputDir = defaultOutputDir
			}
		},
	},
	{
		Name:   KeyPercentile,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.Percentile = parseUint(KeyPercentile, v, c) },
		Validate: func(c *Config) {
			if c.Percentile <= 0 || c.Percentile > 100 {
				c.LogInvalidField(KeyPercentile, defaultPercentile)
				c.Percentile = defaultPercentile
			}
		},
	},
	{
		Name:   KeyPreview,
		Type:   typeBool,
		Update: func(c *Config, v string) { c.Preview = parseBool(KeyPreview, v, c) },
	},
	{
		Name:   KeyPrinterPath,
		Type:   typeString,
		Update: func(c *Config, v string) { c.PrinterPath = v },
		Validate: func(c *Config) {
			if c.PrinterPath == "" {
				c.LogInvalidField(KeyPrinterPath, defaultPrinterPath)
				c.PrinterPath = defaultPrinterPath
			}
		},
	},
	{
		Name:   KeyPrinterWidth,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.PrinterWidth = parseUint(KeyPrinterWidth, v, c) },
		Validate: func(c *Config) {
			// GS v 0 encodes the row width in bytes as a 16 bit quantity.
			if c.PrinterWidth <= 0 || c.PrinterWidth%8 != 0 || c.PrinterWidth > 2040 {
				c.LogInvalidField(KeyPrinterWidth, defaultPrinterWidth)
				c.PrinterWidth = defaultPrinterWidth
			}
		},
	},
	{
		Name:   KeyQRSize,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.QRSize = parseUint(KeyQRSize, v, c) },
		Validate: func(c *Config) {
			if c.QRSize <= 0 || c.QRSize > c.PrinterWidth {
				c.LogInvalidField(KeyQRSize, defaultQRSize)
				c.QRSize = defaultQRSize
			}
		},
	},
	{
		Name:   KeyRotation,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.Rotation = parseUint(KeyRotation, v, c) },
		Validate: func(c *Config) {
			switch c.Rotation {
			case 0, 90, 180, 270:
			default:
				c.LogInvalidField(KeyRotation, 0)
				c.Rotation = 0
			}
		},
	},
	{
		Name:   KeySpoolReceipts,
		Type:   typeBool,
		Update: func(c *Config, v string) { c.SpoolReceipts = parseBool(KeySpoolReceipts, v, c) },
	},
	{
		Name:   KeyStoreLocation,
		Type:   typeString,
		Update: func(c *Config, v string) { c.StoreLocation = v },
		Validate: func(c *Config) {
			if c.StoreLocation == "" {
				c.LogInvalidField(KeyStoreLocation, defaultStoreLocation)
				c.StoreLocation = defaultStoreLocation
			}
		},
	},
	{
		Name:   KeyStoreName,
		Type:   typeString,
		Update: func(c *Config, v string) { c.StoreName = v },
		Validate: func(c *Config) {
			if c.StoreName == "" {
				c.LogInvalidField(KeyStoreName, defaultStoreName)
				c.StoreName = defaultStoreName
			}
		},
	},
	{
		Name:   KeyStoreQRURL,
		Type:   typeString,
		Update: func(c *Config, v string) { c.StoreQRURL = v },
		Validate: func(c *Config) {
			if c.StoreQRURL == "" {
				c.LogInvalidField(KeyStoreQRURL, defaultStoreQRURL)
				c.StoreQRURL = defaultStoreQRURL
			}
		},
	},
	{
		Name:   KeyStoreSocial,
		Type:   typeString,
		Update: func(c *Config, v string) { c.StoreSocial = v },
		Validate: func(c *Config) {
			if c.StoreSocial == "" {
				c.LogInvalidField(KeyStoreSocial, defaultStoreSocial)
				c.StoreSocial = defaultStoreSocial
			}
		},
	},
	{
		Name:   KeyStoreSubtitle,
		Type:   typeString,
		Update: func(c *Config, v string) { c.StoreSubtitle = v },
		Validate: func(c *Config) {
			if c.StoreSubtitle == "" {
				c.LogInvalidField(KeyStoreSubtitle, defaultStoreSubtitle)
				c.StoreSubtitle = defaultStoreSubtitle
			}
		},
	},
	{
		Name: KeySuppress,
		Type: typeBool,
		Update: func(c *Config, v string) {
			c.Suppress = parseBool(KeySuppress, v, c)
			if l, ok := c.Logger.(*logging.JSONLogger); ok {
				l.SetSuppress(c.Suppress)
			}
		},
	},
	{
		Name:   KeyTargetBrightness,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.TargetBrightness = parseFloat(KeyTargetBrightness, v, c) },
		Validate: func(c *Config) {
			if c.TargetBrightness <= 0 || c.TargetBrightness > 255 {
				c.LogInvalidField(KeyTargetBrightness, defaultTargetBrightness)
				c.TargetBrightness = defaultTargetBrightness
			}
		},
	},
	{
		Name: KeyTriggers,
		Type: "enums:GPIO,Touch,Keyboard,Manual",
		Update: func(c *Config, v string) {
			triggers := strings.Split(v, ",")
			m := map[string]uint8{"GPIO": TriggerGPIO, "Touch": TriggerTouch, "Keyboard": TriggerKeyboard, "Manual": TriggerManual}
			c.Triggers = make([]uint8, len(triggers))
			for i, trigger := range triggers {
				t, ok := m[trigger]
				if !ok {
					c.Logger.Warning("invalid Triggers param", "value", trigger)
				}
				c.Triggers[i] = t
			}
		},
		Validate: func(c *Config) {
			if len(c.Triggers) == 0 {
				def := []uint8{TriggerGPIO, TriggerTouch, TriggerKeyboard}
				c.LogInvalidField(KeyTriggers, "GPIO,Touch,Keyboard")
				c.Triggers = def
			}
		},
	},
	{
		Name:   KeyVerticalFlip,
		Type:   typeBool,
		Update: func(c *Config, v string) { c.VerticalFlip = parseBool(KeyVerticalFlip, v, c) },
	},
	{
		Name:   KeyWidth,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.Width = parseUint(KeyWidth, v, c) },
		Validate: func(c *Config) {
			if c.Width <= 0 {
				c.LogInvalidField(KeyWidth, defaultWidth)
				c.Width = defaultWidth
			}
		},
	},
}

func parseUint(n, v string, c *Config) uint {
	_v, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		c.Logger.Warning(fmt.Sprintf("expected unsigned int for param %s", n), "value", v)
	}
	return uint(_v)
}

func parseBool(n, v string, c *Config) (b bool) {
	switch strings.ToLower(v) {
	case "true":
		b = true
	case "false":
		b = false
	default:
		c.Logger.Warning(fmt.Sprintf("expected bool for param %s", n), "value", v)
	}
	return
}

func parseFloat(n, v string, c *Config) float64 {
	_v, err := strconv.ParseFloat(v, 64)
	if err != nil {
		c.Logger.Warning(fmt.Sprintf("expected float for param %s", n), "value", v)
	}
	return _v
}

// parseSeconds parses a (possibly fractional) number of seconds into a
// time.Duration.
func parseSeconds(n, v string, c *Config) time.Duration {
	_v, err := strconv.ParseFloat(v, 64)
	if err != nil {
		c.Logger.Warning(fmt.Sprintf("expected seconds for param %s", n), "value", v)
	}
	return time.Duration(_v * float64(time.Second))
}

func parseEnum(n, v string, enums map[string]uint8, c *Config) uint8 {
	_v, ok := enums[strings.ToLower(v)]
	if !ok {
		c.Logger.Warning(fmt.Sprintf("invalid value for enum param %s", n), "value", v)
	}
	return _v
}
