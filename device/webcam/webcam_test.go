/*
DESCRIPTION
  webcam_test.go tests the webcam ImageSource configuration.

AUTHORS
  Matt Stief <mattstief@users.noreply.github.com>

LICENSE
  Copyright (C) 2026 Matt Stief. All rights reserved.

  Use of this source code is governed by the BSD 2-clause license that can be
  found in the LICENSE file.
*/

package webcam

import (
	"testing"

	"github.com/mattstief/photobooth/booth/config"
	"github.com/mattstief/photobooth/device"
)

type dumbLogger struct{}

func (dl *dumbLogger) Log(l int8, m string, a ...interface{})  {}
func (dl *dumbLogger) SetLevel(l int8)                         {}
func (dl *dumbLogger) Debug(msg string, args ...interface{})   {}
func (dl *dumbLogger) Info(msg string, args ...interface{})    {}
func (dl *dumbLogger) Warning(msg string, args ...interface{}) {}
func (dl *dumbLogger) Error(msg string, args ...interface{})   {}
func (dl *dumbLogger) Fatal(msg string, args ...interface{})   {}

func TestSetDefaults(t *testing.T) {
	w := New(&dumbLogger{})

	// An empty config is usable but errors for every defaulted field.
	err := w.Set(config.Config{})
	if err == nil {
		t.Fatal("expected errors from Set with empty config")
	}
	errs, ok := err.(device.MultiError)
	if !ok {
		t.Fatalf("expected MultiError from Set, got: %v", err)
	}
	if len(errs) != 3 {
		t.Errorf("expected 3 field errors, got %d: %v", len(errs), errs)
	}

	if w.cfg.InputPath != defaultInputPath {
		t.Errorf("input path not defaulted, got: %v", w.cfg.InputPath)
	}
	if w.cfg.Width != defaultWidth || w.cfg.Height != defaultHeight {
		t.Errorf("frame size not defaulted, got: %dx%d", w.cfg.Width, w.cfg.Height)
	}
}

func TestSetValid(t *testing.T) {
	w := New(&dumbLogger{})

	err := w.Set(config.Config{
		InputPath: "/dev/video1",
		Width:     640,
		Height:    480,
	})
	if err != nil {
		t.Fatalf("did not expect error from Set: %v", err)
	}
	if w.cfg.InputPath != "/dev/video1" {
		t.Errorf("unexpected input path: %v", w.cfg.InputPath)
	}
}
