/*
DESCRIPTION
  booth_test.go provides testing for the booth: a full trigger to receipt
  cycle using the file input and a manual trigger.

AUTHORS
  Matt Stief <mattstief@users.noreply.github.com>

LICENSE
  Copyright (C) 2026 Matt Stief. All rights reserved.

  Use of this source code is governed by the BSD 2-clause license that can be
  found in the LICENSE file.
*/

package booth

import (
	"bytes"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mattstief/photobooth/booth/config"
	"github.com/mattstief/photobooth/trigger"
)

type dumbLogger struct{}

func (dl *dumbLogger) Log(l int8, m string, a ...interface{})  {}
func (dl *dumbLogger) SetLevel(l int8)                         {}
func (dl *dumbLogger) Debug(msg string, args ...interface{})   {}
func (dl *dumbLogger) Info(msg string, args ...interface{})    {}
func (dl *dumbLogger) Warning(msg string, args ...interface{}) {}
func (dl *dumbLogger) Error(msg string, args ...interface{})   {}
func (dl *dumbLogger) Fatal(msg string, args ...interface{})   {}

// testJPEG writes a small JPEG still to dir and returns its path.
func testJPEG(t *testing.T, dir string) string {
	img := image.NewGray(image.Rect(0, 0, 32, 32))
	for i := range img.Pix {
		img.Pix[i] = uint8(i % 256)
	}
	var buf bytes.Buffer
	err := jpeg.Encode(&buf, img, nil)
	if err != nil {
		t.Fatalf("could not encode test still: %v", err)
	}
	path := filepath.Join(dir, "still.jpg")
	err = os.WriteFile(path, buf.Bytes(), 0644)
	if err != nil {
		t.Fatalf("could not write test still: %v", err)
	}
	return path
}

// testConfig returns a config for a booth reading stills from a file and
// printing to a file, with no countdown.
func testConfig(t *testing.T, dir string) config.Config {
	printerPath := filepath.Join(dir, "printer")
	err := os.WriteFile(printerPath, nil, 0644)
	if err != nil {
		t.Fatalf("could not create printer file: %v", err)
	}

	return config.Config{
		Logger:       &dumbLogger{},
		Input:        config.InputFile,
		InputPath:    testJPEG(t, dir),
		Triggers:     []uint8{config.TriggerManual},
		PrinterPath:  printerPath,
		PrinterWidth: 64,
		QRSize:       32,
		OutputDir:    filepath.Join(dir, "photos"),
		Brightness:   1.0,
		Dither:       config.DitherThreshold,
	}
}

func TestBoothSnap(t *testing.T) {
	dir := t.TempDir()
	c := testConfig(t, dir)

	b, err := New(c)
	if err != nil {
		t.Fatalf("did not expect error from New: %v", err)
	}

	err = b.Start()
	if err != nil {
		t.Fatalf("did not expect error from Start: %v", err)
	}
	defer b.Stop()

	if !b.Running() {
		t.Fatal("expected booth to be running after Start")
	}

	err = b.Fire(trigger.Shutter)
	if err != nil {
		t.Fatalf("did not expect error from Fire: %v", err)
	}

	// Wait for the receipt to land on the printer.
	deadline := time.Now().Add(5 * time.Second)
	for {
		fi, err := os.Stat(c.PrinterPath)
		if err == nil && fi.Size() > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for receipt")
		}
		time.Sleep(10 * time.Millisecond)
	}

	out, err := os.ReadFile(c.PrinterPath)
	if err != nil {
		t.Fatalf("could not read printed receipt: %v", err)
	}
	if !bytes.HasPrefix(out, []byte{0x1b, '@'}) {
		t.Error("receipt does not start with printer init")
	}
	if !bytes.HasSuffix(out, []byte{0x1d, 'V', 66, 0}) {
		t.Error("receipt does not end with a cut")
	}

	// The processed photo is archived before printing.
	files, err := os.ReadDir(c.OutputDir)
	if err != nil {
		t.Fatalf("could not read output directory: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 archived photo, got %d", len(files))
	}
}

func TestBoothWriteRequiresManualInput(t *testing.T) {
	dir := t.TempDir()
	b, err := New(testConfig(t, dir))
	if err != nil {
		t.Fatalf("did not expect error from New: %v", err)
	}

	_, err = b.Write([]byte{0xff})
	if err == nil {
		t.Error("expected error writing to booth before Start")
	}

	err = b.Start()
	if err != nil {
		t.Fatalf("did not expect error from Start: %v", err)
	}
	defer b.Stop()

	_, err = b.Write([]byte{0xff})
	if err == nil {
		t.Error("expected error writing to booth with file input")
	}
}

func TestBoothFireWithoutManualTrigger(t *testing.T) {
	dir := t.TempDir()
	c := testConfig(t, dir)
	c.Triggers = []uint8{config.TriggerManual, config.TriggerGPIO}

	b, err := New(c)
	if err != nil {
		t.Fatalf("did not expect error from New: %v", err)
	}

	// Fire before Start: no triggers have been built yet.
	err = b.Fire(trigger.Shutter)
	if err == nil {
		t.Error("expected error firing before Start")
	}
}
