/*
DESCRIPTION
  booth.go provides the Booth type, which ties together the capture device,
  the camera preview, the shutter triggers, image processing and receipt
  printing, along with the API to control booth function.

AUTHORS
  Matt Stief <mattstief@users.noreply.github.com>

LICENSE
  Copyright (C) 2026 Matt Stief. All rights reserved.

  Use of this source code is governed by the BSD 2-clause license that can be
  found in the LICENSE file.
*/

// Package booth provides the Booth struct to operate a photo booth kiosk: it
// waits on shutter triggers, captures a still from the configured input,
// processes it for thermal printing and prints it on a receipt.
package booth

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Decoding of stills from camera inputs.
	"image/png"
	"io"
	"sync"
	"time"

	"github.com/ausocean/utils/ioext"

	"github.com/mattstief/photobooth/booth/config"
	"github.com/mattstief/photobooth/device"
	"github.com/mattstief/photobooth/device/file"
	"github.com/mattstief/photobooth/device/libcamera"
	"github.com/mattstief/photobooth/device/webcam"
	"github.com/mattstief/photobooth/facedet"
	"github.com/mattstief/photobooth/proc"
	"github.com/mattstief/photobooth/receipt"
	"github.com/mattstief/photobooth/trigger"
)

// To indicate package when logging.
const pkg = "booth: "

// Booth provides a means to capture stills on trigger events, process them
// and print them as receipts, as well as platform agnostic API to control
// this behaviour.
type Booth struct {
	// cfg holds the Booth configuration. This is set during New and can be
	// updated through Update.
	cfg config.Config

	// source is the still capture device from which encoded image data is
	// obtained, chosen by cfg.Input.
	source device.ImageSource

	// preview is the live camera preview shown between captures. It is nil
	// unless the input is the Raspberry Pi camera and Preview is enabled.
	preview *libcamera.Preview

	// triggers holds the shutter trigger sources chosen by cfg.Triggers.
	triggers []trigger.Trigger

	// proc turns decoded stills into the 1-bit image that goes on the
	// receipt.
	proc *proc.Processor

	// photos archives processed photos as PNGs under cfg.OutputDir.
	photos *fileSender

	isRunning bool
	wg        sync.WaitGroup
	err       chan error
	stop      chan struct{}
}

// New returns a pointer to a new Booth with the given configuration. The
// capture pipeline is built on Start, so that configuration updates between
// runs take effect.
func New(c config.Config) (*Booth, error) {
	b := &Booth{err: make(chan error)}
	err := b.setConfig(c)
	if err != nil {
		return nil, fmt.Errorf("could not set config: %w", err)
	}
	go b.handleErrors()
	return b, nil
}

// handleErrors handles errors that are sent to the Booth error channel from
// the capture routine.
func (b *Booth) handleErrors() {
	for {
		err := <-b.err
		if err != nil {
			b.cfg.Logger.Error(pkg+"async error", "error", err.Error())
		}
	}
}

// setConfig takes a config, checks its validity and then replaces the current
// booth config.
func (b *Booth) setConfig(c config.Config) error {
	if c.Logger == nil {
		return errors.New("logger not set in config")
	}
	err := c.Validate()
	if err != nil {
		return errors.New("config struct is bad: " + err.Error())
	}
	b.cfg = c
	b.cfg.Logger.SetLevel(b.cfg.LogLevel)
	return nil
}

// reset builds the capture pipeline from the current config: the input
// device, the preview, the processor and the triggers.
func (b *Booth) reset() error {
	l := b.cfg.Logger

	l.Debug(pkg + "setting up input device")
	b.preview = nil
	switch b.cfg.Input {
	case config.InputLibcamera:
		b.source = libcamera.New(l)
		if b.cfg.Preview {
			b.preview = libcamera.NewPreview(l)
			err := b.preview.Set(b.cfg)
			if err != nil {
				return fmt.Errorf("could not set preview config: %w", err)
			}
		}
	case config.InputWebcam:
		b.source = webcam.New(l)
	case config.InputFile:
		b.source = file.New(l)
	case config.InputManual:
		b.source = device.NewManualInput()
	default:
		return fmt.Errorf("unrecognised input type: %v", b.cfg.Input)
	}

	err := b.source.Set(b.cfg)
	if err != nil {
		return fmt.Errorf("could not set input device config: %w", err)
	}

	// A missing cascade must not take the booth down; exposure falls back to
	// the center box.
	var det proc.FaceDetector
	if b.cfg.FaceDetection {
		d, err := facedet.New(l, facedet.Params{
			CascadePath:  b.cfg.CascadePath,
			ScaleFactor:  b.cfg.FaceScaleFactor,
			MinNeighbors: int(b.cfg.FaceMinNeighbors),
			MinSize:      int(b.cfg.FaceMinSize),
		})
		if err != nil {
			l.Warning(pkg+"could not create face detector, metering on center box", "error", err.Error())
		} else {
			det = d
		}
	}
	b.proc = proc.New(l, b.cfg, det)

	l.Debug(pkg + "setting up triggers")
	b.triggers = nil
	for _, t := range b.cfg.Triggers {
		var (
			trig trigger.Trigger
			err  error
		)
		switch t {
		case config.TriggerGPIO:
			trig, err = trigger.NewGPIO(l, b.cfg)
		case config.TriggerTouch:
			trig = trigger.NewTouch(l, b.cfg)
		case config.TriggerKeyboard:
			trig = trigger.NewKeyboard(l)
		case config.TriggerManual:
			trig = trigger.NewManual()
		default:
			l.Warning(pkg+"unrecognised trigger type, skipping", "trigger", t)
			continue
		}
		if err != nil {
			l.Warning(pkg+"could not create trigger, skipping", "trigger", t, "error", err.Error())
			continue
		}
		b.triggers = append(b.triggers, trig)
	}
	if len(b.triggers) == 0 {
		return errors.New("no usable triggers")
	}

	b.photos = newFileSender(l, b.cfg.OutputDir, "photo_", ".png")
	return nil
}

// Start builds the capture pipeline from the current config and then starts
// the preview, the triggers and the routine that waits on trigger events.
func (b *Booth) Start() error {
	if b.isRunning {
		b.cfg.Logger.Warning(pkg + "start called, but booth already running")
		return nil
	}

	b.cfg.Logger.Debug(pkg + "resetting booth")
	err := b.reset()
	if err != nil {
		return fmt.Errorf("could not reset booth: %w", err)
	}

	b.stop = make(chan struct{})

	if b.preview != nil {
		err = b.preview.Start()
		if err != nil {
			b.cfg.Logger.Warning(pkg+"could not start preview", "error", err.Error())
		}
	}

	for _, t := range b.triggers {
		err = t.Start()
		if err != nil {
			b.cfg.Logger.Warning(pkg+"could not start trigger", "trigger", t.Name(), "error", err.Error())
		}
	}

	b.wg.Add(1)
	go b.run(b.stop)
	b.isRunning = true
	b.cfg.Logger.Info(pkg + "booth started")
	return nil
}

// Stop stops the booth; the triggers, the preview and any capture in
// progress are stopped before returning.
func (b *Booth) Stop() {
	if !b.isRunning {
		b.cfg.Logger.Warning(pkg + "stop called, but booth isn't running")
		return
	}
	b.cfg.Logger.Debug(pkg + "stopping booth")
	close(b.stop)

	for _, t := range b.triggers {
		err := t.Stop()
		if err != nil {
			b.cfg.Logger.Error(pkg+"could not stop trigger", "trigger", t.Name(), "error", err.Error())
		}
	}

	if b.preview != nil {
		err := b.preview.Stop()
		if err != nil {
			b.cfg.Logger.Error(pkg+"could not stop preview", "error", err.Error())
		}
	}

	// Unblocks a capture waiting on the input device.
	if b.source.IsRunning() {
		err := b.source.Stop()
		if err != nil {
			b.cfg.Logger.Error(pkg+"could not stop input device", "error", err.Error())
		}
	}

	b.wg.Wait()
	b.isRunning = false
	b.cfg.Logger.Info(pkg + "booth stopped")
}

// Running is used to determine if the booth is running.
func (b *Booth) Running() bool { return b.isRunning }

// Config returns a copy of the booth's current config.
func (b *Booth) Config() config.Config { return b.cfg }

// Update takes a map of variables and their values and updates the booth's
// configuration. The booth is stopped first if it is running; the new
// configuration takes effect on the next Start.
func (b *Booth) Update(vars map[string]string) error {
	if b.isRunning {
		b.cfg.Logger.Debug(pkg + "stopping booth for reconfiguration")
		b.Stop()
	}

	b.cfg.Logger.Debug(pkg+"updating config with new variables", "vars", fmt.Sprint(vars))
	b.cfg.Update(vars)
	return b.cfg.Validate()
}

// Write writes encoded image data to the booth's input in the case that
// manual input is being used.
func (b *Booth) Write(p []byte) (int, error) {
	if b.source == nil {
		return 0, errors.New("booth has not been started, no input")
	}
	m, ok := b.source.(*device.ManualInput)
	if !ok {
		return 0, errors.New("booth input is not manual, can't write")
	}
	return m.Write(p)
}

// CloseImage signals the end of an image written through Write so that the
// capture in progress can complete.
func (b *Booth) CloseImage() error {
	if b.source == nil {
		return errors.New("booth has not been started, no input")
	}
	m, ok := b.source.(*device.ManualInput)
	if !ok {
		return errors.New("booth input is not manual, can't close")
	}
	return m.CloseWrite()
}

// Fire fires the given event on the booth's manual trigger, if it has one.
func (b *Booth) Fire(e trigger.Event) error {
	for _, t := range b.triggers {
		if m, ok := t.(*trigger.Manual); ok {
			return m.Fire(e)
		}
	}
	return errors.New("booth has no manual trigger")
}

// run waits on trigger events and acts on them until stop is closed. Each
// trigger buffers at most one event while a capture is in progress; anything
// beyond that is dropped at the trigger.
func (b *Booth) run(stop chan struct{}) {
	defer b.wg.Done()

	events := make(chan trigger.Event)
	for _, t := range b.triggers {
		b.wg.Add(1)
		go func(t trigger.Trigger) {
			defer b.wg.Done()
			for {
				select {
				case <-stop:
					return
				case e := <-t.Events():
					select {
					case events <- e:
					case <-stop:
						return
					}
				}
			}
		}(t)
	}

	for {
		select {
		case <-stop:
			return
		case e := <-events:
			switch e {
			case trigger.Shutter:
				err := b.snap(stop)
				if err != nil {
					b.err <- fmt.Errorf("could not capture and print: %w", err)
				}
			case trigger.DismissPreview:
				if b.preview != nil {
					err := b.preview.Stop()
					if err != nil {
						b.err <- fmt.Errorf("could not dismiss preview: %w", err)
					}
				}
			}
		}
	}
}

// snap performs one booth cycle: countdown, capture, processing, archiving
// and printing.
func (b *Booth) snap(stop chan struct{}) error {
	l := b.cfg.Logger

	for rem := b.cfg.CaptureDelay; rem > 0; rem -= time.Second {
		l.Info(pkg+"capturing in", "remaining", rem.String())
		d := rem
		if d > time.Second {
			d = time.Second
		}
		select {
		case <-stop:
			return nil
		case <-time.After(d):
		}
	}

	// The capture utility needs the camera to itself.
	if b.preview != nil {
		err := b.preview.Stop()
		if err != nil {
			l.Warning(pkg+"could not stop preview for capture", "error", err.Error())
		}
		defer func() {
			select {
			case <-stop:
				return
			default:
			}
			err := b.preview.Start()
			if err != nil {
				l.Warning(pkg+"could not restart preview", "error", err.Error())
			}
		}()
	}

	l.Debug(pkg + "starting input device")
	err := b.source.Start()
	if err != nil {
		return fmt.Errorf("could not start input device: %w", err)
	}

	data, err := io.ReadAll(b.source)
	if err != nil {
		b.source.Stop()
		return fmt.Errorf("could not read still: %w", err)
	}

	err = b.source.Stop()
	if err != nil {
		l.Warning(pkg+"could not stop input device", "error", err.Error())
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("could not decode still: %w", err)
	}
	l.Info(pkg+"captured still", "bytes", len(data), "width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	out, err := b.proc.Process(img)
	if err != nil {
		return fmt.Errorf("could not process still: %w", err)
	}

	// Archive the processed photo. A failed archive shouldn't cost the
	// customer their receipt.
	var photo bytes.Buffer
	err = png.Encode(&photo, out)
	if err != nil {
		return fmt.Errorf("could not encode photo: %w", err)
	}
	_, err = b.photos.Write(photo.Bytes())
	if err != nil {
		l.Error(pkg+"could not archive photo", "error", err.Error())
	}

	// Compose the receipt job in memory and then send it as one write, so
	// that each destination sees a whole job.
	var job bytes.Buffer
	err = receipt.New(&job, l, b.cfg).Print(out)
	if err != nil {
		return fmt.Errorf("could not compose receipt: %w", err)
	}

	dst := b.receiptDst()
	_, err = dst.Write(job.Bytes())
	if err != nil {
		dst.Close()
		return fmt.Errorf("could not send receipt: %w", err)
	}
	err = dst.Close()
	if err != nil {
		return fmt.Errorf("could not close receipt destination: %w", err)
	}

	l.Info(pkg+"printed receipt", "bytes", job.Len())
	return nil
}

// receiptDst returns the destination for one receipt job: the printer, plus
// a spool file when enabled.
func (b *Booth) receiptDst() io.WriteCloser {
	senders := []io.WriteCloser{newPrinterSender(b.cfg.Logger, b.cfg.PrinterPath)}
	if b.cfg.SpoolReceipts {
		senders = append(senders, newFileSender(b.cfg.Logger, b.cfg.OutputDir, "receipt_", ".escpos"))
	}
	return ioext.MultiWriteCloser(senders...)
}
