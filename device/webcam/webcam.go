/*
DESCRIPTION
  webcam.go provides an implementation of ImageSource for webcams.

AUTHORS
  Matt Stief <mattstief@users.noreply.github.com>

LICENSE
  Copyright (C) 2026 Matt Stief. All rights reserved.

  Use of this source code is governed by the BSD 2-clause license that can be
  found in the LICENSE file.
*/

// Package webcam provides an implementation of ImageSource for webcams. A
// single JPEG frame is grabbed from a V4L device through an ffmpeg process
// per Start/Stop cycle.
package webcam

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/ausocean/utils/logging"

	"github.com/mattstief/photobooth/booth/config"
	"github.com/mattstief/photobooth/device"
)

// Used to indicate package in logging.
const pkg = "webcam: "

// Configuration defaults.
const (
	defaultInputPath = "/dev/video0"
	defaultWidth     = 480
	defaultHeight    = 800
)

// Configuration field errors.
var (
	errBadWidth     = errors.New("width bad or unset, defaulting")
	errBadHeight    = errors.New("height bad or unset, defaulting")
	errBadInputPath = errors.New("input path bad or unset, defaulting")
)

// Webcam is an implementation of the ImageSource interface for a webcam.
// Webcam uses an ffmpeg process to grab a single MJPEG frame from the device.
type Webcam struct {
	out       io.ReadCloser
	log       logging.Logger
	cfg       config.Config
	cmd       *exec.Cmd
	done      chan struct{}
	isRunning bool
}

// New returns a new Webcam.
func New(l logging.Logger) *Webcam {
	return &Webcam{log: l}
}

// Name returns the name of the device.
func (w *Webcam) Name() string {
	return "Webcam"
}

// Set will validate the relevant fields of the given Config struct and assign
// the struct to the Webcam's Config. If fields are not valid, an error is
// added to the multiError and a default value is used.
func (w *Webcam) Set(c config.Config) error {
	var errs device.MultiError
	if c.InputPath == "" {
		errs = append(errs, errBadInputPath)
		c.InputPath = defaultInputPath
	}

	if c.Width == 0 {
		errs = append(errs, errBadWidth)
		c.Width = defaultWidth
	}

	if c.Height == 0 {
		errs = append(errs, errBadHeight)
		c.Height = defaultHeight
	}

	w.cfg = c
	if len(errs) != 0 {
		return errs
	}
	return nil
}

// Start will build the required arguments for ffmpeg and then execute the
// command, piping the frame where we can read using the Read method.
func (w *Webcam) Start() error {
	args := []string{
		"-f", "v4l2",
		"-i", w.cfg.InputPath,
		"-frames:v", "1",
		"-s", fmt.Sprintf("%dx%d", w.cfg.Width, w.cfg.Height),
		"-c:v", "mjpeg",
		"-f", "image2",
		"-",
	}

	w.log.Info(pkg+"ffmpeg args", "args", strings.Join(args, " "))
	w.cmd = exec.Command("ffmpeg", args...)
	w.done = make(chan struct{})

	var err error
	w.out, err = w.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to create pipe: %w", err)
	}

	stderr, err := w.cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("could not pipe command error: %w", err)
	}

	go func() {
		for {
			select {
			case <-w.done:
				w.log.Debug(pkg + "Stop() called, finished checking stderr")
				return
			default:
				buf, err := io.ReadAll(stderr)
				if err != nil {
					w.log.Error(pkg+"could not read stderr", "error", err)
					return
				}

				if len(buf) != 0 {
					w.log.Debug(pkg+"output from ffmpeg stderr", "stderr", string(buf))
					return
				}
			}
		}
	}()

	w.log.Debug(pkg + "starting webcam")
	err = w.cmd.Start()
	if err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}
	w.isRunning = true

	return nil
}

// Stop reaps the ffmpeg process and closes the output pipe. The process exits
// by itself after the single frame is written, so Stop waits rather than
// kills.
func (w *Webcam) Stop() error {
	if !w.isRunning {
		return nil
	}
	w.isRunning = false
	close(w.done)
	if w.cmd == nil || w.cmd.Process == nil {
		return errors.New("ffmpeg process was never started")
	}
	err := w.cmd.Wait()
	if err != nil {
		return fmt.Errorf("ffmpeg process did not exit cleanly: %w", err)
	}
	return nil
}

// Read implements io.Reader. If the pipe is nil a read error is returned.
func (w *Webcam) Read(p []byte) (int, error) {
	if w.out != nil {
		return w.out.Read(p)
	}
	return 0, errors.New("webcam not started")
}

// IsRunning is used to determine if the webcam is running.
func (w *Webcam) IsRunning() bool {
	return w.isRunning
}
