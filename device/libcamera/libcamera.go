/*
DESCRIPTION
  libcamera.go provides an implementation of the ImageSource interface for the
  libcamera-still raspberry pi camera interfacing utility. This allows for the
  capture of a single frame per Start/Stop cycle.

AUTHORS
  Matt Stief <mattstief@users.noreply.github.com>

LICENSE
  Copyright (C) 2026 Matt Stief. All rights reserved.

  Use of this source code is governed by the BSD 2-clause license that can be
  found in the LICENSE file.
*/

// Package libcamera provides an implementation of the ImageSource interface
// for the libcamera-still raspberry pi camera interfacing utility, and an
// exec-managed live preview using libcamera-hello.
package libcamera

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/ausocean/utils/logging"

	"github.com/mattstief/photobooth/booth/config"
	"github.com/mattstief/photobooth/device"
)

// To indicate package when logging.
const pkg = "libcamera: "

// How long libcamera-still is given to settle exposure before capture.
const captureTimeoutMs = 1000

// Libcamera configuration defaults.
const (
	defaultRotation    = 0   // degrees
	defaultWidth       = 480 // pixels
	defaultHeight      = 800 // pixels
	defaultJPEGQuality = 90  // %
)

// Configuration errors.
var (
	errBadRotation    = fmt.Errorf("Rotation bad or unset, defaulting to: %v", defaultRotation)
	errBadWidth       = fmt.Errorf("Width bad or unset, defaulting to: %v", defaultWidth)
	errBadHeight      = fmt.Errorf("Height bad or unset, defaulting to: %v", defaultHeight)
	errBadJPEGQuality = fmt.Errorf("JPEGQuality bad or unset, defaulting to: %v", defaultJPEGQuality)
)

// Misc errors.
var errNotStarted = errors.New("cannot read, libcamera-still not started")

// Libcamera is an implementation of ImageSource that provides control over
// the libcamera-still utility for using the raspberry pi camera for the
// capture of singular images. The JPEG data is piped to stdout and read via
// the Read method; the pipe reaches io.EOF once the capture is complete.
type Libcamera struct {
	cfg       config.Config
	cmd       *exec.Cmd
	out       io.ReadCloser
	log       logging.Logger
	done      chan struct{}
	isRunning bool
}

// New returns a new Libcamera.
func New(l logging.Logger) *Libcamera {
	return &Libcamera{log: l}
}

// Name returns the name of the device.
func (c *Libcamera) Name() string { return "Libcamera" }

// IsRunning is used to determine if the pi's camera is running.
func (c *Libcamera) IsRunning() bool { return c.isRunning }

// Set will take a Config struct, check the validity of the relevant fields
// and then performs any configuration necessary. If fields are not valid,
// an error is added to the multiError and a default value is used.
func (c *Libcamera) Set(cfg config.Config) error {
	var errs device.MultiError

	switch cfg.Rotation {
	case 0, 180:
	default:
		// libcamera-still only supports 0 and 180 degree transforms.
		cfg.Rotation = defaultRotation
		errs = append(errs, errBadRotation)
	}

	if cfg.Width == 0 {
		cfg.Width = defaultWidth
		errs = append(errs, errBadWidth)
	}

	if cfg.Height == 0 {
		cfg.Height = defaultHeight
		errs = append(errs, errBadHeight)
	}

	if cfg.JPEGQuality <= 0 || cfg.JPEGQuality > 100 {
		cfg.JPEGQuality = defaultJPEGQuality
		errs = append(errs, errBadJPEGQuality)
	}

	c.cfg = cfg
	if len(errs) != 0 {
		return errs
	}
	return nil
}

// Start will prepare the arguments for the libcamera-still command using the
// configuration set using the Set method then call the libcamera-still
// command, piping the image output from which the Read method will read.
func (c *Libcamera) Start() error {
	args := []string{
		"--output", "-",
		"--nopreview",
		"--encoding", "jpg",
		"--width", fmt.Sprint(c.cfg.Width),
		"--height", fmt.Sprint(c.cfg.Height),
		"--rotation", fmt.Sprint(c.cfg.Rotation),
		"--quality", fmt.Sprint(c.cfg.JPEGQuality),
		"--timeout", fmt.Sprint(captureTimeoutMs),
	}

	c.log.Info(pkg+"libcamera-still args", "args", strings.Join(args, " "))
	c.cmd = exec.Command("libcamera-still", args...)
	c.done = make(chan struct{})

	var err error
	c.out, err = c.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("could not pipe command output: %w", err)
	}

	stderr, err := c.cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("could not pipe command error: %w", err)
	}

	go func() {
		errScnr := bufio.NewScanner(stderr)
		for {
			select {
			case <-c.done:
				c.log.Debug(pkg + "Stop() called, finished checking stderr")
				return
			default:
			}

			if errScnr.Scan() {
				c.log.Debug(pkg+"line from libcamera-still stderr", "line", errScnr.Text())
				continue
			}

			err := errScnr.Err()
			if err != nil {
				c.log.Error(pkg+"error from stderr scan", "error", err)
			}
			return
		}
	}()

	err = c.cmd.Start()
	if err != nil {
		return fmt.Errorf("could not start libcamera-still process: %w", err)
	}
	c.isRunning = true

	return nil
}

// Read implements io.Reader. Calling Read before Start has been called will
// result in 0 bytes read and an error.
func (c *Libcamera) Read(p []byte) (int, error) {
	if c.out != nil {
		return c.out.Read(p)
	}
	return 0, errNotStarted
}

// Stop reaps the libcamera-still process and closes the output pipe. Unlike a
// streaming device the process exits by itself once the capture completes, so
// Stop waits rather than kills.
func (c *Libcamera) Stop() error {
	if !c.isRunning {
		return nil
	}
	close(c.done)
	c.isRunning = false
	if c.cmd == nil || c.cmd.Process == nil {
		return errors.New("libcamera-still process was never started")
	}
	err := c.cmd.Wait()
	if err != nil {
		return fmt.Errorf("libcamera-still process did not exit cleanly: %w", err)
	}
	return nil
}
