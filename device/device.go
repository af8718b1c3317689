/*
DESCRIPTION
  device.go provides ImageSource, an interface that describes a configurable
  still image capture device that can be started and stopped from which image
  data may be obtained.

AUTHORS
  Matt Stief <mattstief@users.noreply.github.com>

LICENSE
  Copyright (C) 2026 Matt Stief. All rights reserved.

  Use of this source code is governed by the BSD 2-clause license that can be
  found in the LICENSE file.
*/

// Package device provides an interface and implementations for input devices
// that can be started and stopped from which still image data can be obtained.
package device

import (
	"errors"
	"fmt"
	"io"

	"github.com/mattstief/photobooth/booth/config"
)

// ImageSource describes a configurable still capture device from which encoded
// image data can be obtained. ImageSource is an io.Reader; one capture is one
// Start, a read to io.EOF, and a Stop.
type ImageSource interface {
	io.Reader

	// Name returns the name of the ImageSource.
	Name() string

	// Set allows for configuration of the ImageSource using a Config struct.
	// All, some or none of the fields of the Config struct may be used for
	// configuration by an implementation. An implementation should specify
	// what fields are considered.
	Set(c config.Config) error

	// Start will start the ImageSource capturing a still; after which the
	// Read method may be called to obtain the data. The encoding of the data
	// may differ and should be specified by the implementation.
	Start() error

	// Stop will stop the ImageSource from capturing. From this point Reads
	// will no longer be successful.
	Stop() error

	// IsRunning is used to determine if the device is running.
	IsRunning() bool
}

// MultiError implements the built in error interface. MultiError is used here
// to collect multi errors during validation of configuration parameters for
// ImageSources.
type MultiError []error

func (me MultiError) Error() string {
	if len(me) == 0 {
		panic("device: invalid use of MultiError")
	}
	return fmt.Sprintf("%v", []error(me))
}

// ManualInput is an implementation of the ImageSource interface that
// represents a manual input mechanism, i.e. image data is written to this
// input manually through software (ManualInput also implements io.Writer,
// unlike other implementations). The ManualInput employs an io.Pipe, as such,
// every write must be accompanied by a full read (or reads) of the bytes,
// otherwise blocking will occur (and vice versa). The writer side must close
// the input to deliver io.EOF to the reader once the image is complete.
type ManualInput struct {
	isRunning bool
	reader    *io.PipeReader
	writer    *io.PipeWriter
}

// NewManualInput provides a new ManualInput.
func NewManualInput() *ManualInput {
	return &ManualInput{}
}

// Read reads from the manual input and puts the bytes into p.
func (m *ManualInput) Read(p []byte) (int, error) {
	if !m.isRunning {
		return 0, errors.New("manual input has not been started, can't read")
	}
	return m.reader.Read(p)
}

// Name returns the name of ManualInput i.e. "ManualInput".
func (m *ManualInput) Name() string { return "ManualInput" }

// Set is a stub to satisfy the ImageSource interface; no configuration fields
// are required by ManualInput.
func (m *ManualInput) Set(c config.Config) error { return nil }

// Start sets the ManualInput isRunning flag to true and opens a fresh pipe
// for the next image.
func (m *ManualInput) Start() error {
	m.isRunning = true
	m.reader, m.writer = io.Pipe()
	return nil
}

// Stop closes the pipe and sets the isRunning flag to false.
func (m *ManualInput) Stop() error {
	if m.reader != nil {
		m.reader.Close()
	}
	m.isRunning = false
	return nil
}

// IsRunning returns the value of the isRunning flag to indicate if Start has
// been called (and Stop has not been called after).
func (m *ManualInput) IsRunning() bool { return m.isRunning }

// Write writes p to the ManualInput's writer side of its pipe.
func (m *ManualInput) Write(p []byte) (int, error) {
	if !m.isRunning {
		return 0, errors.New("manual input has not been started, can't write")
	}
	return m.writer.Write(p)
}

// CloseWrite closes the writer side of the pipe, delivering io.EOF to the
// reader so that a capture completes.
func (m *ManualInput) CloseWrite() error {
	if !m.isRunning || m.writer == nil {
		return errors.New("manual input has not been started, can't close")
	}
	return m.writer.Close()
}
