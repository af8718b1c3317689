/*
DESCRIPTION
  file.go provides an implementation of the ImageSource interface for image
  files.

AUTHORS
  Matt Stief <mattstief@users.noreply.github.com>

LICENSE
  Copyright (C) 2026 Matt Stief. All rights reserved.

  Use of this source code is governed by the BSD 2-clause license that can be
  found in the LICENSE file.
*/

// Package file provides an implementation of ImageSource for image files.
// This is useful for sample receipt printing and for testing the pipeline
// without camera hardware.
package file

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/ausocean/utils/logging"

	"github.com/mattstief/photobooth/booth/config"
)

// ImageFile is an implementation of the ImageSource interface for a file
// containing an encoded still image. Each Start reopens the file, so the same
// source can serve repeated captures.
type ImageFile struct {
	f         *os.File
	path      string
	isRunning bool
	log       logging.Logger
	set       bool
	mu        sync.Mutex
}

// New returns a new ImageFile.
func New(l logging.Logger) *ImageFile { return &ImageFile{log: l} }

// NewWith returns a new ImageFile with required params provided i.e. the Set
// method does not need to be called.
func NewWith(l logging.Logger, path string) *ImageFile {
	return &ImageFile{log: l, path: path, set: true}
}

// Name returns the name of the device.
func (m *ImageFile) Name() string {
	return "File"
}

// Set simply takes the input path from the passed config.
func (m *ImageFile) Set(c config.Config) error {
	m.path = c.InputPath
	m.set = true
	return nil
}

// Start will open the file at the location of the InputPath field of the
// config struct.
func (m *ImageFile) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var err error
	if !m.set {
		return errors.New("ImageFile has not been set with config")
	}
	m.f, err = os.Open(m.path)
	if err != nil {
		return fmt.Errorf("could not open image file: %w", err)
	}
	m.isRunning = true
	return nil
}

// Stop will close the file such that any further reads will fail.
func (m *ImageFile) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	err := m.f.Close()
	if err == nil {
		m.isRunning = false
		return nil
	}
	return err
}

// Read implements io.Reader. If Start has not been called, or Start has been
// called and Stop has since been called, an error is returned.
func (m *ImageFile) Read(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.f == nil {
		return 0, errors.New("image file is closed, ImageFile not started")
	}
	return m.f.Read(p)
}

// IsRunning is used to determine if the ImageFile device is running.
func (m *ImageFile) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.f != nil && m.isRunning
}
