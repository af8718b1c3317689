/*
DESCRIPTION
  preview.go provides an exec-managed live camera preview using the
  libcamera-hello utility. The preview runs between captures and is paused
  while libcamera-still holds the camera.

AUTHORS
  Matt Stief <mattstief@users.noreply.github.com>

LICENSE
  Copyright (C) 2026 Matt Stief. All rights reserved.

  Use of this source code is governed by the BSD 2-clause license that can be
  found in the LICENSE file.
*/

package libcamera

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ausocean/utils/logging"

	"github.com/mattstief/photobooth/booth/config"
)

// Preview controls a libcamera-hello process that shows a live camera feed on
// the attached display. Only one of Preview and Libcamera may hold the camera
// at a time; the caller is expected to Stop the preview before capturing.
type Preview struct {
	cfg       config.Config
	cmd       *exec.Cmd
	log       logging.Logger
	isRunning bool
}

// NewPreview returns a new Preview.
func NewPreview(l logging.Logger) *Preview {
	return &Preview{log: l}
}

// Set stores the fields of the given Config relevant to the preview: Width,
// Height, Rotation and Fullscreen.
func (p *Preview) Set(c config.Config) error {
	p.cfg = c
	return nil
}

// IsRunning reports whether the preview process is up.
func (p *Preview) IsRunning() bool { return p.isRunning }

// Start launches libcamera-hello with an indefinite timeout. Repeated calls
// while running are no-ops.
func (p *Preview) Start() error {
	if p.isRunning {
		return nil
	}

	args := []string{"--timeout", "0"}
	if p.cfg.Width != 0 && p.cfg.Height != 0 {
		args = append(args,
			"--width", fmt.Sprint(p.cfg.Width),
			"--height", fmt.Sprint(p.cfg.Height),
		)
	}
	if p.cfg.Fullscreen {
		args = append(args, "--fullscreen")
	}

	p.log.Info(pkg+"libcamera-hello args", "args", strings.Join(args, " "))
	p.cmd = exec.Command("libcamera-hello", args...)

	err := p.cmd.Start()
	if err != nil {
		return fmt.Errorf("could not start libcamera-hello process: %w", err)
	}
	p.isRunning = true

	// Reap the process when it exits so a killed preview does not linger as
	// a zombie.
	go func(cmd *exec.Cmd) {
		err := cmd.Wait()
		if err != nil {
			p.log.Debug(pkg+"preview process exited", "error", err)
		}
	}(p.cmd)

	return nil
}

// Stop kills the preview process, releasing the camera. Stopping a stopped
// preview is a no-op.
func (p *Preview) Stop() error {
	if !p.isRunning {
		return nil
	}
	p.isRunning = false
	if p.cmd == nil || p.cmd.Process == nil {
		return errors.New("libcamera-hello process was never started")
	}
	err := p.cmd.Process.Kill()
	if err != nil {
		return fmt.Errorf("could not kill libcamera-hello process: %w", err)
	}
	return nil
}
