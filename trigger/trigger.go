/*
DESCRIPTION
  trigger.go provides the Trigger interface describing shutter trigger
  sources, along with a manual software trigger implementation.

AUTHORS
  Matt Stief <mattstief@users.noreply.github.com>

LICENSE
  Copyright (C) 2026 Matt Stief. All rights reserved.

  Use of this source code is governed by the BSD 2-clause license that can be
  found in the LICENSE file.
*/

// Package trigger provides shutter trigger sources for the booth: a GPIO
// arcade button, a touchscreen, a keyboard and a manual software trigger.
// Each trigger delivers events on a channel; events arriving while a capture
// is in progress are dropped rather than queued.
package trigger

import (
	"errors"
)

// To indicate package when logging.
const pkg = "trigger: "

// Event is the kind of event a trigger can emit.
type Event uint8

const (
	// Shutter requests a capture.
	Shutter Event = iota

	// DismissPreview requests that the fullscreen preview be stopped without
	// capturing.
	DismissPreview
)

// Trigger describes a shutter trigger source. A Trigger delivers events on
// the channel returned by Events between calls to Start and Stop.
type Trigger interface {
	// Name returns the name of the Trigger.
	Name() string

	// Start will start the trigger monitoring its input.
	Start() error

	// Stop will stop the trigger. No further events are delivered.
	Stop() error

	// Events returns the channel on which trigger events are delivered.
	Events() <-chan Event
}

// Manual is a Trigger fired programmatically through the Fire method. It is
// used for testing and for setups driven by external software.
type Manual struct {
	events    chan Event
	isRunning bool
}

// NewManual returns a new Manual trigger.
func NewManual() *Manual {
	return &Manual{events: make(chan Event, 1)}
}

// Name returns the name of the trigger.
func (m *Manual) Name() string { return "Manual" }

// Start marks the trigger as running.
func (m *Manual) Start() error {
	m.isRunning = true
	return nil
}

// Stop marks the trigger as stopped; subsequent Fires will error.
func (m *Manual) Stop() error {
	m.isRunning = false
	return nil
}

// Events returns the channel on which fired events are delivered.
func (m *Manual) Events() <-chan Event { return m.events }

// Fire emits the given event. If the previous event has not yet been
// consumed the new one is dropped.
func (m *Manual) Fire(e Event) error {
	if !m.isRunning {
		return errors.New("manual trigger has not been started, can't fire")
	}
	select {
	case m.events <- e:
	default:
	}
	return nil
}
