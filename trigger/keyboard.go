/*
DESCRIPTION
  keyboard.go provides a Trigger implementation for a keyboard monitored
  through the Linux evdev interface. A spacebar press fires the shutter.

AUTHORS
  Matt Stief <mattstief@users.noreply.github.com>

LICENSE
  Copyright (C) 2026 Matt Stief. All rights reserved.

  Use of this source code is governed by the BSD 2-clause license that can be
  found in the LICENSE file.
*/

package trigger

import (
	"sync"

	"github.com/ausocean/utils/logging"
	evdev "github.com/holoplot/go-evdev"
)

// Keyboard is a Trigger implementation for a keyboard. Only spacebar key-down
// events fire; auto-repeat and key-up events are ignored.
type Keyboard struct {
	log       logging.Logger
	dev       *evdev.InputDevice
	events    chan Event
	done      chan struct{}
	wg        sync.WaitGroup
	isRunning bool
}

// NewKeyboard returns a new Keyboard trigger. The keyboard device is not
// opened until Start.
func NewKeyboard(l logging.Logger) *Keyboard {
	return &Keyboard{
		log:    l,
		events: make(chan Event, 1),
	}
}

// Name returns the name of the trigger.
func (k *Keyboard) Name() string { return "Keyboard" }

// Events returns the channel on which spacebar presses are delivered.
func (k *Keyboard) Events() <-chan Event { return k.events }

// Start scans /dev/input for a keyboard and begins monitoring it. An error
// is returned if no device is found; the booth treats this as a warning and
// runs with its remaining triggers.
func (k *Keyboard) Start() error {
	if k.isRunning {
		return nil
	}

	dev, err := findDevice(k.log, isKeyboardDevice)
	if err != nil {
		return err
	}
	k.dev = dev

	name, err := dev.Name()
	if err != nil {
		name = "unknown"
	}
	k.log.Info(pkg+"monitoring keyboard device", "name", name)

	k.done = make(chan struct{})
	k.isRunning = true
	k.wg.Add(1)
	go k.monitor()
	return nil
}

// Stop closes the keyboard device, terminating the monitor goroutine.
func (k *Keyboard) Stop() error {
	if !k.isRunning {
		return nil
	}
	close(k.done)
	err := k.dev.Close()
	k.wg.Wait()
	k.isRunning = false
	return err
}

func (k *Keyboard) monitor() {
	defer k.wg.Done()
	for {
		ev, err := k.dev.ReadOne()
		if err != nil {
			select {
			case <-k.done:
			default:
				k.log.Warning(pkg+"could not read keyboard device", "error", err)
			}
			return
		}

		if ev.Type != evdev.EV_KEY || ev.Code != evdev.KEY_SPACE || ev.Value != 1 {
			continue
		}

		k.log.Debug(pkg + "spacebar pressed")
		select {
		case k.events <- Shutter:
		default:
		}
	}
}

// isKeyboardDevice reports whether the device can emit spacebar key events.
// Touchscreens are excluded so that a tap does not fire twice.
func isKeyboardDevice(d *evdev.InputDevice) bool {
	if isTouchDevice(d) {
		return false
	}
	for _, typ := range d.CapableTypes() {
		if typ != evdev.EV_KEY {
			continue
		}
		for _, code := range d.CapableEvents(evdev.EV_KEY) {
			if code == evdev.KEY_SPACE {
				return true
			}
		}
	}
	return false
}
