/*
DESCRIPTION
  touch.go provides a Trigger implementation for a touchscreen monitored
  through the Linux evdev interface. A short tap fires the shutter; a long
  press dismisses the fullscreen preview.

AUTHORS
  Matt Stief <mattstief@users.noreply.github.com>

LICENSE
  Copyright (C) 2026 Matt Stief. All rights reserved.

  Use of this source code is governed by the BSD 2-clause license that can be
  found in the LICENSE file.
*/

package trigger

import (
	"errors"
	"sync"
	"time"

	"github.com/ausocean/utils/logging"
	evdev "github.com/holoplot/go-evdev"

	"github.com/mattstief/photobooth/booth/config"
)

// Returned when device discovery finds no suitable input device.
var errNoDevice = errors.New("no suitable input device found")

// Touch is a Trigger implementation for a touchscreen. Both single touch
// (BTN_TOUCH) and multitouch (ABS_MT_TRACKING_ID) protocols are handled. A
// press held for the configured long-press period emits DismissPreview
// instead of Shutter.
type Touch struct {
	log       logging.Logger
	longPress time.Duration
	dev       *evdev.InputDevice
	events    chan Event
	done      chan struct{}
	wg        sync.WaitGroup
	isRunning bool

	mu        sync.Mutex
	touching  bool
	longFired bool
	lpTimer   *time.Timer
}

// NewTouch returns a new Touch trigger. The touch device is not opened until
// Start.
func NewTouch(l logging.Logger, c config.Config) *Touch {
	return &Touch{
		log:       l,
		longPress: c.LongPressPeriod,
		events:    make(chan Event, 1),
	}
}

// Name returns the name of the trigger.
func (t *Touch) Name() string { return "Touch" }

// Events returns the channel on which touch events are delivered.
func (t *Touch) Events() <-chan Event { return t.events }

// Start scans /dev/input for a touch capable device and begins monitoring
// it. An error is returned if no device is found; the booth treats this as a
// warning and runs with its remaining triggers.
func (t *Touch) Start() error {
	if t.isRunning {
		return nil
	}

	dev, err := findDevice(t.log, isTouchDevice)
	if err != nil {
		return err
	}
	t.dev = dev

	name, err := dev.Name()
	if err != nil {
		name = "unknown"
	}
	t.log.Info(pkg+"monitoring touch device", "name", name)

	t.done = make(chan struct{})
	t.isRunning = true
	t.wg.Add(1)
	go t.monitor()
	return nil
}

// Stop closes the touch device, terminating the monitor goroutine.
func (t *Touch) Stop() error {
	if !t.isRunning {
		return nil
	}
	close(t.done)
	err := t.dev.Close()
	t.wg.Wait()
	t.isRunning = false
	return err
}

func (t *Touch) monitor() {
	defer t.wg.Done()
	for {
		ev, err := t.dev.ReadOne()
		if err != nil {
			select {
			case <-t.done:
			default:
				t.log.Warning(pkg+"could not read touch device", "error", err)
			}
			return
		}

		switch ev.Type {
		case evdev.EV_KEY:
			if ev.Code != evdev.BTN_TOUCH {
				continue
			}
			if ev.Value == 1 {
				t.press()
			} else {
				t.release()
			}
		case evdev.EV_ABS:
			if ev.Code != evdev.ABS_MT_TRACKING_ID {
				continue
			}
			if ev.Value >= 0 {
				t.press()
			} else {
				t.release()
			}
		}
	}
}

// press marks the start of a touch and arms the long-press timer. Devices
// reporting both protocols produce one press per physical touch since
// repeats while touching are ignored.
func (t *Touch) press() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.touching {
		return
	}
	t.touching = true
	t.longFired = false
	t.lpTimer = time.AfterFunc(t.longPress, t.firedLongPress)
}

// release ends a touch. A release before the long-press timer has fired is a
// tap, which fires the shutter.
func (t *Touch) release() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.touching {
		return
	}
	t.touching = false
	t.lpTimer.Stop()
	if t.longFired {
		return
	}
	t.log.Debug(pkg + "touch tap")
	select {
	case t.events <- Shutter:
	default:
	}
}

func (t *Touch) firedLongPress() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.touching || t.longFired {
		return
	}
	t.longFired = true
	t.log.Debug(pkg + "touch long press")
	select {
	case t.events <- DismissPreview:
	default:
	}
}

// isTouchDevice reports whether the device exposes a touch protocol, either
// BTN_TOUCH or multitouch position slots.
func isTouchDevice(d *evdev.InputDevice) bool {
	for _, typ := range d.CapableTypes() {
		switch typ {
		case evdev.EV_KEY:
			for _, code := range d.CapableEvents(evdev.EV_KEY) {
				if code == evdev.BTN_TOUCH {
					return true
				}
			}
		case evdev.EV_ABS:
			for _, code := range d.CapableEvents(evdev.EV_ABS) {
				if code == evdev.ABS_MT_POSITION_X {
					return true
				}
			}
		}
	}
	return false
}

// findDevice scans the available input devices and returns the first for
// which match returns true.
func findDevice(l logging.Logger, match func(*evdev.InputDevice) bool) (*evdev.InputDevice, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		d, err := evdev.Open(p.Path)
		if err != nil {
			l.Debug(pkg+"could not open input device", "path", p.Path, "error", err)
			continue
		}
		if match(d) {
			return d, nil
		}
		d.Close()
	}
	return nil, errNoDevice
}
