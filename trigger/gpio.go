/*
DESCRIPTION
  gpio.go provides a Trigger implementation for an arcade style push button
  wired to a raspberry pi GPIO pin, active low with the internal pull-up.

AUTHORS
  Matt Stief <mattstief@users.noreply.github.com>

LICENSE
  Copyright (C) 2026 Matt Stief. All rights reserved.

  Use of this source code is governed by the BSD 2-clause license that can be
  found in the LICENSE file.
*/

package trigger

import (
	"fmt"
	"sync"
	"time"

	"github.com/ausocean/utils/logging"
	"github.com/kidoman/embd"

	"github.com/mattstief/photobooth/booth/config"
)

// How often the button pin is sampled.
const gpioPollPeriod = 20 * time.Millisecond

// pin abstracts the single embd.DigitalPin method the poller needs, so that
// tests can substitute a fake.
type pin interface {
	Read() (int, error)
}

// GPIO is a Trigger implementation for a push button on a GPIO pin. The pin
// is polled; a falling edge fires the shutter, with further edges ignored for
// the debounce period.
type GPIO struct {
	log       logging.Logger
	pin       pin
	debounce  time.Duration
	events    chan Event
	done      chan struct{}
	wg        sync.WaitGroup
	isRunning bool
}

// NewGPIO returns a new GPIO trigger for the button pin given by the config.
// The pin is configured as an input with the pull-up enabled; on hosts where
// the pull cannot be set from userspace this downgrades to a warning and an
// external pull-up is assumed.
func NewGPIO(l logging.Logger, c config.Config) (*GPIO, error) {
	err := embd.InitGPIO()
	if err != nil {
		return nil, fmt.Errorf("could not initialise GPIO: %w", err)
	}

	p, err := embd.NewDigitalPin(int(c.GPIOPin))
	if err != nil {
		return nil, fmt.Errorf("could not open GPIO pin %d: %w", c.GPIOPin, err)
	}

	err = p.SetDirection(embd.In)
	if err != nil {
		return nil, fmt.Errorf("could not set GPIO pin %d as input: %w", c.GPIOPin, err)
	}

	err = p.PullUp()
	if err != nil {
		l.Warning(pkg+"could not enable pull-up, assuming external pull-up", "pin", c.GPIOPin, "error", err)
	}

	l.Info(pkg+"GPIO button ready", "pin", c.GPIOPin)
	return newGPIOWithPin(l, p, c.DebouncePeriod), nil
}

// newGPIOWithPin wires a GPIO trigger to an already configured pin.
func newGPIOWithPin(l logging.Logger, p pin, debounce time.Duration) *GPIO {
	return &GPIO{
		log:      l,
		pin:      p,
		debounce: debounce,
		events:   make(chan Event, 1),
	}
}

// Name returns the name of the trigger.
func (g *GPIO) Name() string { return "GPIO" }

// Events returns the channel on which button presses are delivered.
func (g *GPIO) Events() <-chan Event { return g.events }

// Start begins polling the button pin.
func (g *GPIO) Start() error {
	if g.isRunning {
		return nil
	}
	g.done = make(chan struct{})
	g.isRunning = true
	g.wg.Add(1)
	go g.poll()
	return nil
}

// Stop ends polling. No further events are delivered.
func (g *GPIO) Stop() error {
	if !g.isRunning {
		return nil
	}
	close(g.done)
	g.wg.Wait()
	g.isRunning = false
	return nil
}

func (g *GPIO) poll() {
	defer g.wg.Done()

	ticker := time.NewTicker(gpioPollPeriod)
	defer ticker.Stop()

	last := embd.High
	var lastFire time.Time

	for {
		select {
		case <-g.done:
			return
		case <-ticker.C:
		}

		v, err := g.pin.Read()
		if err != nil {
			g.log.Warning(pkg+"could not read button pin", "error", err)
			continue
		}

		if v == embd.Low && last != embd.Low && time.Since(lastFire) >= g.debounce {
			lastFire = time.Now()
			g.log.Debug(pkg + "button pressed")
			select {
			case g.events <- Shutter:
			default:
			}
		}
		last = v
	}
}
