/*
DESCRIPTION
  escpos.go provides an encoder for the subset of the ESC/POS thermal printer
  command set the booth needs: initialisation, alignment, emphasis, character
  size, text and paper cut. The encoder writes the command stream to an
  io.Writer, typically the printer's device node.

AUTHORS
  Matt Stief <mattstief@users.noreply.github.com>

LICENSE
  Copyright (C) 2026 Matt Stief. All rights reserved.

  Use of this source code is governed by the BSD 2-clause license that can be
  found in the LICENSE file.
*/

// Package escpos provides encoding of ESC/POS thermal printer commands,
// including raster bit images, over an io.Writer.
package escpos

import (
	"io"

	"github.com/pkg/errors"
)

// Command prefix bytes.
const (
	esc = 0x1b
	gs  = 0x1d
	lf  = 0x0a
)

// Alignment is a horizontal text and image alignment.
type Alignment byte

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Character size bounds for SetSize.
const (
	minCharSize = 1
	maxCharSize = 8
)

// Encoder encodes ESC/POS commands to its destination writer. Methods write
// immediately; the first write error is returned and the destination is left
// in an undefined state.
type Encoder struct {
	dst io.Writer
}

// NewEncoder returns an Encoder writing to dst.
func NewEncoder(dst io.Writer) *Encoder {
	return &Encoder{dst: dst}
}

func (e *Encoder) write(b ...byte) error {
	_, err := e.dst.Write(b)
	return err
}

// Init resets the printer to its power-on state (ESC @).
func (e *Encoder) Init() error {
	return e.write(esc, '@')
}

// SetAlign sets the horizontal alignment for subsequent text and images
// (ESC a).
func (e *Encoder) SetAlign(a Alignment) error {
	if a > AlignRight {
		return errors.Errorf("invalid alignment: %d", a)
	}
	return e.write(esc, 'a', byte(a))
}

// SetEmphasis turns bold printing on or off (ESC E).
func (e *Encoder) SetEmphasis(on bool) error {
	var n byte
	if on {
		n = 1
	}
	return e.write(esc, 'E', n)
}

// SetSize sets the character width and height multipliers, each 1 to 8
// (GS !).
func (e *Encoder) SetSize(w, h int) error {
	if w < minCharSize || w > maxCharSize || h < minCharSize || h > maxCharSize {
		return errors.Errorf("character size out of range: %dx%d", w, h)
	}
	return e.write(gs, '!', byte((w-1)<<4|(h-1)))
}

// Text writes the given string to the printer as-is.
func (e *Encoder) Text(s string) error {
	_, err := io.WriteString(e.dst, s)
	return err
}

// Textln writes the given string followed by a line feed.
func (e *Encoder) Textln(s string) error {
	err := e.Text(s)
	if err != nil {
		return err
	}
	return e.write(lf)
}

// Feed advances the paper n lines (ESC d).
func (e *Encoder) Feed(n byte) error {
	return e.write(esc, 'd', n)
}

// Cut feeds the paper to the cut position and performs a partial cut
// (GS V function B).
func (e *Encoder) Cut() error {
	return e.write(gs, 'V', 66, 0)
}
