/*
DESCRIPTION
  receipt.go composes and prints the full booth receipt: decorative dotted
  lines, store branding, the processed photo, a QR code and a footer
  message, finished with a paper cut.

AUTHORS
  Matt Stief <mattstief@users.noreply.github.com>

LICENSE
  Copyright (C) 2026 Matt Stief. All rights reserved.

  Use of this source code is governed by the BSD 2-clause license that can be
  found in the LICENSE file.
*/

// Package receipt composes booth receipts on an ESC/POS encoder.
package receipt

import (
	"fmt"
	"image"
	"image/draw"
	"io"

	"github.com/ausocean/utils/logging"
	"github.com/nfnt/resize"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/mattstief/photobooth/booth/config"
	"github.com/mattstief/photobooth/escpos"
)

// To indicate package when logging.
const pkg = "receipt: "

// Store holds the branding strings printed on every receipt.
type Store struct {
	Name     string
	Subtitle string
	Location string
	Social   string
	QRURL    string
	Footer   string
}

// Printer composes receipts on an ESC/POS encoder writing to the given
// destination, typically the printer device node.
type Printer struct {
	log    logging.Logger
	enc    *escpos.Encoder
	width  int
	qrSize int
	store  Store
}

// New returns a Printer writing to dst, configured from c.
func New(dst io.Writer, l logging.Logger, c config.Config) *Printer {
	return &Printer{
		log:    l,
		enc:    escpos.NewEncoder(dst),
		width:  int(c.PrinterWidth),
		qrSize: int(c.QRSize),
		store: Store{
			Name:     c.StoreName,
			Subtitle: c.StoreSubtitle,
			Location: c.StoreLocation,
			Social:   c.StoreSocial,
			QRURL:    c.StoreQRURL,
			Footer:   c.FooterMessage,
		},
	}
}

// Print composes the complete receipt around the given processed photo and
// writes it to the destination, ending with a cut.
func (p *Printer) Print(photo image.Image) error {
	// Defensive: the photo should already be at the printer dot width, but
	// rescale if a caller hands us something else.
	if photo.Bounds().Dx() != p.width {
		p.log.Warning(pkg+"photo width does not match printer width, resizing", "photo", photo.Bounds().Dx(), "printer", p.width)
		photo = resize.Resize(uint(p.width), 0, photo, resize.Lanczos3)
	}

	qr, err := qrcode.New(p.store.QRURL, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("could not generate QR code: %w", err)
	}

	steps := []struct {
		name string
		run  func() error
	}{
		{"init", p.enc.Init},
		{"align", func() error { return p.enc.SetAlign(escpos.AlignCenter) }},
		{"top coarse line", func() error { return p.enc.Raster(escpos.TopCoarseLine(p.width)) }},
		{"top fine line", func() error { return p.enc.Raster(escpos.TopFineLine(p.width)) }},
		{"emphasis on", func() error { return p.enc.SetEmphasis(true) }},
		{"double size", func() error { return p.enc.SetSize(2, 2) }},
		{"store name", func() error { return p.enc.Textln(p.store.Name) }},
		{"emphasis off", func() error { return p.enc.SetEmphasis(false) }},
		{"normal size", func() error { return p.enc.SetSize(1, 1) }},
		{"subtitle", func() error { return p.enc.Textln(p.store.Subtitle) }},
		{"location", func() error { return p.enc.Textln(p.store.Location) }},
		{"social", func() error { return p.enc.Textln(p.store.Social) }},
		{"bottom fine line", func() error { return p.enc.Raster(escpos.BottomFineLine(p.width)) }},
		{"bottom coarse line", func() error { return p.enc.Raster(escpos.BottomCoarseLine(p.width)) }},
		{"photo", func() error { return p.enc.Raster(photo) }},
		{"qr code", func() error { return p.enc.Raster(p.centered(qr.Image(p.qrSize))) }},
		{"footer", func() error { return p.enc.Textln(p.store.Footer) }},
		{"feed", func() error { return p.enc.Feed(3) }},
		{"cut", p.enc.Cut},
	}

	for _, step := range steps {
		err := step.run()
		if err != nil {
			return fmt.Errorf("could not print %s: %w", step.name, err)
		}
	}
	return nil
}

// centered pads the given image into a full printer-width white strip so
// that it prints centered regardless of printer alignment support.
func (p *Printer) centered(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() >= p.width {
		return img
	}

	out := image.NewGray(image.Rect(0, 0, p.width, b.Dy()))
	for i := range out.Pix {
		out.Pix[i] = 255
	}
	off := (p.width - b.Dx()) / 2
	draw.Draw(out, image.Rect(off, 0, off+b.Dx(), b.Dy()), img, b.Min, draw.Src)
	return out
}
