// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package screen2d implements a 2D display.Drawer that renders to the
// terminal (stdout) using ANSI color codes.
//
// Useful to preview what the frame buffer of an LCD driver would show
// without wiring up the actual panel.
package screen2d

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"
)

// Opts represents the options available for this display.
type Opts struct {
	// W and H are the emulated display size in character cells.
	W int
	H int
	// Palette converts colors to ANSI codes. Defaults to ansi256.Default.
	Palette *ansi256.Palette
	// Writer overrides the output; defaults to a colorable stdout.
	Writer io.Writer

	_ struct{}
}

// Dev is a 2D display emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	rect    image.Rectangle
	palette ansi256.Palette

	pixels []byte
	buf    bytes.Buffer
}

// New returns a Dev that displays at the console.
//
// Terminals rarely fit a 240x320 panel one cell per pixel; pick a size and
// draw a scaled-down image into it.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.Writer
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	return &Dev{
		w:       w,
		rect:    image.Rect(0, 0, opts.W, opts.H),
		palette: *p,
		pixels:  make([]byte, 3*opts.W*opts.H),
	}
}

func (d *Dev) String() string {
	return "Screen2D"
}

// Halt implements conn.Resource.
//
// It resets the terminal attributes so the shell is not left with a stray
// background color.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	r = r.Intersect(d.rect)
	srcR := src.Bounds()
	srcR.Min = srcR.Min.Add(sp)
	if dX := r.Dx(); dX < srcR.Dx() {
		srcR.Max.X = srcR.Min.X + dX
	}
	if dY := r.Dy(); dY < srcR.Dy() {
		srcR.Max.Y = srcR.Min.Y + dY
	}
	for sY := srcR.Min.Y; sY < srcR.Max.Y; sY++ {
		dY := r.Min.Y + sY - srcR.Min.Y
		for sX := srcR.Min.X; sX < srcR.Max.X; sX++ {
			r16, g16, b16, _ := src.At(sX, sY).RGBA()
			o := 3 * ((dY * d.rect.Dx()) + r.Min.X + sX - srcR.Min.X)
			d.pixels[o] = byte(r16 >> 8)
			d.pixels[o+1] = byte(g16 >> 8)
			d.pixels[o+2] = byte(b16 >> 8)
		}
	}
	_, err := d.refresh()
	return err
}

func (d *Dev) refresh() (int, error) {
	// This code is designed to minimize the amount of memory allocated per
	// call.
	d.buf.Reset()
	_, _ = d.buf.WriteString("\033[0m")
	w := d.rect.Dx()
	for i := 0; i < len(d.pixels)/3; i++ {
		if i%w == 0 {
			_, _ = d.buf.WriteString("\033[0m\n")
		}
		c := color.NRGBA{d.pixels[3*i], d.pixels[3*i+1], d.pixels[3*i+2], 255}
		_, _ = io.WriteString(&d.buf, d.palette.Block(c))
	}
	_, _ = d.buf.WriteString("\033[0m\n")
	_, err := d.buf.WriteTo(d.w)
	return len(d.pixels), err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
