// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package image16bit provides the RGB565 image format used by 16-bit color
// TFT controllers like the ST7789V.
//
// Pixels are stored row-major, two bytes per pixel, in little-endian order.
// This matches the in-memory layout the driver keeps between refreshes; the
// byte order expected on the wire is big-endian and the conversion happens
// during the transfer, not in this package.
package image16bit

import (
	"image"
	"image/color"
)

// Color is a 16-bit RGB565 color: 5 bits red, 6 bits green, 5 bits blue.
type Color uint16

// Convenient colors, straight from the RGB565 palette.
const (
	Black   Color = 0x0000
	White   Color = 0xFFFF
	Red     Color = 0xF800
	Green   Color = 0x07E0
	Blue    Color = 0x001F
	Cyan    Color = 0x07FF
	Magenta Color = 0xF81F
	Yellow  Color = 0xFFE0
	Gray    Color = 0x8410
)

// RGBA implements color.Color.
//
// The 5 and 6 bit channels are expanded to 16 bits by bit replication, so
// full-scale values map to 0xFFFF exactly.
func (c Color) RGBA() (r, g, b, a uint32) {
	r5 := uint32(c>>11) & 0x1F
	g6 := uint32(c>>5) & 0x3F
	b5 := uint32(c) & 0x1F
	r = (r5<<3 | r5>>2) * 0x101
	g = (g6<<2 | g6>>4) * 0x101
	b = (b5<<3 | b5>>2) * 0x101
	a = 0xFFFF
	return
}

func convert(c color.Color) color.Color {
	if c565, ok := c.(Color); ok {
		return c565
	}
	r, g, b, _ := c.RGBA()
	return Color((r>>11)<<11 | (g>>10)<<5 | b>>11)
}

// ColorModel converts colors to Color.
var ColorModel = color.ModelFunc(convert)

// Image is an in-memory RGB565 image.
//
// The pixel slice is allocated once and mutated in place by every draw
// operation; it is never reallocated.
type Image struct {
	// Pix holds the pixels, two bytes per pixel in little-endian order.
	Pix []byte
	// Stride is the distance in bytes between two vertically adjacent
	// pixels.
	Stride int
	// Rect is the image bounds.
	Rect image.Rectangle
}

// New returns an initialized Image with all pixels set to black.
func New(r image.Rectangle) *Image {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &Image{Rect: r}
	}
	return &Image{
		Pix:    make([]byte, w*h*2),
		Stride: w * 2,
		Rect:   r,
	}
}

// ColorModel implements image.Image.
func (i *Image) ColorModel() color.Model {
	return ColorModel
}

// Bounds implements image.Image.
func (i *Image) Bounds() image.Rectangle {
	return i.Rect
}

// At implements image.Image.
func (i *Image) At(x, y int) color.Color {
	return i.RGB565At(x, y)
}

// RGB565At returns the color of the pixel at (x, y). Pixels outside the
// bounds read as black.
func (i *Image) RGB565At(x, y int) Color {
	if !(image.Point{X: x, Y: y}.In(i.Rect)) {
		return Black
	}
	o := i.PixOffset(x, y)
	return Color(i.Pix[o]) | Color(i.Pix[o+1])<<8
}

// Set implements draw.Image.
func (i *Image) Set(x, y int, c color.Color) {
	i.SetRGB565(x, y, convert(c).(Color))
}

// SetRGB565 sets the pixel at (x, y). Requests outside the bounds are
// ignored, so callers compositing near the edges need not bounds-check
// every pixel.
func (i *Image) SetRGB565(x, y int, c Color) {
	if !(image.Point{X: x, Y: y}.In(i.Rect)) {
		return
	}
	o := i.PixOffset(x, y)
	i.Pix[o] = byte(c)
	i.Pix[o+1] = byte(c >> 8)
}

// PixOffset returns the index into Pix of the first byte of the pixel at
// (x, y).
func (i *Image) PixOffset(x, y int) int {
	return (y-i.Rect.Min.Y)*i.Stride + (x-i.Rect.Min.X)*2
}

// FillRect fills the rectangle of size (w, h) anchored at (x, y),
// intersected with the image bounds. A non-positive width or height is a
// no-op.
func (i *Image) FillRect(x, y, w, h int, c Color) {
	if w <= 0 || h <= 0 {
		return
	}
	r := image.Rect(x, y, x+w, y+h).Intersect(i.Rect)
	if r.Empty() {
		return
	}
	lo, hi := byte(c), byte(c>>8)
	// Fill the first row pixel by pixel, then replicate it downwards.
	first := i.PixOffset(r.Min.X, r.Min.Y)
	rowLen := r.Dx() * 2
	for o := first; o < first+rowLen; o += 2 {
		i.Pix[o] = lo
		i.Pix[o+1] = hi
	}
	for y := r.Min.Y + 1; y < r.Max.Y; y++ {
		o := i.PixOffset(r.Min.X, y)
		copy(i.Pix[o:o+rowLen], i.Pix[first:first+rowLen])
	}
}

// Fill sets every pixel to c.
func (i *Image) Fill(c Color) {
	lo, hi := byte(c), byte(c>>8)
	for o := 0; o < len(i.Pix); o += 2 {
		i.Pix[o] = lo
		i.Pix[o+1] = hi
	}
}

var _ image.Image = &Image{}
