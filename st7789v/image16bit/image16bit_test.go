// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package image16bit

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func TestNew(t *testing.T) {
	img := New(image.Rect(0, 0, 240, 320))
	if got, want := len(img.Pix), 240*320*2; got != want {
		t.Fatalf("len(Pix) = %d, want %d", got, want)
	}
	if got, want := img.Stride, 480; got != want {
		t.Fatalf("Stride = %d, want %d", got, want)
	}
	for _, b := range img.Pix {
		if b != 0 {
			t.Fatal("new image is not black")
		}
	}
}

func TestSetRGB565RoundTrip(t *testing.T) {
	img := New(image.Rect(0, 0, 7, 5))
	for y := 0; y < 5; y++ {
		for x := 0; x < 7; x++ {
			c := Color(y*7 + x + 0x1234)
			img.SetRGB565(x, y, c)
			if got := img.RGB565At(x, y); got != c {
				t.Fatalf("pixel (%d,%d) = %#04x, want %#04x", x, y, got, c)
			}
		}
	}
}

func TestSetRGB565LittleEndian(t *testing.T) {
	img := New(image.Rect(0, 0, 2, 1))
	img.SetRGB565(1, 0, 0xA5C3)
	if img.Pix[2] != 0xC3 || img.Pix[3] != 0xA5 {
		t.Fatalf("Pix = %#v, want low byte first", img.Pix)
	}
}

func TestSetRGB565OutOfBounds(t *testing.T) {
	img := New(image.Rect(0, 0, 4, 4))
	img.Fill(Gray)
	before := append([]byte(nil), img.Pix...)
	for _, pt := range []image.Point{
		{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {-10, -10}, {100, 100},
	} {
		img.SetRGB565(pt.X, pt.Y, White)
	}
	if !bytes.Equal(img.Pix, before) {
		t.Fatal("out of bounds write modified the buffer")
	}
}

func TestFillRectDegenerate(t *testing.T) {
	img := New(image.Rect(0, 0, 8, 8))
	img.Fill(Blue)
	before := append([]byte(nil), img.Pix...)
	img.FillRect(2, 2, 0, 4, Red)
	img.FillRect(2, 2, 4, 0, Red)
	img.FillRect(2, 2, -1, -1, Red)
	if !bytes.Equal(img.Pix, before) {
		t.Fatal("degenerate FillRect modified the buffer")
	}
}

func TestFillRectClamps(t *testing.T) {
	img := New(image.Rect(0, 0, 240, 320))
	img.FillRect(-5, -5, 10, 10, White)
	for y := 0; y < 320; y++ {
		for x := 0; x < 240; x++ {
			want := Black
			if x < 5 && y < 5 {
				want = White
			}
			if got := img.RGB565At(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %#04x, want %#04x", x, y, got, want)
			}
		}
	}
}

func TestFillRectFarEdge(t *testing.T) {
	img := New(image.Rect(0, 0, 10, 10))
	img.FillRect(8, 9, 100, 100, Green)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := Black
			if x >= 8 && y >= 9 {
				want = Green
			}
			if got := img.RGB565At(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %#04x, want %#04x", x, y, got, want)
			}
		}
	}
}

func TestFill(t *testing.T) {
	img := New(image.Rect(0, 0, 3, 3))
	img.Fill(Yellow)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if got := img.RGB565At(x, y); got != Yellow {
				t.Fatalf("pixel (%d,%d) = %#04x, want %#04x", x, y, got, Yellow)
			}
		}
	}
}

func TestColorRGBA(t *testing.T) {
	tests := []struct {
		c          Color
		r, g, b, a uint32
	}{
		{Black, 0, 0, 0, 0xFFFF},
		{White, 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF},
		{Red, 0xFFFF, 0, 0, 0xFFFF},
		{Green, 0, 0xFFFF, 0, 0xFFFF},
		{Blue, 0, 0, 0xFFFF, 0xFFFF},
	}
	for _, tt := range tests {
		r, g, b, a := tt.c.RGBA()
		if r != tt.r || g != tt.g || b != tt.b || a != tt.a {
			t.Errorf("%#04x.RGBA() = %d, %d, %d, %d, want %d, %d, %d, %d",
				uint16(tt.c), r, g, b, a, tt.r, tt.g, tt.b, tt.a)
		}
	}
}

func TestColorModel(t *testing.T) {
	tests := []struct {
		in   color.Color
		want Color
	}{
		{color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}, White},
		{color.RGBA{0, 0, 0, 0xFF}, Black},
		{color.RGBA{0xFF, 0, 0, 0xFF}, Red},
		{color.RGBA{0, 0xFF, 0, 0xFF}, Green},
		{color.RGBA{0, 0, 0xFF, 0xFF}, Blue},
		{Magenta, Magenta},
	}
	for _, tt := range tests {
		if got := ColorModel.Convert(tt.in).(Color); got != tt.want {
			t.Errorf("Convert(%v) = %#04x, want %#04x", tt.in, uint16(got), uint16(tt.want))
		}
	}
}

func TestDrawImage(t *testing.T) {
	// The type must be usable as an image/draw destination.
	img := New(image.Rect(0, 0, 6, 6))
	draw.Draw(img, image.Rect(1, 1, 5, 5), &image.Uniform{color.RGBA{0xFF, 0, 0, 0xFF}}, image.Point{}, draw.Src)
	if got := img.RGB565At(2, 2); got != Red {
		t.Fatalf("pixel (2,2) = %#04x, want %#04x", got, Red)
	}
	if got := img.RGB565At(0, 0); got != Black {
		t.Fatalf("pixel (0,0) = %#04x, want %#04x", got, Black)
	}
}
