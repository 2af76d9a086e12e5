// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7789v_test

import (
	"image"
	"log"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/dukai/esp32s3-zhengdianyuanzi/st7789v"
	"github.com/dukai/esp32s3-zhengdianyuanzi/st7789v/image16bit"
	"github.com/dukai/esp32s3-zhengdianyuanzi/xl9555"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// The reset and backlight lines go through the on-board I/O expander.
	b, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()
	exp, err := xl9555.New(b, xl9555.DefaultAddr)
	if err != nil {
		log.Fatalf("failed to initialize I/O expander: %v", err)
	}

	// Use spireg SPI bus registry to find the first available SPI bus.
	p, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	dc := gpioreg.ByName("GPIO40")
	if dc == nil {
		log.Fatal("failed to find the dc pin")
	}

	opts := st7789v.DefaultOpts
	opts.Expander = exp
	dev, err := st7789v.New(p, dc, nil, &opts)
	if err != nil {
		log.Fatalf("failed to initialize driver: %v", err)
	}
	if err := dev.Init(); err != nil {
		log.Fatalf("failed to initialize display: %v", err)
	}

	// Draw on it. White text on a black background.
	img := image16bit.New(dev.Bounds())
	f := basicfont.Face7x13
	drawer := font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image16bit.White},
		Face: f,
		Dot:  fixed.P(0, img.Bounds().Dy()-1-f.Descent),
	}
	drawer.DrawString("Hello from periph!")

	if err := dev.Draw(dev.Bounds(), img, image.Point{}); err != nil {
		log.Fatal(err)
	}
}

func Example_gg() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Use spireg SPI bus registry to find the first available SPI bus.
	p, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	dc := gpioreg.ByName("GPIO40")
	if dc == nil {
		log.Fatal("failed to find the dc pin")
	}

	dev, err := st7789v.New(p, dc, nil, &st7789v.DefaultOpts)
	if err != nil {
		log.Fatalf("failed to initialize driver: %v", err)
	}
	if err := dev.Init(); err != nil {
		log.Fatalf("failed to initialize display: %v", err)
	}

	// Render anti-aliased vector graphics and TrueType text off screen,
	// then push the finished frame in one refresh.
	w, h := dev.Size()
	dc2 := gg.NewContext(w, h)
	dc2.SetRGB(0, 0, 0)
	dc2.Clear()
	dc2.SetRGB(1, 1, 1)
	ft, err := truetype.Parse(goregular.TTF)
	if err != nil {
		log.Fatal(err)
	}
	dc2.SetFontFace(truetype.NewFace(ft, &truetype.Options{Size: 16}))
	text := "Hello from periph!"
	tw, th := dc2.MeasureString(text)
	padding := 8.0
	dc2.DrawRoundedRectangle(padding*2, padding*2, tw+padding*2, th+padding, 10)
	dc2.Stroke()
	dc2.DrawString(text, padding*3, padding*2+th)
	for i := 0; i < 10; i++ {
		dc2.DrawCircle(float64(30+(10*i)), 100, 5)
	}
	dc2.Fill()

	if err := dev.Draw(dev.Bounds(), dc2.Image(), image.Point{}); err != nil {
		log.Fatal(err)
	}
}
