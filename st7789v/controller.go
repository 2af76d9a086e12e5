// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7789v

import (
	"time"
)

// Commands, per the Sitronix ST7789V datasheet.
const (
	nop              byte = 0x00
	swReset          byte = 0x01
	sleepIn          byte = 0x10
	sleepOut         byte = 0x11
	partialModeOn    byte = 0x12
	normalModeOn     byte = 0x13
	invertOff        byte = 0x20
	invertOn         byte = 0x21
	displayOff       byte = 0x28
	displayOn        byte = 0x29
	columnAddressSet byte = 0x2A
	rowAddressSet    byte = 0x2B
	memoryWrite      byte = 0x2C
	memoryRead       byte = 0x2E
	addressingMode   byte = 0x36
	colorMode        byte = 0x3A
)

// Flags for the addressingMode (MADCTL) command.
const (
	madctlMY byte = 0x80 // row address order
	madctlMX byte = 0x40 // column address order
	madctlMV byte = 0x20 // row/column exchange
)

// colorFormat16bit is the colorMode payload selecting 16bpp RGB565.
const colorFormat16bit byte = 0x05

// Rotation selects the display orientation in 90° steps.
type Rotation uint8

const (
	// Rotation0 is portrait, the connector at the bottom.
	Rotation0 Rotation = 0
	// Rotation90 is landscape.
	Rotation90 Rotation = 1
	// Rotation180 is portrait, upside down.
	Rotation180 Rotation = 2
	// Rotation270 is landscape, upside down.
	Rotation270 Rotation = 3
)

// addressingModeData returns the MADCTL payload for the rotation. The values
// are fixed by the controller's row/column order and exchange bits and must
// stay bit-exact for the panel to scan out correctly.
func (r Rotation) addressingModeData() byte {
	switch r % 4 {
	case Rotation90:
		return madctlMX | madctlMV // 0x60
	case Rotation180:
		return madctlMY | madctlMX // 0xC0
	case Rotation270:
		return madctlMY | madctlMV // 0xA0
	default:
		return 0x00
	}
}

// swapsAxes reports whether the rotation exchanges the logical width and
// height.
func (r Rotation) swapsAxes() bool {
	return r%2 == 1
}

type controller interface {
	sendCommand(byte)
	sendData([]byte)
}

// setWindow restricts subsequent memory writes to the rectangle of size
// (w, h) anchored at (x, y) and issues the memory-write command. The
// controller forgets the window across refresh cycles, so this precedes
// every pixel transfer. The caller is responsible for keeping the rectangle
// inside the physical display.
func setWindow(ctrl controller, x, y, w, h int) {
	xEnd := x + w - 1
	yEnd := y + h - 1

	ctrl.sendCommand(columnAddressSet)
	ctrl.sendData([]byte{byte(x >> 8), byte(x), byte(xEnd >> 8), byte(xEnd)})

	ctrl.sendCommand(rowAddressSet)
	ctrl.sendData([]byte{byte(y >> 8), byte(y), byte(yEnd >> 8), byte(yEnd)})

	// Pixel data follows as the command payload, sent by the caller.
	ctrl.sendCommand(memoryWrite)
}

// setRotation programs the addressing mode for the rotation.
func setRotation(ctrl controller, r Rotation) {
	ctrl.sendCommand(addressingMode)
	ctrl.sendData([]byte{r.addressingModeData()})
}

// initDisplay brings the panel out of sleep and configures it for RGB565
// operation. The delays are hard timing requirements from the datasheet.
// This panel needs display inversion enabled to show correct polarity.
func initDisplay(ctrl controller, r Rotation) {
	ctrl.sendCommand(sleepOut)
	time.Sleep(120 * time.Millisecond)

	ctrl.sendCommand(colorMode)
	ctrl.sendData([]byte{colorFormat16bit})

	ctrl.sendCommand(invertOn)
	time.Sleep(10 * time.Millisecond)

	setRotation(ctrl, r)

	ctrl.sendCommand(displayOn)
	time.Sleep(100 * time.Millisecond)
}
