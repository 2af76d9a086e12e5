// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package xl9555 provides an interface to the XLSEMI XL9555 16-bit I²C I/O
// expander, a PCA9555-compatible device.
//
// On the Alientek DNESP32S3 board the expander drives the LCD reset and
// backlight lines, the beeper and a few other control signals, and reads
// the four push buttons. The board-specific pin assignments are exported as
// constants.
//
// Both a direct pin-level API (WritePin, ReadPin) and gpio.PinIO pins
// registered in gpioreg are provided.
//
// # Datasheet
//
// https://www.xlsemi.com/datasheet/XL9555-EN.pdf
package xl9555

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
)

// Register addresses. Each register comes in a port 0 and a port 1 variant
// at consecutive addresses.
const (
	regInputPort0   uint8 = 0x00
	regInputPort1   uint8 = 0x01
	regOutputPort0  uint8 = 0x02
	regOutputPort1  uint8 = 0x03
	regPolarityInv0 uint8 = 0x04
	regPolarityInv1 uint8 = 0x05
	regConfigPort0  uint8 = 0x06
	regConfigPort1  uint8 = 0x07
)

// DefaultAddr is the device address with A0..A2 grounded. Addresses up to
// 0x27 are reachable with the address pins.
const DefaultAddr uint16 = 0x20

// Pin assignments on the DNESP32S3 board. Pins 0-7 are port 0, pins 8-15
// are port 1.
const (
	PinAPInt      = 0  // audio codec interrupt
	PinQMAInt     = 1  // accelerometer interrupt
	PinSpeakerEn  = 2  // speaker amplifier enable
	PinBeep       = 3  // beeper
	PinOVPowerDwn = 4  // camera power down
	PinOVReset    = 5  // camera reset
	PinGBCLED     = 6
	PinGBCKey     = 7
	PinLCDBacklit = 8  // RGB LCD backlight
	PinTouchReset = 9  // capacitive touch reset
	PinLCDReset   = 10 // SPI LCD reset
	PinLCDPower   = 11 // SPI LCD backlight power
	PinKey3       = 12
	PinKey2       = 13
	PinKey1       = 14
	PinKey0       = 15
)

// Direction register defaults for the DNESP32S3 wiring: the two interrupt
// lines and the four keys are inputs, everything else is an output.
const (
	defaultConfig0 uint8 = 0x03
	defaultConfig1 uint8 = 0xF0
)

// Dev is an open handle to an XL9555.
type Dev struct {
	// Pins are the 16 expander pins as gpio.PinIO, indexed by pin number
	// and registered in gpioreg.
	Pins []gpio.PinIO

	mu     sync.Mutex
	name   string
	input  [2]registerCache
	output [2]registerCache
	config [2]registerCache
}

// New returns a device object that communicates over I²C to an XL9555.
//
// The direction registers are programmed for the DNESP32S3 wiring and all
// output pins are raised, which leaves the beeper and speaker off.
func New(bus i2c.Bus, addr uint16) (*Dev, error) {
	if addr < 0x20 || addr > 0x27 {
		return nil, fmt.Errorf("xl9555: address %#x not reachable with A0..A2", addr)
	}
	c := &i2c.Dev{Bus: bus, Addr: addr}
	d := &Dev{
		name: fmt.Sprintf("XL9555_%x", addr),
		input: [2]registerCache{
			newRegister(c, regInputPort0),
			newRegister(c, regInputPort1),
		},
		output: [2]registerCache{
			newRegister(c, regOutputPort0),
			newRegister(c, regOutputPort1),
		},
		config: [2]registerCache{
			newRegister(c, regConfigPort0),
			newRegister(c, regConfigPort1),
		},
	}
	if err := d.config[0].writeValue(defaultConfig0, true); err != nil {
		return nil, err
	}
	if err := d.config[1].writeValue(defaultConfig1, true); err != nil {
		return nil, err
	}
	// Idle state for all outputs is high.
	if err := d.Out(0xFFFF); err != nil {
		return nil, err
	}

	d.Pins = make([]gpio.PinIO, 16)
	for i := range d.Pins {
		p := &expanderPin{dev: d, number: i}
		d.Pins[i] = p
		// Ignore registration failure.
		_ = gpioreg.Register(p)
	}
	return d, nil
}

func (d *Dev) String() string {
	return d.name
}

// WritePin drives a single output pin.
func (d *Dev) WritePin(pin int, l gpio.Level) error {
	if pin < 0 || pin > 15 {
		return fmt.Errorf("xl9555: pin %d out of range", pin)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.output[pin/8].getAndSetBit(uint8(pin%8), l == gpio.High, true)
}

// ReadPin returns the level of a single pin: the input register for pins
// configured as inputs, the output cache otherwise.
func (d *Dev) ReadPin(pin int) (gpio.Level, error) {
	if pin < 0 || pin > 15 {
		return gpio.Low, fmt.Errorf("xl9555: pin %d out of range", pin)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readPinLocked(pin)
}

func (d *Dev) readPinLocked(pin int) (gpio.Level, error) {
	port, bit := pin/8, uint8(pin%8)
	isInput, err := d.config[port].getBit(bit, true)
	if err != nil {
		return gpio.Low, err
	}
	var set bool
	if isInput {
		set, err = d.input[port].getBit(bit, false)
	} else {
		set, err = d.output[port].getBit(bit, true)
	}
	if err != nil {
		return gpio.Low, err
	}
	if set {
		return gpio.High, nil
	}
	return gpio.Low, nil
}

// TogglePin inverts a single output pin.
func (d *Dev) TogglePin(pin int) error {
	if pin < 0 || pin > 15 {
		return fmt.Errorf("xl9555: pin %d out of range", pin)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	l, err := d.readPinLocked(pin)
	if err != nil {
		return err
	}
	return d.output[pin/8].getAndSetBit(uint8(pin%8), l != gpio.High, true)
}

// Out writes all 16 output bits at once; the low byte is port 0.
func (d *Dev) Out(value uint16) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.output[0].writeValue(uint8(value), true); err != nil {
		return err
	}
	return d.output[1].writeValue(uint8(value>>8), true)
}

// Input reads all 16 input bits at once; the low byte is port 0.
func (d *Dev) Input() (uint16, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p0, err := d.input[0].readValue(false)
	if err != nil {
		return 0, err
	}
	p1, err := d.input[1].readValue(false)
	if err != nil {
		return 0, err
	}
	return uint16(p1)<<8 | uint16(p0), nil
}

// KeyScan polls the four board buttons and returns the index of the pressed
// key (0 for KEY0 .. 3 for KEY3), or -1 when none is pressed. The buttons
// are active low; KEY0 has priority when several are held.
func (d *Dev) KeyScan() (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p1, err := d.input[1].readValue(false)
	if err != nil {
		return -1, err
	}
	keys := [4]int{PinKey0, PinKey1, PinKey2, PinKey3}
	for i, pin := range keys {
		if p1&(1<<uint(pin-8)) == 0 {
			return i, nil
		}
	}
	return -1, nil
}

// SetBeep switches the on-board beeper, which is active low.
func (d *Dev) SetBeep(on bool) error {
	l := gpio.High
	if on {
		l = gpio.Low
	}
	return d.WritePin(PinBeep, l)
}

// Halt implements conn.Resource. It unregisters the pins and returns all
// outputs to the idle high state.
func (d *Dev) Halt() error {
	for _, p := range d.Pins {
		_ = gpioreg.Unregister(p.Name())
	}
	d.Pins = nil
	return d.Out(0xFFFF)
}
