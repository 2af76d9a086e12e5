// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7789v

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/dukai/esp32s3-zhengdianyuanzi/st7789v/image16bit"
)

// Errors returned when hardware control lines routed through the I/O
// expander are requested on a device configured without one.
var (
	// ErrNoExpander is returned by Reset. A skipped hardware reset leaves
	// the panel in an undefined state, so this is a configuration error.
	ErrNoExpander = errors.New("st7789v: hardware reset requires an I/O expander")
	// ErrBacklightUnavailable is returned by SetBacklight. The display
	// still works without backlight control, so callers may treat this as
	// a warning. Init does.
	ErrBacklightUnavailable = errors.New("st7789v: backlight control requires an I/O expander")
)

// PinExpander is the pin-level capability the driver consumes from the I/O
// expander that the board routes the LCD reset and backlight lines through.
//
// xl9555.Dev implements it.
type PinExpander interface {
	// WritePin drives one expander pin (0-15).
	WritePin(pin int, l gpio.Level) error
	// ReadPin returns the level of one expander pin (0-15).
	ReadPin(pin int) (gpio.Level, error)
}

// DefaultOpts is the recommended default options, matching the DNESP32S3
// schematic: SLCD_RST on expander pin 10 and SLCD_PWR on pin 11.
var DefaultOpts = Opts{
	W:            240,
	H:            320,
	ResetPin:     10,
	BacklightPin: 11,
}

// Opts defines the options for the device.
type Opts struct {
	// W and H are the physical panel dimensions in the default portrait
	// orientation.
	W int
	H int
	// Rotation is the initial orientation.
	Rotation Rotation
	// Expander gives access to the reset and backlight lines. It is
	// optional; without it Reset fails and SetBacklight degrades to a
	// warning.
	Expander PinExpander
	// ResetPin and BacklightPin are expander pin numbers.
	ResetPin     int
	BacklightPin int
}

// New returns a Dev object that communicates over SPI to an ST7789V display
// controller.
//
// The dc pin selects between command (low) and data (high) bytes. cs may be
// nil when the SPI transport asserts chip select itself.
//
// The frame buffer is allocated here, once, and reused for the lifetime of
// the device. Call Init to run the power-up sequence.
func New(p spi.Port, dc, cs gpio.PinOut, opts *Opts) (*Dev, error) {
	if dc == nil || dc == gpio.INVALID {
		return nil, errors.New("st7789v: dc pin is required")
	}
	if err := dc.Out(gpio.Low); err != nil {
		return nil, err
	}
	if opts.W <= 0 || opts.H <= 0 {
		return nil, fmt.Errorf("st7789v: invalid dimensions %dx%d", opts.W, opts.H)
	}
	c, err := p.Connect(40*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}
	d := &Dev{
		c:        c,
		dc:       dc,
		cs:       cs,
		rect:     image.Rect(0, 0, opts.W, opts.H),
		buffer:   image16bit.New(image.Rect(0, 0, opts.W, opts.H)),
		rotation: opts.Rotation % 4,
		opts:     opts,
	}
	return d, nil
}

// Dev is an open handle to the display controller.
//
// The frame buffer and the bus are owned exclusively by the device; draw
// calls mutate the buffer synchronously and Refresh blocks until the whole
// frame has been written out. Concurrent use must be serialized by the
// caller.
type Dev struct {
	c  conn.Conn
	dc gpio.PinOut
	cs gpio.PinOut

	// Physical panel size; never changes with rotation.
	rect image.Rectangle

	buffer   *image16bit.Image
	rotation Rotation
	opts     *Opts
}

func (d *Dev) String() string {
	return fmt.Sprintf("st7789v.Dev{%s, %s, %s}", d.c, d.dc, d.rect.Max)
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return image16bit.ColorModel
}

// Bounds implements display.Drawer. It is the frame buffer rectangle, which
// stays in the physical portrait orientation regardless of rotation.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Size returns the logical display dimensions for the current rotation:
// the physical ones for 0 and 180, swapped for 90 and 270.
func (d *Dev) Size() (int, int) {
	if d.rotation.swapsAxes() {
		return d.rect.Dy(), d.rect.Dx()
	}
	return d.rect.Dx(), d.rect.Dy()
}

// Rotation returns the active rotation.
func (d *Dev) Rotation() Rotation {
	return d.rotation
}

// Init runs the panel power-up sequence: hardware reset (when an expander
// is configured), sleep-out, 16-bit color mode, display inversion, the
// current rotation, display on, backlight on and a refresh of the cleared
// frame buffer.
//
// A missing expander only skips the reset pulse and backlight; the command
// sequence itself is still issued.
func (d *Dev) Init() error {
	if d.opts.Expander != nil {
		if err := d.resetPulse(10*time.Millisecond, 120*time.Millisecond); err != nil {
			return err
		}
	}

	eh := errorHandler{d: *d}
	initDisplay(&eh, d.rotation)
	if eh.err != nil {
		return eh.err
	}

	if err := d.SetBacklight(true); err != nil && !errors.Is(err, ErrBacklightUnavailable) {
		return err
	}

	d.buffer.Fill(image16bit.Black)
	return d.Refresh()
}

// Reset pulses the panel reset line low then high through the expander.
func (d *Dev) Reset() error {
	if d.opts.Expander == nil {
		return ErrNoExpander
	}
	return d.resetPulse(100*time.Millisecond, 100*time.Millisecond)
}

func (d *Dev) resetPulse(assert, settle time.Duration) error {
	if err := d.opts.Expander.WritePin(d.opts.ResetPin, gpio.Low); err != nil {
		return err
	}
	time.Sleep(assert)
	if err := d.opts.Expander.WritePin(d.opts.ResetPin, gpio.High); err != nil {
		return err
	}
	time.Sleep(settle)
	return nil
}

// SetBacklight switches the backlight through the expander. Without an
// expander it returns ErrBacklightUnavailable and does nothing else;
// callers that can live without backlight control may ignore that error.
func (d *Dev) SetBacklight(on bool) error {
	if d.opts.Expander == nil {
		return ErrBacklightUnavailable
	}
	l := gpio.Low
	if on {
		l = gpio.High
	}
	return d.opts.Expander.WritePin(d.opts.BacklightPin, l)
}

// SetRotation selects the orientation for subsequent refreshes. The frame
// buffer is untouched; only the addressing mode sent to the controller and
// the reported logical size change.
func (d *Dev) SetRotation(r Rotation) error {
	d.rotation = r % 4
	eh := errorHandler{d: *d}
	setRotation(&eh, d.rotation)
	return eh.err
}

// SetPixel sets one frame buffer pixel. Out-of-range coordinates are
// ignored.
func (d *Dev) SetPixel(x, y int, c image16bit.Color) {
	d.buffer.SetRGB565(x, y, c)
}

// FillRect fills the given rectangle, clamped to the frame buffer bounds.
func (d *Dev) FillRect(x, y, w, h int, c image16bit.Color) {
	d.buffer.FillRect(x, y, w, h, c)
}

// Fill sets the whole frame buffer to c.
func (d *Dev) Fill(c image16bit.Color) {
	d.buffer.Fill(c)
}

// Draw implements display.Drawer. The source is composited into the frame
// buffer and the display refreshed synchronously.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	draw.Src.Draw(d.buffer, r.Intersect(d.rect), src, sp)
	return d.Refresh()
}

// Refresh streams the entire frame buffer to the display.
//
// The full-frame window is programmed first, then the pixel data is sent in
// fixed-size chunks through a scratch buffer that converts each 16-bit
// pixel to the big-endian order the bus expects. Peak extra memory is one
// chunk regardless of the display resolution. Chip select stays asserted
// for the whole pixel payload.
func (d *Dev) Refresh() error {
	eh := errorHandler{d: *d}
	setWindow(&eh, 0, 0, d.rect.Dx(), d.rect.Dy())

	eh.dcOut(gpio.High)
	eh.csOut(gpio.Low)
	pix := d.buffer.Pix
	var scratch [refreshChunk]byte
	for off := 0; off < len(pix); off += refreshChunk {
		n := len(pix) - off
		if n > refreshChunk {
			n = refreshChunk
		}
		convertChunk(scratch[:n], pix[off:off+n])
		eh.cTx(scratch[:n])
	}
	eh.csOut(gpio.High)
	return eh.err
}

// Halt implements conn.Resource. It turns the display off; Init brings it
// back.
func (d *Dev) Halt() error {
	eh := errorHandler{d: *d}
	eh.sendCommand(displayOff)
	return eh.err
}

// refreshChunk is the number of bytes per SPI write during Refresh, 256
// pixels. It trades scratch memory for per-transfer overhead and has no
// effect on correctness.
const refreshChunk = 512

// convertChunk copies src into dst, swapping the two bytes of every pixel
// to convert the little-endian store to the big-endian wire order. Pixel
// order is preserved. len(src) must be even and dst at least as long.
func convertChunk(dst, src []byte) {
	for i := 0; i < len(src); i += 2 {
		dst[i] = src[i+1]
		dst[i+1] = src[i]
	}
}

var _ display.Drawer = &Dev{}
var _ conn.Resource = &Dev{}
