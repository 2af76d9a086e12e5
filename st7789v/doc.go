// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package st7789v controls a Sitronix ST7789V 240x320 TFT LCD over SPI.
//
// The driver keeps a full RGB565 frame buffer in memory. Draw calls only
// mutate the buffer; Refresh programs the controller's write window and
// streams the buffer out in chunks, converting to the big-endian byte order
// required on the wire.
//
// On the Alientek DNESP32S3 board the panel's reset and backlight lines are
// not wired to the MCU but to an XL9555 I²C I/O expander; the driver
// accepts an optional expander for those two lines.
//
// # Datasheet
//
// https://www.rhydolabz.com/documents/33/ST7789.pdf
package st7789v
