// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package esp32s3 is a container for drivers for the peripherals found on
// the Alientek DNESP32S3 development board: the ST7789V 240x320 LCD and the
// XL9555 I²C I/O expander that controls the LCD reset and backlight lines
// and scans the on-board push buttons.
package esp32s3
