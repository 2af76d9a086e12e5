// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package xl9555

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin"
)

// expanderPin exposes one expander pin as a gpio.PinIO.
type expanderPin struct {
	dev    *Dev
	number int
}

func (p *expanderPin) String() string {
	return p.Name()
}

// Name returns the pin name in the P<port><bit> form used by the datasheet,
// prefixed with the device name.
func (p *expanderPin) Name() string {
	return fmt.Sprintf("%s_P%d%d", p.dev.name, p.number/8, p.number%8)
}

func (p *expanderPin) Number() int {
	return p.number
}

func (p *expanderPin) Function() string {
	return string(p.Func())
}

func (p *expanderPin) Func() pin.Func {
	p.dev.mu.Lock()
	defer p.dev.mu.Unlock()
	isInput, _ := p.dev.config[p.number/8].getBit(uint8(p.number%8), true)
	if isInput {
		return gpio.IN
	}
	return gpio.OUT
}

func (p *expanderPin) SupportedFuncs() []pin.Func {
	return supportedFuncs[:]
}

func (p *expanderPin) SetFunc(f pin.Func) error {
	var input bool
	switch f {
	case gpio.IN:
		input = true
	case gpio.OUT:
		input = false
	default:
		return errors.New("xl9555: function not supported: " + string(f))
	}
	p.dev.mu.Lock()
	defer p.dev.mu.Unlock()
	return p.dev.config[p.number/8].getAndSetBit(uint8(p.number%8), input, true)
}

func (p *expanderPin) In(pull gpio.Pull, edge gpio.Edge) error {
	switch pull {
	case gpio.Float, gpio.PullNoChange:
	default:
		return errors.New("xl9555: pull resistors are not supported")
	}
	// The interrupt line is shared and does not identify the pin, so edge
	// detection is not offered.
	if edge != gpio.NoEdge {
		return errors.New("xl9555: edge detection is not supported")
	}
	return p.SetFunc(gpio.IN)
}

func (p *expanderPin) Read() gpio.Level {
	l, _ := p.dev.ReadPin(p.number)
	return l
}

func (p *expanderPin) WaitForEdge(timeout time.Duration) bool {
	return false
}

func (p *expanderPin) Pull() gpio.Pull {
	return gpio.Float
}

func (p *expanderPin) DefaultPull() gpio.Pull {
	return gpio.Float
}

func (p *expanderPin) Out(l gpio.Level) error {
	if err := p.SetFunc(gpio.OUT); err != nil {
		return err
	}
	return p.dev.WritePin(p.number, l)
}

func (p *expanderPin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return errors.New("xl9555: PWM is not supported")
}

// Halt returns the pin to high-impedance input.
func (p *expanderPin) Halt() error {
	return p.In(gpio.Float, gpio.NoEdge)
}

var supportedFuncs = [...]pin.Func{gpio.IN, gpio.OUT}

var _ gpio.PinIO = &expanderPin{}
