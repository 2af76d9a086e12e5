// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package xl9555

import "periph.io/x/conn/v3/i2c"

// registerCache caches the last value seen in one device register. The
// output and config registers are write-mostly and served from the cache;
// the input registers are always read from the device.
type registerCache struct {
	i2c     *i2c.Dev
	address uint8
	got     bool
	cache   uint8
}

func newRegister(i2c *i2c.Dev, address uint8) registerCache {
	return registerCache{
		i2c:     i2c,
		address: address,
		got:     false,
	}
}

func (r *registerCache) readValue(cached bool) (uint8, error) {
	if cached && r.got {
		return r.cache, nil
	}
	rx := make([]byte, 1)
	err := r.i2c.Tx([]byte{r.address}, rx)
	if err == nil {
		r.got = true
		r.cache = rx[0]
	}
	return rx[0], err
}

func (r *registerCache) writeValue(value uint8, cached bool) error {
	if cached && r.got && value == r.cache {
		return nil
	}
	if err := r.i2c.Tx([]byte{r.address, value}, nil); err != nil {
		return err
	}
	r.got = true
	r.cache = value
	return nil
}

func (r *registerCache) getAndSetBit(bit uint8, value bool, cached bool) error {
	v, err := r.readValue(cached)
	if err != nil {
		return err
	}
	if value {
		v |= 1 << bit
	} else {
		v &= ^(1 << bit)
	}
	return r.writeValue(v, cached)
}

func (r *registerCache) getBit(bit uint8, cached bool) (bool, error) {
	v, err := r.readValue(cached)
	return (v & (1 << bit)) != 0, err
}
