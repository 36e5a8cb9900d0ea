// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package counter - a simple atomic counter
//
// used for connection limiting and event sequence numbering
package counter

import (
	"sync/atomic"
)

// Counter - a 64 bit unsigned integer that can be atomically
// incremented and decremented
type Counter uint64

// Increment - add 1 to a counter, returns the new value
func (c *Counter) Increment() uint64 {
	return atomic.AddUint64((*uint64)(c), 1)
}

// Decrement - subtract 1 from a counter, returns the new value
func (c *Counter) Decrement() uint64 {
	return atomic.AddUint64((*uint64)(c), ^uint64(0))
}

// Current - returns the current value
func (c *Counter) Current() uint64 {
	return atomic.LoadUint64((*uint64)(c))
}

// IsZero - check for zero value
func (c *Counter) IsZero() bool {
	return 0 == atomic.LoadUint64((*uint64)(c))
}
