// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package table

import (
	"sort"
	"sync"

	"github.com/ledgerstore/ledgerstored/resourceid"
)

// number of lock stripes, must be a power of two
const stripeCount = 64

// per id serialization
//
// concurrent mutations of one id are mutually exclusive, disjoint ids
// map to different stripes and proceed in parallel
type stripedLock struct {
	stripes [stripeCount]sync.Mutex
}

// the stripe an id hashes to
func stripeOf(id resourceid.ResourceId) int {
	return int(id[0]) & (stripeCount - 1)
}

// Lock - take the stripes covering a set of ids, returns the release
//
// stripes are taken in ascending order so overlapping calls cannot
// deadlock, duplicate stripes are only taken once
func (l *stripedLock) Lock(ids ...resourceid.ResourceId) func() {

	stripes := make([]int, 0, len(ids))
loop:
	for _, id := range ids {
		s := stripeOf(id)
		for _, existing := range stripes {
			if s == existing {
				continue loop
			}
		}
		stripes = append(stripes, s)
	}
	sort.Ints(stripes)

	for _, s := range stripes {
		l.stripes[s].Lock()
	}

	return func() {
		for i := len(stripes) - 1; i >= 0; i -= 1 {
			l.stripes[stripes[i]].Unlock()
		}
	}
}
