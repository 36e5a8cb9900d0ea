// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheSetGet(t *testing.T) {
	c := newCache()

	c.Set(dbPut, "key", []byte("value"))

	value, found := c.Get("key")
	assert.True(t, found, "staged put should be readable")
	assert.Equal(t, []byte("value"), value, "wrong cached value")
}

func TestCacheDeleteHidesKey(t *testing.T) {
	c := newCache()

	c.Set(dbPut, "key", []byte("value"))
	c.Set(dbDelete, "key", []byte{})

	_, found := c.Get("key")
	assert.False(t, found, "staged delete should hide the key")
}

func TestCacheMiss(t *testing.T) {
	c := newCache()

	_, found := c.Get("absent")
	assert.False(t, found, "absent key reported as found")
}

func TestCacheClear(t *testing.T) {
	c := newCache()

	c.Set(dbPut, "key", []byte("value"))
	c.Clear()

	_, found := c.Get("key")
	assert.False(t, found, "cleared key reported as found")
}
