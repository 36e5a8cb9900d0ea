// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Ledgerstore Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++          = concatenation of byte data
// 3. resource id = 32 byte SHA3-256 derived identifier
// 4. owner       = 32 byte address
// 5. count       = successive index value as big endian uint64 (8 bytes)
//
// Resources:
//
//   R ++ resource id           - live resources
//                                data: packed resource record (tag ++ owner ++ amount ++ payload)
//
// Ownership index:
//
//   N ++ owner                 - next count value to use for appending to owned items
//                                data: count
//   L ++ owner ++ count        - list of owned items
//                                data: resource id
//   D ++ owner ++ resource id  - position in list of owned items, for delete after transfer
//                                data: count
//
// Testing:
//
//   Z ++ key                   - testing data
package storage
