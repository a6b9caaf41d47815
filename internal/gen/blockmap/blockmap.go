// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package blockmap maps code offsets to blocks in offset order.
package blockmap

import (
	"gate.computer/abcjit/backend"
	"github.com/google/btree"
)

type item struct {
	offset int
	id     backend.BlockID
}

func less(a, b item) bool {
	return a.offset < b.offset
}

type Map struct {
	tree *btree.BTreeG[item]
}

func New() *Map {
	return &Map{btree.NewG(8, less)}
}

func (m *Map) Len() int {
	return m.tree.Len()
}

func (m *Map) Get(offset int) (id backend.BlockID, found bool) {
	x, found := m.tree.Get(item{offset: offset})
	return x.id, found
}

// GetOrCreate returns the block at offset.  The create function is called
// if there is none.
func (m *Map) GetOrCreate(offset int, create func() backend.BlockID) (id backend.BlockID, created bool) {
	if x, found := m.tree.Get(item{offset: offset}); found {
		return x.id, false
	}

	id = create()
	m.tree.ReplaceOrInsert(item{offset, id})
	return id, true
}

// Within finds the lowest block offset in the half-open range [from, to).
func (m *Map) Within(from, to int) (offset int, found bool) {
	m.tree.AscendRange(item{offset: from}, item{offset: to}, func(x item) bool {
		offset = x.offset
		found = true
		return false
	})
	return
}

// Ascend visits blocks in offset order until f returns false.
func (m *Map) Ascend(f func(offset int, id backend.BlockID) bool) {
	m.tree.Ascend(func(x item) bool {
		return f(x.offset, x.id)
	})
}
