// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package backend

import (
	"gate.computer/abcjit/trap"
)

// Builder appends instructions to the current block of a function.
type Builder struct {
	fn  *Function
	cur BlockID
}

func NewBuilder(fn *Function) *Builder {
	return &Builder{fn: fn, cur: -1}
}

func (b *Builder) Function() *Function {
	return b.fn
}

func (b *Builder) NewBlock(name string) BlockID {
	b.fn.Blocks = append(b.fn.Blocks, &Block{Name: name})
	return BlockID(len(b.fn.Blocks) - 1)
}

func (b *Builder) SetInsertPoint(id BlockID) {
	b.cur = id
}

func (b *Builder) InsertPoint() BlockID {
	return b.cur
}

// Terminated reports whether the current block has a terminator.
func (b *Builder) Terminated() bool {
	return b.block().terms > 0
}

func (b *Builder) block() *Block {
	return b.fn.Blocks[b.cur]
}

func (b *Builder) append(t Type, in Instr) Value {
	if t != Void {
		in.Result = b.fn.newValue(t)
	}

	blk := b.block()
	if blk.terms > 0 {
		blk.afterTerms++
	}
	blk.Instrs = append(blk.Instrs, in)
	return in.Result
}

func (b *Builder) ConstInt(x int64) Value {
	return b.append(Int, Instr{Op: OpConstInt, Imm: x})
}

func (b *Builder) LoadField(ctx Value, f Field) Value {
	return b.append(f.Type(), Instr{Op: OpLoadField, Args: []Value{ctx}, Field: f})
}

func (b *Builder) StoreField(ctx Value, f Field, x Value) {
	b.append(Void, Instr{Op: OpStoreField, Args: []Value{ctx, x}, Field: f})
}

func (b *Builder) LoadElem(slice, index Value) Value {
	return b.append(Object, Instr{Op: OpLoadElem, Args: []Value{slice, index}})
}

func (b *Builder) StoreElem(slice, index, x Value) {
	b.append(Void, Instr{Op: OpStoreElem, Args: []Value{slice, index, x}})
}

// AddInt wraps around at 32 bits.
func (b *Builder) AddInt(x, y Value) Value {
	return b.append(Int, Instr{Op: OpAddInt, Args: []Value{x, y}})
}

// Call returns zero if the helper has no result.
func (b *Builder) Call(h *Helper, args ...Value) Value {
	return b.append(h.Sig.Result, Instr{Op: OpCall, Args: args, Helper: h})
}

func (b *Builder) terminate(t Term) {
	blk := b.block()
	if blk.terms == 0 {
		blk.Term = t
	}
	blk.terms++
}

func (b *Builder) Br(target BlockID) {
	b.terminate(Term{Kind: TermBr, Targets: [2]BlockID{target, target}})
}

func (b *Builder) CondBr(cond Value, taken, notTaken BlockID) {
	b.terminate(Term{Kind: TermCondBr, Value: cond, Targets: [2]BlockID{taken, notTaken}})
}

func (b *Builder) Ret(x Value) {
	b.terminate(Term{Kind: TermRet, Value: x})
}

func (b *Builder) RetVoid() {
	b.terminate(Term{Kind: TermRetVoid})
}

func (b *Builder) Unreachable() {
	b.terminate(Term{Kind: TermUnreachable, Trap: trap.Unreachable})
}

// Trap terminates the block with a trap which reports an opcode and its
// offset.
func (b *Builder) Trap(id trap.ID, opcode byte, offset int) {
	b.terminate(Term{Kind: TermTrap, Trap: id, Opcode: opcode, Offset: offset})
}
