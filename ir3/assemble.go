// Copyright 2025, fdre authors

package ir3

import (
	"log"

	"github.com/freedreno-zz/freedreno-sub001/asm"
)

// Assembler encodes a3xx shaders.
type Assembler struct {
	Verbose bool // If set, log each encoded instruction.
}

var nop = &Instruction{Category: CAT0, Opc: OPC_NOP, Payload: Cat0{}}

// padded returns the instruction list extended with NOPs to a multiple of four.
func padded(instrs []*Instruction) (list []*Instruction) {
	list = instrs
	for len(list)%4 != 0 {
		list = append(list[:len(list):len(list)], nop)
	}
	return
}

// Dwords returns the encoded size of sh, including padding.
func Dwords(sh *Shader) int {
	return 2 * len(padded(sh.Instrs))
}

// Assemble seals sh and encodes it into dwords, returning the number of words
// written. On failure dwords is left untouched.
func (as *Assembler) Assemble(sh *Shader, dwords []uint32) (count int, info *Info, err error) {
	sh.Seal()

	instrs := padded(sh.Instrs)
	size := 2 * len(instrs)
	if len(dwords) < size {
		err = &asm.ErrLimit{What: f("output"), Limit: len(dwords)}
		return
	}

	work := newInfo()
	for a := range sh.Attributes.All() {
		work.useAttribute(a)
	}

	scratch := make([]uint32, size)
	for n, instr := range instrs {
		code := scratch[2*n : 2*n+2]
		err = emit(instr, code, work)
		if err != nil {
			err = &asm.ErrInstruction{LineNo: instr.LineNo, Index: n, Err: err}
			return
		}
		work.InstrsCount += 1 + instr.Repeat

		if as.Verbose {
			log.Printf("ir3: %04d: %08x %08x %v", n, code[0], code[1], Instr(code))
		}
	}

	work.SizeDwords = size
	copy(dwords, scratch)

	count = size
	info = work

	return
}

// Program assembles sh into a program, keeping the source line of each
// instruction.
func (as *Assembler) Program(sh *Shader) (prog *asm.Program, info *Info, err error) {
	words := make([]uint32, Dwords(sh))

	var count int
	count, info, err = as.Assemble(sh, words)
	if err != nil {
		return
	}

	prog = &asm.Program{Words: words[:count]}
	for n := range count / 2 {
		var lineNo int
		if n < len(sh.Instrs) {
			lineNo = sh.Instrs[n].LineNo
		}
		prog.Opcodes = append(prog.Opcodes, asm.Opcode{LineNo: lineNo, Ip: 2 * n, Count: 2})
	}

	return
}
