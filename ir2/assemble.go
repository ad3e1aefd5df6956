// Copyright 2025, fdre authors

package ir2

import (
	"iter"
	"log"

	"github.com/samber/lo"

	"github.com/freedreno-zz/freedreno-sub001/asm"
	"github.com/freedreno-zz/freedreno-sub001/internal"
)

// Assembler encodes a2xx shaders.
type Assembler struct {
	Verbose bool // If set, log the resolved CF records and each instruction.
}

// instructions walks every instruction of cfs in program order.
func instructions(cfs []*CF) iter.Seq2[int, *Instruction] {
	seqs := lo.Map(cfs, func(cf *CF, _ int) iter.Seq[*Instruction] {
		return cf.Instrs()
	})
	return internal.IterSeqEnumerate(internal.IterSeqConcat(seqs...))
}

// Dwords returns the encoded size of sh: one three word slot per CF pair,
// and one per instruction.
func Dwords(sh *Shader) int {
	cfs := paddedCFs(sh.CFs)
	count := len(cfs) / 2
	for _, cf := range cfs {
		if exec := cf.Exec(); exec != nil {
			count += len(exec.Instrs)
		}
	}
	return 3 * count
}

// Assemble seals sh and encodes it into dwords, returning the number of words
// written. On failure dwords is left untouched.
func (as *Assembler) Assemble(sh *Shader, dwords []uint32) (count int, info *Info, err error) {
	sh.Seal()

	cfs := paddedCFs(sh.CFs)

	res, end, warnings, err := resolve(cfs)
	if err != nil {
		return
	}

	size := 3 * end
	if len(dwords) < size {
		err = &asm.ErrLimit{What: f("output"), Limit: len(dwords)}
		return
	}

	work := newInfo()
	work.Warnings = warnings

	if as.Verbose {
		for _, warning := range warnings {
			log.Printf("ir2: warning: %v", warning)
		}
	}

	scratch := make([]uint32, size)

	packCFs(cfs, res, scratch)

	if as.Verbose {
		for n, cf := range cfs {
			log.Printf("ir2: cf %d: %v addr=%d cnt=%d seq=%#x", n, cf.Type, res[n].Addr, res[n].Cnt, res[n].Seq)
		}
	}

	base := 3 * (len(cfs) / 2)
	for n, instr := range instructions(cfs) {
		code := scratch[base+3*n : base+3*n+3]

		switch instr.Type {
		case FETCH:
			err = emitFetch(instr, n, code)
		case ALU:
			err = emitAlu(instr, code)
		default:
			err = asm.Malformed("unknown instruction type %d", int(instr.Type))
		}
		if err != nil {
			err = &asm.ErrInstruction{LineNo: instr.LineNo, Index: n, Err: err}
			return
		}

		work.useInstruction(instr)

		if as.Verbose {
			log.Printf("ir2: %04d: %08x %08x %08x %v", n, code[0], code[1], code[2], instr.Type)
		}
	}

	work.SizeDwords = size
	copy(dwords, scratch)

	count = size
	info = work

	return
}

// Program assembles sh into a program, keeping the source line of each CF
// pair and instruction.
func (as *Assembler) Program(sh *Shader) (prog *asm.Program, info *Info, err error) {
	words := make([]uint32, Dwords(sh))

	var count int
	count, info, err = as.Assemble(sh, words)
	if err != nil {
		return
	}

	prog = &asm.Program{Words: words[:count]}

	cfs := paddedCFs(sh.CFs)
	for n := range len(cfs) / 2 {
		prog.Opcodes = append(prog.Opcodes, asm.Opcode{LineNo: cfs[2*n].LineNo, Ip: 3 * n, Count: 3})
	}

	base := 3 * (len(cfs) / 2)
	for n, instr := range instructions(cfs) {
		prog.Opcodes = append(prog.Opcodes, asm.Opcode{LineNo: instr.LineNo, Ip: base + 3*n, Count: 3})
	}

	return
}
