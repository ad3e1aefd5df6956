package ir2

import (
	"strings"

	"github.com/freedreno-zz/freedreno-sub001/asm"
)

// component returns the lane of a swizzle character.
func component(ch byte) (comp int, ok bool) {
	comp = strings.IndexByte("xyzw", ch)
	ok = comp >= 0
	return
}

// fetchSrcSwizzle packs n source components, two bits each.
func fetchSrcSwizzle(reg *Register, n int) (swiz uint32, err error) {
	sw := reg.Swizzle
	if sw == "" {
		sw = "xyzw"
	}
	if len(sw) < n {
		err = asm.Malformed("fetch src swizzle %q needs %d components", reg.Swizzle, n)
		return
	}

	for i := n - 1; i >= 0; i-- {
		comp, ok := component(sw[i])
		if !ok {
			err = asm.Malformed("fetch src swizzle %q", reg.Swizzle)
			return
		}
		swiz = swiz<<2 | uint32(comp)
	}

	return
}

// fetchDstSwizzle packs the four destination selects, three bits each:
// a lane, 4 for zero, 5 for one or 7 to leave the lane unwritten.
func fetchDstSwizzle(reg *Register) (swiz uint32, err error) {
	if reg.Swizzle == "" {
		return 0x688, nil
	}
	if len(reg.Swizzle) != 4 {
		err = asm.Malformed("fetch dst swizzle %q", reg.Swizzle)
		return
	}

	for i := 3; i >= 0; i-- {
		var sel uint32
		switch ch := reg.Swizzle[i]; ch {
		case '0':
			sel = 4
		case '1':
			sel = 5
		case '_':
			sel = 7
		default:
			comp, ok := component(ch)
			if !ok {
				err = asm.Malformed("fetch dst swizzle %q", reg.Swizzle)
				return
			}
			sel = uint32(comp)
		}
		swiz = swiz<<3 | sel
	}

	return
}

// aluDstMask converts a destination swizzle into a write mask.
func aluDstMask(reg *Register) (mask uint32, err error) {
	if reg.Swizzle == "" {
		return 0xf, nil
	}
	if len(reg.Swizzle) != 4 {
		err = asm.Malformed("alu dst swizzle %q", reg.Swizzle)
		return
	}

	for i := 3; i >= 0; i-- {
		mask <<= 1
		switch reg.Swizzle[i] {
		case "xyzw"[i]:
			mask |= 1
		case '_':
		default:
			err = asm.Malformed("alu dst swizzle %q", reg.Swizzle)
			return
		}
	}

	return
}

// aluSrcSwizzle packs each lane's source component relative to the lane.
func aluSrcSwizzle(reg *Register) (swiz uint32, err error) {
	if reg.Swizzle == "" {
		return 0, nil
	}
	if len(reg.Swizzle) != 4 {
		err = asm.Malformed("alu src swizzle %q", reg.Swizzle)
		return
	}

	for i := 3; i >= 0; i-- {
		comp, ok := component(reg.Swizzle[i])
		if !ok {
			err = asm.Malformed("alu src swizzle %q", reg.Swizzle)
			return
		}
		swiz = swiz<<2 | uint32(comp-i)&0x3
	}

	return
}

// emitFetch encodes a vertex or texture fetch. idx is the program order
// index of the instruction; every fetch after the first sets the reserved
// marker bits.
func emitFetch(instr *Instruction, idx int, dwords []uint32) (err error) {
	fetch := instr.Fetch()
	if fetch == nil {
		err = asm.Malformed("fetch without fetch fields")
		return
	}

	if len(instr.Regs) != 2 {
		err = asm.Malformed("fetch takes 2 operands, got %d", len(instr.Regs))
		return
	}

	dst, src := instr.Regs[0], instr.Regs[1]
	if dst.Flags != 0 || src.Flags != 0 {
		err = asm.Malformed("fetch operands take no flags")
		return
	}

	dstSwiz, err := fetchDstSwizzle(dst)
	if err != nil {
		return
	}

	predSelect := instr.Pred != PRED_NONE
	predCond := instr.Pred == PRED_EQ

	var fs asm.Fields

	switch fetch.Opc {
	case VTX_FETCH:
		var srcSwiz uint32
		if srcSwiz, err = fetchSrcSwizzle(src, 1); err != nil {
			return
		}

		reserved0, reserved3 := 0x3, false
		if idx > 0 {
			reserved0, reserved3 = 0x2, true
		}

		dwords[0] = fs.Unsigned("opc", int(fetch.Opc), 5, 0) |
			fs.Unsigned("src", src.Num, 6, 5) |
			fs.Unsigned("dst", dst.Num, 6, 12) |
			1<<19 |
			fs.Unsigned("const_idx", fetch.ConstIdx, 5, 20) |
			fs.Unsigned("const_idx_sel", fetch.ConstIdxSel, 2, 25) |
			uint32(reserved0)<<27 |
			srcSwiz<<30
		dwords[1] = dstSwiz |
			fs.Bit(fetch.IsSigned, 12) |
			fs.Bit(!fetch.IsNormalized, 13) |
			fs.Unsigned("format", fetch.Fmt, 6, 16) |
			fs.Bit(reserved3, 30) |
			fs.Bit(predSelect, 31)
		dwords[2] = fs.Unsigned("stride", fetch.Stride, 8, 0) |
			fs.Unsigned("offset", fetch.Offset, 8, 8) |
			fs.Bit(predCond, 31)
	case TEX_FETCH:
		var srcSwiz uint32
		if srcSwiz, err = fetchSrcSwizzle(src, 3); err != nil {
			return
		}

		useRegLod := 0
		if !fetch.IsCube {
			useRegLod = 1
		}

		dwords[0] = fs.Unsigned("opc", int(fetch.Opc), 5, 0) |
			fs.Unsigned("src", src.Num, 6, 5) |
			fs.Unsigned("dst", dst.Num, 6, 12) |
			fs.Unsigned("const_idx", fetch.ConstIdx, 5, 20) |
			srcSwiz<<26
		dwords[1] = dstSwiz |
			0x3<<12 | // mag filter from fetch constant
			0x3<<14 | // min
			0x3<<16 | // mip
			0x7<<18 | // aniso
			0x7<<21 | // arbitrary
			0x3<<24 | // volume mag
			0x3<<26 | // volume min
			1<<28 | // use computed lod
			uint32(useRegLod)<<29 |
			fs.Bit(predSelect, 31)
		dwords[2] = 1<<1 | // sample at center
			fs.Bit(predCond, 31)
	default:
		err = asm.Malformed("unknown fetch opcode %d", int(fetch.Opc))
		return
	}

	err = fs.Err()

	return
}

// aluSource packs the register byte of a source, with its select and
// negate bits. An absent source selects nothing.
func aluSource(fs *asm.Fields, reg *Register, what string) (regBits uint32, sel, neg bool) {
	if reg == nil {
		return 0, true, false
	}
	regBits = fs.Unsigned(what, reg.Num, 6, 0) |
		fs.Bit(reg.is(REG_ABS), 7)
	sel = !reg.is(REG_CONST)
	neg = reg.is(REG_NEGATE)
	return
}

// aluOperands splits the operand list of an ALU instruction:
// vector dst, src3 for three source vector ops, src1, src2, then the scalar
// dst and its source which occupies the src3 slot.
func aluOperands(instr *Instruction, alu *Alu) (dst, sdst *Register, srcs [3]*Register, err error) {
	hasVector := alu.VectorOpc != VECTOR_NONE
	hasScalar := alu.ScalarOpc != SCALAR_NONE
	three := hasVector && threeSource[alu.VectorOpc]

	if !hasVector && !hasScalar {
		err = asm.Malformed("alu without vector or scalar operation")
		return
	}
	if three && hasScalar {
		err = asm.Malformed("%v uses src3, no scalar operation allowed", alu.VectorOpc)
		return
	}

	need := 0
	if hasVector {
		need += 3
		if three {
			need++
		}
	}
	if hasScalar {
		need += 2
	}
	if len(instr.Regs) != need {
		err = asm.Malformed("alu takes %d operands, got %d", need, len(instr.Regs))
		return
	}

	regs := instr.Regs
	if hasVector {
		dst, regs = regs[0], regs[1:]
		if three {
			srcs[2], regs = regs[0], regs[1:]
		}
		srcs[0], srcs[1], regs = regs[0], regs[1], regs[2:]
	}
	if hasScalar {
		sdst, srcs[2] = regs[0], regs[1]
		if !hasVector {
			srcs[0], srcs[1] = srcs[2], srcs[2]
		}
	}

	return
}

// emitAlu encodes a paired vector and scalar operation. An absent vector
// operation is MAXv with nothing written; an absent scalar operation is MAXs.
func emitAlu(instr *Instruction, dwords []uint32) (err error) {
	alu := instr.Alu()
	if alu == nil {
		err = asm.Malformed("alu without alu fields")
		return
	}

	dst, sdst, srcs, err := aluOperands(instr, alu)
	if err != nil {
		return
	}

	vectorOpc, scalarOpc := alu.VectorOpc, alu.ScalarOpc
	var vectorDest, vectorMask, scalarDest, scalarMask uint32
	var export bool

	var fs asm.Fields

	if vectorOpc == VECTOR_NONE {
		vectorOpc = VEC_MAX
		vectorDest = fs.Unsigned("dst", sdst.Num, 6, 0)
	} else {
		if vectorMask, err = aluDstMask(dst); err != nil {
			return
		}
		vectorDest = fs.Unsigned("dst", dst.Num, 6, 0)
		export = dst.is(REG_EXPORT)
	}

	if scalarOpc == SCALAR_NONE {
		scalarOpc = SCA_MAX
	} else {
		if scalarMask, err = aluDstMask(sdst); err != nil {
			return
		}
		scalarDest = fs.Unsigned("sdst", sdst.Num, 6, 0)
		export = export || sdst.is(REG_EXPORT)
	}

	var swiz [3]uint32
	for n, reg := range srcs {
		if reg == nil {
			continue
		}
		if swiz[n], err = aluSrcSwizzle(reg); err != nil {
			return
		}
	}

	src1Reg, src1Sel, src1Neg := aluSource(&fs, srcs[0], "src1")
	src2Reg, src2Sel, src2Neg := aluSource(&fs, srcs[1], "src2")
	src3Reg, src3Sel, src3Neg := aluSource(&fs, srcs[2], "src3")

	dwords[0] = vectorDest |
		scalarDest<<8 |
		fs.Bit(export, 15) |
		vectorMask<<16 |
		scalarMask<<20 |
		fs.Bit(alu.VectorClamp, 24) |
		fs.Bit(alu.ScalarClamp, 25) |
		fs.Unsigned("scalar_opc", int(scalarOpc), 6, 26)
	dwords[1] = swiz[2] |
		swiz[1]<<8 |
		swiz[0]<<16 |
		fs.Bit(src3Neg, 24) |
		fs.Bit(src2Neg, 25) |
		fs.Bit(src1Neg, 26) |
		fs.Unsigned("pred", int(instr.Pred), 2, 27)
	dwords[2] = src3Reg |
		src2Reg<<8 |
		src1Reg<<16 |
		fs.Unsigned("vector_opc", int(vectorOpc), 5, 24) |
		fs.Bit(src3Sel, 29) |
		fs.Bit(src2Sel, 30) |
		fs.Bit(src1Sel, 31)

	err = fs.Err()

	return
}
