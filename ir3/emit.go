package ir3

import (
	"math/bits"

	"github.com/freedreno-zz/freedreno-sub001/asm"
)

// emitFunc encodes one instruction into two words.
type emitFunc func(instr *Instruction, dwords []uint32, info *Info) error

var emitTable = [...]emitFunc{
	CAT0: emitCat0,
	CAT1: emitCat1,
	CAT2: emitCat2,
	CAT3: emitCat3,
	CAT4: emitCat4,
	CAT5: emitCat5,
	CAT6: emitCat6,
}

// emit encodes instr into dwords[0:2].
func emit(instr *Instruction, dwords []uint32, info *Info) (err error) {
	if instr.Category < 0 || int(instr.Category) >= len(emitTable) {
		err = asm.Malformed("unknown category %d", int(instr.Category))
		return
	}

	if instr.Repeat < 0 || instr.Repeat > MAX_REPEAT {
		err = &asm.ErrField{Field: "repeat", Value: int64(instr.Repeat), Width: 3}
		return
	}

	err = emitTable[instr.Category](instr, dwords, info)

	return
}

// payload returns the category payload, or its zero value when unset.
func payload[T Payload](instr *Instruction) (p T, err error) {
	if instr.Payload == nil {
		return
	}

	p, ok := instr.Payload.(T)
	if !ok {
		err = asm.Malformed("%v payload is %T", instr.Category, instr.Payload)
	}

	return
}

// operands checks the operand count is within [lo, hi].
func operands(instr *Instruction, lo, hi int) (err error) {
	n := len(instr.Regs)
	if n < lo || n > hi {
		if lo == hi {
			err = asm.Malformed("%v takes %d operands, got %d", instr.Opcode(), lo, n)
		} else {
			err = asm.Malformed("%v takes %d to %d operands, got %d", instr.Opcode(), lo, hi, n)
		}
	}
	return
}

// checkFlags rejects operand flags outside valid.
func checkFlags(reg *Register, valid RegFlag, what string) (err error) {
	if extra := reg.Flags &^ valid; extra != 0 {
		err = asm.Malformed("%v: unsupported register flags %#x", what, uint32(extra))
	}
	return
}

// index returns the register index of a plain operand.
func index(reg *Register, what string) (idx int, err error) {
	v, ok := reg.Value.(Index)
	if !ok {
		err = asm.Malformed("%v: must be a plain register", what)
		return
	}
	idx = int(v)
	return
}

// tail is the common dword1 tail: jump target, sync and category.
func tail(instr *Instruction) uint32 {
	var fs asm.Fields
	return fs.Bit(instr.has(INSTR_JP), 27) |
		fs.Bit(instr.has(INSTR_SY), 28) |
		uint32(instr.Category)<<29
}

// src16 encodes the shared 16-bit source layout in its low 13 bits.
func src16(fs *asm.Fields, reg *Register, what string) uint32 {
	switch v := reg.Value.(type) {
	case Relative:
		return fs.Signed(what, int(v), 10, 0) |
			fs.Bit(reg.is(REG_CONST), 10) |
			1<<11
	case Immediate:
		return fs.Signed(what, int(v), 11, 0)
	case Index:
		if reg.is(REG_CONST) {
			return fs.Unsigned(what, int(v), 12, 0) | 1<<12
		}
		return fs.Unsigned(what, int(v), 11, 0)
	}
	return 0
}

func emitCat0(instr *Instruction, dwords []uint32, info *Info) (err error) {
	if err = operands(instr, 0, 0); err != nil {
		return
	}

	cat0, err := payload[Cat0](instr)
	if err != nil {
		return
	}

	var fs asm.Fields
	dwords[0] = fs.Signed("immed", cat0.Immed, 16, 0)
	dwords[1] = fs.Unsigned("repeat", instr.Repeat, 3, 8) |
		fs.Bit(instr.has(INSTR_SS), 12) |
		fs.Bit(cat0.Inv, 20) |
		fs.Unsigned("comp", cat0.Comp, 2, 21) |
		fs.Unsigned("opc", int(instr.Opc), 4, 23) |
		tail(instr)

	err = fs.Err()

	return
}

func emitCat1(instr *Instruction, dwords []uint32, info *Info) (err error) {
	if err = operands(instr, 2, 2); err != nil {
		return
	}

	cat1, err := payload[Cat1](instr)
	if err != nil {
		return
	}

	dst, src := instr.Regs[0], instr.Regs[1]

	if err = checkFlags(dst, REG_RELATIV|REG_EVEN|REG_R|REG_POS_INF|REG_HALF, "dst"); err != nil {
		return
	}
	if err = checkFlags(src, REG_IMMED|REG_RELATIV|REG_R|REG_CONST|REG_HALF, "src"); err != nil {
		return
	}

	if dst.Half() != cat1.DstType.Half() {
		err = asm.Malformed("dst precision does not match %v", cat1.DstType)
		return
	}
	if !src.is(REG_IMMED|REG_RELATIV) && src.Half() != cat1.SrcType.Half() {
		err = asm.Malformed("src precision does not match %v", cat1.SrcType)
		return
	}

	var fs asm.Fields
	var srcC, srcIm bool

	switch v := src.Value.(type) {
	case Immediate:
		dwords[0] = uint32(int32(v))
		srcIm = true
	case Relative:
		dwords[0] = fs.Signed("src", int(v), 10, 0) |
			fs.Bit(src.is(REG_CONST), 10) |
			1<<11
	case Index:
		dwords[0] = fs.Unsigned("src", int(v), 11, 0)
		srcC = src.is(REG_CONST)
	}

	var dstField uint32
	switch v := dst.Value.(type) {
	case Relative:
		dstField = fs.Signed("dst", int(v), 8, 0)
	case Index:
		dstField = fs.Unsigned("dst", int(v), 8, 0)
	default:
		err = asm.Malformed("dst: must be a register")
		return
	}

	dwords[1] = dstField |
		fs.Unsigned("repeat", instr.Repeat, 3, 8) |
		fs.Bit(src.is(REG_R), 11) |
		fs.Bit(instr.has(INSTR_SS), 12) |
		fs.Bit(instr.has(INSTR_UL), 13) |
		fs.Unsigned("dst_type", int(cat1.DstType), 3, 14) |
		fs.Bit(dst.is(REG_RELATIV), 17) |
		fs.Unsigned("src_type", int(cat1.SrcType), 3, 18) |
		fs.Bit(srcC, 21) |
		fs.Bit(srcIm, 22) |
		fs.Bit(dst.is(REG_EVEN), 23) |
		fs.Bit(dst.is(REG_POS_INF), 24) |
		tail(instr)

	if err = fs.Err(); err != nil {
		return
	}

	info.use(dst, instr.Repeat)
	info.use(src, instr.Repeat)

	return
}

const cat2SrcFlags = REG_RELATIV | REG_CONST | REG_NEGATE | REG_ABS | REG_R | REG_HALF | REG_IMMED

// alu16 encodes a source with its immediate, negate and absolute bits.
func alu16(fs *asm.Fields, reg *Register, what string) uint32 {
	return src16(fs, reg, what) |
		fs.Bit(reg.is(REG_IMMED), 13) |
		fs.Bit(reg.is(REG_NEGATE), 14) |
		fs.Bit(reg.is(REG_ABS), 15)
}

func emitCat2(instr *Instruction, dwords []uint32, info *Info) (err error) {
	if err = operands(instr, 2, 3); err != nil {
		return
	}

	cat2, err := payload[Cat2](instr)
	if err != nil {
		return
	}

	dst, src1 := instr.Regs[0], instr.Regs[1]
	var src2 *Register
	if len(instr.Regs) > 2 {
		src2 = instr.Regs[2]
	}

	if err = checkFlags(dst, REG_R|REG_EI|REG_HALF, "dst"); err != nil {
		return
	}
	if err = checkFlags(src1, cat2SrcFlags, "src1"); err != nil {
		return
	}

	dstIdx, err := index(dst, "dst")
	if err != nil {
		return
	}

	var fs asm.Fields
	dwords[0] = alu16(&fs, src1, "src1")

	if src2 != nil {
		if err = checkFlags(src2, cat2SrcFlags, "src2"); err != nil {
			return
		}
		if !src1.is(REG_IMMED) && !src2.is(REG_IMMED) && src1.Half() != src2.Half() {
			err = asm.Malformed("src1 and src2 precision differ")
			return
		}
		dwords[0] |= alu16(&fs, src2, "src2") << 16
	}

	dwords[1] = fs.Unsigned("dst", dstIdx, 8, 0) |
		fs.Unsigned("repeat", instr.Repeat, 3, 8) |
		fs.Bit(src1.is(REG_R), 11) |
		fs.Bit(instr.has(INSTR_SS), 12) |
		fs.Bit(instr.has(INSTR_UL), 13) |
		fs.Bit(src1.Half() != dst.Half(), 14) |
		fs.Bit(dst.is(REG_EI), 15) |
		fs.Unsigned("cond", int(cat2.Cond), 3, 16) |
		fs.Bit(src2 != nil && src2.is(REG_R), 19) |
		fs.Bit(!src1.Half(), 20) |
		fs.Unsigned("opc", int(instr.Opc), 6, 21) |
		tail(instr)

	if err = fs.Err(); err != nil {
		return
	}

	for _, reg := range instr.Regs {
		info.use(reg, instr.Repeat)
	}

	return
}

func emitCat3(instr *Instruction, dwords []uint32, info *Info) (err error) {
	if err = operands(instr, 4, 4); err != nil {
		return
	}

	dst, src1, src2, src3 := instr.Regs[0], instr.Regs[1], instr.Regs[2], instr.Regs[3]

	if err = checkFlags(dst, REG_R|REG_HALF, "dst"); err != nil {
		return
	}
	if err = checkFlags(src1, REG_RELATIV|REG_CONST|REG_NEGATE|REG_R|REG_HALF, "src1"); err != nil {
		return
	}
	if err = checkFlags(src2, REG_CONST|REG_NEGATE|REG_R|REG_HALF, "src2"); err != nil {
		return
	}
	if err = checkFlags(src3, REG_RELATIV|REG_CONST|REG_NEGATE|REG_R|REG_HALF, "src3"); err != nil {
		return
	}

	half := halfOpcodes[instr.Opc]
	for n, src := range instr.Regs[1:] {
		if src.Half() != half {
			err = asm.Malformed("src%d precision does not match %v", n+1, instr.Opcode())
			return
		}
	}

	dstIdx, err := index(dst, "dst")
	if err != nil {
		return
	}
	src2Idx, err := index(src2, "src2")
	if err != nil {
		return
	}

	var fs asm.Fields
	dwords[0] = src16(&fs, src1, "src1") |
		fs.Bit(src2.is(REG_CONST), 13) |
		fs.Bit(src1.is(REG_NEGATE), 14) |
		fs.Bit(src2.is(REG_R), 15) |
		src16(&fs, src3, "src3")<<16 |
		fs.Bit(src3.is(REG_R), 29) |
		fs.Bit(src2.is(REG_NEGATE), 30) |
		fs.Bit(src3.is(REG_NEGATE), 31)

	dwords[1] = fs.Unsigned("dst", dstIdx, 8, 0) |
		fs.Unsigned("repeat", instr.Repeat, 3, 8) |
		fs.Bit(src1.is(REG_R), 11) |
		fs.Bit(instr.has(INSTR_SS), 12) |
		fs.Bit(instr.has(INSTR_UL), 13) |
		fs.Bit(dst.Half() != half, 14) |
		fs.Unsigned("src2", src2Idx, 8, 15) |
		fs.Unsigned("opc", int(instr.Opc), 4, 23) |
		tail(instr)

	if err = fs.Err(); err != nil {
		return
	}

	for _, reg := range instr.Regs {
		info.use(reg, instr.Repeat)
	}

	return
}

func emitCat4(instr *Instruction, dwords []uint32, info *Info) (err error) {
	if err = operands(instr, 2, 2); err != nil {
		return
	}

	dst, src := instr.Regs[0], instr.Regs[1]

	if err = checkFlags(dst, REG_R|REG_HALF, "dst"); err != nil {
		return
	}
	if err = checkFlags(src, cat2SrcFlags, "src"); err != nil {
		return
	}

	dstIdx, err := index(dst, "dst")
	if err != nil {
		return
	}

	var fs asm.Fields
	dwords[0] = alu16(&fs, src, "src")
	dwords[1] = fs.Unsigned("dst", dstIdx, 8, 0) |
		fs.Unsigned("repeat", instr.Repeat, 3, 8) |
		fs.Bit(src.is(REG_R), 11) |
		fs.Bit(instr.has(INSTR_SS), 12) |
		fs.Bit(instr.has(INSTR_UL), 13) |
		fs.Bit(src.Half() != dst.Half(), 14) |
		fs.Bit(!src.Half(), 20) |
		fs.Unsigned("opc", int(instr.Opc), 6, 21) |
		tail(instr)

	if err = fs.Err(); err != nil {
		return
	}

	info.use(dst, instr.Repeat)
	info.use(src, instr.Repeat)

	return
}

// samplingOpcodes take texture coordinates in src1.
var samplingOpcodes = map[Opc]bool{
	OPC_ISAM:     true,
	OPC_ISAML:    true,
	OPC_ISAMM:    true,
	OPC_SAM:      true,
	OPC_SAMB:     true,
	OPC_SAML:     true,
	OPC_SAMGQ:    true,
	OPC_GATHER4R: true,
	OPC_GATHER4G: true,
	OPC_GATHER4B: true,
	OPC_GATHER4A: true,
}

// secondSourceOpcodes need src2 for a bias or level of detail.
var secondSourceOpcodes = map[Opc]bool{
	OPC_SAMB:  true,
	OPC_SAML:  true,
	OPC_ISAML: true,
}

func emitCat5(instr *Instruction, dwords []uint32, info *Info) (err error) {
	if err = operands(instr, 1, 4); err != nil {
		return
	}

	cat5, err := payload[Cat5](instr)
	if err != nil {
		return
	}

	regs := make([]*Register, 4)
	copy(regs, instr.Regs)
	dst, src1, src2, src3 := regs[0], regs[1], regs[2], regs[3]

	if err = checkFlags(dst, REG_R|REG_HALF, "dst"); err != nil {
		return
	}
	if dst.Half() != cat5.Type.Half() {
		err = asm.Malformed("dst precision does not match %v", cat5.Type)
		return
	}

	idx := make([]int, 4)
	for n, reg := range regs {
		if reg == nil {
			continue
		}
		what := "dst"
		if n > 0 {
			what = f("src%d", n)
			if err = checkFlags(reg, REG_HALF, what); err != nil {
				return
			}
		}
		if idx[n], err = index(reg, what); err != nil {
			return
		}
	}

	s2en := instr.has(INSTR_S2EN)

	if src1 != nil && src2 != nil && src1.Half() != src2.Half() {
		err = asm.Malformed("src1 and src2 precision differ")
		return
	}

	if (instr.has(INSTR_O) || secondSourceOpcodes[instr.Opc]) && src2 == nil {
		err = asm.Malformed("%v requires src2", instr.Opcode())
		return
	}

	if samplingOpcodes[instr.Opc] {
		if src1 == nil {
			err = asm.Malformed("%v requires coordinates", instr.Opcode())
			return
		}
		need := 2
		for _, flag := range []InstrFlag{INSTR_3D, INSTR_A, INSTR_S, INSTR_P} {
			if instr.has(flag) {
				need++
			}
		}
		if have := bits.Len8(src1.WrMask); have < need {
			err = asm.Malformed("%v needs %d coordinates, src1 has %d", instr.Opcode(), need, have)
			return
		}
	}

	var fs asm.Fields

	if src1 != nil {
		dwords[0] = fs.Bit(!src1.Half(), 0) |
			fs.Unsigned("src1", idx[1], 8, 1)
	}

	if s2en {
		if cat5.Samp != 0 || cat5.Tex != 0 {
			err = asm.Malformed("s2en takes samp/tex from src3")
			return
		}
		if src3 == nil || !src3.Half() {
			err = asm.Malformed("s2en requires a half src3")
			return
		}
		if src2 != nil {
			dwords[0] |= fs.Unsigned("src2", idx[2], 11, 9)
		}
		dwords[0] |= fs.Unsigned("src3", idx[3], 8, 21)
	} else {
		if src3 != nil {
			err = asm.Malformed("src3 requires s2en")
			return
		}
		if src2 != nil {
			dwords[0] |= fs.Unsigned("src2", idx[2], 8, 9)
		}
		dwords[0] |= fs.Unsigned("samp", cat5.Samp, 4, 21) |
			fs.Unsigned("tex", cat5.Tex, 7, 25)
	}

	dwords[1] = fs.Unsigned("dst", idx[0], 8, 0) |
		fs.Unsigned("wrmask", int(dst.WrMask), 4, 8) |
		fs.Unsigned("type", int(cat5.Type), 3, 12) |
		fs.Bit(instr.has(INSTR_3D), 16) |
		fs.Bit(instr.has(INSTR_A), 17) |
		fs.Bit(instr.has(INSTR_S), 18) |
		fs.Bit(s2en, 19) |
		fs.Bit(instr.has(INSTR_O), 20) |
		fs.Bit(instr.has(INSTR_P), 21) |
		fs.Unsigned("opc", int(instr.Opc), 5, 22) |
		tail(instr)

	if err = fs.Err(); err != nil {
		return
	}

	for _, reg := range instr.Regs {
		info.use(reg, instr.Repeat)
	}

	return
}

// memory returns the field value of a cat6 operand, and whether it is immediate.
func memory(reg *Register, what string) (value int, immed bool, err error) {
	switch v := reg.Value.(type) {
	case Index:
		value = int(v)
	case Immediate:
		value = int(v)
		immed = true
	default:
		err = asm.Malformed("%v: must be a register or immediate", what)
	}
	return
}

func emitCat6(instr *Instruction, dwords []uint32, info *Info) (err error) {
	if err = operands(instr, 2, 3); err != nil {
		return
	}

	cat6, err := payload[Cat6](instr)
	if err != nil {
		return
	}

	dst, src1 := instr.Regs[0], instr.Regs[1]

	if err = checkFlags(dst, REG_HALF, "dst"); err != nil {
		return
	}
	dstIdx, err := index(dst, "dst")
	if err != nil {
		return
	}

	if err = checkFlags(src1, REG_IMMED|REG_HALF, "src1"); err != nil {
		return
	}
	src1Val, src1Im, err := memory(src1, "src1")
	if err != nil {
		return
	}

	var src2Val int
	var src2Im bool
	if len(instr.Regs) > 2 {
		src2 := instr.Regs[2]
		if err = checkFlags(src2, REG_IMMED|REG_HALF, "src2"); err != nil {
			return
		}
		if src2Val, src2Im, err = memory(src2, "src2"); err != nil {
			return
		}
	}

	var fs asm.Fields

	if cat6.SrcOffset != 0 || instr.Opc == OPC_LDG {
		dwords[0] = 1 |
			fs.Signed("src_off", cat6.SrcOffset, 13, 1) |
			fs.Unsigned("src1", src1Val, 8, 14)
	} else {
		dwords[0] = fs.Unsigned("src1", src1Val, 13, 1)
	}
	dwords[0] |= fs.Bit(src1Im, 22) |
		fs.Bit(src2Im, 23) |
		fs.Unsigned("src2", src2Val, 8, 24)

	if cat6.DstOffset != 0 || instr.Opc == OPC_STG {
		dwords[1] = fs.Signed("dst_off", cat6.DstOffset, 8, 0) |
			1<<8 |
			fs.Unsigned("dst", dstIdx, 8, 9)
	} else {
		dwords[1] = fs.Unsigned("dst", dstIdx, 8, 0)
	}
	dwords[1] |= fs.Unsigned("type", int(cat6.Type), 3, 17) |
		fs.Bit(instr.has(INSTR_G), 20) |
		fs.Unsigned("opc", int(instr.Opc), 5, 22) |
		tail(instr)

	if err = fs.Err(); err != nil {
		return
	}

	for _, reg := range instr.Regs {
		info.use(reg, instr.Repeat)
	}

	return
}
