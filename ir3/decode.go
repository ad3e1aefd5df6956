package ir3

import (
	"fmt"
	"strings"
)

// Instr is one encoded a3xx instruction.
type Instr [2]uint32

// sext sign extends the low width bits of v.
func sext(v uint32, width uint) int {
	shift := 32 - width
	return int(int32(v<<shift) >> shift)
}

func (in Instr) bits(word int, shift, width uint) uint32 {
	return (in[word] >> shift) & (1<<width - 1)
}

func (in Instr) bit(word int, shift uint) bool {
	return in.bits(word, shift, 1) != 0
}

// Category of the instruction.
func (in Instr) Category() Category {
	return Category(in[1] >> 29)
}

// Sync is true when the instruction waits on outstanding results.
func (in Instr) Sync() bool {
	return in.bit(1, 28)
}

// JmpTarget is true when the instruction is a branch destination.
func (in Instr) JmpTarget() bool {
	return in.bit(1, 27)
}

// Opc is the opcode within the category.
func (in Instr) Opc() Opc {
	switch in.Category() {
	case CAT0, CAT3:
		return Opc(in.bits(1, 23, 4))
	case CAT2, CAT4:
		return Opc(in.bits(1, 21, 6))
	case CAT5, CAT6:
		return Opc(in.bits(1, 22, 5))
	}
	return OPC_MOV
}

// Opcode is the category and opcode pair.
func (in Instr) Opcode() Opcode {
	return Opcode{Category: in.Category(), Opc: in.Opc()}
}

// Repeat count of an ALU instruction.
func (in Instr) Repeat() int {
	if in.Category() > CAT4 {
		return 0
	}
	return int(in.bits(1, 8, 3))
}

// Source is a decoded source operand.
type Source struct {
	Value Value
	Const bool
	Half  bool
	Neg   bool
	Abs   bool
}

func (src Source) String() string {
	var sb strings.Builder

	if src.Neg {
		sb.WriteString("-")
	}
	if src.Abs {
		sb.WriteString("|")
	}

	file := "r"
	switch {
	case src.Const:
		file = "c"
	case src.Half:
		file = "hr"
	}

	switch v := src.Value.(type) {
	case Immediate:
		fmt.Fprintf(&sb, "%d", int(v))
	case Relative:
		fmt.Fprintf(&sb, "%s<a0.x + %d>", file, int(v))
	case Index:
		fmt.Fprintf(&sb, "%s%d.%c", file, v.Slot(), "xyzw"[v.Comp()])
	}

	if src.Abs {
		sb.WriteString("|")
	}

	return sb.String()
}

// source16 decodes the shared 16-bit source layout.
func source16(v uint32, immed bool) (src Source) {
	switch {
	case immed:
		src.Value = Immediate(sext(v, 11))
	case v&(1<<11) != 0:
		src.Value = Relative(sext(v, 10))
		src.Const = v&(1<<10) != 0
	case v&(1<<12) != 0:
		src.Value = Index(v & 0xfff)
		src.Const = true
	default:
		src.Value = Index(v & 0x7ff)
	}
	return
}

// Cat1Fields are the decoded fields of a move.
type Cat1Fields struct {
	Dst     Source
	Src     Source
	DstType Type
	SrcType Type
}

// Cat1 decodes a move.
func (in Instr) Cat1() (mov Cat1Fields) {
	mov.DstType = Type(in.bits(1, 14, 3))
	mov.SrcType = Type(in.bits(1, 18, 3))

	if in.bit(1, 17) {
		mov.Dst.Value = Relative(sext(in.bits(1, 0, 8), 8))
	} else {
		mov.Dst.Value = Index(in.bits(1, 0, 8))
	}
	mov.Dst.Half = mov.DstType.Half()

	switch {
	case in.bit(1, 22):
		mov.Src.Value = Immediate(int32(in[0]))
	case in.bit(0, 11):
		mov.Src.Value = Relative(sext(in[0], 10))
		mov.Src.Const = in.bit(0, 10)
	default:
		mov.Src.Value = Index(in.bits(0, 0, 11))
		mov.Src.Const = in.bit(1, 21)
	}
	mov.Src.Half = mov.SrcType.Half()

	return
}

// Cat2Fields are the decoded fields of a two source ALU operation.
type Cat2Fields struct {
	Dst  Source
	Src1 Source
	Src2 Source
	Cond Cond
}

// Cat2 decodes a two source ALU operation.
func (in Instr) Cat2() (alu Cat2Fields) {
	full := in.bit(1, 20)
	dstHalf := !full != in.bit(1, 14)

	alu.Dst = Source{Value: Index(in.bits(1, 0, 8)), Half: dstHalf}
	alu.Cond = Cond(in.bits(1, 16, 3))

	for n, src := range []*Source{&alu.Src1, &alu.Src2} {
		v := in[0] >> (16 * n)
		*src = source16(v&0x1fff, v&(1<<13) != 0)
		src.Neg = v&(1<<14) != 0
		src.Abs = v&(1<<15) != 0
		src.Half = !full && !src.Const
	}

	return
}

// String disassembles the instruction.
func (in Instr) String() string {
	var sb strings.Builder

	if in.Sync() {
		sb.WriteString("(sy)")
	}
	if in.JmpTarget() {
		sb.WriteString("(jp)")
	}
	if rpt := in.Repeat(); rpt > 0 {
		fmt.Fprintf(&sb, "(rpt%d)", rpt)
	}

	switch in.Category() {
	case CAT1:
		mov := in.Cat1()
		fmt.Fprintf(&sb, "mov.%v%v %v, %v", mov.SrcType, mov.DstType, mov.Dst, mov.Src)
	case CAT2:
		alu := in.Cat2()
		fmt.Fprintf(&sb, "%v %v, %v, %v", in.Opcode(), alu.Dst, alu.Src1, alu.Src2)
	default:
		sb.WriteString(in.Opcode().String())
	}

	return sb.String()
}
