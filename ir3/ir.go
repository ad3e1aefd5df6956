package ir3

import (
	"unsafe"

	"github.com/freedreno-zz/freedreno-sub001/asm"
)

const (
	MAX_INSTRS = 512 // Instructions per shader.
	MAX_REGS   = 4   // Operands per instruction, destination first.
	MAX_REPEAT = 7   // Largest repeat count.

	REG_A0 = 61 // Address register slot.
	REG_P0 = 62 // Predicate register slot.
)

// RegFlag modifies a register operand.
type RegFlag uint32

const (
	REG_CONST   = RegFlag(1 << 0) // Constant bank.
	REG_IMMED   = RegFlag(1 << 1) // Immediate value.
	REG_HALF    = RegFlag(1 << 2) // Half precision register file.
	REG_RELATIV = RegFlag(1 << 3) // Relative to a0.x.
	REG_R       = RegFlag(1 << 4) // Index advances with repeat.
	REG_NEGATE  = RegFlag(1 << 5)
	REG_ABS     = RegFlag(1 << 6)
	REG_EVEN    = RegFlag(1 << 7)
	REG_POS_INF = RegFlag(1 << 8)
	REG_EI      = RegFlag(1 << 9) // End of input (bary.f).
)

// Value is what a register operand refers to.
type Value interface {
	isValue()
}

// Index selects a register component: slot<<2 | comp.
type Index int

// Immediate is an inline constant.
type Immediate int32

// Relative is an offset from the address register.
type Relative int

func (Index) isValue()     {}
func (Immediate) isValue() {}
func (Relative) isValue()  {}

// Regid builds the index of component comp of register slot.
func Regid(slot, comp int) Index {
	return Index(slot<<2 | (comp & 3))
}

// Slot returns the vec4 register holding the component.
func (idx Index) Slot() int {
	return int(idx) >> 2
}

// Comp returns the component within the vec4 register.
func (idx Index) Comp() int {
	return int(idx) & 3
}

// Register is an instruction operand.
type Register struct {
	Flags  RegFlag
	Value  Value
	WrMask uint8 // Components written (destinations) or read (sources).
}

func (reg *Register) is(flag RegFlag) bool {
	return reg.Flags&flag != 0
}

// Half is true for half precision registers.
func (reg *Register) Half() bool {
	return reg.is(REG_HALF)
}

// InstrFlag modifies an instruction.
type InstrFlag uint32

const (
	INSTR_SY   = InstrFlag(1 << 0)  // Sync: wait for texture/memory results.
	INSTR_SS   = InstrFlag(1 << 1)  // Sync: wait for scalar results.
	INSTR_JP   = InstrFlag(1 << 2)  // Jump target.
	INSTR_UL   = InstrFlag(1 << 3)  // Unique load.
	INSTR_3D   = InstrFlag(1 << 4)  // cat5: 3D texture.
	INSTR_A    = InstrFlag(1 << 5)  // cat5: array.
	INSTR_O    = InstrFlag(1 << 6)  // cat5: coordinate offset.
	INSTR_P    = InstrFlag(1 << 7)  // cat5: projected.
	INSTR_S    = InstrFlag(1 << 8)  // cat5: shadow compare.
	INSTR_S2EN = InstrFlag(1 << 9)  // cat5: sampler and texture from a register.
	INSTR_G    = InstrFlag(1 << 10) // cat6: global memory.
)

// Payload holds the category specific fields of an instruction.
type Payload interface {
	isPayload()
}

// Cat0 are flow control fields.
type Cat0 struct {
	Immed int  // Branch offset.
	Inv   bool // Invert the predicate.
	Comp  int  // Predicate component.
}

// Cat1 are the move/convert types.
type Cat1 struct {
	SrcType Type
	DstType Type
}

// Cat2 is the comparison condition.
type Cat2 struct {
	Cond Cond
}

// Cat5 are the texture fields.
type Cat5 struct {
	Samp int
	Tex  int
	Type Type
}

// Cat6 are the memory fields.
type Cat6 struct {
	Type      Type
	SrcOffset int
	DstOffset int
}

func (Cat0) isPayload() {}
func (Cat1) isPayload() {}
func (Cat2) isPayload() {}
func (Cat5) isPayload() {}
func (Cat6) isPayload() {}

// Instruction is a single a3xx instruction.
type Instruction struct {
	shader *Shader

	Category Category
	Opc      Opc
	Regs     []*Register // Destination, then sources.
	Flags    InstrFlag
	Repeat   int
	LineNo   int // Source line, when known.
	Payload  Payload
}

func (instr *Instruction) has(flag InstrFlag) bool {
	return instr.Flags&flag != 0
}

// Opcode returns the category and opcode pair.
func (instr *Instruction) Opcode() Opcode {
	return Opcode{Category: instr.Category, Opc: instr.Opc}
}

// Shader is an a3xx program under construction.
type Shader struct {
	asm.Metadata

	Instrs []*Instruction
}

// Arena footprint of the IR records.
const (
	sizeofInstruction = unsafe.Sizeof(Instruction{})
	sizeofRegister    = unsafe.Sizeof(Register{})
)

// NewShader creates an empty shader with its own arena.
func NewShader() (sh *Shader) {
	sh = &Shader{
		Metadata: asm.NewMetadata(asm.NewArena(asm.DEFAULT_ARENA_SIZE)),
	}

	return
}

// Free releases the shader arena. The shader must not be used afterwards.
func (sh *Shader) Free() {
	sh.Arena.Reset()
	sh.Instrs = nil
}

// defaultPayload returns the payload a new instruction of a category starts with.
func defaultPayload(cat Category) Payload {
	switch cat {
	case CAT0:
		return Cat0{}
	case CAT1:
		return Cat1{SrcType: TYPE_F32, DstType: TYPE_F32}
	case CAT2:
		return Cat2{}
	case CAT5:
		return Cat5{Type: TYPE_F32}
	case CAT6:
		return Cat6{Type: TYPE_U32}
	}
	return nil
}

// CreateInstruction appends a new instruction in program order.
func (sh *Shader) CreateInstruction(cat Category, opc Opc) (instr *Instruction, err error) {
	if len(sh.Instrs) >= MAX_INSTRS {
		err = &asm.ErrLimit{What: f("instructions"), Limit: MAX_INSTRS}
		return
	}

	err = sh.Charge(sizeofInstruction)
	if err != nil {
		return
	}

	instr = &Instruction{
		shader:   sh,
		Category: cat,
		Opc:      opc,
		Payload:  defaultPayload(cat),
	}
	sh.Instrs = append(sh.Instrs, instr)

	return
}

func (instr *Instruction) addRegister(reg *Register) (err error) {
	if len(instr.Regs) >= MAX_REGS {
		err = &asm.ErrLimit{What: f("registers"), Limit: MAX_REGS}
		return
	}

	err = instr.shader.Charge(sizeofRegister)
	if err != nil {
		return
	}

	instr.Regs = append(instr.Regs, reg)

	return
}

// CreateRegister appends a register operand selecting index num.
func (instr *Instruction) CreateRegister(num Index, flags RegFlag) (reg *Register, err error) {
	reg = &Register{
		Flags:  flags &^ (REG_IMMED | REG_RELATIV),
		Value:  num,
		WrMask: 0x1,
	}
	if err = instr.addRegister(reg); err != nil {
		return nil, err
	}
	return
}

// CreateImmediate appends an immediate operand.
func (instr *Instruction) CreateImmediate(value int32, flags RegFlag) (reg *Register, err error) {
	reg = &Register{
		Flags:  (flags | REG_IMMED) &^ REG_RELATIV,
		Value:  Immediate(value),
		WrMask: 0x1,
	}
	if err = instr.addRegister(reg); err != nil {
		return nil, err
	}
	return
}

// CreateRelative appends an operand addressed relative to a0.x.
func (instr *Instruction) CreateRelative(offset int, flags RegFlag) (reg *Register, err error) {
	reg = &Register{
		Flags:  (flags | REG_RELATIV) &^ REG_IMMED,
		Value:  Relative(offset),
		WrMask: 0x1,
	}
	if err = instr.addRegister(reg); err != nil {
		return nil, err
	}
	return
}
