package ir2

import (
	"iter"
	"unsafe"

	"github.com/freedreno-zz/freedreno-sub001/asm"
)

const (
	MAX_CFS       = 0x56 // CF records per shader.
	MAX_CF_INSTRS = 15   // Instructions per EXEC.
	MAX_REGS      = 5    // Operands per instruction.
)

// RegFlag modifies a register operand.
type RegFlag uint32

const (
	REG_CONST  = RegFlag(1 << 0)
	REG_EXPORT = RegFlag(1 << 1)
	REG_NEGATE = RegFlag(1 << 2)
	REG_ABS    = RegFlag(1 << 3)
)

// Register is an instruction operand.
type Register struct {
	Num     int
	Swizzle string // Empty selects the identity swizzle.
	Flags   RegFlag
}

func (reg *Register) is(flag RegFlag) bool {
	return reg.Flags&flag != 0
}

// Body holds the type specific fields of an instruction.
type Body interface {
	isBody()
}

// Fetch are the fields of a vertex or texture fetch.
type Fetch struct {
	Opc          FetchOpc
	ConstIdx     int
	ConstIdxSel  int
	Fmt          int
	IsSigned     bool
	IsNormalized bool
	Stride       int
	Offset       int
	IsCube       bool
}

// Alu are the fields of a paired vector and scalar operation.
type Alu struct {
	VectorOpc   VectorOpc
	ScalarOpc   ScalarOpc
	VectorClamp bool
	ScalarClamp bool
}

func (*Fetch) isBody() {}
func (*Alu) isBody()   {}

// Instruction is an a2xx FETCH or ALU instruction.
type Instruction struct {
	shader *Shader

	Type   InstrType
	Sync   bool
	Pred   Pred
	Regs   []*Register
	LineNo int
	Body   Body
}

// Fetch returns the fetch fields, or nil for an ALU instruction.
func (instr *Instruction) Fetch() *Fetch {
	fetch, _ := instr.Body.(*Fetch)
	return fetch
}

// Alu returns the ALU fields, or nil for a fetch instruction.
func (instr *Instruction) Alu() *Alu {
	alu, _ := instr.Body.(*Alu)
	return alu
}

// CFBody holds the type specific fields of a CF record.
type CFBody interface {
	isCFBody()
}

// Exec is a block of instructions.
type Exec struct {
	Instrs []*Instruction

	// Explicit address and count, checked against the computed values.
	Explicit bool
	Addr     int
	Cnt      int
}

// Alloc reserves an export buffer.
type Alloc struct {
	Type AllocType
	Size int
}

func (*Exec) isCFBody()  {}
func (*Alloc) isCFBody() {}

// CF is a control flow record.
type CF struct {
	shader *Shader

	Type   CFType
	LineNo int
	Body   CFBody
}

// Exec returns the EXEC fields, or nil.
func (cf *CF) Exec() *Exec {
	exec, _ := cf.Body.(*Exec)
	return exec
}

// Alloc returns the ALLOC fields, or nil.
func (cf *CF) Alloc() *Alloc {
	alloc, _ := cf.Body.(*Alloc)
	return alloc
}

// Instrs iterates the instructions of an EXEC.
func (cf *CF) Instrs() iter.Seq[*Instruction] {
	return func(yield func(*Instruction) bool) {
		exec := cf.Exec()
		if exec == nil {
			return
		}
		for _, instr := range exec.Instrs {
			if !yield(instr) {
				return
			}
		}
	}
}

// Shader is an a2xx program under construction.
type Shader struct {
	asm.Metadata

	CFs []*CF
}

const (
	sizeofCF          = unsafe.Sizeof(CF{})
	sizeofExec        = unsafe.Sizeof(Exec{})
	sizeofInstruction = unsafe.Sizeof(Instruction{})
	sizeofFetch       = unsafe.Sizeof(Fetch{})
	sizeofAlu         = unsafe.Sizeof(Alu{})
	sizeofRegister    = unsafe.Sizeof(Register{})
)

// NewShader creates an empty shader with its own arena.
func NewShader() (sh *Shader) {
	sh = &Shader{
		Metadata: asm.NewMetadata(asm.NewArena(asm.DEFAULT_ARENA_SIZE)),
	}
	return
}

// Free releases the shader arena.
func (sh *Shader) Free() {
	sh.Arena.Reset()
	sh.CFs = nil
}

// CreateCF appends a control flow record of the given type.
func (sh *Shader) CreateCF(cfType CFType) (cf *CF, err error) {
	if len(sh.CFs) >= MAX_CFS {
		err = &asm.ErrLimit{What: f("cf"), Limit: MAX_CFS}
		return
	}

	size := sizeofCF
	var body CFBody
	switch cfType {
	case CF_EXEC, CF_EXEC_END:
		body = &Exec{}
		size += sizeofExec
	case CF_ALLOC:
		body = &Alloc{}
	}

	if err = sh.Charge(size); err != nil {
		return
	}

	cf = &CF{shader: sh, Type: cfType, Body: body}
	sh.CFs = append(sh.CFs, cf)

	return
}

// CreateInstruction appends an instruction to an EXEC record.
func (cf *CF) CreateInstruction(instrType InstrType) (instr *Instruction, err error) {
	exec := cf.Exec()
	if exec == nil {
		err = asm.Malformed("%v holds no instructions", cf.Type)
		return
	}

	if len(exec.Instrs) >= MAX_CF_INSTRS {
		err = &asm.ErrLimit{What: f("instructions"), Limit: MAX_CF_INSTRS}
		return
	}

	size := sizeofInstruction
	var body Body
	switch instrType {
	case FETCH:
		body = &Fetch{}
		size += sizeofFetch
	case ALU:
		body = &Alu{VectorOpc: VECTOR_NONE, ScalarOpc: SCALAR_NONE}
		size += sizeofAlu
	default:
		err = asm.Malformed("unknown instruction type %d", int(instrType))
		return
	}

	if err = cf.shader.Charge(size); err != nil {
		return
	}

	instr = &Instruction{shader: cf.shader, Type: instrType, Body: body}
	exec.Instrs = append(exec.Instrs, instr)

	return
}

// CreateRegister appends an operand.
func (instr *Instruction) CreateRegister(num int, swizzle string, flags RegFlag) (reg *Register, err error) {
	if len(instr.Regs) >= MAX_REGS {
		err = &asm.ErrLimit{What: f("registers"), Limit: MAX_REGS}
		return
	}

	if err = instr.shader.Charge(sizeofRegister); err != nil {
		return
	}

	reg = &Register{Num: num, Swizzle: swizzle, Flags: flags}
	instr.Regs = append(instr.Regs, reg)

	return
}
