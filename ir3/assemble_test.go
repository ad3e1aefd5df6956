package ir3

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/freedreno-zz/freedreno-sub001/asm"
)

// mov adds mov.f32f32 dst, src.
func mov(t *testing.T, sh *Shader, dst Index, src Index, srcFlags RegFlag) *Instruction {
	assert := assert.New(t)

	instr, err := sh.CreateInstruction(CAT1, OPC_MOV)
	assert.NoError(err)
	_, err = instr.CreateRegister(dst, 0)
	assert.NoError(err)
	_, err = instr.CreateRegister(src, srcFlags)
	assert.NoError(err)

	return instr
}

func assemble(t *testing.T, sh *Shader) ([]uint32, *Info) {
	assert := assert.New(t)

	as := &Assembler{}
	dwords := make([]uint32, Dwords(sh))
	count, info, err := as.Assemble(sh, dwords)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	return dwords[:count], info
}

func TestAssembleMov(t *testing.T) {
	assert := assert.New(t)

	sh := NewShader()
	defer sh.Free()

	mov(t, sh, Regid(0, 0), Regid(0, 0), REG_CONST)

	dwords, info := assemble(t, sh)
	assert.Equal(8, len(dwords))
	assert.Equal([]uint32{0x00000000, 0x20244000}, dwords[:2])
	assert.Equal(make([]uint32, 6), dwords[2:])

	instr := Instr(dwords[:2])
	assert.Equal(CAT1, instr.Category())
	assert.Equal("mov.f32f32 r0.x, c0.x", instr.String())

	decoded := instr.Cat1()
	assert.Equal(Index(0), decoded.Src.Value)
	assert.True(decoded.Src.Const)
	assert.Equal(TYPE_F32, decoded.DstType)
	assert.Equal(TYPE_F32, decoded.SrcType)

	assert.Equal(0, info.MaxReg)
	assert.Equal(0, info.MaxConst)
	assert.Equal(-1, info.MaxHalfReg)
	assert.Equal(4, info.InstrsCount)
	assert.Equal(8, info.SizeDwords)
}

func TestAssembleScenario(t *testing.T) {
	assert := assert.New(t)

	sh := NewShader()
	defer sh.Free()

	_, err := sh.CreateAttribute(0, 1, "in_position")
	assert.NoError(err)

	mov(t, sh, Regid(1, 0), Regid(0, 0), 0)
	mov(t, sh, Regid(0, 0), Regid(1, 0), 0)

	dwords, info := assemble(t, sh)
	assert.Equal(8, len(dwords))
	assert.Equal([]uint32{0x00000000, 0x20044004}, dwords[0:2])
	assert.Equal([]uint32{0x00000004, 0x20044000}, dwords[2:4])
	assert.Equal(make([]uint32, 4), dwords[4:])

	assert.Equal(1, info.MaxReg)
	assert.Equal(-1, info.MaxConst)
}

func TestAssembleCategories(t *testing.T) {
	type operand struct {
		value Value
		flags RegFlag
		mask  uint8
	}

	table := [...]struct {
		name    string
		cat     Category
		opc     Opc
		flags   InstrFlag
		payload Payload
		regs    []operand
		words   [2]uint32
	}{
		{"br", CAT0, OPC_BR, INSTR_SY, Cat0{Immed: -2, Inv: true, Comp: 1}, nil,
			[2]uint32{0x0000fffe, 0x10b00000}},
		{"end", CAT0, OPC_END, 0, nil, nil,
			[2]uint32{0x00000000, 0x03000000}},
		{"add.f", CAT2, OPC_ADD_F, 0, Cat2{}, []operand{
			{value: Regid(0, 0)},
			{value: Regid(0, 1)},
			{value: Regid(1, 0), flags: REG_CONST},
		}, [2]uint32{0x10040001, 0x40100000}},
		{"mad.f32", CAT3, OPC_MAD_F32, 0, nil, []operand{
			{value: Regid(0, 0)},
			{value: Regid(1, 0)},
			{value: Regid(2, 0), flags: REG_CONST},
			{value: Regid(3, 0)},
		}, [2]uint32{0x000c2004, 0x63840000}},
		{"rcp", CAT4, OPC_RCP, 0, nil, []operand{
			{value: Regid(0, 0)},
			{value: Regid(1, 0)},
		}, [2]uint32{0x00000004, 0x80100000}},
		{"sam", CAT5, OPC_SAM, 0, Cat5{Samp: 1, Tex: 2, Type: TYPE_F32}, []operand{
			{value: Regid(0, 0), mask: 0xf},
			{value: Regid(0, 0), mask: 0x3},
		}, [2]uint32{0x04200001, 0xa0c01f00}},
		{"sam.s2en", CAT5, OPC_SAM, INSTR_S2EN, Cat5{Type: TYPE_F32}, []operand{
			{value: Regid(0, 0), mask: 0x1},
			{value: Regid(1, 0), mask: 0x3},
			{value: Regid(2, 0)},
			{value: Regid(3, 1), flags: REG_HALF},
		}, [2]uint32{0x01a01009, 0xa0c81100}},
		{"add.f relative", CAT2, OPC_ADD_F, 0, Cat2{}, []operand{
			{value: Regid(0, 0)},
			{value: Relative(-3), flags: REG_CONST | REG_NEGATE},
			{value: Regid(1, 0), flags: REG_ABS},
		}, [2]uint32{0x80044ffd, 0x40100000}},
		{"add.f immediate", CAT2, OPC_ADD_F, 0, Cat2{}, []operand{
			{value: Regid(0, 0)},
			{value: Regid(0, 0)},
			{value: Immediate(3)},
		}, [2]uint32{0x20030000, 0x40100000}},
		{"mad.f32 relative", CAT3, OPC_MAD_F32, 0, nil, []operand{
			{value: Regid(0, 0)},
			{value: Relative(2), flags: REG_NEGATE},
			{value: Regid(2, 0), flags: REG_NEGATE},
			{value: Relative(1), flags: REG_CONST | REG_NEGATE | REG_R},
		}, [2]uint32{0xec014802, 0x63840000}},
		{"rcp relative", CAT4, OPC_RCP, 0, nil, []operand{
			{value: Regid(0, 0)},
			{value: Relative(5), flags: REG_NEGATE},
		}, [2]uint32{0x00004805, 0x80100000}},
		{"mov relative", CAT1, OPC_MOV, 0, Cat1{SrcType: TYPE_F32, DstType: TYPE_F32}, []operand{
			{value: Relative(4)},
			{value: Relative(-2), flags: REG_CONST},
		}, [2]uint32{0x00000ffe, 0x20064004}},
		{"ldg", CAT6, OPC_LDG, 0, Cat6{Type: TYPE_U32}, []operand{
			{value: Regid(0, 0)},
			{value: Regid(1, 0)},
		}, [2]uint32{0x00010001, 0xc0060000}},
		{"stg", CAT6, OPC_STG, 0, Cat6{Type: TYPE_U32, DstOffset: -1}, []operand{
			{value: Regid(2, 0)},
			{value: Regid(0, 0)},
			{value: Regid(1, 0)},
		}, [2]uint32{0x04000000, 0xc0c611ff}},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)

			sh := NewShader()
			defer sh.Free()

			instr, err := sh.CreateInstruction(entry.cat, entry.opc)
			assert.NoError(err)
			instr.Flags = entry.flags
			if entry.payload != nil {
				instr.Payload = entry.payload
			}
			for _, op := range entry.regs {
				var reg *Register
				switch v := op.value.(type) {
				case Index:
					reg, err = instr.CreateRegister(v, op.flags)
				case Immediate:
					reg, err = instr.CreateImmediate(int32(v), op.flags)
				case Relative:
					reg, err = instr.CreateRelative(int(v), op.flags)
				}
				if !assert.NoError(err) {
					return
				}
				if op.mask != 0 {
					reg.WrMask = op.mask
				}
			}

			dwords, _ := assemble(t, sh)
			assert.Equal(entry.words[:], dwords[:2])

			decoded := Instr(dwords[:2])
			assert.Equal(entry.cat, decoded.Category())
			assert.Equal(entry.opc, decoded.Opc())
		})
	}
}

func TestAssembleDisassembleAlu(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("add.f r0.x, r0.y, c1.x", Instr{0x10040001, 0x40100000}.String())
	assert.Equal("(sy)br", Instr{0x0000fffe, 0x10b00000}.String())
	assert.Equal("end", Instr{0x00000000, 0x03000000}.String())
}

func TestAssemblePadding(t *testing.T) {
	assert := assert.New(t)

	for n := 1; n <= 9; n++ {
		sh := NewShader()

		for range n {
			_, err := sh.CreateInstruction(CAT0, OPC_NOP)
			assert.NoError(err)
		}

		dwords, _ := assemble(t, sh)
		assert.Equal(0, len(dwords)%8, "instructions %d", n)
		assert.GreaterOrEqual(len(dwords), 2*n)
		assert.Less(len(dwords), 2*n+8)
		assert.Equal(n, len(sh.Instrs))

		sh.Free()
	}
}

func TestAssembleCapacity(t *testing.T) {
	assert := assert.New(t)

	sh := NewShader()
	defer sh.Free()

	mov(t, sh, Regid(0, 0), Regid(0, 0), REG_CONST)

	dwords := []uint32{1, 2, 3, 4, 5, 6, 7}
	count, info, err := (&Assembler{}).Assemble(sh, dwords)
	assert.ErrorIs(err, asm.ErrCapacity)
	assert.Equal(0, count)
	assert.Nil(info)
	assert.Equal([]uint32{1, 2, 3, 4, 5, 6, 7}, dwords)
}

func TestAssembleEncodeRange(t *testing.T) {
	assert := assert.New(t)

	sh := NewShader()
	defer sh.Free()

	instr, err := sh.CreateInstruction(CAT2, OPC_ADD_F)
	assert.NoError(err)
	instr.LineNo = 7
	_, err = instr.CreateRegister(Regid(0, 0), 0)
	assert.NoError(err)
	_, err = instr.CreateRegister(Regid(0, 0), 0)
	assert.NoError(err)
	_, err = instr.CreateRegister(Index(4096), REG_CONST)
	assert.NoError(err)

	dwords := make([]uint32, 8)
	_, _, err = (&Assembler{}).Assemble(sh, dwords)
	assert.ErrorIs(err, asm.ErrEncodeRange)
	assert.Equal(make([]uint32, 8), dwords)

	var where *asm.ErrInstruction
	assert.True(errors.As(err, &where))
	assert.Equal(7, where.LineNo)
	assert.Equal(0, where.Index)

	var field *asm.ErrField
	assert.True(errors.As(err, &field))
	assert.Equal("src2", field.Field)
	assert.Equal(int64(4096), field.Value)
}

func TestAssembleMalformed(t *testing.T) {
	table := [...]struct {
		name  string
		build func(*Shader) error
	}{
		{"mov half dst", func(sh *Shader) (err error) {
			instr, _ := sh.CreateInstruction(CAT1, OPC_MOV)
			instr.CreateRegister(Regid(0, 0), REG_HALF)
			_, err = instr.CreateRegister(Regid(0, 0), 0)
			return
		}},
		{"add mixed precision", func(sh *Shader) (err error) {
			instr, _ := sh.CreateInstruction(CAT2, OPC_ADD_F)
			instr.CreateRegister(Regid(0, 0), 0)
			instr.CreateRegister(Regid(0, 1), 0)
			_, err = instr.CreateRegister(Regid(0, 2), REG_HALF)
			return
		}},
		{"mad half source", func(sh *Shader) (err error) {
			instr, _ := sh.CreateInstruction(CAT3, OPC_MAD_F32)
			instr.CreateRegister(Regid(0, 0), 0)
			instr.CreateRegister(Regid(1, 0), REG_HALF)
			instr.CreateRegister(Regid(2, 0), 0)
			_, err = instr.CreateRegister(Regid(3, 0), 0)
			return
		}},
		{"mad immediate src2", func(sh *Shader) (err error) {
			instr, _ := sh.CreateInstruction(CAT3, OPC_MAD_F32)
			instr.CreateRegister(Regid(0, 0), 0)
			instr.CreateRegister(Regid(1, 0), 0)
			instr.CreateImmediate(3, 0)
			_, err = instr.CreateRegister(Regid(3, 0), 0)
			return
		}},
		{"mad operand count", func(sh *Shader) (err error) {
			instr, _ := sh.CreateInstruction(CAT3, OPC_MAD_F32)
			instr.CreateRegister(Regid(0, 0), 0)
			_, err = instr.CreateRegister(Regid(1, 0), 0)
			return
		}},
		{"sam coordinates", func(sh *Shader) (err error) {
			instr, _ := sh.CreateInstruction(CAT5, OPC_SAM)
			instr.Flags = INSTR_3D
			instr.CreateRegister(Regid(0, 0), 0)
			_, err = instr.CreateRegister(Regid(1, 0), 0)
			return
		}},
		{"s2en samp", func(sh *Shader) (err error) {
			instr, _ := sh.CreateInstruction(CAT5, OPC_SAM)
			instr.Flags = INSTR_S2EN
			instr.Payload = Cat5{Samp: 1, Type: TYPE_F32}
			instr.CreateRegister(Regid(0, 0), 0)
			reg, _ := instr.CreateRegister(Regid(1, 0), 0)
			reg.WrMask = 0x3
			instr.CreateRegister(Regid(2, 0), 0)
			_, err = instr.CreateRegister(Regid(3, 0), REG_HALF)
			return
		}},
		{"src3 without s2en", func(sh *Shader) (err error) {
			instr, _ := sh.CreateInstruction(CAT5, OPC_SAM)
			instr.CreateRegister(Regid(0, 0), 0)
			reg, _ := instr.CreateRegister(Regid(1, 0), 0)
			reg.WrMask = 0x3
			instr.CreateRegister(Regid(2, 0), 0)
			_, err = instr.CreateRegister(Regid(3, 0), REG_HALF)
			return
		}},
		{"samb without bias", func(sh *Shader) (err error) {
			instr, _ := sh.CreateInstruction(CAT5, OPC_SAMB)
			instr.CreateRegister(Regid(0, 0), 0)
			reg, err := instr.CreateRegister(Regid(1, 0), 0)
			reg.WrMask = 0x3
			return
		}},
		{"payload mismatch", func(sh *Shader) (err error) {
			instr, _ := sh.CreateInstruction(CAT1, OPC_MOV)
			instr.Payload = Cat2{}
			instr.CreateRegister(Regid(0, 0), 0)
			_, err = instr.CreateRegister(Regid(0, 0), 0)
			return
		}},
		{"unknown category", func(sh *Shader) (err error) {
			_, err = sh.CreateInstruction(Category(7), 0)
			return
		}},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)

			sh := NewShader()
			defer sh.Free()

			assert.NoError(entry.build(sh))

			dwords := make([]uint32, Dwords(sh))
			_, info, err := (&Assembler{}).Assemble(sh, dwords)
			assert.ErrorIs(err, asm.ErrMalformed)
			assert.Nil(info)
		})
	}
}

func TestAssembleUsage(t *testing.T) {
	assert := assert.New(t)

	sh := NewShader()
	defer sh.Free()

	instr, err := sh.CreateInstruction(CAT1, OPC_MOV)
	assert.NoError(err)
	instr.Repeat = 3
	instr.CreateRegister(Regid(4, 0), REG_R)
	instr.CreateRegister(Regid(2, 3), 0)

	dwords, info := assemble(t, sh)
	assert.Equal(3, Instr(dwords[:2]).Repeat())
	assert.Equal(4, info.MaxReg)
	assert.Equal(4+3, info.InstrsCount)

	sh = NewShader()
	defer sh.Free()

	instr, _ = sh.CreateInstruction(CAT1, OPC_MOV)
	instr.Payload = Cat1{SrcType: TYPE_F16, DstType: TYPE_F16}
	instr.CreateRegister(Regid(2, 0), REG_HALF)
	instr.CreateRegister(Regid(3, 0), REG_HALF)

	instr, _ = sh.CreateInstruction(CAT1, OPC_MOV)
	instr.CreateRegister(Regid(REG_A0, 0), 0)
	instr.CreateRegister(Regid(REG_P0, 0), 0)

	instr, _ = sh.CreateInstruction(CAT1, OPC_MOV)
	instr.CreateRelative(9, 0)
	instr.CreateRelative(17, REG_CONST)

	_, err = sh.CreateAttribute(8, 4, "in_normal")
	assert.NoError(err)

	dwords, info = assemble(t, sh)
	assert.Equal(8, len(dwords))
	assert.Equal(3, info.MaxHalfReg)
	assert.Equal(2, info.MaxReg)
	assert.Equal(4, info.MaxConst)

	assert.Equal(Relative(9), Instr(dwords[4:6]).Cat1().Dst.Value)
	assert.Equal(Relative(17), Instr(dwords[4:6]).Cat1().Src.Value)
	assert.True(Instr(dwords[4:6]).Cat1().Src.Const)
}

func TestAssembleUsageRelative(t *testing.T) {
	assert := assert.New(t)

	sh := NewShader()
	defer sh.Free()

	instr, err := sh.CreateInstruction(CAT1, OPC_MOV)
	assert.NoError(err)
	instr.CreateRelative(-8, 0)
	instr.CreateRelative(-3, REG_CONST)

	_, info := assemble(t, sh)
	assert.Equal(-1, info.MaxReg)
	assert.Equal(-1, info.MaxConst)

	sh = NewShader()
	defer sh.Free()

	instr, _ = sh.CreateInstruction(CAT1, OPC_MOV)
	instr.CreateRegister(Regid(1, 0), 0)
	instr.CreateRelative(6, REG_CONST)

	_, info = assemble(t, sh)
	assert.Equal(1, info.MaxReg)
	assert.Equal(1, info.MaxConst)
}

func TestAssembleSealed(t *testing.T) {
	assert := assert.New(t)

	sh := NewShader()
	defer sh.Free()

	instr := mov(t, sh, Regid(0, 0), Regid(0, 0), REG_CONST)
	assemble(t, sh)

	_, err := sh.CreateInstruction(CAT0, OPC_NOP)
	assert.ErrorIs(err, asm.ErrSealed)
	_, err = instr.CreateImmediate(1, 0)
	assert.ErrorIs(err, asm.ErrSealed)
	_, err = sh.CreateAttribute(0, 1, "late")
	assert.ErrorIs(err, asm.ErrSealed)
}

func TestAssembleLimits(t *testing.T) {
	assert := assert.New(t)

	sh := NewShader()
	defer sh.Free()

	instr, err := sh.CreateInstruction(CAT2, OPC_ADD_F)
	assert.NoError(err)
	for n := range MAX_REGS {
		_, err = instr.CreateRegister(Regid(n, 0), 0)
		assert.NoError(err)
	}
	_, err = instr.CreateRegister(Regid(0, 0), 0)
	assert.ErrorIs(err, asm.ErrCapacity)

	for len(sh.Instrs) < MAX_INSTRS {
		_, err = sh.CreateInstruction(CAT0, OPC_NOP)
		assert.NoError(err)
	}
	_, err = sh.CreateInstruction(CAT0, OPC_NOP)
	assert.ErrorIs(err, asm.ErrCapacity)
}

func TestAssembleProgram(t *testing.T) {
	assert := assert.New(t)

	sh := NewShader()
	defer sh.Free()

	mov(t, sh, Regid(0, 0), Regid(0, 0), REG_CONST).LineNo = 3
	end, _ := sh.CreateInstruction(CAT0, OPC_END)
	end.LineNo = 4

	prog, info, err := (&Assembler{Verbose: true}).Program(sh)
	assert.NoError(err)
	assert.Equal(8, info.SizeDwords)
	assert.Equal(8, len(prog.Words))
	assert.Equal(4, len(prog.Opcodes))
	assert.Equal(asm.Opcode{LineNo: 4, Ip: 2, Count: 2}, prog.Opcodes[1])
	assert.Equal(0, prog.Opcodes[3].LineNo)
	assert.Equal(4, prog.Debug(3).LineNo)
}
