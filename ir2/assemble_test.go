package ir2

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/freedreno-zz/freedreno-sub001/asm"
)

// move adds MAXv dst = src, src.
func move(t *testing.T, cf *CF, dst int, dstFlags RegFlag, src int) *Instruction {
	assert := assert.New(t)

	instr, err := cf.CreateInstruction(ALU)
	assert.NoError(err)
	instr.Alu().VectorOpc = VEC_MAX
	_, err = instr.CreateRegister(dst, "", dstFlags)
	assert.NoError(err)
	_, err = instr.CreateRegister(src, "", 0)
	assert.NoError(err)
	_, err = instr.CreateRegister(src, "", 0)
	assert.NoError(err)

	return instr
}

func assemble(t *testing.T, sh *Shader) ([]uint32, *Info) {
	as := &Assembler{}
	dwords := make([]uint32, Dwords(sh))
	count, info, err := as.Assemble(sh, dwords)
	assert.NoError(t, err)
	if err != nil {
		t.Fatal(err)
	}

	return dwords[:count], info
}

func TestAssembleScenario(t *testing.T) {
	assert := assert.New(t)

	sh := NewShader()
	defer sh.Free()

	cf, err := sh.CreateCF(CF_EXEC_END)
	assert.NoError(err)

	fetch, err := cf.CreateInstruction(FETCH)
	assert.NoError(err)
	*fetch.Fetch() = Fetch{
		Opc:    VTX_FETCH,
		Fmt:    FMT_32_32_32_FLOAT,
		Stride: 12,
	}
	_, err = fetch.CreateRegister(1, "xyz1", 0)
	assert.NoError(err)
	_, err = fetch.CreateRegister(0, "x", 0)
	assert.NoError(err)

	move(t, cf, 0, REG_EXPORT, 1)

	dwords, info := assemble(t, sh)
	assert.Equal([]uint32{
		0x00012001, 0x00002000, 0x00000000, // EXEC_END addr=1 cnt=2 seq=1, NOP
		0x18081000, 0x00392a88, 0x0000000c, // VERTEX R1.xyz1 = R0.x
		0x140f8000, 0x00000000, 0xe2010100, // MAXv export0 = R1, R1
	}, dwords)

	assert.Equal(1, info.MaxReg)
	assert.Equal(0, info.MaxInputReg)
	assert.Equal(uint64(1<<1), info.RegsWritten)
	assert.Equal(9, info.SizeDwords)
	assert.Empty(info.Warnings)
}

func TestAssembleSequence(t *testing.T) {
	assert := assert.New(t)

	sh := NewShader()
	defer sh.Free()

	cf, _ := sh.CreateCF(CF_EXEC_END)
	move(t, cf, 2, 0, 1)
	fetch, _ := cf.CreateInstruction(FETCH)
	fetch.Sync = true
	fetch.CreateRegister(1, "", 0)
	fetch.CreateRegister(0, "x", 0)

	exec := cf.Exec()
	assert.Equal(0b1100, sequence(exec.Instrs))

	res, end, warnings, err := resolve(paddedCFs(sh.CFs))
	assert.NoError(err)
	assert.Empty(warnings)
	assert.Equal(3, end)
	assert.Equal(resolved{Addr: 1, Cnt: 2, Seq: 0b1100}, res[0])
	assert.Equal(resolved{}, res[1])

	// The IR keeps its own view of the block.
	assert.False(exec.Explicit)
	assert.Equal(0, exec.Addr)
}

func TestAssembleCFPadding(t *testing.T) {
	assert := assert.New(t)

	sh := NewShader()
	defer sh.Free()

	cf, _ := sh.CreateCF(CF_EXEC)
	move(t, cf, 0, 0, 1)

	alloc, _ := sh.CreateCF(CF_ALLOC)
	*alloc.Alloc() = Alloc{Type: SQ_PARAMETER_PIXEL}

	cf, _ = sh.CreateCF(CF_EXEC_END)
	move(t, cf, 0, REG_EXPORT, 0)

	assert.Equal(12, Dwords(sh))

	dwords, _ := assemble(t, sh)
	assert.Equal(12, len(dwords))
	assert.Equal([]uint32{
		0x00001002, 0x00001000, 0xc2000000, // EXEC addr=2 cnt=1, ALLOC PARAM/PIXEL
		0x00001003, 0x00002000, 0x00000000, // EXEC_END addr=3 cnt=1, NOP
	}, dwords[:6])
	assert.Equal(3, len(sh.CFs))
}

func TestAssembleAlu(t *testing.T) {
	assert := assert.New(t)

	sh := NewShader()
	defer sh.Free()

	cf, _ := sh.CreateCF(CF_EXEC_END)
	instr, err := cf.CreateInstruction(ALU)
	assert.NoError(err)
	*instr.Alu() = Alu{VectorOpc: VEC_ADD, ScalarOpc: SCA_RECIP_IEEE}
	instr.CreateRegister(2, "xy__", 0)
	instr.CreateRegister(0, "yxwz", REG_NEGATE)
	instr.CreateRegister(3, "", REG_CONST|REG_ABS)
	instr.CreateRegister(4, "___w", 0)
	instr.CreateRegister(5, "wwww", 0)

	dwords, info := assemble(t, sh)
	assert.Equal([]uint32{0x4c830402, 0x04dd001b, 0xa0008305}, dwords[3:6])

	assert.Equal(5, info.MaxReg)
	assert.Equal(5, info.MaxInputReg)
	assert.Equal(uint64(1<<2|1<<4), info.RegsWritten)
}

func TestAssembleTextureFetch(t *testing.T) {
	assert := assert.New(t)

	sh := NewShader()
	defer sh.Free()

	cf, _ := sh.CreateCF(CF_EXEC_END)
	instr, err := cf.CreateInstruction(FETCH)
	assert.NoError(err)
	instr.Pred = PRED_EQ
	*instr.Fetch() = Fetch{Opc: TEX_FETCH, ConstIdx: 2}
	instr.CreateRegister(1, "xyzw", 0)
	instr.CreateRegister(0, "xyx", 0)

	dwords, _ := assemble(t, sh)
	assert.Equal([]uint32{0x10201001, 0xbffff688, 0x80000002}, dwords[3:6])
}

func TestAssembleFetchMarker(t *testing.T) {
	assert := assert.New(t)

	sh := NewShader()
	defer sh.Free()

	cf, _ := sh.CreateCF(CF_EXEC_END)
	for range 2 {
		instr, err := cf.CreateInstruction(FETCH)
		assert.NoError(err)
		instr.CreateRegister(1, "", 0)
		instr.CreateRegister(0, "", 0)
	}

	dwords, _ := assemble(t, sh)
	assert.Equal(uint32(0x3), dwords[3]>>27&0x7)
	assert.Equal(uint32(0x0), dwords[4]>>30&0x1)
	assert.Equal(uint32(0x2), dwords[6]>>27&0x7)
	assert.Equal(uint32(0x1), dwords[7]>>30&0x1)
}

func TestAssembleMismatch(t *testing.T) {
	assert := assert.New(t)

	sh := NewShader()
	defer sh.Free()

	cf, _ := sh.CreateCF(CF_EXEC_END)
	move(t, cf, 0, 0, 1)
	exec := cf.Exec()
	exec.Explicit = true
	exec.Addr = 7
	exec.Cnt = 1

	dwords, info := assemble(t, sh)
	assert.Equal(6, len(dwords))
	assert.Equal(1, len(info.Warnings))
	assert.ErrorIs(info.Warnings[0], ErrCFMismatch)

	var where *ErrCF
	assert.True(errors.As(info.Warnings[0], &where))
	assert.Equal(0, where.Index)

	// Computed values win.
	assert.Equal(uint32(0x00001001), dwords[0])
}

func TestAssembleRange(t *testing.T) {
	table := [...]struct {
		name  string
		build func(t *testing.T, sh *Shader)
		index int
		kind  error
	}{
		{"alloc size", func(t *testing.T, sh *Shader) {
			cf, _ := sh.CreateCF(CF_ALLOC)
			*cf.Alloc() = Alloc{Type: SQ_POSITION, Size: 0x1000}
		}, 0, asm.ErrEncodeRange},
		{"alloc type", func(t *testing.T, sh *Shader) {
			sh.CreateCF(CF_NOP)
			cf, _ := sh.CreateCF(CF_ALLOC)
			*cf.Alloc() = Alloc{Type: AllocType(3)}
		}, 1, asm.ErrMalformed},
		{"sequence", func(t *testing.T, sh *Shader) {
			cf, _ := sh.CreateCF(CF_EXEC_END)
			for range 8 {
				move(t, cf, 0, 0, 1)
			}
			fetch, _ := cf.CreateInstruction(FETCH)
			fetch.CreateRegister(1, "", 0)
			fetch.CreateRegister(0, "", 0)
		}, 0, asm.ErrEncodeRange},
		{"cf type", func(t *testing.T, sh *Shader) {
			sh.CreateCF(CFType(5))
		}, 0, asm.ErrMalformed},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)

			sh := NewShader()
			defer sh.Free()

			entry.build(t, sh)

			dwords := make([]uint32, 64)
			count, info, err := (&Assembler{}).Assemble(sh, dwords)
			assert.ErrorIs(err, entry.kind)
			assert.Equal(0, count)
			assert.Nil(info)
			assert.Equal(make([]uint32, 64), dwords)

			var where *ErrCF
			if assert.True(errors.As(err, &where)) {
				assert.Equal(entry.index, where.Index)
			}
		})
	}
}

func TestAssembleMalformed(t *testing.T) {
	table := [...]struct {
		name  string
		build func(t *testing.T, cf *CF)
	}{
		{"fetch operands", func(t *testing.T, cf *CF) {
			instr, _ := cf.CreateInstruction(FETCH)
			instr.CreateRegister(1, "", 0)
		}},
		{"fetch flags", func(t *testing.T, cf *CF) {
			instr, _ := cf.CreateInstruction(FETCH)
			instr.CreateRegister(1, "", 0)
			instr.CreateRegister(0, "", REG_NEGATE)
		}},
		{"fetch dst swizzle", func(t *testing.T, cf *CF) {
			instr, _ := cf.CreateInstruction(FETCH)
			instr.CreateRegister(1, "xyzq", 0)
			instr.CreateRegister(0, "", 0)
		}},
		{"alu dst swizzle", func(t *testing.T, cf *CF) {
			instr := move(t, cf, 0, 0, 1)
			instr.Regs[0].Swizzle = "yxzw"
		}},
		{"alu nothing", func(t *testing.T, cf *CF) {
			instr, _ := cf.CreateInstruction(ALU)
			instr.CreateRegister(0, "", 0)
		}},
		{"alu three source with scalar", func(t *testing.T, cf *CF) {
			instr, _ := cf.CreateInstruction(ALU)
			*instr.Alu() = Alu{VectorOpc: VEC_MULADD, ScalarOpc: SCA_MAX}
			for n := range MAX_REGS {
				instr.CreateRegister(n, "", 0)
			}
		}},
		{"alu operand count", func(t *testing.T, cf *CF) {
			instr, _ := cf.CreateInstruction(ALU)
			instr.Alu().VectorOpc = VEC_MULADD
			for n := range 3 {
				instr.CreateRegister(n, "", 0)
			}
		}},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)

			sh := NewShader()
			defer sh.Free()

			cf, _ := sh.CreateCF(CF_EXEC_END)
			entry.build(t, cf)

			dwords := make([]uint32, Dwords(sh))
			_, _, err := (&Assembler{}).Assemble(sh, dwords)
			assert.ErrorIs(err, asm.ErrMalformed)

			var where *asm.ErrInstruction
			assert.True(errors.As(err, &where))
		})
	}
}

func TestAssembleCapacity(t *testing.T) {
	assert := assert.New(t)

	sh := NewShader()
	defer sh.Free()

	cf, _ := sh.CreateCF(CF_EXEC_END)
	move(t, cf, 0, REG_EXPORT, 1)

	dwords := []uint32{1, 2, 3, 4, 5}
	_, info, err := (&Assembler{}).Assemble(sh, dwords)
	assert.ErrorIs(err, asm.ErrCapacity)
	assert.Nil(info)
	assert.Equal([]uint32{1, 2, 3, 4, 5}, dwords)
}

func TestAssembleLimits(t *testing.T) {
	assert := assert.New(t)

	sh := NewShader()
	defer sh.Free()

	for range MAX_CFS {
		_, err := sh.CreateCF(CF_NOP)
		assert.NoError(err)
	}
	_, err := sh.CreateCF(CF_NOP)
	assert.ErrorIs(err, asm.ErrCapacity)

	sh = NewShader()
	defer sh.Free()

	cf, _ := sh.CreateCF(CF_EXEC)
	for range MAX_CF_INSTRS {
		_, err = cf.CreateInstruction(ALU)
		assert.NoError(err)
	}
	_, err = cf.CreateInstruction(ALU)
	assert.ErrorIs(err, asm.ErrCapacity)

	alloc, _ := sh.CreateCF(CF_ALLOC)
	_, err = alloc.CreateInstruction(ALU)
	assert.ErrorIs(err, asm.ErrMalformed)

	instr := cf.Exec().Instrs[0]
	for n := range MAX_REGS {
		_, err = instr.CreateRegister(n, "", 0)
		assert.NoError(err)
	}
	_, err = instr.CreateRegister(0, "", 0)
	assert.ErrorIs(err, asm.ErrCapacity)

	(&Assembler{}).Assemble(sh, nil)
	_, err = sh.CreateCF(CF_NOP)
	assert.ErrorIs(err, asm.ErrSealed)
}

func TestAssembleProgram(t *testing.T) {
	assert := assert.New(t)

	sh := NewShader()
	defer sh.Free()

	cf, _ := sh.CreateCF(CF_EXEC_END)
	cf.LineNo = 1
	move(t, cf, 0, REG_EXPORT, 1).LineNo = 2

	prog, info, err := (&Assembler{Verbose: true}).Program(sh)
	assert.NoError(err)
	assert.Equal(6, info.SizeDwords)
	assert.Equal([]asm.Opcode{
		{LineNo: 1, Ip: 0, Count: 3},
		{LineNo: 2, Ip: 3, Count: 3},
	}, prog.Opcodes)
	assert.Equal(2, prog.Debug(5).LineNo)
}
