package ir3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeSource(t *testing.T) {
	assert := assert.New(t)

	table := [...]struct {
		bits   uint32
		immed  bool
		expect string
	}{
		{0x0005, false, "r1.y"},
		{0x1005, false, "c1.y"},
		{0x0bfd, false, "r<a0.x + -3>"},
		{0x0c02, false, "c<a0.x + 2>"},
		{0x07ff, true, "-1"},
	}

	for _, entry := range table {
		assert.Equal(entry.expect, source16(entry.bits, entry.immed).String(), "%#x", entry.bits)
	}
}

func TestDecodeCat1Immediate(t *testing.T) {
	assert := assert.New(t)

	sh := NewShader()
	defer sh.Free()

	instr, err := sh.CreateInstruction(CAT1, OPC_MOV)
	assert.NoError(err)
	instr.Payload = Cat1{SrcType: TYPE_S32, DstType: TYPE_S32}
	instr.Flags = INSTR_SS
	_, err = instr.CreateRegister(Regid(3, 2), 0)
	assert.NoError(err)
	_, err = instr.CreateImmediate(-100, 0)
	assert.NoError(err)

	dwords, _ := assemble(t, sh)
	decoded := Instr(dwords[:2])
	assert.Equal(uint32(0xffffff9c), decoded[0])
	assert.Equal("mov.s32s32 r3.z, -100", decoded.String())
	assert.Equal(Immediate(-100), decoded.Cat1().Src.Value)
}

func FuzzDecode(f *testing.F) {
	f.Add(uint32(0), uint32(0))
	f.Add(uint32(0x00000000), uint32(0x20244000))
	f.Add(uint32(0x10040001), uint32(0x40100000))
	f.Add(uint32(0xffffffff), uint32(0xffffffff))

	f.Fuzz(func(t *testing.T, dw0, dw1 uint32) {
		assert := assert.New(t)

		instr := Instr{dw0, dw1}
		assert.NotPanics(func() { _ = instr.String() })
		assert.Equal(Category(dw1>>29), instr.Category())
		assert.LessOrEqual(instr.Repeat(), MAX_REPEAT)

		if instr.Category() != CAT1 {
			return
		}

		// Constant sources come from the low eleven bits.
		mov := instr.Cat1()
		if _, ok := mov.Src.Value.(Index); ok && mov.Src.Const {
			assert.Equal(int(dw0&0x7ff), int(mov.Src.Value.(Index)))
		}
	})
}
