package ir3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcodeLookup(t *testing.T) {
	assert := assert.New(t)

	for op, name := range opcodeNames {
		found, ok := LookupOpcode(name)
		assert.True(ok, name)
		assert.Equal(op, found, name)
		assert.Equal(name, op.String())
	}

	op, ok := LookupOpcode("MAD.F32")
	assert.True(ok)
	assert.Equal(Opcode{CAT3, OPC_MAD_F32}, op)

	_, ok = LookupOpcode("frobnicate")
	assert.False(ok)

	assert.Equal("cat2.opc8", Opcode{CAT2, Opc(8)}.String())
}

func TestOpcodeTypes(t *testing.T) {
	assert := assert.New(t)

	typ, ok := LookupType("u16")
	assert.True(ok)
	assert.Equal(TYPE_U16, typ)
	assert.True(typ.Half())
	assert.Equal(16, typ.Size())

	typ, ok = LookupType("s32")
	assert.True(ok)
	assert.False(typ.Half())

	_, ok = LookupType("f64")
	assert.False(ok)

	assert.True(TYPE_S8.Half())
	assert.Equal(8, TYPE_U8.Size())
	assert.Equal("ge", COND_GE.String())
}
