package ir2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcodeLookup(t *testing.T) {
	assert := assert.New(t)

	opc, ok := LookupVector("MULADDv")
	assert.True(ok)
	assert.Equal(VEC_MULADD, opc)
	assert.True(threeSource[opc])

	sop, ok := LookupScalar("RECIP_IEEE")
	assert.True(ok)
	assert.Equal(SCA_RECIP_IEEE, sop)

	_, ok = LookupScalar("ScalarOpc(41)")
	assert.False(ok)
	assert.Equal(50, len(scalarNames))
	assert.Equal(30, len(vectorNames))

	fmt, ok := LookupFormat("fmt_32_32_32_float")
	assert.True(ok)
	assert.Equal(FMT_32_32_32_FLOAT, fmt)

	assert.Equal("PARAM/PIXEL", SQ_PARAMETER_PIXEL.String())
	assert.Equal("EXEC_END", CF_EXEC_END.String())
	assert.Equal("EQ", PRED_EQ.String())
}

func TestSwizzle(t *testing.T) {
	assert := assert.New(t)

	swiz, err := aluSrcSwizzle(&Register{Swizzle: "xyzw"})
	assert.NoError(err)
	assert.Equal(uint32(0), swiz)

	swiz, err = aluSrcSwizzle(&Register{Swizzle: "xxxx"})
	assert.NoError(err)
	assert.Equal(uint32(0b01_10_11_00), swiz)

	mask, err := aluDstMask(&Register{Swizzle: "x_z_"})
	assert.NoError(err)
	assert.Equal(uint32(0b0101), mask)

	swiz, err = fetchDstSwizzle(&Register{Swizzle: "01__"})
	assert.NoError(err)
	assert.Equal(uint32(4|5<<3|7<<6|7<<9), swiz)

	swiz, err = fetchSrcSwizzle(&Register{Swizzle: "zw"}, 2)
	assert.NoError(err)
	assert.Equal(uint32(2|3<<2), swiz)

	_, err = fetchSrcSwizzle(&Register{Swizzle: "z"}, 3)
	assert.Error(err)
}
