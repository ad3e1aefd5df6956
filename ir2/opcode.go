package ir2

import (
	"strings"

	"github.com/samber/lo"
)

// InstrType selects the instruction body.
type InstrType int

//go:generate go tool stringer -linecomment -type=InstrType
const (
	FETCH = InstrType(0) // FETCH
	ALU   = InstrType(1) // ALU
)

// Pred is the predicate an instruction executes under. The values are the
// ALU pred_select encoding.
type Pred int

//go:generate go tool stringer -linecomment -type=Pred
const (
	PRED_NONE = Pred(0) // NONE
	PRED_NE   = Pred(2) // NE
	PRED_EQ   = Pred(3) // EQ
)

// FetchOpc is the fetch kind.
type FetchOpc int

//go:generate go tool stringer -linecomment -type=FetchOpc
const (
	VTX_FETCH = FetchOpc(0) // VERTEX
	TEX_FETCH = FetchOpc(1) // SAMPLE
)

// CFType is the control flow opcode.
type CFType int

//go:generate go tool stringer -linecomment -type=CFType
const (
	CF_NOP      = CFType(0)  // NOP
	CF_EXEC     = CFType(1)  // EXEC
	CF_EXEC_END = CFType(2)  // EXEC_END
	CF_ALLOC    = CFType(12) // ALLOC
)

// AllocType is the buffer an ALLOC reserves.
type AllocType int

//go:generate go tool stringer -linecomment -type=AllocType
const (
	SQ_POSITION        = AllocType(1) // POSITION
	SQ_PARAMETER_PIXEL = AllocType(2) // PARAM/PIXEL
)

// VectorOpc is an ALU vector operation.
type VectorOpc int

const VECTOR_NONE = VectorOpc(-1)

//go:generate go tool stringer -linecomment -type=VectorOpc
const (
	VEC_ADD              = VectorOpc(0)  // ADDv
	VEC_MUL              = VectorOpc(1)  // MULv
	VEC_MAX              = VectorOpc(2)  // MAXv
	VEC_MIN              = VectorOpc(3)  // MINv
	VEC_SETE             = VectorOpc(4)  // SETEv
	VEC_SETGT            = VectorOpc(5)  // SETGTv
	VEC_SETGTE           = VectorOpc(6)  // SETGTEv
	VEC_SETNE            = VectorOpc(7)  // SETNEv
	VEC_FRAC             = VectorOpc(8)  // FRACv
	VEC_TRUNC            = VectorOpc(9)  // TRUNCv
	VEC_FLOOR            = VectorOpc(10) // FLOORv
	VEC_MULADD           = VectorOpc(11) // MULADDv
	VEC_CNDE             = VectorOpc(12) // CNDEv
	VEC_CNDGTE           = VectorOpc(13) // CNDGTEv
	VEC_CNDGT            = VectorOpc(14) // CNDGTv
	VEC_DOT4             = VectorOpc(15) // DOT4v
	VEC_DOT3             = VectorOpc(16) // DOT3v
	VEC_DOT2ADD          = VectorOpc(17) // DOT2ADDv
	VEC_CUBE             = VectorOpc(18) // CUBEv
	VEC_MAX4             = VectorOpc(19) // MAX4v
	VEC_PRED_SETE_PUSH   = VectorOpc(20) // PRED_SETE_PUSHv
	VEC_PRED_SETNE_PUSH  = VectorOpc(21) // PRED_SETNE_PUSHv
	VEC_PRED_SETGT_PUSH  = VectorOpc(22) // PRED_SETGT_PUSHv
	VEC_PRED_SETGTE_PUSH = VectorOpc(23) // PRED_SETGTE_PUSHv
	VEC_KILLE            = VectorOpc(24) // KILLEv
	VEC_KILLGT           = VectorOpc(25) // KILLGTv
	VEC_KILLGTE          = VectorOpc(26) // KILLGTEv
	VEC_KILLNE           = VectorOpc(27) // KILLNEv
	VEC_DST              = VectorOpc(28) // DSTv
	VEC_MOVA             = VectorOpc(29) // MOVAv
)

// ScalarOpc is an ALU scalar operation.
type ScalarOpc int

const SCALAR_NONE = ScalarOpc(-1)

//go:generate go tool stringer -linecomment -type=ScalarOpc
const (
	SCA_ADD              = ScalarOpc(0)  // ADDs
	SCA_ADD_PREV         = ScalarOpc(1)  // ADD_PREVs
	SCA_MUL              = ScalarOpc(2)  // MULs
	SCA_MUL_PREV         = ScalarOpc(3)  // MUL_PREVs
	SCA_MUL_PREV2        = ScalarOpc(4)  // MUL_PREV2s
	SCA_MAX              = ScalarOpc(5)  // MAXs
	SCA_MIN              = ScalarOpc(6)  // MINs
	SCA_SETE             = ScalarOpc(7)  // SETEs
	SCA_SETGT            = ScalarOpc(8)  // SETGTs
	SCA_SETGTE           = ScalarOpc(9)  // SETGTEs
	SCA_SETNE            = ScalarOpc(10) // SETNEs
	SCA_FRAC             = ScalarOpc(11) // FRACs
	SCA_TRUNC            = ScalarOpc(12) // TRUNCs
	SCA_FLOOR            = ScalarOpc(13) // FLOORs
	SCA_EXP_IEEE         = ScalarOpc(14) // EXP_IEEE
	SCA_LOG_CLAMP        = ScalarOpc(15) // LOG_CLAMP
	SCA_LOG_IEEE         = ScalarOpc(16) // LOG_IEEE
	SCA_RECIP_CLAMP      = ScalarOpc(17) // RECIP_CLAMP
	SCA_RECIP_FF         = ScalarOpc(18) // RECIP_FF
	SCA_RECIP_IEEE       = ScalarOpc(19) // RECIP_IEEE
	SCA_RECIPSQ_CLAMP    = ScalarOpc(20) // RECIPSQ_CLAMP
	SCA_RECIPSQ_FF       = ScalarOpc(21) // RECIPSQ_FF
	SCA_RECIPSQ_IEEE     = ScalarOpc(22) // RECIPSQ_IEEE
	SCA_MOVA             = ScalarOpc(23) // MOVAs
	SCA_MOVA_FLOOR       = ScalarOpc(24) // MOVA_FLOORs
	SCA_SUB              = ScalarOpc(25) // SUBs
	SCA_SUB_PREV         = ScalarOpc(26) // SUB_PREVs
	SCA_PRED_SETE        = ScalarOpc(27) // PRED_SETEs
	SCA_PRED_SETNE       = ScalarOpc(28) // PRED_SETNEs
	SCA_PRED_SETGT       = ScalarOpc(29) // PRED_SETGTs
	SCA_PRED_SETGTE      = ScalarOpc(30) // PRED_SETGTEs
	SCA_PRED_SET_INV     = ScalarOpc(31) // PRED_SET_INVs
	SCA_PRED_SET_POP     = ScalarOpc(32) // PRED_SET_POPs
	SCA_PRED_SET_CLR     = ScalarOpc(33) // PRED_SET_CLRs
	SCA_PRED_SET_RESTORE = ScalarOpc(34) // PRED_SET_RESTOREs
	SCA_KILLE            = ScalarOpc(35) // KILLEs
	SCA_KILLGT           = ScalarOpc(36) // KILLGTs
	SCA_KILLGTE          = ScalarOpc(37) // KILLGTEs
	SCA_KILLNE           = ScalarOpc(38) // KILLNEs
	SCA_KILLONE          = ScalarOpc(39) // KILLONEs
	SCA_SQRT_IEEE        = ScalarOpc(40) // SQRT_IEEE
	SCA_MUL_CONST_0      = ScalarOpc(42) // MUL_CONST_0
	SCA_MUL_CONST_1      = ScalarOpc(43) // MUL_CONST_1
	SCA_ADD_CONST_0      = ScalarOpc(44) // ADD_CONST_0
	SCA_ADD_CONST_1      = ScalarOpc(45) // ADD_CONST_1
	SCA_SUB_CONST_0      = ScalarOpc(46) // SUB_CONST_0
	SCA_SUB_CONST_1      = ScalarOpc(47) // SUB_CONST_1
	SCA_SIN              = ScalarOpc(48) // SIN
	SCA_COS              = ScalarOpc(49) // COS
	SCA_RETAIN_PREV      = ScalarOpc(50) // RETAIN_PREV
)

// threeSource vector operations read src3 as well.
var threeSource = map[VectorOpc]bool{
	VEC_MULADD:  true,
	VEC_CNDE:    true,
	VEC_CNDGTE:  true,
	VEC_CNDGT:   true,
	VEC_DOT2ADD: true,
}

// Surface formats for vertex fetch.
const (
	FMT_1_REVERSE         = 0
	FMT_1                 = 1
	FMT_8                 = 2
	FMT_1_5_5_5           = 3
	FMT_5_6_5             = 4
	FMT_6_5_5             = 5
	FMT_8_8_8_8           = 6
	FMT_2_10_10_10        = 7
	FMT_8_8               = 10
	FMT_16                = 24
	FMT_16_16             = 25
	FMT_16_16_16_16       = 26
	FMT_32                = 33
	FMT_32_32             = 34
	FMT_32_32_32_32       = 35
	FMT_32_FLOAT          = 36
	FMT_32_32_FLOAT       = 37
	FMT_32_32_32_32_FLOAT = 38
	FMT_32_32_32_FLOAT    = 57
)

var formatNames = map[string]int{
	"FMT_1_REVERSE":         FMT_1_REVERSE,
	"FMT_1":                 FMT_1,
	"FMT_8":                 FMT_8,
	"FMT_1_5_5_5":           FMT_1_5_5_5,
	"FMT_5_6_5":             FMT_5_6_5,
	"FMT_6_5_5":             FMT_6_5_5,
	"FMT_8_8_8_8":           FMT_8_8_8_8,
	"FMT_2_10_10_10":        FMT_2_10_10_10,
	"FMT_8_8":               FMT_8_8,
	"FMT_16":                FMT_16,
	"FMT_16_16":             FMT_16_16,
	"FMT_16_16_16_16":       FMT_16_16_16_16,
	"FMT_32":                FMT_32,
	"FMT_32_32":             FMT_32_32,
	"FMT_32_32_32_32":       FMT_32_32_32_32,
	"FMT_32_FLOAT":          FMT_32_FLOAT,
	"FMT_32_32_FLOAT":       FMT_32_32_FLOAT,
	"FMT_32_32_32_32_FLOAT": FMT_32_32_32_32_FLOAT,
	"FMT_32_32_32_FLOAT":    FMT_32_32_32_FLOAT,
}

// LookupFormat finds a vertex format by name.
func LookupFormat(name string) (fmt int, ok bool) {
	fmt, ok = formatNames[strings.ToUpper(name)]
	return
}

var vectorNames = lo.SliceToMap(lo.RangeFrom(VEC_ADD, int(VEC_MOVA)+1), func(opc VectorOpc) (string, VectorOpc) {
	return opc.String(), opc
})

var scalarNames = lo.SliceToMap(lo.Filter(lo.RangeFrom(SCA_ADD, int(SCA_RETAIN_PREV)+1), func(opc ScalarOpc, _ int) bool {
	return opc != 41
}), func(opc ScalarOpc) (string, ScalarOpc) {
	return opc.String(), opc
})

// LookupVector finds a vector operation by name.
func LookupVector(name string) (opc VectorOpc, ok bool) {
	opc, ok = vectorNames[name]
	return
}

// LookupScalar finds a scalar operation by name.
func LookupScalar(name string) (opc ScalarOpc, ok bool) {
	opc, ok = scalarNames[name]
	return
}
