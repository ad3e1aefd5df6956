package ir3

import (
	"strings"

	"github.com/samber/lo"
)

// Category is the instruction class, selecting the encoding layout.
type Category int

//go:generate go tool stringer -linecomment -type=Category
const (
	CAT0 = Category(0) // cat0
	CAT1 = Category(1) // cat1
	CAT2 = Category(2) // cat2
	CAT3 = Category(3) // cat3
	CAT4 = Category(4) // cat4
	CAT5 = Category(5) // cat5
	CAT6 = Category(6) // cat6
)

// Opc is the opcode within a category.
type Opc int

// Category 0: flow control.
const (
	OPC_NOP  = Opc(0)
	OPC_BR   = Opc(1)
	OPC_JUMP = Opc(2)
	OPC_CALL = Opc(3)
	OPC_RET  = Opc(4)
	OPC_KILL = Opc(5)
	OPC_END  = Opc(6)
	OPC_EMIT = Opc(7)
	OPC_CUT  = Opc(8)
)

// Category 1: move/convert; the operation is implied by the types.
const (
	OPC_MOV = Opc(0)
)

// Category 2: two source ALU.
const (
	OPC_ADD_F    = Opc(0)
	OPC_MIN_F    = Opc(1)
	OPC_MAX_F    = Opc(2)
	OPC_MUL_F    = Opc(3)
	OPC_SIGN_F   = Opc(4)
	OPC_CMPS_F   = Opc(5)
	OPC_ABSNEG_F = Opc(6)
	OPC_CMPV_F   = Opc(7)
	OPC_FLOOR_F  = Opc(9)
	OPC_CEIL_F   = Opc(10)
	OPC_RNDNE_F  = Opc(11)
	OPC_RNDAZ_F  = Opc(12)
	OPC_TRUNC_F  = Opc(13)
	OPC_ADD_U    = Opc(16)
	OPC_ADD_S    = Opc(17)
	OPC_SUB_U    = Opc(18)
	OPC_SUB_S    = Opc(19)
	OPC_CMPS_U   = Opc(20)
	OPC_CMPS_S   = Opc(21)
	OPC_MIN_U    = Opc(22)
	OPC_MIN_S    = Opc(23)
	OPC_MAX_U    = Opc(24)
	OPC_MAX_S    = Opc(25)
	OPC_ABSNEG_S = Opc(26)
	OPC_AND_B    = Opc(28)
	OPC_OR_B     = Opc(29)
	OPC_NOT_B    = Opc(30)
	OPC_XOR_B    = Opc(31)
	OPC_CMPV_U   = Opc(33)
	OPC_CMPV_S   = Opc(34)
	OPC_MUL_U    = Opc(48)
	OPC_MUL_S    = Opc(49)
	OPC_MULL_U   = Opc(50)
	OPC_BFREV_B  = Opc(51)
	OPC_CLZ_S    = Opc(52)
	OPC_CLZ_B    = Opc(53)
	OPC_SHL_B    = Opc(54)
	OPC_SHR_B    = Opc(55)
	OPC_ASHR_B   = Opc(56)
	OPC_BARY_F   = Opc(57)
	OPC_MGEN_B   = Opc(58)
	OPC_GETBIT_B = Opc(59)
	OPC_SETRM    = Opc(60)
	OPC_CBITS_B  = Opc(61)
	OPC_SHB      = Opc(62)
	OPC_MSAD     = Opc(63)
)

// Category 3: three source ALU.
const (
	OPC_MAD_U16   = Opc(0)
	OPC_MADSH_U16 = Opc(1)
	OPC_MAD_S16   = Opc(2)
	OPC_MADSH_M16 = Opc(3)
	OPC_MAD_U24   = Opc(4)
	OPC_MAD_S24   = Opc(5)
	OPC_MAD_F16   = Opc(6)
	OPC_MAD_F32   = Opc(7)
	OPC_SEL_B16   = Opc(8)
	OPC_SEL_B32   = Opc(9)
	OPC_SEL_S16   = Opc(10)
	OPC_SEL_S32   = Opc(11)
	OPC_SEL_F16   = Opc(12)
	OPC_SEL_F32   = Opc(13)
	OPC_SAD_S16   = Opc(14)
	OPC_SAD_S32   = Opc(15)
)

// Category 4: transcendental.
const (
	OPC_RCP  = Opc(0)
	OPC_RSQ  = Opc(1)
	OPC_LOG2 = Opc(2)
	OPC_EXP2 = Opc(3)
	OPC_SIN  = Opc(4)
	OPC_COS  = Opc(5)
	OPC_SQRT = Opc(6)
)

// Category 5: texture.
const (
	OPC_ISAM     = Opc(0)
	OPC_ISAML    = Opc(1)
	OPC_ISAMM    = Opc(2)
	OPC_SAM      = Opc(3)
	OPC_SAMB     = Opc(4)
	OPC_SAML     = Opc(5)
	OPC_SAMGQ    = Opc(6)
	OPC_GETLOD   = Opc(7)
	OPC_CONV     = Opc(8)
	OPC_CONVM    = Opc(9)
	OPC_GETSIZE  = Opc(10)
	OPC_GETBUF   = Opc(11)
	OPC_GETPOS   = Opc(12)
	OPC_GETINFO  = Opc(13)
	OPC_DSX      = Opc(14)
	OPC_DSY      = Opc(15)
	OPC_GATHER4R = Opc(16)
	OPC_GATHER4G = Opc(17)
	OPC_GATHER4B = Opc(18)
	OPC_GATHER4A = Opc(19)
)

// Category 6: memory.
const (
	OPC_LDG      = Opc(0)
	OPC_LDL      = Opc(1)
	OPC_LDP      = Opc(2)
	OPC_STG      = Opc(3)
	OPC_STL      = Opc(4)
	OPC_STP      = Opc(5)
	OPC_STI      = Opc(6)
	OPC_G2L      = Opc(7)
	OPC_L2G      = Opc(8)
	OPC_PREFETCH = Opc(9)
	OPC_LDLW     = Opc(10)
	OPC_STLW     = Opc(11)
	OPC_RESFMT   = Opc(14)
	OPC_RESINFO  = Opc(15)
)

// Type is a cat1/cat5/cat6 data type.
type Type int

//go:generate go tool stringer -linecomment -type=Type
const (
	TYPE_F16 = Type(0) // f16
	TYPE_F32 = Type(1) // f32
	TYPE_U16 = Type(2) // u16
	TYPE_U32 = Type(3) // u32
	TYPE_S16 = Type(4) // s16
	TYPE_S32 = Type(5) // s32
	TYPE_U8  = Type(6) // u8
	TYPE_S8  = Type(7) // s8
)

// Size returns the width of the type in bits.
func (t Type) Size() int {
	switch t {
	case TYPE_F32, TYPE_U32, TYPE_S32:
		return 32
	case TYPE_U8, TYPE_S8:
		return 8
	default:
		return 16
	}
}

// Half is true when values of the type live in half registers.
func (t Type) Half() bool {
	return t.Size() < 32
}

// Cond is a cat2 comparison condition.
type Cond int

//go:generate go tool stringer -linecomment -type=Cond
const (
	COND_LT = Cond(0) // lt
	COND_LE = Cond(1) // le
	COND_GT = Cond(2) // gt
	COND_GE = Cond(3) // ge
	COND_EQ = Cond(4) // eq
	COND_NE = Cond(5) // ne
)

// Opcode is a category and opcode pair.
type Opcode struct {
	Category Category
	Opc      Opc
}

// opcodeNames maps every opcode to its mnemonic.
var opcodeNames = map[Opcode]string{
	{CAT0, OPC_NOP}:  "nop",
	{CAT0, OPC_BR}:   "br",
	{CAT0, OPC_JUMP}: "jump",
	{CAT0, OPC_CALL}: "call",
	{CAT0, OPC_RET}:  "ret",
	{CAT0, OPC_KILL}: "kill",
	{CAT0, OPC_END}:  "end",
	{CAT0, OPC_EMIT}: "emit",
	{CAT0, OPC_CUT}:  "cut",

	{CAT1, OPC_MOV}: "mov",

	{CAT2, OPC_ADD_F}:    "add.f",
	{CAT2, OPC_MIN_F}:    "min.f",
	{CAT2, OPC_MAX_F}:    "max.f",
	{CAT2, OPC_MUL_F}:    "mul.f",
	{CAT2, OPC_SIGN_F}:   "sign.f",
	{CAT2, OPC_CMPS_F}:   "cmps.f",
	{CAT2, OPC_ABSNEG_F}: "absneg.f",
	{CAT2, OPC_CMPV_F}:   "cmpv.f",
	{CAT2, OPC_FLOOR_F}:  "floor.f",
	{CAT2, OPC_CEIL_F}:   "ceil.f",
	{CAT2, OPC_RNDNE_F}:  "rndne.f",
	{CAT2, OPC_RNDAZ_F}:  "rndaz.f",
	{CAT2, OPC_TRUNC_F}:  "trunc.f",
	{CAT2, OPC_ADD_U}:    "add.u",
	{CAT2, OPC_ADD_S}:    "add.s",
	{CAT2, OPC_SUB_U}:    "sub.u",
	{CAT2, OPC_SUB_S}:    "sub.s",
	{CAT2, OPC_CMPS_U}:   "cmps.u",
	{CAT2, OPC_CMPS_S}:   "cmps.s",
	{CAT2, OPC_MIN_U}:    "min.u",
	{CAT2, OPC_MIN_S}:    "min.s",
	{CAT2, OPC_MAX_U}:    "max.u",
	{CAT2, OPC_MAX_S}:    "max.s",
	{CAT2, OPC_ABSNEG_S}: "absneg.s",
	{CAT2, OPC_AND_B}:    "and.b",
	{CAT2, OPC_OR_B}:     "or.b",
	{CAT2, OPC_NOT_B}:    "not.b",
	{CAT2, OPC_XOR_B}:    "xor.b",
	{CAT2, OPC_CMPV_U}:   "cmpv.u",
	{CAT2, OPC_CMPV_S}:   "cmpv.s",
	{CAT2, OPC_MUL_U}:    "mul.u",
	{CAT2, OPC_MUL_S}:    "mul.s",
	{CAT2, OPC_MULL_U}:   "mull.u",
	{CAT2, OPC_BFREV_B}:  "bfrev.b",
	{CAT2, OPC_CLZ_S}:    "clz.s",
	{CAT2, OPC_CLZ_B}:    "clz.b",
	{CAT2, OPC_SHL_B}:    "shl.b",
	{CAT2, OPC_SHR_B}:    "shr.b",
	{CAT2, OPC_ASHR_B}:   "ashr.b",
	{CAT2, OPC_BARY_F}:   "bary.f",
	{CAT2, OPC_MGEN_B}:   "mgen.b",
	{CAT2, OPC_GETBIT_B}: "getbit.b",
	{CAT2, OPC_SETRM}:    "setrm",
	{CAT2, OPC_CBITS_B}:  "cbits.b",
	{CAT2, OPC_SHB}:      "shb",
	{CAT2, OPC_MSAD}:     "msad",

	{CAT3, OPC_MAD_U16}:   "mad.u16",
	{CAT3, OPC_MADSH_U16}: "madsh.u16",
	{CAT3, OPC_MAD_S16}:   "mad.s16",
	{CAT3, OPC_MADSH_M16}: "madsh.m16",
	{CAT3, OPC_MAD_U24}:   "mad.u24",
	{CAT3, OPC_MAD_S24}:   "mad.s24",
	{CAT3, OPC_MAD_F16}:   "mad.f16",
	{CAT3, OPC_MAD_F32}:   "mad.f32",
	{CAT3, OPC_SEL_B16}:   "sel.b16",
	{CAT3, OPC_SEL_B32}:   "sel.b32",
	{CAT3, OPC_SEL_S16}:   "sel.s16",
	{CAT3, OPC_SEL_S32}:   "sel.s32",
	{CAT3, OPC_SEL_F16}:   "sel.f16",
	{CAT3, OPC_SEL_F32}:   "sel.f32",
	{CAT3, OPC_SAD_S16}:   "sad.s16",
	{CAT3, OPC_SAD_S32}:   "sad.s32",

	{CAT4, OPC_RCP}:  "rcp",
	{CAT4, OPC_RSQ}:  "rsq",
	{CAT4, OPC_LOG2}: "log2",
	{CAT4, OPC_EXP2}: "exp2",
	{CAT4, OPC_SIN}:  "sin",
	{CAT4, OPC_COS}:  "cos",
	{CAT4, OPC_SQRT}: "sqrt",

	{CAT5, OPC_ISAM}:     "isam",
	{CAT5, OPC_ISAML}:    "isaml",
	{CAT5, OPC_ISAMM}:    "isamm",
	{CAT5, OPC_SAM}:      "sam",
	{CAT5, OPC_SAMB}:     "samb",
	{CAT5, OPC_SAML}:     "saml",
	{CAT5, OPC_SAMGQ}:    "samgq",
	{CAT5, OPC_GETLOD}:   "getlod",
	{CAT5, OPC_CONV}:     "conv",
	{CAT5, OPC_CONVM}:    "convm",
	{CAT5, OPC_GETSIZE}:  "getsize",
	{CAT5, OPC_GETBUF}:   "getbuf",
	{CAT5, OPC_GETPOS}:   "getpos",
	{CAT5, OPC_GETINFO}:  "getinfo",
	{CAT5, OPC_DSX}:      "dsx",
	{CAT5, OPC_DSY}:      "dsy",
	{CAT5, OPC_GATHER4R}: "gather4r",
	{CAT5, OPC_GATHER4G}: "gather4g",
	{CAT5, OPC_GATHER4B}: "gather4b",
	{CAT5, OPC_GATHER4A}: "gather4a",

	{CAT6, OPC_LDG}:      "ldg",
	{CAT6, OPC_LDL}:      "ldl",
	{CAT6, OPC_LDP}:      "ldp",
	{CAT6, OPC_STG}:      "stg",
	{CAT6, OPC_STL}:      "stl",
	{CAT6, OPC_STP}:      "stp",
	{CAT6, OPC_STI}:      "sti",
	{CAT6, OPC_G2L}:      "g2l",
	{CAT6, OPC_L2G}:      "l2g",
	{CAT6, OPC_PREFETCH}: "prefetch",
	{CAT6, OPC_LDLW}:     "ldlw",
	{CAT6, OPC_STLW}:     "stlw",
	{CAT6, OPC_RESFMT}:   "resfmt",
	{CAT6, OPC_RESINFO}:  "resinfo",
}

var opcodeByName = lo.Invert(opcodeNames)

// String returns the mnemonic of the opcode.
func (op Opcode) String() string {
	name, ok := opcodeNames[op]
	if !ok {
		return f("%v.opc%d", op.Category, int(op.Opc))
	}
	return name
}

// LookupOpcode finds an opcode by mnemonic.
func LookupOpcode(name string) (op Opcode, ok bool) {
	op, ok = opcodeByName[strings.ToLower(name)]
	return
}

// LookupType finds a type by name.
func LookupType(name string) (t Type, ok bool) {
	for t = TYPE_F16; t <= TYPE_S8; t++ {
		if t.String() == name {
			return t, true
		}
	}
	return
}

// halfOpcodes are the cat3 opcodes whose sources are half registers.
var halfOpcodes = map[Opc]bool{
	OPC_MAD_U16:   true,
	OPC_MADSH_U16: true,
	OPC_MAD_S16:   true,
	OPC_MADSH_M16: true,
	OPC_MAD_F16:   true,
	OPC_SEL_B16:   true,
	OPC_SEL_S16:   true,
	OPC_SEL_F16:   true,
	OPC_SAD_S16:   true,
}
