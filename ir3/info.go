package ir3

import (
	"github.com/freedreno-zz/freedreno-sub001/asm"
)

// Info summarizes the resources used by an assembled shader.
type Info struct {
	MaxReg      int // Highest full register slot, -1 if none.
	MaxHalfReg  int // Highest half register slot, -1 if none.
	MaxConst    int // Highest constant slot, -1 if none.
	InstrsCount int // Instructions executed, counting repeats.
	SizeDwords  int // Encoded size.
}

func newInfo() (info *Info) {
	info = &Info{
		MaxReg:     -1,
		MaxHalfReg: -1,
		MaxConst:   -1,
	}
	return
}

// use folds a register operand into the maxima.
func (info *Info) use(reg *Register, repeat int) {
	var num int
	switch v := reg.Value.(type) {
	case Index:
		num = int(v)
	case Relative:
		// Offset from a0.x, the only part known before run time.
		num = int(v)
	default:
		return
	}

	if reg.is(REG_R) {
		num += repeat
	}

	slot := num >> 2

	switch {
	case reg.is(REG_CONST):
		info.MaxConst = max(info.MaxConst, slot)
	case slot == REG_A0 || slot == REG_P0:
	case reg.is(REG_HALF):
		info.MaxHalfReg = max(info.MaxHalfReg, slot)
	default:
		info.MaxReg = max(info.MaxReg, slot)
	}
}

// useAttribute folds the register footprint of an attribute into MaxReg.
func (info *Info) useAttribute(a *asm.Attribute) {
	info.MaxReg = max(info.MaxReg, (a.Rstart+a.Num-1)>>2)
}
