package ir2

// Info summarizes the registers used by an assembled shader.
type Info struct {
	MaxReg      int    // Highest general register, -1 if none.
	MaxInputReg int    // Highest register read before written, -1 if none.
	RegsWritten uint64 // Bit per register written.
	SizeDwords  int
	Warnings    []error // Soft validation failures, see ErrCFMismatch.
}

func newInfo() (info *Info) {
	info = &Info{
		MaxReg:      -1,
		MaxInputReg: -1,
	}
	return
}

// use folds an operand into the statistics. Constants and exports are not
// general registers.
func (info *Info) use(reg *Register, dest bool) {
	if reg == nil || reg.is(REG_CONST|REG_EXPORT) {
		return
	}

	info.MaxReg = max(info.MaxReg, reg.Num)

	bit := uint64(1) << (reg.Num & 63)
	switch {
	case dest:
		info.RegsWritten |= bit
	case info.RegsWritten&bit == 0:
		info.MaxInputReg = max(info.MaxInputReg, reg.Num)
	}
}

// useInstruction folds the sources of instr, then its destinations.
func (info *Info) useInstruction(instr *Instruction) {
	dests := map[*Register]bool{}

	switch instr.Type {
	case FETCH:
		if len(instr.Regs) > 0 {
			dests[instr.Regs[0]] = true
		}
	case ALU:
		if alu := instr.Alu(); alu != nil {
			dst, sdst, _, err := aluOperands(instr, alu)
			if err == nil {
				dests[dst] = dst != nil
				dests[sdst] = sdst != nil
			}
		}
	}

	for _, reg := range instr.Regs {
		if !dests[reg] {
			info.use(reg, false)
		}
	}
	for _, reg := range instr.Regs {
		if dests[reg] {
			info.use(reg, true)
		}
	}
}
