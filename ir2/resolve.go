package ir2

import (
	"github.com/samber/lo"

	"github.com/freedreno-zz/freedreno-sub001/asm"
)

// Encoded range of the resolved CF fields.
const (
	MAX_CF_ADDR  = 0xfff
	MAX_CF_COUNT = 0xf
	MAX_CF_SEQ   = 0xffff
	MAX_CF_ALLOC = 0xfff
)

// resolved holds the computed fields of one CF record.
type resolved struct {
	Addr int
	Cnt  int
	Seq  int
}

// nopCF pads an odd CF list.
var nopCF = &CF{Type: CF_NOP}

// paddedCFs returns the CF list extended to an even length.
func paddedCFs(cfs []*CF) []*CF {
	if len(cfs)%2 == 0 {
		return cfs
	}
	return append(cfs[:len(cfs):len(cfs)], nopCF)
}

// sequence packs two bits per instruction, the first instruction lowest:
// bit 0 for a fetch and bit 1 for sync.
func sequence(instrs []*Instruction) (seq int) {
	for i := len(instrs) - 1; i >= 0; i-- {
		seq <<= 2
		if instrs[i].Type == FETCH {
			seq |= 0x1
		}
		if instrs[i].Sync {
			seq |= 0x2
		}
	}
	return
}

// resolve computes the address, count and sequence of each EXEC in cfs.
// Instruction addresses are in three word slots, following the CF slots.
// The returned end is the first slot past the last instruction.
func resolve(cfs []*CF) (out []resolved, end int, warnings []error, err error) {
	out = make([]resolved, len(cfs))
	addr := (len(cfs) + 1) / 2

	for n, cf := range cfs {
		switch cf.Type {
		case CF_NOP:
		case CF_EXEC, CF_EXEC_END:
			exec := cf.Exec()
			if exec == nil {
				err = &ErrCF{Index: n, Err: asm.Malformed("%v without instructions", cf.Type)}
				return
			}

			res := resolved{
				Addr: addr,
				Cnt:  len(exec.Instrs),
				Seq:  sequence(exec.Instrs),
			}

			if exec.Explicit && (exec.Addr != res.Addr || exec.Cnt != res.Cnt) {
				warnings = append(warnings, &ErrCF{Index: n, Err: ErrCFMismatch})
			}

			switch {
			case res.Addr > MAX_CF_ADDR:
				err = &asm.ErrField{Field: "addr", Value: int64(res.Addr), Width: 12}
			case res.Cnt > MAX_CF_COUNT:
				err = &asm.ErrField{Field: "count", Value: int64(res.Cnt), Width: 4}
			case res.Seq > MAX_CF_SEQ:
				err = &asm.ErrField{Field: "sequence", Value: int64(res.Seq), Width: 16}
			}
			if err != nil {
				err = &ErrCF{Index: n, Err: err}
				return
			}

			out[n] = res
			addr += res.Cnt
		case CF_ALLOC:
			alloc := cf.Alloc()
			switch {
			case alloc == nil:
				err = asm.Malformed("ALLOC without size")
			case alloc.Type != SQ_POSITION && alloc.Type != SQ_PARAMETER_PIXEL:
				err = asm.Malformed("unknown alloc type %d", int(alloc.Type))
			case alloc.Size < 0 || alloc.Size > MAX_CF_ALLOC:
				err = &asm.ErrField{Field: "size", Value: int64(alloc.Size), Width: 12}
			}
			if err != nil {
				err = &ErrCF{Index: n, Err: err}
				return
			}
		default:
			err = &ErrCF{Index: n, Err: asm.Malformed("unknown CF type %d", int(cf.Type))}
			return
		}
	}

	end = addr

	return
}

// cfEntry packs a CF record into its 48-bit form.
func cfEntry(cf *CF, res resolved) (entry uint64) {
	switch cf.Type {
	case CF_EXEC, CF_EXEC_END:
		entry = uint64(res.Addr) |
			uint64(res.Cnt)<<12 |
			uint64(res.Seq)<<16
	case CF_ALLOC:
		alloc := cf.Alloc()
		entry = uint64(alloc.Size) |
			uint64(alloc.Type)<<40
	}

	entry |= uint64(cf.Type) << 44

	return
}

// packCFs emits CF records two per three words.
func packCFs(cfs []*CF, res []resolved, dwords []uint32) {
	for n, pair := range lo.Chunk(lo.Range(len(cfs)), 2) {
		e1 := cfEntry(cfs[pair[0]], res[pair[0]])
		e2 := cfEntry(cfs[pair[1]], res[pair[1]])

		dwords[3*n+0] = uint32(e1)
		dwords[3*n+1] = uint32(e1>>32)&0xffff | uint32(e2&0xffff)<<16
		dwords[3*n+2] = uint32(e2 >> 16)
	}
}
