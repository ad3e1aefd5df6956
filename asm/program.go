package asm

import (
	"encoding/binary"
	"io"
	"iter"
)

// Opcode ties a run of machine words back to the IR line that produced it.
type Opcode struct {
	LineNo int // Source line of the instruction, 0 for padding.
	Ip     int // Word offset of the first word.
	Count  int // Number of words.
}

// Program is an assembled shader binary with its listing.
type Program struct {
	Words   []uint32
	Opcodes []Opcode
}

// Debug holds the opcode covering a word offset.
type Debug struct {
	*Opcode
	Index int
}

// Debug finds the opcode that emitted the word at ip. An ip outside the
// program yields an empty opcode, with LineNo 0, at Index -1.
func (prog *Program) Debug(ip int) (dbg Debug) {
	dbg = Debug{Opcode: &Opcode{Ip: ip}, Index: -1}

	for n, op := range prog.Opcodes {
		if ip >= op.Ip && ip < op.Ip+op.Count {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  ip - op.Ip,
			}
			break
		}
	}

	return
}

// Codes iterates the machine words of each opcode.
func (prog *Program) Codes() iter.Seq2[Opcode, []uint32] {
	return func(yield func(op Opcode, words []uint32) bool) {
		for _, op := range prog.Opcodes {
			if !yield(op, prog.Words[op.Ip:op.Ip+op.Count]) {
				return
			}
		}
	}
}

// WriteTo writes the words little-endian, as consumed by the GPU.
func (prog *Program) WriteTo(w io.Writer) (n int64, err error) {
	buf := make([]byte, 4*len(prog.Words))
	for i, word := range prog.Words {
		binary.LittleEndian.PutUint32(buf[4*i:], word)
	}

	written, err := w.Write(buf)
	n = int64(written)

	return
}
