// Package ir3 implements the assembler for the Adreno a3xx shader core.
//
// An a3xx shader is a flat list of instructions. Every instruction is
// encoded as two 32-bit words whose layout is selected by the instruction
// category (0 flow, 1 move/convert, 2 two-source ALU, 3 three-source ALU,
// 4 transcendental, 5 texture, 6 memory). The assembler pads the list to a
// multiple of four instructions, encodes each one and reports the highest
// full, half and constant registers touched so the caller can program the
// shader control registers.
package ir3
