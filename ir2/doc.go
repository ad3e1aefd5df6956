// Package ir2 implements the assembler for the Adreno a2xx shader core.
//
// An a2xx shader is a list of control flow (CF) records. EXEC records own
// a block of FETCH and ALU instructions, ALLOC records reserve export
// buffers. The assembler first resolves the address, count and fetch/sync
// sequence of every EXEC, then emits the CF records two to a three word
// slot, followed by the three word instruction bodies in program order.
package ir2
