// Package script builds shaders from Starlark programs.
//
// A script calls builtins which map one to one onto the IR construction
// API of the ir2 and ir3 packages. The calling line of every builtin that
// creates an instruction or CF record is kept in the IR, so assembly errors
// point back into the script.
//
// An a3xx script:
//
//	attribute("in_position", 0, 4)
//	instr("mov.f32f32", r(1), c(0))
//	instr("add.f", r(0, "y"), r(1), c(0, "x", neg=True), sy=True)
//	instr("end")
//
// An a2xx script:
//
//	cf = exec(end=True)
//	fetch(cf, "VERTEX", reg(1, "xyz1"), reg(0, "x"), fmt="FMT_32_32_32_FLOAT", stride=12)
//	alu(cf, "MAXv", reg(0, export=True), reg(1), reg(1))
package script
