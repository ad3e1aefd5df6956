// Package asm holds the pieces shared by the a2xx and a3xx shader assemblers.
//
// A Shader of either generation owns an Arena from which all of its objects
// are carved, a set of bounded named metadata tables (attributes, constants,
// samplers, uniforms, varyings, buffers and outputs), and is turned into a
// flat stream of 32-bit machine words. The error taxonomy reported by both
// assemblers is declared here: ErrMalformed, ErrCapacity and ErrEncodeRange.
package asm
