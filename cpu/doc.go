// Package cpu implements the processor and assembler for the nibble system.
//
// The processor has four 8-bit general-purpose registers (r0-r3), a ten byte
// memory that holds both program and data, a program counter, and the zero
// and sign condition flags written by the ALU. Every instruction is a single
// byte, decoded through a two-tier prefix match: the two most significant
// bits select move-low, move-high or ALU, and the reserved prefix 0b10 is
// extended by two more bits into load, store and branch.
//
// The assembler provides a small assembly language for the instruction set,
// supporting labels, equates, raw bytes and compile-time expression
// evaluation.
package cpu
