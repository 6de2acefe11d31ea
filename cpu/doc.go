// Package cpu implements the assembunny virtual machine and its assembler.
//
// The machine has four signed integer registers (a-d), a program counter
// and a private, mutable copy of its program. Six opcodes are understood:
// cpy, inc, dec, jnz, tgl and out. The tgl opcode rewrites the opcode of
// another instruction at runtime, so every operand is held as a Value that
// may be either a literal or a register, and instruction shapes that make no
// sense (such as a copy into a literal) execute as no-ops.
//
// The assembler reads one instruction per line, and additionally supports
// ';' comments, '.equ' equates and '$(...)' compile-time expressions.
package cpu
