package cpu

import (
	"strconv"
)

// CodeOp is an assembunny operation.
type CodeOp int

//go:generate go tool stringer -linecomment -type=CodeOp
const (
	OP_CPY = CodeOp(0) // cpy
	OP_INC = CodeOp(1) // inc
	OP_DEC = CodeOp(2) // dec
	OP_JNZ = CodeOp(3) // jnz
	OP_TGL = CodeOp(4) // tgl
	OP_OUT = CodeOp(5) // out
)

// Argc returns the number of operands the operation takes.
func (op CodeOp) Argc() int {
	switch op {
	case OP_CPY, OP_JNZ:
		return 2
	default:
		return 1
	}
}

// Toggled returns the operation a tgl instruction rewrites op into.
// Two-operand operations swap with each other, and every one-operand
// operation other than inc becomes inc.
func (op CodeOp) Toggled() CodeOp {
	switch op {
	case OP_INC:
		return OP_DEC
	case OP_CPY:
		return OP_JNZ
	case OP_JNZ:
		return OP_CPY
	default:
		return OP_INC
	}
}

// Register names one of the four registers.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_A = Register(0) // a
	REG_B = Register(1) // b
	REG_C = Register(2) // c
	REG_D = Register(3) // d
)

// REGISTER_COUNT is the size of the register file.
const REGISTER_COUNT = 4

// Valid returns true if reg names a register in the register file.
func (reg Register) Valid() bool {
	return reg >= REG_A && reg < REGISTER_COUNT
}

// Value is an instruction operand: an integer literal or a register.
type Value struct {
	Immediate  int64    // Literal value, when not a register.
	Register   Register // Register referenced.
	IsRegister bool     // Set if the operand references a register.
}

// Literal makes a literal operand.
func Literal(value int64) Value {
	return Value{Immediate: value}
}

// Reg makes a register operand.
func Reg(reg Register) Value {
	return Value{Register: reg, IsRegister: true}
}

// String returns the operand as it is written in program text.
func (v Value) String() string {
	if v.IsRegister {
		return v.Register.String()
	}
	return strconv.FormatInt(v.Immediate, 10)
}

// Code is a single decoded instruction. One-operand instructions leave Y
// as the zero Value.
type Code struct {
	Op CodeOp
	X  Value
	Y  Value
}

// MakeCode creates an instruction from an operation and its operands.
func MakeCode(op CodeOp, args ...Value) (code Code) {
	code.Op = op
	out := [2](*Value){&code.X, &code.Y}
	for n, arg := range args[:min(len(args), len(out))] {
		*out[n] = arg
	}
	return
}

// String returns the assembly language representation of this instruction.
func (code Code) String() (out string) {
	out = code.Op.String() + " " + code.X.String()
	if code.Op.Argc() > 1 {
		out += " " + code.Y.String()
	}
	return
}

// Opcode represents a line of assembled code with its source location.
type Opcode struct {
	LineNo int
	Words  []string
	Code   Code
}
