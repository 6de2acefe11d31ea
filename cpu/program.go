package cpu

import (
	"iter"
	"slices"
	"strings"
)

// Program is an assembled program listing.
type Program struct {
	Opcodes []Opcode
}

// Len returns the number of instructions in the program.
func (prog *Program) Len() int {
	return len(prog.Opcodes)
}

// Debug returns the source opcode for an instruction index, or nil if the
// index is outside the program.
func (prog *Program) Debug(ip int) (op *Opcode) {
	if ip < 0 || ip >= len(prog.Opcodes) {
		return
	}

	return &prog.Opcodes[ip]
}

// All iterates over the program's instructions by index.
func (prog *Program) All() iter.Seq2[int, Code] {
	return func(yield func(ip int, code Code) bool) {
		for ip, op := range prog.Opcodes {
			if !yield(ip, op.Code) {
				return
			}
		}
	}
}

// Codes returns a private copy of the instruction sequence, suitable for
// a machine to rewrite.
func (prog *Program) Codes() (codes []Code) {
	codes = make([]Code, 0, len(prog.Opcodes))
	for _, code := range prog.All() {
		codes = append(codes, code)
	}
	return
}

// String returns the program as assembunny text, one instruction per line.
func (prog *Program) String() string {
	lines := make([]string, 0, len(prog.Opcodes))
	for _, code := range prog.All() {
		lines = append(lines, code.String())
	}
	return strings.Join(lines, "\n")
}

// Equal returns true if both programs hold the same instructions.
func (prog *Program) Equal(other *Program) bool {
	return slices.Equal(prog.Codes(), other.Codes())
}
