// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"log"
)

// Cpu is the simulation context for an assembunny machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Ticks int // CPU ticks counter.

	register [REGISTER_COUNT]int64 // Register bank.
	ip       int64                 // Current instruction pointer.
	code     []Code                // Private, self-modifying program.

	output      int64 // Last value emitted by 'out'.
	outputValid bool  // Set if the last tick emitted output.
}

// NewCpu creates a new CPU running a private copy of a program.
func NewCpu(prog *Program) (cpu *Cpu) {
	cpu = &Cpu{}
	if prog != nil {
		cpu.code = prog.Codes()
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text = fmt.Sprintf("% 5s: %v\n", "ip", cpu.ip)
	for reg := REG_A; reg < REGISTER_COUNT; reg++ {
		text += fmt.Sprintf("% 5s: %v\n", reg, cpu.register[reg])
	}
	if cpu.outputValid {
		text += fmt.Sprintf("% 5s: %v\n", "out", cpu.output)
	} else {
		text += fmt.Sprintf("% 5s: %v\n", "out", "-")
	}

	return
}

// Get returns the value of a register.
func (cpu *Cpu) Get(reg Register) int64 {
	return cpu.register[reg]
}

// Set overwrites the value of a register.
func (cpu *Cpu) Set(reg Register, value int64) {
	cpu.register[reg] = value
}

// Evaluate resolves an operand against the register bank.
func (cpu *Cpu) Evaluate(value Value) int64 {
	if value.IsRegister {
		return cpu.Get(value.Register)
	}

	return value.Immediate
}

// Halted returns true when the instruction pointer is outside the program.
func (cpu *Cpu) Halted() bool {
	return cpu.ip < 0 || cpu.ip >= int64(len(cpu.code))
}

// Tick executes the instruction at the instruction pointer, and returns the
// value it emitted, if any. Ticking a halted CPU does nothing.
func (cpu *Cpu) Tick() (value int64, emitted bool) {
	cpu.outputValid = false

	if cpu.Halted() {
		return
	}

	cpu.Execute(cpu.code[cpu.ip])
	cpu.Ticks += 1

	return cpu.output, cpu.outputValid
}

// Execute executes a single decoded instruction at the current instruction
// pointer. Instruction shapes produced by toggling that have no meaning,
// such as writes to a literal, execute as no-ops.
func (cpu *Cpu) Execute(code Code) {
	if cpu.Verbose {
		log.Printf("%03d: %v", cpu.ip, code)
	}

	next_ip := cpu.ip + 1

	switch code.Op {
	case OP_CPY:
		if code.Y.IsRegister {
			cpu.Set(code.Y.Register, cpu.Evaluate(code.X))
		}
	case OP_INC:
		if code.X.IsRegister {
			cpu.Set(code.X.Register, cpu.Get(code.X.Register)+1)
		}
	case OP_DEC:
		if code.X.IsRegister {
			cpu.Set(code.X.Register, cpu.Get(code.X.Register)-1)
		}
	case OP_JNZ:
		if cpu.Evaluate(code.X) != 0 {
			next_ip = cpu.ip + cpu.Evaluate(code.Y)
		}
	case OP_TGL:
		if code.X.IsRegister {
			cpu.toggle(cpu.ip + cpu.Get(code.X.Register))
		}
	case OP_OUT:
		cpu.output = cpu.Evaluate(code.X)
		cpu.outputValid = true
	}

	cpu.ip = next_ip
}

// toggle rewrites the operation at addr, if addr is within the program.
func (cpu *Cpu) toggle(addr int64) {
	if addr < 0 || addr >= int64(len(cpu.code)) {
		if cpu.Verbose {
			log.Printf("%03d: tgl target %d outside program", cpu.ip, addr)
		}
		return
	}

	target := &cpu.code[addr]
	if cpu.Verbose {
		log.Printf("%03d: tgl %03d %v => %v", cpu.ip, addr, target.Op, target.Op.Toggled())
	}
	target.Op = target.Op.Toggled()
}

// Run ticks the CPU until it halts.
func (cpu *Cpu) Run() {
	for !cpu.Halted() {
		cpu.Tick()
	}
}

// RunUntilOutput ticks the CPU until an 'out' instruction fires, returning
// its value, or until the CPU halts, in which case ok is false.
func (cpu *Cpu) RunUntilOutput() (value int64, ok bool) {
	cpu.output = 0
	cpu.outputValid = false

	for !cpu.Halted() {
		value, ok = cpu.Tick()
		if ok {
			return
		}
	}

	return
}

// Outputs returns an iterator over the values emitted by the CPU. The
// sequence ends only when the program halts; callers running programs that
// loop forever must stop consuming on their own.
func (cpu *Cpu) Outputs() iter.Seq[int64] {
	return func(yield func(value int64) bool) {
		for {
			value, ok := cpu.RunUntilOutput()
			if !ok {
				return
			}
			if !yield(value) {
				return
			}
		}
	}
}
