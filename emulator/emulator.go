// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs assembunny programs on behalf of a caller: it
// presets registers, bounds execution by a tick budget and pulls bounded
// output sequences.
package emulator

import (
	"iter"
	"log"
	"maps"
	"slices"

	"github.com/ezrec/assembunny/cpu"
	"github.com/ezrec/assembunny/internal"
)

// Emulator state. Program + register presets + tick budget.
type Emulator struct {
	Verbose  bool                   // If set, enables verbose logging.
	MaxTicks int                    // Tick budget per machine, 0 for none.
	Preset   map[cpu.Register]int64 // Register values applied at boot.
	Program  *cpu.Program           // Reference to the program listing.
}

// NewEmulator creates a new emulator for a program.
func NewEmulator(prog *cpu.Program) (emu *Emulator) {
	emu = &Emulator{
		Preset:  make(map[cpu.Register]int64),
		Program: prog,
	}

	return
}

// Boot creates a fresh CPU running the program, with presets applied.
func (emu *Emulator) Boot() (cp *cpu.Cpu) {
	cp = cpu.NewCpu(emu.Program)
	cp.Verbose = emu.Verbose

	for _, reg := range slices.Sorted(maps.Keys(emu.Preset)) {
		cp.Set(reg, emu.Preset[reg])
		if emu.Verbose {
			log.Printf("emulator: preset %v=%v", reg, emu.Preset[reg])
		}
	}

	return
}

// budget returns an error if cp has used up the tick budget.
func (emu *Emulator) budget(cp *cpu.Cpu) (err error) {
	if emu.MaxTicks > 0 && cp.Ticks >= emu.MaxTicks {
		err = &ErrTickLimit{Ticks: cp.Ticks}
	}
	return
}

// Run boots a CPU and ticks it until it halts or exhausts the tick budget.
func (emu *Emulator) Run() (cp *cpu.Cpu, err error) {
	cp = emu.Boot()

	for !cp.Halted() {
		err = emu.budget(cp)
		if err != nil {
			return
		}
		cp.Tick()
	}

	if emu.Verbose {
		log.Printf("emulator: halted after %v ticks\n%v", cp.Ticks, cp)
	}

	return
}

// next ticks cp until it emits a value, halts, or exhausts the tick budget.
func (emu *Emulator) next(cp *cpu.Cpu) (value int64, ok bool, err error) {
	for !cp.Halted() {
		err = emu.budget(cp)
		if err != nil {
			return
		}
		value, ok = cp.Tick()
		if ok {
			return
		}
	}

	return
}

// Outputs returns the values emitted by cp. If the tick budget runs out the
// sequence ends with a zero value and an *ErrTickLimit.
func (emu *Emulator) Outputs(cp *cpu.Cpu) iter.Seq2[int64, error] {
	return func(yield func(value int64, err error) bool) {
		for {
			value, ok, err := emu.next(cp)
			if err != nil {
				yield(0, err)
				return
			}
			if !ok {
				return
			}
			if !yield(value, nil) {
				return
			}
		}
	}
}

// Take boots a CPU and collects its first n outputs, or fewer if the
// program halts first.
func (emu *Emulator) Take(n int) (values []int64, err error) {
	for value, verr := range internal.IterSeq2Take(emu.Outputs(emu.Boot()), n) {
		if verr != nil {
			err = verr
			return
		}
		values = append(values, value)
	}

	return
}

// isClock returns true if no two consecutive values are the same.
func isClock(values []int64) bool {
	for a, b := range internal.IterSeqPairs(slices.Values(values)) {
		if a == b {
			return false
		}
	}
	return true
}

// FindClock searches for the smallest non-negative seed below limit which,
// preset into reg, makes the program emit at least samples outputs with no
// value repeated back to back. Seeds that exhaust the tick budget are
// skipped.
func (emu *Emulator) FindClock(reg cpu.Register, samples int, limit int64) (seed int64, err error) {
	trial := *emu
	trial.Preset = maps.Clone(emu.Preset)
	if trial.Preset == nil {
		trial.Preset = make(map[cpu.Register]int64)
	}

	for seed = 0; seed < limit; seed++ {
		trial.Preset[reg] = seed

		var values []int64
		values, err = trial.Take(samples)
		if err != nil {
			if emu.Verbose {
				log.Printf("emulator: seed %v: %v", seed, err)
			}
			err = nil
			continue
		}

		if len(values) == samples && isClock(values) {
			return
		}
	}

	err = ErrClockNotFound
	return
}
