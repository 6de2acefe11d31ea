// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/tebeka/atexit"

	"github.com/ezrec/assembunny/cpu"
	"github.com/ezrec/assembunny/emulator"
)

// regNames maps register names to registers.
var regNames = map[string]cpu.Register{
	"a": cpu.REG_A,
	"b": cpu.REG_B,
	"c": cpu.REG_C,
	"d": cpu.REG_D,
}

// parsePresets parses a list of 'reg=value' presets, separated by commas.
func parsePresets(text string) (preset map[cpu.Register]int64, err error) {
	preset = make(map[cpu.Register]int64)
	if len(text) == 0 {
		return
	}

	for _, item := range strings.Split(text, ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(item), "=")
		if !ok {
			err = fmt.Errorf("preset %q: expected reg=value", item)
			return
		}
		reg, ok := regNames[name]
		if !ok {
			err = cpu.ErrParseRegister(name)
			return
		}
		var v64 int64
		v64, err = strconv.ParseInt(value, 10, 64)
		if err != nil {
			err = cpu.ErrParseNumber(value)
			return
		}
		preset[reg] = v64
	}

	return
}

func main() {
	var compile string
	var presets string
	var outputs int
	var clock int
	var limit int64
	var ticks int
	var result string
	var verbose bool

	flag.StringVar(&compile, "c", "-", "assembunny file to run")
	flag.StringVar(&presets, "p", "", "Register presets, as a=7,c=1")
	flag.IntVar(&outputs, "n", 0, "Print the first N outputs instead of running to halt")
	flag.IntVar(&clock, "clock", 0, "Search register -r for a clock seed, sampling N outputs")
	flag.Int64Var(&limit, "clock-limit", 1<<20, "Highest clock seed to try")
	flag.IntVar(&ticks, "t", 0, "Tick budget per run, 0 for none")
	flag.StringVar(&result, "r", "a", "Register to report")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		atexit.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	reg, ok := regNames[result]
	if !ok {
		atexit.Fatalf("-r: %v", cpu.ErrParseRegister(result))
	}

	preset, err := parsePresets(presets)
	if err != nil {
		atexit.Fatalf("-p: %v", err)
	}

	var inf io.Reader = os.Stdin
	if compile != "-" {
		file, err := os.Open(compile)
		if err != nil {
			atexit.Fatalf("%v: %v", compile, err)
		}
		atexit.Register(func() { file.Close() })
		inf = file
	}

	asm := &cpu.Assembler{Verbose: verbose}
	prog, err := asm.Parse(inf)
	if err != nil {
		atexit.Fatalf("%v: %v", compile, err)
	}

	emu := emulator.NewEmulator(prog)
	emu.Verbose = verbose
	emu.MaxTicks = ticks
	emu.Preset = preset

	switch {
	case clock > 0:
		seed, err := emu.FindClock(reg, clock, limit)
		if err != nil {
			atexit.Fatalf("%v: %v", compile, err)
		}
		fmt.Println(seed)
	case outputs > 0:
		values, err := emu.Take(outputs)
		for _, value := range values {
			fmt.Println(value)
		}
		if err != nil {
			atexit.Fatalf("%v: %v", compile, err)
		}
	default:
		cp, err := emu.Run()
		if err != nil {
			log.Print(cp)
			atexit.Fatalf("%v: %v", compile, err)
		}
		fmt.Println(cp.Get(reg))
	}

	atexit.Exit(0)
}
