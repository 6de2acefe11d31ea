// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Assembler is a single pass assembler for assembunny programs.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate, applied
// at the start of every Parse.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// opMap maps operation names to operations.
var opMap = func() map[string]CodeOp {
	ops := make(map[string]CodeOp, 6)
	for op := OP_CPY; op <= OP_OUT; op++ {
		ops[op.String()] = op
	}
	return ops
}()

// regMap maps register names to registers.
var regMap = map[string]Register{
	"a": REG_A,
	"b": REG_B,
	"c": REG_C,
	"d": REG_D,
}

var (
	reParen   = regexp.MustCompile(`\$\([^\$]*\)`)
	reNumeric = regexp.MustCompile(`^([0-9]|[+-].)`)
)

// valueOf returns the operand for a simple word.
func (asm *Assembler) valueOf(word string) (value Value, err error) {
	v64, perr := strconv.ParseInt(word, 10, 64)
	if perr == nil {
		value = Literal(v64)
		return
	}

	// Anything that starts like a number is a bad number, and never a
	// register.
	if reNumeric.MatchString(word) {
		err = ErrParseNumber(word)
		return
	}

	reg, ok := regMap[word]
	if !ok {
		err = ErrParseRegister(word)
		return
	}

	value = Reg(reg)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, perr := strconv.ParseInt(str, 10, 64)
		if perr != nil {
			// Ignore non-integer equates. They may be registers.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// parseLine expands a single line of text into words.
func (asm *Assembler) parseLine(line string) (words []string, err error) {
	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil && err == nil {
			err = _err
		}
		return strconv.FormatInt(value, 10)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	return
}

// parseWords assembles the words of a line into an opcode.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	op, ok := opMap[words[0]]
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	args := words[1:]
	if len(args) < op.Argc() {
		err = ErrOperandMissing
		return
	}
	if len(args) > op.Argc() {
		err = ErrOperandExtra
		return
	}

	values := make([]Value, len(args))
	for n, word := range args {
		values[n], err = asm.valueOf(word)
		if err != nil {
			return
		}
	}

	asm.Opcode = append(asm.Opcode, Opcode{
		LineNo: lineno,
		Words:  words,
		Code:   MakeCode(op, values...),
	})

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var text string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: text, Err: err}
		}
	}()

	asm.Opcode = nil
	asm.Equate = maps.Clone(asm.predefine)
	if asm.Equate == nil {
		asm.Equate = make(map[string]string)
	}

	for scanner.Scan() {
		text = scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line, _, _ := strings.Cut(text, ";")

		var words []string
		words, err = asm.parseLine(line)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	prog = &Program{
		Opcodes: asm.Opcode,
	}

	return
}

// ParseString assembles program text with a fresh Assembler.
func ParseString(text string) (prog *Program, err error) {
	asm := &Assembler{}
	return asm.Parse(strings.NewReader(text))
}
