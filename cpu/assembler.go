// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/nibble/internal"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Assembler is a single pass assembler for the nibble system.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to memory addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// regMap is a map of register names to register indexes.
var regMap = map[string]uint8{
	"r0": 0,
	"r1": 1,
	"r2": 2,
	"r3": 3,
}

// condMap maps branch mnemonics to conditions.
var condMap = map[string]BranchCond{
	COND_ALWAYS.String(): COND_ALWAYS,
	COND_EQ.String():     COND_EQ,
	COND_NE.String():     COND_NE,
	COND_GE.String():     COND_GE,
}

// aluMap maps ALU mnemonics to operations.
var aluMap = map[string]AluOp{
	ALU_OP_ADD.String(): ALU_OP_ADD,
	ALU_OP_SUB.String(): ALU_OP_SUB,
	ALU_OP_AND.String(): ALU_OP_AND,
	ALU_OP_OR.String():  ALU_OP_OR,
}

var (
	labelRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	parenRegexp = regexp.MustCompile(`\$\([^\$]*\)`)
)

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int, err error) {
	invert := false
	if strings.HasPrefix(word, "~") {
		invert = true
		word = word[1:]
	}

	v64, err := strconv.ParseInt(word, 0, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int(v64)
	if invert {
		value = int(^uint8(value))
	}

	return
}

// immediate returns a value that fits in limit.
func (asm *Assembler) immediate(word string, limit int) (value uint8, err error) {
	v, err := asm.valueOf(word)
	if err != nil {
		return
	}

	if v < 0 || v > limit {
		err = ErrImmediateRange
		return
	}

	value = uint8(v)
	return
}

// register returns the index of a register name.
func (asm *Assembler) register(word string) (reg uint8, err error) {
	reg, ok := regMap[word]
	if !ok {
		err = ErrRegisterInvalid
	}
	return
}

// symbols iterates over the numeric equates, then the labels defined so far.
func (asm *Assembler) symbols() iter.Seq2[string, int] {
	equates := func(yield func(string, int) bool) {
		for key, str := range asm.Equate {
			value, err := asm.valueOf(str)
			if err != nil {
				// Non-integer equates may be register names.
				continue
			}
			if !yield(key, value) {
				return
			}
		}
	}

	return internal.IterSeq2Concat(equates, maps.All(asm.Label))
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, value := range asm.symbols() {
		pred[key] = starlark.MakeInt(value)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	value = int(st_int64)
	return
}

// parseLine expands a single line into opcode words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	line = parenRegexp.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
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

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if !labelRegexp.MatchString(label) {
			err = ErrLabelInvalid
			return
		}
		if _, ok := regMap[label]; ok {
			err = ErrLabelInvalid
			return
		}
		if _, ok := asm.Label[label]; ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = asm.currentIp()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	return
}

// currentIp gets the address of the next opcode.
func (asm *Assembler) currentIp() int {
	if len(asm.Opcode) == 0 {
		return 0
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Ip + len(last.Codes)
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]int)
	asm.Opcode = asm.Opcode[:0]
	asm.Equate = maps.Clone(sysEquate)
	maps.Insert(asm.Equate, Defines())
	maps.Insert(asm.Equate, maps.All(asm.predefine))

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line = strings.TrimSpace(strings.Split(text, ";")[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
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

	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if op.Ip+len(op.Codes) > MEMORY_SIZE {
			lineno, line = op.LineNo, strings.Join(op.Words, " ")
			err = ErrProgramSize
			return
		}

		if len(op.LinkLabel) == 0 {
			continue
		}

		ip, ok := asm.Label[op.LinkLabel]
		if !ok {
			lineno, line = op.LineNo, strings.Join(op.Words, " ")
			err = ErrLabelMissing(op.LinkLabel)
			return
		}
		if len(op.Codes) != 2 {
			log.Fatalf("Unable to link label '%s' to line %d: %v", op.LinkLabel, op.LineNo, op.Words)
		}
		op.Codes[0] |= Code(ip & 0xf)
		op.Codes[1] |= Code((ip >> 4) & 0xf)
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// arguments checks the argument count of an opcode.
func arguments(args []string, count int) (err error) {
	switch {
	case len(args) < count:
		err = ErrOpcodeValueMissing
	case len(args) > count:
		err = ErrOpcodeExtraArgs
	}
	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var codes []Code
	var label string

	// no-op
	if len(words) == 0 {
		return
	}

	defer func() {
		if len(codes) == 0 {
			return
		}
		opcode := Opcode{LineNo: lineno, Ip: asm.currentIp(), Words: words, Codes: codes, LinkLabel: label}
		asm.Opcode = append(asm.Opcode, opcode)
	}()

	mnemonic, args := words[0], words[1:]

	switch mnemonic {
	case MOVE_LOW.String(), MOVE_HIGH.String():
		if err = arguments(args, 2); err != nil {
			return
		}
		var reg, imm uint8
		if reg, err = asm.register(args[0]); err != nil {
			return
		}
		if imm, err = asm.immediate(args[1], 0xf); err != nil {
			return
		}
		mode := MOVE_LOW
		if mnemonic == MOVE_HIGH.String() {
			mode = MOVE_HIGH
		}
		codes = append(codes, MakeCodeMove(mode, reg, imm))
	case "mov":
		if err = arguments(args, 2); err != nil {
			return
		}
		var reg, value uint8
		if reg, err = asm.register(args[0]); err != nil {
			return
		}
		value, err = asm.immediate(args[1], 0xff)
		if _, is_number := err.(ErrParseNumber); is_number && labelRegexp.MatchString(args[1]) {
			// Linked after the whole program is parsed.
			label = args[1]
			value, err = 0, nil
		}
		if err != nil {
			return
		}
		codes = append(codes,
			MakeCodeMove(MOVE_LOW, reg, value&0xf),
			MakeCodeMove(MOVE_HIGH, reg, value>>4),
		)
	case "load", "store":
		if err = arguments(args, 1); err != nil {
			return
		}
		var reg uint8
		if reg, err = asm.register(args[0]); err != nil {
			return
		}
		if mnemonic == "load" {
			codes = append(codes, MakeCodeLoad(reg))
		} else {
			codes = append(codes, MakeCodeStore(reg))
		}
	case ".byte":
		if len(args) == 0 {
			err = ErrOpcodeValueMissing
			return
		}
		for _, arg := range args {
			var value uint8
			if value, err = asm.immediate(arg, 0xff); err != nil {
				return
			}
			codes = append(codes, Code(value))
		}
	case ".bits":
		bits := strings.Join(args, "")
		if len(bits) == 0 || len(bits)%BITNESS != 0 {
			err = ErrBitsSyntax
			return
		}
		for n := 0; n < len(bits); n += BITNESS {
			var value uint64
			value, err = strconv.ParseUint(bits[n:n+BITNESS], 2, BITNESS)
			if err != nil {
				err = ErrBitsSyntax
				return
			}
			codes = append(codes, Code(value))
		}
	default:
		if cond, ok := condMap[mnemonic]; ok {
			if err = arguments(args, 1); err != nil {
				return
			}
			var reg uint8
			if reg, err = asm.register(args[0]); err != nil {
				return
			}
			codes = append(codes, MakeCodeBranch(cond, reg))
			return
		}

		if op, ok := aluMap[mnemonic]; ok {
			if err = arguments(args, 2); err != nil {
				return
			}
			var dst, operand uint8
			if dst, err = asm.register(args[0]); err != nil {
				return
			}
			if operand, err = asm.register(args[1]); err != nil {
				return
			}
			codes = append(codes, MakeCodeAlu(op, operand, dst))
			return
		}

		err = ErrInstructionInvalid
	}

	return
}
