package cpu

import (
	"iter"
)

// Opcode represents a line of assembled code with its source location and generated instructions.
type Opcode struct {
	LineNo    int
	Ip        int
	Words     []string
	Codes     []Code
	LinkLabel string
}

type Program struct {
	Opcodes []Opcode
}

// Listing locates one opcode within its source line.
type Listing struct {
	*Opcode
	Index int
}

// Listing finds the source line that generated the opcode at pc.
func (prog *Program) Listing(pc uint8) (lst Listing) {
	for n, op := range prog.Opcodes {
		if int(pc) >= op.Ip && int(pc) < op.Ip+len(op.Codes) {
			lst = Listing{
				Opcode: &prog.Opcodes[n],
				Index:  int(pc) - op.Ip,
			}
			break
		}
	}

	return
}

// Binary returns the memory image of the program.
func (prog *Program) Binary() (bins []byte) {
	for _, code := range prog.Codes() {
		bins = append(bins, byte(code))
	}

	return
}

// Codes iterates over every opcode of the program with its address.
func (prog *Program) Codes() iter.Seq2[uint8, Code] {
	return func(yield func(pc uint8, code Code) bool) {
		for _, op := range prog.Opcodes {
			for n, code := range op.Codes {
				if !yield(uint8(op.Ip+n), code) {
					return
				}
			}
		}
	}
}
