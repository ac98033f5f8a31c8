package cpu

import (
	"fmt"
)

// Instruction prefixes. Bit 0 is the most significant bit of an opcode.
const (
	PREFIX_MOVE_LOW  = uint8(0b00) // bits[0:2]
	PREFIX_MOVE_HIGH = uint8(0b01) // bits[0:2]
	PREFIX_EXTENDED  = uint8(0b10) // bits[0:2], see bits[0:4]
	PREFIX_ALU       = uint8(0b11) // bits[0:2]

	PREFIX_LOAD   = uint8(0b1000) // bits[0:4]
	PREFIX_STORE  = uint8(0b1001) // bits[0:4]
	PREFIX_BRANCH = uint8(0b1010) // bits[0:4]
)

// MoveMode selects the nibble written by a move.
type MoveMode int

//go:generate go tool stringer -linecomment -type=MoveMode
const (
	MOVE_LOW  = MoveMode(0) // movl
	MOVE_HIGH = MoveMode(1) // movh
)

// BranchCond is a branch condition code.
type BranchCond int

//go:generate go tool stringer -linecomment -type=BranchCond
const (
	COND_ALWAYS = BranchCond(0) // b
	COND_EQ     = BranchCond(1) // b.eq
	COND_NE     = BranchCond(2) // b.ne
	COND_GE     = BranchCond(3) // b.ge
)

// AluOp is an ALU operation type.
type AluOp int

//go:generate go tool stringer -linecomment -type=AluOp
const (
	ALU_OP_ADD = AluOp(0) // add
	ALU_OP_SUB = AluOp(1) // sub
	ALU_OP_AND = AluOp(2) // and
	ALU_OP_OR  = AluOp(3) // or
)

// Extract returns the width-bit field of value starting at bit position
// start, right aligned. Bit position 0 is the most significant bit.
func Extract(value uint8, start, width uint8) uint8 {
	if int(start)+int(width) > BITNESS {
		panic(fmt.Sprintf("bitfield [%d:%d] outside of %d bits", start, width, BITNESS))
	}
	if width == 0 {
		return 0
	}

	mask := (uint(1) << width) - 1
	return uint8((uint(value) >> (BITNESS - start - width)) & mask)
}

// Code is a single raw opcode.
type Code uint8

// MakeCodeMove creates a move instruction.
func MakeCodeMove(mode MoveMode, reg uint8, imm uint8) Code {
	return Code((uint8(mode) << 6) | ((reg & 0x3) << 4) | (imm & 0xf))
}

// MakeCodeLoad creates a load instruction.
func MakeCodeLoad(reg uint8) Code {
	return Code((PREFIX_LOAD << 4) | (reg & 0x3))
}

// MakeCodeStore creates a store instruction.
func MakeCodeStore(reg uint8) Code {
	return Code((PREFIX_STORE << 4) | (reg & 0x3))
}

// MakeCodeBranch creates a branch instruction.
func MakeCodeBranch(cond BranchCond, reg uint8) Code {
	return Code((PREFIX_BRANCH << 4) | ((uint8(cond) & 0x3) << 2) | (reg & 0x3))
}

// MakeCodeAlu creates an ALU operation instruction.
func MakeCodeAlu(op AluOp, operand, dst uint8) Code {
	return Code((PREFIX_ALU << 6) | ((uint8(op) & 0x3) << 4) | ((operand & 0x3) << 2) | (dst & 0x3))
}

// Prefix returns the two bit instruction prefix.
func (code Code) Prefix() uint8 {
	return Extract(uint8(code), 0, 2)
}

// ExtendedPrefix returns the four bit instruction prefix.
func (code Code) ExtendedPrefix() uint8 {
	return Extract(uint8(code), 0, 4)
}

// MoveDecode decodes and returns the move mode, target register, and immediate.
func (code Code) MoveDecode() (mode MoveMode, reg, imm uint8) {
	mode = MoveMode(Extract(uint8(code), 0, 2))
	reg = Extract(uint8(code), 2, 2)
	imm = Extract(uint8(code), 4, 4)
	return
}

// RegisterDecode decodes the register operand of load, store and branch.
func (code Code) RegisterDecode() (reg uint8) {
	return Extract(uint8(code), 6, 2)
}

// BranchDecode decodes and returns the branch condition and target register.
func (code Code) BranchDecode() (cond BranchCond, reg uint8) {
	cond = BranchCond(Extract(uint8(code), 4, 2))
	reg = code.RegisterDecode()
	return
}

// AluDecode decodes and returns the ALU operation, operand and destination registers.
func (code Code) AluDecode() (op AluOp, operand, dst uint8) {
	op = AluOp(Extract(uint8(code), 2, 2))
	operand = Extract(uint8(code), 4, 2)
	dst = Extract(uint8(code), 6, 2)
	return
}

// String returns the opcode in binary.
func (code Code) String() string {
	return fmt.Sprintf("0b%08b", uint8(code))
}
