package cpu

import (
	"fmt"
)

// Instruction is a decoded opcode. The set of instructions is closed:
// Move, Load, Store, Branch, Alu, and the Debug wrapper.
type Instruction interface {
	fmt.Stringer
	// Code returns the opcode the instruction was decoded from.
	Code() Code

	instruction()
}

// Move writes a 4-bit immediate into one nibble of a register, keeping the
// other nibble.
type Move struct {
	Mode      MoveMode
	Register  uint8
	Immediate uint8
}

// Load reads the memory cell addressed by a register back into that register.
type Load struct {
	Register uint8
}

// Store writes a register into the memory cell addressed by r0.
type Store struct {
	Register uint8
}

// Branch sets the program counter to the contents of a register if the
// condition holds.
type Branch struct {
	Cond     BranchCond
	Register uint8
}

// Alu combines the operand register into the destination register,
// and sets the zero and sign flags from the result.
type Alu struct {
	Op      AluOp
	Operand uint8
	Dest    uint8
}

// Debug pauses at Pauser before the wrapped instruction executes.
type Debug struct {
	Instruction
	Pauser Pauser
}

var (
	_ Instruction = Move{}
	_ Instruction = Load{}
	_ Instruction = Store{}
	_ Instruction = Branch{}
	_ Instruction = Alu{}
	_ Instruction = Debug{}
)

func (Move) instruction()   {}
func (Load) instruction()   {}
func (Store) instruction()  {}
func (Branch) instruction() {}
func (Alu) instruction()    {}

func (in Move) Code() Code {
	return MakeCodeMove(in.Mode, in.Register, in.Immediate)
}

func (in Move) String() string {
	return fmt.Sprintf("%v r%d 0x%x", in.Mode, in.Register, in.Immediate)
}

func (in Load) Code() Code {
	return MakeCodeLoad(in.Register)
}

func (in Load) String() string {
	return fmt.Sprintf("load r%d", in.Register)
}

func (in Store) Code() Code {
	return MakeCodeStore(in.Register)
}

func (in Store) String() string {
	return fmt.Sprintf("store r%d", in.Register)
}

func (in Branch) Code() Code {
	return MakeCodeBranch(in.Cond, in.Register)
}

func (in Branch) String() string {
	return fmt.Sprintf("%v r%d", in.Cond, in.Register)
}

func (in Alu) Code() Code {
	return MakeCodeAlu(in.Op, in.Operand, in.Dest)
}

func (in Alu) String() string {
	return fmt.Sprintf("%v r%d r%d", in.Op, in.Dest, in.Operand)
}
