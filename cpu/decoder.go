package cpu

import (
	"errors"
)

// decodeShort maps the two bit prefix to an instruction constructor.
var decodeShort = [1 << 2](func(code Code) Instruction){
	PREFIX_MOVE_LOW:  decodeMove,
	PREFIX_MOVE_HIGH: decodeMove,
	PREFIX_ALU:       decodeAlu,
}

// decodeLong maps the four bit prefix to an instruction constructor.
var decodeLong = [1 << 4](func(code Code) Instruction){
	PREFIX_LOAD:   func(code Code) Instruction { return Load{Register: code.RegisterDecode()} },
	PREFIX_STORE:  func(code Code) Instruction { return Store{Register: code.RegisterDecode()} },
	PREFIX_BRANCH: decodeBranch,
}

func decodeMove(code Code) Instruction {
	mode, reg, imm := code.MoveDecode()
	return Move{Mode: mode, Register: reg, Immediate: imm}
}

func decodeBranch(code Code) Instruction {
	cond, reg := code.BranchDecode()
	return Branch{Cond: cond, Register: reg}
}

func decodeAlu(code Code) Instruction {
	op, operand, dst := code.AluDecode()
	return Alu{Op: op, Operand: operand, Dest: dst}
}

// Decoder turns opcodes into instructions.
type Decoder struct {
	// Pauser, if set, wraps every decoded instruction in Debug.
	Pauser Pauser
}

// NewDecoder creates a decoder. A nil pauser disables debug wrapping.
func NewDecoder(pauser Pauser) *Decoder {
	return &Decoder{Pauser: pauser}
}

// Decode decodes a single opcode. The two bit prefix is matched first,
// then the four bit prefix.
func (dec *Decoder) Decode(code Code) (inst Instruction, err error) {
	create := decodeShort[code.Prefix()]
	if create == nil {
		create = decodeLong[code.ExtendedPrefix()]
	}
	if create == nil {
		err = errors.Join(ErrOpcodeDecode, ErrOpcode(code))
		return
	}

	inst = create(code)

	if dec != nil && dec.Pauser != nil {
		inst = Debug{Instruction: inst, Pauser: dec.Pauser}
	}

	return
}
